package constants

// Role per-school (klaim school_roles di JWT)
const (
	RoleAdmin     = "admin"
	RoleBendahara = "bendahara"
	RoleTeacher   = "teacher"
	RoleStudent   = "student"
)

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	// boleh menulis data keuangan (structure, payment, scholarship)
	StaffRoles = []string{
		RoleAdmin,
		RoleBendahara,
		RoleTeacher,
	}

	// boleh membaca (murid melihat tagihan/receipt-nya)
	MemberRoles = []string{
		RoleAdmin,
		RoleBendahara,
		RoleTeacher,
		RoleStudent,
	}
)
