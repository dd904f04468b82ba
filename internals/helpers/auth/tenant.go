// file: internals/helpers/auth/tenant.go
//
// Helper scoping tenant (school) + capability check dari token.
// school_id SELALU diambil dari path/token, tidak pernah dari body request —
// isolasi multi-tenant dijaga di boundary ini.
package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"schoolku_backend/internals/constants"
	helper "schoolku_backend/internals/helpers"
)

// Keys untuk fiber Locals (di-hydrate oleh middleware AuthJWT)
const (
	LocUserID         = "user_id"
	LocSchoolRoles    = "school_roles"
	LocIsOwner        = "is_owner"
	LocActiveSchoolID = "active_school_id"
)

/* ============================================
   Ekstraksi identitas
   ============================================ */

func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	v := c.Locals(LocUserID)
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "user_id tidak ditemukan di token")
	}
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "user_id tidak valid di token")
	}
	return id, nil
}

// GetActiveSchoolIDFromToken membaca school aktif dari klaim single-session.
func GetActiveSchoolIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	v := c.Locals(LocActiveSchoolID)
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "school_id tidak ditemukan di token")
	}
	return uuid.Parse(strings.TrimSpace(s))
}

// SchoolIDFromPath mem-parse :school_id dari route /api/a/:school_id/...
func SchoolIDFromPath(c *fiber.Ctx) (uuid.UUID, error) {
	raw := strings.TrimSpace(c.Params("school_id"))
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "school_id path tidak valid")
	}
	return id, nil
}

/* ============================================
   Role / capability dari klaim school_roles
   Bentuk klaim: [{"school_id": "...", "roles": ["admin","bendahara"]}]
   ============================================ */

func IsOwner(c *fiber.Ctx) bool {
	if v, ok := c.Locals(LocIsOwner).(bool); ok {
		return v
	}
	return false
}

type schoolRolesEntry struct {
	SchoolID uuid.UUID
	Roles    []string
}

func parseSchoolRoles(c *fiber.Ctx) []schoolRolesEntry {
	raw := c.Locals(LocSchoolRoles)
	list, ok := raw.([]any)
	if !ok {
		return nil
	}
	out := make([]schoolRolesEntry, 0, len(list))
	for _, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		sidStr, _ := m["school_id"].(string)
		sid, err := uuid.Parse(strings.TrimSpace(sidStr))
		if err != nil {
			continue
		}
		var roles []string
		switch rv := m["roles"].(type) {
		case []any:
			for _, r := range rv {
				if s, ok := r.(string); ok {
					roles = append(roles, strings.ToLower(strings.TrimSpace(s)))
				}
			}
		case []string:
			for _, s := range rv {
				roles = append(roles, strings.ToLower(strings.TrimSpace(s)))
			}
		}
		out = append(out, schoolRolesEntry{SchoolID: sid, Roles: roles})
	}
	return out
}

func HasRoleInSchool(c *fiber.Ctx, schoolID uuid.UUID, role string) bool {
	role = strings.ToLower(strings.TrimSpace(role))
	for _, e := range parseSchoolRoles(c) {
		if e.SchoolID != schoolID {
			continue
		}
		for _, r := range e.Roles {
			if r == role {
				return true
			}
		}
	}
	return false
}

func ensureRolesInSchool(c *fiber.Ctx, schoolID uuid.UUID, roles []string, forbidMessage string) error {
	// owner global: bypass
	if IsOwner(c) {
		return nil
	}
	for _, r := range roles {
		if HasRoleInSchool(c, schoolID, r) {
			return nil
		}
	}
	return helper.JsonError(c, fiber.StatusForbidden, forbidMessage)
}

/* ============================================
   Guard publik (capability token eksplisit per operasi)
   ============================================ */

// EnsureStaffSchool: operasi tulis keuangan (fee structure, payment, dsb).
func EnsureStaffSchool(c *fiber.Ctx, schoolID uuid.UUID) error {
	return ensureRolesInSchool(c, schoolID,
		constants.StaffRoles,
		"Hanya staff school ini yang diizinkan")
}

// EnsureMemberSchool: operasi baca untuk anggota (murid melihat tagihannya).
func EnsureMemberSchool(c *fiber.Ctx, schoolID uuid.UUID) error {
	return ensureRolesInSchool(c, schoolID,
		constants.MemberRoles,
		"Akses hanya untuk anggota school ini")
}
