// file: internals/features/finance/scholarships/model/student_scholarship_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// =========================================================
// MODEL — student scholarship (join Student × Scholarship × Session)
//
// discount_amount adalah SNAPSHOT saat assignment — kalau nilai
// scholarship di katalog berubah belakangan, snapshot tidak ikut.
// Unassign = HARD delete (tanpa gorm.DeletedAt) + recompute structure.
// =========================================================

type StudentScholarship struct {
	// PK
	StudentScholarshipID uuid.UUID `gorm:"column:student_scholarship_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"student_scholarship_id"`

	// Tenant
	StudentScholarshipSchoolID uuid.UUID `gorm:"column:student_scholarship_school_id;type:uuid;not null;index" json:"student_scholarship_school_id"`

	// Join keys — unik per (student, scholarship, session)
	StudentScholarshipStudentID     uuid.UUID `gorm:"column:student_scholarship_student_id;type:uuid;not null;index:uniq_student_scholarship,unique,priority:1" json:"student_scholarship_student_id"`
	StudentScholarshipScholarshipID uuid.UUID `gorm:"column:student_scholarship_scholarship_id;type:uuid;not null;index:uniq_student_scholarship,unique,priority:2" json:"student_scholarship_scholarship_id"`
	StudentScholarshipSessionID     uuid.UUID `gorm:"column:student_scholarship_session_id;type:uuid;not null;index:uniq_student_scholarship,unique,priority:3" json:"student_scholarship_session_id"`

	// Snapshot hasil DiscountEngine saat assignment (paise)
	StudentScholarshipDiscountAmount int64 `gorm:"column:student_scholarship_discount_amount;not null;check:student_scholarship_discount_amount>=0" json:"student_scholarship_discount_amount"`

	StudentScholarshipRemarks *string `gorm:"column:student_scholarship_remarks;type:text" json:"student_scholarship_remarks,omitempty"`

	StudentScholarshipCreatedAt time.Time `gorm:"column:student_scholarship_created_at;not null;autoCreateTime" json:"student_scholarship_created_at"`
}

func (StudentScholarship) TableName() string {
	return "student_scholarships"
}
