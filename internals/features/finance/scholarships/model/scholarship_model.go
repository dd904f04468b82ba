// file: internals/features/finance/scholarships/model/scholarship_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// =========================================================
// ENUM — tipe & basis scholarship
// =========================================================

type ScholarshipType string

const (
	ScholarshipTypePercentage  ScholarshipType = "percentage"
	ScholarshipTypeFixedAmount ScholarshipType = "fixed_amount"
)

type ScholarshipBasis string

const (
	ScholarshipBasisMerit      ScholarshipBasis = "merit"
	ScholarshipBasisNeedBased  ScholarshipBasis = "need_based"
	ScholarshipBasisSports     ScholarshipBasis = "sports"
	ScholarshipBasisSibling    ScholarshipBasis = "sibling"
	ScholarshipBasisStaffWard  ScholarshipBasis = "staff_ward"
	ScholarshipBasisGovernment ScholarshipBasis = "government"
	ScholarshipBasisCustom     ScholarshipBasis = "custom"
)

// =========================================================
// MODEL — scholarship (katalog, reusable)
// =========================================================

type Scholarship struct {
	// PK
	ScholarshipID uuid.UUID `gorm:"column:scholarship_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"scholarship_id"`

	// Tenant
	ScholarshipSchoolID uuid.UUID `gorm:"column:scholarship_school_id;type:uuid;not null;index" json:"scholarship_school_id"`

	ScholarshipName  string           `gorm:"column:scholarship_name;type:varchar(80);not null" json:"scholarship_name"`
	ScholarshipType  ScholarshipType  `gorm:"column:scholarship_type;type:varchar(20);not null" json:"scholarship_type"`
	ScholarshipBasis ScholarshipBasis `gorm:"column:scholarship_basis;type:varchar(20);not null" json:"scholarship_basis"`

	// percentage → 1..100; fixed_amount → paise (> 0).
	// Nilai di luar domain DITOLAK saat create/assign, tidak di-clamp diam-diam.
	ScholarshipValue int64 `gorm:"column:scholarship_value;not null;check:scholarship_value>0" json:"scholarship_value"`

	ScholarshipDescription *string `gorm:"column:scholarship_description;type:text" json:"scholarship_description,omitempty"`
	ScholarshipIsActive    bool    `gorm:"column:scholarship_is_active;not null;default:true;index" json:"scholarship_is_active"`

	// Timestamps
	ScholarshipCreatedAt time.Time      `gorm:"column:scholarship_created_at;not null;autoCreateTime" json:"scholarship_created_at"`
	ScholarshipUpdatedAt time.Time      `gorm:"column:scholarship_updated_at;not null;autoUpdateTime" json:"scholarship_updated_at"`
	ScholarshipDeletedAt gorm.DeletedAt `gorm:"column:scholarship_deleted_at;index" json:"-"`
}

func (Scholarship) TableName() string {
	return "scholarships"
}
