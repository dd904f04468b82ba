// file: internals/features/finance/installments/model/installment_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// =========================================================
// ENUM — status installment
//
// Status adalah FUNGSI TURUNAN dari {amount, paid, due date, today}
// (lihat service.DeriveStatus). Kolom di bawah murni cache buat query;
// di-refresh di tiap write paid_amount dan oleh sweep harian.
// =========================================================

type InstallmentStatus string

const (
	InstallmentStatusUpcoming InstallmentStatus = "upcoming"
	InstallmentStatusDue      InstallmentStatus = "due"
	InstallmentStatusPartial  InstallmentStatus = "partial"
	InstallmentStatusOverdue  InstallmentStatus = "overdue"
	InstallmentStatusPaid     InstallmentStatus = "paid"
)

// =========================================================
// MODEL
// =========================================================

type Installment struct {
	// PK
	InstallmentID uuid.UUID `gorm:"column:installment_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"installment_id"`

	// Tenant
	InstallmentSchoolID uuid.UUID `gorm:"column:installment_school_id;type:uuid;not null;index" json:"installment_school_id"`

	// FK → student_fee_structures; nomor 1-based unik dalam structure
	InstallmentStructureID uuid.UUID `gorm:"column:installment_structure_id;type:uuid;not null;index:uniq_structure_number,unique,priority:1" json:"installment_structure_id"`
	InstallmentNumber      int       `gorm:"column:installment_number;not null;check:installment_number>=1;index:uniq_structure_number,unique,priority:2" json:"installment_number"`

	// paise; Σ amount seluruh installment == net amount structure (rekonsiliasi
	// remainder masuk ke installment terakhir)
	InstallmentAmount     int64     `gorm:"column:installment_amount;not null;check:installment_amount>=0" json:"installment_amount"`
	InstallmentDueDate    time.Time `gorm:"column:installment_due_date;type:date;not null;index" json:"installment_due_date"`
	InstallmentPaidAmount int64     `gorm:"column:installment_paid_amount;not null;default:0;check:installment_paid_amount>=0" json:"installment_paid_amount"`

	// cache — lihat komentar enum
	InstallmentStatus InstallmentStatus `gorm:"column:installment_status;type:varchar(12);not null;default:'upcoming';index" json:"installment_status"`

	// Timestamps
	InstallmentCreatedAt time.Time      `gorm:"column:installment_created_at;not null;autoCreateTime" json:"installment_created_at"`
	InstallmentUpdatedAt time.Time      `gorm:"column:installment_updated_at;not null;autoUpdateTime" json:"installment_updated_at"`
	InstallmentDeletedAt gorm.DeletedAt `gorm:"column:installment_deleted_at;index" json:"-"`
}

func (Installment) TableName() string {
	return "installments"
}

// Outstanding = amount − paid (tidak pernah negatif karena guard overpay).
func (m Installment) Outstanding() int64 {
	if out := m.InstallmentAmount - m.InstallmentPaidAmount; out > 0 {
		return out
	}
	return 0
}
