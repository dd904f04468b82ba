// file: internals/features/finance/installments/model/receipt_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// =========================================================
// MODEL — receipt (immutable, 1:1 per payment, dibuat di transaksi
// yang sama dengan payment; render PDF-nya urusan collaborator luar)
// =========================================================

type Receipt struct {
	// PK
	ReceiptID uuid.UUID `gorm:"column:receipt_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"receipt_id"`

	// Tenant
	ReceiptSchoolID uuid.UUID `gorm:"column:receipt_school_id;type:uuid;not null;index;uniqueIndex:uq_receipts_school_no" json:"receipt_school_id"`

	// 1:1 dengan payment
	ReceiptPaymentID uuid.UUID `gorm:"column:receipt_payment_id;type:uuid;not null;uniqueIndex" json:"receipt_payment_id"`

	// Nomor urut human-readable per school, mis. RCP-20260826-000042.
	// Unique per school — wasit terakhir kalau dua transaksi mengalokasikan
	// nomor yang sama (lihat issueReceipt di service).
	ReceiptNo string `gorm:"column:receipt_no;type:varchar(40);not null;uniqueIndex:uq_receipts_school_no" json:"receipt_no"`

	// Snapshot nominal + konteks saat terbit (tidak pernah diedit)
	ReceiptAmount        int64     `gorm:"column:receipt_amount;not null" json:"receipt_amount"`
	ReceiptInstallmentID uuid.UUID `gorm:"column:receipt_installment_id;type:uuid;not null" json:"receipt_installment_id"`
	ReceiptIssuedAt      time.Time `gorm:"column:receipt_issued_at;not null;default:now()" json:"receipt_issued_at"`

	ReceiptCreatedAt time.Time `gorm:"column:receipt_created_at;not null;autoCreateTime" json:"receipt_created_at"`
}

func (Receipt) TableName() string {
	return "receipts"
}
