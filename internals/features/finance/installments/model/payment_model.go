// file: internals/features/finance/installments/model/payment_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// =========================================================
// ENUM — mode pembayaran
// =========================================================

type PaymentMode string

const (
	PaymentModeCash PaymentMode = "cash"
	PaymentModeUPI  PaymentMode = "upi"
	PaymentModeBank PaymentMode = "bank"
	// dipakai internal webhook gateway, tidak diterima dari input kasir
	PaymentModeGateway PaymentMode = "gateway"
)

// =========================================================
// MODEL — payment (APPEND-ONLY: tidak ada update/delete;
// koreksi dilakukan lewat entry baru, bukan mutasi history)
// =========================================================

type Payment struct {
	// PK
	PaymentID uuid.UUID `gorm:"column:payment_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"payment_id"`

	// Tenant
	PaymentSchoolID uuid.UUID `gorm:"column:payment_school_id;type:uuid;not null;index" json:"payment_school_id"`

	// FK → installments
	PaymentInstallmentID uuid.UUID `gorm:"column:payment_installment_id;type:uuid;not null;index" json:"payment_installment_id"`

	// paise, > 0; dijaga kontrak ledger: tidak boleh bikin paid > amount
	PaymentAmount int64 `gorm:"column:payment_amount;not null;check:payment_amount>0" json:"payment_amount"`

	PaymentMode           PaymentMode `gorm:"column:payment_mode;type:varchar(10);not null" json:"payment_mode"`
	PaymentTransactionRef *string     `gorm:"column:payment_transaction_ref;type:varchar(120)" json:"payment_transaction_ref,omitempty"`
	PaymentRemarks        *string     `gorm:"column:payment_remarks;type:text" json:"payment_remarks,omitempty"`

	PaymentReceivedAt time.Time `gorm:"column:payment_received_at;not null;default:now()" json:"payment_received_at"`
	PaymentReceivedBy uuid.UUID `gorm:"column:payment_received_by;type:uuid;not null" json:"payment_received_by"`

	PaymentCreatedAt time.Time `gorm:"column:payment_created_at;not null;autoCreateTime" json:"payment_created_at"`
}

func (Payment) TableName() string {
	return "payments"
}
