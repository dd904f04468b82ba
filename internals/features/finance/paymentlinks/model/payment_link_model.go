// file: internals/features/finance/paymentlinks/model/payment_link_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// =========================================================
// ENUM — status payment link
//
// active → paid      (settlement dari gateway)
// active → expired   (lewat expires_at; dipersist saat teramati)
// active → cancelled (dibatalkan staff / ditolak gateway)
// paid / expired / cancelled = terminal.
// =========================================================

type PaymentLinkStatus string

const (
	PaymentLinkStatusActive    PaymentLinkStatus = "active"
	PaymentLinkStatusPaid      PaymentLinkStatus = "paid"
	PaymentLinkStatusExpired   PaymentLinkStatus = "expired"
	PaymentLinkStatusCancelled PaymentLinkStatus = "cancelled"
)

// =========================================================
// MODEL
// =========================================================

type PaymentLink struct {
	// PK
	PaymentLinkID uuid.UUID `gorm:"column:payment_link_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"payment_link_id"`

	// Tenant
	PaymentLinkSchoolID uuid.UUID `gorm:"column:payment_link_school_id;type:uuid;not null;index" json:"payment_link_school_id"`

	// FK → installments
	PaymentLinkInstallmentID uuid.UUID `gorm:"column:payment_link_installment_id;type:uuid;not null;index" json:"payment_link_installment_id"`

	// paise; nominal dibekukan saat link dibuat (= outstanding saat itu)
	PaymentLinkAmount int64 `gorm:"column:payment_link_amount;not null;check:payment_link_amount>0" json:"payment_link_amount"`

	// Order ID yang dikirim ke gateway — kunci korelasi webhook
	PaymentLinkOrderID string `gorm:"column:payment_link_order_id;type:varchar(64);not null;uniqueIndex" json:"payment_link_order_id"`

	PaymentLinkSnapToken  *string `gorm:"column:payment_link_snap_token;type:varchar(120)" json:"payment_link_snap_token,omitempty"`
	PaymentLinkPaymentURL *string `gorm:"column:payment_link_payment_url;type:text" json:"payment_link_payment_url,omitempty"`

	PaymentLinkStatus    PaymentLinkStatus `gorm:"column:payment_link_status;type:varchar(10);not null;default:'active';index" json:"payment_link_status"`
	PaymentLinkExpiresAt time.Time         `gorm:"column:payment_link_expires_at;not null" json:"payment_link_expires_at"`

	PaymentLinkCreatedBy uuid.UUID `gorm:"column:payment_link_created_by;type:uuid;not null" json:"payment_link_created_by"`

	// Timestamps
	PaymentLinkCreatedAt time.Time `gorm:"column:payment_link_created_at;not null;autoCreateTime" json:"payment_link_created_at"`
	PaymentLinkUpdatedAt time.Time `gorm:"column:payment_link_updated_at;not null;autoUpdateTime" json:"payment_link_updated_at"`
}

func (PaymentLink) TableName() string {
	return "payment_links"
}
