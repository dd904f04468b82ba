// file: internals/features/finance/paymentlinks/service/webhook.go
//
// Handler notifikasi gateway. Korelasi lewat order_id; idempoten terhadap
// notifikasi duplikat (settlement kedua untuk link paid → no-op).
package service

import (
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	fsModel "schoolku_backend/internals/features/finance/feestructures/model"
	instModel "schoolku_backend/internals/features/finance/installments/model"
	instService "schoolku_backend/internals/features/finance/installments/service"
	"schoolku_backend/internals/features/finance/paymentlinks/model"
	"schoolku_backend/internals/helpers/errs"
	"schoolku_backend/internals/helpers/money"
)

// HandleGatewayNotification memproses satu notifikasi midtrans:
//
//	settlement/capture → RecordPayment min(link, sisa tagihan) + link paid
//	expire             → link expired
//	cancel/deny        → link cancelled
//	pending/lainnya    → no-op
func HandleGatewayNotification(db *gorm.DB, orderID, transactionStatus string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var link model.PaymentLink
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("payment_link_order_id = ?", orderID).
			First(&link).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NotFound("payment link tidak ditemukan untuk order " + orderID)
			}
			return err
		}

		now := time.Now()

		switch transactionStatus {
		case "settlement", "capture", "success":
			if err := ValidateSettle(link, now); err != nil {
				// duplikat settlement: sudah paid → cukup ack, jangan 500
				if errs.IsConflict(err) {
					log.Printf("[WEBHOOK] notifikasi duplikat untuk order %s diabaikan", orderID)
					return nil
				}
				return err
			}

			// Sisa tagihan bisa sudah mengecil (pembayaran tunai masuk setelah
			// link dibuat) — dicatat min(nominal link, sisa), bukan nominal
			// beku link, supaya RecordPayment tidak conflict selamanya padahal
			// gateway sudah menarik uangnya.
			var inst instModel.Installment
			if err := tx.
				Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("installment_id = ? AND installment_school_id = ?",
					link.PaymentLinkInstallmentID, link.PaymentLinkSchoolID).
				First(&inst).Error; err != nil {
				return err
			}

			amount := SettlementAmount(money.Paise(link.PaymentLinkAmount), money.Paise(inst.Outstanding()))

			if amount > 0 {
				ref := link.PaymentLinkOrderID
				if _, err := instService.RecordPayment(tx, instService.RecordPaymentInput{
					SchoolID:       link.PaymentLinkSchoolID,
					InstallmentID:  link.PaymentLinkInstallmentID,
					Amount:         amount,
					Mode:           instModel.PaymentModeGateway,
					TransactionRef: &ref,
					ReceivedBy:     link.PaymentLinkCreatedBy,
				}); err != nil {
					return err
				}
			}
			if over := money.Paise(link.PaymentLinkAmount) - amount; over > 0 {
				log.Printf("[WEBHOOK] order %s: gateway menarik %s melebihi sisa tagihan, dicatat %s — perlu rekonsiliasi",
					orderID, over.String(), amount.String())
				if err := recordOverCollection(tx, link, amount, over); err != nil {
					return err
				}
			}
			return setLinkStatus(tx, &link, model.PaymentLinkStatusPaid)

		case "expire":
			if link.PaymentLinkStatus != model.PaymentLinkStatusActive {
				return nil
			}
			return setLinkStatus(tx, &link, model.PaymentLinkStatusExpired)

		case "cancel", "deny", "failure":
			if link.PaymentLinkStatus != model.PaymentLinkStatusActive {
				return nil
			}
			return setLinkStatus(tx, &link, model.PaymentLinkStatusCancelled)

		default:
			// pending dsb — biarkan active
			return nil
		}
	})
}

type overCollectionPayload struct {
	OrderID        string    `json:"order_id"`
	PaymentLinkID  uuid.UUID `json:"payment_link_id"`
	InstallmentID  uuid.UUID `json:"installment_id"`
	GatewayAmount  int64     `json:"gateway_amount"`
	RecordedAmount int64     `json:"recorded_amount"`
	OverAmount     int64     `json:"over_amount"`
}

// recordOverCollection mencatat selisih tarikan gateway vs yang masuk ledger
// sebagai audit event, bahan rekonsiliasi/refund manual oleh bendahara.
func recordOverCollection(tx *gorm.DB, link model.PaymentLink, recorded, over money.Paise) error {
	payload, err := json.Marshal(overCollectionPayload{
		OrderID:        link.PaymentLinkOrderID,
		PaymentLinkID:  link.PaymentLinkID,
		InstallmentID:  link.PaymentLinkInstallmentID,
		GatewayAmount:  link.PaymentLinkAmount,
		RecordedAmount: int64(recorded),
		OverAmount:     int64(over),
	})
	if err != nil {
		return err
	}
	return tx.Create(&fsModel.FeeAuditEvent{
		FeeAuditEventSchoolID: link.PaymentLinkSchoolID,
		FeeAuditEventType:     fsModel.FeeAuditEventGatewayOverCollection,
		FeeAuditEventEntityID: link.PaymentLinkID,
		FeeAuditEventPayload:  datatypes.JSON(payload),
	}).Error
}

func setLinkStatus(tx *gorm.DB, link *model.PaymentLink, st model.PaymentLinkStatus) error {
	link.PaymentLinkStatus = st
	return tx.Model(&model.PaymentLink{}).
		Where("payment_link_id = ?", link.PaymentLinkID).
		Update("payment_link_status", st).Error
}
