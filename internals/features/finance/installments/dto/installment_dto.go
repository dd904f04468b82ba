// file: internals/features/finance/installments/dto/installment_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"schoolku_backend/internals/features/finance/installments/model"
)

// =========================================================
// REQUEST DTO
// =========================================================

// GenerateScheduleDTO — generate (atau regenerate) jadwal cicilan satu
// structure. emi_plan_id kosong = pakai plan default school.
type GenerateScheduleDTO struct {
	EMIPlanID *uuid.UUID `json:"emi_plan_id"`
	StartDate string     `json:"start_date" validate:"required,datetime=2006-01-02"`
	// wajib true kalau regenerate di atas schedule yang sudah ada pembayarannya
	ConfirmRegenerate bool `json:"confirm_regenerate"`
}

type RecordPaymentDTO struct {
	Amount         int64   `json:"amount" validate:"required,gt=0"` // paise
	Mode           string  `json:"mode" validate:"required,oneof=cash upi bank"`
	TransactionRef *string `json:"transaction_ref" validate:"omitempty,max=120"`
	Remarks        *string `json:"remarks"`
}

// =========================================================
// RESPONSE DTO
// =========================================================

type InstallmentResponse struct {
	InstallmentID          uuid.UUID               `json:"installment_id"`
	InstallmentStructureID uuid.UUID               `json:"installment_structure_id"`
	InstallmentNumber      int                     `json:"installment_number"`
	InstallmentAmount      int64                   `json:"installment_amount"`
	InstallmentDueDate     time.Time               `json:"installment_due_date"`
	InstallmentPaidAmount  int64                   `json:"installment_paid_amount"`
	InstallmentOutstanding int64                   `json:"installment_outstanding"`
	InstallmentStatus      model.InstallmentStatus `json:"installment_status"`
}

type PaymentResponse struct {
	PaymentID             uuid.UUID         `json:"payment_id"`
	PaymentInstallmentID  uuid.UUID         `json:"payment_installment_id"`
	PaymentAmount         int64             `json:"payment_amount"`
	PaymentMode           model.PaymentMode `json:"payment_mode"`
	PaymentTransactionRef *string           `json:"payment_transaction_ref,omitempty"`
	PaymentRemarks        *string           `json:"payment_remarks,omitempty"`
	PaymentReceivedAt     time.Time         `json:"payment_received_at"`
	PaymentReceivedBy     uuid.UUID         `json:"payment_received_by"`
}

type ReceiptResponse struct {
	ReceiptID            uuid.UUID `json:"receipt_id"`
	ReceiptNo            string    `json:"receipt_no"`
	ReceiptPaymentID     uuid.UUID `json:"receipt_payment_id"`
	ReceiptInstallmentID uuid.UUID `json:"receipt_installment_id"`
	ReceiptAmount        int64     `json:"receipt_amount"`
	ReceiptIssuedAt      time.Time `json:"receipt_issued_at"`
}

// PaymentWithReceiptResponse — hasil RecordPayment: payment + receipt +
// potret installment setelah pembayaran.
type PaymentWithReceiptResponse struct {
	Payment     PaymentResponse     `json:"payment"`
	Receipt     ReceiptResponse     `json:"receipt"`
	Installment InstallmentResponse `json:"installment"`
}

// =========================================================
// MAPPERS
// =========================================================

func ToInstallmentResponse(m model.Installment) InstallmentResponse {
	return InstallmentResponse{
		InstallmentID:          m.InstallmentID,
		InstallmentStructureID: m.InstallmentStructureID,
		InstallmentNumber:      m.InstallmentNumber,
		InstallmentAmount:      m.InstallmentAmount,
		InstallmentDueDate:     m.InstallmentDueDate,
		InstallmentPaidAmount:  m.InstallmentPaidAmount,
		InstallmentOutstanding: m.Outstanding(),
		InstallmentStatus:      m.InstallmentStatus,
	}
}

func ToInstallmentResponses(list []model.Installment) []InstallmentResponse {
	out := make([]InstallmentResponse, 0, len(list))
	for _, m := range list {
		out = append(out, ToInstallmentResponse(m))
	}
	return out
}

func ToPaymentResponse(m model.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID:             m.PaymentID,
		PaymentInstallmentID:  m.PaymentInstallmentID,
		PaymentAmount:         m.PaymentAmount,
		PaymentMode:           m.PaymentMode,
		PaymentTransactionRef: m.PaymentTransactionRef,
		PaymentRemarks:        m.PaymentRemarks,
		PaymentReceivedAt:     m.PaymentReceivedAt,
		PaymentReceivedBy:     m.PaymentReceivedBy,
	}
}

func ToReceiptResponse(m model.Receipt) ReceiptResponse {
	return ReceiptResponse{
		ReceiptID:            m.ReceiptID,
		ReceiptNo:            m.ReceiptNo,
		ReceiptPaymentID:     m.ReceiptPaymentID,
		ReceiptInstallmentID: m.ReceiptInstallmentID,
		ReceiptAmount:        m.ReceiptAmount,
		ReceiptIssuedAt:      m.ReceiptIssuedAt,
	}
}
