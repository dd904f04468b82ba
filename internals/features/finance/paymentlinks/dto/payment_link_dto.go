// file: internals/features/finance/paymentlinks/dto/payment_link_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"schoolku_backend/internals/features/finance/paymentlinks/model"
)

type PaymentLinkCreateDTO struct {
	// nama murid buat customer detail gateway (opsional)
	StudentName *string `json:"student_name" validate:"omitempty,max=80"`
	// TTL jam; 0 = default server
	ExpiresInHours int `json:"expires_in_hours" validate:"omitempty,min=1,max=168"`
}

type PaymentLinkResponse struct {
	PaymentLinkID            uuid.UUID               `json:"payment_link_id"`
	PaymentLinkInstallmentID uuid.UUID               `json:"payment_link_installment_id"`
	PaymentLinkAmount        int64                   `json:"payment_link_amount"`
	PaymentLinkOrderID       string                  `json:"payment_link_order_id"`
	PaymentLinkSnapToken     *string                 `json:"payment_link_snap_token,omitempty"`
	PaymentLinkPaymentURL    *string                 `json:"payment_link_payment_url,omitempty"`
	PaymentLinkStatus        model.PaymentLinkStatus `json:"payment_link_status"`
	PaymentLinkExpiresAt     time.Time               `json:"payment_link_expires_at"`
	PaymentLinkCreatedAt     time.Time               `json:"payment_link_created_at"`
}

func ToPaymentLinkResponse(m model.PaymentLink) PaymentLinkResponse {
	return PaymentLinkResponse{
		PaymentLinkID:            m.PaymentLinkID,
		PaymentLinkInstallmentID: m.PaymentLinkInstallmentID,
		PaymentLinkAmount:        m.PaymentLinkAmount,
		PaymentLinkOrderID:       m.PaymentLinkOrderID,
		PaymentLinkSnapToken:     m.PaymentLinkSnapToken,
		PaymentLinkPaymentURL:    m.PaymentLinkPaymentURL,
		PaymentLinkStatus:        m.PaymentLinkStatus,
		PaymentLinkExpiresAt:     m.PaymentLinkExpiresAt,
		PaymentLinkCreatedAt:     m.PaymentLinkCreatedAt,
	}
}

func ToPaymentLinkResponses(list []model.PaymentLink) []PaymentLinkResponse {
	out := make([]PaymentLinkResponse, 0, len(list))
	for _, m := range list {
		out = append(out, ToPaymentLinkResponse(m))
	}
	return out
}
