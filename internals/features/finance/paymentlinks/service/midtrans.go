// file: internals/features/finance/paymentlinks/service/midtrans.go
package service

import (
	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"

	"schoolku_backend/internals/features/finance/paymentlinks/model"
)

var SnapClient snap.Client

// InitMidtrans menginisialisasi Midtrans Snap Client dengan server key.
func InitMidtrans(serverKey string, useProd bool) {
	env := midtrans.Sandbox
	if useProd {
		env = midtrans.Production
	}
	SnapClient.New(serverKey, env)
}

// GenerateSnapToken membuat token Snap untuk satu payment link.
// Gateway menerima nominal rupee utuh — amount paise dibagi 100.
func GenerateSnapToken(link model.PaymentLink, studentName string) (string, string, error) {
	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  link.PaymentLinkOrderID,
			GrossAmt: link.PaymentLinkAmount / 100,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: studentName,
		},
	}

	resp, err := SnapClient.CreateTransaction(req)
	if err != nil {
		return "", "", err
	}
	return resp.Token, resp.RedirectURL, nil
}
