package service

import (
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"schoolku_backend/internals/helpers/errs"
	"schoolku_backend/internals/helpers/money"
)

func TestValidatePaymentAmount(t *testing.T) {
	amount := money.FromRupees(3_300)

	t.Run("rejects non-positive", func(t *testing.T) {
		assert.Error(t, ValidatePaymentAmount(amount, 0, 0))
		assert.Error(t, ValidatePaymentAmount(amount, 0, -1))
	})

	t.Run("rejects overpay", func(t *testing.T) {
		err := ValidatePaymentAmount(amount, money.FromRupees(3_000), money.FromRupees(301))
		assert.Error(t, err)
		assert.True(t, errs.IsConflict(err))
	})

	t.Run("exact outstanding is fine", func(t *testing.T) {
		assert.NoError(t, ValidatePaymentAmount(amount, money.FromRupees(3_000), money.FromRupees(300)))
	})

	t.Run("full payment in one go", func(t *testing.T) {
		assert.NoError(t, ValidatePaymentAmount(amount, 0, amount))
	})

	t.Run("already settled rejects any further payment", func(t *testing.T) {
		// installment 3.300 sudah lunas → pembayaran positif apa pun conflict
		err := ValidatePaymentAmount(amount, amount, money.Paise(1))
		assert.Error(t, err)
		assert.True(t, errs.IsConflict(err))
	})
}

func TestReceiptNo(t *testing.T) {
	t.Run("zero-pads the daily sequence", func(t *testing.T) {
		assert.Equal(t, "RCP-20260826-000001", receiptNo("20260826", 1))
		assert.Equal(t, "RCP-20260826-000042", receiptNo("20260826", 42))
	})

	t.Run("sequence beyond six digits still distinct", func(t *testing.T) {
		assert.Equal(t, "RCP-20260826-1000000", receiptNo("20260826", 1_000_000))
	})

	t.Run("consecutive sequences never collide", func(t *testing.T) {
		seen := map[string]bool{}
		for seq := int64(1); seq <= 500; seq++ {
			no := receiptNo("20260826", seq)
			assert.False(t, seen[no], "nomor %s muncul dua kali", no)
			seen[no] = true
		}
	})
}

// Retry di issueReceipt hanya boleh jalan untuk pelanggaran unique constraint:
// dua transaksi paralel (installment berbeda, school sama) membaca count hari
// yang sama, keduanya merakit nomor identik, dan yang kalah harus mengulang —
// error lain tetap menggagalkan transaksi.
func TestIsUniqueViolation(t *testing.T) {
	t.Run("pq 23505 detected, also when wrapped", func(t *testing.T) {
		dup := &pq.Error{Code: "23505"}
		assert.True(t, isUniqueViolation(dup))
		assert.True(t, isUniqueViolation(fmt.Errorf("insert receipt: %w", dup)))
	})

	t.Run("other pq codes and plain errors are not retryable", func(t *testing.T) {
		assert.False(t, isUniqueViolation(&pq.Error{Code: "23503"}))
		assert.False(t, isUniqueViolation(fmt.Errorf("connection reset")))
		assert.False(t, isUniqueViolation(nil))
	})
}
