package dto

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestBatchFeeStructureUpdateItemsReplace(t *testing.T) {
	t.Run("nil items leaves existing items untouched", func(t *testing.T) {
		items, replace, err := BatchFeeStructureUpdateDTO{}.ItemsReplace()
		assert.NoError(t, err)
		assert.False(t, replace)
		assert.Nil(t, items)
	})

	t.Run("explicit empty array is rejected, not a wipe", func(t *testing.T) {
		// `"items": []` lolos validator (omitempty skip slice kosong) — tanpa
		// cek ini seluruh line item terhapus lalu insert kosong gagal di tengah tx
		_, replace, err := BatchFeeStructureUpdateDTO{
			Items: []BatchFeeStructureItemDTO{},
		}.ItemsReplace()
		assert.Error(t, err)
		assert.False(t, replace)
	})

	t.Run("non-empty array means full replace", func(t *testing.T) {
		in := BatchFeeStructureUpdateDTO{
			Items: []BatchFeeStructureItemDTO{
				{FeeComponentID: uuid.New(), Amount: 150_000_00},
				{FeeComponentID: uuid.New(), Amount: 25_000_00},
			},
		}
		items, replace, err := in.ItemsReplace()
		assert.NoError(t, err)
		assert.True(t, replace)
		assert.Len(t, items, 2)
	})
}
