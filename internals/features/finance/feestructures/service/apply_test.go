package service

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestDecideExisting(t *testing.T) {
	tests := []struct {
		name        string
		hasExisting bool
		overwrite   bool
		want        existingAction
	}{
		{"murid tanpa structure → fresh apply", false, false, applyFresh},
		{"overwrite tanpa structure lama tetap fresh", false, true, applyFresh},
		{"structure sudah ada, overwrite=false → skip", true, false, applySkip},
		{"structure sudah ada, overwrite=true → overwrite", true, true, applyOverwrite},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, decideExisting(tc.hasExisting, tc.overwrite))
		})
	}
}

func TestApplyResultTally(t *testing.T) {
	t.Run("second pass over same students yields applied=0", func(t *testing.T) {
		students := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}

		// pass pertama: semua murid baru
		first := ApplyResult{Errors: []ApplyError{}}
		for _, id := range students {
			first.tally(id, nil)
		}
		assert.Equal(t, 3, first.Applied)
		assert.Equal(t, 0, first.Skipped)

		// pass kedua tanpa overwrite: semua kena sentinel skip
		second := ApplyResult{Errors: []ApplyError{}}
		for _, id := range students {
			second.tally(id, errSkipExisting)
		}
		assert.Equal(t, 0, second.Applied)
		assert.Equal(t, 3, second.Skipped)
		assert.Empty(t, second.Errors)
	})

	t.Run("wrapped skip sentinel still counts as skipped", func(t *testing.T) {
		var res ApplyResult
		res.tally(uuid.New(), errors.Join(errSkipExisting))
		assert.Equal(t, 1, res.Skipped)
		assert.Equal(t, 0, res.Applied)
	})

	t.Run("one failing student does not mask the others", func(t *testing.T) {
		ok, bad := uuid.New(), uuid.New()

		var res ApplyResult
		res.tally(ok, nil)
		res.tally(bad, errors.New("batch_students tidak ditemukan"))
		res.tally(uuid.New(), errSkipExisting)

		assert.Equal(t, 1, res.Applied)
		assert.Equal(t, 1, res.Skipped)
		if assert.Len(t, res.Errors, 1) {
			assert.Equal(t, bad, res.Errors[0].StudentID)
		}
	})
}
