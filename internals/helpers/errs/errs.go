// file: internals/helpers/errs/errs.go
//
// Taksonomi error engine keuangan. Semua recoverable-by-caller dan dibawa
// sebagai *fiber.Error supaya controller tinggal render via helper.FromFiberError:
//
//	Validation → 422  input malformed (amount <= 0, persen > 100, split != 100)
//	Conflict   → 409  regenerate saat sudah ada pembayaran, duplicate batch+session, overpay
//	NotFound   → 404  entitas tidak ada / di luar scope tenant
//	State      → 422  operasi tidak valid untuk status sekarang (cancel link paid, dll)
package errs

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

func Validation(msg string) error {
	return fiber.NewError(fiber.StatusUnprocessableEntity, msg)
}

func Conflict(msg string) error {
	return fiber.NewError(fiber.StatusConflict, msg)
}

func NotFound(msg string) error {
	return fiber.NewError(fiber.StatusNotFound, msg)
}

// State memakai 422 juga, tapi dibedakan lewat prefix pesan supaya
// kelihatan di log/error envelope.
func State(msg string) error {
	return fiber.NewError(fiber.StatusUnprocessableEntity, "invalid state: "+msg)
}

func IsValidation(err error) bool { return hasCode(err, fiber.StatusUnprocessableEntity) }
func IsConflict(err error) bool   { return hasCode(err, fiber.StatusConflict) }
func IsNotFound(err error) bool   { return hasCode(err, fiber.StatusNotFound) }

func hasCode(err error, code int) bool {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code == code
	}
	return false
}
