// file: internals/features/finance/paymentlinks/controller/payment_link_controller.go
package controller

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	instModel "schoolku_backend/internals/features/finance/installments/model"
	"schoolku_backend/internals/features/finance/paymentlinks/dto"
	"schoolku_backend/internals/features/finance/paymentlinks/model"
	"schoolku_backend/internals/features/finance/paymentlinks/service"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

type PaymentLinkHandler struct {
	DB *gorm.DB
}

var validate = validator.New()

func defaultLinkTTL() time.Duration {
	hours := 24
	if v := os.Getenv("PAYMENT_LINK_TTL_HOURS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			hours = parsed
		}
	}
	return time.Duration(hours) * time.Hour
}

// -----------------------------------------
// Create (POST /installments/:id/payment-link)
//
// Nominal dibekukan = outstanding saat ini. Satu link active per
// installment — bikin lagi saat masih ada yang active → Conflict.
// -----------------------------------------
func (h *PaymentLinkHandler) Create(c *fiber.Ctx) error {
	schoolID, err := helperAuth.SchoolIDFromPath(c)
	if err != nil {
		return err
	}
	if err := helperAuth.EnsureStaffSchool(c, schoolID); err != nil {
		return err
	}
	installmentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id tidak valid")
	}

	// body boleh kosong — semua field opsional
	var in dto.PaymentLinkCreateDTO
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
		}
	}
	if err := validate.Struct(in); err != nil {
		return helper.JsonValidationError(c, helper.ValidatorErrorsToMap(err))
	}

	createdBy, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var link model.PaymentLink
	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		var inst instModel.Installment
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("installment_id = ? AND installment_school_id = ?", installmentID, schoolID).
			First(&inst).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "installment tidak ditemukan")
			}
			return err
		}
		if inst.Outstanding() <= 0 {
			return fiber.NewError(fiber.StatusConflict, "installment sudah lunas")
		}

		var activeCount int64
		if err := tx.Model(&model.PaymentLink{}).
			Where("payment_link_installment_id = ? AND payment_link_status = ? AND payment_link_expires_at > ?",
				installmentID, model.PaymentLinkStatusActive, time.Now()).
			Count(&activeCount).Error; err != nil {
			return err
		}
		if activeCount > 0 {
			return fiber.NewError(fiber.StatusConflict, "masih ada payment link active untuk installment ini")
		}

		ttl := defaultLinkTTL()
		if in.ExpiresInHours > 0 {
			ttl = time.Duration(in.ExpiresInHours) * time.Hour
		}

		link = model.PaymentLink{
			PaymentLinkSchoolID:      schoolID,
			PaymentLinkInstallmentID: installmentID,
			PaymentLinkAmount:        inst.Outstanding(),
			PaymentLinkOrderID:       fmt.Sprintf("FEE-%s", uuid.New().String()[:23]),
			PaymentLinkStatus:        model.PaymentLinkStatusActive,
			PaymentLinkExpiresAt:     time.Now().Add(ttl),
			PaymentLinkCreatedBy:     createdBy,
		}

		name := ""
		if in.StudentName != nil {
			name = strings.TrimSpace(*in.StudentName)
		}
		token, redirectURL, err := service.GenerateSnapToken(link, name)
		if err != nil {
			log.Printf("[PAYMENT_LINK] gagal generate snap token: %v", err)
			return fiber.NewError(fiber.StatusBadGateway, "gateway pembayaran tidak bisa dihubungi")
		}
		link.PaymentLinkSnapToken = &token
		link.PaymentLinkPaymentURL = &redirectURL

		return tx.Create(&link).Error
	}); err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.JsonCreated(c, "payment link created", dto.ToPaymentLinkResponse(link))
}

// -----------------------------------------
// Cancel (POST /payment-links/:id/cancel)
// -----------------------------------------
func (h *PaymentLinkHandler) Cancel(c *fiber.Ctx) error {
	schoolID, err := helperAuth.SchoolIDFromPath(c)
	if err != nil {
		return err
	}
	if err := helperAuth.EnsureStaffSchool(c, schoolID); err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id tidak valid")
	}

	var link model.PaymentLink
	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("payment_link_id = ? AND payment_link_school_id = ?", id, schoolID).
			First(&link).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "payment link tidak ditemukan")
			}
			return err
		}

		now := time.Now()
		if err := service.ValidateCancel(link, now); err != nil {
			// persist expired kalau baru teramati di sini
			if service.EffectiveStatus(link, now) == model.PaymentLinkStatusExpired &&
				link.PaymentLinkStatus == model.PaymentLinkStatusActive {
				_ = tx.Model(&model.PaymentLink{}).
					Where("payment_link_id = ?", link.PaymentLinkID).
					Update("payment_link_status", model.PaymentLinkStatusExpired).Error
			}
			return err
		}

		link.PaymentLinkStatus = model.PaymentLinkStatusCancelled
		return tx.Model(&model.PaymentLink{}).
			Where("payment_link_id = ?", link.PaymentLinkID).
			Update("payment_link_status", model.PaymentLinkStatusCancelled).Error
	}); err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.JsonUpdated(c, "payment link cancelled", dto.ToPaymentLinkResponse(link))
}

// -----------------------------------------
// List (GET /payment-links?status=&installment_id=)
// -----------------------------------------
func (h *PaymentLinkHandler) List(c *fiber.Ctx) error {
	schoolID, err := helperAuth.SchoolIDFromPath(c)
	if err != nil {
		return err
	}
	if err := helperAuth.EnsureStaffSchool(c, schoolID); err != nil {
		return err
	}

	p := helper.ParseFiber(c, "created_at", "desc", helper.DefaultOpts)

	q := h.DB.Model(&model.PaymentLink{}).
		Where("payment_link_school_id = ?", schoolID)

	if v := c.Query("status"); v != "" {
		q = q.Where("payment_link_status = ?", v)
	}
	if v := c.Query("installment_id"); v != "" {
		if iid, e := uuid.Parse(v); e == nil {
			q = q.Where("payment_link_installment_id = ?", iid)
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var list []model.PaymentLink
	if err := q.
		Order("payment_link_created_at DESC").
		Limit(p.Limit()).
		Offset(p.Offset()).
		Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "ok", dto.ToPaymentLinkResponses(list), helper.BuildMeta(total, p))
}

// -----------------------------------------
// HandleWebhook (POST /payment-links/webhook) — PUBLIC, dipanggil gateway.
// Selalu ack 200 untuk notifikasi yang sudah diproses/diabaikan supaya
// gateway berhenti retry.
// -----------------------------------------
func (h *PaymentLinkHandler) HandleWebhook(c *fiber.Ctx) error {
	var body map[string]interface{}
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid webhook payload")
	}

	orderID, _ := body["order_id"].(string)
	transactionStatus, _ := body["transaction_status"].(string)
	if orderID == "" || transactionStatus == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "order_id / transaction_status kosong")
	}

	if err := service.HandleGatewayNotification(h.DB, orderID, transactionStatus); err != nil {
		log.Printf("[WEBHOOK] order=%s status=%s gagal: %v", orderID, transactionStatus, err)
		return helper.FromFiberError(c, err)
	}

	return helper.JsonOK(c, "notification processed", fiber.Map{"order_id": orderID})
}
