// file: internals/features/finance/installments/controller/installment_controller.go
package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	emiModel "schoolku_backend/internals/features/finance/emiplans/model"
	"schoolku_backend/internals/features/finance/installments/dto"
	"schoolku_backend/internals/features/finance/installments/model"
	"schoolku_backend/internals/features/finance/installments/service"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
	"schoolku_backend/internals/helpers/money"
)

type InstallmentHandler struct {
	DB *gorm.DB
}

var validate = validator.New()

// -----------------------------------------
// GenerateSchedule (POST /student-fee-structures/:id/installments)
//
// Jadwal di-generate dari EMI plan (eksplisit atau default school).
// Regenerate di atas pembayaran tercatat butuh confirm_regenerate.
// -----------------------------------------
func (h *InstallmentHandler) GenerateSchedule(c *fiber.Ctx) error {
	schoolID, err := helperAuth.SchoolIDFromPath(c)
	if err != nil {
		return err
	}
	if err := helperAuth.EnsureStaffSchool(c, schoolID); err != nil {
		return err
	}
	structureID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id tidak valid")
	}

	var in dto.GenerateScheduleDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := validate.Struct(in); err != nil {
		return helper.JsonValidationError(c, helper.ValidatorErrorsToMap(err))
	}

	startDate, err := time.Parse("2006-01-02", in.StartDate)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "start_date tidak valid (YYYY-MM-DD)")
	}

	// resolve plan: eksplisit → by id; kosong → default school
	var plan emiModel.EMIPlanTemplate
	q := h.DB.Where("emi_plan_template_school_id = ?", schoolID)
	if in.EMIPlanID != nil {
		q = q.Where("emi_plan_template_id = ?", *in.EMIPlanID)
	} else {
		q = q.Where("emi_plan_template_is_default = TRUE")
	}
	if err := q.First(&plan).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "emi plan tidak ditemukan (set default dulu atau kirim emi_plan_id)")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	parts, err := plan.SplitParts()
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	actorID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	created, err := service.GenerateSchedule(h.DB, service.GenerateScheduleInput{
		StructureID:       structureID,
		SchoolID:          schoolID,
		StartDate:         startDate,
		Parts:             parts,
		ConfirmRegenerate: in.ConfirmRegenerate,
		ActorUserID:       actorID,
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.JsonCreated(c, "installment schedule generated", dto.ToInstallmentResponses(created))
}

// -----------------------------------------
// ListByStructure (GET /student-fee-structures/:id/installments)
// -----------------------------------------
func (h *InstallmentHandler) ListByStructure(c *fiber.Ctx) error {
	schoolID, err := helperAuth.SchoolIDFromPath(c)
	if err != nil {
		return err
	}
	if err := helperAuth.EnsureMemberSchool(c, schoolID); err != nil {
		return err
	}
	structureID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id tidak valid")
	}

	var list []model.Installment
	if err := h.DB.
		Where("installment_structure_id = ? AND installment_school_id = ?", structureID, schoolID).
		Order("installment_number ASC").
		Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonOK(c, "ok", dto.ToInstallmentResponses(list))
}

// -----------------------------------------
// ListDue (GET /installments?status=&due_before=)
// Buat dashboard penagihan: filter status cache + due date.
// -----------------------------------------
func (h *InstallmentHandler) ListDue(c *fiber.Ctx) error {
	schoolID, err := helperAuth.SchoolIDFromPath(c)
	if err != nil {
		return err
	}
	if err := helperAuth.EnsureStaffSchool(c, schoolID); err != nil {
		return err
	}

	p := helper.ParseFiber(c, "created_at", "desc", helper.DefaultOpts)

	q := h.DB.Model(&model.Installment{}).
		Where("installment_school_id = ?", schoolID)

	if v := c.Query("status"); v != "" {
		q = q.Where("installment_status = ?", v)
	}
	if v := c.Query("due_before"); v != "" {
		if d, e := time.Parse("2006-01-02", v); e == nil {
			q = q.Where("installment_due_date < ?", d)
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var list []model.Installment
	if err := q.
		Order("installment_due_date ASC").
		Limit(p.Limit()).
		Offset(p.Offset()).
		Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "ok", dto.ToInstallmentResponses(list), helper.BuildMeta(total, p))
}

// -----------------------------------------
// RecordPayment (POST /installments/:id/payments)
// received_by diambil dari token — bukan dari body.
// -----------------------------------------
func (h *InstallmentHandler) RecordPayment(c *fiber.Ctx) error {
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

	var in dto.RecordPaymentDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := validate.Struct(in); err != nil {
		return helper.JsonValidationError(c, helper.ValidatorErrorsToMap(err))
	}

	receivedBy, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	res, err := service.RecordPayment(h.DB, service.RecordPaymentInput{
		SchoolID:       schoolID,
		InstallmentID:  installmentID,
		Amount:         money.Paise(in.Amount),
		Mode:           model.PaymentMode(in.Mode),
		TransactionRef: in.TransactionRef,
		Remarks:        in.Remarks,
		ReceivedBy:     receivedBy,
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.JsonCreated(c, "payment recorded", dto.PaymentWithReceiptResponse{
		Payment:     dto.ToPaymentResponse(res.Payment),
		Receipt:     dto.ToReceiptResponse(res.Receipt),
		Installment: dto.ToInstallmentResponse(res.Installment),
	})
}

// -----------------------------------------
// ListPayments (GET /installments/:id/payments) — history per installment
// -----------------------------------------
func (h *InstallmentHandler) ListPayments(c *fiber.Ctx) error {
	schoolID, err := helperAuth.SchoolIDFromPath(c)
	if err != nil {
		return err
	}
	if err := helperAuth.EnsureMemberSchool(c, schoolID); err != nil {
		return err
	}
	installmentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id tidak valid")
	}

	var list []model.Payment
	if err := h.DB.
		Where("payment_installment_id = ? AND payment_school_id = ?", installmentID, schoolID).
		Order("payment_received_at ASC").
		Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	out := make([]dto.PaymentResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.ToPaymentResponse(m))
	}
	return helper.JsonOK(c, "ok", out)
}

// -----------------------------------------
// GetReceipt (GET /receipts/:id) — by id atau by nomor (RCP-...)
// -----------------------------------------
func (h *InstallmentHandler) GetReceipt(c *fiber.Ctx) error {
	schoolID, err := helperAuth.SchoolIDFromPath(c)
	if err != nil {
		return err
	}
	if err := helperAuth.EnsureMemberSchool(c, schoolID); err != nil {
		return err
	}

	raw := c.Params("id")
	q := h.DB.Where("receipt_school_id = ?", schoolID)
	if id, e := uuid.Parse(raw); e == nil {
		q = q.Where("receipt_id = ?", id)
	} else {
		q = q.Where("receipt_no = ?", raw)
	}

	var rcp model.Receipt
	if err := q.First(&rcp).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "receipt tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonOK(c, "ok", dto.ToReceiptResponse(rcp))
}
