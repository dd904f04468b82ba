// file: internals/features/finance/emiplans/controller/emi_plan_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/finance/emiplans/dto"
	"schoolku_backend/internals/features/finance/emiplans/model"
	"schoolku_backend/internals/features/finance/emiplans/service"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

type EMIPlanHandler struct {
	DB *gorm.DB
}

var validate = validator.New()

// -----------------------------------------
// List (GET /emi-plans)
// -----------------------------------------
func (h *EMIPlanHandler) List(c *fiber.Ctx) error {
	schoolID, err := helperAuth.SchoolIDFromPath(c)
	if err != nil {
		return err
	}
	if err := helperAuth.EnsureMemberSchool(c, schoolID); err != nil {
		return err
	}

	p := helper.ParseFiber(c, "created_at", "desc", helper.DefaultOpts)

	q := h.DB.Model(&model.EMIPlanTemplate{}).
		Where("emi_plan_template_school_id = ?", schoolID)

	if v := strings.TrimSpace(c.Query("q")); v != "" {
		q = q.Where("emi_plan_template_name ILIKE ?", "%"+v+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var list []model.EMIPlanTemplate
	if err := q.
		Order("emi_plan_template_is_default DESC, emi_plan_template_created_at DESC").
		Limit(p.Limit()).
		Offset(p.Offset()).
		Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "ok", dto.ToEMIPlanResponses(list), helper.BuildMeta(total, p))
}

// -----------------------------------------
// Create (POST /emi-plans)
// split kosong → auto-generate (remainder ke slot terakhir);
// split dikirim → divalidasi (Σ == 100 persis)
// -----------------------------------------
func (h *EMIPlanHandler) Create(c *fiber.Ctx) error {
	schoolID, err := helperAuth.SchoolIDFromPath(c)
	if err != nil {
		return err
	}
	if err := helperAuth.EnsureStaffSchool(c, schoolID); err != nil {
		return err
	}

	var in dto.EMIPlanCreateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := validate.Struct(in); err != nil {
		return helper.JsonValidationError(c, helper.ValidatorErrorsToMap(err))
	}

	var parts []model.SplitPart
	if len(in.Split) == 0 {
		parts, err = service.GenerateSplit(in.InstallmentCount)
		if err != nil {
			return helper.FromFiberError(c, err)
		}
	} else {
		parts = dto.ToSplitParts(in.Split)
		if err := service.ValidateSplit(in.InstallmentCount, parts); err != nil {
			return helper.FromFiberError(c, err)
		}
	}

	encoded, err := model.EncodeSplitParts(parts)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	m := model.EMIPlanTemplate{
		EMIPlanTemplateSchoolID:         schoolID,
		EMIPlanTemplateName:             strings.TrimSpace(in.Name),
		EMIPlanTemplateInstallmentCount: in.InstallmentCount,
		EMIPlanTemplateSplitConfig:      encoded,
		EMIPlanTemplateIsDefault:        in.IsDefault,
	}

	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		if in.IsDefault {
			// satu default per school
			if err := tx.Model(&model.EMIPlanTemplate{}).
				Where("emi_plan_template_school_id = ? AND emi_plan_template_is_default = TRUE", schoolID).
				Update("emi_plan_template_is_default", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(&m).Error
	}); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonCreated(c, "emi plan created", dto.ToEMIPlanResponse(m))
}

// -----------------------------------------
// Update (PATCH /emi-plans/:id)
// count & split TIDAK bisa diubah — bikin plan baru saja; schedule
// yang sudah di-generate menyimpan salinannya sendiri.
// -----------------------------------------
func (h *EMIPlanHandler) Update(c *fiber.Ctx) error {
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

	var in dto.EMIPlanUpdateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := validate.Struct(in); err != nil {
		return helper.JsonValidationError(c, helper.ValidatorErrorsToMap(err))
	}

	var m model.EMIPlanTemplate
	if err := h.DB.
		Where("emi_plan_template_id = ? AND emi_plan_template_school_id = ?", id, schoolID).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "emi plan tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		if in.Name != nil {
			m.EMIPlanTemplateName = strings.TrimSpace(*in.Name)
		}
		if in.IsDefault != nil {
			if *in.IsDefault && !m.EMIPlanTemplateIsDefault {
				if err := tx.Model(&model.EMIPlanTemplate{}).
					Where("emi_plan_template_school_id = ? AND emi_plan_template_is_default = TRUE", schoolID).
					Update("emi_plan_template_is_default", false).Error; err != nil {
					return err
				}
			}
			m.EMIPlanTemplateIsDefault = *in.IsDefault
		}
		return tx.Save(&m).Error
	}); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonUpdated(c, "emi plan updated", dto.ToEMIPlanResponse(m))
}

// -----------------------------------------
// Delete (DELETE /emi-plans/:id) — soft delete
// -----------------------------------------
func (h *EMIPlanHandler) Delete(c *fiber.Ctx) error {
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

	res := h.DB.
		Where("emi_plan_template_id = ? AND emi_plan_template_school_id = ?", id, schoolID).
		Delete(&model.EMIPlanTemplate{})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "emi plan tidak ditemukan")
	}
	return helper.JsonDeleted(c, "emi plan deleted", fiber.Map{"emi_plan_template_id": id})
}
