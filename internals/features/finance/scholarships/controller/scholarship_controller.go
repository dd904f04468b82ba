// file: internals/features/finance/scholarships/controller/scholarship_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/finance/scholarships/dto"
	"schoolku_backend/internals/features/finance/scholarships/model"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

type ScholarshipHandler struct {
	DB *gorm.DB
}

var validate = validator.New()

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

// -----------------------------------------
// List (GET /scholarships)
// Filters: type, basis, active, q
// -----------------------------------------
func (h *ScholarshipHandler) List(c *fiber.Ctx) error {
	schoolID, err := helperAuth.SchoolIDFromPath(c)
	if err != nil {
		return err
	}
	if err := helperAuth.EnsureMemberSchool(c, schoolID); err != nil {
		return err
	}

	p := helper.ParseFiber(c, "created_at", "desc", helper.DefaultOpts)

	q := h.DB.Model(&model.Scholarship{}).
		Where("scholarship_school_id = ?", schoolID)

	if v := c.Query("type"); v != "" {
		q = q.Where("scholarship_type = ?", strings.ToLower(v))
	}
	if v := c.Query("basis"); v != "" {
		q = q.Where("scholarship_basis = ?", strings.ToLower(v))
	}
	if v := c.Query("active"); v != "" {
		if strings.EqualFold(v, "true") {
			q = q.Where("scholarship_is_active = TRUE")
		} else if strings.EqualFold(v, "false") {
			q = q.Where("scholarship_is_active = FALSE")
		}
	}
	if v := strings.TrimSpace(c.Query("q")); v != "" {
		q = q.Where("scholarship_name ILIKE ?", "%"+v+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var list []model.Scholarship
	if err := q.
		Order("scholarship_created_at DESC").
		Limit(p.Limit()).
		Offset(p.Offset()).
		Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "ok", dto.ToScholarshipResponses(list), helper.BuildMeta(total, p))
}

// -----------------------------------------
// Create (POST /scholarships)
// type TIDAK bisa diubah setelah create (snapshot assignment bergantung padanya)
// -----------------------------------------
func (h *ScholarshipHandler) Create(c *fiber.Ctx) error {
	schoolID, err := helperAuth.SchoolIDFromPath(c)
	if err != nil {
		return err
	}
	if err := helperAuth.EnsureStaffSchool(c, schoolID); err != nil {
		return err
	}

	var in dto.ScholarshipCreateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := validate.Struct(in); err != nil {
		return helper.JsonValidationError(c, helper.ValidatorErrorsToMap(err))
	}
	if in.ScholarshipType == string(model.ScholarshipTypePercentage) && in.ScholarshipValue > 100 {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, "persentase harus di rentang 1..100")
	}

	m := in.ToModel(schoolID)
	if err := h.DB.Create(&m).Error; err != nil {
		if isUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "scholarship dengan nama itu sudah ada")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "scholarship created", dto.ToScholarshipResponse(m))
}

// -----------------------------------------
// Update (PATCH /scholarships/:id)
// Perubahan value TIDAK menyentuh snapshot assignment yang ada.
// -----------------------------------------
func (h *ScholarshipHandler) Update(c *fiber.Ctx) error {
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

	var in dto.ScholarshipUpdateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := validate.Struct(in); err != nil {
		return helper.JsonValidationError(c, helper.ValidatorErrorsToMap(err))
	}

	var m model.Scholarship
	if err := h.DB.
		Where("scholarship_id = ? AND scholarship_school_id = ?", id, schoolID).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "scholarship tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	in.Apply(&m)
	if m.ScholarshipType == model.ScholarshipTypePercentage && m.ScholarshipValue > 100 {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, "persentase harus di rentang 1..100")
	}
	if err := h.DB.Save(&m).Error; err != nil {
		if isUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "scholarship dengan nama itu sudah ada")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonUpdated(c, "scholarship updated", dto.ToScholarshipResponse(m))
}

// -----------------------------------------
// Deactivate (DELETE /scholarships/:id)
// Soft-deactivate saja; assignment lama tetap berlaku (snapshot).
// -----------------------------------------
func (h *ScholarshipHandler) Deactivate(c *fiber.Ctx) error {
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

	res := h.DB.Model(&model.Scholarship{}).
		Where("scholarship_id = ? AND scholarship_school_id = ?", id, schoolID).
		Update("scholarship_is_active", false)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "scholarship tidak ditemukan")
	}
	return helper.JsonDeleted(c, "scholarship deactivated", fiber.Map{"scholarship_id": id})
}
