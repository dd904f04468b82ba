// file: internals/features/finance/feecomponents/controller/fee_component_controller.go
package controller

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/finance/feecomponents/dto"
	"schoolku_backend/internals/features/finance/feecomponents/model"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

type FeeComponentHandler struct {
	DB *gorm.DB
}

var validate = validator.New()

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

func buildOrderClause(p helper.Params) string {
	allowed := map[string]string{
		"created_at": "fee_component_created_at",
		"updated_at": "fee_component_updated_at",
		"name":       "fee_component_name",
		"type":       "fee_component_type",
	}
	col, ok := allowed[strings.ToLower(p.SortBy)]
	if !ok {
		col = allowed["created_at"]
	}
	dir := "DESC"
	if strings.ToLower(p.SortOrder) == "asc" {
		dir = "ASC"
	}
	return fmt.Sprintf("%s %s", col, dir)
}

// -----------------------------------------
// List (GET /fee-components)
// Query filters: type, active (true|false), q (search nama), page/per_page/sort
// -----------------------------------------
func (h *FeeComponentHandler) List(c *fiber.Ctx) error {
	schoolID, err := helperAuth.SchoolIDFromPath(c)
	if err != nil {
		return err
	}
	if err := helperAuth.EnsureMemberSchool(c, schoolID); err != nil {
		return err
	}

	p := helper.ParseFiber(c, "created_at", "desc", helper.DefaultOpts)

	q := h.DB.Model(&model.FeeComponent{}).
		Where("fee_component_school_id = ?", schoolID)

	if v := c.Query("type"); v != "" {
		q = q.Where("fee_component_type = ?", strings.ToLower(v))
	}
	if v := c.Query("active"); v != "" {
		if strings.EqualFold(v, "true") {
			q = q.Where("fee_component_is_active = TRUE")
		} else if strings.EqualFold(v, "false") {
			q = q.Where("fee_component_is_active = FALSE")
		}
	}
	if v := strings.TrimSpace(c.Query("q")); v != "" {
		q = q.Where("fee_component_name ILIKE ?", "%"+v+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var list []model.FeeComponent
	if err := q.
		Order(buildOrderClause(p)).
		Limit(p.Limit()).
		Offset(p.Offset()).
		Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "ok", dto.ToFeeComponentResponses(list), helper.BuildMeta(total, p))
}

// -----------------------------------------
// Create (POST /fee-components)
// -----------------------------------------
func (h *FeeComponentHandler) Create(c *fiber.Ctx) error {
	schoolID, err := helperAuth.SchoolIDFromPath(c)
	if err != nil {
		return err
	}
	if err := helperAuth.EnsureStaffSchool(c, schoolID); err != nil {
		return err
	}

	var in dto.FeeComponentCreateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := validate.Struct(in); err != nil {
		return helper.JsonValidationError(c, helper.ValidatorErrorsToMap(err))
	}

	m := in.ToModel(schoolID)
	if err := h.DB.Create(&m).Error; err != nil {
		if isUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "fee component dengan nama itu sudah ada")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "fee component created", dto.ToFeeComponentResponse(m))
}

// -----------------------------------------
// Update (PATCH /fee-components/:id)
// -----------------------------------------
func (h *FeeComponentHandler) Update(c *fiber.Ctx) error {
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

	var in dto.FeeComponentUpdateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := validate.Struct(in); err != nil {
		return helper.JsonValidationError(c, helper.ValidatorErrorsToMap(err))
	}

	var m model.FeeComponent
	if err := h.DB.
		Where("fee_component_id = ? AND fee_component_school_id = ?", id, schoolID).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "fee component tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	in.Apply(&m)
	if err := h.DB.Save(&m).Error; err != nil {
		if isUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "fee component dengan nama itu sudah ada")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonUpdated(c, "fee component updated", dto.ToFeeComponentResponse(m))
}

// -----------------------------------------
// Deactivate (DELETE /fee-components/:id)
// Komponen tidak pernah di-hard-delete: DELETE hanya soft-deactivate,
// structure lama tetap bisa menunjuk ke sini.
// -----------------------------------------
func (h *FeeComponentHandler) Deactivate(c *fiber.Ctx) error {
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

	res := h.DB.Model(&model.FeeComponent{}).
		Where("fee_component_id = ? AND fee_component_school_id = ?", id, schoolID).
		Update("fee_component_is_active", false)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "fee component tidak ditemukan")
	}
	return helper.JsonDeleted(c, "fee component deactivated", fiber.Map{"fee_component_id": id})
}
