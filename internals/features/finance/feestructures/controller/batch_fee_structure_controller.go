// file: internals/features/finance/feestructures/controller/batch_fee_structure_controller.go
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

	"schoolku_backend/internals/features/finance/feestructures/dto"
	"schoolku_backend/internals/features/finance/feestructures/model"
	"schoolku_backend/internals/features/finance/feestructures/service"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

type BatchFeeStructureHandler struct {
	DB *gorm.DB
}

var validate = validator.New()

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

func buildBatchOrderClause(p helper.Params) string {
	allowed := map[string]string{
		"created_at": "batch_fee_structure_created_at",
		"name":       "batch_fee_structure_name",
		"total":      "batch_fee_structure_total_amount",
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
// List (GET /batch-fee-structures)
// Filters: batch_id, session_id, active
// -----------------------------------------
func (h *BatchFeeStructureHandler) List(c *fiber.Ctx) error {
	schoolID, err := helperAuth.SchoolIDFromPath(c)
	if err != nil {
		return err
	}
	if err := helperAuth.EnsureStaffSchool(c, schoolID); err != nil {
		return err
	}

	p := helper.ParseFiber(c, "created_at", "desc", helper.DefaultOpts)

	q := h.DB.Model(&model.BatchFeeStructure{}).
		Where("batch_fee_structure_school_id = ?", schoolID)

	if v := c.Query("batch_id"); v != "" {
		if id, e := uuid.Parse(v); e == nil {
			q = q.Where("batch_fee_structure_batch_id = ?", id)
		}
	}
	if v := c.Query("session_id"); v != "" {
		if id, e := uuid.Parse(v); e == nil {
			q = q.Where("batch_fee_structure_session_id = ?", id)
		}
	}
	if v := c.Query("active"); v != "" {
		if strings.EqualFold(v, "true") {
			q = q.Where("batch_fee_structure_is_active = TRUE")
		} else if strings.EqualFold(v, "false") {
			q = q.Where("batch_fee_structure_is_active = FALSE")
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var list []model.BatchFeeStructure
	if err := q.
		Order(buildBatchOrderClause(p)).
		Limit(p.Limit()).
		Offset(p.Offset()).
		Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "ok", dto.ToBatchFeeStructureResponses(list), helper.BuildMeta(total, p))
}

// -----------------------------------------
// GetByID (GET /batch-fee-structures/:id) — include items
// -----------------------------------------
func (h *BatchFeeStructureHandler) GetByID(c *fiber.Ctx) error {
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

	var m model.BatchFeeStructure
	if err := h.DB.
		Where("batch_fee_structure_id = ? AND batch_fee_structure_school_id = ?", id, schoolID).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "batch fee structure tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var items []model.BatchFeeStructureItem
	if err := h.DB.
		Where("batch_fee_structure_item_structure_id = ?", m.BatchFeeStructureID).
		Order("batch_fee_structure_item_created_at ASC").
		Find(&items).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonOK(c, "ok", dto.ToBatchFeeStructureResponse(m, items))
}

// -----------------------------------------
// Create (POST /batch-fee-structures)
// total = Σ item amount — dihitung server, bukan dari klien
// -----------------------------------------
func (h *BatchFeeStructureHandler) Create(c *fiber.Ctx) error {
	schoolID, err := helperAuth.SchoolIDFromPath(c)
	if err != nil {
		return err
	}
	if err := helperAuth.EnsureStaffSchool(c, schoolID); err != nil {
		return err
	}

	var in dto.BatchFeeStructureCreateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := validate.Struct(in); err != nil {
		return helper.JsonValidationError(c, helper.ValidatorErrorsToMap(err))
	}

	var total int64
	for _, it := range in.Items {
		total += it.Amount
	}

	m := model.BatchFeeStructure{
		BatchFeeStructureSchoolID:    schoolID,
		BatchFeeStructureBatchID:     in.BatchID,
		BatchFeeStructureSessionID:   in.SessionID,
		BatchFeeStructureName:        strings.TrimSpace(in.Name),
		BatchFeeStructureTotalAmount: total,
		BatchFeeStructureIsActive:    true,
	}

	var items []model.BatchFeeStructureItem
	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		items = make([]model.BatchFeeStructureItem, 0, len(in.Items))
		for _, it := range in.Items {
			items = append(items, model.BatchFeeStructureItem{
				BatchFeeStructureItemStructureID:    m.BatchFeeStructureID,
				BatchFeeStructureItemFeeComponentID: it.FeeComponentID,
				BatchFeeStructureItemAmount:         it.Amount,
			})
		}
		return tx.Create(&items).Error
	}); err != nil {
		if isUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "batch ini sudah punya fee structure di session tersebut")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonCreated(c, "batch fee structure created", dto.ToBatchFeeStructureResponse(m, items))
}

// -----------------------------------------
// Update (PATCH /batch-fee-structures/:id)
// items (kalau dikirim) = REPLACE penuh; total dihitung ulang
// -----------------------------------------
func (h *BatchFeeStructureHandler) Update(c *fiber.Ctx) error {
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

	var in dto.BatchFeeStructureUpdateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := validate.Struct(in); err != nil {
		return helper.JsonValidationError(c, helper.ValidatorErrorsToMap(err))
	}

	var m model.BatchFeeStructure
	if err := h.DB.
		Where("batch_fee_structure_id = ? AND batch_fee_structure_school_id = ?", id, schoolID).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "batch fee structure tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	newItems, replaceItems, err := in.ItemsReplace()
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		if in.Name != nil {
			m.BatchFeeStructureName = strings.TrimSpace(*in.Name)
		}
		if in.IsActive != nil {
			m.BatchFeeStructureIsActive = *in.IsActive
		}
		if replaceItems {
			if err := tx.
				Where("batch_fee_structure_item_structure_id = ?", m.BatchFeeStructureID).
				Delete(&model.BatchFeeStructureItem{}).Error; err != nil {
				return err
			}
			var total int64
			items := make([]model.BatchFeeStructureItem, 0, len(newItems))
			for _, it := range newItems {
				total += it.Amount
				items = append(items, model.BatchFeeStructureItem{
					BatchFeeStructureItemStructureID:    m.BatchFeeStructureID,
					BatchFeeStructureItemFeeComponentID: it.FeeComponentID,
					BatchFeeStructureItemAmount:         it.Amount,
				})
			}
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
			m.BatchFeeStructureTotalAmount = total
		}
		return tx.Save(&m).Error
	}); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonUpdated(c, "batch fee structure updated", dto.ToBatchFeeStructureResponse(m, nil))
}

// -----------------------------------------
// Delete (DELETE /batch-fee-structures/:id) — soft delete.
// Structure murid yang sudah di-apply tidak tersentuh.
// -----------------------------------------
func (h *BatchFeeStructureHandler) Delete(c *fiber.Ctx) error {
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
		Where("batch_fee_structure_id = ? AND batch_fee_structure_school_id = ?", id, schoolID).
		Delete(&model.BatchFeeStructure{})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "batch fee structure tidak ditemukan")
	}

	return helper.JsonDeleted(c, "batch fee structure deleted", fiber.Map{"batch_fee_structure_id": id})
}

// -----------------------------------------
// Apply (POST /batch-fee-structures/:id/apply)
// Per-murid transaksi independen → {applied, skipped, errors}
// -----------------------------------------
func (h *BatchFeeStructureHandler) Apply(c *fiber.Ctx) error {
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

	var in dto.ApplyBatchDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}

	var actor *uuid.UUID
	if uid, e := helperAuth.GetUserIDFromToken(c); e == nil {
		actor = &uid
	}

	res, err := service.ApplyBatchStructure(h.DB, service.ApplyBatchInput{
		SchoolID:    schoolID,
		BatchStrID:  id,
		StudentIDs:  in.StudentIDs,
		Overwrite:   in.Overwrite,
		ActorUserID: actor,
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.JsonOK(c, "batch applied", res)
}
