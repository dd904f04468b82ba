// file: internals/features/finance/feestructures/controller/student_fee_structure_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/finance/feestructures/dto"
	"schoolku_backend/internals/features/finance/feestructures/model"
	"schoolku_backend/internals/features/finance/feestructures/service"
	discount "schoolku_backend/internals/features/finance/scholarships/service"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
	"schoolku_backend/internals/helpers/money"
)

type StudentFeeStructureHandler struct {
	DB *gorm.DB
}

// -----------------------------------------
// List (GET /student-fee-structures)
// Filters: student_id, session_id, batch_id
// -----------------------------------------
func (h *StudentFeeStructureHandler) List(c *fiber.Ctx) error {
	schoolID, err := helperAuth.SchoolIDFromPath(c)
	if err != nil {
		return err
	}
	if err := helperAuth.EnsureStaffSchool(c, schoolID); err != nil {
		return err
	}

	p := helper.ParseFiber(c, "created_at", "desc", helper.DefaultOpts)

	q := h.DB.Model(&model.StudentFeeStructure{}).
		Where("student_fee_structure_school_id = ?", schoolID)

	if v := c.Query("student_id"); v != "" {
		if id, e := uuid.Parse(v); e == nil {
			q = q.Where("student_fee_structure_student_id = ?", id)
		}
	}
	if v := c.Query("session_id"); v != "" {
		if id, e := uuid.Parse(v); e == nil {
			q = q.Where("student_fee_structure_session_id = ?", id)
		}
	}
	if v := c.Query("batch_id"); v != "" {
		if id, e := uuid.Parse(v); e == nil {
			q = q.Where("student_fee_structure_source_batch_id = ?", id)
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var list []model.StudentFeeStructure
	if err := q.
		Order("student_fee_structure_created_at DESC").
		Limit(p.Limit()).
		Offset(p.Offset()).
		Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "ok", dto.ToStudentFeeStructureResponses(list), helper.BuildMeta(total, p))
}

// -----------------------------------------
// GetByID (GET /student-fee-structures/:id) — include line items
// Murid/wali boleh lihat miliknya (member guard)
// -----------------------------------------
func (h *StudentFeeStructureHandler) GetByID(c *fiber.Ctx) error {
	schoolID, err := helperAuth.SchoolIDFromPath(c)
	if err != nil {
		return err
	}
	if err := helperAuth.EnsureMemberSchool(c, schoolID); err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id tidak valid")
	}

	var m model.StudentFeeStructure
	if err := h.DB.
		Where("student_fee_structure_id = ? AND student_fee_structure_school_id = ?", id, schoolID).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "fee structure tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var items []model.StudentFeeStructureItem
	if err := h.DB.
		Where("student_fee_structure_item_structure_id = ?", m.StudentFeeStructureID).
		Order("student_fee_structure_item_created_at ASC").
		Find(&items).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonOK(c, "ok", dto.ToStudentFeeStructureResponse(m, items))
}

// -----------------------------------------
// CreateCustom (POST /student-fee-structures)
// Structure ad hoc tanpa template batch (murid pindahan dsb)
// -----------------------------------------
func (h *StudentFeeStructureHandler) CreateCustom(c *fiber.Ctx) error {
	schoolID, err := helperAuth.SchoolIDFromPath(c)
	if err != nil {
		return err
	}
	if err := helperAuth.EnsureStaffSchool(c, schoolID); err != nil {
		return err
	}

	var in dto.StudentFeeStructureCreateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := validate.Struct(in); err != nil {
		return helper.JsonValidationError(c, helper.ValidatorErrorsToMap(err))
	}

	lineItems := make([]service.LineItem, 0, len(in.Items))
	for _, it := range in.Items {
		lineItems = append(lineItems, service.LineItem{
			FeeComponentID: it.FeeComponentID,
			OriginalAmount: money.Paise(it.OriginalAmount),
			Waived:         it.IsWaived,
			WaiverReason:   it.WaiverReason,
		})
	}

	totals, err := service.ComputeTotals(lineItems, 0, 0)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	s, rows := service.NewStructure(schoolID, in.StudentID, in.SessionID, nil, lineItems, totals)
	s.StudentFeeStructureRemarks = in.Remarks

	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&s).Error; err != nil {
			return err
		}
		for i := range rows {
			rows[i].StudentFeeStructureItemStructureID = s.StudentFeeStructureID
		}
		if err := tx.Create(&rows).Error; err != nil {
			return err
		}
		// scholarship yang sudah ter-assign duluan langsung kepotong
		updated, err := service.Recompute(tx, schoolID, s.StudentFeeStructureID)
		if err != nil {
			return err
		}
		s = *updated
		return nil
	}); err != nil {
		if isUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "murid sudah punya fee structure di session ini")
		}
		return helper.FromFiberError(c, err)
	}

	return helper.JsonCreated(c, "student fee structure created", dto.ToStudentFeeStructureResponse(s, rows))
}

// -----------------------------------------
// WaiveItem (PATCH /student-fee-structures/:id/items/:item_id/waive)
// Waive butuh reason; un-waive menghapus reason. Net di-recompute.
// -----------------------------------------
func (h *StudentFeeStructureHandler) WaiveItem(c *fiber.Ctx) error {
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
	itemID, err := uuid.Parse(c.Params("item_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "item_id tidak valid")
	}

	var in dto.WaiveItemDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if in.IsWaived && (in.WaiverReason == nil || strings.TrimSpace(*in.WaiverReason) == "") {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, "item yang di-waive wajib punya waiver reason")
	}

	var s model.StudentFeeStructure
	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		var item model.StudentFeeStructureItem
		if err := tx.
			Where("student_fee_structure_item_id = ? AND student_fee_structure_item_structure_id = ?", itemID, structureID).
			First(&item).Error; err != nil {
			return err
		}

		item.StudentFeeStructureItemIsWaived = in.IsWaived
		if in.IsWaived {
			item.StudentFeeStructureItemWaiverReason = in.WaiverReason
		} else {
			item.StudentFeeStructureItemWaiverReason = nil
		}
		if err := tx.Save(&item).Error; err != nil {
			return err
		}

		// waived amount structure = Σ original item yang waived
		var waivedTotal int64
		if err := tx.Model(&model.StudentFeeStructureItem{}).
			Where("student_fee_structure_item_structure_id = ? AND student_fee_structure_item_is_waived = TRUE", structureID).
			Select("COALESCE(SUM(student_fee_structure_item_original_amount), 0)").
			Scan(&waivedTotal).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.StudentFeeStructure{}).
			Where("student_fee_structure_id = ? AND student_fee_structure_school_id = ?", structureID, schoolID).
			Update("student_fee_structure_waived_amount", waivedTotal).Error; err != nil {
			return err
		}

		updated, err := service.Recompute(tx, schoolID, structureID)
		if err != nil {
			return err
		}
		s = *updated
		return nil
	}); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "line item tidak ditemukan")
		}
		return helper.FromFiberError(c, err)
	}

	return helper.JsonUpdated(c, "waiver updated", dto.ToStudentFeeStructureResponse(s, nil))
}

// -----------------------------------------
// SetCustomDiscount (PUT /student-fee-structures/:id/custom-discount)
// One-off per structure; nilai divalidasi DiscountEngine sebelum disimpan
// -----------------------------------------
func (h *StudentFeeStructureHandler) SetCustomDiscount(c *fiber.Ctx) error {
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

	var in dto.CustomDiscountDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := validate.Struct(in); err != nil {
		return helper.JsonValidationError(c, helper.ValidatorErrorsToMap(err))
	}

	var s model.StudentFeeStructure
	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		var cur model.StudentFeeStructure
		if err := tx.
			Where("student_fee_structure_id = ? AND student_fee_structure_school_id = ?", id, schoolID).
			First(&cur).Error; err != nil {
			return err
		}

		// validasi domain dulu (persen 1..100 dsb) sebelum persist
		if _, err := discount.ComputeDiscount(money.Paise(cur.StudentFeeStructureGrossAmount), in.Type, in.Value); err != nil {
			return err
		}

		if err := tx.Model(&model.StudentFeeStructure{}).
			Where("student_fee_structure_id = ?", id).
			Updates(map[string]interface{}{
				"student_fee_structure_custom_discount_type":    in.Type,
				"student_fee_structure_custom_discount_value":   in.Value,
				"student_fee_structure_custom_discount_remarks": in.Remarks,
			}).Error; err != nil {
			return err
		}

		updated, err := service.Recompute(tx, schoolID, id)
		if err != nil {
			return err
		}
		s = *updated
		return nil
	}); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "fee structure tidak ditemukan")
		}
		return helper.FromFiberError(c, err)
	}

	return helper.JsonUpdated(c, "custom discount applied", dto.ToStudentFeeStructureResponse(s, nil))
}

// -----------------------------------------
// RemoveCustomDiscount (DELETE /student-fee-structures/:id/custom-discount)
// -----------------------------------------
func (h *StudentFeeStructureHandler) RemoveCustomDiscount(c *fiber.Ctx) error {
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

	var s model.StudentFeeStructure
	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.StudentFeeStructure{}).
			Where("student_fee_structure_id = ? AND student_fee_structure_school_id = ?", id, schoolID).
			Updates(map[string]interface{}{
				"student_fee_structure_custom_discount_type":    nil,
				"student_fee_structure_custom_discount_value":   nil,
				"student_fee_structure_custom_discount_remarks": nil,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		updated, err := service.Recompute(tx, schoolID, id)
		if err != nil {
			return err
		}
		s = *updated
		return nil
	}); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "fee structure tidak ditemukan")
		}
		return helper.FromFiberError(c, err)
	}

	return helper.JsonUpdated(c, "custom discount removed", dto.ToStudentFeeStructureResponse(s, nil))
}
