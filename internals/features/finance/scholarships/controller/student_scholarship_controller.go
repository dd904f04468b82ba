// file: internals/features/finance/scholarships/controller/student_scholarship_controller.go
package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	fsModel "schoolku_backend/internals/features/finance/feestructures/model"
	fsService "schoolku_backend/internals/features/finance/feestructures/service"
	"schoolku_backend/internals/features/finance/scholarships/dto"
	"schoolku_backend/internals/features/finance/scholarships/model"
	"schoolku_backend/internals/features/finance/scholarships/service"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
	"schoolku_backend/internals/helpers/money"
)

type StudentScholarshipHandler struct {
	DB *gorm.DB
}

// -----------------------------------------
// Assign (POST /scholarships/:id/assign)
//
// Snapshot: discount dihitung SEKARANG terhadap gross structure murid,
// lalu dibekukan di row assignment. Butuh structure yang sudah ada.
// -----------------------------------------
func (h *StudentScholarshipHandler) Assign(c *fiber.Ctx) error {
	schoolID, err := helperAuth.SchoolIDFromPath(c)
	if err != nil {
		return err
	}
	if err := helperAuth.EnsureStaffSchool(c, schoolID); err != nil {
		return err
	}
	scholarshipID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id tidak valid")
	}

	var in dto.AssignScholarshipDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := validate.Struct(in); err != nil {
		return helper.JsonValidationError(c, helper.ValidatorErrorsToMap(err))
	}

	var row model.StudentScholarship
	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		var sch model.Scholarship
		if err := tx.
			Where("scholarship_id = ? AND scholarship_school_id = ?", scholarshipID, schoolID).
			First(&sch).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "scholarship tidak ditemukan")
			}
			return err
		}
		if !sch.ScholarshipIsActive {
			return fiber.NewError(fiber.StatusUnprocessableEntity, "invalid state: scholarship sudah nonaktif")
		}

		var structure fsModel.StudentFeeStructure
		if err := tx.
			Where(`student_fee_structure_school_id = ?
				AND student_fee_structure_student_id = ?
				AND student_fee_structure_session_id = ?`,
				schoolID, in.StudentID, in.SessionID).
			First(&structure).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "murid belum punya fee structure di session ini")
			}
			return err
		}

		amount, err := service.ComputeDiscount(
			money.Paise(structure.StudentFeeStructureGrossAmount),
			string(sch.ScholarshipType),
			sch.ScholarshipValue,
		)
		if err != nil {
			return err
		}

		row = model.StudentScholarship{
			StudentScholarshipSchoolID:       schoolID,
			StudentScholarshipStudentID:      in.StudentID,
			StudentScholarshipScholarshipID:  scholarshipID,
			StudentScholarshipSessionID:      in.SessionID,
			StudentScholarshipDiscountAmount: int64(amount),
			StudentScholarshipRemarks:        in.Remarks,
		}
		if err := tx.Create(&row).Error; err != nil {
			if isUniqueViolation(err) {
				return fiber.NewError(fiber.StatusConflict, "scholarship ini sudah ter-assign ke murid di session tersebut")
			}
			return err
		}

		_, err = fsService.Recompute(tx, schoolID, structure.StudentFeeStructureID)
		return err
	}); err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.JsonCreated(c, "scholarship assigned", dto.ToStudentScholarshipResponse(row))
}

// -----------------------------------------
// Unassign (DELETE /student-scholarships/:id)
// Hard delete + recompute structure terkait.
// -----------------------------------------
func (h *StudentScholarshipHandler) Unassign(c *fiber.Ctx) error {
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

	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		var row model.StudentScholarship
		if err := tx.
			Where("student_scholarship_id = ? AND student_scholarship_school_id = ?", id, schoolID).
			First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "assignment tidak ditemukan")
			}
			return err
		}
		if err := tx.Delete(&row).Error; err != nil {
			return err
		}

		var structure fsModel.StudentFeeStructure
		if err := tx.
			Where(`student_fee_structure_school_id = ?
				AND student_fee_structure_student_id = ?
				AND student_fee_structure_session_id = ?`,
				schoolID, row.StudentScholarshipStudentID, row.StudentScholarshipSessionID).
			First(&structure).Error; err != nil {
			// structure sudah ikut terhapus (overwrite) → tidak ada yang perlu di-recompute
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}

		_, err := fsService.Recompute(tx, schoolID, structure.StudentFeeStructureID)
		return err
	}); err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.JsonDeleted(c, "scholarship unassigned", fiber.Map{"student_scholarship_id": id})
}

// -----------------------------------------
// ListAssignments (GET /student-scholarships)
// Filters: student_id, session_id, scholarship_id
// -----------------------------------------
func (h *StudentScholarshipHandler) ListAssignments(c *fiber.Ctx) error {
	schoolID, err := helperAuth.SchoolIDFromPath(c)
	if err != nil {
		return err
	}
	if err := helperAuth.EnsureStaffSchool(c, schoolID); err != nil {
		return err
	}

	p := helper.ParseFiber(c, "created_at", "desc", helper.DefaultOpts)

	q := h.DB.Model(&model.StudentScholarship{}).
		Where("student_scholarship_school_id = ?", schoolID)

	if v := c.Query("student_id"); v != "" {
		if sid, e := uuid.Parse(v); e == nil {
			q = q.Where("student_scholarship_student_id = ?", sid)
		}
	}
	if v := c.Query("session_id"); v != "" {
		if sid, e := uuid.Parse(v); e == nil {
			q = q.Where("student_scholarship_session_id = ?", sid)
		}
	}
	if v := c.Query("scholarship_id"); v != "" {
		if sid, e := uuid.Parse(v); e == nil {
			q = q.Where("student_scholarship_scholarship_id = ?", sid)
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var list []model.StudentScholarship
	if err := q.
		Order("student_scholarship_created_at DESC").
		Limit(p.Limit()).
		Offset(p.Offset()).
		Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	out := make([]dto.StudentScholarshipResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.ToStudentScholarshipResponse(m))
	}
	return helper.JsonList(c, "ok", out, helper.BuildMeta(total, p))
}
