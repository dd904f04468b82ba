package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/finance/feestructures/controller"
)

// Admin routes — template batch + structure per murid.
func FeeStructureAdminRoutes(admin fiber.Router, db *gorm.DB) {
	batch := &controller.BatchFeeStructureHandler{DB: db}
	student := &controller.StudentFeeStructureHandler{DB: db}

	b := admin.Group("/batch-fee-structures")
	{
		b.Get("/", batch.List)
		b.Post("/", batch.Create)
		b.Get("/:id", batch.GetByID)
		b.Patch("/:id", batch.Update)
		b.Delete("/:id", batch.Delete)
		b.Post("/:id/apply", batch.Apply)
	}

	s := admin.Group("/student-fee-structures")
	{
		s.Get("/", student.List)
		s.Post("/", student.CreateCustom)
		s.Get("/:id", student.GetByID)
		s.Patch("/:id/items/:item_id/waive", student.WaiveItem)
		s.Put("/:id/custom-discount", student.SetCustomDiscount)
		s.Delete("/:id/custom-discount", student.RemoveCustomDiscount)
	}
}
