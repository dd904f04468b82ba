package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/finance/feecomponents/controller"
)

// Admin routes (CRUD) — diproteksi AuthJWT + guard staff di tiap handler.
func FeeComponentAdminRoutes(admin fiber.Router, db *gorm.DB) {
	h := &controller.FeeComponentHandler{DB: db}

	grp := admin.Group("/fee-components")
	{
		grp.Get("/", h.List)
		grp.Post("/", h.Create)
		grp.Patch("/:id", h.Update)
		grp.Delete("/:id", h.Deactivate)
	}
}
