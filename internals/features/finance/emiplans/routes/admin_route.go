package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/finance/emiplans/controller"
)

// Admin routes — template pola cicilan.
func EMIPlanAdminRoutes(admin fiber.Router, db *gorm.DB) {
	h := &controller.EMIPlanHandler{DB: db}

	grp := admin.Group("/emi-plans")
	{
		grp.Get("/", h.List)
		grp.Post("/", h.Create)
		grp.Patch("/:id", h.Update)
		grp.Delete("/:id", h.Delete)
	}
}
