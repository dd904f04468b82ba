package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/finance/paymentlinks/controller"
)

// Admin routes — create/cancel/list payment link.
func PaymentLinkAdminRoutes(admin fiber.Router, db *gorm.DB) {
	h := &controller.PaymentLinkHandler{DB: db}

	admin.Post("/installments/:id/payment-link", h.Create)

	grp := admin.Group("/payment-links")
	{
		grp.Get("/", h.List)
		grp.Post("/:id/cancel", h.Cancel)
	}
}
