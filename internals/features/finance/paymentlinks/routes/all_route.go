package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/finance/paymentlinks/controller"
	"schoolku_backend/internals/middlewares"
)

// Public routes — endpoint notifikasi gateway (tanpa JWT, di-rate-limit).
func PaymentLinkPublicRoutes(public fiber.Router, db *gorm.DB) {
	h := &controller.PaymentLinkHandler{DB: db}

	public.Post("/payment-links/webhook", middlewares.WebhookRateLimiter(), h.HandleWebhook)
}
