package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/finance/installments/controller"
	"schoolku_backend/internals/middlewares"
)

// Admin routes — schedule, pembayaran manual, receipt.
func InstallmentAdminRoutes(admin fiber.Router, db *gorm.DB) {
	h := &controller.InstallmentHandler{DB: db}

	// nested di bawah student-fee-structures (schedule milik structure)
	admin.Post("/student-fee-structures/:id/installments", h.GenerateSchedule)
	admin.Get("/student-fee-structures/:id/installments", h.ListByStructure)

	grp := admin.Group("/installments")
	{
		grp.Get("/", h.ListDue)
		grp.Post("/:id/payments", middlewares.PaymentRateLimiter(), h.RecordPayment)
		grp.Get("/:id/payments", h.ListPayments)
	}

	admin.Get("/receipts/:id", h.GetReceipt)
}
