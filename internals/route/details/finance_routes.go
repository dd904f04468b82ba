// file: internals/route/details/finance_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	emiPlanRoute "schoolku_backend/internals/features/finance/emiplans/routes"
	feeComponentRoute "schoolku_backend/internals/features/finance/feecomponents/routes"
	feeStructureController "schoolku_backend/internals/features/finance/feestructures/controller"
	feeStructureRoute "schoolku_backend/internals/features/finance/feestructures/routes"
	installmentController "schoolku_backend/internals/features/finance/installments/controller"
	installmentRoute "schoolku_backend/internals/features/finance/installments/routes"
	paymentLinkRoute "schoolku_backend/internals/features/finance/paymentlinks/routes"
	scholarshipRoute "schoolku_backend/internals/features/finance/scholarships/routes"
)

// FinanceAdminRoutes — seluruh operasi tulis engine keuangan (staff).
func FinanceAdminRoutes(admin fiber.Router, db *gorm.DB) {
	fin := admin.Group("/finance")

	feeComponentRoute.FeeComponentAdminRoutes(fin, db)
	scholarshipRoute.ScholarshipAdminRoutes(fin, db)
	feeStructureRoute.FeeStructureAdminRoutes(fin, db)
	emiPlanRoute.EMIPlanAdminRoutes(fin, db)
	installmentRoute.InstallmentAdminRoutes(fin, db)
	paymentLinkRoute.PaymentLinkAdminRoutes(fin, db)
}

// FinanceUserRoutes — akses baca buat murid/wali (guard member di handler).
func FinanceUserRoutes(user fiber.Router, db *gorm.DB) {
	fin := user.Group("/finance")

	h := &installmentController.InstallmentHandler{DB: db}
	fs := &feeStructureController.StudentFeeStructureHandler{DB: db}

	fin.Get("/student-fee-structures/:id", fs.GetByID)
	fin.Get("/student-fee-structures/:id/installments", h.ListByStructure)
	fin.Get("/receipts/:id", h.GetReceipt)
}

// FinancePublicRoutes — endpoint tanpa JWT (notifikasi gateway).
func FinancePublicRoutes(public fiber.Router, db *gorm.DB) {
	paymentLinkRoute.PaymentLinkPublicRoutes(public.Group("/finance"), db)
}
