// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/configs"
	authMiddleware "schoolku_backend/internals/middlewares/auth"
	routeDetails "schoolku_backend/internals/route/details"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	BaseRoutes(app, db)

	// ===================== GROUPS =====================

	// PUBLIC → tanpa JWT (webhook gateway dsb)
	log.Println("[INFO] Setting up PUBLIC group...")
	public := app.Group("/api/p")

	// PRIVATE (USER) → JWT wajib; guard member per-school di tiap handler
	log.Println("[INFO] Setting up USER group...")
	user := app.Group("/api/u/:school_id",
		authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
			Secret:              configs.JWTSecret,
			AllowCookieFallback: true,
		}),
	)

	// ADMIN (per school) → JWT wajib; guard staff per-school di tiap handler
	log.Println("[INFO] Setting up ADMIN group...")
	admin := app.Group("/api/a/:school_id",
		authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
			Secret: configs.JWTSecret,
		}),
	)

	// ===================== MOUNT ROUTES =====================

	log.Println("[INFO] Mounting Finance routes...")
	routeDetails.FinancePublicRoutes(public, db)
	routeDetails.FinanceUserRoutes(user, db)
	routeDetails.FinanceAdminRoutes(admin, db)
}
