// file: internals/route/base_routes.go
package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// BaseRoutes — endpoint servis dasar (uptime, ping DB).
func BaseRoutes(app *fiber.App, db *gorm.DB) {
	app.Get("/api/status", func(c *fiber.Ctx) error {
		dbStatus := "up"
		if sqlDB, err := db.DB(); err != nil || sqlDB.Ping() != nil {
			dbStatus = "down"
		}
		return c.JSON(fiber.Map{
			"success": true,
			"uptime":  time.Since(startTime).Round(time.Second).String(),
			"db":      dbStatus,
		})
	})
}
