package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/finance/scholarships/controller"
)

// Admin routes — katalog scholarship + assignment per murid.
func ScholarshipAdminRoutes(admin fiber.Router, db *gorm.DB) {
	h := &controller.ScholarshipHandler{DB: db}
	a := &controller.StudentScholarshipHandler{DB: db}

	grp := admin.Group("/scholarships")
	{
		grp.Get("/", h.List)
		grp.Post("/", h.Create)
		grp.Patch("/:id", h.Update)
		grp.Delete("/:id", h.Deactivate)
		grp.Post("/:id/assign", a.Assign)
	}

	sg := admin.Group("/student-scholarships")
	{
		sg.Get("/", a.ListAssignments)
		sg.Delete("/:id", a.Unassign)
	}
}
