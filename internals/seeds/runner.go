package seeds

import (
	"gorm.io/gorm"

	finance "schoolku_backend/internals/seeds/finance"
)

// RunAllSeeds — dijalankan sekali saat boot kalau RUN_SEEDS=true.
func RunAllSeeds(db *gorm.DB) {
	finance.SeedDefaultEMIPlans(db)
}
