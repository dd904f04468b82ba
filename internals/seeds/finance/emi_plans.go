// file: internals/seeds/finance/emi_plans.go
package finance

import (
	"log"
	"os"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/finance/emiplans/model"
	"schoolku_backend/internals/features/finance/emiplans/service"
)

// SeedDefaultEMIPlans menanam template cicilan standar (1/2/4/12x) untuk
// school yang di-set di SEED_SCHOOL_ID. Idempoten: skip kalau school sudah
// punya plan.
func SeedDefaultEMIPlans(db *gorm.DB) {
	raw := os.Getenv("SEED_SCHOOL_ID")
	if raw == "" {
		log.Println("[SEED] SEED_SCHOOL_ID kosong, lewati seed emi plan")
		return
	}
	schoolID, err := uuid.Parse(raw)
	if err != nil {
		log.Printf("[SEED ERROR] SEED_SCHOOL_ID tidak valid: %v", err)
		return
	}

	var count int64
	if err := db.Model(&model.EMIPlanTemplate{}).
		Where("emi_plan_template_school_id = ?", schoolID).
		Count(&count).Error; err != nil {
		log.Printf("[SEED ERROR] gagal cek emi plan: %v", err)
		return
	}
	if count > 0 {
		log.Println("[SEED] emi plan sudah ada, skip")
		return
	}

	plans := []struct {
		Name      string
		Count     int
		IsDefault bool
	}{
		{"Lunas (1x)", 1, false},
		{"Semester (2x)", 2, false},
		{"Triwulan (4x)", 4, true},
		{"Bulanan (12x)", 12, false},
	}

	for _, p := range plans {
		parts, err := service.GenerateSplit(p.Count)
		if err != nil {
			log.Printf("[SEED ERROR] split %dx: %v", p.Count, err)
			continue
		}
		encoded, err := model.EncodeSplitParts(parts)
		if err != nil {
			log.Printf("[SEED ERROR] encode split %dx: %v", p.Count, err)
			continue
		}
		m := model.EMIPlanTemplate{
			EMIPlanTemplateSchoolID:         schoolID,
			EMIPlanTemplateName:             p.Name,
			EMIPlanTemplateInstallmentCount: p.Count,
			EMIPlanTemplateSplitConfig:      encoded,
			EMIPlanTemplateIsDefault:        p.IsDefault,
		}
		if err := db.Create(&m).Error; err != nil {
			log.Printf("[SEED ERROR] gagal insert plan %q: %v", p.Name, err)
			continue
		}
		log.Printf("[SEED] ✅ emi plan %q dibuat", p.Name)
	}
}
