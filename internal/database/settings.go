package database

import (
	"encoding/json"
	"log"

	"diveops-console/internal/leadimport"
	"diveops-console/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const importSettingsKey = "import_settings"

// LoadImportSettings returns the persisted policy snapshot, or the provided
// defaults when none has been saved yet.
func LoadImportSettings(db *gorm.DB, defaults leadimport.Settings) leadimport.Settings {
	var setting models.SystemSetting
	if err := db.Where("key = ?", importSettingsKey).First(&setting).Error; err != nil {
		return defaults
	}
	s := defaults
	if err := json.Unmarshal([]byte(setting.Value), &s); err != nil {
		log.Printf("Error parsing stored import settings, using defaults: %v", err)
		return defaults
	}
	if err := s.Validate(); err != nil {
		log.Printf("Stored import settings invalid, using defaults: %v", err)
		return defaults
	}
	return s
}

// SaveImportSettings persists the policy snapshot so it survives restarts.
func SaveImportSettings(db *gorm.DB, s leadimport.Settings) error {
	value, err := json.Marshal(s)
	if err != nil {
		return err
	}
	setting := models.SystemSetting{Key: importSettingsKey, Value: string(value)}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&setting).Error
}

// SeedReplyTemplates inserts the default auto-reply templates if the table
// is empty.
func SeedReplyTemplates(db *gorm.DB, language string) {
	var count int64
	if err := db.Model(&models.ReplyTemplate{}).Count(&count).Error; err != nil || count > 0 {
		return
	}

	defaults := []models.ReplyTemplate{
		{ID: leadimport.TemplateLeadWelcome, Name: "Lead Welcome", Language: language, Status: "APPROVED",
			Body: "Thanks for reaching out! We've registered your details and one of our dive instructors will contact you shortly."},
		{ID: leadimport.TemplateLeadDuplicate, Name: "Already Registered", Language: language, Status: "APPROVED",
			Body: "Good news - you're already in our system. We'll be in touch soon!"},
		{ID: leadimport.TemplateLeadMoreInfo, Name: "More Info Needed", Language: language, Status: "APPROVED",
			Body: "Thanks for your message! Could you share your name, email and phone number so we can set up your diver profile?"},
		{ID: leadimport.TemplateLeadNeedEmail, Name: "Email Needed", Language: language, Status: "APPROVED",
			Body: "Almost there! Please send us your email address so we can complete your registration."},
		{ID: leadimport.TemplateLeadNeedPhone, Name: "Phone Needed", Language: language, Status: "APPROVED",
			Body: "Almost there! Please send us your phone number so we can complete your registration."},
		{ID: leadimport.TemplateLeadAfterHours, Name: "After Hours", Language: language, Status: "APPROVED",
			Body: "Thanks for your message! Our dive center is currently closed - we'll get back to you first thing during business hours."},
	}
	if err := db.Create(&defaults).Error; err != nil {
		log.Printf("Error seeding reply templates: %v", err)
		return
	}
	log.Printf("Seeded %d default reply templates", len(defaults))
}
