package database

import (
	"context"
	"fmt"
	"log"
	"strings"

	"diveops-console/internal/leadimport"
	"diveops-console/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ContactStore adapts the contacts table to the pipeline's contact-lookup
// and contact-store collaborator ports.
type ContactStore struct {
	db *gorm.DB
}

func NewContactStore(db *gorm.DB) *ContactStore {
	return &ContactStore{db: db}
}

// HasContact reports whether a contact already exists under either
// normalized key. Empty keys are ignored.
func (s *ContactStore) HasContact(ctx context.Context, phone, email string) (bool, error) {
	q := s.db.WithContext(ctx).Model(&models.Contact{})
	switch {
	case phone != "" && email != "":
		q = q.Where("phone = ? OR LOWER(email) = ?", phone, email)
	case phone != "":
		q = q.Where("phone = ?", phone)
	case email != "":
		q = q.Where("LOWER(email) = ?", email)
	default:
		return false, fmt.Errorf("no lookup key")
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateContact upserts an admitted lead keyed by its WhatsApp address,
// recording the import provenance alongside the profile fields.
func (s *ContactStore) CreateContact(ctx context.Context, p leadimport.Profile, prov leadimport.Provenance) error {
	name := p.Name
	if name == "" {
		name = prov.FromAddress
	}
	contact := models.Contact{
		WaID:       prov.FromAddress,
		Name:       name,
		Email:      p.Email,
		Phone:      p.Phone,
		Tags:       `["whatsapp-lead"]`,
		Source:     string(prov.Source),
		Confidence: prov.Confidence,
		RawText:    prov.RawText,
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "wa_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "email", "phone", "source", "confidence", "raw_text",
		}),
	}).Create(&contact).Error
}

// ImportLogStore persists one decision-log row per processed message.
type ImportLogStore struct {
	db *gorm.DB
}

func NewImportLogStore(db *gorm.DB) *ImportLogStore {
	return &ImportLogStore{db: db}
}

func (s *ImportLogStore) RecordDecision(ctx context.Context, msg leadimport.InboundMessage, p leadimport.Profile, score int, d leadimport.Decision) {
	entry := models.ImportLog{
		MessageID:  msg.ID,
		WaID:       msg.FromAddress,
		Name:       p.Name,
		Email:      strings.ToLower(p.Email),
		Phone:      p.Phone,
		Decision:   d.Kind.String(),
		Reason:     d.Reason,
		Confidence: score,
		Source:     string(msg.Channel),
	}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		log.Printf("Error recording import log for message %s: %v", msg.ID, err)
	}
}

// Recent returns the newest decision-log entries for the dashboard feed.
func (s *ImportLogStore) Recent(ctx context.Context, limit int) ([]models.ImportLog, error) {
	if limit <= 0 {
		limit = 20
	}
	var entries []models.ImportLog
	err := s.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&entries).Error
	return entries, err
}
