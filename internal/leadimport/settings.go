package leadimport

import "fmt"

// Settings is the operator-configured admission policy. A Settings value is
// an immutable snapshot: the pipeline copies it at the start of every
// evaluation, so reconfiguration never changes a decision already in flight.
type Settings struct {
	AutoImportEnabled     bool `json:"auto_import_enabled"`
	RequireEmail          bool `json:"require_email"`
	RequirePhone          bool `json:"require_phone"`
	DuplicateCheckEnabled bool `json:"duplicate_check_enabled"`
	ConfidenceThreshold   int  `json:"confidence_threshold"`
	BusinessHoursOnly     bool `json:"business_hours_only"`
	AutoReplyEnabled      bool `json:"auto_reply_enabled"`
	NotifyOnImport        bool `json:"notify_on_import"`

	// Local-time admission window, hours [Start, End), used only when
	// BusinessHoursOnly is set.
	BusinessHoursStart int `json:"business_hours_start"`
	BusinessHoursEnd   int `json:"business_hours_end"`
}

// DefaultSettings mirrors the dashboard defaults.
func DefaultSettings() Settings {
	return Settings{
		AutoImportEnabled:     true,
		RequireEmail:          true,
		RequirePhone:          false,
		DuplicateCheckEnabled: true,
		ConfidenceThreshold:   75,
		BusinessHoursOnly:     false,
		AutoReplyEnabled:      true,
		NotifyOnImport:        true,
		BusinessHoursStart:    9,
		BusinessHoursEnd:      18,
	}
}

// Validate rejects settings the policy engine cannot evaluate.
func (s Settings) Validate() error {
	if s.ConfidenceThreshold < 0 || s.ConfidenceThreshold > 100 {
		return fmt.Errorf("confidence threshold %d out of range [0,100]", s.ConfidenceThreshold)
	}
	if s.BusinessHoursStart < 0 || s.BusinessHoursStart > 23 {
		return fmt.Errorf("business hours start %d out of range [0,23]", s.BusinessHoursStart)
	}
	if s.BusinessHoursEnd < 1 || s.BusinessHoursEnd > 24 {
		return fmt.Errorf("business hours end %d out of range [1,24]", s.BusinessHoursEnd)
	}
	if s.BusinessHoursStart >= s.BusinessHoursEnd {
		return fmt.Errorf("business hours window [%d,%d) is empty", s.BusinessHoursStart, s.BusinessHoursEnd)
	}
	return nil
}
