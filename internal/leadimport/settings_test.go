package leadimport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	require.NoError(t, s.Validate())

	assert.True(t, s.AutoImportEnabled)
	assert.True(t, s.RequireEmail)
	assert.False(t, s.RequirePhone)
	assert.True(t, s.DuplicateCheckEnabled)
	assert.Equal(t, 75, s.ConfidenceThreshold)
	assert.False(t, s.BusinessHoursOnly)
	assert.True(t, s.AutoReplyEnabled)
	assert.True(t, s.NotifyOnImport)
	assert.Equal(t, 9, s.BusinessHoursStart)
	assert.Equal(t, 18, s.BusinessHoursEnd)
}

func TestSettingsValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantErr bool
	}{
		{"defaults pass", func(s *Settings) {}, false},
		{"threshold floor", func(s *Settings) { s.ConfidenceThreshold = 0 }, false},
		{"threshold ceiling", func(s *Settings) { s.ConfidenceThreshold = 100 }, false},
		{"threshold negative", func(s *Settings) { s.ConfidenceThreshold = -1 }, true},
		{"threshold above max", func(s *Settings) { s.ConfidenceThreshold = 101 }, true},
		{"hours inverted", func(s *Settings) { s.BusinessHoursStart = 18; s.BusinessHoursEnd = 9 }, true},
		{"hours equal", func(s *Settings) { s.BusinessHoursStart = 9; s.BusinessHoursEnd = 9 }, true},
		{"start out of range", func(s *Settings) { s.BusinessHoursStart = -1 }, true},
		{"end out of range", func(s *Settings) { s.BusinessHoursEnd = 25 }, true},
		{"full day", func(s *Settings) { s.BusinessHoursStart = 0; s.BusinessHoursEnd = 24 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.mutate(&s)
			err := s.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
