package leadimport

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectReply(t *testing.T) {
	enabled := DefaultSettings()

	tests := []struct {
		name     string
		decision Decision
		wantTmpl string
		wantOK   bool
	}{
		{"imported", imported(), TemplateLeadWelcome, true},
		{"duplicate", duplicate(), TemplateLeadDuplicate, true},
		{"low confidence", lowConfidence("score 40 below threshold 75"), TemplateLeadMoreInfo, true},
		{"missing email", missingField("email"), TemplateLeadNeedEmail, true},
		{"missing phone", missingField("phone"), TemplateLeadNeedPhone, true},
		{"outside hours", outsideBusinessHours(), TemplateLeadAfterHours, true},
		{"error never replied", errorDecision("duplicate lookup failed"), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, ok := SelectReply(enabled, tt.decision)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantTmpl, tmpl)
		})
	}
}

func TestSelectReplyDisabled(t *testing.T) {
	s := DefaultSettings()
	s.AutoReplyEnabled = false

	for _, d := range []Decision{imported(), duplicate(), missingField("email")} {
		_, ok := SelectReply(s, d)
		assert.False(t, ok, "no reply for %s when auto-reply is off", d.Kind)
	}
}
