package leadimport

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		wantName     string
		wantEmail    string
		wantPhone    string
		wantVerified bool
	}{
		{
			name:         "full introduction",
			text:         "Hi, I'm Ana, ana@x.com, +14155550123",
			wantName:     "Ana",
			wantEmail:    "ana@x.com",
			wantPhone:    "+14155550123",
			wantVerified: true,
		},
		{
			name:      "this is phrase with email only",
			text:      "Hello, this is James, james.wilson@mail.com",
			wantName:  "James",
			wantEmail: "james.wilson@mail.com",
		},
		{
			name:     "my name is phrase",
			text:     "my name is Maria Silva and I want to book a course",
			wantName: "Maria Silva",
		},
		{
			name: "nothing recognizable",
			text: "just saying hi",
		},
		{
			// No name either: capitalized words inside the email span must
			// not be mistaken for one.
			name:      "domain lowercased local preserved",
			text:      "contact me at John.Doe@Example.COM",
			wantEmail: "John.Doe@example.com",
		},
		{
			name:         "phone with separators",
			text:         "call me on +1 (415) 555-0123 please",
			wantPhone:    "+14155550123",
			wantVerified: true,
		},
		{
			name:      "bare local number unverified",
			text:      "call 5550123",
			wantPhone: "5550123",
		},
		{
			name:         "bare number with recognized country code",
			text:         "reach me at 4915791234567",
			wantPhone:    "+4915791234567",
			wantVerified: true,
		},
		{
			name:     "fallback capitalized name after greeting",
			text:     "Hello Ahmed Hassan here, interested in the open water course",
			wantName: "Ahmed Hassan",
		},
		{
			name:      "emoji and non-latin text around fields",
			text:      "🤿 diving!! my name is Sophie Martin, sophie@dive-nice.fr 你好",
			wantName:  "Sophie Martin",
			wantEmail: "sophie@dive-nice.fr",
		},
		{
			name: "digits too short for a phone",
			text: "see you at 18:30",
		},
		{
			name: "digits too long for a phone",
			text: "order ref 12345678901234567890",
		},
		{
			name:      "email digits not mistaken for phone",
			text:      "write to ana12345678@x.com",
			wantEmail: "ana12345678@x.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Extract(tt.text)
			assert.Equal(t, tt.wantName, p.Name, "name")
			assert.Equal(t, tt.wantEmail, p.Email, "email")
			assert.Equal(t, tt.wantPhone, p.Phone, "phone")
			assert.Equal(t, tt.wantVerified, p.PhoneVerified, "phone verified")
			assert.Equal(t, tt.text, p.RawText, "raw text")
		})
	}
}

func TestExtractIsDeterministic(t *testing.T) {
	text := "Hi, I'm Ana, ana@x.com, +14155550123"
	first := Extract(text)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Extract(text))
	}
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		raw          string
		want         string
		wantVerified bool
		wantOK       bool
	}{
		{"+14155550123", "+14155550123", true, true},
		{"+1 415-555-0123", "+14155550123", true, true},
		{"14155550123", "+14155550123", true, true},
		{"5550123", "5550123", false, true},
		{"123", "", false, false},
		{"12345678901234567890", "", false, false},
		{"", "", false, false},
	}

	for _, tt := range tests {
		got, verified, ok := NormalizePhone(tt.raw)
		assert.Equal(t, tt.wantOK, ok, "ok for %q", tt.raw)
		assert.Equal(t, tt.want, got, "normalized for %q", tt.raw)
		assert.Equal(t, tt.wantVerified, verified, "verified for %q", tt.raw)
	}
}
