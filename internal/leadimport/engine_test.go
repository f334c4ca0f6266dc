package leadimport

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDirectory struct {
	found bool
	err   error
	calls int
}

func (f *fakeDirectory) HasContact(ctx context.Context, phone, email string) (bool, error) {
	f.calls++
	return f.found, f.err
}

func newTestEngine(dir ContactDirectory) *Engine {
	return NewEngine(NewDuplicateDetector(dir, time.Second), time.UTC)
}

var testNow = time.Date(2026, 8, 14, 12, 0, 0, 0, time.UTC)

func permissiveSettings() Settings {
	s := DefaultSettings()
	s.RequireEmail = false
	s.RequirePhone = false
	s.DuplicateCheckEnabled = false
	return s
}

func fullProfile() Profile {
	return Profile{
		Name:          "Ana",
		Email:         "ana@x.com",
		Phone:         "+14155550123",
		PhoneVerified: true,
		RawText:       "Hi, I'm Ana, ana@x.com, +14155550123",
	}
}

func TestEvaluateAutoImportDisabled(t *testing.T) {
	s := permissiveSettings()
	s.AutoImportEnabled = false

	e := newTestEngine(&fakeDirectory{})
	d := e.Evaluate(context.Background(), s, fullProfile(), 100, testNow)

	assert.Equal(t, DecisionError, d.Kind)
	assert.Equal(t, "auto-import disabled", d.Reason)
}

func TestEvaluateBusinessHours(t *testing.T) {
	s := permissiveSettings()
	s.BusinessHoursOnly = true
	s.BusinessHoursStart = 9
	s.BusinessHoursEnd = 18

	e := newTestEngine(&fakeDirectory{})

	tests := []struct {
		hour string
		at   time.Time
		want DecisionKind
	}{
		{"before opening", time.Date(2026, 8, 14, 8, 59, 0, 0, time.UTC), DecisionOutsideBusinessHours},
		{"at opening", time.Date(2026, 8, 14, 9, 0, 0, 0, time.UTC), DecisionImported},
		{"midday", time.Date(2026, 8, 14, 13, 30, 0, 0, time.UTC), DecisionImported},
		{"at closing", time.Date(2026, 8, 14, 18, 0, 0, 0, time.UTC), DecisionOutsideBusinessHours},
		{"late night", time.Date(2026, 8, 14, 23, 0, 0, 0, time.UTC), DecisionOutsideBusinessHours},
	}
	for _, tt := range tests {
		t.Run(tt.hour, func(t *testing.T) {
			d := e.Evaluate(context.Background(), s, fullProfile(), 100, tt.at)
			assert.Equal(t, tt.want, d.Kind)
		})
	}
}

func TestEvaluateRequiredFieldsPrecedeScoring(t *testing.T) {
	s := permissiveSettings()
	s.RequireEmail = true
	s.ConfidenceThreshold = 10

	e := newTestEngine(&fakeDirectory{})

	// High score, no email: required-field check must win over scoring.
	p := Profile{Name: "Ana", Phone: "+14155550123", PhoneVerified: true}
	d := e.Evaluate(context.Background(), s, p, 75, testNow)

	require.Equal(t, DecisionMissingRequiredField, d.Kind)
	assert.Equal(t, "email", d.Reason)
}

func TestEvaluateRequirePhone(t *testing.T) {
	s := permissiveSettings()
	s.RequirePhone = true

	e := newTestEngine(&fakeDirectory{})
	d := e.Evaluate(context.Background(), s, Profile{Name: "Ana", Email: "ana@x.com"}, 80, testNow)

	require.Equal(t, DecisionMissingRequiredField, d.Kind)
	assert.Equal(t, "phone", d.Reason)
}

func TestEvaluateDuplicatePrecedesConfidence(t *testing.T) {
	s := permissiveSettings()
	s.DuplicateCheckEnabled = true
	s.ConfidenceThreshold = 90

	e := newTestEngine(&fakeDirectory{found: true})

	// Below threshold AND a duplicate: duplicate wins.
	d := e.Evaluate(context.Background(), s, fullProfile(), 60, testNow)
	assert.Equal(t, DecisionDuplicate, d.Kind)
}

func TestEvaluateLookupUnavailableIsError(t *testing.T) {
	s := permissiveSettings()
	s.DuplicateCheckEnabled = true

	e := newTestEngine(&fakeDirectory{err: errors.New("connection refused")})
	d := e.Evaluate(context.Background(), s, fullProfile(), 100, testNow)

	require.Equal(t, DecisionError, d.Kind)
	assert.Equal(t, "duplicate lookup failed", d.Reason)
}

func TestEvaluateLowConfidence(t *testing.T) {
	s := permissiveSettings()
	s.ConfidenceThreshold = 75

	e := newTestEngine(&fakeDirectory{})
	d := e.Evaluate(context.Background(), s, Profile{Name: "Ana"}, 55, testNow)

	assert.Equal(t, DecisionLowConfidence, d.Kind)
	assert.Contains(t, d.Reason, "55")
}

func TestEvaluateSkipsLookupWhenGateRejects(t *testing.T) {
	s := permissiveSettings()
	s.RequireEmail = true
	s.DuplicateCheckEnabled = true

	dir := &fakeDirectory{}
	e := newTestEngine(dir)
	d := e.Evaluate(context.Background(), s, Profile{Name: "Ana"}, 55, testNow)

	assert.Equal(t, DecisionMissingRequiredField, d.Kind)
	assert.Zero(t, dir.calls, "no external lookup for a message a cheap gate already rejected")
}

func TestDuplicateDetector(t *testing.T) {
	t.Run("no keys reports not duplicate without a lookup", func(t *testing.T) {
		dir := &fakeDirectory{found: true}
		det := NewDuplicateDetector(dir, time.Second)

		got := det.Check(context.Background(), Profile{Name: "Ana"})
		assert.Equal(t, DupNotDuplicate, got)
		assert.Zero(t, dir.calls)
	})

	t.Run("directory error is unavailable, not a free pass", func(t *testing.T) {
		det := NewDuplicateDetector(&fakeDirectory{err: errors.New("timeout")}, time.Second)
		got := det.Check(context.Background(), fullProfile())
		assert.Equal(t, DupUnavailable, got)
	})

	t.Run("email key is lowercased", func(t *testing.T) {
		phone, email := lookupKeys(Profile{Email: "John.Doe@example.com"})
		assert.Empty(t, phone)
		assert.Equal(t, "john.doe@example.com", email)
	})
}
