package leadimport

import (
	"context"
	"fmt"
	"time"
)

// DupResult is the outcome of a duplicate lookup.
type DupResult int

const (
	DupNotDuplicate DupResult = iota
	DupDuplicate
	DupUnavailable
)

// ContactDirectory is the external contact-lookup collaborator. Keys are
// already normalized (lowercased email, separator-stripped phone); either may
// be empty, but never both.
type ContactDirectory interface {
	HasContact(ctx context.Context, phone, email string) (bool, error)
}

// DuplicateDetector checks a candidate against known contacts through the
// directory collaborator, with a bounded timeout.
type DuplicateDetector struct {
	directory ContactDirectory
	timeout   time.Duration
}

func NewDuplicateDetector(directory ContactDirectory, timeout time.Duration) *DuplicateDetector {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &DuplicateDetector{directory: directory, timeout: timeout}
}

// Check resolves to DupNotDuplicate when the candidate carries no lookup key
// at all; that case cannot be evaluated and must not block admission. A
// directory error or timeout resolves to DupUnavailable, never to
// DupNotDuplicate.
func (d *DuplicateDetector) Check(ctx context.Context, p Profile) DupResult {
	phone, email := lookupKeys(p)
	if phone == "" && email == "" {
		return DupNotDuplicate
	}
	if d.directory == nil {
		return DupUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	found, err := d.directory.HasContact(ctx, phone, email)
	if err != nil {
		return DupUnavailable
	}
	if found {
		return DupDuplicate
	}
	return DupNotDuplicate
}

// lookupKeys normalizes the profile fields into directory keys. Email
// comparison is case-insensitive end to end, so the whole address is
// lowercased here even though the stored profile preserves local-part case.
func lookupKeys(p Profile) (phone, email string) {
	return p.Phone, toLowerASCII(p.Email)
}

func toLowerASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + 'a' - 'A'
		}
	}
	return string(b)
}

// Engine applies the admission policy to one extraction result. Rules are
// evaluated in a fixed order and the first match is terminal: policy gates
// first, then the duplicate lookup, then the confidence gate, so hard
// requirements always win over soft scoring and no external call is made for
// a message that a cheap check already rejects.
type Engine struct {
	detector *DuplicateDetector
	loc      *time.Location
}

func NewEngine(detector *DuplicateDetector, loc *time.Location) *Engine {
	if loc == nil {
		loc = time.UTC
	}
	return &Engine{detector: detector, loc: loc}
}

// Evaluate produces the admission decision for one message. now is the
// evaluation instant supplied by the caller; business hours are a pure
// function of it.
func (e *Engine) Evaluate(ctx context.Context, s Settings, p Profile, score int, now time.Time) Decision {
	if !s.AutoImportEnabled {
		return errorDecision("auto-import disabled")
	}
	if s.BusinessHoursOnly && !withinBusinessHours(now.In(e.loc), s) {
		return outsideBusinessHours()
	}
	if s.RequireEmail && !p.HasEmail() {
		return missingField("email")
	}
	if s.RequirePhone && !p.HasPhone() {
		return missingField("phone")
	}
	if s.DuplicateCheckEnabled {
		switch e.detector.Check(ctx, p) {
		case DupDuplicate:
			return duplicate()
		case DupUnavailable:
			return errorDecision("duplicate lookup failed")
		}
	}
	if score < s.ConfidenceThreshold {
		return lowConfidence(fmt.Sprintf("confidence %d below threshold %d", score, s.ConfidenceThreshold))
	}
	return imported()
}

func withinBusinessHours(local time.Time, s Settings) bool {
	h := local.Hour()
	return h >= s.BusinessHoursStart && h < s.BusinessHoursEnd
}
