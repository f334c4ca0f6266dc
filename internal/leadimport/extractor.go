package leadimport

import (
	"regexp"
	"strings"
	"unicode"
)

// Profile holds the candidate contact fields extracted from one message.
// Empty string means the field was absent; that is a normal outcome, not an
// error.
type Profile struct {
	Name          string
	Email         string
	Phone         string // digits only, "+"-prefixed when the country code is verified
	PhoneVerified bool   // true when a leading + or a known calling code was seen
	RawText       string
}

func (p Profile) HasEmail() bool { return p.Email != "" }
func (p Profile) HasPhone() bool { return p.Phone != "" }
func (p Profile) HasName() bool  { return p.Name != "" }

// Empty reports whether no field at all was recognized.
func (p Profile) Empty() bool { return !p.HasEmail() && !p.HasPhone() && !p.HasName() }

var (
	emailRE = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)

	// phoneRE over-matches on purpose; candidates are validated by digit count
	// after separators are stripped.
	phoneRE = regexp.MustCompile(`\+?[0-9(][0-9 \-().]{4,22}[0-9]`)

	// Explicit self-introduction phrases. The trigger is matched
	// case-insensitively by alternation so the captured name stays
	// case-sensitive.
	namePhraseRE = regexp.MustCompile(`\b(?:[Mm]y name is|[Ii]['’]?m|[Ii] am|[Tt]his is)\s+(\p{Lu}[\p{L}'’\-]*(?:\s+\p{Lu}[\p{L}'’\-]*){0,2})`)

	// Fallback: a run of up to three capitalized words.
	capitalizedRunRE = regexp.MustCompile(`\p{Lu}[\p{L}'’\-]+(?:\s+\p{Lu}[\p{L}'’\-]+){0,2}`)
)

// Conversational openers that must not be mistaken for names.
var nameStopwords = map[string]bool{
	"hi": true, "hello": true, "hey": true, "hola": true,
	"thanks": true, "thank": true, "please": true,
	"ok": true, "okay": true, "yes": true, "no": true,
	"good": true, "morning": true, "afternoon": true, "evening": true,
	"whatsapp": true, "i": true,
}

// Common 1-3 digit international calling codes used to recognise numbers
// typed without a leading "+". Prefix inference is deliberately conservative:
// it only fires on 10-15 digit numbers (see normalizePhoneDigits).
var callingCodes = map[string]bool{
	"1": true, "7": true, "20": true, "27": true, "30": true, "31": true,
	"32": true, "33": true, "34": true, "39": true, "41": true, "43": true,
	"44": true, "45": true, "46": true, "47": true, "48": true, "49": true,
	"52": true, "54": true, "55": true, "56": true, "57": true, "60": true,
	"61": true, "62": true, "63": true, "64": true, "65": true, "66": true,
	"81": true, "82": true, "84": true, "86": true, "90": true, "91": true,
	"92": true, "234": true, "351": true, "352": true, "353": true,
	"358": true, "420": true, "852": true, "880": true, "961": true,
	"962": true, "966": true, "971": true, "972": true,
}

const (
	phoneMinDigits = 7
	phoneMaxDigits = 15

	// Bare numbers shorter than this are treated as local and never get a
	// calling code inferred.
	phoneInferMinDigits = 10
)

type span struct{ start, end int }

func (s span) overlaps(o span) bool { return s.start < o.end && o.start < s.end }

// Extract parses raw message text into candidate profile fields. It is a pure
// function of its input: no storage, no network, no clock.
func Extract(text string) Profile {
	p := Profile{RawText: text}

	var taken []span

	if loc := emailRE.FindStringIndex(text); loc != nil {
		p.Email = normalizeEmail(text[loc[0]:loc[1]])
		taken = append(taken, span{loc[0], loc[1]})
	}

	for _, loc := range phoneRE.FindAllStringIndex(text, -1) {
		s := span{loc[0], loc[1]}
		if overlapsAny(s, taken) {
			continue
		}
		digits, verified, ok := normalizePhoneDigits(text[loc[0]:loc[1]])
		if !ok {
			continue
		}
		p.Phone = digits
		p.PhoneVerified = verified
		taken = append(taken, s)
		break
	}

	p.Name = extractName(text, taken)
	return p
}

// normalizeEmail preserves the local part's case and lowercases the domain.
func normalizeEmail(addr string) string {
	at := strings.LastIndex(addr, "@")
	if at < 0 {
		return addr
	}
	return addr[:at+1] + strings.ToLower(addr[at+1:])
}

// NormalizePhone applies the extractor's phone rules to a standalone string.
// It returns the normalized number, whether the country code was verified,
// and whether the input was a plausible phone number at all.
func NormalizePhone(raw string) (string, bool, bool) {
	return normalizePhoneDigits(raw)
}

func normalizePhoneDigits(raw string) (string, bool, bool) {
	raw = strings.TrimSpace(raw)
	plus := strings.HasPrefix(raw, "+")

	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) < phoneMinDigits || len(digits) > phoneMaxDigits {
		return "", false, false
	}

	if plus {
		return "+" + digits, true, true
	}
	if len(digits) >= phoneInferMinDigits && hasCallingCode(digits) {
		return "+" + digits, true, true
	}
	return digits, false, true
}

func hasCallingCode(digits string) bool {
	for l := 1; l <= 3 && l < len(digits); l++ {
		if callingCodes[digits[:l]] {
			return true
		}
	}
	return false
}

func extractName(text string, taken []span) string {
	if m := namePhraseRE.FindStringSubmatchIndex(text); m != nil {
		s := span{m[2], m[3]}
		if !overlapsAny(s, taken) {
			if name := cleanName(text[m[2]:m[3]]); name != "" {
				return name
			}
		}
	}

	for _, loc := range capitalizedRunRE.FindAllStringIndex(text, -1) {
		s := span{loc[0], loc[1]}
		if overlapsAny(s, taken) {
			continue
		}
		if name := cleanName(text[loc[0]:loc[1]]); name != "" {
			return name
		}
	}
	return ""
}

// cleanName drops leading conversational openers and anything that does not
// look like a personal name.
func cleanName(candidate string) string {
	words := strings.Fields(candidate)
	for len(words) > 0 && nameStopwords[strings.ToLower(words[0])] {
		words = words[1:]
	}
	if len(words) == 0 {
		return ""
	}
	for _, w := range words {
		r := []rune(w)[0]
		if !unicode.IsUpper(r) {
			return ""
		}
	}
	return strings.Join(words, " ")
}

func overlapsAny(s span, taken []span) bool {
	for _, t := range taken {
		if s.overlaps(t) {
			return true
		}
	}
	return false
}
