package leadimport

// Scoring policy constants. These are tuning knobs, kept apart from the
// extraction logic on purpose: an unverified-format phone is worth half a
// verified one.
const (
	ScoreBase            = 40 // any field recognized at all
	ScoreEmail           = 25
	ScorePhoneVerified   = 20
	ScorePhoneUnverified = 10
	ScoreName            = 15
	ScoreMax             = 100
)

// Score assigns a 0-100 confidence to an extraction result. It is pure and
// deterministic so decisions can be replayed for audits.
func Score(p Profile) int {
	if p.Empty() {
		return 0
	}
	score := ScoreBase
	if p.HasEmail() {
		score += ScoreEmail
	}
	if p.HasPhone() {
		if p.PhoneVerified {
			score += ScorePhoneVerified
		} else {
			score += ScorePhoneUnverified
		}
	}
	if p.HasName() {
		score += ScoreName
	}
	if score > ScoreMax {
		score = ScoreMax
	}
	return score
}
