package leadimport

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name    string
		profile Profile
		want    int
	}{
		{"empty profile", Profile{RawText: "just saying hi"}, 0},
		{"name only", Profile{Name: "Ana"}, ScoreBase + ScoreName},
		{"email only", Profile{Email: "ana@x.com"}, ScoreBase + ScoreEmail},
		{"verified phone only", Profile{Phone: "+14155550123", PhoneVerified: true}, ScoreBase + ScorePhoneVerified},
		{"unverified phone only", Profile{Phone: "5550123"}, ScoreBase + ScorePhoneUnverified},
		{"name and email", Profile{Name: "James", Email: "james.wilson@mail.com"}, 80},
		{
			"everything verified caps at 100",
			Profile{Name: "Ana", Email: "ana@x.com", Phone: "+14155550123", PhoneVerified: true},
			100,
		},
		{
			"unverified phone scores below verified",
			Profile{Name: "Ana", Email: "ana@x.com", Phone: "5550123"},
			ScoreBase + ScoreEmail + ScorePhoneUnverified + ScoreName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Score(tt.profile))
		})
	}
}

func TestScoreRoundTrip(t *testing.T) {
	p := Extract("Hi, I'm Ana, ana@x.com, +14155550123")
	assert.GreaterOrEqual(t, Score(p), 85)
}

func TestScoreRangeAndDeterminism(t *testing.T) {
	profiles := []Profile{
		{},
		{Name: "Ana"},
		{Name: "Ana", Email: "ana@x.com", Phone: "+14155550123", PhoneVerified: true},
	}
	for _, p := range profiles {
		first := Score(p)
		assert.GreaterOrEqual(t, first, 0)
		assert.LessOrEqual(t, first, 100)
		for i := 0; i < 5; i++ {
			assert.Equal(t, first, Score(p))
		}
	}
}
