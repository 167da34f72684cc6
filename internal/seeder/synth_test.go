package seeder

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"userseed/internal/models"
)

func newTestSynth(seed int64, now time.Time) *Synth {
	s := NewSynth(rand.New(rand.NewSource(seed)))
	s.now = func() time.Time { return now }
	return s
}

func TestSynthesize(t *testing.T) {
	today := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	t.Run("date windows", func(t *testing.T) {
		s := newTestSynth(1, today)

		for i := 0; i < 1000; i++ {
			u := s.Synthesize()

			dob, err := time.Parse(models.DateLayout, u.DateOfBirth)
			require.NoError(t, err)
			ageDays := int(today.Sub(dob).Hours() / 24)
			assert.GreaterOrEqual(t, ageDays, minAgeDays)
			assert.LessOrEqual(t, ageDays, maxAgeDays)

			signup, err := time.Parse(models.DateLayout, u.SignupDate)
			require.NoError(t, err)
			signupDays := int(today.Sub(signup).Hours() / 24)
			assert.GreaterOrEqual(t, signupDays, 0)
			assert.LessOrEqual(t, signupDays, maxSignupDays)
		}
	})

	t.Run("gender values", func(t *testing.T) {
		s := newTestSynth(2, today)

		seen := map[string]int{}
		for i := 0; i < 500; i++ {
			seen[s.Synthesize().Gender]++
		}

		assert.Len(t, seen, 2)
		assert.Positive(t, seen[models.GenderMale])
		assert.Positive(t, seen[models.GenderFemale])
	})

	t.Run("active rate trends toward 80 percent", func(t *testing.T) {
		s := newTestSynth(42, today)

		active := 0
		const n = 10000
		for i := 0; i < n; i++ {
			if s.Synthesize().IsActive {
				active++
			}
		}

		assert.InDelta(t, 0.80, float64(active)/float64(n), 0.05)
	})

	t.Run("fields populated", func(t *testing.T) {
		s := newTestSynth(3, today)
		u := s.Synthesize()

		assert.Contains(t, u.Name, " ")
		assert.Contains(t, u.Email, "@")
		assert.True(t, strings.HasPrefix(u.Phone, "+1-"))
		assert.NotEmpty(t, u.Address)
		assert.NotEmpty(t, u.Username)
	})

	t.Run("nil source falls back to a seeded one", func(t *testing.T) {
		s := NewSynth(nil)
		assert.NotEmpty(t, s.Synthesize().Email)
	})
}
