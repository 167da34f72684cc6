package seeder

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"userseed/internal/models"
)

// Synthesizer produces one candidate seed user per call. Implementations
// make no uniqueness guarantee; the generator owns collision handling.
type Synthesizer interface {
	Synthesize() models.SeedUser
}

var firstNames = []string{
	"James", "Mary", "Robert", "Patricia", "John", "Jennifer", "Michael", "Linda",
	"David", "Elizabeth", "William", "Barbara", "Richard", "Susan", "Joseph", "Jessica",
	"Thomas", "Sarah", "Charles", "Karen", "Christopher", "Lisa", "Daniel", "Nancy",
	"Matthew", "Betty", "Anthony", "Margaret", "Mark", "Sandra", "Donald", "Ashley",
	"Steven", "Dorothy", "Paul", "Kimberly", "Andrew", "Emily", "Joshua", "Donna",
	"Kenneth", "Michelle", "Kevin", "Carol", "Brian", "Amanda", "George", "Melissa",
	"Timothy", "Deborah", "Ronald", "Stephanie", "Edward", "Rebecca", "Jason", "Sharon",
	"Jeffrey", "Laura", "Ryan", "Cynthia", "Jacob", "Kathleen", "Gary", "Amy",
	"Nicholas", "Angela", "Eric", "Shirley", "Jonathan", "Anna", "Stephen", "Brenda",
	"Larry", "Pamela", "Justin", "Emma", "Scott", "Nicole", "Brandon", "Helen",
}

var lastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis",
	"Rodriguez", "Martinez", "Hernandez", "Lopez", "Gonzalez", "Wilson", "Anderson",
	"Thomas", "Taylor", "Moore", "Jackson", "Martin", "Lee", "Perez", "Thompson",
	"White", "Harris", "Sanchez", "Clark", "Ramirez", "Lewis", "Robinson", "Walker",
	"Young", "Allen", "King", "Wright", "Scott", "Torres", "Nguyen", "Hill",
	"Flores", "Green", "Adams", "Nelson", "Baker", "Hall", "Rivera", "Campbell",
	"Mitchell", "Carter", "Roberts", "Gomez", "Phillips", "Evans", "Turner", "Diaz",
}

var emailDomains = []string{
	"gmail.com", "yahoo.com", "hotmail.com", "outlook.com", "protonmail.com",
	"icloud.com", "mail.com", "fastmail.com", "zoho.com", "aol.com",
	"example.com", "test.com", "company.org", "corp.net", "business.io",
}

var streetSuffixes = []string{"St", "Ave", "Blvd", "Ln", "Dr", "Rd", "Ct", "Way"}

var cities = []string{
	"Springfield", "Riverside", "Franklin", "Greenville", "Bristol", "Clinton",
	"Fairview", "Salem", "Madison", "Georgetown", "Arlington", "Ashland",
	"Dover", "Oxford", "Jackson", "Burlington", "Manchester", "Milton",
}

var stateCodes = []string{
	"AL", "AZ", "CA", "CO", "FL", "GA", "IL", "IN", "KY", "MA",
	"MD", "MI", "MN", "MO", "NC", "NJ", "NY", "OH", "OR", "PA",
	"TN", "TX", "UT", "VA", "WA", "WI",
}

// Generation windows, in days.
const (
	minAgeDays    = 18 * 365
	maxAgeDays    = 90 * 365
	maxSignupDays = 5 * 365
)

// activePercent is the chance a generated user is active.
const activePercent = 80

// Synth generates seed users from word pools using an injected random
// source, so tests can substitute a deterministic one.
type Synth struct {
	rng *rand.Rand
	now func() time.Time
}

// NewSynth creates a synthesizer drawing from rng. A nil rng falls back
// to a time-seeded source.
func NewSynth(rng *rand.Rand) *Synth {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Synth{rng: rng, now: time.Now}
}

func (s *Synth) pick(pool []string) string {
	return pool[s.rng.Intn(len(pool))]
}

// Synthesize returns one semantically valid candidate record. Email and
// username collide occasionally; date_of_birth keeps the user 18-90 years
// old and signup_date falls within the past five years.
func (s *Synth) Synthesize() models.SeedUser {
	first := s.pick(firstNames)
	last := s.pick(lastNames)
	today := s.now()

	dob := today.AddDate(0, 0, -(minAgeDays + s.rng.Intn(maxAgeDays-minAgeDays+1)))
	signup := today.AddDate(0, 0, -s.rng.Intn(maxSignupDays+1))

	gender := models.GenderMale
	if s.rng.Intn(2) == 1 {
		gender = models.GenderFemale
	}

	return models.SeedUser{
		Name:   first + " " + last,
		Email:  fmt.Sprintf("%s.%s%d@%s", strings.ToLower(first), strings.ToLower(last), s.rng.Intn(10000), s.pick(emailDomains)),
		Gender: gender,
		Phone:  fmt.Sprintf("+1-%03d-%03d-%04d", 200+s.rng.Intn(800), s.rng.Intn(1000), s.rng.Intn(10000)),
		Address: fmt.Sprintf("%d %s %s, %s, %s %05d",
			1+s.rng.Intn(9999), s.pick(lastNames), s.pick(streetSuffixes), s.pick(cities), s.pick(stateCodes), s.rng.Intn(100000)),
		Username:    fmt.Sprintf("%s_%s%d", strings.ToLower(first), strings.ToLower(last), s.rng.Intn(10000)),
		DateOfBirth: dob.Format(models.DateLayout),
		SignupDate:  signup.Format(models.DateLayout),
		IsActive:    s.rng.Intn(100) < activePercent,
	}
}
