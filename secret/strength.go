package secret

import (
	"fmt"
	"math"
)

// Strength bounds for Analyze.
const (
	MinStrength = 0
	MaxStrength = 5
)

// Strength is the estimated strength of a single secret.
type Strength struct {
	// Score is 0 (trivial) to 4 (very strong).
	Score int

	// Guesses is the estimated number of guesses to find the secret.
	Guesses float64

	// Warning explains the main weakness, if any.
	Warning string

	// Suggestions are hints to make the secret stronger.
	Suggestions []string

	// CrackTimes holds one estimate per archetype, in Archetypes order.
	CrackTimes []CrackTime
}

// Archetype is an adversary used to express crack time.
type Archetype int

// Adversary archetypes, weakest first.
const (
	SlowComputers Archetype = iota
	FastComputers
	Professional
	StateActors
)

// Archetypes lists every archetype in display order.
var Archetypes = []Archetype{SlowComputers, FastComputers, Professional, StateActors}

// String returns the display label.
func (a Archetype) String() string {
	switch a {
	case SlowComputers:
		return "slow computers"
	case FastComputers:
		return "fast computers"
	case Professional:
		return "a professional"
	case StateActors:
		return "state actors"
	default:
		return fmt.Sprintf("archetype(%d)", int(a))
	}
}

// GuessesPerSecond is the guess rate assumed for the archetype.
func (a Archetype) GuessesPerSecond() float64 {
	switch a {
	case SlowComputers:
		return 100.0 / 3600 // throttled online attack
	case FastComputers:
		return 10
	case Professional:
		return 1e4
	default:
		return 1e10
	}
}

// CrackTime is the estimated time an archetype needs to find a secret.
type CrackTime struct {
	Archetype Archetype
	Seconds   float64
	Display   string
}

// CrackTimes estimates crack time for every archetype.
func CrackTimes(guesses float64) []CrackTime {
	out := make([]CrackTime, 0, len(Archetypes))
	for _, a := range Archetypes {
		seconds := guesses / a.GuessesPerSecond()
		out = append(out, CrackTime{
			Archetype: a,
			Seconds:   seconds,
			Display:   DisplayTime(seconds),
		})
	}
	return out
}

// DisplayTime renders a duration in seconds the way zxcvbn does.
func DisplayTime(seconds float64) string {
	const (
		minute  = 60.0
		hour    = minute * 60
		day     = hour * 24
		month   = day * 31
		year    = month * 12
		century = year * 100
	)

	plural := func(n float64, unit string) string {
		v := int64(math.Round(n))
		if v == 1 {
			return fmt.Sprintf("1 %s", unit)
		}
		return fmt.Sprintf("%d %ss", v, unit)
	}

	switch {
	case seconds < 1:
		return "less than a second"
	case seconds < minute:
		return plural(seconds, "second")
	case seconds < hour:
		return plural(seconds/minute, "minute")
	case seconds < day:
		return plural(seconds/hour, "hour")
	case seconds < month:
		return plural(seconds/day, "day")
	case seconds < year:
		return plural(seconds/month, "month")
	case seconds < century:
		return plural(seconds/year, "year")
	default:
		return "centuries"
	}
}

// lockoutGuessesPerYear assumes 100 attempts per lockout window, 100 windows
// per day.
const lockoutGuessesPerYear = 100 * 100 * 365

// LockoutYears estimates how many years an online attacker facing account
// lockout needs to find a secret.
func LockoutYears(guesses float64) int64 {
	years := math.Ceil(guesses / lockoutGuessesPerYear)
	if math.IsNaN(years) || years < 0 {
		return 0
	}
	if years >= math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(years)
}
