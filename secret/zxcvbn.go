package secret

import (
	"math"
	"strings"

	"github.com/nbutton23/zxcvbn-go"
	"github.com/nbutton23/zxcvbn-go/match"
	"github.com/nbutton23/zxcvbn-go/matching"
)

// zxcvbn-go leaves Pattern empty on date matches and tags them by
// dictionary name instead.
const dateMatchName = "date_match"

// Estimator scores secrets. Implementations must be safe for concurrent use.
type Estimator interface {
	Estimate(secret string, userInputs ...string) Strength
}

// ZxcvbnEstimator estimates strength with zxcvbn.
type ZxcvbnEstimator struct{}

// Estimate implements Estimator.
func (ZxcvbnEstimator) Estimate(secret string, userInputs ...string) Strength {
	res := zxcvbn.PasswordStrength(secret, userInputs)

	guesses := math.Pow(2, res.Entropy)
	if math.IsInf(guesses, 1) {
		guesses = math.MaxFloat64
	}

	s := Strength{
		Score:      res.Score,
		Guesses:    guesses,
		CrackTimes: CrackTimes(guesses),
	}

	if s.Score > 2 {
		return s
	}

	if len(res.MatchSequence) == 0 {
		s.Suggestions = []string{
			"Use a few words, avoid common phrases",
			"No need for symbols, digits, or uppercase letters",
		}
		return s
	}

	m := feedbackMatch(secret, userInputs, res.MatchSequence)

	s.Suggestions = []string{"Add another word or two. Uncommon words are better."}
	warning, extra := patternFeedback(matchPattern(m), m.DictionaryName, len(res.MatchSequence) == 1)
	s.Warning = warning
	s.Suggestions = append(s.Suggestions, extra...)
	return s
}

// feedbackMatch picks the match that drives the warning. Dates win over
// everything else, even when the scorer covered the digits with a
// cheaper spatial or sequence match; otherwise the longest match wins.
func feedbackMatch(secret string, userInputs []string, seq []match.Match) match.Match {
	for _, m := range seq {
		if matchPattern(m) == "date" {
			return m
		}
	}
	for _, m := range matching.Omnimatch(secret, userInputs) {
		if matchPattern(m) == "date" {
			return m
		}
	}

	longest := seq[0]
	for _, m := range seq[1:] {
		if m.J-m.I > longest.J-longest.I {
			longest = m
		}
	}
	return longest
}

func matchPattern(m match.Match) string {
	if m.Pattern == "" && m.DictionaryName == dateMatchName {
		return "date"
	}
	return m.Pattern
}

func patternFeedback(pattern, dictionary string, soleMatch bool) (string, []string) {
	switch pattern {
	case "dictionary":
		switch {
		case strings.EqualFold(dictionary, "passwords"):
			return "This is similar to a commonly used password", nil
		case soleMatch:
			return "A word by itself is easy to guess", nil
		default:
			return "", nil
		}
	case "spatial":
		return "Straight rows of keys are easy to guess",
			[]string{"Use a longer keyboard pattern with more turns"}
	case "repeat":
		return `Repeats like "aaa" are easy to guess`,
			[]string{"Avoid repeated words and characters"}
	case "sequence":
		return "Sequences like abc or 6543 are easy to guess",
			[]string{"Avoid sequences"}
	case "date":
		return "Dates are often easy to guess",
			[]string{"Avoid dates and years that are associated with you"}
	default:
		return "", nil
	}
}
