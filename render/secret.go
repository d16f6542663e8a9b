package render

import (
	"fmt"
	"strings"

	"github.com/kr/text"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/socotra/jwtkit/secret"
)

const wrapWidth = 72

// WeakSecret writes the diagnostics for a rejected secret: its score,
// the warning and suggestions, crack times for each adversary archetype,
// and the lockout estimate.
func (r *Renderer) WeakSecret(err *secret.WeakSecretError) {
	s := err.Strength
	r.bad.Fprintf(r.w, "Secret is not strong enough: score %d < %d\n", s.Score, err.MinStrength)

	if s.Warning != "" {
		r.warn.Fprintf(r.w, "Warning: %s\n", s.Warning)
	}
	if len(s.Suggestions) > 0 {
		fmt.Fprintln(r.w, "Suggestions:")
		for _, suggestion := range s.Suggestions {
			wrapped := text.Wrap(suggestion, wrapWidth-4)
			fmt.Fprintln(r.w, "  - "+strings.TrimPrefix(text.Indent(wrapped, "    "), "    "))
		}
	}

	crackTimes := s.CrackTimes
	if len(crackTimes) == 0 {
		crackTimes = secret.CrackTimes(s.Guesses)
	}
	// A Caser keeps state between calls and is not safe to share.
	title := cases.Title(language.English)
	fmt.Fprintln(r.w, "Estimated time to crack:")
	for _, ct := range crackTimes {
		fmt.Fprintf(r.w, "  %s: %s\n", title.String(ct.Archetype.String()), ct.Display)
	}

	years := secret.LockoutYears(s.Guesses)
	unit := "years"
	if years == 1 {
		unit = "year"
	}
	fmt.Fprintf(r.w, "Estimated lockout: %d %s (online guessing with account lockout)\n", years, unit)
}
