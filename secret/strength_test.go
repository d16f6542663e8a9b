package secret

import (
	"math"
	"testing"
)

func TestDisplayTime(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "less than a second"},
		{0.5, "less than a second"},
		{1, "1 second"},
		{42, "42 seconds"},
		{60, "1 minute"},
		{90 * 60, "2 hours"},
		{3 * 86400, "3 days"},
		{86400 * 31 * 2, "2 months"},
		{86400 * 31 * 12 * 5, "5 years"},
		{86400 * 31 * 12 * 100, "centuries"},
	}

	for _, tt := range tests {
		if got := DisplayTime(tt.seconds); got != tt.want {
			t.Errorf("DisplayTime(%v) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestLockoutYears(t *testing.T) {
	tests := []struct {
		guesses float64
		want    int64
	}{
		{0, 0},
		{1, 1},
		{100 * 100 * 365, 1},
		{100*100*365 + 1, 2},
		{1e10, 2740},
		{math.MaxFloat64, math.MaxInt64},
	}

	for _, tt := range tests {
		if got := LockoutYears(tt.guesses); got != tt.want {
			t.Errorf("LockoutYears(%v) = %d, want %d", tt.guesses, got, tt.want)
		}
	}
}

func TestCrackTimes(t *testing.T) {
	times := CrackTimes(1e4)
	if len(times) != len(Archetypes) {
		t.Fatalf("len = %d, want %d", len(times), len(Archetypes))
	}

	wantLabels := []string{"slow computers", "fast computers", "a professional", "state actors"}
	for i, ct := range times {
		if ct.Archetype.String() != wantLabels[i] {
			t.Errorf("archetype[%d] = %q, want %q", i, ct.Archetype, wantLabels[i])
		}
		if i > 0 && ct.Seconds >= times[i-1].Seconds {
			t.Errorf("archetype %q should crack faster than %q", ct.Archetype, times[i-1].Archetype)
		}
	}

	if got := times[Professional].Display; got != "1 second" {
		t.Errorf("professional display = %q, want %q", got, "1 second")
	}
}

func TestZxcvbnEstimator(t *testing.T) {
	est := ZxcvbnEstimator{}

	weak := est.Estimate("password")
	if weak.Score > 2 {
		t.Fatalf("score(password) = %d, want <= 2", weak.Score)
	}
	if len(weak.Suggestions) == 0 {
		t.Error("weak secrets should carry suggestions")
	}
	if len(weak.CrackTimes) != len(Archetypes) {
		t.Errorf("crack times = %d, want %d", len(weak.CrackTimes), len(Archetypes))
	}

	strong := est.Estimate("q0X7-vT3_zJ9pLk2Rw8mYb5NcA1sDf6G")
	if strong.Score != 4 {
		t.Fatalf("score(random) = %d, want 4", strong.Score)
	}
	if len(strong.Suggestions) != 0 || strong.Warning != "" {
		t.Errorf("strong secrets should carry no feedback, got %q / %v", strong.Warning, strong.Suggestions)
	}
	if strong.Guesses <= weak.Guesses {
		t.Errorf("guesses(strong) = %v, should exceed guesses(weak) = %v", strong.Guesses, weak.Guesses)
	}
}

func TestZxcvbnEstimator_UserInputs(t *testing.T) {
	est := ZxcvbnEstimator{}
	plain := est.Estimate("alicelee1984")
	personal := est.Estimate("alicelee1984", "alicelee1984")

	if personal.Guesses > plain.Guesses {
		t.Errorf("user inputs should not make a secret stronger: %v > %v", personal.Guesses, plain.Guesses)
	}
}

func TestZxcvbnEstimator_DateWarning(t *testing.T) {
	est := ZxcvbnEstimator{}
	for _, in := range []string{"2020-01-01", "19/12/2001"} {
		t.Run(in, func(t *testing.T) {
			s := est.Estimate(in)
			if s.Score > 2 {
				t.Fatalf("score(%s) = %d, want <= 2", in, s.Score)
			}
			if s.Warning != "Dates are often easy to guess" {
				t.Errorf("warning = %q, want the date warning", s.Warning)
			}
		})
	}
}
