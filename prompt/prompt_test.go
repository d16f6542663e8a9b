package prompt

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("tty gone") }

func TestAsker_Ask(t *testing.T) {
	questions := []Question{
		{Name: "api", Message: "API URL:", Default: "https://api.sandbox.socotra.com"},
		{Name: "username", Message: "Socotra username:", Default: "alice.lee"},
		{Name: "password", Message: "Socotra password:", Default: "socotra", Secret: true},
	}

	tests := []struct {
		name  string
		input string
		want  Answers
	}{
		{
			name:  "answers override defaults",
			input: "http://localhost:8080\nbob\nhunter2\n",
			want:  Answers{"api": "http://localhost:8080", "username": "bob", "password": "hunter2"},
		},
		{
			name:  "empty lines take defaults",
			input: "\n  \n\n",
			want:  Answers{"api": "https://api.sandbox.socotra.com", "username": "alice.lee", "password": "socotra"},
		},
		{
			name:  "final line without newline",
			input: "\n\nhunter2",
			want:  Answers{"api": "https://api.sandbox.socotra.com", "username": "alice.lee", "password": "hunter2"},
		},
		{
			name:  "closed input falls back to defaults",
			input: "http://localhost:8080\n",
			want:  Answers{"api": "http://localhost:8080", "username": "alice.lee", "password": "socotra"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			asker := New(WithInput(strings.NewReader(tt.input)), WithOutput(&out))

			assert.Equal(t, tt.want, asker.Ask(questions))
		})
	}
}

func TestAsker_SecretDefaultIsHidden(t *testing.T) {
	var out bytes.Buffer
	asker := New(WithInput(strings.NewReader("\n\n")), WithOutput(&out))

	asker.Ask([]Question{
		{Name: "user", Message: "Socotra username:", Default: "alice.lee"},
		{Name: "password", Message: "Socotra password:", Default: "socotra", Secret: true},
	})

	assert.Contains(t, out.String(), "? Socotra username: (alice.lee)")
	assert.Contains(t, out.String(), "? Socotra password: [hidden default]")
	assert.NotContains(t, out.String(), "socotra)")
}

func TestAsker_SecretKeepsWhitespace(t *testing.T) {
	asker := New(WithInput(strings.NewReader("  bob  \r\n  hunter 2 \r\n")), WithOutput(&bytes.Buffer{}))

	answers := asker.Ask([]Question{
		{Name: "username", Message: "Socotra username:"},
		{Name: "password", Message: "Socotra password:", Secret: true},
	})

	assert.Equal(t, Answers{"username": "bob", "password": "  hunter 2 "}, answers)
}

func TestAsker_When(t *testing.T) {
	asker := New(WithInput(strings.NewReader("tenant\nacme.co.sandbox.socotra.com\n")), WithOutput(&bytes.Buffer{}))

	answers := asker.Ask([]Question{
		{Name: "mode", Message: "Mode:", Default: "admin"},
		{
			Name:    "tenant",
			Message: "Socotra tenant:",
			When:    func(a Answers) bool { return a["mode"] == "tenant" },
		},
		{
			Name:    "key",
			Message: "JWT secret:",
			Secret:  true,
			When:    func(a Answers) bool { return a["mode"] == "secret+bootstrap" },
		},
	})

	assert.Equal(t, Answers{"mode": "tenant", "tenant": "acme.co.sandbox.socotra.com"}, answers)
}

func TestAsker_ReadFailure(t *testing.T) {
	asker := New(WithInput(failingReader{}), WithOutput(&bytes.Buffer{}))

	answers := asker.Ask([]Question{
		{Name: "api", Default: "https://api.sandbox.socotra.com"},
		{Name: "username"},
	})

	assert.Equal(t, Answers{"api": "https://api.sandbox.socotra.com", "username": ""}, answers)
}

func TestAsker_AskOne(t *testing.T) {
	asker := New(WithInput(strings.NewReader("eyJhbGciOiJIUzI1NiJ9.e30.sig\n")), WithOutput(&bytes.Buffer{}))

	assert.Equal(t, "eyJhbGciOiJIUzI1NiJ9.e30.sig", asker.AskOne(Question{Name: "token", Message: "JWT:"}))
}

func TestAsker_Interactive(t *testing.T) {
	assert.False(t, New(WithInput(strings.NewReader(""))).Interactive())

	f, err := os.CreateTemp(t.TempDir(), "stdin")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	assert.False(t, New(WithInput(f)).Interactive(), "regular files are not terminals")
}
