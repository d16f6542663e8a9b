package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-secure-stdlib/password"
	"golang.org/x/term"
)

// ErrNoInput is returned when input ends before an answer is given.
var ErrNoInput = errors.New("no input")

// Question is one interactive prompt.
type Question struct {
	// Name keys the answer.
	Name string

	// Message is shown to the user.
	Message string

	// Default is used for empty input and when input fails.
	Default string

	// Secret questions are read without echo on a terminal, and their
	// defaults are never displayed.
	Secret bool

	// When, if set, decides from earlier answers whether to ask at all.
	When func(answers Answers) bool
}

// Answers maps question names to answers.
type Answers map[string]string

// Asker asks questions on a terminal or any line-oriented input.
type Asker struct {
	file       *os.File
	in         *bufio.Reader
	out        io.Writer
	logger     hclog.Logger
	readSecret func(*os.File) (string, error)
}

// Option configures an Asker.
type Option func(*Asker)

// WithInput reads answers from r. Only an *os.File attached to a terminal
// gets no-echo secret input.
func WithInput(r io.Reader) Option {
	return func(a *Asker) {
		a.file, _ = r.(*os.File)
		a.in = bufio.NewReader(r)
	}
}

// WithOutput writes prompts to w.
func WithOutput(w io.Writer) Option {
	return func(a *Asker) {
		a.out = w
	}
}

// WithLogger sets the logger used to report input failures.
func WithLogger(logger hclog.Logger) Option {
	return func(a *Asker) {
		a.logger = logger
	}
}

// New returns an Asker reading stdin and writing prompts to stderr.
func New(opts ...Option) *Asker {
	a := &Asker{
		file:       os.Stdin,
		in:         bufio.NewReader(os.Stdin),
		out:        os.Stderr,
		logger:     hclog.NewNullLogger(),
		readSecret: password.Read,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Interactive reports whether input comes from a terminal.
func (a *Asker) Interactive() bool {
	return a.file != nil && term.IsTerminal(int(a.file.Fd()))
}

// Ask asks each question in order. Empty answers take the default.
// If input fails, the remaining questions take their defaults and the
// failure is logged rather than returned.
func (a *Asker) Ask(questions []Question) Answers {
	answers := make(Answers, len(questions))
	failed := false
	for _, q := range questions {
		if q.When != nil && !q.When(answers) {
			continue
		}
		if failed {
			answers[q.Name] = q.Default
			continue
		}
		value, err := a.askOne(q)
		if err != nil {
			a.logger.Debug("prompt failed, using defaults", "question", q.Name, "error", err)
			failed = true
			value = ""
		}
		if value == "" {
			value = q.Default
		}
		answers[q.Name] = value
	}
	return answers
}

// AskOne asks a single question and returns its answer.
func (a *Asker) AskOne(q Question) string {
	return a.Ask([]Question{q})[q.Name]
}

func (a *Asker) askOne(q Question) (string, error) {
	switch {
	case q.Default == "":
		fmt.Fprintf(a.out, "? %s ", q.Message)
	case q.Secret:
		fmt.Fprintf(a.out, "? %s [hidden default] ", q.Message)
	default:
		fmt.Fprintf(a.out, "? %s (%s) ", q.Message, q.Default)
	}

	if q.Secret && a.Interactive() {
		value, err := a.readSecret(a.file)
		fmt.Fprintln(a.out)
		return strings.TrimRight(value, "\r\n"), err
	}

	line, err := a.in.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		if errors.Is(err, io.EOF) {
			return "", ErrNoInput
		}
		return "", err
	}
	if q.Secret {
		// Whitespace inside a secret is significant; drop only the line ending.
		return strings.TrimRight(line, "\r\n"), nil
	}
	return strings.TrimSpace(line), nil
}
