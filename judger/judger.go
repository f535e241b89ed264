// Package judger runs a suite of tests sequentially in one working directory
// and aggregates the score.
package judger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/text"
	"go.uber.org/zap"
)

// Config defines judger configuration
type Config struct {
	// Shell is the shell prefix for setup and run commands
	Shell []string

	// Env is the environment of test processes, DefaultEnv() if nil
	Env []string

	// Stdout / Stderr receive the streamed test log, os.Stdout / os.Stderr
	// if nil
	Stdout io.Writer
	Stderr io.Writer

	// Reporter receives failures, warnings and outputs
	Reporter Reporter

	Logger *zap.Logger

	// Observer is called after each test finished
	Observer func(TestResult)

	// NoColor disables colored status lines
	NoColor bool
}

// TestResult is the outcome of a single test
type TestResult struct {
	Name     string        `json:"name"`
	Kind     string        `json:"kind"`
	Status   Status        `json:"status"`
	Passed   bool          `json:"passed"`
	Stdout   string        `json:"stdout,omitempty"`
	Error    string        `json:"error,omitempty"`
	Duration time.Duration `json:"duration"`

	// Points / MaxPoints contributed to the score
	Points    float64 `json:"points,omitempty"`
	MaxPoints float64 `json:"maxPoints,omitempty"`
}

// SuiteResult is the outcome of a suite run
type SuiteResult struct {
	Results []TestResult `json:"results"`
	Score   Score        `json:"score"`
	Passed  bool         `json:"passed"`
}

// Failed returns the number of failed tests
func (r *SuiteResult) Failed() int {
	n := 0
	for _, t := range r.Results {
		if !t.Passed {
			n++
		}
	}
	return n
}

// Judger runs test suites
type Judger struct {
	executor Executor
	stdout   io.Writer
	reporter Reporter
	logger   *zap.Logger
	observer func(TestResult)
	noColor  bool
}

// New creates new judger
func New(conf Config) *Judger {
	stdout, stderr := conf.Stdout, conf.Stderr
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	reporter := conf.Reporter
	if reporter == nil {
		reporter = nopReporter{}
	}
	logger := conf.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Judger{
		executor: Executor{
			Shell:  conf.Shell,
			Env:    conf.Env,
			Stdout: stdout,
			Stderr: stderr,
			Logger: logger,
		},
		stdout:   stdout,
		reporter: reporter,
		logger:   logger,
		observer: conf.Observer,
		noColor:  conf.NoColor,
	}
}

func (j *Judger) println(a ...any) {
	fmt.Fprintln(j.stdout, a...)
}

func (j *Judger) paint(c text.Colors, s string) string {
	if j.noColor {
		return s
	}
	return c.Sprint(s)
}
