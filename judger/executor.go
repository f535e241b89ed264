package judger

import (
	"context"
	"io"
	"math"
	"os"
	"time"

	"github.com/criyle/go-grader/envexec"
	"go.uber.org/zap"
)

const (
	defaultTimeoutMinutes = 1
	fallbackTimeout       = 30 * time.Second
)

// DefaultEnv returns the environment for test processes: the inherited PATH
// and the flag to force colored output
func DefaultEnv() []string {
	return []string{
		"PATH=" + os.Getenv("PATH"),
		"FORCE_COLOR=true",
	}
}

// Executor runs the setup and run phase of a single test
type Executor struct {
	// Shell is the shell prefix, envexec.DefaultShell if empty
	Shell []string

	// Env is the environment of the test processes, DefaultEnv() if nil
	Env []string

	// Stdout / Stderr receive the streamed test log
	Stdout io.Writer
	Stderr io.Writer

	Logger *zap.Logger
}

// Timeout returns the total budget of the test
func Timeout(t *Test) time.Duration {
	minutes := t.Timeout
	if minutes <= 0 {
		minutes = defaultTimeoutMinutes
	}
	ms := minutes * 60000
	if ms == 0 || math.IsNaN(ms) || math.IsInf(ms, 0) {
		return fallbackTimeout
	}
	// saturate instead of overflowing into a negative duration
	if ms >= float64(math.MaxInt64/int64(time.Millisecond)) {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(ms * float64(time.Millisecond))
}

// Execute runs the test in dir. Setup and run share the same time budget.
// It returns the collected stdout of simple tests, and the error of the
// first failed phase or the output comparison
func (e *Executor) Execute(ctx context.Context, dir string, t *Test) (string, error) {
	logger := e.logger().With(zap.String("test", t.Name))
	timeout := Timeout(t)

	if t.Setup != "" {
		start := time.Now()
		logger.Debug("setup", zap.String("cmd", t.Setup), zap.Duration("timeout", timeout))
		if _, err := e.run(ctx, dir, t.Setup, "", false, timeout); err != nil {
			logger.Debug("setup failed", zap.Error(err))
			return "", err
		}
		timeout -= time.Since(start).Truncate(time.Millisecond)
	}

	simple, _ := t.Spec.(*SimpleSpec)
	var input string
	if simple != nil {
		input = simple.Input
	}

	logger.Debug("run", zap.String("cmd", t.Run), zap.Duration("timeout", timeout))
	rt, err := e.run(ctx, dir, t.Run, input, simple != nil, timeout)
	if err != nil {
		logger.Debug("run failed", zap.Error(err), zap.Duration("time", rt.Time))
		return rt.Stdout, err
	}
	logger.Debug("run finished", zap.Duration("time", rt.Time))

	switch s := t.Spec.(type) {
	case *ExternalSpec:
		return "", nil
	case *SimpleSpec:
		if s.Output == "" && s.Input == "" {
			return rt.Stdout, nil
		}
		return rt.Stdout, compareOutput(t.Name, s, rt.Stdout)
	default:
		// no expectation
		return rt.Stdout, nil
	}
}

func (e *Executor) run(ctx context.Context, dir, command, input string, collect bool, timeout time.Duration) (envexec.Result, error) {
	env := e.Env
	if env == nil {
		env = DefaultEnv()
	}
	return envexec.Run(ctx, &envexec.Cmd{
		Command:       command,
		Shell:         e.Shell,
		Dir:           dir,
		Env:           env,
		Stdin:         input,
		Stdout:        e.Stdout,
		Stderr:        e.Stderr,
		CollectStdout: collect,
		Timeout:       timeout,
	})
}

func (e *Executor) logger() *zap.Logger {
	if e.Logger == nil {
		return zap.NewNop()
	}
	return e.Logger
}
