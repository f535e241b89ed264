package judger

// Reporter receives signals for the hosting environment
type Reporter interface {
	// Warn reports a non-fatal problem
	Warn(msg string)
	// Fail reports a failed test
	Fail(msg string)
	// SetOutput exposes a named output value
	SetOutput(key, value string)
}

// CommandSuspender is implemented by reporters whose host interprets
// special lines of the log. The log of the tests is wrapped by
// SuspendCommands and ResumeCommands with an unpredictable token.
type CommandSuspender interface {
	SuspendCommands(token string)
	ResumeCommands(token string)
}

type nopReporter struct{}

func (nopReporter) Warn(string)              {}
func (nopReporter) Fail(string)              {}
func (nopReporter) SetOutput(string, string) {}
