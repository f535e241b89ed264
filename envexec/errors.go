package envexec

import (
	"fmt"
	"time"
)

// ExitError is returned when the process exits with non-zero status or
// was terminated by a signal
type ExitError struct {
	Code   int    // exit code, -1 if terminated by signal
	Signal string // signal name, empty if exited normally
}

func (e *ExitError) Error() string {
	if e.Signal != "" {
		return fmt.Sprintf("process terminated by signal %s", e.Signal)
	}
	return fmt.Sprintf("process exited with code %d", e.Code)
}

// TimeoutError is returned when the process (group) was killed because the
// wall clock limit exceeded
type TimeoutError struct {
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("command timed out after %v", e.Timeout)
}
