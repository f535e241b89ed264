package judger

import (
	"context"
	"errors"
	"fmt"

	"github.com/criyle/go-grader/envexec"
)

// Status defines the result status of a test
type Status int

// Defines test status
const (
	// not initialized status (as error)
	StatusInvalid Status = iota

	StatusAccepted
	StatusWrongAnswer

	StatusTimeLimitExceeded // TLE
	StatusNonzeroExitStatus // NZS
	StatusSignalled         // SIG

	// the process could not be started
	StatusInternalError

	// the suite was canceled before or during the test
	StatusCanceled
)

var statusToString = []string{
	"Invalid",
	"Accepted",
	"Wrong Answer",
	"Time Limit Exceeded",
	"Nonzero Exit Status",
	"Signalled",
	"Internal Error",
	"Canceled",
}

// stringToStatus map string to corresponding Status
var stringToStatus = make(map[string]Status)

func (s Status) String() string {
	si := int(s)
	if si < 0 || si >= len(statusToString) {
		return statusToString[0] // invalid
	}
	return statusToString[si]
}

// MarshalText implements encoding.TextMarshaler
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (s *Status) UnmarshalText(b []byte) error {
	v, ok := stringToStatus[string(b)]
	if !ok {
		return fmt.Errorf("invalid status: %s", b)
	}
	*s = v
	return nil
}

func init() {
	for i, v := range statusToString {
		stringToStatus[v] = Status(i)
	}
}

// StatusOf classifies the error returned by Executor.Execute
func StatusOf(err error) Status {
	var (
		exitErr    *envexec.ExitError
		timeoutErr *envexec.TimeoutError
		outputErr  *OutputError
	)
	switch {
	case err == nil:
		return StatusAccepted
	case errors.As(err, &outputErr):
		return StatusWrongAnswer
	case errors.As(err, &timeoutErr):
		return StatusTimeLimitExceeded
	case errors.As(err, &exitErr):
		if exitErr.Signal != "" {
			return StatusSignalled
		}
		return StatusNonzeroExitStatus
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return StatusCanceled
	default:
		return StatusInternalError
	}
}
