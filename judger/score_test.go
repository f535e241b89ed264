package judger

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/criyle/go-grader/envexec"
)

func TestScoreString(t *testing.T) {
	tests := []struct {
		score Score
		want  string
	}{
		{Score{}, "0/0"},
		{Score{Earned: 7, Available: 10}, "7/10"},
		{Score{Earned: 2.5, Available: 3}, "2.5/3"},
		{Score{Earned: 12, Available: 10}, "12/10"},
	}
	for _, tc := range tests {
		if got := tc.score.String(); got != tc.want {
			t.Errorf("%+v.String() = %q, want %q", tc.score, got, tc.want)
		}
	}
}

func TestScoreAdd(t *testing.T) {
	var s Score
	if s.HasPoints {
		t.Fatal("zero score has points")
	}
	s = s.AddAvailable(10).AddEarned(4)
	s = s.AddAvailable(0)
	if !s.HasPoints || s.Earned != 4 || s.Available != 10 {
		t.Errorf("unexpected score %+v", s)
	}
}

func TestTimeout(t *testing.T) {
	tests := []struct {
		minutes float64
		want    time.Duration
	}{
		{0, time.Minute},
		{-1, time.Minute},
		{2, 2 * time.Minute},
		{0.01, 600 * time.Millisecond},
		{math.NaN(), 30 * time.Second},
		{math.Inf(1), 30 * time.Second},
		{1e6, 16666*time.Hour + 40*time.Minute},
		{2e8, time.Duration(math.MaxInt64)},
		{math.MaxFloat64, time.Duration(math.MaxInt64)},
	}
	for _, tc := range tests {
		if got := Timeout(&Test{Timeout: tc.minutes}); got != tc.want {
			t.Errorf("Timeout(%v) = %v, want %v", tc.minutes, got, tc.want)
		}
	}
}

func TestStatusOf(t *testing.T) {
	tests := []struct {
		err  error
		want Status
	}{
		{nil, StatusAccepted},
		{&OutputError{}, StatusWrongAnswer},
		{&envexec.TimeoutError{}, StatusTimeLimitExceeded},
		{&envexec.ExitError{Code: 1}, StatusNonzeroExitStatus},
		{&envexec.ExitError{Code: -1, Signal: "SIGSEGV"}, StatusSignalled},
		{fmt.Errorf("wrapped: %w", context.Canceled), StatusCanceled},
		{errors.New("exec: not found"), StatusInternalError},
	}
	for _, tc := range tests {
		if got := StatusOf(tc.err); got != tc.want {
			t.Errorf("StatusOf(%v) = %v, want %v", tc.err, got, tc.want)
		}
	}
}

func TestStatusText(t *testing.T) {
	b, err := StatusTimeLimitExceeded.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText error: %v", err)
	}
	var s Status
	if err := s.UnmarshalText(b); err != nil {
		t.Fatalf("UnmarshalText error: %v", err)
	}
	if s != StatusTimeLimitExceeded {
		t.Errorf("got %v", s)
	}
	if err := s.UnmarshalText([]byte("nope")); err == nil {
		t.Error("expected error for invalid status")
	}
}
