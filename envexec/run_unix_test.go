//go:build unix

package envexec

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"golang.org/x/sys/unix"
)

func testEnv() []string {
	return []string{"PATH=" + os.Getenv("PATH")}
}

func TestRunCollectStdout(t *testing.T) {
	var stdout, stderr bytes.Buffer
	rt, err := Run(context.Background(), &Cmd{
		Command:       "echo hello; echo oops >&2",
		Dir:           t.TempDir(),
		Env:           testEnv(),
		Stdout:        &stdout,
		Stderr:        &stderr,
		CollectStdout: true,
		Timeout:       10 * time.Second,
	})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if rt.Stdout != "hello\n" {
		t.Errorf("collected stdout = %q, want %q", rt.Stdout, "hello\n")
	}
	if got := stdout.String(); got != "  hello\n" {
		t.Errorf("echoed stdout = %q, want indented", got)
	}
	if got := stderr.String(); got != "  oops\n" {
		t.Errorf("echoed stderr = %q, want indented", got)
	}
}

func TestRunNoCollect(t *testing.T) {
	rt, err := Run(context.Background(), &Cmd{
		Command: "echo hello",
		Env:     testEnv(),
		Timeout: 10 * time.Second,
	})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if rt.Stdout != "" {
		t.Errorf("stdout collected without CollectStdout: %q", rt.Stdout)
	}
}

func TestRunStdin(t *testing.T) {
	rt, err := Run(context.Background(), &Cmd{
		Command:       "cat",
		Env:           testEnv(),
		Stdin:         "1 2\n3",
		CollectStdout: true,
		Timeout:       10 * time.Second,
	})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if rt.Stdout != "1 2\n3" {
		t.Errorf("stdout = %q, want stdin echoed back", rt.Stdout)
	}
}

func TestRunDirAndEnv(t *testing.T) {
	dir := t.TempDir()
	rt, err := Run(context.Background(), &Cmd{
		Command:       "pwd; echo \"$GRADER_TEST_VAR\"",
		Dir:           dir,
		Env:           append(testEnv(), "GRADER_TEST_VAR=value"),
		CollectStdout: true,
		Timeout:       10 * time.Second,
	})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(rt.Stdout), "\n")
	if len(lines) != 2 {
		t.Fatalf("unexpected output %q", rt.Stdout)
	}
	want, _ := filepath.EvalSymlinks(dir)
	got, _ := filepath.EvalSymlinks(lines[0])
	if got != want {
		t.Errorf("pwd = %q, want %q", got, want)
	}
	if lines[1] != "value" {
		t.Errorf("env var = %q, want value", lines[1])
	}
}

func TestRunExitCode(t *testing.T) {
	_, err := Run(context.Background(), &Cmd{
		Command: "exit 3",
		Env:     testEnv(),
		Timeout: 10 * time.Second,
	})
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected *ExitError, got %v", err)
	}
	if exitErr.Code != 3 || exitErr.Signal != "" {
		t.Errorf("unexpected exit error %+v", exitErr)
	}
}

func TestRunSignalled(t *testing.T) {
	_, err := Run(context.Background(), &Cmd{
		Command: "kill -9 $$",
		Env:     testEnv(),
		Timeout: 10 * time.Second,
	})
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected *ExitError, got %v", err)
	}
	if exitErr.Signal != "SIGKILL" {
		t.Errorf("signal = %q, want SIGKILL", exitErr.Signal)
	}
}

func TestRunStartError(t *testing.T) {
	_, err := Run(context.Background(), &Cmd{
		Command: "echo never",
		Shell:   []string{"/nonexistent/shell", "-c"},
		Timeout: 10 * time.Second,
	})
	if err == nil {
		t.Fatal("expected start error")
	}
	var exitErr *ExitError
	var timeoutErr *TimeoutError
	if errors.As(err, &exitErr) || errors.As(err, &timeoutErr) {
		t.Fatalf("start error classified as exit / timeout: %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not exist error, got %v", err)
	}
}

func TestRunNonPositiveTimeout(t *testing.T) {
	dir := t.TempDir()
	_, err := Run(context.Background(), &Cmd{
		Command: "touch started",
		Dir:     dir,
		Env:     testEnv(),
		Timeout: 0,
	})
	var timeoutErr *TimeoutError
	if !errors.As(err, &timeoutErr) {
		t.Fatalf("expected *TimeoutError, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "started")); err == nil {
		t.Error("command started with exhausted time budget")
	}
}

func TestRunTimeoutKillsProcessGroup(t *testing.T) {
	dir := t.TempDir()
	start := time.Now()
	_, err := Run(context.Background(), &Cmd{
		Command: "sleep 60 & echo $! > child.pid; wait",
		Dir:     dir,
		Env:     testEnv(),
		Timeout: 300 * time.Millisecond,
	})
	var timeoutErr *TimeoutError
	if !errors.As(err, &timeoutErr) {
		t.Fatalf("expected *TimeoutError, got %v", err)
	}
	if d := time.Since(start); d > 5*time.Second {
		t.Errorf("timeout took too long: %v", d)
	}

	b, err := os.ReadFile(filepath.Join(dir, "child.pid"))
	if err != nil {
		t.Fatalf("read child pid: %v", err)
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(b)))
	if err != nil {
		t.Fatalf("parse child pid: %v", err)
	}
	deadline := time.Now().Add(2 * time.Second)
	for processAlive(pid) {
		if time.Now().After(deadline) {
			t.Fatalf("descendant %d is still running after timeout", pid)
		}
		time.Sleep(20 * time.Millisecond)
	}
}

func TestRunTimeoutIgnoresLateExit(t *testing.T) {
	// the process would exit successfully right after the timer fires
	_, err := Run(context.Background(), &Cmd{
		Command: "sleep 0.3; exit 0",
		Env:     testEnv(),
		Timeout: 100 * time.Millisecond,
	})
	var timeoutErr *TimeoutError
	if !errors.As(err, &timeoutErr) {
		t.Fatalf("expected *TimeoutError, got %v", err)
	}
	if timeoutErr.Timeout != 100*time.Millisecond {
		t.Errorf("timeout = %v", timeoutErr.Timeout)
	}
}

func TestRunContextCanceled(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	_, err := Run(ctx, &Cmd{
		Command: "sleep 60",
		Env:     testEnv(),
		Timeout: time.Minute,
	})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected context error, got %v", err)
	}
}

// processAlive reports whether pid exists and is not a zombie
func processAlive(pid int) bool {
	if err := unix.Kill(pid, 0); err != nil {
		return false
	}
	stat, err := os.ReadFile("/proc/" + strconv.Itoa(pid) + "/stat")
	if err != nil {
		return true
	}
	// pid (comm) state ...
	s := string(stat)
	if i := strings.LastIndexByte(s, ')'); i >= 0 && i+2 < len(s) {
		return s[i+2] != 'Z'
	}
	return true
}
