package envexec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// drainTimeout bounds the time spent on reading the remaining output after
// the process exits, descendants that keep the pipes open are cut off after it
const drainTimeout = 500 * time.Millisecond

// Run starts the command through the shell, streams the indented output
// and waits for the process to exit or the timeout to exceed, whichever
// comes first.
//
// It returns *ExitError for non-zero exit status, *TimeoutError when the
// process group was killed by timeout, ctx.Err() when ctx was canceled and
// the wrapped start error when the process cannot be started.
func Run(ctx context.Context, c *Cmd) (Result, error) {
	if c.Timeout <= 0 {
		return Result{}, &TimeoutError{Timeout: c.Timeout}
	}

	shell := c.Shell
	if len(shell) == 0 {
		shell = DefaultShell
	}
	args := make([]string, 0, len(shell))
	args = append(args, shell[1:]...)
	args = append(args, c.Command)

	cmd := exec.Command(shell[0], args...)
	cmd.Dir = c.Dir
	cmd.Env = c.Env
	if c.Stdin != "" {
		cmd.Stdin = strings.NewReader(c.Stdin)
	}
	cmd.WaitDelay = drainTimeout
	setProcessGroup(cmd)

	// pipes are created here so that the process writes directly to the fd
	// and the exit of the process is observed independent of the readers
	outR, outW, err := os.Pipe()
	if err != nil {
		return Result{}, err
	}
	errR, errW, err := os.Pipe()
	if err != nil {
		closeFiles(outR, outW)
		return Result{}, err
	}
	cmd.Stdout = outW
	cmd.Stderr = errW

	startTime := time.Now()
	err = cmd.Start()
	closeFiles(outW, errW)
	if err != nil {
		closeFiles(outR, errR)
		return Result{}, fmt.Errorf("failed to start %q: %w", c.Command, err)
	}

	// stream output
	var (
		mu        sync.Mutex
		collected bytes.Buffer
		g         errgroup.Group
	)
	var stdout io.Writer = newIndentWriter(orDiscard(c.Stdout), &mu)
	if c.CollectStdout {
		stdout = io.MultiWriter(stdout, &collected)
	}
	stderr := newIndentWriter(orDiscard(c.Stderr), &mu)
	g.Go(func() error {
		_, err := io.Copy(stdout, outR)
		return err
	})
	g.Go(func() error {
		_, err := io.Copy(stderr, errR)
		return err
	})
	drain := func() {
		copyDone := make(chan struct{})
		go func() {
			g.Wait()
			close(copyDone)
		}()
		select {
		case <-copyDone:
		case <-time.After(drainTimeout):
		}
		closeFiles(outR, errR)
		<-copyDone
	}

	// exactly one of exit / timeout / cancel settles the result
	exited := make(chan error, 1)
	go func() {
		exited <- cmd.Wait()
	}()

	timer := time.NewTimer(c.Timeout)
	defer timer.Stop()

	select {
	case waitErr := <-exited:
		elapsed := time.Since(startTime)
		drain()
		if err := exitStatus(cmd, waitErr); err != nil {
			return Result{Time: elapsed}, err
		}
		return Result{Stdout: collected.String(), Time: elapsed}, nil

	case <-timer.C:
		killProcessGroup(cmd)
		<-exited
		drain()
		return Result{Time: time.Since(startTime)}, &TimeoutError{Timeout: c.Timeout}

	case <-ctx.Done():
		killProcessGroup(cmd)
		<-exited
		drain()
		return Result{Time: time.Since(startTime)}, ctx.Err()
	}
}

// exitStatus converts the wait result into *ExitError, or nil for success
func exitStatus(cmd *exec.Cmd, waitErr error) error {
	state := cmd.ProcessState
	if state == nil {
		return waitErr
	}
	if state.Success() {
		// stdin not fully consumed / pipes held by descendants, the process
		// itself exited normally
		if waitErr == nil || errors.Is(waitErr, exec.ErrWaitDelay) {
			return nil
		}
		return waitErr
	}
	return exitError(state)
}

func orDiscard(w io.Writer) io.Writer {
	if w == nil {
		return io.Discard
	}
	return w
}

func closeFiles(files ...*os.File) {
	for _, f := range files {
		f.Close()
	}
}
