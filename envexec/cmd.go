package envexec

import (
	"io"
	"time"
)

// Cmd defines a shell command to run on the host
type Cmd struct {
	// Command is the command line passed to the shell
	Command string

	// Shell is the shell prefix, the command is appended as the last argument
	// (DefaultShell is used if empty)
	Shell []string

	// Dir is the working directory of the process
	Dir string

	// Env is the full environment of the process
	Env []string

	// Stdin content is written to the process and then closed.
	// Empty stdin leaves the process reading from the null device
	Stdin string

	// Stdout / Stderr receives the indented echo of the process output
	Stdout io.Writer
	Stderr io.Writer

	// CollectStdout keeps the stdout content in Result.Stdout
	CollectStdout bool

	// Timeout is the wall clock limit for the process and all its descendants
	Timeout time.Duration
}

// Result defines the running result for a succeeded Cmd
type Result struct {
	// Stdout is the collected stdout (only when CollectStdout is set)
	Stdout string

	// Time is the wall clock time elapsed from start to exit
	Time time.Duration
}
