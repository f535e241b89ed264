//go:build unix

package envexec

import (
	"os"
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"
)

// DefaultShell is the shell used to interpret Cmd.Command
var DefaultShell = []string{"/bin/sh", "-c"}

// setProcessGroup starts the process as the leader of a new process group,
// so that the timeout kills the entire process tree
func setProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

func killProcessGroup(cmd *exec.Cmd) {
	if cmd.Process == nil {
		return
	}
	if err := unix.Kill(-cmd.Process.Pid, unix.SIGKILL); err != nil {
		cmd.Process.Kill()
	}
}

func exitError(state *os.ProcessState) *ExitError {
	if ws, ok := state.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return &ExitError{Code: -1, Signal: unix.SignalName(ws.Signal())}
	}
	return &ExitError{Code: state.ExitCode()}
}
