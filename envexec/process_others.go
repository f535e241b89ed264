//go:build !unix

package envexec

import (
	"os"
	"os/exec"
	"runtime"
)

// DefaultShell is the shell used to interpret Cmd.Command
var DefaultShell = defaultShell()

func defaultShell() []string {
	if runtime.GOOS == "windows" {
		return []string{"cmd.exe", "/d", "/s", "/c"}
	}
	return []string{"/bin/sh", "-c"}
}

// process group is not available, only the direct child is tracked
func setProcessGroup(cmd *exec.Cmd) {}

func killProcessGroup(cmd *exec.Cmd) {
	if cmd.Process != nil {
		cmd.Process.Kill()
	}
}

func exitError(state *os.ProcessState) *ExitError {
	return &ExitError{Code: state.ExitCode()}
}
