package reporter

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/criyle/go-grader/judger"
	"github.com/google/uuid"
)

var (
	_ judger.Reporter         = &GitHub{}
	_ judger.CommandSuspender = &GitHub{}
)

// GitHub reports through GitHub Actions workflow commands
type GitHub struct {
	// Out receives the workflow commands
	Out io.Writer

	// OutputFile is the path of $GITHUB_OUTPUT, the legacy set-output
	// command is used if empty
	OutputFile string

	mu sync.Mutex
}

// NewGitHub creates the reporter from the environment of the action runner
func NewGitHub(out io.Writer) *GitHub {
	return &GitHub{
		Out:        out,
		OutputFile: os.Getenv("GITHUB_OUTPUT"),
	}
}

// IsGitHubActions reports whether the process runs inside GitHub Actions
func IsGitHubActions() bool {
	return os.Getenv("GITHUB_ACTIONS") == "true"
}

// Warn implements judger.Reporter
func (g *GitHub) Warn(msg string) {
	g.command("warning", msg)
}

// Fail implements judger.Reporter
func (g *GitHub) Fail(msg string) {
	g.command("error", msg)
}

// SetOutput implements judger.Reporter
func (g *GitHub) SetOutput(key, value string) {
	if g.OutputFile == "" {
		g.command("set-output name="+key, value)
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	f, err := os.OpenFile(g.OutputFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(g.Out, "::warning::%s\n", escapeData("failed to write output "+key+": "+err.Error()))
		return
	}
	defer f.Close()

	delimiter := "ghadelimiter_" + uuid.NewString()
	fmt.Fprintf(f, "%s<<%s\n%s\n%s\n", key, delimiter, value, delimiter)
}

// SuspendCommands implements judger.CommandSuspender
func (g *GitHub) SuspendCommands(token string) {
	g.command("stop-commands", token)
}

// ResumeCommands implements judger.CommandSuspender
func (g *GitHub) ResumeCommands(token string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	fmt.Fprintf(g.Out, "::%s::\n", token)
}

func (g *GitHub) command(name, msg string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	fmt.Fprintf(g.Out, "::%s::%s\n", name, escapeData(msg))
}

// escapeData escapes the message so that multi-line messages stay in one
// workflow command
func escapeData(s string) string {
	s = strings.ReplaceAll(s, "%", "%25")
	s = strings.ReplaceAll(s, "\r", "%0D")
	s = strings.ReplaceAll(s, "\n", "%0A")
	return s
}
