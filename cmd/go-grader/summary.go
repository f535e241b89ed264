package main

import (
	"io"
	"os"
	"strconv"
	"time"

	"github.com/criyle/go-grader/judger"
	"github.com/criyle/go-grader/reporter"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"golang.org/x/term"
)

// colorDisabled reports whether status lines should be printed without color.
// GitHub Actions logs are not a terminal but render colors.
func colorDisabled(noColor bool) bool {
	if noColor || os.Getenv("NO_COLOR") != "" {
		return true
	}
	return !term.IsTerminal(int(os.Stdout.Fd())) && !reporter.IsGitHubActions()
}

func writeSummary(w io.Writer, res judger.SuiteResult, noColor bool) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Test Summary")
	t.AppendHeader(table.Row{"#", "Test", "Type", "Status", "Time", "Points"})
	for i, r := range res.Results {
		status := r.Status.String()
		if !noColor {
			if r.Passed {
				status = text.FgGreen.Sprint(status)
			} else {
				status = text.FgRed.Sprint(status)
			}
		}
		t.AppendRow(table.Row{
			i + 1,
			r.Name,
			r.Kind,
			status,
			r.Duration.Round(time.Millisecond),
			formatPoints(r),
		})
	}
	t.AppendFooter(table.Row{"", "Total", "", passedText(res), "", scoreText(res)})
	t.SetStyle(table.StyleLight)
	t.Style().Format.Footer = text.FormatDefault
	t.Render()
}

func formatPoints(r judger.TestResult) string {
	if r.MaxPoints == 0 && r.Points == 0 {
		return ""
	}
	return strconv.FormatFloat(r.Points, 'f', -1, 64) + "/" + strconv.FormatFloat(r.MaxPoints, 'f', -1, 64)
}

func passedText(res judger.SuiteResult) string {
	return strconv.Itoa(len(res.Results)-res.Failed()) + "/" + strconv.Itoa(len(res.Results)) + " passed"
}

func scoreText(res judger.SuiteResult) string {
	if !res.Score.HasPoints {
		return ""
	}
	return res.Score.String()
}
