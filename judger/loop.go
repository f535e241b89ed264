package judger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jedib0t/go-pretty/v6/text"
	"go.uber.org/zap"
)

const (
	successBanner = "All tests passed"
	sparkles      = "✨🌟💖💎🦄💎💖🌟✨🌟💖💎🦄💎💖🌟✨"
)

var (
	colorRunning = text.Colors{text.FgCyan}
	colorPassed  = text.Colors{text.FgGreen}
	colorFailed  = text.Colors{text.FgRed}
	colorPoints  = text.Colors{text.Bold, text.BgCyan, text.FgBlack}
)

// Run runs all tests in declaration order inside dir. A failed test is
// reported and the suite continues with the next test.
func (j *Judger) Run(ctx context.Context, dir string, tests []Test) SuiteResult {
	var (
		score   Score
		failed  bool
		results = make([]TestResult, 0, len(tests))
	)

	// host commands in the test log are not interpreted until resumed
	token := uuid.NewString()
	suspender, _ := j.reporter.(CommandSuspender)
	j.println()
	if suspender != nil {
		suspender.SuspendCommands(token)
	}
	j.println()

	for i := range tests {
		t := &tests[i]
		var res TestResult
		if err := ctx.Err(); err != nil {
			res = TestResult{
				Name:   t.Name,
				Kind:   t.Kind().String(),
				Status: StatusCanceled,
				Error:  err.Error(),
			}
			j.reporter.Fail(t.Name + ": " + err.Error())
		} else {
			res, score = j.runTest(ctx, dir, t, score)
		}
		if !res.Passed {
			failed = true
		}
		results = append(results, res)
		if j.observer != nil {
			j.observer(res)
		}
	}

	if suspender != nil {
		suspender.ResumeCommands(token)
	}

	if !failed {
		j.println(j.paint(colorPassed, successBanner))
		j.println(sparkles)
	}
	if score.HasPoints {
		j.println(j.paint(colorPoints, PointsOutput+" "+score.String()))
		j.reporter.SetOutput(PointsOutput, score.String())
	}
	j.logger.Info("suite finished",
		zap.Int("tests", len(tests)),
		zap.Bool("passed", !failed),
		zap.Stringer("points", score))

	return SuiteResult{
		Results: results,
		Score:   score,
		Passed:  !failed,
	}
}

// runTest runs a single test and returns its result with the updated score
func (j *Judger) runTest(ctx context.Context, dir string, t *Test, score Score) (TestResult, Score) {
	res := TestResult{
		Name: t.Name,
		Kind: t.Kind().String(),
	}
	simple, _ := t.Spec.(*SimpleSpec)
	external, _ := t.Spec.(*ExternalSpec)

	if external != nil {
		j.checkStaleResult(dir, t.Name, external)
	}
	if simple != nil && simple.Points > 0 {
		score = score.AddAvailable(simple.Points)
		res.MaxPoints = simple.Points
	}

	j.println(j.paint(colorRunning, "📝 "+t.Name))
	j.println()

	start := time.Now()
	stdout, err := j.executor.Execute(ctx, dir, t)
	res.Duration = time.Since(start)
	res.Status = StatusOf(err)
	if simple != nil {
		res.Stdout = stdout
	}

	if err != nil {
		res.Error = err.Error()
		j.println()
		j.println(j.paint(colorFailed, "❌ "+t.Name))
		j.reporter.Fail(err.Error())
		j.logger.Debug("test failed",
			zap.String("test", t.Name),
			zap.Stringer("status", res.Status),
			zap.Duration("time", res.Duration))
	} else {
		res.Passed = true
		j.println()
		j.println(j.paint(colorPassed, "✅ "+t.Name))
		j.println()
		if simple != nil && simple.Points > 0 {
			score = score.AddEarned(simple.Points)
			res.Points = simple.Points
		}
		j.logger.Debug("test passed",
			zap.String("test", t.Name),
			zap.Duration("time", res.Duration))
	}

	// external results are ingested even if the run failed
	if external != nil {
		if s, m, ok := j.ingestResult(dir, t.Name, external); ok {
			score = score.AddAvailable(m).AddEarned(s)
			res.Points = s
			res.MaxPoints = m
		}
	}
	return res, score
}
