package worker

import (
	"fmt"

	"github.com/criyle/go-grader/judger"
)

// Request defines single grading request
type Request struct {
	RequestID string
	WorkDir   string
	Tests     []judger.Test
}

// Response defines worker response for single request
type Response struct {
	RequestID string
	Result    judger.SuiteResult
	Warnings  []string
	Failures  []string
	Outputs   map[string]string

	// Log is the streamed test log
	Log string

	Error error
}

func (r Response) String() string {
	return fmt.Sprintf("{RequestID:%s Passed:%v Score:%v Tests:%d Failures:%d Warnings:%d Log:(len:%d) Error:%v}",
		r.RequestID, r.Result.Passed, r.Result.Score, len(r.Result.Results),
		len(r.Failures), len(r.Warnings), len(r.Log), r.Error)
}
