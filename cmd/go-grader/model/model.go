package model

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/acarl005/stripansi"
	"github.com/criyle/go-grader/judger"
	"github.com/criyle/go-grader/testlist"
	"github.com/criyle/go-grader/worker"
)

// Request defines single grading request
type Request struct {
	RequestID string           `json:"requestId"`
	WorkDir   string           `json:"workDir"`
	Tests     []testlist.Entry `json:"tests"`
}

// Result defines the outcome of a single test
type Result struct {
	Name      string        `json:"name"`
	Kind      string        `json:"kind"`
	Status    judger.Status `json:"status"`
	Passed    bool          `json:"passed"`
	Stdout    string        `json:"stdout,omitempty"`
	Error     string        `json:"error,omitempty"`
	Time      uint64        `json:"time"`
	Points    float64       `json:"points,omitempty"`
	MaxPoints float64       `json:"maxPoints,omitempty"`
}

// Response defines the grading response
type Response struct {
	RequestID string            `json:"requestId"`
	Passed    bool              `json:"passed"`
	Points    string            `json:"points,omitempty"`
	Results   []Result          `json:"results"`
	Warnings  []string          `json:"warnings"`
	Failures  []string          `json:"failures"`
	Outputs   map[string]string `json:"outputs"`
	Log       string            `json:"log"`
}

// ConvertRequest converts json request into worker request
func ConvertRequest(r *Request, workDirPrefix []string) (*worker.Request, error) {
	if r.WorkDir == "" {
		return nil, errors.New("no workDir provided")
	}
	if len(r.Tests) == 0 {
		return nil, errors.New("no tests provided")
	}
	if len(workDirPrefix) != 0 {
		ok, err := CheckPathPrefixes(r.WorkDir, workDirPrefix)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("workDir (%s) does not under (%s)", r.WorkDir, workDirPrefix)
		}
	}
	fi, err := os.Stat(r.WorkDir)
	if err != nil {
		return nil, err
	}
	if !fi.IsDir() {
		return nil, fmt.Errorf("workDir (%s) is not a directory", r.WorkDir)
	}
	tests, err := testlist.Convert(r.Tests)
	if err != nil {
		return nil, err
	}
	return &worker.Request{
		RequestID: r.RequestID,
		WorkDir:   r.WorkDir,
		Tests:     tests,
	}, nil
}

// ConvertResponse converts worker response into json response, color codes
// in the captured output are removed
func ConvertResponse(r worker.Response) Response {
	res := Response{
		RequestID: r.RequestID,
		Passed:    r.Result.Passed,
		Results:   make([]Result, 0, len(r.Result.Results)),
		Warnings:  nonNil(r.Warnings),
		Failures:  stripAll(r.Failures),
		Outputs:   r.Outputs,
		Log:       stripansi.Strip(r.Log),
	}
	if res.Outputs == nil {
		res.Outputs = make(map[string]string)
	}
	if r.Result.Score.HasPoints {
		res.Points = r.Result.Score.String()
	}
	for _, t := range r.Result.Results {
		res.Results = append(res.Results, Result{
			Name:      t.Name,
			Kind:      t.Kind,
			Status:    t.Status,
			Passed:    t.Passed,
			Stdout:    stripansi.Strip(t.Stdout),
			Error:     stripansi.Strip(t.Error),
			Time:      uint64(t.Duration),
			Points:    t.Points,
			MaxPoints: t.MaxPoints,
		})
	}
	return res
}

func stripAll(s []string) []string {
	rt := make([]string, 0, len(s))
	for _, v := range s {
		rt = append(rt, stripansi.Strip(v))
	}
	return rt
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// CheckPathPrefixes ensure path is allowed by prefixes
func CheckPathPrefixes(path string, prefixes []string) (bool, error) {
	for _, p := range prefixes {
		ok, err := checkPathPrefix(path, p)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

func checkPathPrefix(path, prefix string) (bool, error) {
	if !filepath.IsAbs(path) {
		wd, err := os.Getwd()
		if err != nil {
			return false, err
		}
		path = filepath.Join(wd, path)
	}
	path = filepath.Clean(path)
	prefix = filepath.Clean(prefix)
	// "/work" must not admit "/workspace"
	return path == prefix || strings.HasPrefix(path, prefix+string(filepath.Separator)), nil
}
