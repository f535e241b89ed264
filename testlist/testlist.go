// Package testlist loads the list of tests from a YAML or JSON file.
//
// The file is either an object with a "tests" list or a bare list:
//
//	tests:
//	  - name: hello
//	    run: echo hello
//	    output: hello
//	    comparison: exact
//	    timeout: 1
//	    points: 10
//	  - name: unit tests
//	    type: external
//	    run: ./grade.sh
//	    resultFile: autograde.json
//	    keepResultFile: false
package testlist

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/criyle/go-grader/judger"
	"github.com/goccy/go-yaml"
)

// Test types
const (
	TypeSimple   = "simple"
	TypeExternal = "external"
)

// Entry is a single test in the test list
type Entry struct {
	Type  string `yaml:"type,omitempty" json:"type,omitempty"`
	Name  string `yaml:"name" json:"name"`
	Setup string `yaml:"setup,omitempty" json:"setup,omitempty"`
	Run   string `yaml:"run" json:"run"`

	// Timeout in minutes, number or numeric string
	Timeout any `yaml:"timeout,omitempty" json:"timeout,omitempty"`

	// simple
	Points     *float64 `yaml:"points,omitempty" json:"points,omitempty"`
	Input      string   `yaml:"input,omitempty" json:"input,omitempty"`
	Output     string   `yaml:"output,omitempty" json:"output,omitempty"`
	Comparison string   `yaml:"comparison,omitempty" json:"comparison,omitempty"`

	// external
	ResultFile     string `yaml:"resultFile,omitempty" json:"resultFile,omitempty"`
	KeepResultFile *bool  `yaml:"keepResultFile,omitempty" json:"keepResultFile,omitempty"`
}

// File is the test list file with a tests key
type File struct {
	Tests []Entry `yaml:"tests" json:"tests"`
}

// Load reads and converts the test list file
func Load(path string) ([]judger.Test, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	tests, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tests, nil
}

// Parse decodes the test list from YAML or JSON content
func Parse(b []byte) ([]judger.Test, error) {
	var entries []Entry
	if isList(b) {
		if err := yaml.Unmarshal(b, &entries); err != nil {
			return nil, err
		}
	} else {
		var f File
		if err := yaml.Unmarshal(b, &f); err != nil {
			return nil, err
		}
		entries = f.Tests
	}
	return Convert(entries)
}

// isList reports whether the document is a bare list in YAML or JSON
func isList(b []byte) bool {
	for _, line := range strings.Split(string(b), "\n") {
		s := strings.TrimSpace(line)
		if s == "" || strings.HasPrefix(s, "#") || s == "---" {
			continue
		}
		return strings.HasPrefix(s, "[") || s == "-" || strings.HasPrefix(s, "- ")
	}
	return false
}

// Convert validates the entries and converts them to tests
func Convert(entries []Entry) ([]judger.Test, error) {
	tests := make([]judger.Test, 0, len(entries))
	var errs []error
	for i := range entries {
		t, err := entries[i].Test()
		if err != nil {
			errs = append(errs, fmt.Errorf("test #%d: %w", i+1, err))
			continue
		}
		tests = append(tests, t)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return tests, nil
}

// Test converts the entry to judger.Test. Fields of the other test type
// are ignored
func (e *Entry) Test() (judger.Test, error) {
	if e.Name == "" {
		return judger.Test{}, errors.New("name is required")
	}
	if e.Run == "" {
		return judger.Test{}, fmt.Errorf("%s: run is required", e.Name)
	}
	timeout := minutes(e.Timeout)
	if timeout < 0 {
		return judger.Test{}, fmt.Errorf("%s: negative timeout %v", e.Name, timeout)
	}
	t := judger.Test{
		Name:    e.Name,
		Setup:   e.Setup,
		Run:     e.Run,
		Timeout: timeout,
	}

	switch e.Type {
	case "", TypeSimple:
		c, err := judger.ParseComparison(e.Comparison)
		if err != nil {
			return judger.Test{}, fmt.Errorf("%s: %w", e.Name, err)
		}
		var points float64
		if e.Points != nil {
			points = *e.Points
		}
		if points < 0 {
			return judger.Test{}, fmt.Errorf("%s: negative points %v", e.Name, points)
		}
		t.Spec = &judger.SimpleSpec{
			Points:     points,
			Input:      e.Input,
			Output:     e.Output,
			Comparison: c,
		}
	case TypeExternal:
		t.Spec = &judger.ExternalSpec{
			ResultFile:     e.ResultFile,
			KeepResultFile: e.KeepResultFile,
		}
	default:
		return judger.Test{}, fmt.Errorf("%s: invalid test type %q", e.Name, e.Type)
	}
	return t, nil
}

// minutes converts the timeout value, non-numeric value is treated as unset
func minutes(v any) float64 {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	case uint64:
		f = float64(t)
	case string:
		p, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0
		}
		f = p
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
