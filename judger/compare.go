package judger

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/criyle/go-grader/pkg/diff"
)

// OutputError is returned when the process succeeded but its output does
// not satisfy the comparison
type OutputError struct {
	Test       string
	Comparison Comparison
	Expected   string
	Actual     string

	// Detail points at the first differing line (exact comparison only)
	Detail *diff.Difference
}

func (e *OutputError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "The output for test %s did not match (%v)\n", e.Test, e.Comparison)
	fmt.Fprintf(&sb, "Expected:\n%s\nActual:\n%s", e.Expected, e.Actual)
	if e.Detail != nil {
		fmt.Fprintf(&sb, "\n%v", e.Detail)
	}
	return sb.String()
}

// normalizeLineEndings converts CRLF to LF and trims surrounding spaces
func normalizeLineEndings(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "\r\n", "\n"))
}

// compareOutput judges the collected stdout against the expected output.
// For regex comparison the raw expected output is the pattern
func compareOutput(name string, s *SimpleSpec, stdout string) error {
	actual := normalizeLineEndings(stdout)
	expected := normalizeLineEndings(s.Output)
	newErr := func(d *diff.Difference) error {
		return &OutputError{
			Test:       name,
			Comparison: s.Comparison,
			Expected:   expected,
			Actual:     actual,
			Detail:     d,
		}
	}

	switch s.Comparison {
	case ComparisonExact:
		if actual != expected {
			return newErr(diff.Strings(expected, actual))
		}
	case ComparisonRegex:
		re, err := regexp.Compile(s.Output)
		if err != nil {
			return fmt.Errorf("invalid output pattern for test %s: %w", name, err)
		}
		if !re.MatchString(actual) {
			expected = s.Output
			return newErr(nil)
		}
	default:
		if !strings.Contains(actual, expected) {
			return newErr(nil)
		}
	}
	return nil
}
