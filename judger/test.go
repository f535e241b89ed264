package judger

import "fmt"

// DefaultResultFile is the result file of external tests when not specified
const DefaultResultFile = "autograde.json"

// Kind defines the variant of a test
type Kind int

// Defines test kinds
const (
	KindSimple Kind = iota
	KindExternal
)

func (k Kind) String() string {
	switch k {
	case KindSimple:
		return "simple"
	case KindExternal:
		return "external"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Comparison defines how the output of a simple test is judged
type Comparison int

// Defines comparison modes, the zero value is ComparisonIncluded
const (
	ComparisonIncluded Comparison = iota
	ComparisonExact
	ComparisonRegex
)

var comparisonToString = []string{"included", "exact", "regex"}

func (c Comparison) String() string {
	if c < 0 || int(c) >= len(comparisonToString) {
		return fmt.Sprintf("Comparison(%d)", int(c))
	}
	return comparisonToString[c]
}

// ParseComparison converts the configuration name to Comparison.
// Empty string is the default comparison
func ParseComparison(s string) (Comparison, error) {
	if s == "" {
		return ComparisonIncluded, nil
	}
	for i, v := range comparisonToString {
		if v == s {
			return Comparison(i), nil
		}
	}
	return 0, fmt.Errorf("invalid comparison: %q", s)
}

// Test defines a single gradable unit
type Test struct {
	Name  string
	Setup string
	Run   string

	// Timeout is the budget in minutes shared by setup and run,
	// non-positive value uses 1 minute
	Timeout float64

	// Spec is either *SimpleSpec or *ExternalSpec
	Spec Spec
}

// Spec contains the variant specific fields of a test
type Spec interface {
	Kind() Kind
}

// SimpleSpec is the output comparison test
type SimpleSpec struct {
	Points     float64
	Input      string
	Output     string
	Comparison Comparison
}

// Kind implements Spec
func (*SimpleSpec) Kind() Kind { return KindSimple }

// ExternalSpec is the test that reports its score by a result file
type ExternalSpec struct {
	ResultFile     string
	KeepResultFile *bool
}

// Kind implements Spec
func (*ExternalSpec) Kind() Kind { return KindExternal }

// resultFile returns the configured result file or the default one
func (s *ExternalSpec) resultFile() string {
	if s.ResultFile == "" {
		return DefaultResultFile
	}
	return s.ResultFile
}

// Kind returns the kind of the test, nil Spec is a simple test
func (t *Test) Kind() Kind {
	if t.Spec == nil {
		return KindSimple
	}
	return t.Spec.Kind()
}
