package testlist

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/criyle/go-grader/judger"
)

const yamlList = `
tests:
  - name: hello
    setup: make
    run: ./hello
    input: world
    output: hello world
    comparison: exact
    timeout: 2
    points: 10
    resultFile: ignored.json
  - name: grade
    type: external
    run: ./grade.sh
    timeout: "0.5"
    resultFile: out.json
    keepResultFile: true
    points: 99
`

func TestParseYAML(t *testing.T) {
	tests, err := Parse([]byte(yamlList))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(tests) != 2 {
		t.Fatalf("expected 2 tests, got %d", len(tests))
	}

	s, ok := tests[0].Spec.(*judger.SimpleSpec)
	if !ok {
		t.Fatalf("expected simple spec, got %T", tests[0].Spec)
	}
	if tests[0].Setup != "make" || tests[0].Timeout != 2 {
		t.Errorf("unexpected test %+v", tests[0])
	}
	if s.Points != 10 || s.Input != "world" || s.Output != "hello world" || s.Comparison != judger.ComparisonExact {
		t.Errorf("unexpected simple spec %+v", s)
	}

	e, ok := tests[1].Spec.(*judger.ExternalSpec)
	if !ok {
		t.Fatalf("expected external spec, got %T", tests[1].Spec)
	}
	if tests[1].Timeout != 0.5 {
		t.Errorf("timeout = %v, want 0.5", tests[1].Timeout)
	}
	if e.ResultFile != "out.json" || e.KeepResultFile == nil || !*e.KeepResultFile {
		t.Errorf("unexpected external spec %+v", e)
	}
}

func TestParseJSON(t *testing.T) {
	const content = `{"tests": [{"name": "a", "run": "echo a", "output": "a", "timeout": 10, "points": 1.5}]}`
	tests, err := Parse([]byte(content))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(tests) != 1 || tests[0].Timeout != 10 {
		t.Fatalf("unexpected tests %+v", tests)
	}
	if s := tests[0].Spec.(*judger.SimpleSpec); s.Points != 1.5 || s.Comparison != judger.ComparisonIncluded {
		t.Errorf("unexpected spec %+v", s)
	}
}

func TestParseBareList(t *testing.T) {
	for _, content := range []string{
		`[{"name": "a", "run": "true"}]`,
		"# comment\n- name: a\n  run: \"true\"\n",
	} {
		tests, err := Parse([]byte(content))
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", content, err)
		}
		if len(tests) != 1 || tests[0].Name != "a" {
			t.Errorf("Parse(%q) = %+v", content, tests)
		}
	}
}

func TestParseNonNumericTimeout(t *testing.T) {
	tests, err := Parse([]byte(`[{"name": "a", "run": "true", "timeout": "soon"}]`))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if tests[0].Timeout != 0 {
		t.Errorf("timeout = %v, want unset", tests[0].Timeout)
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{"missing name", `[{"run": "true"}]`, "name is required"},
		{"missing run", `[{"name": "a"}]`, "run is required"},
		{"bad type", `[{"name": "a", "run": "true", "type": "docker"}]`, "invalid test type"},
		{"bad comparison", `[{"name": "a", "run": "true", "comparison": "fuzzy"}]`, "invalid comparison"},
		{"negative points", `[{"name": "a", "run": "true", "points": -1}]`, "negative points"},
		{"negative timeout", `[{"name": "a", "run": "true", "timeout": -1}]`, "negative timeout"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.content))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.errMsg) {
				t.Errorf("error %q does not contain %q", err, tc.errMsg)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	p := filepath.Join(t.TempDir(), "autograding.json")
	if err := os.WriteFile(p, []byte(`{"tests": [{"name": "a", "run": "true"}]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	tests, err := Load(p)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(tests) != 1 {
		t.Errorf("expected 1 test, got %d", len(tests))
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
