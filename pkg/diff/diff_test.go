package diff

import (
	"strings"
	"testing"
)

func TestStrings(t *testing.T) {
	tests := []struct {
		name     string
		expected string
		actual   string
		want     *Difference
	}{
		{"equal", "a\nb", "a\nb", nil},
		{"empty", "", "", nil},
		{"first line", "hello", "hi", &Difference{Line: 1, Expected: "hello", Actual: "hi"}},
		{"second line", "a\nb\nc", "a\nx\nc", &Difference{Line: 2, Expected: "b", Actual: "x"}},
		{"actual shorter", "a\nb", "a", &Difference{Line: 2, Expected: "b", Actual: EOF}},
		{"actual longer", "a", "a\nb", &Difference{Line: 2, Expected: EOF, Actual: "b"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Strings(tc.expected, tc.actual)
			if tc.want == nil {
				if got != nil {
					t.Fatalf("expected no difference, got %v", got)
				}
				return
			}
			if got == nil {
				t.Fatalf("expected difference %+v, got nil", tc.want)
			}
			if *got != *tc.want {
				t.Errorf("got %+v, want %+v", *got, *tc.want)
			}
		})
	}
}

func TestDifferenceError(t *testing.T) {
	err := Compare(strings.NewReader("1\n2"), strings.NewReader("1\n3"))
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "line 2") || !strings.Contains(msg, "expected: 2") || !strings.Contains(msg, "actual: 3") {
		t.Errorf("unexpected message %q", msg)
	}
}
