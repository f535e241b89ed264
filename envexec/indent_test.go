package envexec

import (
	"bytes"
	"sync"
	"testing"
)

func TestIndentWriter(t *testing.T) {
	tests := []struct {
		name   string
		chunks []string
		want   string
	}{
		{"single line", []string{"hello\n"}, "  hello\n"},
		{"multi line", []string{"a\nb\n"}, "  a\n  b\n"},
		{"split line", []string{"hel", "lo\nwor", "ld"}, "  hello\n  world"},
		{"empty lines", []string{"\n\n"}, "  \n  \n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			var mu sync.Mutex
			w := newIndentWriter(&buf, &mu)
			for _, c := range tc.chunks {
				n, err := w.Write([]byte(c))
				if err != nil {
					t.Fatalf("Write error: %v", err)
				}
				if n != len(c) {
					t.Fatalf("Write returned %d, want %d", n, len(c))
				}
			}
			if got := buf.String(); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}
