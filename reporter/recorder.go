package reporter

import (
	"maps"
	"slices"
	"sync"

	"github.com/criyle/go-grader/judger"
)

var _ judger.Reporter = &Recorder{}

// Recorder keeps the reported messages in memory
type Recorder struct {
	mu       sync.Mutex
	warnings []string
	failures []string
	outputs  map[string]string
}

// Warn implements judger.Reporter
func (r *Recorder) Warn(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.warnings = append(r.warnings, msg)
}

// Fail implements judger.Reporter
func (r *Recorder) Fail(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures = append(r.failures, msg)
}

// SetOutput implements judger.Reporter
func (r *Recorder) SetOutput(key, value string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.outputs == nil {
		r.outputs = make(map[string]string)
	}
	r.outputs[key] = value
}

// Warnings returns a copy of the reported warnings
func (r *Recorder) Warnings() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.warnings)
}

// Failures returns a copy of the reported failures
func (r *Recorder) Failures() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.failures)
}

// Outputs returns a copy of the outputs
func (r *Recorder) Outputs() map[string]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return maps.Clone(r.outputs)
}
