package judger

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// result file keys written by external tests
const (
	resultKeyScore    = "score"
	resultKeyMaxScore = "max_score"
)

func resolvePath(dir, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

// checkStaleResult warns if the result file is already there before the
// test starts, the test runs anyway
func (j *Judger) checkStaleResult(dir, name string, s *ExternalSpec) {
	p := resolvePath(dir, s.resultFile())
	if _, err := os.Stat(p); err == nil {
		j.reporter.Warn(fmt.Sprintf(
			"Result file %s of test %s exists before the test starts, a stale result may corrupt the score",
			s.resultFile(), name))
	}
}

// ingestResult reads score and max_score from the result file after the
// test ran, regardless of the test outcome. Problems are reported as
// warnings. ok is true only when both values are present and numeric
func (j *Judger) ingestResult(dir, name string, s *ExternalSpec) (score, maxScore float64, ok bool) {
	fileName := s.resultFile()
	p := resolvePath(dir, fileName)
	logger := j.logger.With(zap.String("test", name), zap.String("resultFile", p))

	score, maxScore, ok, err := readResultFile(p)
	if err != nil {
		logger.Debug("read result file failed", zap.Error(err))
		j.reporter.Warn(fmt.Sprintf("Failed to read result file %s of test %s: %v", fileName, name, err))
	} else if !ok {
		logger.Debug("result file does not contain score and max_score")
	}

	switch {
	case s.KeepResultFile == nil:
		j.reporter.Warn(fmt.Sprintf(
			"Test %s does not set keepResultFile, %s is deleted after the test. Set keepResultFile explicitly to silence this warning",
			name, fileName))
		removeResultFile(logger, p)
	case !*s.KeepResultFile:
		removeResultFile(logger, p)
	case fileName == DefaultResultFile:
		j.reporter.Warn(fmt.Sprintf(
			"Test %s keeps the default result file %s, it may be read again by other tests using the default path",
			name, fileName))
	}
	return score, maxScore, ok
}

func readResultFile(p string) (score, maxScore float64, ok bool, err error) {
	b, err := os.ReadFile(p)
	if err != nil {
		return 0, 0, false, err
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return 0, 0, false, err
	}
	score, hasScore := m[resultKeyScore].(float64)
	maxScore, hasMaxScore := m[resultKeyMaxScore].(float64)
	if !hasScore || !hasMaxScore {
		return 0, 0, false, nil
	}
	return score, maxScore, true, nil
}

func removeResultFile(logger *zap.Logger, p string) {
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Debug("remove result file failed", zap.Error(err))
	}
}
