package reporter

import (
	"github.com/criyle/go-grader/judger"
	"go.uber.org/zap"
)

var _ judger.Reporter = &Console{}

// Console reports through the logger
type Console struct {
	Logger *zap.Logger
}

// Warn implements judger.Reporter
func (c *Console) Warn(msg string) {
	c.Logger.Warn(msg)
}

// Fail implements judger.Reporter
func (c *Console) Fail(msg string) {
	c.Logger.Error("test failed", zap.String("error", msg))
}

// SetOutput implements judger.Reporter
func (c *Console) SetOutput(key, value string) {
	c.Logger.Info("output", zap.String("key", key), zap.String("value", value))
}
