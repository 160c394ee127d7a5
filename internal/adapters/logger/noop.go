package logger

import "github.com/baditaflorin/go_shingle_similarity/internal/ports"

// NoopLogger discards all log output. Useful in tests and benchmarks.
type NoopLogger struct{}

// NewNoopLogger creates a logger that discards everything.
func NewNoopLogger() ports.Logger {
	return &NoopLogger{}
}

func (n *NoopLogger) Debug(msg string, keysAndValues ...interface{}) {}
func (n *NoopLogger) Info(msg string, keysAndValues ...interface{})  {}
func (n *NoopLogger) Warn(msg string, keysAndValues ...interface{})  {}
func (n *NoopLogger) Error(msg string, keysAndValues ...interface{}) {}
func (n *NoopLogger) Close() error                                   { return nil }
