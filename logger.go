// logger.go
// Shared default logger for the package-level convenience functions.
package shinglesimilarity

import (
	"os"
	"sync"

	"github.com/baditaflorin/l"
)

var (
	defaultLoggerOnce sync.Once
	defaultLoggerInst l.Logger
	defaultLoggerErr  error
)

// defaultLogger creates the shared default logger on first use.
func defaultLogger() (l.Logger, error) {
	defaultLoggerOnce.Do(func() {
		defaultLoggerInst, defaultLoggerErr = l.NewStandardFactory().CreateLogger(l.Config{
			Output:      os.Stdout,
			JsonFormat:  false,
			AsyncWrite:  true,
			BufferSize:  1024 * 1024,      // 1MB buffer
			MaxFileSize: 10 * 1024 * 1024, // 10MB max file size
			MaxBackups:  5,
			AddSource:   true,
			Metrics:     true,
		})
	})
	return defaultLoggerInst, defaultLoggerErr
}
