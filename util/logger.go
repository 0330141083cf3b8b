package util

import (
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	logger   = zerolog.New(os.Stdout).With().Timestamp().Logger()
	loggerMu sync.RWMutex
)

// InitLogger configures the process logger. Development environments get the
// human readable console writer.
func InitLogger(appEnv, level string) zerolog.Logger {
	var out io.Writer = os.Stdout
	if appEnv == "development" {
		out = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	l := zerolog.New(out).Level(lvl).With().Timestamp().Logger()
	loggerMu.Lock()
	logger = l
	loggerMu.Unlock()
	return l
}

// Logger returns a copy of the process logger.
func Logger() *zerolog.Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	l := logger
	return &l
}

// SetLoggerForTest replaces the process logger, typically with one writing to a buffer.
func SetLoggerForTest(l zerolog.Logger) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	logger = l
}
