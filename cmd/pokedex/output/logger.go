package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// LogConfig controls logger construction.
type LogConfig struct {
	Level string
	// Dir, when set, receives an app.log copy of everything written to the console.
	Dir string
}

// NewLogger returns a console logger, teeing into Dir/app.log when Dir is set.
// The returned closer releases the log file and is never nil.
func NewLogger(cfg LogConfig, console io.Writer) (zerolog.Logger, io.Closer, error) {
	level := zerolog.DebugLevel
	if cfg.Level != "" {
		parsed, err := zerolog.ParseLevel(cfg.Level)
		if err != nil {
			return zerolog.Logger{}, nopCloser{}, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
		level = parsed
	}

	consoleWriter := zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = console
	})

	var (
		writer io.Writer = consoleWriter
		closer io.Closer = nopCloser{}
	)
	if cfg.Dir != "" {
		if err := os.MkdirAll(cfg.Dir, os.ModePerm); err != nil {
			return zerolog.Logger{}, nopCloser{}, fmt.Errorf("failed to create log directory: %w", err)
		}
		logFile, err := os.OpenFile(filepath.Join(cfg.Dir, "app.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return zerolog.Logger{}, nopCloser{}, fmt.Errorf("failed to create log file: %w", err)
		}
		writer = zerolog.MultiLevelWriter(consoleWriter, logFile)
		closer = logFile
	}

	log := zerolog.New(writer).
		Level(level).
		With().
		Timestamp().
		Caller().
		Logger()

	return log, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
