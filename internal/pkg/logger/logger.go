package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LogLevel names a zerolog level in configuration
type LogLevel string

const (
	DebugLevel LogLevel = "debug"
	InfoLevel  LogLevel = "info"
	WarnLevel  LogLevel = "warn"
	ErrorLevel LogLevel = "error"
	FatalLevel LogLevel = "fatal"
)

var levels = map[LogLevel]zerolog.Level{
	DebugLevel: zerolog.DebugLevel,
	InfoLevel:  zerolog.InfoLevel,
	WarnLevel:  zerolog.WarnLevel,
	ErrorLevel: zerolog.ErrorLevel,
	FatalLevel: zerolog.FatalLevel,
}

// Config controls the process-wide logger
type Config struct {
	Level LogLevel
	// Pretty switches from JSON lines to the human-readable console writer
	Pretty bool
	// Output defaults to os.Stdout
	Output io.Writer
}

var root zerolog.Logger

// Configure rebuilds the process-wide logger. Called once at startup;
// the package-level event constructors below log through the result.
func Configure(cfg Config) {
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}

	level, ok := levels[cfg.Level]
	if !ok {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	out := cfg.Output
	if cfg.Pretty {
		out = zerolog.ConsoleWriter{Out: cfg.Output, TimeFormat: time.RFC3339}
	}

	root = zerolog.New(out).With().Timestamp().Logger()
	log.Logger = root
}

func Debug() *zerolog.Event { return root.Debug() }
func Info() *zerolog.Event  { return root.Info() }
func Warn() *zerolog.Event  { return root.Warn() }
func Error() *zerolog.Event { return root.Error() }

func init() {
	Configure(Config{Level: InfoLevel, Pretty: true})
}
