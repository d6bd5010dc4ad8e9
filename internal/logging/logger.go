// Package logging provides structured logging for ssrgoods using zerolog.
//
// Terminals get a human-readable console writer, everything else gets one
// JSON object per line:
//
//	log := logging.New(logging.Config{Level: "debug"})
//	log.Info().Str("addr", ":3000").Msg("listening")
//
//	ctx := logging.WithLogger(r.Context(), &log)
//	logging.FromContext(ctx).Warn().Msg("slow data source")
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// Nop discards everything.
var Nop = zerolog.Nop()

// Config holds logger configuration options.
type Config struct {
	// Level is the minimum log level to output (trace, debug, info, warn, error).
	Level string

	// Format is the output format: "console", "json" or "auto" (console on a terminal).
	Format string

	// Output is where logs go. Defaults to os.Stderr.
	Output io.Writer

	// NoColor disables color output in console mode.
	NoColor bool

	// Fields are default fields added to every event.
	Fields map[string]string
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Level:   "info",
		Format:  "auto",
		Output:  os.Stderr,
		NoColor: os.Getenv("NO_COLOR") != "",
	}
}

// New creates a logger from configuration.
func New(cfg Config) zerolog.Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}

	level := ParseLevel(cfg.Level)
	logger := zerolog.New(writer(cfg)).
		Level(level).
		With().
		Timestamp().
		Logger()

	if level <= zerolog.DebugLevel {
		logger = logger.With().Caller().Logger()
	}

	if len(cfg.Fields) > 0 {
		ctx := logger.With()
		for k, v := range cfg.Fields {
			ctx = ctx.Str(k, v)
		}
		logger = ctx.Logger()
	}

	return logger
}

// ParseLevel parses a level name, falling back to info.
func ParseLevel(s string) zerolog.Level {
	if s == "" {
		return zerolog.InfoLevel
	}
	level, err := zerolog.ParseLevel(strings.ToLower(s))
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}

// ValidLevel reports whether s names a zerolog level.
func ValidLevel(s string) bool {
	level, err := zerolog.ParseLevel(strings.ToLower(s))
	return err == nil && level != zerolog.NoLevel
}

func writer(cfg Config) io.Writer {
	switch strings.ToLower(cfg.Format) {
	case "json":
		return cfg.Output
	case "console", "pretty":
		return console(cfg)
	default:
		if f, ok := cfg.Output.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
			return console(cfg)
		}
		return cfg.Output
	}
}

func console(cfg Config) io.Writer {
	return zerolog.ConsoleWriter{
		Out:        cfg.Output,
		TimeFormat: time.Kitchen,
		NoColor:    cfg.NoColor,
	}
}
