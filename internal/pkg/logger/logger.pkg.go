package logger

import (
	"log"
	"log/slog"
	"os"
	"strings"
)

var (
	Debug   = newLogger(slog.NewJSONHandler(os.Stdout, nil), slog.LevelDebug)
	Info    = newLogger(slog.NewJSONHandler(os.Stdout, nil), slog.LevelInfo)
	Warning = newLogger(slog.NewJSONHandler(os.Stdout, nil), slog.LevelWarn)
	Error   = newLogger(slog.NewJSONHandler(os.Stderr, nil), slog.LevelError)
	HTTP    = newLogger(slog.NewJSONHandler(os.Stdout, nil), slog.LevelInfo)
)

// Setup rebuilds the package loggers from LOG_LEVEL and APP_ENV.
func Setup() {
	level := parseLevel(os.Getenv("LOG_LEVEL"))
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	out := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}).
		WithAttrs([]slog.Attr{slog.String("service", "pos-terminal"), slog.String("env", env)})
	errOut := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}).
		WithAttrs([]slog.Attr{slog.String("service", "pos-terminal"), slog.String("env", env)})

	Debug = newLogger(out, slog.LevelDebug)
	Info = newLogger(out, slog.LevelInfo)
	Warning = newLogger(out, slog.LevelWarn)
	Error = newLogger(errOut, slog.LevelError)
	HTTP = newLogger(out.WithGroup("http"), slog.LevelInfo)

	slog.SetDefault(slog.New(out))
}

func newLogger(h slog.Handler, level slog.Level) *log.Logger {
	return slog.NewLogLogger(h, level)
}

func parseLevel(lvl string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(lvl)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
