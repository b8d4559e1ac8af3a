package logger

import (
	"flag"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// Environment variable name for log level configuration.
const envLogLevel = "SMF_LOG_LEVEL"

var (
	global   *logrus.Logger
	initOnce sync.Once

	// Optional flag (users may pass -log.level=debug). If flags.Parse() hasn't
	// yet been called when Init is invoked, we still read the raw os.Args.
	flagLevel = flag.String("log.level", "", "log level (debug, info, warn, error)")
)

// Init initializes the global logger. It is safe to call multiple times; the
// first call wins except SetLevel / UseWriter which mutate state intentionally.
func Init() {
	initOnce.Do(func() {
		global = logrus.New()
		global.SetFormatter(&logrus.JSONFormatter{})
		global.SetLevel(detectLevel())
	})
}

// detectLevel resolves the initial log level from (precedence high→low):
//  1. command-line flag -log.level
//  2. environment variable SMF_LOG_LEVEL
//  3. default (info)
func detectLevel() logrus.Level {
	// Attempt to parse flag value (handles both parsed & unparsed states).
	if *flagLevel == "" {
		for _, arg := range os.Args[1:] {
			if strings.HasPrefix(arg, "-log.level=") {
				parts := strings.SplitN(arg, "=", 2)
				if len(parts) == 2 {
					*flagLevel = parts[1]
				}
			}
		}
	}
	if lvl, ok := parseLevel(strings.TrimSpace(*flagLevel)); ok {
		return lvl
	}
	if env := os.Getenv(envLogLevel); env != "" {
		if lvl, ok := parseLevel(env); ok {
			return lvl
		}
	}
	return logrus.InfoLevel
}

// parseLevel converts string to logrus.Level.
func parseLevel(s string) (logrus.Level, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "debug":
		return logrus.DebugLevel, true
	case "info", "":
		return logrus.InfoLevel, true
	case "warn", "warning":
		return logrus.WarnLevel, true
	case "error", "err":
		return logrus.ErrorLevel, true
	}
	return 0, false
}

// SetLevel changes the runtime log level.
func SetLevel(level string) error {
	Init()
	lvl, ok := parseLevel(level)
	if !ok {
		return &invalidLevelError{level}
	}
	global.SetLevel(lvl)
	return nil
}

type invalidLevelError struct{ level string }

func (e *invalidLevelError) Error() string { return "invalid log level: " + e.level }

// Level returns the current runtime level as string.
func Level() string {
	Init()
	return global.GetLevel().String()
}

// UseWriter swaps the output writer (intended for tests). Retains current level.
func UseWriter(w io.Writer) {
	Init()
	global.SetOutput(w)
}

// Logger returns the global logger (ensures Init was called).
func Logger() *logrus.Logger { Init(); return global }

// Convenience top-level logging functions.
func Debug(args ...any) { Logger().Debug(args...) }
func Info(args ...any)  { Logger().Info(args...) }
func Warn(args ...any)  { Logger().Warn(args...) }
func Error(args ...any) { Logger().Error(args...) }

// WithSource attaches the name of the active input source (a file path, or
// "<stdin>") to every subsequent log entry.
func WithSource(l *logrus.Logger, name string) *logrus.Entry {
	return l.WithField("source", name)
}

// WithTrack attaches the current track index to every subsequent log entry.
func WithTrack(l *logrus.Logger, index int) *logrus.Entry {
	return l.WithField("track", index)
}
