package logging

import (
	"fmt"
	"unicode/utf8"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	// MaxValueLogLength is the maximum length of a document value in debug logs.
	// The change log always receives full values.
	MaxValueLogLength = 100
)

// NewLogger builds a console logger at the given level ("debug", "info", "warn", "error").
func NewLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	logConfig := zap.NewDevelopmentConfig()
	logConfig.Level = zap.NewAtomicLevelAt(lvl)
	logConfig.DisableStacktrace = true
	return logConfig.Build()
}

// TruncateString truncates a string to at most maxLen bytes and adds ellipsis if needed.
// The cut never splits a multibyte character.
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
