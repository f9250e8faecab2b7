package logging

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		level   string
		enabled zap.AtomicLevel
	}{
		{level: "debug", enabled: zap.NewAtomicLevelAt(zap.DebugLevel)},
		{level: "info", enabled: zap.NewAtomicLevelAt(zap.InfoLevel)},
		{level: "WARN", enabled: zap.NewAtomicLevelAt(zap.WarnLevel)},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger, err := NewLogger(tt.level)
			require.NoError(t, err)
			assert.True(t, logger.Core().Enabled(tt.enabled.Level()))
			if tt.enabled.Level() > zap.DebugLevel {
				assert.False(t, logger.Core().Enabled(tt.enabled.Level()-1))
			}
		})
	}
}

func TestNewLogger_InvalidLevel(t *testing.T) {
	_, err := NewLogger("verbose")
	assert.Error(t, err)
}

func TestTruncateString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxLen   int
		expected string
	}{
		{
			name:     "short string unchanged",
			input:    "hello",
			maxLen:   10,
			expected: "hello",
		},
		{
			name:     "exact length unchanged",
			input:    "hello",
			maxLen:   5,
			expected: "hello",
		},
		{
			name:     "long string truncated",
			input:    "hello world",
			maxLen:   5,
			expected: "hello...",
		},
		{
			name:     "empty string",
			input:    "",
			maxLen:   5,
			expected: "",
		},
		{
			name:     "multibyte character not split",
			input:    "abécd",
			maxLen:   3,
			expected: "ab...",
		},
		{
			name:     "multibyte boundary kept",
			input:    "ééé",
			maxLen:   4,
			expected: "éé...",
		},
		{
			name:     "value at log limit",
			input:    strings.Repeat("a", MaxValueLogLength+1),
			maxLen:   MaxValueLogLength,
			expected: strings.Repeat("a", MaxValueLogLength) + "...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TruncateString(tt.input, tt.maxLen))
		})
	}
}
