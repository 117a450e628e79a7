package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		level string
		env   string
		want  zapcore.Level
	}{
		{"debug", "production", zapcore.DebugLevel},
		{"warn", "production", zapcore.WarnLevel},
		{"garbage", "production", zapcore.InfoLevel},
		{"", "development", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		log, err := New(tt.level, tt.env)
		require.NoError(t, err)
		assert.True(t, log.Core().Enabled(tt.want), "level %q", tt.level)
		assert.False(t, log.Core().Enabled(tt.want-1), "level %q", tt.level)
	}
}
