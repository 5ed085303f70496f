package logs

import (
	"bytes"
	"log/slog"
	"testing"

	"storefront/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"warn", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"verbose", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseLogLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)

				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuild_JSONByDefault(t *testing.T) {
	var buf bytes.Buffer
	logger, err := build(&buf, config.Log{Level: "info"})
	require.NoError(t, err)

	logger.Info("hello", slog.String("k", "v"))

	assert.Contains(t, buf.String(), `"msg":"hello"`)
	assert.Contains(t, buf.String(), `"k":"v"`)
}

func TestBuild_PrettyUsesText(t *testing.T) {
	var buf bytes.Buffer
	logger, err := build(&buf, config.Log{Level: "debug", Pretty: true})
	require.NoError(t, err)

	logger.Debug("hello")

	assert.Contains(t, buf.String(), "msg=hello")
}
