package logging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"netlister/internal/config"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.LogConfig
		enabled zapcore.Level
		wantErr bool
	}{
		{name: "json info", cfg: config.LogConfig{Level: "info", Format: "json"}, enabled: zapcore.InfoLevel},
		{name: "console debug", cfg: config.LogConfig{Level: "debug", Format: "console"}, enabled: zapcore.DebugLevel},
		{name: "uppercase level", cfg: config.LogConfig{Level: "WARN"}, enabled: zapcore.WarnLevel},
		{name: "bad level", cfg: config.LogConfig{Level: "loud"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, logger.Core().Enabled(tt.enabled))
			assert.False(t, logger.Core().Enabled(tt.enabled-1))
		})
	}
}

func TestRequestIDContext(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "", RequestID(ctx))
	assert.Equal(t, zap.Skip(), RequestIDField(ctx))

	ctx = WithRequestID(ctx, "rid-1")
	assert.Equal(t, "rid-1", RequestID(ctx))
	assert.Equal(t, zap.String("request_id", "rid-1"), RequestIDField(ctx))
}
