package logger

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerAttachesModuleAndError(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewFromCore(core)

	l.Error("GenerationService", "image generation failed", map[string]interface{}{
		"error":   errors.New("upstream down"),
		"user_id": "u-1",
	})
	l.Info("GenerationService", "ok", nil)

	require.Equal(t, 2, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "image generation failed", entry.Message)
	assert.Equal(t, "GenerationService", entry.ContextMap()["module"])
	assert.Equal(t, "upstream down", entry.ContextMap()["error"])
}

func TestIsolatedLoggerWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notification.log")
	l := NewIsolatedLogger(path)

	l.Info("NotificationService", "delivered", map[string]interface{}{"type": "IMAGE_GENERATED"})
	require.NoError(t, l.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"delivered"`)
	assert.Contains(t, string(data), `"module":"NotificationService"`)
}
