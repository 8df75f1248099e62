package logging

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/goliatone/go-commerce-admin/components/notify"
	"github.com/goliatone/go-commerce-admin/pkg/config"
)

func TestTelemetryRecordsEvents(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	telemetry := NewTelemetry(zap.New(core))

	telemetry.Record(context.Background(), "catalog.products.create", map[string]any{"id": int64(4), "name": "Lipstick"})
	telemetry.Record(context.Background(), "catalog.products.create_rejected", map[string]any{"fields": 2})
	telemetry.Record(context.Background(), "dashboard.widget.provider_error", nil)

	entries := logs.AllUntimed()
	require.Len(t, entries, 3)
	assert.Equal(t, "catalog.products.create", entries[0].Message)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, "telemetry", entries[0].LoggerName)
	ctx := entries[0].ContextMap()
	assert.Equal(t, int64(4), ctx["id"])
	assert.Equal(t, "Lipstick", ctx["name"])

	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, zapcore.WarnLevel, entries[2].Level)
}

func TestNoticeLoggerSubscribesToBus(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	bus := notify.NewBus()
	require.NoError(t, bus.Subscribe(NoticeLogger(zap.New(core))))

	bus.Notify(context.Background(), notify.Notice{Title: "Deleted", Description: "Selected products were removed."})

	entries := logs.FilterMessage("Deleted").AllUntimed()
	require.Len(t, entries, 1)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "success", ctx["kind"])
	assert.Equal(t, "Selected products were removed.", ctx["description"])
	assert.NotEmpty(t, ctx["id"])
}

func TestNilLoggersAreSafe(t *testing.T) {
	assert.NotPanics(t, func() {
		NewTelemetry(nil).Record(context.Background(), "x", map[string]any{"a": 1})
		NoticeLogger(nil)(notify.Notice{Title: "x"})
	})
}

func TestNewLogger(t *testing.T) {
	logger, err := New(config.LoggerConfig{Mode: config.ModeDevelopment, Level: "debug"})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	_, err = New(config.LoggerConfig{Mode: config.ModeProduction, Level: "loud"})
	assert.Error(t, err)
}

func TestNewLoggerWritesRotatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "admin.log")
	logger, err := New(config.LoggerConfig{
		Mode:       config.ModeProduction,
		Level:      "info",
		FileEnable: true,
		Filename:   path,
		MaxSizeMB:  1,
	})
	require.NoError(t, err)
	logger.Info("started", zap.String("addr", ":8080"))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"started"`)
	assert.Contains(t, string(data), `"addr":":8080"`)
}
