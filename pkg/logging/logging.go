package logging

import (
	"context"
	"fmt"
	"os"
	"sort"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/goliatone/go-commerce-admin/components/notify"
	"github.com/goliatone/go-commerce-admin/pkg/config"
)

// New builds a zap logger from cfg. With FileEnable set, JSON entries are
// also written to a rotating file.
func New(cfg config.LoggerConfig) (*zap.Logger, error) {
	var zapConfig zap.Config
	if cfg.Mode == config.ModeProduction {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return nil, fmt.Errorf("logging: level: %w", err)
	}
	zapConfig.Level = zap.NewAtomicLevelAt(level)
	zapConfig.OutputPaths = []string{"stdout"}

	if !cfg.FileEnable {
		logger, err := zapConfig.Build(zap.AddCaller())
		if err != nil {
			return nil, fmt.Errorf("logging: build: %w", err)
		}
		return logger, nil
	}

	rotating := &lumberjack.Logger{
		Filename:   cfg.Filename,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
	}
	core := zapcore.NewTee(
		zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(rotating),
			zapConfig.Level,
		),
		zapcore.NewCore(
			zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
			zapcore.AddSync(os.Stdout),
			zapConfig.Level,
		),
	)
	return zap.New(core, zap.AddCaller()), nil
}

// Telemetry adapts a zap logger to the Record(ctx, event, payload) hook
// every component accepts.
type Telemetry struct {
	logger *zap.Logger
}

// NewTelemetry wraps logger; nil uses a no-op logger.
func NewTelemetry(logger *zap.Logger) *Telemetry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Telemetry{logger: logger.Named("telemetry")}
}

// Record logs event at debug level with the payload as fields in key order.
// Events ending in an error suffix are logged as warnings.
func (t *Telemetry) Record(_ context.Context, event string, payload map[string]any) {
	fields := make([]zap.Field, 0, len(payload))
	keys := make([]string, 0, len(payload))
	for key := range payload {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fields = append(fields, zap.Any(key, payload[key]))
	}
	if isFailure(event) {
		t.logger.Warn(event, fields...)
		return
	}
	t.logger.Debug(event, fields...)
}

func isFailure(event string) bool {
	for _, suffix := range []string{"_error", "_rejected"} {
		if len(event) >= len(suffix) && event[len(event)-len(suffix):] == suffix {
			return true
		}
	}
	return false
}

// NoticeLogger returns a notice bus subscriber that logs every notice.
func NoticeLogger(logger *zap.Logger) func(notify.Notice) {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("notice")
	return func(n notify.Notice) {
		logger.Info(n.Title,
			zap.String("id", n.ID),
			zap.String("kind", string(n.Kind)),
			zap.String("description", n.Description),
		)
	}
}
