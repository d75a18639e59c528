package logger

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds logger configuration
type Config struct {
	// Level is the minimum enabled logging level ("debug", "info", "warn", "error").
	// Environment names are also accepted: "development" maps to debug,
	// anything else to info.
	Level       string
	ServiceName string
	Development bool
}

var (
	mu     sync.Mutex
	global *zap.Logger = zap.NewNop()
)

// Init initializes the global logger
func Init(cfg *Config) error {
	if cfg == nil {
		cfg = &Config{}
	}

	var zapCfg zap.Config
	if cfg.Development {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
		zapCfg.EncoderConfig.TimeKey = "ts"
		zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	zapCfg.Level = zap.NewAtomicLevelAt(parseLevel(cfg.Level))

	l, err := zapCfg.Build(zap.AddCallerSkip(0))
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}

	if cfg.ServiceName != "" {
		l = l.With(zap.String("service", cfg.ServiceName))
	}

	mu.Lock()
	global = l
	mu.Unlock()
	return nil
}

// Get returns the global logger
func Get() *zap.Logger {
	mu.Lock()
	defer mu.Unlock()
	return global
}

// Sync flushes any buffered log entries
func Sync() {
	mu.Lock()
	l := global
	mu.Unlock()
	_ = l.Sync()
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case "debug", "development":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
