package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds configuration for the logger
type Config struct {
	Level string
	// File receives the log instead of stderr when set. The terminal panel owns
	// stdout and stderr while it runs.
	File string
	// Encoding is "console" or "json".
	Encoding string
}

// New builds a logger for cfg.
func New(cfg Config) (*zap.Logger, error) {
	if cfg.Encoding == "" {
		cfg.Encoding = "console"
	}
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
	if cfg.Encoding == "json" {
		encoderConfig.EncodeLevel = zapcore.LowercaseLevelEncoder
	}

	output := "stderr"
	if cfg.File != "" {
		output = cfg.File
	}

	config := zap.Config{
		Level:            level,
		Encoding:         cfg.Encoding,
		EncoderConfig:    encoderConfig,
		OutputPaths:      []string{output},
		ErrorOutputPaths: []string{output},
	}
	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}

// ParseLevel converts a level name to a zap level. An empty name is info.
func ParseLevel(level string) (zap.AtomicLevel, error) {
	switch level {
	case "debug":
		return zap.NewAtomicLevelAt(zapcore.DebugLevel), nil
	case "", "info":
		return zap.NewAtomicLevelAt(zapcore.InfoLevel), nil
	case "warn":
		return zap.NewAtomicLevelAt(zapcore.WarnLevel), nil
	case "error":
		return zap.NewAtomicLevelAt(zapcore.ErrorLevel), nil
	default:
		return zap.AtomicLevel{}, fmt.Errorf("unknown log level %q", level)
	}
}
