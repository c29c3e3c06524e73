package logger

import (
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config defines the configuration for the logger.
type Config struct {
	Level       string // debug, info, warn, error
	Format      string // json, console
	EnableColor bool   // only honoured in console mode
}

var (
	globalLogger *zap.Logger
	atom         zap.AtomicLevel
	once         sync.Once
)

// DefaultConfig reads LOG_LEVEL and LOG_FORMAT directly, for code paths that
// log before the configuration is loaded.
func DefaultConfig() Config {
	return NewConfig(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))
}

// NewConfig builds a Config from the log section of the application config.
func NewConfig(level, format string) Config {
	if level == "" {
		level = "info"
	}
	if format == "" {
		format = "console"
	}
	return Config{
		Level:       strings.ToLower(level),
		Format:      strings.ToLower(format),
		EnableColor: shouldEnableColor(),
	}
}

// Initialize sets up the global logger. Only the first call has an effect.
func Initialize(cfg Config) {
	once.Do(func() {
		encoderConfig := zap.NewProductionEncoderConfig()
		encoderConfig.TimeKey = "timestamp"
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

		encoding := "json"
		if cfg.Format != "json" {
			encoding = "console"
			encoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
			encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
			if cfg.EnableColor {
				encoding = coloredConsole
				encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
			}
		}

		zapConfig := zap.Config{
			Level:             zap.NewAtomicLevelAt(parseLevel(cfg.Level)),
			Encoding:          encoding,
			EncoderConfig:     encoderConfig,
			OutputPaths:       []string{"stdout"},
			ErrorOutputPaths:  []string{"stderr"},
			DisableStacktrace: cfg.Level != "debug" && cfg.Level != "error",
		}

		var err error
		globalLogger, err = zapConfig.Build(zap.AddCallerSkip(1))
		if err != nil {
			panic("failed to initialize logger: " + err.Error())
		}

		atom = zapConfig.Level
	})
}

// Get returns the global logger. Initializes with defaults if not already set.
func Get() *zap.Logger {
	if globalLogger == nil {
		Initialize(DefaultConfig())
	}
	return globalLogger
}

// SetLevel changes the level of the global logger at runtime.
func SetLevel(lvl string) {
	Get()
	atom.SetLevel(parseLevel(lvl))
}

// With creates a child logger and adds structured context to it.
func With(fields ...zap.Field) *zap.Logger {
	return Get().With(fields...)
}

func Info(msg string, fields ...zap.Field) {
	Get().Info(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	Get().Error(msg, fields...)
}

func Fatal(msg string, fields ...zap.Field) {
	Get().Fatal(msg, fields...)
}

func Debug(msg string, fields ...zap.Field) {
	Get().Debug(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	Get().Warn(msg, fields...)
}

func Sync() {
	if globalLogger != nil {
		_ = globalLogger.Sync()
	}
}

func parseLevel(lvl string) zapcore.Level {
	switch strings.ToLower(lvl) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	case "fatal":
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

// shouldEnableColor honours NO_COLOR (https://no-color.org/) and LOG_COLOR.
func shouldEnableColor() bool {
	if _, noColor := os.LookupEnv("NO_COLOR"); noColor {
		return false
	}
	if val := os.Getenv("LOG_COLOR"); val != "" {
		return val == "true" || val == "1"
	}
	return true
}
