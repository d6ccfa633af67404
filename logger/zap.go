package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config 日志配置.
type Config struct {
	// Level 日志级别: debug, info, warn, error.
	Level string `mapstructure:"level"`
	// Format 输出格式: json, console.
	Format string `mapstructure:"format"`
}

// ApplyDefaults 填充默认值.
func (c *Config) ApplyDefaults() {
	if c.Level == "" {
		c.Level = LevelInfo
	}
	if c.Format == "" {
		c.Format = FormatJSON
	}
}

// zapLogger zap 日志实现.
type zapLogger struct {
	logger *zap.Logger
}

// New 创建 zap logger.
func New(config *Config) (Logger, error) {
	if config == nil {
		config = &Config{}
	}
	config.ApplyDefaults()

	level, err := zapcore.ParseLevel(config.Level)
	if err != nil {
		return nil, err
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	switch config.Format {
	case FormatConsole:
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	default:
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	}

	core := zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), level)
	return &zapLogger{logger: zap.New(core)}, nil
}

// MustNew 创建 zap logger，失败时 panic.
func MustNew(config *Config) Logger {
	l, err := New(config)
	if err != nil {
		panic(err)
	}
	return l
}

func (l *zapLogger) Debug(msg string, fields ...Field) {
	l.logger.Debug(msg, toZapFields(fields)...)
}

func (l *zapLogger) Info(msg string, fields ...Field) {
	l.logger.Info(msg, toZapFields(fields)...)
}

func (l *zapLogger) Warn(msg string, fields ...Field) {
	l.logger.Warn(msg, toZapFields(fields)...)
}

func (l *zapLogger) Error(msg string, fields ...Field) {
	l.logger.Error(msg, toZapFields(fields)...)
}

func (l *zapLogger) With(fields ...Field) Logger {
	return &zapLogger{logger: l.logger.With(toZapFields(fields)...)}
}

func (l *zapLogger) Sync() error {
	return l.logger.Sync()
}

// toZapFields 转换字段.
func toZapFields(fields []Field) []zap.Field {
	zfs := make([]zap.Field, len(fields))
	for i, f := range fields {
		if err, ok := f.Value.(error); ok && f.Key == "error" {
			zfs[i] = zap.Error(err)
			continue
		}
		zfs[i] = zap.Any(f.Key, f.Value)
	}
	return zfs
}
