// Package logger 提供结构化日志记录功能.
//
// 日志记录器总是显式注入，不提供全局单例.
package logger

// 日志级别常量.
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// 输出格式常量.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// Field 表示一个日志字段.
type Field struct {
	Key   string
	Value any
}

// String 创建字符串字段.
func String(key, value string) Field { return Field{Key: key, Value: value} }

// Int 创建整数字段.
func Int(key string, value int) Field { return Field{Key: key, Value: value} }

// Any 创建任意值字段.
func Any(key string, value any) Field { return Field{Key: key, Value: value} }

// Err 创建错误字段.
func Err(err error) Field { return Field{Key: "error", Value: err} }

// Logger 日志记录器接口.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	// With 返回携带固定字段的子记录器.
	With(fields ...Field) Logger

	// Sync 刷新缓冲的日志.
	Sync() error
}

// nopLogger 丢弃所有日志.
type nopLogger struct{}

// Nop 返回丢弃所有日志的记录器.
func Nop() Logger { return nopLogger{} }

func (nopLogger) Debug(string, ...Field) {}
func (nopLogger) Info(string, ...Field)  {}
func (nopLogger) Warn(string, ...Field)  {}
func (nopLogger) Error(string, ...Field) {}
func (n nopLogger) With(...Field) Logger { return n }
func (nopLogger) Sync() error            { return nil }
