package logger

import (
	"os"
	"path/filepath"

	"github.com/natefinch/lumberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"classboard/config"
)

// Logger 封装zap日志库，提供变参键值对风格的接口
type Logger struct {
	*zap.Logger
}

// NewLogger 创建一个只输出到控制台的日志记录器
func NewLogger(level string) *Logger {
	return NewLoggerWithConfig(level, config.LogFileConfig{})
}

// NewLoggerWithConfig 使用配置创建日志记录器，可选输出到轮转文件
func NewLoggerWithConfig(level string, logFile config.LogFileConfig) *Logger {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	enabler := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lvl >= zapLevel
	})

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), zapcore.Lock(os.Stdout), enabler),
	}

	// 启用文件日志时由lumberjack负责轮转
	if logFile.Enabled && logFile.Path != "" {
		if err := os.MkdirAll(filepath.Dir(logFile.Path), 0755); err != nil {
			panic(err)
		}
		fileOutput := zapcore.AddSync(&lumberjack.Logger{
			Filename:   logFile.Path,
			MaxSize:    logFile.MaxSize,
			MaxBackups: logFile.MaxBackups,
			MaxAge:     logFile.MaxAge,
			Compress:   logFile.Compress,
			LocalTime:  true,
		})
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), fileOutput, enabler))
	}

	core := zapcore.NewTee(cores...)
	return &Logger{Logger: zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))}
}

// Info 记录信息级别日志
func (l *Logger) Info(msg string, fields ...interface{}) {
	l.Logger.Info(msg, fieldsToZapFields(fields...)...)
}

// Debug 记录调试级别日志
func (l *Logger) Debug(msg string, fields ...interface{}) {
	l.Logger.Debug(msg, fieldsToZapFields(fields...)...)
}

// Warn 记录警告级别日志
func (l *Logger) Warn(msg string, fields ...interface{}) {
	l.Logger.Warn(msg, fieldsToZapFields(fields...)...)
}

// Error 记录错误级别日志
func (l *Logger) Error(msg string, fields ...interface{}) {
	l.Logger.Error(msg, fieldsToZapFields(fields...)...)
}

// Fatal 记录致命错误日志并退出程序
func (l *Logger) Fatal(msg string, fields ...interface{}) {
	l.Logger.Fatal(msg, fieldsToZapFields(fields...)...)
}

// 将变参键值对转换为zap字段
func fieldsToZapFields(fields ...interface{}) []zap.Field {
	zapFields := make([]zap.Field, 0, len(fields))
	for i := 0; i < len(fields); i++ {
		switch f := fields[i].(type) {
		case error:
			zapFields = append(zapFields, zap.Error(f))
		case string:
			if i+1 < len(fields) {
				zapFields = append(zapFields, zap.Any(f, fields[i+1]))
				i++
			}
		default:
			zapFields = append(zapFields, zap.Any("field", f))
		}
	}
	return zapFields
}
