package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/fisker/webdb-console/pkg/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	// Logger 全局日志实例
	Logger *zap.Logger
	// SugaredLogger 带语法糖的日志实例（支持格式化）
	Sugar *zap.SugaredLogger
)

// Init 初始化日志系统
// output: console 彩色文本到 stdout；file JSON 到滚动文件；both 两者同时
func Init(cfg *config.LoggingConfig) error {
	level := parseLevel(cfg.Level)

	var cores []zapcore.Core
	if cfg.Output != "file" {
		cores = append(cores, newConsoleCore(os.Stdout, level))
	}
	if cfg.Output == "file" || cfg.Output == "both" {
		fileWriter, err := getFileWriter(cfg)
		if err != nil {
			return err
		}
		cores = append(cores, newFileCore(fileWriter, level))
	}

	setLogger(zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(1)))

	Sugar.Infof("Logger initialized: output=%s, level=%s", cfg.Output, cfg.Level)
	return nil
}

func setLogger(l *zap.Logger) {
	Logger = l
	Sugar = l.Sugar()
	zap.ReplaceGlobals(l)
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalColorLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}

func newConsoleCore(w io.Writer, level zapcore.Level) zapcore.Core {
	return zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig()), zapcore.AddSync(w), level)
}

// 文件用 JSON 格式，不带颜色
func newFileCore(w io.Writer, level zapcore.Level) zapcore.Core {
	cfg := encoderConfig()
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewCore(zapcore.NewJSONEncoder(cfg), zapcore.AddSync(w), level)
}

// getFileWriter 获取按大小滚动的文件写入器
func getFileWriter(cfg *config.LoggingConfig) (io.Writer, error) {
	// 确保日志目录存在
	logDir := filepath.Dir(cfg.File)
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, err
	}

	return &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
	}, nil
}

// parseLevel 解析日志级别
func parseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	case "fatal":
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

// Debugf 格式化调试日志
func Debugf(format string, args ...interface{}) {
	if Sugar != nil {
		Sugar.Debugf(format, args...)
	}
}

// Info 信息级别日志
func Info(msg string, fields ...zap.Field) {
	if Logger != nil {
		Logger.Info(msg, fields...)
	}
}

// Infof 格式化信息日志
func Infof(format string, args ...interface{}) {
	if Sugar != nil {
		Sugar.Infof(format, args...)
	}
}

// Warn 警告级别日志
func Warn(msg string, fields ...zap.Field) {
	if Logger != nil {
		Logger.Warn(msg, fields...)
	}
}

// Warnf 格式化警告日志
func Warnf(format string, args ...interface{}) {
	if Sugar != nil {
		Sugar.Warnf(format, args...)
	}
}

// Error 错误级别日志
func Error(msg string, fields ...zap.Field) {
	if Logger != nil {
		Logger.Error(msg, fields...)
	}
}

// Errorf 格式化错误日志
func Errorf(format string, args ...interface{}) {
	if Sugar != nil {
		Sugar.Errorf(format, args...)
	}
}

// Fatalf 格式化致命错误日志
func Fatalf(format string, args ...interface{}) {
	if Sugar != nil {
		Sugar.Fatalf(format, args...)
	}
}

// Sync 刷新缓冲区
func Sync() {
	if Logger != nil {
		Logger.Sync()
	}
}
