package log

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var sugarLogger *zap.SugaredLogger
var zapLogger *zap.Logger

func Init(level, format, outputpath string) {
	var err error
	var logger *zap.Logger
	var zapConfig zap.Config

	LogLevel := zap.NewAtomicLevel()
	if err := LogLevel.UnmarshalText([]byte(level)); err != nil {
		LogLevel.SetLevel(zap.InfoLevel)
		panic(fmt.Errorf("invalid log level: %w", err))
	}

	encoding := "json"
	if format == "console" {
		encoding = "console"
	}

	if format == "console" {
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		zapConfig.EncoderConfig.EncodeDuration = zapcore.StringDurationEncoder
	} else {
		zapConfig = zap.NewProductionConfig()
		zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		zapConfig.EncoderConfig.EncodeDuration = zapcore.StringDurationEncoder
	}

	zapConfig.Level = LogLevel
	zapConfig.Encoding = encoding
	zapConfig.OutputPaths = []string{"stdout"}
	if outputpath != "" {
		if err := os.MkdirAll(outputpath, 0755); err != nil {
			panic(fmt.Errorf("failed to create log directory: %w", err))
		}
		zapConfig.OutputPaths = append(zapConfig.OutputPaths, outputpath+"/app.log")
	}

	if logger, err = zapConfig.Build(); err != nil {
		panic(fmt.Errorf("failed to build logger: %w", err))
	}

	zapLogger = logger
	sugarLogger = logger.Sugar()
}

// Info logs a message at info level.
func Info(msg string) {
	sugarLogger.Info(msg)
}

// Infof logs a formatted message at info level.
func Infof(format string, args ...interface{}) {
	sugarLogger.Infof(format, args...)
}

// Infow logs a message with key-value pairs at info level.
func Infow(msg string, keysAndValues ...interface{}) {
	sugarLogger.Infow(msg, keysAndValues...)
}

// Warnf logs a formatted message at warn level.
func Warnf(template string, args ...interface{}) {
	sugarLogger.Warnf(template, args...)
}

func Warnw(msg string, keysAndValues ...interface{}) {
	sugarLogger.Warnw(msg, keysAndValues...)
}

// Error logs a message at error level together with the error.
func Error(msg string, err error) {
	sugarLogger.Errorw(msg, "error", err)
}

func Errorf(template string, args ...interface{}) {
	sugarLogger.Errorf(template, args...)
}

// Fatal logs the message and error, then exits the process.
func Fatal(msg string, err error) {
	sugarLogger.Fatalw(msg, "error", err)
}

func Fatalf(template string, args ...interface{}) {
	sugarLogger.Fatalf(template, args...)
}

// Sync flushes any buffered log entries. Call it before the process exits.
func Sync() {
	_ = sugarLogger.Sync()
	_ = zapLogger.Sync()
}

func GetLogger() *zap.Logger {
	return zapLogger
}
