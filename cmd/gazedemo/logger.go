package main

import (
	"io"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	timeStampKey = "timestamp"
	messageKey   = "message"
)

// zapLogger is kept for Sync on exit.
var zapLogger *zap.Logger

// newLogger builds a JSON zap logger writing to w, wrapped as a logr.Logger.
// With debug, V(1) messages such as per-tick stats are enabled.
func newLogger(w io.Writer, debug bool) logr.Logger {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.TimeKey = timeStampKey
	encoderCfg.MessageKey = messageKey

	level := zapcore.InfoLevel
	if debug {
		// logr V(1) maps to zap level -1.
		level = zapcore.Level(-1)
	}
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.AddSync(w),
		zap.NewAtomicLevelAt(level),
	)
	zapLogger = zap.New(core, zap.AddCaller(), zap.AddStacktrace(zap.ErrorLevel))
	return zapr.NewLogger(zapLogger)
}

// syncLogger flushes buffered log entries.
func syncLogger() {
	if zapLogger != nil {
		_ = zapLogger.Sync()
	}
}
