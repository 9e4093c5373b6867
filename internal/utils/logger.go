package utils

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewApplicationLogger builds the console logger that carries the pipeline's
// progress output: the discovery announcement, per-file skip notices, and the
// completion summary. The encoder is stripped down to the bare message so the
// notices read as plain progress lines rather than structured log records.
func NewApplicationLogger() (*zap.Logger, error) {
	consoleConfiguration := zap.NewProductionConfig()
	consoleConfiguration.Encoding = "console"
	consoleConfiguration.DisableCaller = true
	consoleConfiguration.DisableStacktrace = true

	encoderConfiguration := &consoleConfiguration.EncoderConfig
	encoderConfiguration.EncodeLevel = zapcore.CapitalLevelEncoder
	encoderConfiguration.MessageKey = "message"
	encoderConfiguration.TimeKey = ""
	encoderConfiguration.LevelKey = ""
	encoderConfiguration.NameKey = ""
	encoderConfiguration.CallerKey = ""
	encoderConfiguration.StacktraceKey = ""

	return consoleConfiguration.Build()
}
