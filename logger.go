package wal

import (
	"go.uber.org/zap"

	"github.com/kezhuw/wal/internal/logger"
)

type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// DiscardLogger is a nop Logger.
var DiscardLogger Logger = logger.Discard

// NewZapLogger creates a Logger writing to l.
func NewZapLogger(l *zap.Logger) Logger {
	return logger.Zap(l)
}

var _ Logger = (logger.Logger)(nil)
var _ logger.Logger = (Logger)(nil)
