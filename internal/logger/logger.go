package logger

import (
	"bytes"
	"fmt"
	"io"

	"go.uber.org/zap"
)

type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

type LogCloser interface {
	Logger
	io.Closer
}

var Discard LogCloser = nopLogger{}

type nopLogger struct{}

func (nopLogger) Debugf(format string, args ...interface{}) {}
func (nopLogger) Infof(format string, args ...interface{})  {}
func (nopLogger) Warnf(format string, args ...interface{})  {}
func (nopLogger) Errorf(format string, args ...interface{}) {}
func (nopLogger) Close() error                              { return nil }

type nopCloser struct {
	Logger
}

func (nopCloser) Close() error { return nil }

func NopCloser(l Logger) LogCloser {
	return nopCloser{l}
}

type fileLogger struct {
	w io.WriteCloser
}

func (f *fileLogger) printf(severity, format string, args ...interface{}) {
	var buf bytes.Buffer
	buf.WriteString(severity)
	buf.WriteByte(' ')
	fmt.Fprintf(&buf, format, args...)
	if b := buf.Bytes(); b[len(b)-1] != '\n' {
		buf.WriteByte('\n')
	}
	f.w.Write(buf.Bytes())
}

func (f *fileLogger) Debugf(format string, args ...interface{}) {
	f.printf("DEBUG", format, args...)
}

func (f *fileLogger) Warnf(format string, args ...interface{}) {
	f.printf("WARN", format, args...)
}

func (f *fileLogger) Infof(format string, args ...interface{}) {
	f.printf("INFO", format, args...)
}

func (f *fileLogger) Errorf(format string, args ...interface{}) {
	f.printf("ERROR", format, args...)
}

func (f *fileLogger) Close() error {
	return f.w.Close()
}

// FileLogger writes one "SEVERITY message" line per call to w.
func FileLogger(w io.WriteCloser) LogCloser {
	return &fileLogger{w}
}

type zapLogger struct {
	*zap.SugaredLogger
}

func (l zapLogger) Close() error {
	// Sync fails with EINVAL on terminals and pipes, there is nothing a
	// caller could do about it.
	l.SugaredLogger.Sync()
	return nil
}

// Zap adapts a zap logger. Closing the returned logger syncs l.
func Zap(l *zap.Logger) LogCloser {
	return zapLogger{l.WithOptions(zap.AddCallerSkip(1)).Sugar()}
}
