package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/hellenic-development/imgmirror"
)

const (
	logFormatText = "text"
	logFormatJSON = "json"
)

// newLogger returns the logger for format and a func that flushes it.
func newLogger(format string, w io.Writer) (imgmirror.Logger, func(), error) {
	switch format {
	case logFormatText:
		return &colorLogger{w: w}, func() {}, nil
	case logFormatJSON:
		l := newZapLogger(w)
		return &zapLogger{s: l.Sugar()}, func() { _ = l.Sync() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown log format %q (must be %s or %s)", format, logFormatText, logFormatJSON)
	}
}

// colorLogger implements imgmirror.Logger with colored terminal output.
type colorLogger struct {
	w io.Writer
}

func (l *colorLogger) Infof(format string, args ...any) {
	color.New(color.FgYellow).Fprintf(l.w, format+"\n", args...)
}

func (l *colorLogger) Successf(format string, args ...any) {
	color.New(color.FgGreen).Fprintf(l.w, "✓ "+format+"\n", args...)
}

func (l *colorLogger) Warnf(format string, args ...any) {
	color.New(color.FgYellow).Fprintf(l.w, "⚠ "+format+"\n", args...)
}

func (l *colorLogger) Errorf(format string, args ...any) {
	color.New(color.FgRed).Fprintf(l.w, "✗ "+format+"\n", args...)
}

// newZapLogger builds a production-style JSON logger writing to w.
func newZapLogger(w io.Writer) *zap.Logger {
	encoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	core := zapcore.NewCore(encoder, zapcore.AddSync(w), zap.InfoLevel)
	return zap.New(core)
}

// zapLogger implements imgmirror.Logger on top of zap for machine-readable logs.
type zapLogger struct {
	s *zap.SugaredLogger
}

func (l *zapLogger) Infof(format string, args ...any) {
	l.s.Infof(format, args...)
}

func (l *zapLogger) Successf(format string, args ...any) {
	l.s.Infof(format, args...)
}

func (l *zapLogger) Warnf(format string, args ...any) {
	l.s.Warnf(format, args...)
}

func (l *zapLogger) Errorf(format string, args ...any) {
	l.s.Errorf(format, args...)
}
