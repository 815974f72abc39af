package nmeadevice

import "github.com/sirupsen/logrus"

// Logger is the logging seam used throughout this package, matching the
// interface shape the teacher hardware driver exposes (Printf/Debugf/
// Infof/Warnf/Errorf) so callers can plug in their own sink.
type Logger interface {
	Printf(format string, v ...interface{})
	Debugf(format string, v ...interface{})
	Infof(format string, v ...interface{})
	Warnf(format string, v ...interface{})
	Errorf(format string, v ...interface{})
}

// logrusLogger adapts *logrus.Logger to Logger. logrus is already a
// direct dependency of this module's cmd/ntrip-server-style tooling, so
// the device driver logs through it rather than bare fmt.Printf.
type logrusLogger struct {
	entry *logrus.Logger
}

// NewLogrusLogger wraps an existing *logrus.Logger as a device Logger.
func NewLogrusLogger(l *logrus.Logger) Logger {
	return &logrusLogger{entry: l}
}

// NewDefaultLogger returns a logrus-backed Logger with text formatting
// and Info level, suitable as a zero-configuration default.
func NewDefaultLogger() Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	l.SetLevel(logrus.InfoLevel)
	return NewLogrusLogger(l)
}

func (l *logrusLogger) Printf(format string, v ...interface{})  { l.entry.Infof(format, v...) }
func (l *logrusLogger) Debugf(format string, v ...interface{})  { l.entry.Debugf(format, v...) }
func (l *logrusLogger) Infof(format string, v ...interface{})   { l.entry.Infof(format, v...) }
func (l *logrusLogger) Warnf(format string, v ...interface{})   { l.entry.Warnf(format, v...) }
func (l *logrusLogger) Errorf(format string, v ...interface{})  { l.entry.Errorf(format, v...) }
