// Package logging provides the relay's structured logging surface: a
// thin interface over logrus. Logging is optional and must never leak
// auth token values.
package logging

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Logger is the subset of logging operations used throughout the relay
// and admin packages. Handlers accept this interface rather than a
// concrete type so tests can substitute a buffer-backed logger.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// DefaultLog wraps a *logrus.Logger. The zero value is ready to use and
// logs to logrus's standard destination (stderr).
type DefaultLog struct {
	Logger *logrus.Logger
}

func (d DefaultLog) logger() *logrus.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return logrus.StandardLogger()
}

func (d DefaultLog) Debugf(format string, args ...interface{}) { d.logger().Debugf(format, args...) }
func (d DefaultLog) Infof(format string, args ...interface{})  { d.logger().Infof(format, args...) }
func (d DefaultLog) Warnf(format string, args ...interface{})  { d.logger().Warnf(format, args...) }
func (d DefaultLog) Errorf(format string, args ...interface{}) { d.logger().Errorf(format, args...) }

// SetOutput, SetLevel and SetFormatter forward to the underlying logrus
// logger, so a DefaultLog can be configured the same way the standalone
// logrus logger is.
func (d DefaultLog) SetOutput(w io.Writer)          { d.logger().SetOutput(w) }
func (d DefaultLog) SetLevel(level logrus.Level)    { d.logger().SetLevel(level) }
func (d DefaultLog) SetFormatter(f logrus.Formatter) { d.logger().SetFormatter(f) }

// New builds a DefaultLog around a fresh *logrus.Logger at the given
// level, for callers (cmd/ilprelay) that don't want to share the global
// logrus instance.
func New(level logrus.Level) DefaultLog {
	l := logrus.New()
	l.SetLevel(level)
	return DefaultLog{Logger: l}
}
