// Package logging wraps logrus with the formatter used across gpubench.
package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

var defaultLog *logrus.Logger

func newLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)
	log.SetLevel(logrus.InfoLevel)
	log.SetFormatter(&logrus.TextFormatter{
		DisableColors:   false,
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   true,
	})
	return log
}

func init() {
	defaultLog = newLogger()
}

// SetDebug switches the default logger to DEBUG level.
func SetDebug() {
	defaultLog.SetLevel(logrus.DebugLevel)
}

// SetQuiet raises the level to ERROR so only failures reach stdout. Useful
// when the console is reserved for the results table.
func SetQuiet() {
	defaultLog.SetLevel(logrus.ErrorLevel)
}

// Debug - Debug message
func Debug(args ...interface{}) {
	defaultLog.Debug(args...)
}

// Debugf - Debug message
func Debugf(format string, args ...interface{}) {
	defaultLog.Debugf(format, args...)
}

// Info - Info message
func Info(args ...interface{}) {
	defaultLog.Info(args...)
}

// Infof - Info message
func Infof(format string, args ...interface{}) {
	defaultLog.Infof(format, args...)
}

// Warn - Warn message
func Warn(args ...interface{}) {
	defaultLog.Warn(args...)
}

// Warnf - Warn message
func Warnf(format string, args ...interface{}) {
	defaultLog.Warnf(format, args...)
}

// Error - Error message
func Error(args ...interface{}) {
	defaultLog.Error(args...)
}

// Errorf - Error message
func Errorf(format string, args ...interface{}) {
	defaultLog.Errorf(format, args...)
}
