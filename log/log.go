package log

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

type Fields = logrus.Fields

type Entry = logrus.Entry

func init() {
	// Log as JSON instead of the default ASCII formatter.
	//logger.SetFormatter(&logrus.JSONFormatter{})

	logger.SetOutput(os.Stdout)
}

var logger *logrus.Logger = logrus.New()

func Writer() io.Writer {
	return logger.Writer()
}

func New() *logrus.Logger {
	return logger
}

// SetLevel accepts logrus level names ("debug", "info", "warn", ...).
func SetLevel(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	logger.SetLevel(lvl)
	return nil
}

func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}

func WithFields(fields Fields) *logrus.Entry {
	return logger.WithFields(fields)
}

func WithError(err error) *logrus.Entry {
	return logger.WithError(err)
}

func Debug(args ...interface{}) {
	logger.Debug(args...)
}

func Debugf(format string, args ...interface{}) {
	logger.Debugf(format, args...)
}

func Infof(format string, args ...interface{}) {
	logger.Infof(format, args...)
}

func Warnf(format string, args ...interface{}) {
	logger.Warnf(format, args...)
}

func Errorf(format string, args ...interface{}) {
	logger.Errorf(format, args...)
}

func Fatalf(format string, args ...interface{}) {
	logger.Fatalf(format, args...)
}

func Info(args ...interface{}) {
	logger.Info(args...)
}

func Print(args ...interface{}) {
	logger.Print(args...)
}

func Warn(args ...interface{}) {
	logger.Warn(args...)
}

func Error(args ...interface{}) {
	logger.Error(args...)
}

func Fatal(args ...interface{}) {
	logger.Fatal(args...)
}
