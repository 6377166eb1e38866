package logger

import (
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	log  *logrus.Logger
	once sync.Once
)

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.JSONFormatter{})
	l.SetOutput(os.Stdout)
	l.SetLevel(logrus.InfoLevel)
	return l
}

// Init configures the process logger. Unknown levels fall back to info.
func Init(level string) {
	l := GetLogger()
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		l.WithField("level", level).Warn("Unknown log level, using info")
		parsed = logrus.InfoLevel
	}
	l.SetLevel(parsed)
}

func GetLogger() *logrus.Logger {
	once.Do(func() {
		log = newLogger()
	})
	return log
}

func LogError(moduleName, funcName, context string, data any, err error) {
	fields := logrus.Fields{
		"module":   moduleName,
		"funcName": funcName,
		"context":  context,
	}
	if data != nil {
		fields["data"] = data
	}
	GetLogger().WithFields(fields).Error(err.Error())
}
