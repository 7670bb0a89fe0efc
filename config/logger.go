package config

import (
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger builds the shared logrus instance. Output is JSON on stdout so
// log aggregation can parse it without extra configuration.
func NewLogger(level string) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)

	return log
}
