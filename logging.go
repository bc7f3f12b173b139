package main

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// NewLogger builds the process logger. An unknown level falls back to info.
func NewLogger(level string, json bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	if json {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)
	return logger
}

// LoggerFromEnv reads LOG_LEVEL and LOG_FORMAT (text or json)
func LoggerFromEnv() *logrus.Logger {
	format := strings.ToLower(getEnv("LOG_FORMAT", "text"))
	return NewLogger(getEnv("LOG_LEVEL", "info"), format == "json")
}

