// Package logging configures the application logger. The UI owns the
// terminal, so everything logs to a rotated file under the config
// directory.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/lwang/apiforge/internal/model"
)

// New builds a file-backed logrus logger per the given config.
func New(cfg model.LoggingConfig) (*logrus.Logger, error) {
	dir := filepath.Join(model.ConfigDir(), "logs")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("creating log directory %s: %w", dir, err)
	}

	log := logrus.New()
	log.SetOutput(&lumberjack.Logger{
		Filename:   filepath.Join(dir, "apiforge.log"),
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     28,
		Compress:   true,
	})
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	return log, nil
}

// Discard returns a logger that drops everything, for tests.
func Discard() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
