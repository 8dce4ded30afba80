package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/rustyeddy/dayreplay/config"
)

// New builds a logger from cfg. Unknown levels fall back to info.
func New(cfg config.LoggingConfig) (*logrus.Logger, error) {
	logger := logrus.New()

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if cfg.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339,
		})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339,
		})
	}

	var out io.Writer
	switch cfg.Output {
	case "", "stderr":
		out = os.Stderr
	case "file":
		w, err := fileWriter(cfg)
		if err != nil {
			return nil, err
		}
		out = w
	case "both":
		w, err := fileWriter(cfg)
		if err != nil {
			return nil, err
		}
		out = io.MultiWriter(os.Stderr, w)
	default:
		return nil, fmt.Errorf("unknown log output %q", cfg.Output)
	}
	logger.SetOutput(out)

	return logger, nil
}

func fileWriter(cfg config.LoggingConfig) (io.Writer, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	return &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB, // megabytes, 0 means lumberjack's default
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}, nil
}

// Discard returns a logger that drops everything. Packages use it when the
// caller supplies none.
func Discard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Or returns l, or a discarding logger when l is nil.
func Or(l logrus.FieldLogger) logrus.FieldLogger {
	if l == nil {
		return Discard()
	}
	return l
}
