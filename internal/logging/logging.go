// Package logging configures the process-wide logrus logger.
package logging

import (
	"io"
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/born-ml/ntk/internal/config"
)

// Configure applies cfg to the standard logger and writes to stdout.
func Configure(cfg config.LoggingConfig) error {
	return ConfigureLogger(log.StandardLogger(), cfg, os.Stdout)
}

// ConfigureLogger applies cfg to logger and directs its output to out.
func ConfigureLogger(logger *log.Logger, cfg config.LoggingConfig, out io.Writer) error {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		return errors.Wrap(err, "configuring logging")
	}

	switch cfg.Format {
	case "", "text":
		logger.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	case "json":
		logger.SetFormatter(&log.JSONFormatter{})
	default:
		return errors.Errorf("configuring logging: unknown format %q", cfg.Format)
	}

	logger.SetLevel(level)
	logger.SetOutput(out)
	return nil
}
