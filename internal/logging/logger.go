// Package logging configures zerolog for the CLI and the exporter.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Level   string `mapstructure:"level"`
	Debug   bool   `mapstructure:"debug"`
	Output  string `mapstructure:"output"`  // stdout, stderr
	Console bool   `mapstructure:"console"` // human readable instead of JSON lines
}

// New builds a logger from cfg without touching the global logger.
func New(cfg Config) (zerolog.Logger, error) {
	var output io.Writer = os.Stderr
	if cfg.Output == "stdout" {
		output = os.Stdout
	}
	if cfg.Console {
		output = zerolog.ConsoleWriter{Out: output, TimeFormat: time.Kitchen}
	}

	level := zerolog.InfoLevel
	if cfg.Debug {
		level = zerolog.DebugLevel
	} else if cfg.Level != "" {
		var err error

		level, err = zerolog.ParseLevel(cfg.Level)
		if err != nil {
			return zerolog.Nop(), err
		}
	}

	return zerolog.New(output).Level(level).With().Timestamp().Logger(), nil
}

// Init builds a logger and installs it as the zerolog global logger.
func Init(cfg Config) (zerolog.Logger, error) {
	logger, err := New(cfg)
	if err != nil {
		return logger, err
	}

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = logger

	return logger, nil
}
