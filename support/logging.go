package support

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

func NewLogger(cfg LogConfig) (*zerolog.Logger, error) {
	level := zerolog.InfoLevel
	if cfg.Level != "" {
		parsed, err := zerolog.ParseLevel(cfg.Level)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid log level %q", cfg.Level)
		}
		level = parsed
	}

	var logger zerolog.Logger
	if cfg.Pretty {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	} else {
		logger = zerolog.New(os.Stderr)
	}

	logger = logger.Level(level).With().Timestamp().Logger()
	return &logger, nil
}
