// Package logger configures the global zerolog logger from command line options.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger is a go-flags option group shared by all commands.
type Logger struct {
	Level   string `long:"log-level"    env:"LOG_LEVEL"    description:"Log level" choice:"trace" choice:"debug" choice:"info" choice:"warn" choice:"error" choice:"fatal" default:"info"`
	Format  string `long:"log-format"   env:"LOG_FORMAT"   description:"Log output format" choice:"text" choice:"json" default:"text"`
	NoColor bool   `long:"log-no-color" env:"LOG_NO_COLOR" description:"Disable colors in text output"`
}

// Setup applies the options to the global logger, writing to stderr.
func (l *Logger) Setup() {
	if err := l.setup(os.Stderr); err != nil {
		log.Warn().Err(err).Str("level", l.Level).Msg("Unknown log level, using info")
	}
}

func (l *Logger) setup(w io.Writer) error {
	var out io.Writer = w
	if !strings.EqualFold(l.Format, "json") {
		out = zerolog.ConsoleWriter{
			Out:        w,
			NoColor:    l.NoColor,
			TimeFormat: time.DateTime,
		}
	}
	log.Logger = zerolog.New(out).With().Timestamp().Logger()

	level := zerolog.InfoLevel
	var err error
	if l.Level != "" {
		parsed, perr := zerolog.ParseLevel(strings.ToLower(l.Level))
		if perr != nil {
			err = errors.Wrapf(perr, "parse log level %q", l.Level)
		} else {
			level = parsed
		}
	}
	zerolog.SetGlobalLevel(level)

	return err
}
