package logging

import (
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// Interface is the minimal logging surface the worker relies on.
type Interface interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
	Warnf(format string, args ...interface{})
}

var (
	root zerolog.Logger
	once sync.Once
)

func base() zerolog.Logger {
	once.Do(func() {
		level := zerolog.InfoLevel
		if parsed, err := zerolog.ParseLevel(strings.ToLower(os.Getenv("LOG_LEVEL"))); err == nil && parsed != zerolog.NoLevel {
			level = parsed
		}
		root = zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()
	})
	return root
}

// Logger returns the process-wide logger.
func Logger() Interface {
	return &adapter{log: base()}
}

// Component returns a logger tagged with a component name, for telling the
// queue, processor and parser apart in mixed output.
func Component(name string) Interface {
	return &adapter{log: base().With().Str("component", name).Logger()}
}

type adapter struct {
	log zerolog.Logger
}

func (a *adapter) Infof(format string, args ...interface{}) {
	a.log.Info().Msgf(format, args...)
}

func (a *adapter) Errorf(format string, args ...interface{}) {
	a.log.Error().Msgf(format, args...)
}

func (a *adapter) Debugf(format string, args ...interface{}) {
	a.log.Debug().Msgf(format, args...)
}

func (a *adapter) Warnf(format string, args ...interface{}) {
	a.log.Warn().Msgf(format, args...)
}
