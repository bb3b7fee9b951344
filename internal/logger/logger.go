// Package logger provides a configured zerolog logger.
package logger

import (
	"os"

	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog"
	zpkgerrors "github.com/rs/zerolog/pkgerrors"
)

// New returns a zerolog.Logger tagged with the service name. Call sites use
// .Stack() on error events to include stack traces.
func New(serviceName string) zerolog.Logger {
	// Wire zerolog to github.com/pkg/errors so stacks render even for plain
	// std errors when .Stack() is used.
	zerolog.ErrorStackMarshaler = func(err error) interface{} {
		type stackTracer interface{ StackTrace() pkgerrors.StackTrace }
		if _, ok := err.(stackTracer); !ok {
			err = pkgerrors.WithStack(err)
		}
		return zpkgerrors.MarshalStack(err)
	}

	lvl := zerolog.InfoLevel
	if parsed, err := zerolog.ParseLevel(os.Getenv("FILAMENT_LOG_LEVEL")); err == nil && parsed != zerolog.NoLevel {
		lvl = parsed
	}

	return zerolog.New(os.Stderr).Level(lvl).With().
		Str("service", serviceName).
		Timestamp().
		Logger()
}
