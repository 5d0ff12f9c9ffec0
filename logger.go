package main

import (
	"io"

	"github.com/9seconds/iplooker/lookerlib"
	"github.com/rs/zerolog"
)

type logger struct {
	queryLog  zerolog.Logger
	lookupLog zerolog.Logger
}

func (l *logger) QueryRetry(source string, attempt, maxAttempts int, err error) {
	evt := l.queryLog.Warn().
		Str("source", source).
		Int("attempt", attempt).
		Int("max_attempts", maxAttempts)

	if lookerlib.IsTimeout(err) {
		evt.Msgf("Timeout (%d/%d)", attempt, maxAttempts)

		return
	}

	evt.Err(err).Msg("Attempt has failed")
}

func (l *logger) QueryError(source string, err error) {
	l.queryLog.Warn().Str("source", source).Err(err).Msg("Failed to get data")
}

func (l *logger) LookupError(ip, source string, err error) {
	l.lookupLog.Debug().Str("source", source).Str("ip", ip).Err(err).Msg("Source has no data")
}

func newLogger(w io.Writer, level zerolog.Level, noColor bool) lookerlib.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	out := zerolog.ConsoleWriter{
		Out:     w,
		NoColor: noColor,
	}
	root := zerolog.New(out).Level(level)

	return &logger{
		queryLog:  root.With().Timestamp().Str("event_name", "query").Logger(),
		lookupLog: root.With().Timestamp().Str("event_name", "lookup").Logger(),
	}
}
