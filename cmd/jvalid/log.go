package main

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// initLogger returns a logger writing to w in the format chosen by cfg.
// Diagnostics for each input are logged at info level, which is enabled only
// when cfg.Verbose is set.
func initLogger(app string, cfg config, w io.Writer) zerolog.Logger {
	out := w
	if cfg.LogFormat != "json" {
		out = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.RFC3339,
		}
	}
	level := zerolog.WarnLevel
	if cfg.Verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(out).Level(level).With().Timestamp().Str("app", app).Logger()
}
