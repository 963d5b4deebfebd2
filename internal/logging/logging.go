// Package logging builds the console logger used by the rawpb command.
package logging

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

const (
	EnvLogLevel   = "RAWPB_LOG_LEVEL"
	EnvLogNoColor = "RAWPB_LOG_NOCOLOR"
)

// New builds a console logger writing to w. The level argument is used
// unless RAWPB_LOG_LEVEL is set; unknown levels fall back to warn.
func New(w io.Writer, level string) zerolog.Logger {
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		level = v
	}

	noColor := false
	if v, err := strconv.ParseBool(os.Getenv(EnvLogNoColor)); err == nil {
		noColor = v
	}

	writer := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "15:04:05",
		NoColor:    noColor,
	}

	return zerolog.New(writer).
		Level(ParseLevel(level)).
		With().
		Timestamp().
		Logger()
}

// ParseLevel maps a level name to a zerolog level, defaulting to warn.
func ParseLevel(level string) zerolog.Level {
	level = strings.ToLower(strings.TrimSpace(level))
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		return zerolog.WarnLevel
	}
	return lvl
}
