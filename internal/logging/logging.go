package logging

import (
	"io"
	"os"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/zerologr"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// New returns a logger writing to w. Errors only by default, info with
// verbose, and V(1) messages with debug. Terminals get the console format,
// anything else gets JSON lines.
func New(w io.Writer, verbose, debug bool) logr.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs
	zerologr.NameFieldName = "logger"
	zerologr.NameSeparator = "/"
	zerologr.SetMaxV(1)

	zl := zerolog.New(w)
	if isTerminal(w) {
		zl = zl.Output(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339})
	}

	level := zerolog.ErrorLevel
	switch {
	case debug:
		level = zerolog.DebugLevel
	case verbose:
		level = zerolog.InfoLevel
	}
	zl = zl.Level(level).With().Timestamp().Logger()
	return zerologr.New(&zl)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
