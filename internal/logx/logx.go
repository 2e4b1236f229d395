package logx

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/muesli/termenv"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// NewLogger returns a console logger on stderr, stdout is left for the programs' output
func NewLogger(level zerolog.Level) zerolog.Logger {
	return New(os.Stderr, level)
}

var callerOnce sync.Once

// zerolog.CallerMarshalFunc is global, it's only replaced by the first New
func setCallerFormat() {
	callerOnce.Do(func() {
		zerolog.CallerMarshalFunc = func(_ uintptr, file string, line int) string {
			// pad for alignment
			return fmt.Sprintf("%-20s", fmt.Sprintf("%s:%d", filepath.Base(file), line))
		}
	})
}

func New(w io.Writer, level zerolog.Level) zerolog.Logger {
	setCallerFormat()
	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
		NoColor:    termenv.NewOutput(w).Profile == termenv.Ascii,
	}
	return zerolog.New(output).Level(level).With().Timestamp().Caller().Logger()
}

// Level from a flag value, like "debug" or "warn"
func ParseLevel(s string) (zerolog.Level, error) {
	level, err := zerolog.ParseLevel(s)
	if err != nil {
		return zerolog.NoLevel, errors.Wrapf(err, "invalid log level %q", s)
	}
	return level, nil
}
