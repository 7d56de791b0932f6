package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/scott-cotton/cli"
)

var (
	logLevel = &slog.LevelVar{}
	theLog   = newLog(os.Stderr)
)

// newLog returns a text logger on w at logLevel. Records carry no time
// and INFO records no level.
func newLog(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: logLevel,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			if a.Key == slog.LevelKey {
				if a.Value.String() == "INFO" {
					return slog.Attr{}
				}
			}
			return a
		},
	}))
}

// logOpt sets the level from a name such as debug, warn or error+2.
func (cfg *MainConfig) logOpt(_ *cli.Context, a string) (any, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(a)); err != nil {
		return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	cfg.LogLevel = &l
	return l, nil
}

// setupLog points theLog at the command's error output with the level of
// the -log option, else of the config file, else INFO.
func (cfg *MainConfig) setupLog(cc *cli.Context) {
	switch {
	case cfg.LogLevel != nil:
		logLevel.Set(*cfg.LogLevel)
	case cfg.fileConfig().LogLevel != nil:
		logLevel.Set(*cfg.fileConfig().LogLevel)
	default:
		logLevel.Set(slog.LevelInfo)
	}
	if cc.Err != nil {
		theLog = newLog(cc.Err)
	}
}
