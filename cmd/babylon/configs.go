package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"

	"github.com/signadot/babylon/encode"
	"github.com/signadot/babylon/format"
	"github.com/signadot/babylon/macro"
	"github.com/signadot/babylon/parse"

	"github.com/scott-cotton/cli"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	Color      bool   `cli:"name=color desc='encode with color'"`
	WireOut    bool   `cli:"name=wire desc='output in compact format'"`
	ConfigPath string `cli:"name=config desc='toml configuration file'"`
	MaxDepth   int    `cli:"name=maxDepth desc='maximum nesting of trees and includes'"`
	MaxNodes   int    `cli:"name=maxNodes desc='maximum number of nodes in a document'"`

	IncludeDirs []string
	Unknown     *parse.UnknownPolicy
	OutFormat   *format.Format
	LogLevel    *slog.Level

	File *FileConfig

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc(fps ...**format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		for _, fp := range fps {
			*fp = &f
		}
		return f, nil
	})
}

func (cfg *MainConfig) includeOpt(_ *cli.Context, a string) (any, error) {
	cfg.IncludeDirs = append(cfg.IncludeDirs, a)
	return a, nil
}

func (cfg *MainConfig) unknownOpt(_ *cli.Context, a string) (any, error) {
	var p parse.UnknownPolicy
	if err := p.UnmarshalText([]byte(a)); err != nil {
		return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	cfg.Unknown = &p
	return p, nil
}

func (cfg *MainConfig) fileConfig() *FileConfig {
	if cfg.File == nil {
		return &FileConfig{}
	}
	return cfg.File
}

func (cfg *MainConfig) parseOpts() []parse.ParseOption {
	fc := cfg.fileConfig()
	res := []parse.ParseOption{parse.ParseLogger(theLog)}
	dirs := append(slices.Clone(cfg.IncludeDirs), fc.IncludeDirs...)
	if len(dirs) != 0 {
		res = append(res, parse.IncludeDirs(dirs...))
	}
	switch {
	case cfg.MaxDepth != 0:
		res = append(res, parse.MaxDepth(cfg.MaxDepth))
	case fc.MaxDepth != 0:
		res = append(res, parse.MaxDepth(fc.MaxDepth))
	}
	switch {
	case cfg.MaxNodes != 0:
		res = append(res, parse.MaxNodes(cfg.MaxNodes))
	case fc.MaxNodes != 0:
		res = append(res, parse.MaxNodes(fc.MaxNodes))
	}
	switch {
	case cfg.Unknown != nil:
		res = append(res, parse.UnknownDirectives(*cfg.Unknown))
	case fc.Unknown != nil:
		res = append(res, parse.UnknownDirectives(*fc.Unknown))
	}
	return res
}

func (cfg *MainConfig) expandOpts() []macro.ExpandOption {
	res := []macro.ExpandOption{macro.ExpandParseOptions(cfg.parseOpts()...)}
	if n := cfg.MaxNodes; n != 0 {
		res = append(res, macro.ExpandMaxNodes(n))
	} else if n := cfg.fileConfig().MaxNodes; n != 0 {
		res = append(res, macro.ExpandMaxNodes(n))
	}
	return res
}

func (cfg *MainConfig) outFormat(def format.Format) format.Format {
	if cfg.OutFormat != nil {
		return *cfg.OutFormat
	}
	if f := cfg.fileConfig().Format; f != nil {
		return *f
	}
	return def
}

func (cfg *MainConfig) encOpts(w io.Writer, def format.Format) []encode.EncodeOption {
	res := []encode.EncodeOption{
		encode.EncodeFormat(cfg.outFormat(def)),
		encode.EncodeWire(cfg.WireOut),
	}
	if cfg.useColor(w) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

// useColor decides coloring of output to w: the -color option if given,
// then the config file, then whether w is a terminal. It also sets
// color.NoColor to match.
func (cfg *MainConfig) useColor(w io.Writer) bool {
	on := cfg.colorSetting(w)
	color.NoColor = !on
	return on
}

func (cfg *MainConfig) colorSetting(w io.Writer) bool {
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		if opt.Value != nil {
			return cfg.Color
		}
		break
	}
	if c := cfg.fileConfig().Color; c != nil {
		return *c
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

type DumpConfig struct {
	*MainConfig
	NoPos bool   `cli:"name=nopos desc='omit node positions (debug, yaml and json)'"`
	Path  string `cli:"name=path desc='only dump the nodes at path, such as /0:page/*'"`

	Dump *cli.Command
}

type CheckConfig struct {
	*MainConfig
	Quiet bool `cli:"name=q desc='only report failures'"`
	Jobs  int  `cli:"name=j desc='number of files parsed at once'"`

	Check *cli.Command
}

type MacrosConfig struct {
	*MainConfig
	Body   bool `cli:"name=body desc='print macro bodies'"`
	Strict bool `cli:"name=strict desc='fail on repeated macro names'"`

	Macros *cli.Command
}

type ExpandConfig struct {
	*MainConfig
	MacroFile string `cli:"name=m aliases=macros desc='macro definition file'"`

	Expand *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Reverse bool `cli:"name=r desc='reverse the diff'"`
	Stat    bool `cli:"name=stat desc='print only counts of inserted and deleted nodes'"`

	Diff *cli.Command
}

type FmtConfig struct {
	*MainConfig
	Write bool `cli:"name=w desc='write result to source files instead of output'"`

	Fmt *cli.Command
}
