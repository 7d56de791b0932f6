package main

import (
	"fmt"
	"io"

	"github.com/signadot/babylon/encode"
	"github.com/signadot/babylon/format"
	"github.com/signadot/babylon/macro"

	"github.com/scott-cotton/cli"
)

func expand(cfg *ExpandConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Expand.Parse(cc, args)
	if err != nil {
		return err
	}
	path := cfg.MacroFile
	if path == "" {
		path = cfg.fileConfig().Macros
	}
	if path == "" {
		return fmt.Errorf("%w: expand requires -m or a configured macro file", cli.ErrUsage)
	}
	tbl, err := macro.Read(path)
	if err != nil {
		return err
	}
	theLog.Debug("read macros", "file", path, "count", tbl.Len())
	files := inputs(args)
	for i, file := range files {
		doc, err := getDoc(cc, file, cfg.parseOpts()...)
		if err != nil {
			return fmt.Errorf("error processing %s: %w", file, err)
		}
		res, err := macro.Expand(doc, tbl, cfg.expandOpts()...)
		if err != nil {
			return fmt.Errorf("error expanding %s: %w", file, err)
		}
		if err := encode.Encode(res, cc.Out, cfg.encOpts(cc.Out, format.BabylonFormat)...); err != nil {
			return err
		}
		if i < len(files)-1 {
			if _, err := io.WriteString(cc.Out, "\n"); err != nil {
				return err
			}
		}
	}
	return nil
}
