package main

import (
	"fmt"

	"github.com/signadot/babylon/libdiff"

	"github.com/scott-cotton/cli"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	a, err := getDoc(cc, args[0], cfg.parseOpts()...)
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[0], err)
	}
	b, err := getDoc(cc, args[1], cfg.parseOpts()...)
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[1], err)
	}
	changes := libdiff.Diff(a, b)
	if len(changes) == 0 {
		return nil
	}
	if cfg.Reverse {
		changes = libdiff.Reverse(changes)
	}
	if cfg.Stat {
		ins, del := libdiff.Count(changes)
		fmt.Fprintf(cc.Out, "%d changes, %d nodes inserted, %d deleted\n", len(changes), ins, del)
	} else if err := libdiff.Write(cc.Out, changes, libdiff.WriteColor(cfg.useColor(cc.Out))); err != nil {
		return err
	}
	return cli.ExitCodeErr(1)
}
