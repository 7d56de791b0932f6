package main

import (
	"fmt"

	"github.com/signadot/babylon/macro"

	"github.com/scott-cotton/cli"
)

func macros(cfg *MacrosConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Macros.Parse(cc, args)
	if err != nil {
		return err
	}
	var path string
	switch len(args) {
	case 0:
		path = cfg.fileConfig().Macros
		if path == "" {
			return fmt.Errorf("%w: no macro file given or configured", cli.ErrUsage)
		}
	case 1:
		path = args[0]
	default:
		return fmt.Errorf("%w: macros takes one file, got %v", cli.ErrUsage, args)
	}
	var opts []macro.ReadOption
	if cfg.Strict {
		opts = append(opts, macro.RejectDuplicates())
	}
	tbl, err := macro.Read(path, opts...)
	if err != nil {
		return err
	}
	for _, name := range tbl.Names() {
		def, _ := tbl.Get(name)
		fmt.Fprintf(cc.Out, "%s\t%s\t%d bytes\n", name, def.Pos(), len(def.Body))
		if cfg.Body && def.Body != "" {
			fmt.Fprint(cc.Out, def.Body)
		}
	}
	return nil
}
