package main

import (
	"fmt"
	"io"

	"github.com/signadot/babylon/encode"
	"github.com/signadot/babylon/format"

	"github.com/scott-cotton/cli"
)

func dump(cfg *DumpConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Dump.Parse(cc, args)
	if err != nil {
		return err
	}
	files := inputs(args)
	for i, file := range files {
		if err := dumpFile(cfg, cc, cc.Out, file); err != nil {
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

func dumpFile(cfg *DumpConfig, cc *cli.Context, w io.Writer, file string) error {
	doc, err := getDoc(cc, file, cfg.parseOpts()...)
	if err != nil {
		return fmt.Errorf("error processing %s: %w", file, err)
	}
	opts := append(cfg.encOpts(w, format.DebugFormat), encode.EncodePositions(!cfg.NoPos))
	if cfg.Path == "" {
		if err := encode.Encode(doc, w, opts...); err != nil {
			return fmt.Errorf("error encoding %s: %w", file, err)
		}
		return nil
	}
	nodes, err := doc.Root.ListPath(nil, cfg.Path)
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	for _, n := range nodes {
		if err := encode.EncodeNode(n, w, opts...); err != nil {
			return fmt.Errorf("error encoding %s: %w", file, err)
		}
	}
	return nil
}
