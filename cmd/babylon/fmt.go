package main

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/signadot/babylon/encode"
	"github.com/signadot/babylon/format"
	"github.com/signadot/babylon/ir"

	"github.com/scott-cotton/cli"
)

func fmtDocs(cfg *FmtConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Fmt.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.Write && len(args) == 0 {
		return fmt.Errorf("%w: fmt -w requires files", cli.ErrUsage)
	}
	for _, file := range inputs(args) {
		doc, err := getDoc(cc, file, cfg.parseOpts()...)
		if err != nil {
			return fmt.Errorf("error processing %s: %w", file, err)
		}
		if !cfg.Write {
			opts := []encode.EncodeOption{
				encode.EncodeFormat(format.BabylonFormat),
				encode.EncodeWire(cfg.WireOut),
			}
			if cfg.useColor(cc.Out) {
				opts = append(opts, encode.EncodeColors(encode.NewColors()))
			}
			if err := encode.Encode(doc, cc.Out, opts...); err != nil {
				return err
			}
			continue
		}
		if err := splicedErr(doc, file); err != nil {
			return err
		}
		buf := bytes.NewBuffer(nil)
		if err := encode.Encode(doc, buf, encode.EncodeFormat(format.BabylonFormat), encode.EncodeWire(cfg.WireOut)); err != nil {
			return err
		}
		old, err := os.ReadFile(file)
		if err == nil && bytes.Equal(old, buf.Bytes()) {
			continue
		}
		if err := os.WriteFile(file, buf.Bytes(), 0644); err != nil {
			return err
		}
		theLog.Info("formatted", "file", file)
	}
	return nil
}

// splicedErr is the reason doc cannot be written back over file, or nil.
func splicedErr(doc *ir.Document, file string) error {
	switch {
	case len(doc.Includes) != 0:
		return fmt.Errorf("fmt -w would inline %s into %s", strings.Join(doc.Includes, ", "), file)
	case len(doc.Dropped) != 0:
		return fmt.Errorf("fmt -w would remove #%s from %s", doc.Dropped[0], file)
	}
	return nil
}
