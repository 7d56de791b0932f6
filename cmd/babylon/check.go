package main

import (
	"fmt"
	"runtime"

	"github.com/signadot/babylon/ir"
	"github.com/signadot/babylon/parse"

	"github.com/scott-cotton/cli"
	"golang.org/x/sync/errgroup"
)

func check(cfg *CheckConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Check.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: check requires at least one file", cli.ErrUsage)
	}
	docs := make([]*ir.Document, len(args))
	errs := make([]error, len(args))
	g := &errgroup.Group{}
	jobs := cfg.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	g.SetLimit(jobs)
	for i, file := range args {
		g.Go(func() error {
			docs[i], errs[i] = parse.ParseFile(file, cfg.parseOpts()...)
			return nil
		})
	}
	g.Wait()

	failed := 0
	for i, file := range args {
		if errs[i] != nil {
			failed++
			fmt.Fprintf(cc.Out, "%v\n", errs[i])
			theLog.Debug("check failed", "file", file, "kind", ir.KindOf(errs[i]).String())
			continue
		}
		if !cfg.Quiet {
			fmt.Fprintf(cc.Out, "%s: ok, %d nodes\n", file, docs[i].Root.Count()-1)
		}
	}
	if failed != 0 {
		theLog.Error("check", "failed", failed, "files", len(args))
		return cli.ExitCodeErr(1)
	}
	return nil
}
