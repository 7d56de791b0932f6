package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, []*cli.Opt{
		&cli.Opt{
			Name:        "o",
			Description: "output file (default stdout)",
			Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
		},
		&cli.Opt{
			Name:        "O",
			Aliases:     []string{"ofmt"},
			Description: "output format: debug/d, babylon/b, yaml/y, json/j",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.OutFormat), "(format)"),
		},
		&cli.Opt{
			Name:        "I",
			Description: "add an include directory",
			Type:        cli.NamedFuncOpt(cfg.includeOpt, "(dir)"),
		},
		&cli.Opt{
			Name:        "unknown",
			Description: "unknown directive policy: reject, warn or drop",
			Type:        cli.NamedFuncOpt(cfg.unknownOpt, "(policy)"),
		},
		&cli.Opt{
			Name:        "log",
			Description: "log level: debug, info, warn or error",
			Type:        cli.NamedFuncOpt(cfg.logOpt, "(level)"),
		}}...)

	return cli.NewCommandAt(&cfg.Main, "babylon").
		WithSynopsis("babylon [opts] command [opts]").
		WithDescription("babylon parses, checks, expands and formats bracket tagged documents.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return babylonMain(cfg, cc, args)
		}).
		WithSubs(
			DumpCommand(cfg),
			CheckCommand(cfg),
			MacrosCommand(cfg),
			ExpandCommand(cfg),
			DiffCommand(cfg),
			FmtCommand(cfg))
}

func DumpCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DumpConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("dump").
		WithAliases("d").
		WithOpts(opts...).
		WithSynopsis("dump [files]").
		WithDescription("parse documents and write them in the output format, the debug dump by default").
		WithRun(func(cc *cli.Context, args []string) error {
			return dump(cfg, cc, args)
		})
	cfg.Dump = cmd
	return cmd
}

func CheckCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &CheckConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("check").
		WithAliases("c").
		WithOpts(opts...).
		WithSynopsis("check [-q] [-j n] files").
		WithDescription("parse documents concurrently and report errors").
		WithRun(func(cc *cli.Context, args []string) error {
			return check(cfg, cc, args)
		})
	cfg.Check = cmd
	return cmd
}

func MacrosCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &MacrosConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("macros").
		WithAliases("m").
		WithOpts(opts...).
		WithSynopsis("macros [-body] [-strict] [file]").
		WithDescription("list the definitions of a macro file").
		WithRun(func(cc *cli.Context, args []string) error {
			return macros(cfg, cc, args)
		})
	cfg.Macros = cmd
	return cmd
}

func ExpandCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ExpandConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("expand").
		WithAliases("x").
		WithOpts(opts...).
		WithSynopsis("expand -m macros [files]").
		WithDescription("expand macro references in documents").
		WithRun(func(cc *cli.Context, args []string) error {
			return expand(cfg, cc, args)
		})
	cfg.Expand = cmd
	return cmd
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("diff").
		WithOpts(opts...).
		WithSynopsis("diff [-r] [-stat] a b").
		WithDescription("show the structural differences between two documents").
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
	cfg.Diff = cmd
	return cmd
}

func FmtCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &FmtConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("fmt").
		WithAliases("f").
		WithOpts(opts...).
		WithSynopsis("fmt [-w] [files]").
		WithDescription("rewrite documents in canonical form").
		WithRun(func(cc *cli.Context, args []string) error {
			return fmtDocs(cfg, cc, args)
		})
	cfg.Fmt = cmd
	return cmd
}
