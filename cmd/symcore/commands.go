package main

import (
	"fmt"

	"github.com/scott-cotton/cli"
)

// MainCommand wires the root "symcore" command and its pipeline-stage
// subcommands, modeled on go-tony/cmd/o/commands.go's
// MainCommand/sub-command structure: one root config struct, its
// options derived via cli.StructOpts, subs registered with WithSubs.
func MainCommand() *cli.Command {
	cfg := &RootConfig{}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Main, "symcore").
		WithSynopsis("symcore [opts] command [opts]").
		WithDescription("symcore exercises the RBC/CNF symbolic-model pipeline from the command line.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return rootMain(cfg, cc, args)
		}).
		WithSubs(
			SexprCommand(cfg),
			CnfCommand(cfg),
			SolveCommand(cfg),
			FlattenCommand(cfg),
			BoolizeCommand(cfg))
}

func rootMain(cfg *RootConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	if _, err := cfg.resolve(); err != nil {
		return err
	}
	maybeStartGops(cfg.Gops, cc.Out)
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	return sub.Run(cc, args[1:])
}
