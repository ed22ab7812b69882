package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/go-symcore/symcore/flatten"
)

type FlattenConfig struct {
	*RootConfig
	Cmd *cli.Command
}

func FlattenCommand(root *RootConfig) *cli.Command {
	cfg := &FlattenConfig{RootConfig: root}
	return cli.NewCommandAt(&cfg.Cmd, "flatten").
		WithSynopsis("flatten").
		WithDescription("flatten the built-in demo model's define reference and print the result").
		WithRun(func(cc *cli.Context, args []string) error {
			return runFlatten(cfg, cc, args)
		})
}

func runFlatten(cfg *FlattenConfig, cc *cli.Context, args []string) error {
	if _, err := cfg.Cmd.Parse(cc, args); err != nil {
		return err
	}
	scn, err := buildDemoScenario()
	if err != nil {
		return err
	}
	f := flatten.New(scn.pool, scn.table, nil)
	flat, err := f.Flatten(scn.expr, scn.context, flatten.ExpandDefines)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cc.Out, flat.String())
	return err
}
