package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/go-symcore/symcore/boolean"
	"github.com/go-symcore/symcore/flatten"
)

type BoolizeConfig struct {
	*RootConfig
	Cmd *cli.Command
}

func BoolizeCommand(root *RootConfig) *cli.Command {
	cfg := &BoolizeConfig{RootConfig: root}
	return cli.NewCommandAt(&cfg.Cmd, "boolize").
		WithSynopsis("boolize").
		WithDescription("flatten then booleanize the built-in demo model's define reference").
		WithRun(func(cc *cli.Context, args []string) error {
			return runBoolize(cfg, cc, args)
		})
}

func runBoolize(cfg *BoolizeConfig, cc *cli.Context, args []string) error {
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
	enc := boolean.NewEncoding(scn.pool, scn.table, false)
	b := boolean.New(scn.pool, scn.table, enc, nil)
	bexpr, err := b.Expr2Bexpr(flat, scn.context)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cc.Out, bexpr.String())
	return err
}
