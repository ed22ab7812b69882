package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/go-symcore/symcore/dimacs"
)

type SolveConfig struct {
	*RootConfig
	Cmd *cli.Command
}

func SolveCommand(root *RootConfig) *cli.Command {
	cfg := &SolveConfig{RootConfig: root}
	return cli.NewCommandAt(&cfg.Cmd, "solve").
		WithSynopsis("solve [-cnf-algo tseitin|sheridan] [-polarity -1|0|1] [file]").
		WithDescription("convert an RBC s-expression to CNF and decide satisfiability with gini").
		WithRun(func(cc *cli.Context, args []string) error {
			return runSolve(cfg, cc, args)
		})
}

func runSolve(cfg *SolveConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Cmd.Parse(cc, args)
	if err != nil {
		return err
	}
	res, _, err := convertFromInput(cfg.RootConfig, args)
	if err != nil {
		return err
	}
	sat, err := dimacs.Solve(res)
	if err != nil {
		return err
	}
	if sat {
		_, err = fmt.Fprintln(cc.Out, "SAT")
	} else {
		_, err = fmt.Fprintln(cc.Out, "UNSAT")
	}
	return err
}
