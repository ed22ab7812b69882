package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/go-symcore/symcore/cnf"
	"github.com/go-symcore/symcore/dimacs"
	"github.com/go-symcore/symcore/rbc"
	"github.com/go-symcore/symcore/sexpr"
)

type CnfConfig struct {
	*RootConfig
	Cmd *cli.Command
}

func CnfCommand(root *RootConfig) *cli.Command {
	cfg := &CnfConfig{RootConfig: root}
	return cli.NewCommandAt(&cfg.Cmd, "cnf").
		WithSynopsis("cnf [-cnf-algo tseitin|sheridan] [-polarity -1|0|1] [file]").
		WithDescription("convert an RBC s-expression to DIMACS CNF").
		WithRun(func(cc *cli.Context, args []string) error {
			return runCnf(cfg, cc, args)
		})
}

func runCnf(cfg *CnfConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Cmd.Parse(cc, args)
	if err != nil {
		return err
	}
	res, maxVar, err := convertFromInput(cfg.RootConfig, args)
	if err != nil {
		return err
	}
	return dimacs.WriteDimacs(cc.Out, res, maxVar)
}

// convertFromInput reads an RBC s-expression from args (file or
// stdin), converts it with the resolved config's algorithm, and
// returns the CNF result together with the manager's MaxCnfVariable.
func convertFromInput(root *RootConfig, args []string) (cnf.Result, int, error) {
	rootCfg, err := root.resolve()
	if err != nil {
		return cnf.Result{}, 0, err
	}
	text, err := readInput(args)
	if err != nil {
		return cnf.Result{}, 0, err
	}
	m := rbc.NewManager()
	f, err := sexpr.ReadSexpr(m, text)
	if err != nil {
		return cnf.Result{}, 0, fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	m.PrepareCnfConversion()
	res := cnf.Convert(m, f, root.Polarity, rootCfg.CnfAlgorithm)
	return res, m.MaxCnfVariable(), nil
}
