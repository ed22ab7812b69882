package main

import (
	"fmt"
	"io"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/go-symcore/symcore/rbc"
	"github.com/go-symcore/symcore/sexpr"
)

type SexprConfig struct {
	*RootConfig
	Cmd *cli.Command
}

func SexprCommand(root *RootConfig) *cli.Command {
	cfg := &SexprConfig{RootConfig: root}
	return cli.NewCommandAt(&cfg.Cmd, "sexpr").
		WithSynopsis("sexpr [file]").
		WithDescription("read an RBC s-expression and print its canonical form").
		WithRun(func(cc *cli.Context, args []string) error {
			return runSexpr(cfg, cc, args)
		})
}

func runSexpr(cfg *SexprConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Cmd.Parse(cc, args)
	if err != nil {
		return err
	}
	text, err := readInput(args)
	if err != nil {
		return err
	}
	m := rbc.NewManager()
	f, err := sexpr.ReadSexpr(m, text)
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	_, err = fmt.Fprintln(cc.Out, sexpr.Sexpr(m, f))
	return err
}

// readInput reads args[0] as a file path, or stdin when no argument
// is given or the argument is "-" (go-tony/cmd/o/list.go's convention
// for the same choice).
func readInput(args []string) (string, error) {
	var r io.Reader = os.Stdin
	if len(args) > 0 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return "", fmt.Errorf("opening %s: %w", args[0], err)
		}
		defer f.Close()
		r = f
	}
	buf, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(buf), nil
}
