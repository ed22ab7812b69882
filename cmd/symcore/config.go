package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/go-symcore/symcore/cnf"
	"github.com/go-symcore/symcore/config"
	"github.com/go-symcore/symcore/diagnostic"
)

// RootConfig holds the options every subcommand shares, following
// go-tony/cmd/o/configs.go's MainConfig pattern: one struct embedded
// by every subcommand's own config, with a back-pointer to the root
// *cli.Command for option introspection (configs.go's parseOpts/
// encOpts look up `cfg.Main.Opts` the same way).
type RootConfig struct {
	ConfigFile string `cli:"name=config desc='YAML config file (see config.Config)'"`
	Verbose    bool   `cli:"name=verbose aliases=v desc='verbose diagnostics'"`
	Quiet      bool   `cli:"name=quiet aliases=q desc='errors only'"`
	CnfAlgo    string `cli:"name=cnf-algo desc='tseitin|sheridan'"`
	Polarity   int    `cli:"name=polarity desc='sheridan polarity hint: -1, 0, or 1'"`
	Gops       bool   `cli:"name=gops desc='start a gops diagnostic agent'"`

	cfg config.Config

	Main *cli.Command
}

// resolve loads cfg.ConfigFile (if set) over config.Defaults, then
// overlays -verbose, -quiet and a non-empty -cnf-algo, and returns the
// effective config.Config. An empty -cnf-algo keeps the algorithm from
// the file or the defaults.
func (cfg *RootConfig) resolve() (config.Config, error) {
	base := config.Defaults()
	if cfg.ConfigFile != "" {
		loaded, err := config.Load(cfg.ConfigFile)
		if err != nil {
			return config.Config{}, err
		}
		base = loaded
	}
	if cfg.Verbose {
		base.Verbosity = diagnostic.VerbosityVerbose
	}
	if cfg.Quiet {
		base.Verbosity = diagnostic.VerbosityQuiet
	}
	switch cfg.CnfAlgo {
	case "":
	case "tseitin":
		base.CnfAlgorithm = cnf.AlgorithmTseitin
	case "sheridan":
		base.CnfAlgorithm = cnf.AlgorithmSheridan
	default:
		return config.Config{}, fmt.Errorf("%w: unknown -cnf-algo %q (want tseitin|sheridan)", cli.ErrUsage, cfg.CnfAlgo)
	}
	cfg.cfg = base
	return base, nil
}
