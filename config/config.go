package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/go-symcore/symcore/cnf"
	"github.com/go-symcore/symcore/diagnostic"
)

// Config is the set of options threaded through every symcore
// pipeline stage. A zero Config is not the same as Defaults: its
// Verbosity is the zero value, VerbosityQuiet, while Defaults selects
// VerbosityNormal.
type Config struct {
	Verbosity diagnostic.Verbosity `yaml:"verbosity" cli:"name=v aliases=verbosity desc='quiet|normal|verbose'"`

	// CnfAlgorithm selects Tseitin or Sheridan/polarity-compact CNF
	// conversion (spec.md §4.I.2's "the choice is a configuration
	// knob").
	CnfAlgorithm cnf.Algorithm `yaml:"cnfAlgorithm" cli:"name=cnf-algo desc='tseitin|sheridan'"`

	// InlineCache turns on cross-call RBC inlining result reuse. The
	// source this is distilled from hard-codes this off ("too
	// expensive for incremental SBMC"); spec.md asks for it to be a
	// knob instead of a hard-coded decision.
	InlineCache bool `yaml:"inlineCache" cli:"name=inline-cache desc='reuse inlining results across calls'"`

	// DeterminizationLayer names the symtab.Layer fresh determinization
	// bits are declared into when expr2bexpr booleanizes a
	// non-deterministic construct (spec.md §4.G). Empty disables
	// booleanizing non-deterministic constructs entirely, matching
	// expr2bexpr's det_layer_opt-absent behavior.
	DeterminizationLayer string `yaml:"determinizationLayer" cli:"name=det-layer desc='symbol layer for determinization bits'"`
}

// Defaults returns the configuration symcore runs with absent any
// file or flags: normal verbosity, Tseitin conversion (the simpler,
// always-correct algorithm), inlining cache off (matching the
// source's hard-coded default), and no determinization layer (so
// booleanizing a non-deterministic construct is an error until a
// caller opts in).
func Defaults() Config {
	return Config{
		Verbosity:    diagnostic.VerbosityNormal,
		CnfAlgorithm: cnf.AlgorithmTseitin,
		InlineCache:  false,
	}
}

// Load reads a YAML config file at path, starting from Defaults and
// overlaying whichever fields the file sets (goccy/go-yaml decodes
// into the zero value of fields it doesn't mention, so Load seeds the
// struct with Defaults before unmarshaling over it).
func Load(path string) (Config, error) {
	cfg := Defaults()
	buf, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(buf, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path as YAML.
func Save(path string, cfg Config) error {
	buf, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: encoding: %w", err)
	}
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		return fmt.Errorf("config: writing %s: %w", path, err)
	}
	return nil
}
