// Package config defines the process-wide options every symcore
// command reads: diagnostic verbosity, which CNF conversion algorithm
// to run, whether the RBC inliner caches results across calls, and
// the name of the symbol layer used to hold fresh determinization
// bits.
//
// Grounded on go-tony/cmd/o/configs.go's struct-based option config:
// a plain Go struct with `cli:"..."` tags doubling as both the CLI
// flag definitions (via github.com/scott-cotton/cli's StructOpts) and
// a YAML-loadable file (github.com/goccy/go-yaml), rather than two
// separate schemas kept in sync by hand.
package config
