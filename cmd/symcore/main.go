// Command symcore is a thin driver exercising the symbolic-model core
// end to end: it exposes the RBC/CNF pipeline stages as subcommands.
// It is explicitly an external collaborator, not part of the core
// library (spec.md §1/§6 name "no CLI" as a core non-goal) — the
// library itself stays usable from any host that builds its own
// symbol table, flattener, and booleanizer calls directly.
package main

import (
	"context"

	"github.com/scott-cotton/cli"
)

func main() {
	cli.MainContext(context.Background(), MainCommand())
}
