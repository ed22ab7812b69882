package main

import (
	"fmt"
	"io"

	"github.com/google/gops/agent"
)

// maybeStartGops starts a gops diagnostic agent when -gops is passed,
// the same fire-and-warn-on-failure idiom go-tony/cmd/o/docd.go and
// system_compose.go use for their own long-running servers — here
// useful for inspecting a large batch booleanize/cnf/solve run live.
func maybeStartGops(enabled bool, w io.Writer) {
	if !enabled {
		return
	}
	if err := agent.Listen(agent.Options{}); err != nil {
		fmt.Fprintf(w, "gops agent failed: %v\n", err)
	}
}
