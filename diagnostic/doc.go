// Package diagnostic implements spec.md §7's error handling design: a
// structured Error (kind, source position, message) with
// errors.Is/errors.As support, a colorized terminal sink, and an
// optional LSP Diagnostic conversion for editor-embedding hosts.
//
// Error itself generalizes go-tony/debug/log.go's Logf into a typed
// value rather than a free-form Fprintf call. The terminal sink is
// grounded on go-tony/cmd/o's use of github.com/fatih/color and
// github.com/mattn/go-isatty to decide whether to colorize. ToLSP uses
// go.lsp.dev/protocol's Diagnostic type as an interop point, without
// pulling in the teacher's full JSON-RPC LSP server (see DESIGN.md).
package diagnostic
