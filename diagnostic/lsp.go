package diagnostic

import (
	"go.lsp.dev/protocol"
)

// ToLSP converts e into a protocol.Diagnostic for hosts that embed this
// module behind an LSP server (go-tony/cmd/tony-lsp's
// validateDocument/publishDiagnostics pattern), without pulling in the
// teacher's JSON-RPC transport itself. Line is 0-indexed on the wire per
// the LSP spec; e.Line is the 1-indexed source line spec.md §7 requires
// in the terminal form, so it is translated down by one here.
func ToLSP(e *Error) protocol.Diagnostic {
	line := uint32(0)
	if e.Line > 0 {
		line = uint32(e.Line - 1)
	}
	return protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{Line: line, Character: 0},
			End:   protocol.Position{Line: line, Character: 0},
		},
		Severity: protocol.DiagnosticSeverityError,
		Message:  e.Message,
		Source:   "symcore",
	}
}

// WarningToLSP converts a non-fatal warning (spec.md §7) into a
// protocol.Diagnostic with warning severity.
func WarningToLSP(file string, line int, message string) protocol.Diagnostic {
	l := uint32(0)
	if line > 0 {
		l = uint32(line - 1)
	}
	return protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{Line: l, Character: 0},
			End:   protocol.Position{Line: l, Character: 0},
		},
		Severity: protocol.DiagnosticSeverityWarning,
		Message:  message,
		Source:   "symcore",
	}
}
