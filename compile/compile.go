package compile

import (
	"github.com/flowframe/engine/diag"
	"github.com/flowframe/engine/registry"
)

// Compile runs all nine passes over patch and returns the resulting
// CompiledProgram. Compile never panics on malformed authored content --
// every failure surfaces as a diagnostic (spec's explicit requirement
// that parsing/compilation "never throw") -- it may still panic on a
// genuine programming error in the registry itself (e.g. a block
// registered with no Lower closure), which Builder.Build's own panics
// already guard against at registration time, not at compile time.
func Compile(patch Patch, reg *registry.Registry, adapters *registry.AdapterCatalog) CompiledProgram {
	hub := diag.New()
	state := newCompileState(patch, reg, adapters, hub)

	pass0Payload(state)
	pass1Units(state)
	pass2Adapters(state)
	pass3TypeGraph(state)
	pass4Wiring(state)
	pass5Topology(state)
	pass6Lowering(state)
	pass7Schedule(state)
	program := pass8Slots(state)

	ok := !hub.HasErrors()
	if ok {
		hub.Raise(InfoCompiled, diag.SeverityInfo, "compiled successfully", diag.Target{Kind: "patch"}, diag.ActionNone())
	}

	return CompiledProgram{Program: program, Diagnostics: hub.All(), OK: ok}
}
