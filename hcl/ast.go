// Package hcl implements the HCL-like patch serialization front end
// described in spec §6: a lexer, a recursive-descent parser, and a
// serializer that round-trips a canonicalized Document bitwise. No
// teacher file implements a lexer; this is grounded on
// core/program.go's parseASMOperand/splitRespectingBrackets hand-written
// recursive-descent style (bracket-depth-aware scanning) generalized to
// the full grammar.
package hcl

// Value is a parsed attribute literal: exactly one of the typed fields is
// meaningful, selected by Kind.
type ValueKind int

const (
	ValNumber ValueKind = iota
	ValString
	ValBool
	ValNull
)

type Value struct {
	Kind   ValueKind
	Number float64
	Str    string
	Bool   bool
}

// Output is one `srcPort = targetBlock.targetPort` wiring entry inside a
// block's `outputs { ... }` body.
type Output struct {
	SrcPort    string
	DstBlock   string
	DstPort    string
}

// Block is one `block "Type" "displayName" { ... }` entry.
type Block struct {
	Type        string
	DisplayName string
	Attrs       map[string]Value
	AttrOrder   []string // preserves authored/canonical attribute order for serialization
	Outputs     []Output
}

// Expose is one `expose_input`/`expose_output` entry of a composite block.
type Expose struct {
	ExternalID string
	Block      string
	Port       string
	Label      string // optional, empty if not given
}

// Composite is a `composite "Type" { block ...; expose_input ...;
// expose_output ... }` top-level definition.
type Composite struct {
	Type          string
	Blocks        []Block
	ExposeInputs  []Expose
	ExposeOutputs []Expose
}

// Document is one parsed file: a single `patch` plus any number of
// `composite` definitions (composites are typically defined once and
// reused, but the grammar allows either order at the top level).
type Document struct {
	PatchName string
	Blocks    []Block
	Composites []Composite
}
