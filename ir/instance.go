// Package ir defines the compiler's intermediate representation: instance
// declarations, scalar (signal) and vector (field) expressions, value
// slots, and the per-frame execution schedule. Construction mirrors the
// teacher's core/program.go shape (ordered instruction groups of typed
// operands) generalized from a YAML-loaded program to an imperative
// builder fed by block lowering closures.
package ir

import "github.com/flowframe/engine/types"

// LayoutKind enumerates the field-kernel layouts an instance may be
// created with.
type LayoutKind int

const (
	LayoutNone LayoutKind = iota
	LayoutGrid
	LayoutCircle
	LayoutLine
	LayoutPolygon
)

// LayoutSpec parameterizes a layout kernel (e.g. GridLayout rows/cols).
type LayoutSpec struct {
	Kind   LayoutKind
	Params map[string]float64
}

// IdentityMode controls whether continuity state remaps per-element by a
// stable id across recompiles (Stable) or simply reinitializes (None).
type IdentityMode int

const (
	IdentityNone IdentityMode = iota
	IdentityStable
)

// InstanceDecl declares an addressable collection of elements bound to a
// domain type.
type InstanceDecl struct {
	ID           types.InstanceID
	DomainType   types.CanonicalType
	Count        int
	Dynamic      bool
	Layout       LayoutSpec
	IdentityMode IdentityMode
}
