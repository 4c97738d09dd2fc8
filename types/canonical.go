// Package types implements the 5-axis canonical type system: payload,
// unit, value contract, cardinality, and extent, along with per-axis
// unification.
package types

import "fmt"

// Payload is the scalar/vector data kind of a value. The zero value,
// PayloadDefault, marks an unresolved (polymorphic) axis.
type Payload int

const (
	PayloadDefault Payload = iota
	PayloadFloat
	PayloadInt
	PayloadBool
	PayloadVec2
	PayloadVec3
	PayloadColor
	PayloadShape
	PayloadPhase
	PayloadCameraProjection
	PayloadPathRef
	PayloadTopologyID
)

func (p Payload) String() string {
	switch p {
	case PayloadDefault:
		return "default"
	case PayloadFloat:
		return "float"
	case PayloadInt:
		return "int"
	case PayloadBool:
		return "bool"
	case PayloadVec2:
		return "vec2"
	case PayloadVec3:
		return "vec3"
	case PayloadColor:
		return "color"
	case PayloadShape:
		return "shape"
	case PayloadPhase:
		return "phase"
	case PayloadCameraProjection:
		return "cameraProjection"
	case PayloadPathRef:
		return "pathRef"
	case PayloadTopologyID:
		return "topologyId"
	default:
		return fmt.Sprintf("payload(%d)", int(p))
	}
}

// Unit is a semantic annotation on a numeric value. The zero value,
// UnitDefault, marks an unresolved axis.
type Unit int

const (
	UnitDefault Unit = iota
	UnitScalar
	UnitRadians
	UnitTurns
	UnitMs
	UnitSeconds
	UnitDegrees
	UnitCount
	UnitNormalized
)

func (u Unit) String() string {
	switch u {
	case UnitDefault:
		return "default"
	case UnitScalar:
		return "scalar"
	case UnitRadians:
		return "radians"
	case UnitTurns:
		return "turns"
	case UnitMs:
		return "ms"
	case UnitSeconds:
		return "seconds"
	case UnitDegrees:
		return "degrees"
	case UnitCount:
		return "count"
	case UnitNormalized:
		return "normalized"
	default:
		return fmt.Sprintf("unit(%d)", int(u))
	}
}

// Contract declares a range guarantee about a numeric value. The zero
// value, ContractDefault, marks an unresolved axis; ContractNone is the
// resolved "no guarantee" value, distinct from ContractDefault.
type Contract int

const (
	ContractDefault Contract = iota
	ContractNone
	ContractClamp01
	ContractWrap01
	ContractClamp11
)

func (c Contract) String() string {
	switch c {
	case ContractDefault:
		return "default"
	case ContractNone:
		return "none"
	case ContractClamp01:
		return "clamp01"
	case ContractWrap01:
		return "wrap01"
	case ContractClamp11:
		return "clamp11"
	default:
		return fmt.Sprintf("contract(%d)", int(c))
	}
}

// Cardinality classifies how many lanes a value carries per frame.
type Cardinality int

const (
	CardinalityDefault Cardinality = iota
	Signal
	Field
	Event
	Const
)

func (c Cardinality) String() string {
	switch c {
	case CardinalityDefault:
		return "default"
	case Signal:
		return "signal"
	case Field:
		return "field"
	case Event:
		return "event"
	case Const:
		return "const"
	default:
		return fmt.Sprintf("cardinality(%d)", int(c))
	}
}

// InstanceID identifies an InstanceDecl (see package ir). It lives here,
// rather than in package ir, so that CanonicalType's Extent axis can
// reference an instance without an import cycle between types and ir.
type InstanceID int

// NoInstance is the zero InstanceID, used when a type's cardinality is not
// Field (or the extent is unresolved).
const NoInstance InstanceID = 0

// Extent carries the Field axis's domain reference: an instance id, or the
// unresolved/default marker.
type Extent struct {
	Resolved   bool
	InstanceID InstanceID
}

// DefaultExtent is the unresolved extent.
var DefaultExtent = Extent{}

// CanonicalType is the product of the five axes.
type CanonicalType struct {
	Payload     Payload
	Unit        Unit
	Contract    Contract
	Cardinality Cardinality
	Extent      Extent
}

// IsPolymorphic reports whether any axis is still at its default
// (unresolved) value.
func (t CanonicalType) IsPolymorphic() bool {
	if t.Payload == PayloadDefault || t.Unit == UnitDefault ||
		t.Contract == ContractDefault || t.Cardinality == CardinalityDefault {
		return true
	}
	if t.Cardinality == Field && !t.Extent.Resolved {
		return true
	}
	return false
}

func (t CanonicalType) String() string {
	return fmt.Sprintf("%s/%s/%s/%s", t.Payload, t.Cardinality, t.Unit, t.Contract)
}

// MismatchKind enumerates the ways two axes can fail to unify.
type MismatchKind int

const (
	_ MismatchKind = iota
	PayloadMismatch
	UnitMismatch
	ContractMismatch
	CardinalityMismatch
	ExtentMismatch
	UnresolvedUnit
)

func (k MismatchKind) String() string {
	switch k {
	case PayloadMismatch:
		return "PayloadMismatch"
	case UnitMismatch:
		return "UnitMismatch"
	case ContractMismatch:
		return "ContractMismatch"
	case CardinalityMismatch:
		return "CardinalityMismatch"
	case ExtentMismatch:
		return "ExtentMismatch"
	case UnresolvedUnit:
		return "UnresolvedUnit"
	default:
		return "UnknownMismatch"
	}
}

// UnifyError reports which axis failed to unify and why.
type UnifyError struct {
	Kind MismatchKind
	A, B CanonicalType
}

func (e *UnifyError) Error() string {
	return fmt.Sprintf("%s: cannot unify %s with %s", e.Kind, e.A, e.B)
}

// Unify combines two canonical types axis by axis. Per spec: default ⊕ X
// = X; X ⊕ X = X; X ⊕ Y (X != Y, both instantiated) fails. Unify is
// commutative: Unify(a, b) and Unify(b, a) either agree structurally or
// fail with the same mismatch kind.
func Unify(a, b CanonicalType) (CanonicalType, error) {
	payload, err := unifyPayload(a.Payload, b.Payload)
	if err != nil {
		return CanonicalType{}, &UnifyError{Kind: PayloadMismatch, A: a, B: b}
	}

	card, err := unifyCardinality(a.Cardinality, b.Cardinality)
	if err != nil {
		return CanonicalType{}, &UnifyError{Kind: CardinalityMismatch, A: a, B: b}
	}

	unit, err := unifyUnit(a.Unit, b.Unit)
	if err != nil {
		return CanonicalType{}, &UnifyError{Kind: UnitMismatch, A: a, B: b}
	}

	contract, err := unifyContract(a.Contract, b.Contract)
	if err != nil {
		return CanonicalType{}, &UnifyError{Kind: ContractMismatch, A: a, B: b}
	}

	extent, err := unifyExtent(a.Extent, b.Extent)
	if err != nil {
		return CanonicalType{}, &UnifyError{Kind: ExtentMismatch, A: a, B: b}
	}

	return CanonicalType{
		Payload:     payload,
		Unit:        unit,
		Contract:    contract,
		Cardinality: card,
		Extent:      extent,
	}, nil
}

func unifyPayload(a, b Payload) (Payload, error) {
	if a == PayloadDefault {
		return b, nil
	}
	if b == PayloadDefault || a == b {
		return a, nil
	}
	return 0, fmt.Errorf("payload mismatch")
}

func unifyUnit(a, b Unit) (Unit, error) {
	if a == UnitDefault {
		return b, nil
	}
	if b == UnitDefault || a == b {
		return a, nil
	}
	return 0, fmt.Errorf("unit mismatch")
}

func unifyContract(a, b Contract) (Contract, error) {
	if a == ContractDefault {
		return b, nil
	}
	if b == ContractDefault || a == b {
		return a, nil
	}
	return 0, fmt.Errorf("contract mismatch")
}

func unifyCardinality(a, b Cardinality) (Cardinality, error) {
	if a == CardinalityDefault {
		return b, nil
	}
	if b == CardinalityDefault || a == b {
		return a, nil
	}
	return 0, fmt.Errorf("cardinality mismatch")
}

func unifyExtent(a, b Extent) (Extent, error) {
	if !a.Resolved {
		return b, nil
	}
	if !b.Resolved || a.InstanceID == b.InstanceID {
		return a, nil
	}
	return Extent{}, fmt.Errorf("extent mismatch")
}
