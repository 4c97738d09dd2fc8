package types

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NoLower: an HCL author's block kind is already a PascalCase registry
// key ("DrawCircle", "HSVToRGB"); lowercasing everything past the first
// letter the way a bare cases.Title would is destructive for multi-word
// identifiers, so only the leading letter gets normalized.
var titleCaser = cases.Title(language.English, cases.NoLower)

// CanonicalizeIdentifier normalizes an author-typed block kind keyword
// (e.g. from HCL source) to the title-cased form the block registry keys
// on, the same way the teacher's toTitleCase folds direction keywords
// before table lookup. Only the first letter of each word is
// upper-cased; the rest is kept as typed, so "time" resolves to its
// registered form ("Time") while "TIME" stays "TIME". An already-correct
// multi-word PascalCase kind passes through unchanged.
func CanonicalizeIdentifier(s string) string {
	return titleCaser.String(s)
}

// payloadUnitTable is the closed declarative table of which units a
// payload admits. A payload with no entry admits only UnitScalar.
var payloadUnitTable = map[Payload]map[Unit]bool{
	PayloadFloat: {
		UnitScalar:     true,
		UnitNormalized: true,
		UnitRadians:    true,
		UnitTurns:      true,
		UnitMs:         true,
		UnitSeconds:    true,
		UnitDegrees:    true,
	},
	PayloadInt: {
		UnitScalar: true,
		UnitCount:  true,
	},
	PayloadBool:             {UnitScalar: true},
	PayloadVec2:             {UnitScalar: true},
	PayloadVec3:             {UnitScalar: true},
	PayloadColor:            {UnitScalar: true},
	PayloadShape:            {UnitScalar: true},
	PayloadPhase:            {UnitScalar: true, UnitTurns: true},
	PayloadCameraProjection: {UnitScalar: true},
	PayloadPathRef:          {UnitScalar: true},
	PayloadTopologyID:       {UnitScalar: true},
}

// IsPayloadUnitAllowed reports whether the payload/unit pair is a
// documented combination. UnitDefault is always allowed (still
// unresolved); a PayloadDefault payload admits any unit (not yet
// resolved either).
func IsPayloadUnitAllowed(p Payload, u Unit) bool {
	if u == UnitDefault || p == PayloadDefault {
		return true
	}
	allowed, ok := payloadUnitTable[p]
	if !ok {
		return u == UnitScalar
	}
	return allowed[u]
}

// PayloadStride returns the number of scalar lanes a payload occupies in
// slot/buffer storage.
func PayloadStride(p Payload) uint32 {
	switch p {
	case PayloadFloat, PayloadInt, PayloadBool, PayloadPhase:
		return 1
	case PayloadVec2:
		return 2
	case PayloadVec3:
		return 3
	case PayloadColor:
		return 4
	default:
		// Opaque payloads (shape, cameraProjection, pathRef, topologyId) are
		// not stored as flat float lanes.
		return 0
	}
}

// ContractCompatible reports whether a value with contract `source` may
// flow into a port that requires contract `target` without an adapter.
// A stronger-to-weaker flow is always fine (anything -> None); anything
// else requires an exact match, or an adapter lens otherwise.
func ContractCompatible(source, target Contract) bool {
	if target == ContractDefault || target == ContractNone {
		return true
	}
	if source == ContractDefault {
		return true
	}
	return source == target
}

// ConnectionResult classifies a prospective edge between a source port's
// resolved type and a destination port's required type.
type ConnectionResult int

const (
	Compatible ConnectionResult = iota
	NeedsAdapter
	Incompatible
)

// AdapterKind names the class of conversion an adapter/lens must perform.
type AdapterKind int

const (
	AdapterUnitConversion AdapterKind = iota
	AdapterContractLens
	AdapterBroadcast
)

// AdapterSpec describes the conversion pass 2 must find a registered
// adapter/lens block for.
type AdapterSpec struct {
	Kind         AdapterKind
	FromUnit     Unit
	ToUnit       Unit
	FromContract Contract
	ToContract   Contract
}

// ConnectionCheck is the result of CheckTypeConnection.
type ConnectionCheck struct {
	Result  ConnectionResult
	Adapter AdapterSpec
	Reason  MismatchKind
}

// CheckTypeConnection classifies whether `from` may flow directly into a
// port requiring `to`, needs an adapter, or is fundamentally incompatible.
// allowZipSig is the destination block's broadcast policy: when true, a
// Signal flowing into a Field-typed port is adapter-bridgeable via an
// inserted Broadcast node instead of being a hard CardinalityMismatch.
func CheckTypeConnection(from, to CanonicalType, allowZipSig bool) ConnectionCheck {
	if from.Payload != PayloadDefault && to.Payload != PayloadDefault && from.Payload != to.Payload {
		return ConnectionCheck{Result: Incompatible, Reason: PayloadMismatch}
	}

	if from.Cardinality != to.Cardinality &&
		from.Cardinality != CardinalityDefault && to.Cardinality != CardinalityDefault {
		if from.Cardinality == Signal && to.Cardinality == Field && allowZipSig {
			return ConnectionCheck{
				Result:  NeedsAdapter,
				Adapter: AdapterSpec{Kind: AdapterBroadcast},
			}
		}
		return ConnectionCheck{Result: Incompatible, Reason: CardinalityMismatch}
	}

	if to.Cardinality == Field && from.Cardinality == Field &&
		from.Extent.Resolved && to.Extent.Resolved && from.Extent.InstanceID != to.Extent.InstanceID {
		return ConnectionCheck{Result: Incompatible, Reason: ExtentMismatch}
	}

	if from.Unit != UnitDefault && to.Unit != UnitDefault && from.Unit != to.Unit {
		return ConnectionCheck{
			Result: NeedsAdapter,
			Adapter: AdapterSpec{
				Kind: AdapterUnitConversion, FromUnit: from.Unit, ToUnit: to.Unit,
			},
		}
	}

	if !ContractCompatible(from.Contract, to.Contract) {
		return ConnectionCheck{
			Result: NeedsAdapter,
			Adapter: AdapterSpec{
				Kind: AdapterContractLens, FromContract: from.Contract, ToContract: to.Contract,
			},
		}
	}

	return ConnectionCheck{Result: Compatible}
}
