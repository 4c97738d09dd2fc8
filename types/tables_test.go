package types

import "testing"

func TestIsPayloadUnitAllowedTable(t *testing.T) {
	cases := []struct {
		p    Payload
		u    Unit
		want bool
	}{
		{PayloadFloat, UnitRadians, true},
		{PayloadFloat, UnitCount, false},
		{PayloadColor, UnitScalar, true},
		{PayloadColor, UnitRadians, false},
		{PayloadBool, UnitScalar, true},
		{PayloadBool, UnitNormalized, false},
		{PayloadInt, UnitCount, true},
		{PayloadPhase, UnitTurns, true},
	}
	for _, c := range cases {
		if got := IsPayloadUnitAllowed(c.p, c.u); got != c.want {
			t.Errorf("IsPayloadUnitAllowed(%v, %v) = %v, want %v", c.p, c.u, got, c.want)
		}
	}
}

func TestContractCompatibleDirectional(t *testing.T) {
	if !ContractCompatible(ContractClamp01, ContractNone) {
		t.Error("clamp01 -> none should be compatible without an adapter")
	}
	if ContractCompatible(ContractNone, ContractClamp01) {
		t.Error("none -> clamp01 should require an adapter")
	}
	if !ContractCompatible(ContractClamp01, ContractClamp01) {
		t.Error("identical contracts should always be compatible")
	}
}

func TestCheckTypeConnectionUnitMismatchNeedsAdapter(t *testing.T) {
	from := CanonicalType{Payload: PayloadFloat, Unit: UnitScalar, Contract: ContractNone, Cardinality: Signal}
	to := CanonicalType{Payload: PayloadFloat, Unit: UnitRadians, Contract: ContractNone, Cardinality: Signal}

	got := CheckTypeConnection(from, to, false)
	if got.Result != NeedsAdapter || got.Adapter.Kind != AdapterUnitConversion {
		t.Fatalf("expected NeedsAdapter/UnitConversion, got %+v", got)
	}
}

func TestCheckTypeConnectionBroadcast(t *testing.T) {
	from := CanonicalType{Payload: PayloadFloat, Unit: UnitScalar, Contract: ContractNone, Cardinality: Signal}
	to := CanonicalType{Payload: PayloadFloat, Unit: UnitScalar, Contract: ContractNone, Cardinality: Field}

	denied := CheckTypeConnection(from, to, false)
	if denied.Result != Incompatible || denied.Reason != CardinalityMismatch {
		t.Fatalf("expected Incompatible/CardinalityMismatch without broadcast policy, got %+v", denied)
	}

	allowed := CheckTypeConnection(from, to, true)
	if allowed.Result != NeedsAdapter || allowed.Adapter.Kind != AdapterBroadcast {
		t.Fatalf("expected NeedsAdapter/Broadcast with allowZipSig, got %+v", allowed)
	}
}

func TestCheckTypeConnectionPayloadMismatchIsHardFail(t *testing.T) {
	from := CanonicalType{Payload: PayloadFloat, Cardinality: Signal}
	to := CanonicalType{Payload: PayloadBool, Cardinality: Signal}
	got := CheckTypeConnection(from, to, false)
	if got.Result != Incompatible || got.Reason != PayloadMismatch {
		t.Fatalf("expected Incompatible/PayloadMismatch, got %+v", got)
	}
}
