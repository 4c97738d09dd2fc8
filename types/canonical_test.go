package types

import "testing"

func TestUnifyCommutative(t *testing.T) {
	cases := []struct {
		name string
		a, b CanonicalType
	}{
		{"default-with-float", CanonicalType{}, CanonicalType{Payload: PayloadFloat}},
		{"same-float", CanonicalType{Payload: PayloadFloat}, CanonicalType{Payload: PayloadFloat}},
		{"float-vs-int", CanonicalType{Payload: PayloadFloat}, CanonicalType{Payload: PayloadInt}},
		{"signal-vs-field", CanonicalType{Cardinality: Signal}, CanonicalType{Cardinality: Field}},
		{"radians-vs-turns", CanonicalType{Unit: UnitRadians}, CanonicalType{Unit: UnitTurns}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ab, errAB := Unify(c.a, c.b)
			ba, errBA := Unify(c.b, c.a)

			if (errAB == nil) != (errBA == nil) {
				t.Fatalf("asymmetric success: Unify(a,b) err=%v, Unify(b,a) err=%v", errAB, errBA)
			}
			if errAB != nil {
				ue1, ok1 := errAB.(*UnifyError)
				ue2, ok2 := errBA.(*UnifyError)
				if !ok1 || !ok2 || ue1.Kind != ue2.Kind {
					t.Fatalf("mismatch kinds differ: %v vs %v", errAB, errBA)
				}
				return
			}
			if ab != ba {
				t.Fatalf("Unify(a,b)=%v != Unify(b,a)=%v", ab, ba)
			}
		})
	}
}

func TestUnifyDefaultIsIdentity(t *testing.T) {
	concrete := CanonicalType{
		Payload: PayloadVec2, Unit: UnitScalar, Contract: ContractClamp01,
		Cardinality: Field, Extent: Extent{Resolved: true, InstanceID: 7},
	}
	got, err := Unify(CanonicalType{}, concrete)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != concrete {
		t.Fatalf("expected %v, got %v", concrete, got)
	}
}

func TestIsPolymorphic(t *testing.T) {
	if (CanonicalType{}).IsPolymorphic() == false {
		t.Fatal("zero-value type must be polymorphic")
	}
	resolved := CanonicalType{
		Payload: PayloadFloat, Unit: UnitScalar, Contract: ContractNone, Cardinality: Signal,
	}
	if resolved.IsPolymorphic() {
		t.Fatal("fully resolved signal type must not be polymorphic")
	}
	field := resolved
	field.Cardinality = Field
	if !field.IsPolymorphic() {
		t.Fatal("field type with unresolved extent must be polymorphic")
	}
}
