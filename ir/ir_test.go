package ir

import (
	"testing"

	"github.com/flowframe/engine/types"
)

func TestBuilderDeclareSlotDisjoint(t *testing.T) {
	b := NewBuilder()
	s1 := b.DeclareSlot(types.CanonicalType{Payload: types.PayloadFloat}, StorageF64, 1)
	s2 := b.DeclareSlot(types.CanonicalType{Payload: types.PayloadColor}, StorageObject, 1)
	s3 := b.DeclareSlot(types.CanonicalType{Payload: types.PayloadVec2}, StorageShape2D, 5)

	slot1, _ := b.SlotByID(s1)
	slot2, _ := b.SlotByID(s2)
	slot3, _ := b.SlotByID(s3)

	if err := VerifyDisjoint([]ValueSlot{slot1, slot2, slot3}); err != nil {
		t.Fatalf("expected disjoint slots, got: %v", err)
	}
}

func TestBuilderCreateInstanceAssignsIncreasingIDs(t *testing.T) {
	b := NewBuilder()
	id1 := b.CreateInstance(types.CanonicalType{Payload: types.PayloadFloat}, 10, false, LayoutSpec{}, IdentityNone)
	id2 := b.CreateInstance(types.CanonicalType{Payload: types.PayloadFloat}, 20, false, LayoutSpec{}, IdentityStable)

	if id1 == id2 {
		t.Fatal("expected distinct instance ids")
	}
	if len(b.Instances()) != 2 {
		t.Fatalf("expected 2 instances, got %d", len(b.Instances()))
	}
}

func TestBuilderAddValueExprAssignsID(t *testing.T) {
	b := NewBuilder()
	id := b.AddValueExpr(ValueExpr{Kind: VEConst, ConstValue: []float64{1}})
	if id != 1 {
		t.Fatalf("expected first value expr id to be 1, got %d", id)
	}
	if b.ValueExprs()[0].ID != id {
		t.Fatalf("stored expr id %d does not match returned id %d", b.ValueExprs()[0].ID, id)
	}
}

func TestBuildSnapshotIsIndependentOfBuilder(t *testing.T) {
	b := NewBuilder()
	b.AddValueExpr(ValueExpr{Kind: VEConst, ConstValue: []float64{1}})
	prog := b.Build()

	b.AddValueExpr(ValueExpr{Kind: VEConst, ConstValue: []float64{2}})
	if len(prog.ValueExprs) != 1 {
		t.Fatalf("snapshot should not observe later appends, got %d exprs", len(prog.ValueExprs))
	}
}

func TestVerifyDisjointDetectsOverlap(t *testing.T) {
	overlapping := []ValueSlot{
		{ID: 1, Offset: 0, Stride: 4},
		{ID: 2, Offset: 2, Stride: 2},
	}
	if err := VerifyDisjoint(overlapping); err == nil {
		t.Fatal("expected overlap to be detected")
	}
}
