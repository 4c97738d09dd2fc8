package registry

import (
	"testing"

	"github.com/flowframe/engine/ir"
	"github.com/flowframe/engine/types"
)

func TestRegisterDuplicateFailsFast(t *testing.T) {
	r := New()
	def := NewBlock("Dup").
		WithOutput("value", signalType(types.UnitScalar, types.ContractNone)).
		WithLower(func(b *ir.Builder, args map[string]float64, inputs map[string]LoweredRef) (map[string]LoweredRef, error) {
			return nil, nil
		}).
		Build()

	if err := r.Register(def); err != nil {
		t.Fatalf("first registration should succeed: %v", err)
	}
	if err := r.Register(def); err == nil {
		t.Fatal("expected duplicate registration to fail")
	}
}

func TestRegisterBuiltinsPopulatesRegistry(t *testing.T) {
	r := New()
	adapters := NewAdapterCatalog()
	RegisterBuiltins(r, adapters)

	for _, name := range []string{"Time", "Phase", "OscSine", "Add", "Index", "GridLayout", "HSVToRGB", "DrawCircle", "Clamp01Lens"} {
		if _, ok := r.Get(name); !ok {
			t.Errorf("expected builtin block %q to be registered", name)
		}
	}
	if r.Len() == 0 {
		t.Fatal("expected a non-empty registry")
	}
}

func TestAdapterCatalogFindsUnitConversion(t *testing.T) {
	r := New()
	adapters := NewAdapterCatalog()
	RegisterBuiltins(r, adapters)

	cand, ok := adapters.Find(types.AdapterSpec{
		Kind: types.AdapterUnitConversion, FromUnit: types.UnitRadians, ToUnit: types.UnitTurns,
	})
	if !ok {
		t.Fatal("expected to find a radians->turns adapter")
	}
	if cand.BlockName != "RadiansToTurns" {
		t.Errorf("expected RadiansToTurns, got %s", cand.BlockName)
	}
}

func TestAdapterCatalogMissingConversionNotFound(t *testing.T) {
	adapters := NewAdapterCatalog()
	if _, ok := adapters.Find(types.AdapterSpec{Kind: types.AdapterUnitConversion, FromUnit: types.UnitCount, ToUnit: types.UnitDegrees}); ok {
		t.Fatal("expected no adapter for an unregistered conversion")
	}
}

func TestTimeBlockLowersToReadSlotOfTimeSlot(t *testing.T) {
	r := New()
	RegisterBuiltins(r, NewAdapterCatalog())
	def, ok := r.Get("Time")
	if !ok {
		t.Fatal("Time block not registered")
	}
	b := ir.NewBuilder()
	out, err := def.Lower(b, nil, nil)
	if err != nil {
		t.Fatalf("Lower: %v", err)
	}
	ref, ok := out["seconds"]
	if !ok || ref.IsField {
		t.Fatalf("expected a scalar 'seconds' output, got %+v", out)
	}
	expr := b.ValueExprs()[ref.Value-1]
	if expr.Kind != ir.VEReadSlot || expr.Slot != b.TimeSlot() {
		t.Fatalf("expected VEReadSlot of the reserved time slot, got %+v", expr)
	}
}
