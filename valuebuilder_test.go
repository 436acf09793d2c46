package bytepipe

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestValueBuilderSingleTopLevelValueUnwraps(t *testing.T) {
	b := NewValueBuilder()
	b.OnPrimitiveU32(7)
	v := b.Value()
	if v.Kind() != KindPrimitive {
		t.Fatalf("Kind() = %v, want KindPrimitive", v.Kind())
	}
	if got := v.AsPrimitive().AsUint64(); got != 7 {
		t.Fatalf("AsUint64() = %d, want 7", got)
	}
}

func TestValueBuilderMultipleTopLevelValuesFormImplicitArray(t *testing.T) {
	b := NewValueBuilder()
	b.OnPrimitiveU8(1)
	b.OnPrimitiveU8(2)
	v := b.Value()
	if v.Kind() != KindArray {
		t.Fatalf("Kind() = %v, want KindArray", v.Kind())
	}
	if v.Size() != 2 {
		t.Fatalf("Size() = %d, want 2", v.Size())
	}
}

// A first top-level value that is itself a container must not be mistaken
// for the implicit top-level wrapper.
func TestValueBuilderFirstTopLevelValueIsContainer(t *testing.T) {
	b := NewValueBuilder()
	b.OnArrayBegin(2)
	b.OnPrimitiveU8(1)
	b.OnPrimitiveU8(2)
	b.OnArrayEnd()
	b.OnPrimitiveU8(3)

	v := b.Value()
	if v.Kind() != KindArray || v.Size() != 2 {
		t.Fatalf("top-level Value = %+v, want a 2-element array (nested array + scalar)", v)
	}
	inner := v.GetValue(0)
	if inner.Kind() != KindArray || inner.Size() != 2 {
		t.Fatalf("GetValue(0) = %+v, want nested 2-element array", inner)
	}
	if got := inner.GetValue(0).AsPrimitive().AsUint64(); got != 1 {
		t.Fatalf("inner[0] = %d, want 1", got)
	}
	if got := v.GetValue(1).AsPrimitive().AsUint64(); got != 3 {
		t.Fatalf("v[1] = %d, want 3", got)
	}
}

func TestValueBuilderEmptySessionYieldsEmptyArray(t *testing.T) {
	b := NewValueBuilder()
	v := b.Value()
	if v.Kind() != KindArray || v.Size() != 0 {
		t.Fatalf("Value() = %+v, want empty array", v)
	}
}

func TestValueBuilderNestedObjectInArray(t *testing.T) {
	b := NewValueBuilder()
	b.OnArrayBegin(1)
	b.OnObjectBegin(1)
	b.OnComponentID(4)
	b.OnPrimitiveString("x")
	b.OnObjectEnd()
	b.OnArrayEnd()

	v := b.Value()
	if v.Kind() != KindArray || v.Size() != 1 {
		t.Fatalf("Value() = %+v, want 1-element array", v)
	}
	obj := v.GetValue(0)
	got, ok := obj.Lookup(4)
	if !ok || got.AsString() != "x" {
		t.Fatalf("Lookup(4) = %v, %v, want x", got, ok)
	}
}

func TestEmitValueThenValueBuilderRoundTrips(t *testing.T) {
	var want Value
	want.SetObject()
	var nested Value
	nested.SetArray([]Value{
		func() Value { var e Value; e.SetPrimitive(PrimitiveValue{Type: SIDU16, U64: 10}); return e }(),
		func() Value { var e Value; e.SetString("s"); return e }(),
	})
	want.AddComponent(1, nested)
	var b Value
	b.SetPrimitive(PrimitiveValue{Type: SIDBool, Bool: true})
	want.AddComponent(2, b)

	builder := NewValueBuilder()
	EmitValue(&want, builder)
	got := builder.Value()

	if diff := cmp.Diff(want, got, cmp.AllowUnexported(Value{}, objectEntry{})); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}
