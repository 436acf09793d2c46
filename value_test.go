package bytepipe

import "testing"

func TestValueZeroValueIsNull(t *testing.T) {
	var v Value
	if v.Kind() != KindNull {
		t.Fatalf("Kind() = %v, want KindNull", v.Kind())
	}
}

func TestValueSetPrimitiveAndAsPrimitive(t *testing.T) {
	var v Value
	v.SetPrimitive(PrimitiveValue{Type: SIDU32, U64: 42})
	if v.Kind() != KindPrimitive {
		t.Fatalf("Kind() = %v, want KindPrimitive", v.Kind())
	}
	if got := v.AsPrimitive().AsUint64(); got != 42 {
		t.Fatalf("AsUint64() = %d, want 42", got)
	}
}

func TestValueAsPrimitiveOnWrongKindReturnsZero(t *testing.T) {
	var v Value
	v.SetString("hi")
	if got := v.AsPrimitive(); got != (PrimitiveValue{}) {
		t.Fatalf("AsPrimitive() = %+v, want zero value", got)
	}
}

func TestValueSetStringAndAsString(t *testing.T) {
	var v Value
	v.SetString("hello")
	if got := v.AsString(); got != "hello" {
		t.Fatalf("AsString() = %q, want hello", got)
	}
	// AsString must not mutate the receiver.
	if got := v.AsString(); got != "hello" {
		t.Fatalf("second AsString() = %q, want hello", got)
	}
}

func TestValueAsStringOnWrongKindReturnsEmpty(t *testing.T) {
	var v Value
	v.SetPrimitive(PrimitiveValue{Type: SIDU8, U64: 1})
	if got := v.AsString(); got != "" {
		t.Fatalf("AsString() = %q, want empty", got)
	}
}

func TestValueAddValueOnNullStartsArray(t *testing.T) {
	var v Value
	var elem Value
	elem.SetPrimitive(PrimitiveValue{Type: SIDU8, U64: 1})
	v.AddValue(elem)
	if v.Kind() != KindArray {
		t.Fatalf("Kind() = %v, want KindArray", v.Kind())
	}
	if v.Size() != 1 {
		t.Fatalf("Size() = %d, want 1", v.Size())
	}
}

func TestValueSetArrayCopiesSlice(t *testing.T) {
	var a, b Value
	a.SetPrimitive(PrimitiveValue{Type: SIDU8, U64: 1})
	elems := []Value{a}

	var v Value
	v.SetArray(elems)

	b.SetPrimitive(PrimitiveValue{Type: SIDU8, U64: 99})
	elems[0] = b

	if got := v.GetValue(0).AsPrimitive().AsUint64(); got != 1 {
		t.Fatalf("GetValue(0) = %d, want 1 (SetArray must copy)", got)
	}
}

func TestValueAddComponentPreservesInsertionOrderOnOverwrite(t *testing.T) {
	var v Value
	var a, b, c Value
	a.SetPrimitive(PrimitiveValue{Type: SIDU8, U64: 1})
	b.SetPrimitive(PrimitiveValue{Type: SIDU8, U64: 2})
	c.SetPrimitive(PrimitiveValue{Type: SIDU8, U64: 99})

	v.AddComponent(1, a)
	v.AddComponent(2, b)
	v.AddComponent(1, c) // overwrite id 1, should not move to the end

	if v.Size() != 2 {
		t.Fatalf("Size() = %d, want 2", v.Size())
	}
	if id := v.GetComponentID(0); id != 1 {
		t.Fatalf("GetComponentID(0) = %d, want 1", id)
	}
	if got := v.GetValue(0).AsPrimitive().AsUint64(); got != 99 {
		t.Fatalf("GetValue(0) = %d, want 99 (overwritten)", got)
	}
	if id := v.GetComponentID(1); id != 2 {
		t.Fatalf("GetComponentID(1) = %d, want 2", id)
	}
}

func TestValueLookupMissingReturnsFalse(t *testing.T) {
	var v Value
	v.SetObject()
	if _, ok := v.Lookup(5); ok {
		t.Fatalf("Lookup(5) ok = true, want false")
	}
}

func TestValueSetUserPodCopiesData(t *testing.T) {
	data := []byte{1, 2, 3}
	var v Value
	v.SetUserPod(77, data)
	data[0] = 0xFF

	typ, got := v.UserPod()
	if typ != 77 {
		t.Fatalf("typ = %d, want 77", typ)
	}
	if got[0] != 1 {
		t.Fatalf("UserPod data = %v, want unaffected by caller mutation", got)
	}
}

func TestValueUserPodOnWrongKindReturnsZero(t *testing.T) {
	var v Value
	v.SetNull()
	typ, data := v.UserPod()
	if typ != 0 || data != nil {
		t.Fatalf("UserPod() = (%d, %v), want (0, nil)", typ, data)
	}
}

func TestValueSwapExchangesContents(t *testing.T) {
	var a, b Value
	a.SetString("a")
	b.SetString("b")
	a.Swap(&b)
	if a.AsString() != "b" || b.AsString() != "a" {
		t.Fatalf("after Swap: a=%q b=%q, want a=b b=a", a.AsString(), b.AsString())
	}
}

func TestPrimitiveValueNarrowAccessorsSaturateInsteadOfWrapping(t *testing.T) {
	u64 := PrimitiveValue{Type: SIDU64, U64: 300}
	if got := u64.AsUint8(); got != 255 {
		t.Fatalf("AsUint8() = %d, want 255 (saturated, not wrapped to 44)", got)
	}
	if got := u64.AsUint16(); got != 300 {
		t.Fatalf("AsUint16() = %d, want 300", got)
	}

	big := PrimitiveValue{Type: SIDU64, U64: 1 << 40}
	if got := big.AsUint32(); got != 1<<32-1 {
		t.Fatalf("AsUint32() = %d, want %d", got, uint32(1<<32-1))
	}

	neg := PrimitiveValue{Type: SIDS64, S64: -300}
	if got := neg.AsInt8(); got != -128 {
		t.Fatalf("AsInt8() = %d, want -128", got)
	}
	if got := neg.AsInt16(); got != -300 {
		t.Fatalf("AsInt16() = %d, want -300", got)
	}

	pos := PrimitiveValue{Type: SIDS64, S64: 1 << 40}
	if got := pos.AsInt32(); got != 1<<31-1 {
		t.Fatalf("AsInt32() = %d, want %d", got, int32(1<<31-1))
	}
}

func TestPrimitiveValueBoolWidensConsistentlyAcrossAccessors(t *testing.T) {
	truthy := PrimitiveValue{Type: SIDBool, Bool: true}
	falsy := PrimitiveValue{Type: SIDBool, Bool: false}

	if got := truthy.AsUint64(); got != 1 {
		t.Fatalf("true.AsUint64() = %d, want 1", got)
	}
	if got := truthy.AsInt64(); got != 1 {
		t.Fatalf("true.AsInt64() = %d, want 1", got)
	}
	if got := truthy.AsFloat64(); got != 1 {
		t.Fatalf("true.AsFloat64() = %v, want 1", got)
	}
	if got := falsy.AsUint64(); got != 0 {
		t.Fatalf("false.AsUint64() = %d, want 0", got)
	}
	if got := falsy.AsInt64(); got != 0 {
		t.Fatalf("false.AsInt64() = %d, want 0", got)
	}
	if got := falsy.AsFloat64(); got != 0 {
		t.Fatalf("false.AsFloat64() = %v, want 0", got)
	}
}
