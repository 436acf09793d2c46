package bytepipe_test

import (
	"bytes"
	"testing"

	bp "github.com/anvilio/bytepipe"
)

func encodeValue(t *testing.T, emit func(w *bp.Writer)) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := bp.NewWriter(bp.NewOutputPipe(&buf))
	w.OnPipeOpen()
	emit(w)
	w.OnPipeClose()
	return buf.Bytes()
}

func decodeValue(t *testing.T, wire []byte) bp.Value {
	t.Helper()
	b := bp.NewValueBuilder()
	r := bp.NewReader(bp.NewInputPipe(bytes.NewReader(wire)))
	if err := r.Read(b); err != nil {
		t.Fatalf("Read: %v", err)
	}
	return b.Value()
}

func TestWriterReaderScalarRoundTrip(t *testing.T) {
	wire := encodeValue(t, func(w *bp.Writer) { w.OnPrimitiveU32(424242) })
	v := decodeValue(t, wire)
	if v.Kind() != bp.KindPrimitive {
		t.Fatalf("Kind() = %v, want KindPrimitive", v.Kind())
	}
	if got := v.AsPrimitive().AsUint64(); got != 424242 {
		t.Fatalf("AsUint64() = %d, want 424242", got)
	}
}

func TestWriterReaderBoolRoundTrip(t *testing.T) {
	wire := encodeValue(t, func(w *bp.Writer) { w.OnPrimitiveBool(true) })
	v := decodeValue(t, wire)
	if v.Kind() != bp.KindPrimitive {
		t.Fatalf("Kind() = %v, want KindPrimitive", v.Kind())
	}
	if got := v.AsPrimitive().AsUint64(); got != 1 {
		t.Fatalf("AsUint64() = %d, want 1", got)
	}
}

func TestWriterReaderStringRoundTrip(t *testing.T) {
	wire := encodeValue(t, func(w *bp.Writer) { w.OnPrimitiveString("hi") })
	v := decodeValue(t, wire)
	if v.Kind() != bp.KindString {
		t.Fatalf("Kind() = %v, want KindString", v.Kind())
	}
	if got := v.AsString(); got != "hi" {
		t.Fatalf("AsString() = %q, want hi", got)
	}
}

func TestWriterReaderObjectRoundTrip(t *testing.T) {
	wire := encodeValue(t, func(w *bp.Writer) {
		w.OnObjectBegin(2)
		w.OnComponentID(7)
		w.OnPrimitiveBool(true)
		w.OnComponentID(9)
		w.OnPrimitiveString("hi")
		w.OnObjectEnd()
	})
	v := decodeValue(t, wire)
	if v.Kind() != bp.KindObject {
		t.Fatalf("Kind() = %v, want KindObject", v.Kind())
	}
	if v.Size() != 2 {
		t.Fatalf("Size() = %d, want 2", v.Size())
	}
	seven, ok := v.Lookup(7)
	if !ok || seven.AsPrimitive().AsUint64() != 1 {
		t.Fatalf("Lookup(7) = %v, %v, want true-ish", seven, ok)
	}
	nine, ok := v.Lookup(9)
	if !ok || nine.AsString() != "hi" {
		t.Fatalf("Lookup(9) = %v, %v, want hi", nine, ok)
	}
}

func TestWriterReaderArrayBulkU8RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := bp.NewWriter(bp.NewOutputPipe(&buf), bp.WithWireVersion(bp.WireV3))
	w.OnPipeOpen()
	w.OnPrimitiveArrayU8([]byte{1, 2, 3, 4})
	w.OnPipeClose()
	wire := buf.Bytes()
	v := decodeValue(t, wire)
	if v.Kind() != bp.KindArray {
		t.Fatalf("Kind() = %v, want KindArray", v.Kind())
	}
	if v.Size() != 4 {
		t.Fatalf("Size() = %d, want 4", v.Size())
	}
	for i := 0; i < 4; i++ {
		if got := v.GetValue(i).AsPrimitive().AsUint64(); got != uint64(i+1) {
			t.Fatalf("GetValue(%d) = %d, want %d", i, got, i+1)
		}
	}
}

func TestWriterReaderMultipleTopLevelValues(t *testing.T) {
	wire := encodeValue(t, func(w *bp.Writer) {
		w.OnArrayBegin(0)
		w.OnArrayEnd()
		w.OnPrimitiveU8(5)
	})
	v := decodeValue(t, wire)
	if v.Kind() != bp.KindArray {
		t.Fatalf("Kind() = %v, want KindArray", v.Kind())
	}
	if v.Size() != 2 {
		t.Fatalf("Size() = %d, want 2", v.Size())
	}
	if v.GetValue(0).Kind() != bp.KindArray || v.GetValue(0).Size() != 0 {
		t.Fatalf("GetValue(0) = %v, want empty array", v.GetValue(0))
	}
	if got := v.GetValue(1).AsPrimitive().AsUint64(); got != 5 {
		t.Fatalf("GetValue(1) = %d, want 5", got)
	}
}

func TestWriterReaderUserPodRoundTrip(t *testing.T) {
	payload := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	wire := encodeValue(t, func(w *bp.Writer) { w.OnUserPod(1234, payload) })
	v := decodeValue(t, wire)
	if v.Kind() != bp.KindUserPod {
		t.Fatalf("Kind() = %v, want KindUserPod", v.Kind())
	}
	typ, data := v.UserPod()
	if typ != 1234 || !bytes.Equal(data, payload) {
		t.Fatalf("UserPod() = (%d, %v), want (1234, %v)", typ, data, payload)
	}
}

func TestEmitValueRoundTripsThroughWriter(t *testing.T) {
	wire := encodeValue(t, func(w *bp.Writer) {
		w.OnObjectBegin(1)
		w.OnComponentID(1)
		w.OnPrimitiveU32(99)
		w.OnObjectEnd()
	})
	v := decodeValue(t, wire)

	var buf bytes.Buffer
	w := bp.NewWriter(bp.NewOutputPipe(&buf))
	w.OnPipeOpen()
	bp.EmitValue(&v, w)
	w.OnPipeClose()

	v2 := decodeValue(t, buf.Bytes())
	if v2.Kind() != bp.KindObject || v2.Size() != 1 {
		t.Fatalf("re-decoded value = %v, want 1-component object", v2)
	}
	got, ok := v2.Lookup(1)
	if !ok || got.AsPrimitive().AsUint64() != 99 {
		t.Fatalf("Lookup(1) = %v, %v, want 99", got, ok)
	}
}
