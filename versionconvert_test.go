package bytepipe_test

import (
	"bytes"
	"testing"

	bp "github.com/anvilio/bytepipe"
)

func TestWriterWireV1DecomposesBulkArray(t *testing.T) {
	var buf bytes.Buffer
	w := bp.NewWriter(bp.NewOutputPipe(&buf), bp.WithWireVersion(bp.WireV1))
	w.OnPipeOpen()
	w.OnPrimitiveArrayU8([]byte{1, 2, 3})
	w.OnPipeClose()

	b := bp.NewValueBuilder()
	r := bp.NewReader(bp.NewInputPipe(bytes.NewReader(buf.Bytes())))
	if err := r.Read(b); err != nil {
		t.Fatalf("Read: %v", err)
	}
	v := b.Value()
	if v.Kind() != bp.KindArray || v.Size() != 3 {
		t.Fatalf("Value() = %+v, want a 3-element array", v)
	}
	for i := 0; i < 3; i++ {
		if got := v.GetValue(i).AsPrimitive().AsUint64(); got != uint64(i+1) {
			t.Fatalf("GetValue(%d) = %d, want %d", i, got, i+1)
		}
	}
}

func TestWriterWireV3EmitsBulkArrayNatively(t *testing.T) {
	var buf bytes.Buffer
	w := bp.NewWriter(bp.NewOutputPipe(&buf), bp.WithWireVersion(bp.WireV3))
	w.OnPipeOpen()
	w.OnPrimitiveArrayU8([]byte{1, 2, 3})
	w.OnPipeClose()

	v1Buf := bytes.Buffer{}
	w1 := bp.NewWriter(bp.NewOutputPipe(&v1Buf), bp.WithWireVersion(bp.WireV1))
	w1.OnPipeOpen()
	w1.OnPrimitiveArrayU8([]byte{1, 2, 3})
	w1.OnPipeClose()

	if buf.Len() >= v1Buf.Len() {
		t.Fatalf("bulk encoding length = %d, want shorter than decomposed length %d", buf.Len(), v1Buf.Len())
	}
}

func TestToV1AdapterDecomposesBulkArrayForDownstream(t *testing.T) {
	b := bp.NewValueBuilder()
	adapter := bp.NewToV1Adapter(b)

	adapter.OnPipeOpen()
	adapter.OnPrimitiveArrayU16([]uint16{10, 20})
	adapter.OnPipeClose()

	v := b.Value()
	if v.Kind() != bp.KindArray || v.Size() != 2 {
		t.Fatalf("Value() = %+v, want a 2-element array", v)
	}
	if got := v.GetValue(0).AsPrimitive().AsUint64(); got != 10 {
		t.Fatalf("GetValue(0) = %d, want 10", got)
	}
	if got := v.GetValue(1).AsPrimitive().AsUint64(); got != 20 {
		t.Fatalf("GetValue(1) = %d, want 20", got)
	}
}

func TestToV1AdapterForwardsScalarsUnchanged(t *testing.T) {
	b := bp.NewValueBuilder()
	adapter := bp.NewToV1Adapter(b)

	adapter.OnPipeOpen()
	adapter.OnPrimitiveU32(42)
	adapter.OnPipeClose()

	v := b.Value()
	if got := v.AsPrimitive().AsUint64(); got != 42 {
		t.Fatalf("AsUint64() = %d, want 42", got)
	}
}
