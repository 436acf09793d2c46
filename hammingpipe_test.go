package bytepipe

import (
	"bytes"
	"errors"
	"testing"
)

func TestRawHamming74RoundTrip(t *testing.T) {
	payload := []byte{0x00, 0xFF, 0x5A, 0xA5, 0x12, 0x34, 0x56, 0x78}
	var buf bytes.Buffer
	out := NewRawHamming74OutputPipe(NewOutputPipe(&buf))
	if _, err := out.WriteBytes(payload); err != nil {
		t.Fatalf("WriteBytes: %v", err)
	}
	if err := out.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	in := NewRawHamming74InputPipe(NewInputPipe(&buf))
	got := make([]byte, len(payload))
	if _, err := in.ReadBytes(got); err != nil {
		t.Fatalf("ReadBytes: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("round trip mismatch: got %v, want %v", got, payload)
	}
}

func TestRawHamming74RejectsUnalignedLength(t *testing.T) {
	var buf bytes.Buffer
	out := NewRawHamming74OutputPipe(NewOutputPipe(&buf))
	if _, err := out.WriteBytes([]byte{1, 2, 3}); !errors.Is(err, ErrUnalignedECC) {
		t.Fatalf("WriteBytes error = %v, want ErrUnalignedECC", err)
	}

	in := NewRawHamming74InputPipe(NewInputPipe(&buf))
	if _, err := in.ReadBytes(make([]byte, 3)); !errors.Is(err, ErrUnalignedECC) {
		t.Fatalf("ReadBytes error = %v, want ErrUnalignedECC", err)
	}
}

func TestRawHamming1511RoundTrip(t *testing.T) {
	payload := make([]byte, 22)
	for i := range payload {
		payload[i] = byte(i * 7)
	}
	var buf bytes.Buffer
	out := NewRawHamming1511OutputPipe(NewOutputPipe(&buf))
	if _, err := out.WriteBytes(payload); err != nil {
		t.Fatalf("WriteBytes: %v", err)
	}
	if err := out.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	in := NewRawHamming1511InputPipe(NewInputPipe(&buf))
	got := make([]byte, len(payload))
	if _, err := in.ReadBytes(got); err != nil {
		t.Fatalf("ReadBytes: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("round trip mismatch: got %v, want %v", got, payload)
	}
}

func TestFramedHamming74RoundTrip(t *testing.T) {
	payload := bytes.Repeat([]byte{0x11, 0x22, 0x33, 0x44}, 20)
	var buf bytes.Buffer
	out, err := NewHamming74OutputPipe(NewOutputPipe(&buf), 32)
	if err != nil {
		t.Fatalf("NewHamming74OutputPipe: %v", err)
	}
	if _, err := out.WriteBytes(payload); err != nil {
		t.Fatalf("WriteBytes: %v", err)
	}
	if err := out.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	in := NewHamming74InputPipe(NewInputPipe(&buf))
	got := make([]byte, len(payload))
	if _, err := in.ReadBytes(got); err != nil {
		t.Fatalf("ReadBytes: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("round trip mismatch: got %v, want %v", got, payload)
	}
}

func TestNewHamming74OutputPipeRejectsUnalignedBlockSize(t *testing.T) {
	var buf bytes.Buffer
	if _, err := NewHamming74OutputPipe(NewOutputPipe(&buf), 10); !errors.Is(err, ErrUnalignedECC) {
		t.Fatalf("error = %v, want ErrUnalignedECC", err)
	}
}

func TestNewHamming1511OutputPipeRejectsUnalignedBlockSize(t *testing.T) {
	var buf bytes.Buffer
	if _, err := NewHamming1511OutputPipe(NewOutputPipe(&buf), 10); !errors.Is(err, ErrUnalignedECC) {
		t.Fatalf("error = %v, want ErrUnalignedECC", err)
	}
}
