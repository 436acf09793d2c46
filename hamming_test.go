package bytepipe

import "testing"

func TestHamming74NibbleRoundTrip(t *testing.T) {
	for n := uint32(0); n < 16; n++ {
		code := encodeHamming74Nibble(n)
		if got := decodeHamming74Nibble(code); got != n {
			t.Fatalf("nibble %d: decode(encode) = %d", n, got)
		}
	}
}

func TestHamming74NibbleCorrectsSingleBitError(t *testing.T) {
	for n := uint32(0); n < 16; n++ {
		code := encodeHamming74Nibble(n)
		for bit := uint32(0); bit < 7; bit++ {
			flipped := code ^ (1 << bit)
			if got := decodeHamming74Nibble(flipped); got != n {
				t.Fatalf("nibble %d bit %d: decode(flipped) = %d", n, bit, got)
			}
		}
	}
}

func TestHamming74ByteRoundTrip(t *testing.T) {
	for n := uint32(0); n < 256; n += 7 {
		code := encodeHamming74Byte(n)
		if got := decodeHamming74Byte(code); got != n {
			t.Fatalf("byte %d: decode(encode) = %d", n, got)
		}
	}
}

func TestHamming1511RoundTrip(t *testing.T) {
	for n := uint32(0); n < 1<<11; n += 37 {
		code := encodeHamming1511(n)
		got, err := decodeHamming1511(code)
		if err != nil {
			t.Fatalf("value %d: decode error: %v", n, err)
		}
		if got != n {
			t.Fatalf("value %d: decode(encode) = %d", n, got)
		}
	}
}

func TestHamming1511CorrectsSingleBitError(t *testing.T) {
	const n = 0x2A5
	code := encodeHamming1511(n)
	for bit := uint32(0); bit < 16; bit++ {
		flipped := code ^ (1 << bit)
		got, err := decodeHamming1511(flipped)
		if err != nil {
			t.Fatalf("bit %d: unexpected error: %v", bit, err)
		}
		if got != n {
			t.Fatalf("bit %d: decode(flipped) = %#x, want %#x", bit, got, n)
		}
	}
}

func TestHamming1511DetectsDoubleBitError(t *testing.T) {
	const n = 0x155
	code := encodeHamming1511(n)
	flipped := code ^ (1 << 2) ^ (1 << 9)
	if _, err := decodeHamming1511(flipped); err == nil {
		t.Fatalf("decode with two flipped bits: want error, got nil")
	}
}
