// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bytepipe

import "math/bits"

// encodeHamming74Nibble encodes the low 4 bits of input into a 7-bit
// Hamming(7,4) codeword. Bit layout, least significant first:
// d0 d1 d2 p0 d3 p1 p2, where p0/p1/p2 are even-parity bits covering
// overlapping subsets of the data bits.
func encodeHamming74Nibble(input uint32) uint32 {
	bit0 := input & 1
	bit1 := (input & 2) >> 1
	bit2 := (input & 4) >> 2
	bit4 := (input & 8) >> 3

	bit6 := bit0 ^ bit2 ^ bit4
	bit5 := bit0 ^ bit1 ^ bit4
	bit3 := bit0 ^ bit1 ^ bit2

	return bit0 | (bit1 << 1) | (bit2 << 2) | (bit3 << 3) | (bit4 << 4) | (bit5 << 5) | (bit6 << 6)
}

// decodeHamming74Nibble decodes a 7-bit Hamming(7,4) codeword, correcting
// a single-bit error if the syndrome is non-zero.
func decodeHamming74Nibble(input uint32) uint32 {
	bit0 := input & 1
	bit1 := (input & 2) >> 1
	bit2 := (input & 4) >> 2
	bit3 := (input & 8) >> 3
	bit4 := (input & 16) >> 4
	bit5 := (input & 32) >> 5
	bit6 := (input & 64) >> 6

	c1 := bit6 ^ bit4 ^ bit2 ^ bit0
	c2 := bit5 ^ bit4 ^ bit1 ^ bit0
	c3 := bit3 ^ bit2 ^ bit1 ^ bit0
	c := c3*4 + c2*2 + c1

	if c != 0 {
		tmp := bit0 | (bit1 << 1) | (bit2 << 2) | (bit3 << 3) | (bit4 << 4) | (bit5 << 5) | (bit6 << 6)
		flag := uint32(1) << (7 - c)
		if tmp&flag != 0 {
			tmp &^= flag
		} else {
			tmp |= flag
		}
		bit4 = (tmp & 16) >> 4
		tmp &= 7
		return tmp | (bit4 << 3)
	}
	return bit0 | (bit1 << 1) | (bit2 << 2) | (bit4 << 3)
}

// encodeHamming74Byte encodes a full byte as two 7-bit codewords packed
// into the low 14 bits of the result.
func encodeHamming74Byte(input uint32) uint32 {
	lo := encodeHamming74Nibble(input & 15)
	hi := encodeHamming74Nibble((input >> 4) & 15)
	return lo | (hi << 7)
}

// decodeHamming74Byte decodes a 14-bit packed pair of Hamming(7,4)
// codewords back into the original byte.
func decodeHamming74Byte(input uint32) uint32 {
	lo := decodeHamming74Nibble(input & 127)
	hi := decodeHamming74Nibble((input >> 7) & 127)
	return lo | (hi << 4)
}

// bitPos maps a cell of the 4x4 grid onto which extended Hamming(15,11)
// places its 11 data bits and 4 row/column parity bits, indexed
// (x,y) -> y*4+x:
//
//	P0 P1 P2 D0
//	P3 D1 D2 D3
//	P4 D4 D5 D6
//	D7 D8 D9 D10
//
// P0 is the overall even-parity bit over the full 16-bit word, used to
// distinguish a corrected single-bit error from an uncorrectable
// double-bit error.
func bitPos(x, y uint32) uint32 { return y*4 + x }

// encodeHamming1511 encodes the low 11 bits of input into a 16-bit
// extended Hamming(15,11) codeword.
func encodeHamming1511(input uint32) uint32 {
	getBit := func(encoded, x, y uint32) uint32 {
		return (encoded & (1 << bitPos(x, y))) >> bitPos(x, y)
	}
	setBit := func(encoded *uint32, x, y, b uint32) {
		*encoded |= b << bitPos(x, y)
	}

	var encoded uint32

	setBit(&encoded, 3, 0, input&1) // D0
	input >>= 1
	setBit(&encoded, 1, 1, input&1) // D1
	input >>= 1
	setBit(&encoded, 2, 1, input&1) // D2
	input >>= 1
	setBit(&encoded, 3, 1, input&1) // D3
	input >>= 1
	setBit(&encoded, 1, 2, input&1) // D4
	input >>= 1
	setBit(&encoded, 2, 2, input&1) // D5
	input >>= 1
	setBit(&encoded, 3, 2, input&1) // D6
	input >>= 1
	setBit(&encoded, 0, 3, input&1) // D7
	input >>= 1
	setBit(&encoded, 1, 3, input&1) // D8
	input >>= 1
	setBit(&encoded, 2, 3, input&1) // D9
	input >>= 1
	setBit(&encoded, 3, 3, input&1) // D10

	setBit(&encoded, 1, 0, getBit(encoded, 1, 1)^getBit(encoded, 1, 2)^getBit(encoded, 1, 3)^
		getBit(encoded, 3, 0)^getBit(encoded, 3, 1)^getBit(encoded, 3, 2)^getBit(encoded, 3, 3)) // P1
	setBit(&encoded, 2, 0, getBit(encoded, 3, 0)^getBit(encoded, 2, 1)^getBit(encoded, 3, 1)^
		getBit(encoded, 2, 2)^getBit(encoded, 3, 2)^getBit(encoded, 2, 3)^getBit(encoded, 3, 3)) // P2
	setBit(&encoded, 0, 1, getBit(encoded, 1, 1)^getBit(encoded, 2, 1)^getBit(encoded, 3, 1)^
		getBit(encoded, 0, 3)^getBit(encoded, 1, 3)^getBit(encoded, 2, 3)^getBit(encoded, 3, 3)) // P3
	setBit(&encoded, 0, 2, getBit(encoded, 1, 2)^getBit(encoded, 2, 2)^getBit(encoded, 3, 2)^
		getBit(encoded, 0, 3)^getBit(encoded, 1, 3)^getBit(encoded, 2, 3)^getBit(encoded, 3, 3)) // P4

	setBit(&encoded, 0, 0, uint32(bits.OnesCount32(encoded))&1) // P0, overall parity

	return encoded
}

// decodeHamming1511 decodes a 16-bit extended Hamming(15,11) codeword,
// correcting a single-bit error. It returns ErrUncorrectableECC if the
// syndrome indicates a second, uncorrectable error.
func decodeHamming1511(encoded uint32) (uint32, error) {
	getBit := func(x, y uint32) uint32 {
		return (encoded & (1 << bitPos(x, y))) >> bitPos(x, y)
	}

	parityBlock1 := getBit(1, 0) ^ getBit(1, 1) ^ getBit(1, 2) ^ getBit(1, 3) ^
		getBit(3, 0) ^ getBit(3, 1) ^ getBit(3, 2) ^ getBit(3, 3)
	parityBlock2 := getBit(2, 0) ^ getBit(3, 0) ^ getBit(2, 1) ^ getBit(3, 1) ^
		getBit(2, 2) ^ getBit(3, 2) ^ getBit(2, 3) ^ getBit(3, 3)
	parityBlock3 := getBit(0, 1) ^ getBit(1, 1) ^ getBit(2, 1) ^ getBit(3, 1) ^
		getBit(0, 3) ^ getBit(1, 3) ^ getBit(2, 3) ^ getBit(3, 3)
	parityBlock4 := getBit(0, 2) ^ getBit(1, 2) ^ getBit(2, 2) ^ getBit(3, 2) ^
		getBit(0, 3) ^ getBit(1, 3) ^ getBit(2, 3) ^ getBit(3, 3)

	var errFlag, row, col uint32
	row |= parityBlock1
	errFlag |= parityBlock1
	if parityBlock2 != 0 {
		row += 2
	}
	errFlag |= parityBlock2
	col |= parityBlock3
	errFlag |= parityBlock3
	if parityBlock4 != 0 {
		col += 2
	}
	errFlag |= parityBlock4

	if errFlag != 0 {
		encoded ^= 1 << bitPos(row, col)
		if bits.OnesCount32(encoded)&1 != 0 {
			return 0, ErrUncorrectableECC
		}
	}

	getBitCorrected := func(x, y uint32) uint32 {
		return (encoded & (1 << bitPos(x, y))) >> bitPos(x, y)
	}

	var output uint32
	output |= getBitCorrected(3, 3) // D10
	output <<= 1
	output |= getBitCorrected(2, 3) // D9
	output <<= 1
	output |= getBitCorrected(1, 3) // D8
	output <<= 1
	output |= getBitCorrected(0, 3) // D7
	output <<= 1
	output |= getBitCorrected(3, 2) // D6
	output <<= 1
	output |= getBitCorrected(2, 2) // D5
	output <<= 1
	output |= getBitCorrected(1, 2) // D4
	output <<= 1
	output |= getBitCorrected(3, 1) // D3
	output <<= 1
	output |= getBitCorrected(2, 1) // D2
	output <<= 1
	output |= getBitCorrected(1, 1) // D1
	output <<= 1
	output |= getBitCorrected(3, 0) // D0

	return output, nil
}
