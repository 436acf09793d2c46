// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bytepipe

// BitWriter packs values of up to 32 bits at a time into a byte stream,
// most-significant-bit first. It is the building block the Hamming codecs
// use to place parity bits at arbitrary bit offsets inside a byte-aligned
// block.
//
// The zero value is ready to use.
type BitWriter struct {
	out          []byte
	buffer       uint32
	bufferedBits uint32
}

// WriteBits appends the low bitCount bits of bits, most-significant bit
// first. bitCount must be in [0, 32].
func (w *BitWriter) WriteBits(bits uint32, bitCount uint32) {
	if bitCount > 32 {
		bitCount = 32
	}
	if bitCount < 32 {
		bits &= (1 << bitCount) - 1
	}
	for bitCount > 0 {
		if w.bufferedBits == 0 {
			for bitCount >= 8 {
				w.out = append(w.out, byte(bits>>(bitCount-8)))
				bitCount -= 8
				if bitCount > 0 {
					bits &= (1 << bitCount) - 1
				}
			}
			w.buffer = bits
			w.bufferedBits = bitCount
			return
		}
		bitsToWrite := 8 - w.bufferedBits
		if bitCount < bitsToWrite {
			bitsToWrite = bitCount
		}
		extracted := bits >> (bitCount - bitsToWrite)
		w.buffer = (w.buffer << bitsToWrite) | extracted
		w.bufferedBits += bitsToWrite
		if w.bufferedBits == 8 {
			w.out = append(w.out, byte(w.buffer))
			w.buffer = 0
			w.bufferedBits = 0
		}
		bitCount -= bitsToWrite
		if bitCount > 0 {
			bits &= (1 << bitCount) - 1
		}
	}
}

// Flush pads any partially-written trailing byte with zero bits and
// returns the full output so far. Flush may be called more than once; it
// does not reset the writer.
func (w *BitWriter) Flush() []byte {
	if w.bufferedBits > 0 {
		pad := 8 - w.bufferedBits
		out := append(w.out, byte(w.buffer<<pad))
		return out
	}
	return w.out
}

// Bytes returns the complete bytes written so far, excluding any
// not-yet-flushed partial trailing byte.
func (w *BitWriter) Bytes() []byte {
	return w.out
}

// BitReader unpacks values of up to 32 bits at a time from a byte slice,
// most-significant-bit first. The zero value reads nothing; use
// NewBitReader to attach a source.
type BitReader struct {
	src          []byte
	pos          int
	buffer       uint32
	bufferedBits uint32
}

// NewBitReader returns a BitReader that reads from src starting at byte 0.
func NewBitReader(src []byte) *BitReader {
	return &BitReader{src: src}
}

func (r *BitReader) nextByte() {
	r.buffer = uint32(r.src[r.pos])
	r.pos++
	r.bufferedBits = 8
}

func (r *BitReader) readBits(bitCount uint32) uint32 {
	var bits uint32
	if r.bufferedBits <= bitCount {
		bits = r.buffer
		count := r.bufferedBits
		r.bufferedBits = 0
		if count < bitCount {
			r.nextByte()
			remaining := bitCount - count
			next := r.readBits(remaining)
			bits = (bits << remaining) | next
		}
	} else {
		bits = r.buffer >> (r.bufferedBits - bitCount)
		r.bufferedBits -= bitCount
		r.buffer &= (1 << r.bufferedBits) - 1
	}
	return bits
}

// ReadBits returns the next bitCount bits, most-significant bit first.
// bitCount must be in [0, 32] and the underlying slice must carry enough
// bytes to satisfy the request; ReadBits panics on index out of range
// exactly as a direct slice read would, since bit-level decoding always
// runs against a length the caller has already validated.
func (r *BitReader) ReadBits(bitCount uint32) uint32 {
	if bitCount > 32 {
		bitCount = 32
	}
	if bitCount == 0 {
		return 0
	}
	if r.bufferedBits == 0 {
		r.nextByte()
	}
	return r.readBits(bitCount)
}
