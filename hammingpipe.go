// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bytepipe

// Hamming(7,4) and extended Hamming(15,11) forward error correction,
// stacked as InputPipe/OutputPipe layers so they compose with packet
// framing and any upstream transform exactly like every other pipe in
// this package.
//
// Hamming(7,4) packs each encoded byte as two 7-bit codewords bit-packed
// tightly into a 14-bit span; it needs a block of 4 decoded bytes to land
// on a byte boundary (4 bytes = 32 bits decoded -> 56 bits = 7 bytes
// encoded). Extended Hamming(15,11) needs a block of 11 decoded bytes (88
// bits decoded -> 8 groups of 11 bits -> 8 codewords of 16 bits = 16
// bytes encoded); each 16-bit codeword is written as two big-endian bytes
// rather than a native-endian reinterpret, so the wire format stays
// portable across architectures.

// RawHamming74InputPipe decodes a Hamming(7,4)-protected byte stream.
// ReadBytes requires len(dst) to be a multiple of 4.
type RawHamming74InputPipe struct {
	downstream InputPipe
}

// NewRawHamming74InputPipe wraps downstream with Hamming(7,4) decoding.
func NewRawHamming74InputPipe(downstream InputPipe) *RawHamming74InputPipe {
	return &RawHamming74InputPipe{downstream: downstream}
}

func (p *RawHamming74InputPipe) ReadBytes(dst []byte) (int, error) {
	decodedBytes := len(dst)
	if decodedBytes%4 != 0 {
		return 0, ErrUnalignedECC
	}
	decodedBits := uint32(decodedBytes) * 8
	encodedBits := decodedBits + (decodedBits/4)*3
	encodedBytes := encodedBits / 8

	buf := make([]byte, encodedBytes)
	if _, err := p.downstream.ReadBytes(buf); err != nil {
		return 0, err
	}

	r := NewBitReader(buf)
	for i := 0; i < decodedBytes; i++ {
		dst[i] = byte(decodeHamming74Byte(r.ReadBits(14)))
	}
	return decodedBytes, nil
}

// RawHamming74OutputPipe encodes a byte stream with Hamming(7,4).
// WriteBytes requires len(src) to be a multiple of 4.
type RawHamming74OutputPipe struct {
	downstream OutputPipe
}

// NewRawHamming74OutputPipe wraps downstream with Hamming(7,4) encoding.
func NewRawHamming74OutputPipe(downstream OutputPipe) *RawHamming74OutputPipe {
	return &RawHamming74OutputPipe{downstream: downstream}
}

func (p *RawHamming74OutputPipe) WriteBytes(src []byte) (int, error) {
	decodedBytes := len(src)
	if decodedBytes%4 != 0 {
		return 0, ErrUnalignedECC
	}

	var w BitWriter
	for i := 0; i < decodedBytes; i++ {
		w.WriteBits(encodeHamming74Byte(uint32(src[i])), 14)
	}
	buf := w.Flush()

	if _, err := p.downstream.WriteBytes(buf); err != nil {
		return 0, err
	}
	return decodedBytes, nil
}

func (p *RawHamming74OutputPipe) Flush() error {
	return p.downstream.Flush()
}

// RawHamming1511InputPipe decodes an extended Hamming(15,11)-protected
// byte stream. ReadBytes requires len(dst) to be a multiple of 11.
type RawHamming1511InputPipe struct {
	downstream InputPipe
}

// NewRawHamming1511InputPipe wraps downstream with extended Hamming(15,11) decoding.
func NewRawHamming1511InputPipe(downstream InputPipe) *RawHamming1511InputPipe {
	return &RawHamming1511InputPipe{downstream: downstream}
}

func (p *RawHamming1511InputPipe) ReadBytes(dst []byte) (int, error) {
	decodedBytes := len(dst)
	if decodedBytes%11 != 0 {
		return 0, ErrUnalignedECC
	}
	decodedBits := uint32(decodedBytes) * 8
	groups := decodedBits / 11
	encodedBytes := groups * 2

	buf := make([]byte, encodedBytes)
	if _, err := p.downstream.ReadBytes(buf); err != nil {
		return 0, err
	}

	var w BitWriter
	for i := uint32(0); i < groups; i++ {
		codeword := uint32(buf[i*2])<<8 | uint32(buf[i*2+1])
		data, err := decodeHamming1511(codeword)
		if err != nil {
			return 0, err
		}
		w.WriteBits(data, 11)
	}
	copy(dst, w.Flush())
	return decodedBytes, nil
}

// RawHamming1511OutputPipe encodes a byte stream with extended
// Hamming(15,11). WriteBytes requires len(src) to be a multiple of 11.
type RawHamming1511OutputPipe struct {
	downstream OutputPipe
}

// NewRawHamming1511OutputPipe wraps downstream with extended Hamming(15,11) encoding.
func NewRawHamming1511OutputPipe(downstream OutputPipe) *RawHamming1511OutputPipe {
	return &RawHamming1511OutputPipe{downstream: downstream}
}

func (p *RawHamming1511OutputPipe) WriteBytes(src []byte) (int, error) {
	decodedBytes := len(src)
	if decodedBytes%11 != 0 {
		return 0, ErrUnalignedECC
	}
	decodedBits := uint32(decodedBytes) * 8
	groups := decodedBits / 11

	r := NewBitReader(src)
	buf := make([]byte, groups*2)
	for i := uint32(0); i < groups; i++ {
		data := r.ReadBits(11)
		codeword := encodeHamming1511(data)
		buf[i*2] = byte(codeword >> 8)
		buf[i*2+1] = byte(codeword)
	}

	if _, err := p.downstream.WriteBytes(buf); err != nil {
		return 0, err
	}
	return decodedBytes, nil
}

func (p *RawHamming1511OutputPipe) Flush() error {
	return p.downstream.Flush()
}

// Hamming74InputPipe decodes a byte stream that was packet-framed and
// then Hamming(7,4)-protected, absorbing the fixed-size block requirement
// behind PacketInputPipe's arbitrary-length ReadBytes.
type Hamming74InputPipe struct {
	packetPipe *PacketInputPipe
	hamming    *RawHamming74InputPipe
}

// NewHamming74InputPipe wraps downstream with packet-framed Hamming(7,4) decoding.
func NewHamming74InputPipe(downstream InputPipe) *Hamming74InputPipe {
	hamming := NewRawHamming74InputPipe(downstream)
	return &Hamming74InputPipe{
		packetPipe: NewPacketInputPipe(hamming),
		hamming:    hamming,
	}
}

func (p *Hamming74InputPipe) ReadBytes(dst []byte) (int, error) {
	return p.packetPipe.ReadBytes(dst)
}

// Hamming74OutputPipe encodes a byte stream with Hamming(7,4), framing
// each fixed-size encoded block inside a packet so that ReadBytes/WriteBytes
// calls of arbitrary length are still possible at the caller's level.
type Hamming74OutputPipe struct {
	hamming    *RawHamming74OutputPipe
	packetPipe *PacketOutputPipe
}

// NewHamming74OutputPipe wraps downstream with packet-framed Hamming(7,4)
// encoding, using blockSize decoded bytes per packet. blockSize must be a
// multiple of 4.
func NewHamming74OutputPipe(downstream OutputPipe, blockSize int) (*Hamming74OutputPipe, error) {
	if blockSize%4 != 0 {
		return nil, ErrUnalignedECC
	}
	hamming := NewRawHamming74OutputPipe(downstream)
	return &Hamming74OutputPipe{
		hamming:    hamming,
		packetPipe: NewPacketOutputPipe(hamming, blockSize),
	}, nil
}

func (p *Hamming74OutputPipe) WriteBytes(src []byte) (int, error) {
	return p.packetPipe.WriteBytes(src)
}

func (p *Hamming74OutputPipe) Flush() error {
	return p.packetPipe.Flush()
}

// Hamming1511InputPipe decodes a byte stream that was packet-framed and
// then extended-Hamming(15,11)-protected.
type Hamming1511InputPipe struct {
	packetPipe *PacketInputPipe
	hamming    *RawHamming1511InputPipe
}

// NewHamming1511InputPipe wraps downstream with packet-framed extended Hamming(15,11) decoding.
func NewHamming1511InputPipe(downstream InputPipe) *Hamming1511InputPipe {
	hamming := NewRawHamming1511InputPipe(downstream)
	return &Hamming1511InputPipe{
		packetPipe: NewPacketInputPipe(hamming),
		hamming:    hamming,
	}
}

func (p *Hamming1511InputPipe) ReadBytes(dst []byte) (int, error) {
	return p.packetPipe.ReadBytes(dst)
}

// Hamming1511OutputPipe encodes a byte stream with extended Hamming(15,11),
// framing each fixed-size encoded block inside a packet.
type Hamming1511OutputPipe struct {
	hamming    *RawHamming1511OutputPipe
	packetPipe *PacketOutputPipe
}

// NewHamming1511OutputPipe wraps downstream with packet-framed extended
// Hamming(15,11) encoding, using blockSize decoded bytes per packet.
// blockSize must be a multiple of 11.
func NewHamming1511OutputPipe(downstream OutputPipe, blockSize int) (*Hamming1511OutputPipe, error) {
	if blockSize%11 != 0 {
		return nil, ErrUnalignedECC
	}
	hamming := NewRawHamming1511OutputPipe(downstream)
	return &Hamming1511OutputPipe{
		hamming:    hamming,
		packetPipe: NewPacketOutputPipe(hamming, blockSize),
	}, nil
}

func (p *Hamming1511OutputPipe) WriteBytes(src []byte) (int, error) {
	return p.packetPipe.WriteBytes(src)
}

func (p *Hamming1511OutputPipe) Flush() error {
	return p.packetPipe.Flush()
}
