// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bytepipe

import "encoding/binary"

// Packet pipes guarantee that a downstream pipe always sees a fixed-size
// block, regardless of how many bytes the caller asks ReadBytes/WriteBytes
// to move at a time. This lets block-oriented codecs (the Hamming pipes)
// sit behind an ordinary streaming InputPipe/OutputPipe.
//
// Three header layouts are selected by the target packet size, smallest
// first so that the common case of small packets carries the least
// overhead:
//
//	version 2 (4 bytes):  version:2 | used_size:15 | packet_size:15
//	version 1 (8 bytes):  version:2 | used_size:16 | packet_size:16 | reserved:30
//	version 3 (10 bytes): sentinel_version:2=3, version_byte:8 | used_size:32 | packet_size:32
//
// used_size and packet_size are stored biased by -1 so that a header can
// describe a packet of exactly 2^n bytes using only n bits. All multi-byte
// fields are little-endian, matching the rest of the wire format.
const (
	packetHeaderVersion1 = 1
	packetHeaderVersion2 = 2
	packetHeaderVersion3 = 3
)

// packetVersionFromSize chooses the smallest header layout that can
// describe a packet of the given total size.
func packetVersionFromSize(size uint64) uint32 {
	switch {
	case size < 32766:
		return packetHeaderVersion2
	case size > uint64(^uint16(0))+1:
		return packetHeaderVersion3
	default:
		return packetHeaderVersion1
	}
}

func packetHeaderSize(version uint32) int {
	switch version {
	case packetHeaderVersion1:
		return 8
	case packetHeaderVersion2:
		return 4
	case packetHeaderVersion3:
		return 10
	default:
		return 0
	}
}

// packetHeader is the decoded form of any of the three header layouts.
type packetHeader struct {
	version    uint32
	usedSize   uint32
	packetSize uint32
	reserved   uint32
}

func encodePacketHeader(buf []byte, h packetHeader) {
	switch h.version {
	case packetHeaderVersion1:
		word := uint64(h.version&3) |
			uint64(h.usedSize&0xFFFF)<<2 |
			uint64(h.packetSize&0xFFFF)<<18 |
			uint64(h.reserved&0x3FFFFFFF)<<34
		binary.LittleEndian.PutUint64(buf, word)
	case packetHeaderVersion2:
		word := (h.version & 3) |
			(h.usedSize&0x7FFF)<<2 |
			(h.packetSize&0x7FFF)<<17
		binary.LittleEndian.PutUint32(buf, word)
	case packetHeaderVersion3:
		buf[0] = 3
		buf[1] = packetHeaderVersion3
		binary.LittleEndian.PutUint32(buf[2:6], h.usedSize)
		binary.LittleEndian.PutUint32(buf[6:10], h.packetSize)
	}
}

func decodePacketHeaderTail(version uint32, rest []byte) packetHeader {
	switch version {
	case packetHeaderVersion1:
		full := make([]byte, 8)
		full[0] = rest[0]
		copy(full[1:], rest[1:])
		word := binary.LittleEndian.Uint64(full)
		return packetHeader{
			version:    uint32(word & 3),
			usedSize:   uint32((word >> 2) & 0xFFFF),
			packetSize: uint32((word >> 18) & 0xFFFF),
			reserved:   uint32((word >> 34) & 0x3FFFFFFF),
		}
	case packetHeaderVersion2:
		full := make([]byte, 4)
		full[0] = rest[0]
		copy(full[1:], rest[1:])
		word := binary.LittleEndian.Uint32(full)
		return packetHeader{
			version:    word & 3,
			usedSize:   (word >> 2) & 0x7FFF,
			packetSize: (word >> 17) & 0x7FFF,
		}
	case packetHeaderVersion3:
		return packetHeader{
			version:    packetHeaderVersion3,
			usedSize:   binary.LittleEndian.Uint32(rest[2:6]),
			packetSize: binary.LittleEndian.Uint32(rest[6:10]),
		}
	}
	return packetHeader{}
}

// PacketInputPipe reads fixed-size packets from a downstream pipe and
// serves their used payload bytes through ReadBytes as an ordinary
// continuous stream.
type PacketInputPipe struct {
	downstream   InputPipe
	buffer       []byte
	pos          int
	lastReserved uint32
}

// NewPacketInputPipe wraps downstream, a stream of self-describing packets.
func NewPacketInputPipe(downstream InputPipe) *PacketInputPipe {
	return &PacketInputPipe{downstream: downstream}
}

// LastReserved returns the reserved-bits tag carried by the most recently
// decoded packet header. Only the version 1 header layout has any reserved
// bits (see packetHeaderVersion2/3, which have none); it reads back as 0
// for every packet framed with those layouts.
func (p *PacketInputPipe) LastReserved() uint32 {
	return p.lastReserved
}

func (p *PacketInputPipe) readNextPacket() error {
	head := make([]byte, 1)
	if _, err := p.downstream.ReadBytes(head); err != nil {
		return err
	}
	version := uint32(head[0] & 3)
	if version == 3 {
		rest := make([]byte, packetHeaderSize(packetHeaderVersion3)-1)
		if _, err := p.downstream.ReadBytes(rest); err != nil {
			return err
		}
		if rest[0] != packetHeaderVersion3 {
			return ErrBadPacketHeader
		}
		full := append([]byte{head[0]}, rest...)
		h := decodePacketHeaderTail(version, full)
		return p.readPacketBody(h)
	}
	if version == 0 {
		return ErrBadPacketHeader
	}
	rest := make([]byte, packetHeaderSize(version)-1)
	if _, err := p.downstream.ReadBytes(rest); err != nil {
		return err
	}
	full := append([]byte{head[0]}, rest...)
	h := decodePacketHeaderTail(version, full)
	return p.readPacketBody(h)
}

func (p *PacketInputPipe) readPacketBody(h packetHeader) error {
	usedBytes := h.usedSize + 1
	packetSize := h.packetSize + 1
	headerSize := uint32(packetHeaderSize(h.version))
	if packetSize < headerSize || usedBytes > packetSize-headerSize {
		return ErrBadPacketHeader
	}
	unusedBytes := (packetSize - headerSize) - usedBytes

	body := make([]byte, usedBytes+unusedBytes)
	if _, err := p.downstream.ReadBytes(body); err != nil {
		return err
	}
	p.buffer = append(p.buffer, body[:usedBytes]...)
	p.lastReserved = h.reserved
	return nil
}

func (p *PacketInputPipe) ReadBytes(dst []byte) (int, error) {
	for i := range dst {
		if p.pos >= len(p.buffer) {
			p.buffer = p.buffer[:0]
			p.pos = 0
			if err := p.readNextPacket(); err != nil {
				return i, err
			}
		}
		dst[i] = p.buffer[p.pos]
		p.pos++
	}
	return len(dst), nil
}

// PacketOutputPipe buffers WriteBytes calls and flushes a fixed-size
// packet to the downstream pipe each time the buffer fills, padding the
// final partial packet with defaultWord on Flush.
type PacketOutputPipe struct {
	downstream    OutputPipe
	maxPacketSize int
	currentSize   int
	buffer        []byte
	defaultWord   byte
	version       uint32
	headerSize    int
	reserved      uint32
}

// SetReserved sets a tag carried in the reserved bits of every subsequent
// packet header this pipe writes. Only the version 1 header layout has
// reserved bits (see packetVersionFromSize); the tag is silently dropped
// when a packet is framed with version 2 or 3 instead, and must fit in 30
// bits.
func (p *PacketOutputPipe) SetReserved(v uint32) {
	p.reserved = v & 0x3FFFFFFF
}

// NewPacketOutputPipe wraps downstream, splitting writes into packets of
// packetSize total bytes (including header).
func NewPacketOutputPipe(downstream OutputPipe, packetSize int) *PacketOutputPipe {
	return newPacketOutputPipeDefault(downstream, packetSize, 0)
}

// NewPacketOutputPipeWithDefault is like NewPacketOutputPipe but pads
// trailing unused packet bytes with defaultWord instead of zero.
func NewPacketOutputPipeWithDefault(downstream OutputPipe, packetSize int, defaultWord byte) *PacketOutputPipe {
	return newPacketOutputPipeDefault(downstream, packetSize, defaultWord)
}

func newPacketOutputPipeDefault(downstream OutputPipe, packetSize int, defaultWord byte) *PacketOutputPipe {
	version := packetVersionFromSize(uint64(packetSize))
	headerSize := packetHeaderSize(version)
	maxPacketSize := packetSize - headerSize
	return &PacketOutputPipe{
		downstream:    downstream,
		maxPacketSize: maxPacketSize,
		buffer:        make([]byte, packetSize),
		defaultWord:   defaultWord,
		version:       version,
		headerSize:    headerSize,
	}
}

func (p *PacketOutputPipe) WriteBytes(src []byte) (int, error) {
	total := len(src)
	for len(src) > 0 {
		room := p.maxPacketSize - p.currentSize
		n := len(src)
		if n > room {
			n = room
		}
		copy(p.buffer[p.headerSize+p.currentSize:], src[:n])
		src = src[n:]
		p.currentSize += n
		if p.currentSize == p.maxPacketSize {
			if err := p.flushPacket(); err != nil {
				return total - len(src), err
			}
		}
	}
	return total, nil
}

func (p *PacketOutputPipe) flushPacket() error {
	if p.currentSize == 0 {
		return nil
	}
	payload := p.buffer[p.headerSize:]
	for i := p.currentSize; i < p.maxPacketSize; i++ {
		payload[i] = p.defaultWord
	}

	h := packetHeader{
		version:    p.version,
		usedSize:   uint32(p.currentSize) - 1,
		packetSize: uint32(p.maxPacketSize+p.headerSize) - 1,
		reserved:   p.reserved,
	}
	encodePacketHeader(p.buffer[:p.headerSize], h)

	if _, err := p.downstream.WriteBytes(p.buffer); err != nil {
		return err
	}
	p.currentSize = 0
	return nil
}

func (p *PacketOutputPipe) Flush() error {
	if err := p.flushPacket(); err != nil {
		return err
	}
	return p.downstream.Flush()
}
