// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bytepipe

import "github.com/x448/float16"

// PrimaryID identifies the top-level shape of an encoded value: a scalar
// primitive, a string, an array, an object, or an opaque user-defined
// blob (UserPod).
type PrimaryID uint8

const (
	PIDNull PrimaryID = iota
	PIDPrimitive
	PIDString
	PIDArray
	PIDObject
	PIDUserPod
)

// SecondaryID identifies the scalar type carried by a Primitive value, or
// the element type of a homogeneous Array.
type SecondaryID uint8

const (
	SIDNull SecondaryID = iota
	SIDU8
	SIDU16
	SIDU32
	SIDU64
	SIDS8
	SIDS16
	SIDS32
	SIDS64
	SIDF32
	SIDF64
	SIDC8
	SIDF16

	// SIDBool never appears on the wire; Bool values are carried as a
	// U8 0/1 payload (see Writer.OnPrimitiveBool). It exists only so a
	// Value tree can remember that a scalar originated as a Bool and
	// render it correctly, e.g. as a JSON literal.
	SIDBool
)

// wireSecondaryMax is the largest SecondaryID that can legally appear in
// a wire value header; SIDBool is in-memory only.
const wireSecondaryMax = SIDF16

// secondaryTypeSize is the encoded byte width of each SecondaryID, in
// declaration order; index 0 (SIDNull) carries no payload.
var secondaryTypeSize = [...]uint8{0, 1, 2, 4, 8, 1, 2, 4, 8, 4, 8, 1, 2, 1}

// Parser is the event sink a Reader drives and a Writer or Value tree
// feeds. Implementing every method directly is rarely necessary: embed
// BaseParser and override only the events a given sink cares about.
type Parser interface {
	OnPipeOpen()
	OnPipeClose()

	OnArrayBegin(size uint32)
	OnArrayEnd()
	OnObjectBegin(components uint32)
	OnObjectEnd()
	OnComponentID(id uint16)

	OnNull()
	OnUserPod(typ uint32, data []byte)

	OnPrimitiveBool(v bool)
	OnPrimitiveU8(v uint8)
	OnPrimitiveU16(v uint16)
	OnPrimitiveU32(v uint32)
	OnPrimitiveU64(v uint64)
	OnPrimitiveS8(v int8)
	OnPrimitiveS16(v int16)
	OnPrimitiveS32(v int32)
	OnPrimitiveS64(v int64)
	OnPrimitiveF16(v float16.Float16)
	OnPrimitiveF32(v float32)
	OnPrimitiveF64(v float64)
	OnPrimitiveC8(v byte)
	OnPrimitiveString(v string)

	OnPrimitiveArrayU8(v []uint8)
	OnPrimitiveArrayU16(v []uint16)
	OnPrimitiveArrayU32(v []uint32)
	OnPrimitiveArrayU64(v []uint64)
	OnPrimitiveArrayS8(v []int8)
	OnPrimitiveArrayS16(v []int16)
	OnPrimitiveArrayS32(v []int32)
	OnPrimitiveArrayS64(v []int64)
	OnPrimitiveArrayF16(v []float16.Float16)
	OnPrimitiveArrayF32(v []float32)
	OnPrimitiveArrayF64(v []float64)
	OnPrimitiveArrayC8(v []byte)
}

// BaseParser implements every Parser method as a no-op, so embedding it
// satisfies the interface for a sink that only cares about a handful of
// events. Its own OnPrimitiveU8/U16/U32 forward to its own OnPrimitiveU64
// for convenience, but Go's embedding has no virtual dispatch back to the
// embedding type: a sink that overrides only OnPrimitiveU64 and wants
// OnPrimitiveU8/U16/U32 to reach it must override those narrower methods
// directly too (or call its own OnPrimitiveU64 from within them). The same
// limitation is why bulk array events are not decomposed automatically;
// see DecomposeArrayXxx below.
type BaseParser struct{}

func (BaseParser) OnPipeOpen()                  {}
func (BaseParser) OnPipeClose()                 {}
func (BaseParser) OnArrayBegin(size uint32)     {}
func (BaseParser) OnArrayEnd()                  {}
func (BaseParser) OnObjectBegin(components uint32) {}
func (BaseParser) OnObjectEnd()                 {}
func (BaseParser) OnComponentID(id uint16)      {}
func (BaseParser) OnNull()                      {}
func (BaseParser) OnUserPod(typ uint32, data []byte) {}

func (p BaseParser) OnPrimitiveBool(v bool) {
	if v {
		p.OnPrimitiveU8(1)
	} else {
		p.OnPrimitiveU8(0)
	}
}
func (p BaseParser) OnPrimitiveU8(v uint8)   { p.OnPrimitiveU64(uint64(v)) }
func (p BaseParser) OnPrimitiveU16(v uint16) { p.OnPrimitiveU64(uint64(v)) }
func (p BaseParser) OnPrimitiveU32(v uint32) { p.OnPrimitiveU64(uint64(v)) }
func (BaseParser) OnPrimitiveU64(v uint64)   {}
func (p BaseParser) OnPrimitiveS8(v int8)    { p.OnPrimitiveS64(int64(v)) }
func (p BaseParser) OnPrimitiveS16(v int16)  { p.OnPrimitiveS64(int64(v)) }
func (p BaseParser) OnPrimitiveS32(v int32)  { p.OnPrimitiveS64(int64(v)) }
func (BaseParser) OnPrimitiveS64(v int64)    {}
func (p BaseParser) OnPrimitiveF16(v float16.Float16) { p.OnPrimitiveF64(float64(v.Float32())) }
func (p BaseParser) OnPrimitiveF32(v float32) { p.OnPrimitiveF64(float64(v)) }
func (BaseParser) OnPrimitiveF64(v float64)  {}
func (BaseParser) OnPrimitiveC8(v byte)      {}
func (BaseParser) OnPrimitiveString(v string) {}

// DecomposeArrayXxx helpers give a Parser sink the same "array of
// individually-delivered scalars" behavior the wire format's default
// bulk events would otherwise skip. Go has no virtual dispatch through an
// embedded struct, so BaseParser cannot decompose on a sink's behalf;
// a sink that wants element-by-element delivery calls the matching
// helper from its own OnPrimitiveArrayXxx override instead.
func DecomposeArrayU8(p Parser, v []uint8) {
	p.OnArrayBegin(uint32(len(v)))
	for _, e := range v {
		p.OnPrimitiveU8(e)
	}
	p.OnArrayEnd()
}

func DecomposeArrayU16(p Parser, v []uint16) {
	p.OnArrayBegin(uint32(len(v)))
	for _, e := range v {
		p.OnPrimitiveU16(e)
	}
	p.OnArrayEnd()
}

func DecomposeArrayU32(p Parser, v []uint32) {
	p.OnArrayBegin(uint32(len(v)))
	for _, e := range v {
		p.OnPrimitiveU32(e)
	}
	p.OnArrayEnd()
}

func DecomposeArrayU64(p Parser, v []uint64) {
	p.OnArrayBegin(uint32(len(v)))
	for _, e := range v {
		p.OnPrimitiveU64(e)
	}
	p.OnArrayEnd()
}

func DecomposeArrayS8(p Parser, v []int8) {
	p.OnArrayBegin(uint32(len(v)))
	for _, e := range v {
		p.OnPrimitiveS8(e)
	}
	p.OnArrayEnd()
}

func DecomposeArrayS16(p Parser, v []int16) {
	p.OnArrayBegin(uint32(len(v)))
	for _, e := range v {
		p.OnPrimitiveS16(e)
	}
	p.OnArrayEnd()
}

func DecomposeArrayS32(p Parser, v []int32) {
	p.OnArrayBegin(uint32(len(v)))
	for _, e := range v {
		p.OnPrimitiveS32(e)
	}
	p.OnArrayEnd()
}

func DecomposeArrayS64(p Parser, v []int64) {
	p.OnArrayBegin(uint32(len(v)))
	for _, e := range v {
		p.OnPrimitiveS64(e)
	}
	p.OnArrayEnd()
}

func DecomposeArrayF16(p Parser, v []float16.Float16) {
	p.OnArrayBegin(uint32(len(v)))
	for _, e := range v {
		p.OnPrimitiveF16(e)
	}
	p.OnArrayEnd()
}

func DecomposeArrayF32(p Parser, v []float32) {
	p.OnArrayBegin(uint32(len(v)))
	for _, e := range v {
		p.OnPrimitiveF32(e)
	}
	p.OnArrayEnd()
}

func DecomposeArrayF64(p Parser, v []float64) {
	p.OnArrayBegin(uint32(len(v)))
	for _, e := range v {
		p.OnPrimitiveF64(e)
	}
	p.OnArrayEnd()
}

func DecomposeArrayC8(p Parser, v []byte) {
	p.OnArrayBegin(uint32(len(v)))
	for _, e := range v {
		p.OnPrimitiveC8(e)
	}
	p.OnArrayEnd()
}

func (p BaseParser) OnPrimitiveArrayU8(v []uint8)            {}
func (p BaseParser) OnPrimitiveArrayU16(v []uint16)          {}
func (p BaseParser) OnPrimitiveArrayU32(v []uint32)          {}
func (p BaseParser) OnPrimitiveArrayU64(v []uint64)          {}
func (p BaseParser) OnPrimitiveArrayS8(v []int8)             {}
func (p BaseParser) OnPrimitiveArrayS16(v []int16)           {}
func (p BaseParser) OnPrimitiveArrayS32(v []int32)           {}
func (p BaseParser) OnPrimitiveArrayS64(v []int64)           {}
func (p BaseParser) OnPrimitiveArrayF16(v []float16.Float16) {}
func (p BaseParser) OnPrimitiveArrayF32(v []float32)         {}
func (p BaseParser) OnPrimitiveArrayF64(v []float64)         {}
func (p BaseParser) OnPrimitiveArrayC8(v []byte)             {}
