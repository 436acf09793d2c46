// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bytepipe

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/x448/float16"
)

// WriterState tracks what kind of container, if any, a Writer is
// currently emitting values into.
type WriterState uint8

const (
	StateClosed WriterState = iota
	StateNormal
	StateArray
	StateObject
)

// Writer is a Parser sink that serializes the events it receives into
// the tagged binary wire format. Pair it with a Value tree walker, a
// hand-written producer, or a Reader reading from a different pipe to
// transcode between transports.
type Writer struct {
	pipe         OutputPipe
	bo           binary.ByteOrder
	version      WireVersion
	defaultState WriterState
	stateStack   []WriterState
}

var _ Parser = (*Writer)(nil)

// NewWriter returns a Writer that emits the wire format to pipe, advertising
// the pipe header version given by WithWireVersion (WireV1 if unset, to
// match a plain reader with no version-specific expectations). A WireV1
// writer decomposes every bulk OnPrimitiveArrayXxx call into the
// heterogeneous OnArrayBegin/per-element/OnArrayEnd form instead of the
// compact bulk encoding; WithWireVersion(WireV2) or WithWireVersion(WireV3)
// opts into the bulk wire encoding.
func NewWriter(pipe OutputPipe, opts ...Option) *Writer {
	o := resolveOptions(opts)
	return &Writer{pipe: pipe, bo: o.ByteOrder, version: o.Version, defaultState: StateClosed}
}

func (w *Writer) currentState() WriterState {
	if len(w.stateStack) == 0 {
		return w.defaultState
	}
	return w.stateStack[len(w.stateStack)-1]
}

func (w *Writer) write(b []byte) {
	if _, err := w.pipe.WriteBytes(b); err != nil {
		panic(fmt.Errorf("bytepipe: write failed: %w", err))
	}
}

func idByte(primary PrimaryID, secondary SecondaryID) byte {
	return byte(primary) | byte(secondary)<<4
}

func (w *Writer) OnPipeOpen() {
	if w.defaultState != StateClosed {
		panic(fmt.Errorf("%w: pipe already open", ErrBadState))
	}
	w.defaultState = StateNormal
	w.write([]byte{byte(w.version)})
}

func (w *Writer) OnPipeClose() {
	if w.defaultState != StateNormal {
		panic(fmt.Errorf("%w: pipe already closed", ErrBadState))
	}
	w.defaultState = StateClosed
	w.write([]byte{0})
}

func (w *Writer) OnArrayBegin(size uint32) {
	w.stateStack = append(w.stateStack, StateArray)
	var buf [5]byte
	buf[0] = idByte(PIDArray, SIDNull)
	w.bo.PutUint32(buf[1:], size)
	w.write(buf[:])
}

func (w *Writer) OnArrayEnd() {
	if w.currentState() != StateArray {
		panic(fmt.Errorf("%w: not in array mode", ErrBadState))
	}
	w.stateStack = w.stateStack[:len(w.stateStack)-1]
}

func (w *Writer) OnObjectBegin(components uint32) {
	w.stateStack = append(w.stateStack, StateObject)
	var buf [5]byte
	buf[0] = idByte(PIDObject, SIDNull)
	w.bo.PutUint32(buf[1:], components)
	w.write(buf[:])
}

func (w *Writer) OnObjectEnd() {
	if w.currentState() != StateObject {
		panic(fmt.Errorf("%w: not in object mode", ErrBadState))
	}
	w.stateStack = w.stateStack[:len(w.stateStack)-1]
}

func (w *Writer) OnComponentID(id uint16) {
	if w.currentState() != StateObject {
		panic(fmt.Errorf("%w: not in object mode", ErrBadState))
	}
	var buf [2]byte
	w.bo.PutUint16(buf[:], id)
	w.write(buf[:])
}

func (w *Writer) OnNull() {
	w.write([]byte{idByte(PIDPrimitive, SIDNull)})
}

func (w *Writer) onPrimitive(secondary SecondaryID, value uint64) {
	n := secondaryTypeSize[secondary]
	buf := make([]byte, 1+n)
	buf[0] = idByte(PIDPrimitive, secondary)
	switch n {
	case 1:
		buf[1] = byte(value)
	case 2:
		w.bo.PutUint16(buf[1:], uint16(value))
	case 4:
		w.bo.PutUint32(buf[1:], uint32(value))
	case 8:
		w.bo.PutUint64(buf[1:], value)
	}
	w.write(buf)
}

// OnPrimitiveBool encodes a Bool as a U8 0/1 payload: the wire format has
// no secondary id reserved for Bool, see SIDBool.
func (w *Writer) OnPrimitiveBool(v bool) {
	if v {
		w.onPrimitive(SIDU8, 1)
	} else {
		w.onPrimitive(SIDU8, 0)
	}
}

func (w *Writer) OnPrimitiveU8(v uint8)   { w.onPrimitive(SIDU8, uint64(v)) }
func (w *Writer) OnPrimitiveU16(v uint16) { w.onPrimitive(SIDU16, uint64(v)) }
func (w *Writer) OnPrimitiveU32(v uint32) { w.onPrimitive(SIDU32, uint64(v)) }
func (w *Writer) OnPrimitiveU64(v uint64) { w.onPrimitive(SIDU64, v) }
func (w *Writer) OnPrimitiveS8(v int8)    { w.onPrimitive(SIDS8, uint64(uint8(v))) }
func (w *Writer) OnPrimitiveS16(v int16)  { w.onPrimitive(SIDS16, uint64(uint16(v))) }
func (w *Writer) OnPrimitiveS32(v int32)  { w.onPrimitive(SIDS32, uint64(uint32(v))) }
func (w *Writer) OnPrimitiveS64(v int64)  { w.onPrimitive(SIDS64, uint64(v)) }
func (w *Writer) OnPrimitiveF16(v float16.Float16) {
	w.onPrimitive(SIDF16, uint64(v.Bits()))
}
func (w *Writer) OnPrimitiveF32(v float32) { w.onPrimitive(SIDF32, uint64(math.Float32bits(v))) }
func (w *Writer) OnPrimitiveF64(v float64) { w.onPrimitive(SIDF64, math.Float64bits(v)) }
func (w *Writer) OnPrimitiveC8(v byte)     { w.onPrimitive(SIDC8, uint64(v)) }

func (w *Writer) OnPrimitiveString(v string) {
	var buf [5]byte
	buf[0] = idByte(PIDString, SIDC8)
	w.bo.PutUint32(buf[1:], uint32(len(v)))
	w.write(buf[:])
	w.write([]byte(v))
}

func (w *Writer) onPrimitiveArrayHeader(secondary SecondaryID, size int) {
	var buf [5]byte
	buf[0] = idByte(PIDArray, secondary)
	w.bo.PutUint32(buf[1:], uint32(size))
	w.write(buf[:])
}

func (w *Writer) OnPrimitiveArrayU8(v []uint8) {
	if w.version == WireV1 {
		DecomposeArrayU8(w, v)
		return
	}
	w.onPrimitiveArrayHeader(SIDU8, len(v))
	w.write(v)
}

func (w *Writer) OnPrimitiveArrayU16(v []uint16) {
	if w.version == WireV1 {
		DecomposeArrayU16(w, v)
		return
	}
	w.onPrimitiveArrayHeader(SIDU16, len(v))
	buf := make([]byte, len(v)*2)
	for i, e := range v {
		w.bo.PutUint16(buf[i*2:], e)
	}
	w.write(buf)
}

func (w *Writer) OnPrimitiveArrayU32(v []uint32) {
	if w.version == WireV1 {
		DecomposeArrayU32(w, v)
		return
	}
	w.onPrimitiveArrayHeader(SIDU32, len(v))
	buf := make([]byte, len(v)*4)
	for i, e := range v {
		w.bo.PutUint32(buf[i*4:], e)
	}
	w.write(buf)
}

func (w *Writer) OnPrimitiveArrayU64(v []uint64) {
	if w.version == WireV1 {
		DecomposeArrayU64(w, v)
		return
	}
	w.onPrimitiveArrayHeader(SIDU64, len(v))
	buf := make([]byte, len(v)*8)
	for i, e := range v {
		w.bo.PutUint64(buf[i*8:], e)
	}
	w.write(buf)
}

func (w *Writer) OnPrimitiveArrayS8(v []int8) {
	if w.version == WireV1 {
		DecomposeArrayS8(w, v)
		return
	}
	w.onPrimitiveArrayHeader(SIDS8, len(v))
	buf := make([]byte, len(v))
	for i, e := range v {
		buf[i] = byte(e)
	}
	w.write(buf)
}

func (w *Writer) OnPrimitiveArrayS16(v []int16) {
	if w.version == WireV1 {
		DecomposeArrayS16(w, v)
		return
	}
	w.onPrimitiveArrayHeader(SIDS16, len(v))
	buf := make([]byte, len(v)*2)
	for i, e := range v {
		w.bo.PutUint16(buf[i*2:], uint16(e))
	}
	w.write(buf)
}

func (w *Writer) OnPrimitiveArrayS32(v []int32) {
	if w.version == WireV1 {
		DecomposeArrayS32(w, v)
		return
	}
	w.onPrimitiveArrayHeader(SIDS32, len(v))
	buf := make([]byte, len(v)*4)
	for i, e := range v {
		w.bo.PutUint32(buf[i*4:], uint32(e))
	}
	w.write(buf)
}

func (w *Writer) OnPrimitiveArrayS64(v []int64) {
	if w.version == WireV1 {
		DecomposeArrayS64(w, v)
		return
	}
	w.onPrimitiveArrayHeader(SIDS64, len(v))
	buf := make([]byte, len(v)*8)
	for i, e := range v {
		w.bo.PutUint64(buf[i*8:], uint64(e))
	}
	w.write(buf)
}

func (w *Writer) OnPrimitiveArrayF16(v []float16.Float16) {
	if w.version == WireV1 {
		DecomposeArrayF16(w, v)
		return
	}
	w.onPrimitiveArrayHeader(SIDF16, len(v))
	buf := make([]byte, len(v)*2)
	for i, e := range v {
		w.bo.PutUint16(buf[i*2:], uint16(e.Bits()))
	}
	w.write(buf)
}

func (w *Writer) OnPrimitiveArrayF32(v []float32) {
	if w.version == WireV1 {
		DecomposeArrayF32(w, v)
		return
	}
	w.onPrimitiveArrayHeader(SIDF32, len(v))
	buf := make([]byte, len(v)*4)
	for i, e := range v {
		w.bo.PutUint32(buf[i*4:], math.Float32bits(e))
	}
	w.write(buf)
}

func (w *Writer) OnPrimitiveArrayF64(v []float64) {
	if w.version == WireV1 {
		DecomposeArrayF64(w, v)
		return
	}
	w.onPrimitiveArrayHeader(SIDF64, len(v))
	buf := make([]byte, len(v)*8)
	for i, e := range v {
		w.bo.PutUint64(buf[i*8:], math.Float64bits(e))
	}
	w.write(buf)
}

func (w *Writer) OnPrimitiveArrayC8(v []byte) {
	if w.version == WireV1 {
		DecomposeArrayC8(w, v)
		return
	}
	w.onPrimitiveArrayHeader(SIDC8, len(v))
	w.write(v)
}

// OnUserPod writes an opaque blob tagged with a type id in [0, 1<<20).
// Per the wire format's UserPod encoding, the low 4 bits of typ live in
// the shared id byte and the remaining 16 bits follow as a field in the
// Writer's byte order (little-endian by default), so typ must fit in 20
// bits.
func (w *Writer) OnUserPod(typ uint32, data []byte) {
	if typ > 1<<20-1 {
		panic(fmt.Errorf("%w: user pod type %d exceeds 20 bits", ErrBadState, typ))
	}
	var buf [7]byte
	buf[0] = idByte(PIDUserPod, SecondaryID(typ&15))
	w.bo.PutUint16(buf[1:3], uint16(typ>>4))
	w.bo.PutUint32(buf[3:7], uint32(len(data)))
	w.write(buf[:])
	w.write(data)
}
