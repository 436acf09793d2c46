// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bytepipe

import "github.com/x448/float16"

// WireVersion identifies a pipe header version. A Writer advertises one in
// its OnPipeOpen byte; a Reader accepts any value up to WireV3 and decodes
// the same uniform wire shape regardless, since this format folds the
// V2/V3 "element secondary id" into the id byte's own secondary nibble
// rather than adding it as a distinct field. The only version-sensitive
// choice left is on the write side: whether to emit a bulk primitive
// array natively (V2/V3) or decompose it into the heterogeneous V1 form
// (see Writer's OnPrimitiveArrayXxx methods and ToV1Adapter below).
type WireVersion uint8

const (
	WireV1 WireVersion = 1
	WireV2 WireVersion = 2
	WireV3 WireVersion = 3
)

// ToV1Adapter wraps a downstream Parser and decomposes every bulk
// OnPrimitiveArrayXxx call it receives into the per-element
// OnArrayBegin/OnPrimitiveXxx/OnArrayEnd sequence a V1-only sink expects,
// forwarding every other event unchanged. Use it to feed a V2/V3 event
// stream (a Reader decoding a newer wire session, or a Value tree built
// from one) into a sink that only understands V1's heterogeneous arrays,
// without re-encoding through the wire format in between.
type ToV1Adapter struct {
	Downstream Parser
}

var _ Parser = (*ToV1Adapter)(nil)

// NewToV1Adapter returns a ToV1Adapter forwarding to downstream.
func NewToV1Adapter(downstream Parser) *ToV1Adapter {
	return &ToV1Adapter{Downstream: downstream}
}

func (a *ToV1Adapter) OnPipeOpen()  { a.Downstream.OnPipeOpen() }
func (a *ToV1Adapter) OnPipeClose() { a.Downstream.OnPipeClose() }

func (a *ToV1Adapter) OnArrayBegin(size uint32)        { a.Downstream.OnArrayBegin(size) }
func (a *ToV1Adapter) OnArrayEnd()                     { a.Downstream.OnArrayEnd() }
func (a *ToV1Adapter) OnObjectBegin(components uint32) { a.Downstream.OnObjectBegin(components) }
func (a *ToV1Adapter) OnObjectEnd()                    { a.Downstream.OnObjectEnd() }
func (a *ToV1Adapter) OnComponentID(id uint16)         { a.Downstream.OnComponentID(id) }

func (a *ToV1Adapter) OnNull()                            { a.Downstream.OnNull() }
func (a *ToV1Adapter) OnUserPod(typ uint32, data []byte)  { a.Downstream.OnUserPod(typ, data) }

func (a *ToV1Adapter) OnPrimitiveBool(v bool)              { a.Downstream.OnPrimitiveBool(v) }
func (a *ToV1Adapter) OnPrimitiveU8(v uint8)                { a.Downstream.OnPrimitiveU8(v) }
func (a *ToV1Adapter) OnPrimitiveU16(v uint16)              { a.Downstream.OnPrimitiveU16(v) }
func (a *ToV1Adapter) OnPrimitiveU32(v uint32)              { a.Downstream.OnPrimitiveU32(v) }
func (a *ToV1Adapter) OnPrimitiveU64(v uint64)              { a.Downstream.OnPrimitiveU64(v) }
func (a *ToV1Adapter) OnPrimitiveS8(v int8)                 { a.Downstream.OnPrimitiveS8(v) }
func (a *ToV1Adapter) OnPrimitiveS16(v int16)               { a.Downstream.OnPrimitiveS16(v) }
func (a *ToV1Adapter) OnPrimitiveS32(v int32)               { a.Downstream.OnPrimitiveS32(v) }
func (a *ToV1Adapter) OnPrimitiveS64(v int64)               { a.Downstream.OnPrimitiveS64(v) }
func (a *ToV1Adapter) OnPrimitiveF16(v float16.Float16)     { a.Downstream.OnPrimitiveF16(v) }
func (a *ToV1Adapter) OnPrimitiveF32(v float32)             { a.Downstream.OnPrimitiveF32(v) }
func (a *ToV1Adapter) OnPrimitiveF64(v float64)             { a.Downstream.OnPrimitiveF64(v) }
func (a *ToV1Adapter) OnPrimitiveC8(v byte)                 { a.Downstream.OnPrimitiveC8(v) }
func (a *ToV1Adapter) OnPrimitiveString(v string)           { a.Downstream.OnPrimitiveString(v) }

func (a *ToV1Adapter) OnPrimitiveArrayU8(v []uint8)   { DecomposeArrayU8(a.Downstream, v) }
func (a *ToV1Adapter) OnPrimitiveArrayU16(v []uint16) { DecomposeArrayU16(a.Downstream, v) }
func (a *ToV1Adapter) OnPrimitiveArrayU32(v []uint32) { DecomposeArrayU32(a.Downstream, v) }
func (a *ToV1Adapter) OnPrimitiveArrayU64(v []uint64) { DecomposeArrayU64(a.Downstream, v) }
func (a *ToV1Adapter) OnPrimitiveArrayS8(v []int8)    { DecomposeArrayS8(a.Downstream, v) }
func (a *ToV1Adapter) OnPrimitiveArrayS16(v []int16)  { DecomposeArrayS16(a.Downstream, v) }
func (a *ToV1Adapter) OnPrimitiveArrayS32(v []int32)  { DecomposeArrayS32(a.Downstream, v) }
func (a *ToV1Adapter) OnPrimitiveArrayS64(v []int64)  { DecomposeArrayS64(a.Downstream, v) }
func (a *ToV1Adapter) OnPrimitiveArrayF16(v []float16.Float16) {
	DecomposeArrayF16(a.Downstream, v)
}
func (a *ToV1Adapter) OnPrimitiveArrayF32(v []float32) { DecomposeArrayF32(a.Downstream, v) }
func (a *ToV1Adapter) OnPrimitiveArrayF64(v []float64) { DecomposeArrayF64(a.Downstream, v) }
func (a *ToV1Adapter) OnPrimitiveArrayC8(v []byte)     { DecomposeArrayC8(a.Downstream, v) }
