// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bytepipe

import "github.com/x448/float16"

// ValueBuilder is a Parser sink that assembles the events it receives
// into a Value tree. Drive it with Reader.Read to decode a wire session
// straight into memory, without writing a bespoke sink for every
// consumer of this package.
//
// A wire session is a sequence of zero or more top-level values, so the
// root is always built as an implicit top-level Array; Value unwraps it
// to the single element when the session held exactly one value, which
// is the common case.
type ValueBuilder struct {
	root       Value
	stack      []*Value
	pendingID  uint16
	hasPending bool
}

var _ Parser = (*ValueBuilder)(nil)

// NewValueBuilder returns a ready-to-use ValueBuilder.
func NewValueBuilder() *ValueBuilder {
	b := &ValueBuilder{}
	b.root.SetArray(nil)
	return b
}

// Value returns the tree built so far: the single top-level value if the
// session held exactly one, or the full top-level sequence as an Array
// otherwise. Call it after Reader.Read returns.
func (b *ValueBuilder) Value() Value {
	if b.root.Size() == 1 {
		return b.root.GetValue(0)
	}
	return b.root
}

func (b *ValueBuilder) top() *Value {
	if len(b.stack) == 0 {
		return &b.root
	}
	return b.stack[len(b.stack)-1]
}

func (b *ValueBuilder) deliver(v Value) {
	top := b.top()
	switch top.kind {
	case KindArray:
		top.AddValue(v)
	case KindObject:
		if b.hasPending {
			top.AddComponent(b.pendingID, v)
			b.hasPending = false
		}
	}
}

func (b *ValueBuilder) OnPipeOpen()  {}
func (b *ValueBuilder) OnPipeClose() {}

func (b *ValueBuilder) OnArrayBegin(size uint32) {
	var v Value
	v.SetArray(make([]Value, 0, size))
	b.deliverContainer(&v)
}

func (b *ValueBuilder) deliverContainer(v *Value) {
	top := b.top()
	switch top.kind {
	case KindArray:
		top.AddValue(*v)
		b.stack = append(b.stack, &top.array[len(top.array)-1])
	case KindObject:
		if b.hasPending {
			top.AddComponent(b.pendingID, *v)
			b.hasPending = false
			entry := &top.object[len(top.object)-1]
			b.stack = append(b.stack, &entry.value)
		}
	}
}

func (b *ValueBuilder) OnArrayEnd() {
	if len(b.stack) > 0 {
		b.stack = b.stack[:len(b.stack)-1]
	}
}

func (b *ValueBuilder) OnObjectBegin(components uint32) {
	var v Value
	v.SetObject()
	b.deliverContainer(&v)
}

func (b *ValueBuilder) OnObjectEnd() {
	if len(b.stack) > 0 {
		b.stack = b.stack[:len(b.stack)-1]
	}
}

func (b *ValueBuilder) OnComponentID(id uint16) {
	b.pendingID = id
	b.hasPending = true
}

func (b *ValueBuilder) OnNull() {
	var v Value
	v.SetNull()
	b.deliver(v)
}

func (b *ValueBuilder) OnUserPod(typ uint32, data []byte) {
	var v Value
	v.SetUserPod(typ, data)
	b.deliver(v)
}

func (b *ValueBuilder) onPrimitive(p PrimitiveValue) {
	var v Value
	v.SetPrimitive(p)
	b.deliver(v)
}

func (b *ValueBuilder) OnPrimitiveBool(x bool) { b.onPrimitive(PrimitiveValue{Type: SIDBool, Bool: x}) }
func (b *ValueBuilder) OnPrimitiveU8(x uint8)   { b.onPrimitive(PrimitiveValue{Type: SIDU8, U64: uint64(x)}) }
func (b *ValueBuilder) OnPrimitiveU16(x uint16) { b.onPrimitive(PrimitiveValue{Type: SIDU16, U64: uint64(x)}) }
func (b *ValueBuilder) OnPrimitiveU32(x uint32) { b.onPrimitive(PrimitiveValue{Type: SIDU32, U64: uint64(x)}) }
func (b *ValueBuilder) OnPrimitiveU64(x uint64) { b.onPrimitive(PrimitiveValue{Type: SIDU64, U64: x}) }
func (b *ValueBuilder) OnPrimitiveS8(x int8)    { b.onPrimitive(PrimitiveValue{Type: SIDS8, S64: int64(x)}) }
func (b *ValueBuilder) OnPrimitiveS16(x int16)  { b.onPrimitive(PrimitiveValue{Type: SIDS16, S64: int64(x)}) }
func (b *ValueBuilder) OnPrimitiveS32(x int32)  { b.onPrimitive(PrimitiveValue{Type: SIDS32, S64: int64(x)}) }
func (b *ValueBuilder) OnPrimitiveS64(x int64)  { b.onPrimitive(PrimitiveValue{Type: SIDS64, S64: x}) }
func (b *ValueBuilder) OnPrimitiveF16(x float16.Float16) {
	b.onPrimitive(PrimitiveValue{Type: SIDF16, F16: x})
}
func (b *ValueBuilder) OnPrimitiveF32(x float32) { b.onPrimitive(PrimitiveValue{Type: SIDF32, F32: x}) }
func (b *ValueBuilder) OnPrimitiveF64(x float64) { b.onPrimitive(PrimitiveValue{Type: SIDF64, F64: x}) }
func (b *ValueBuilder) OnPrimitiveC8(x byte)     { b.onPrimitive(PrimitiveValue{Type: SIDC8, C8: x}) }

func (b *ValueBuilder) OnPrimitiveString(x string) {
	var v Value
	v.SetString(x)
	b.deliver(v)
}

func (b *ValueBuilder) OnPrimitiveArrayU8(xs []uint8) {
	elems := make([]Value, len(xs))
	for i, x := range xs {
		elems[i].SetPrimitive(PrimitiveValue{Type: SIDU8, U64: uint64(x)})
	}
	var v Value
	v.SetArray(elems)
	b.deliver(v)
}

func (b *ValueBuilder) OnPrimitiveArrayU16(xs []uint16) {
	elems := make([]Value, len(xs))
	for i, x := range xs {
		elems[i].SetPrimitive(PrimitiveValue{Type: SIDU16, U64: uint64(x)})
	}
	var v Value
	v.SetArray(elems)
	b.deliver(v)
}

func (b *ValueBuilder) OnPrimitiveArrayU32(xs []uint32) {
	elems := make([]Value, len(xs))
	for i, x := range xs {
		elems[i].SetPrimitive(PrimitiveValue{Type: SIDU32, U64: uint64(x)})
	}
	var v Value
	v.SetArray(elems)
	b.deliver(v)
}

func (b *ValueBuilder) OnPrimitiveArrayU64(xs []uint64) {
	elems := make([]Value, len(xs))
	for i, x := range xs {
		elems[i].SetPrimitive(PrimitiveValue{Type: SIDU64, U64: x})
	}
	var v Value
	v.SetArray(elems)
	b.deliver(v)
}

func (b *ValueBuilder) OnPrimitiveArrayS8(xs []int8) {
	elems := make([]Value, len(xs))
	for i, x := range xs {
		elems[i].SetPrimitive(PrimitiveValue{Type: SIDS8, S64: int64(x)})
	}
	var v Value
	v.SetArray(elems)
	b.deliver(v)
}

func (b *ValueBuilder) OnPrimitiveArrayS16(xs []int16) {
	elems := make([]Value, len(xs))
	for i, x := range xs {
		elems[i].SetPrimitive(PrimitiveValue{Type: SIDS16, S64: int64(x)})
	}
	var v Value
	v.SetArray(elems)
	b.deliver(v)
}

func (b *ValueBuilder) OnPrimitiveArrayS32(xs []int32) {
	elems := make([]Value, len(xs))
	for i, x := range xs {
		elems[i].SetPrimitive(PrimitiveValue{Type: SIDS32, S64: int64(x)})
	}
	var v Value
	v.SetArray(elems)
	b.deliver(v)
}

func (b *ValueBuilder) OnPrimitiveArrayS64(xs []int64) {
	elems := make([]Value, len(xs))
	for i, x := range xs {
		elems[i].SetPrimitive(PrimitiveValue{Type: SIDS64, S64: x})
	}
	var v Value
	v.SetArray(elems)
	b.deliver(v)
}

func (b *ValueBuilder) OnPrimitiveArrayF16(xs []float16.Float16) {
	elems := make([]Value, len(xs))
	for i, x := range xs {
		elems[i].SetPrimitive(PrimitiveValue{Type: SIDF16, F16: x})
	}
	var v Value
	v.SetArray(elems)
	b.deliver(v)
}

func (b *ValueBuilder) OnPrimitiveArrayF32(xs []float32) {
	elems := make([]Value, len(xs))
	for i, x := range xs {
		elems[i].SetPrimitive(PrimitiveValue{Type: SIDF32, F32: x})
	}
	var v Value
	v.SetArray(elems)
	b.deliver(v)
}

func (b *ValueBuilder) OnPrimitiveArrayF64(xs []float64) {
	elems := make([]Value, len(xs))
	for i, x := range xs {
		elems[i].SetPrimitive(PrimitiveValue{Type: SIDF64, F64: x})
	}
	var v Value
	v.SetArray(elems)
	b.deliver(v)
}

func (b *ValueBuilder) OnPrimitiveArrayC8(xs []byte) {
	elems := make([]Value, len(xs))
	for i, x := range xs {
		elems[i].SetPrimitive(PrimitiveValue{Type: SIDC8, C8: x})
	}
	var v Value
	v.SetArray(elems)
	b.deliver(v)
}

// EmitValue replays v as a sequence of Parser events, the inverse of
// ValueBuilder: feed it a Writer to serialize a Value tree, or any other
// Parser to transcode it directly into another sink.
func EmitValue(v *Value, dst Parser) {
	switch v.kind {
	case KindNull:
		dst.OnNull()
	case KindPrimitive:
		emitPrimitive(v.primitive, dst)
	case KindString:
		dst.OnPrimitiveString(v.str)
	case KindArray:
		dst.OnArrayBegin(uint32(len(v.array)))
		for i := range v.array {
			EmitValue(&v.array[i], dst)
		}
		dst.OnArrayEnd()
	case KindObject:
		dst.OnObjectBegin(uint32(len(v.object)))
		for i := range v.object {
			dst.OnComponentID(v.object[i].id)
			EmitValue(&v.object[i].value, dst)
		}
		dst.OnObjectEnd()
	case KindUserPod:
		dst.OnUserPod(v.podType, v.podData)
	}
}

func emitPrimitive(p PrimitiveValue, dst Parser) {
	switch p.Type {
	case SIDNull:
		dst.OnNull()
	case SIDBool:
		dst.OnPrimitiveBool(p.Bool)
	case SIDU8:
		dst.OnPrimitiveU8(uint8(p.U64))
	case SIDU16:
		dst.OnPrimitiveU16(uint16(p.U64))
	case SIDU32:
		dst.OnPrimitiveU32(uint32(p.U64))
	case SIDU64:
		dst.OnPrimitiveU64(p.U64)
	case SIDS8:
		dst.OnPrimitiveS8(int8(p.S64))
	case SIDS16:
		dst.OnPrimitiveS16(int16(p.S64))
	case SIDS32:
		dst.OnPrimitiveS32(int32(p.S64))
	case SIDS64:
		dst.OnPrimitiveS64(p.S64)
	case SIDF32:
		dst.OnPrimitiveF32(p.F32)
	case SIDF64:
		dst.OnPrimitiveF64(p.F64)
	case SIDC8:
		dst.OnPrimitiveC8(p.C8)
	case SIDF16:
		dst.OnPrimitiveF16(p.F16)
	}
}
