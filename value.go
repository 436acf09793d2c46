// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bytepipe

import (
	"fmt"

	"github.com/x448/float16"
)

// PrimitiveValue holds one scalar of any supported secondary type. Only
// the field matching Type is meaningful.
type PrimitiveValue struct {
	Type SecondaryID

	U64  uint64
	S64  int64
	F64  float64
	F32  float32
	F16  float16.Float16
	C8   byte
	Bool bool
}

// AsUint64 widens the stored value to uint64, clamping negative values to
// 0, without mutating the receiver.
func (v PrimitiveValue) AsUint64() uint64 {
	switch v.Type {
	case SIDBool:
		if v.Bool {
			return 1
		}
		return 0
	case SIDU8, SIDU16, SIDU32, SIDU64:
		return v.U64
	case SIDS8, SIDS16, SIDS32, SIDS64:
		if v.S64 < 0 {
			return 0
		}
		return uint64(v.S64)
	case SIDF32:
		if v.F32 < 0 {
			return 0
		}
		return uint64(v.F32)
	case SIDF64:
		if v.F64 < 0 {
			return 0
		}
		return uint64(v.F64)
	case SIDF16:
		if f := v.F16.Float32(); f >= 0 {
			return uint64(f)
		}
		return 0
	case SIDC8:
		return uint64(v.C8)
	default:
		return 0
	}
}

// AsUint8 narrows AsUint64 to uint8, saturating at 255 instead of wrapping.
func (v PrimitiveValue) AsUint8() uint8 {
	tmp := v.AsUint64()
	if tmp > 255 {
		return 255
	}
	return uint8(tmp)
}

// AsUint16 narrows AsUint64 to uint16, saturating at 65535 instead of
// wrapping.
func (v PrimitiveValue) AsUint16() uint16 {
	tmp := v.AsUint64()
	if tmp > 65535 {
		return 65535
	}
	return uint16(tmp)
}

// AsUint32 narrows AsUint64 to uint32, saturating at 2^32-1 instead of
// wrapping.
func (v PrimitiveValue) AsUint32() uint32 {
	tmp := v.AsUint64()
	if tmp > 1<<32-1 {
		return 1<<32 - 1
	}
	return uint32(tmp)
}

// AsInt64 widens the stored value to int64, clamping unsigned values that
// overflow the signed range.
func (v PrimitiveValue) AsInt64() int64 {
	switch v.Type {
	case SIDBool:
		if v.Bool {
			return 1
		}
		return 0
	case SIDS8, SIDS16, SIDS32, SIDS64:
		return v.S64
	case SIDU8, SIDU16, SIDU32, SIDU64:
		if v.U64 > uint64(1<<63-1) {
			return 1<<63 - 1
		}
		return int64(v.U64)
	case SIDF32:
		return int64(v.F32)
	case SIDF64:
		return int64(v.F64)
	case SIDF16:
		return int64(v.F16.Float32())
	case SIDC8:
		return int64(v.C8)
	default:
		return 0
	}
}

// AsInt8 narrows AsInt64 to int8, saturating at [-128, 127] instead of
// wrapping.
func (v PrimitiveValue) AsInt8() int8 {
	tmp := v.AsInt64()
	if tmp > 127 {
		return 127
	}
	if tmp < -128 {
		return -128
	}
	return int8(tmp)
}

// AsInt16 narrows AsInt64 to int16, saturating at [-32768, 32767] instead
// of wrapping.
func (v PrimitiveValue) AsInt16() int16 {
	tmp := v.AsInt64()
	if tmp > 32767 {
		return 32767
	}
	if tmp < -32768 {
		return -32768
	}
	return int16(tmp)
}

// AsInt32 narrows AsInt64 to int32, saturating at [-2^31, 2^31-1] instead
// of wrapping.
func (v PrimitiveValue) AsInt32() int32 {
	tmp := v.AsInt64()
	if tmp > 1<<31-1 {
		return 1<<31 - 1
	}
	if tmp < -(1 << 31) {
		return -(1 << 31)
	}
	return int32(tmp)
}

// AsFloat64 widens the stored value to float64.
func (v PrimitiveValue) AsFloat64() float64 {
	switch v.Type {
	case SIDBool:
		if v.Bool {
			return 1
		}
		return 0
	case SIDF64:
		return v.F64
	case SIDF32:
		return float64(v.F32)
	case SIDF16:
		return float64(v.F16.Float32())
	case SIDS8, SIDS16, SIDS32, SIDS64:
		return float64(v.S64)
	case SIDU8, SIDU16, SIDU32, SIDU64:
		return float64(v.U64)
	case SIDC8:
		return float64(v.C8)
	default:
		return 0
	}
}

// ComponentID identifies a field within an Object.
type ComponentID = uint16

// objectEntry is one insertion-ordered (ComponentID, Value) pair.
type objectEntry struct {
	id    ComponentID
	value Value
}

// ValueKind discriminates what a Value currently holds.
type ValueKind uint8

const (
	KindNull ValueKind = iota
	KindPrimitive
	KindString
	KindArray
	KindObject
	KindUserPod
)

// Value is an in-memory node mirroring the wire format's type lattice: a
// primitive scalar, a string, an ordered array of Values, an
// insertion-ordered Object keyed by ComponentID, or an opaque UserPod
// blob. The zero value is Null.
type Value struct {
	kind      ValueKind
	primitive PrimitiveValue
	str       string
	array     []Value
	object    []objectEntry
	podType   uint32
	podData   []byte
}

// Kind reports which variant a Value currently holds.
func (v *Value) Kind() ValueKind { return v.kind }

// SetNull resets the value to Null, discarding any prior content.
func (v *Value) SetNull() { *v = Value{} }

// SetPrimitive stores a scalar value.
func (v *Value) SetPrimitive(p PrimitiveValue) {
	*v = Value{kind: KindPrimitive, primitive: p}
}

// SetString stores a string value. Per the wire format's C8 convention,
// AsString never mutates the receiver, unlike the legacy accessor this
// type intentionally does not reproduce.
func (v *Value) SetString(s string) {
	*v = Value{kind: KindString, str: s}
}

// SetArray replaces the value with an array holding a copy of elems.
func (v *Value) SetArray(elems []Value) {
	arr := make([]Value, len(elems))
	copy(arr, elems)
	*v = Value{kind: KindArray, array: arr}
}

// AddValue appends elem to an Array value, converting a Null receiver to
// an empty Array first.
func (v *Value) AddValue(elem Value) {
	if v.kind == KindNull {
		v.kind = KindArray
	}
	v.array = append(v.array, elem)
}

// SetObject replaces the value with an empty Object.
func (v *Value) SetObject() {
	*v = Value{kind: KindObject}
}

// AddComponent appends an (id, value) pair to an Object value, converting
// a Null receiver to an empty Object first. If id already exists its
// prior value is overwritten in place, preserving original insertion
// order, matching ordered-map semantics rather than last-write-wins
// reordering.
func (v *Value) AddComponent(id ComponentID, value Value) {
	if v.kind == KindNull {
		v.kind = KindObject
	}
	for i := range v.object {
		if v.object[i].id == id {
			v.object[i].value = value
			return
		}
	}
	v.object = append(v.object, objectEntry{id: id, value: value})
}

// SetUserPod stores an opaque blob tagged with a 20-bit user type id.
func (v *Value) SetUserPod(typ uint32, data []byte) {
	buf := make([]byte, len(data))
	copy(buf, data)
	*v = Value{kind: KindUserPod, podType: typ, podData: buf}
}

// AsPrimitive returns the stored scalar, or the zero PrimitiveValue if
// the receiver is not KindPrimitive.
func (v *Value) AsPrimitive() PrimitiveValue {
	if v.kind != KindPrimitive {
		return PrimitiveValue{}
	}
	return v.primitive
}

// AsString returns the stored string, or "" if the receiver is not
// KindString. Unlike the C++ original this is a pure accessor: reading a
// string never mutates the Value.
func (v *Value) AsString() string {
	if v.kind != KindString {
		return ""
	}
	return v.str
}

// Size returns the number of elements in an Array or Object, or 0
// otherwise.
func (v *Value) Size() int {
	switch v.kind {
	case KindArray:
		return len(v.array)
	case KindObject:
		return len(v.object)
	default:
		return 0
	}
}

// GetValue returns the value at index in an Array, or the value at
// position index of an Object's insertion order.
func (v *Value) GetValue(index int) Value {
	switch v.kind {
	case KindArray:
		return v.array[index]
	case KindObject:
		return v.object[index].value
	default:
		panic(fmt.Sprintf("bytepipe: GetValue on %v", v.kind))
	}
}

// GetComponentID returns the ComponentID at position index of an
// Object's insertion order.
func (v *Value) GetComponentID(index int) ComponentID {
	if v.kind != KindObject {
		panic("bytepipe: GetComponentID on non-object value")
	}
	return v.object[index].id
}

// Lookup returns the value stored under id in an Object, and whether it
// was found.
func (v *Value) Lookup(id ComponentID) (Value, bool) {
	if v.kind != KindObject {
		return Value{}, false
	}
	for _, e := range v.object {
		if e.id == id {
			return e.value, true
		}
	}
	return Value{}, false
}

// UserPod returns the stored type id and blob, or (0, nil) if the
// receiver is not KindUserPod.
func (v *Value) UserPod() (uint32, []byte) {
	if v.kind != KindUserPod {
		return 0, nil
	}
	return v.podType, v.podData
}

// Swap exchanges the contents of v and other in place.
func (v *Value) Swap(other *Value) {
	*v, *other = *other, *v
}
