// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bytepipe

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/x448/float16"
)

// JsonWriter is a Parser sink that renders the events it receives as a
// single JSON document. Unlike the format this package ports from,
// strings are quoted and escaped and Bool renders as the standard "true"
// and "false" literals, so the result is valid JSON rather than merely
// JSON-shaped.
type JsonWriter struct {
	out strings.Builder
}

var _ Parser = (*JsonWriter)(nil)

// NewJsonWriter returns a ready-to-use JsonWriter.
func NewJsonWriter() *JsonWriter {
	return &JsonWriter{}
}

// JSON returns the document built so far. Call it after the matching
// OnPipeClose, i.e. after a full Reader.Read or EmitValue pass.
func (w *JsonWriter) JSON() string {
	s := w.out.String()
	return strings.TrimSuffix(s, ",")
}

func (w *JsonWriter) addValue(s string) {
	w.out.WriteString(s)
	w.out.WriteByte(',')
}

func (w *JsonWriter) stripTrailingComma() {
	s := w.out.String()
	if strings.HasSuffix(s, ",") {
		w.out.Reset()
		w.out.WriteString(s[:len(s)-1])
	}
}

func (w *JsonWriter) OnPipeOpen() {
	w.out.Reset()
}

func (w *JsonWriter) OnPipeClose() {}

func (w *JsonWriter) OnArrayBegin(size uint32) {
	w.out.WriteByte('[')
}

func (w *JsonWriter) OnArrayEnd() {
	w.stripTrailingComma()
	w.out.WriteByte(']')
	w.out.WriteByte(',')
}

func (w *JsonWriter) OnObjectBegin(components uint32) {
	w.out.WriteByte('{')
}

func (w *JsonWriter) OnObjectEnd() {
	w.stripTrailingComma()
	w.out.WriteByte('}')
	w.out.WriteByte(',')
}

func (w *JsonWriter) OnComponentID(id uint16) {
	w.out.WriteByte('"')
	w.out.WriteString(strconv.FormatUint(uint64(id), 10))
	w.out.WriteString("\":")
}

func (w *JsonWriter) OnNull() {
	w.addValue("null")
}

// OnUserPod renders the blob as an object carrying the sentinel member
// __ANVIL_POD, matching the format this writer was ported from, with the
// payload hex-encoded.
func (w *JsonWriter) OnUserPod(typ uint32, data []byte) {
	var b strings.Builder
	b.WriteString(`{"__ANVIL_POD":123456789,"type":`)
	b.WriteString(strconv.FormatUint(uint64(typ), 10))
	b.WriteString(`,"data":"`)
	for _, by := range data {
		fmt.Fprintf(&b, "%02x", by)
	}
	b.WriteString(`"}`)
	w.addValue(b.String())
}

func (w *JsonWriter) OnPrimitiveBool(v bool) {
	if v {
		w.addValue("true")
	} else {
		w.addValue("false")
	}
}

func (w *JsonWriter) OnPrimitiveU8(v uint8)   { w.addValue(strconv.FormatUint(uint64(v), 10)) }
func (w *JsonWriter) OnPrimitiveU16(v uint16) { w.addValue(strconv.FormatUint(uint64(v), 10)) }
func (w *JsonWriter) OnPrimitiveU32(v uint32) { w.addValue(strconv.FormatUint(uint64(v), 10)) }
func (w *JsonWriter) OnPrimitiveU64(v uint64) { w.addValue(strconv.FormatUint(v, 10)) }
func (w *JsonWriter) OnPrimitiveS8(v int8)    { w.addValue(strconv.FormatInt(int64(v), 10)) }
func (w *JsonWriter) OnPrimitiveS16(v int16)  { w.addValue(strconv.FormatInt(int64(v), 10)) }
func (w *JsonWriter) OnPrimitiveS32(v int32)  { w.addValue(strconv.FormatInt(int64(v), 10)) }
func (w *JsonWriter) OnPrimitiveS64(v int64)  { w.addValue(strconv.FormatInt(v, 10)) }
func (w *JsonWriter) OnPrimitiveF16(v float16.Float16) {
	w.addValue(strconv.FormatFloat(float64(v.Float32()), 'g', -1, 32))
}
func (w *JsonWriter) OnPrimitiveF32(v float32) {
	w.addValue(strconv.FormatFloat(float64(v), 'g', -1, 32))
}
func (w *JsonWriter) OnPrimitiveF64(v float64) {
	w.addValue(strconv.FormatFloat(v, 'g', -1, 64))
}
func (w *JsonWriter) OnPrimitiveC8(v byte) {
	w.OnPrimitiveString(string(rune(v)))
}

func (w *JsonWriter) OnPrimitiveString(v string) {
	w.addValue(strconv.Quote(v))
}

func (w *JsonWriter) OnPrimitiveArrayU8(v []uint8)   { DecomposeArrayU8(w, v) }
func (w *JsonWriter) OnPrimitiveArrayU16(v []uint16) { DecomposeArrayU16(w, v) }
func (w *JsonWriter) OnPrimitiveArrayU32(v []uint32) { DecomposeArrayU32(w, v) }
func (w *JsonWriter) OnPrimitiveArrayU64(v []uint64) { DecomposeArrayU64(w, v) }
func (w *JsonWriter) OnPrimitiveArrayS8(v []int8)    { DecomposeArrayS8(w, v) }
func (w *JsonWriter) OnPrimitiveArrayS16(v []int16)  { DecomposeArrayS16(w, v) }
func (w *JsonWriter) OnPrimitiveArrayS32(v []int32)  { DecomposeArrayS32(w, v) }
func (w *JsonWriter) OnPrimitiveArrayS64(v []int64)  { DecomposeArrayS64(w, v) }
func (w *JsonWriter) OnPrimitiveArrayF16(v []float16.Float16) {
	DecomposeArrayF16(w, v)
}
func (w *JsonWriter) OnPrimitiveArrayF32(v []float32) { DecomposeArrayF32(w, v) }
func (w *JsonWriter) OnPrimitiveArrayF64(v []float64) { DecomposeArrayF64(w, v) }
func (w *JsonWriter) OnPrimitiveArrayC8(v []byte) {
	w.OnPrimitiveString(string(v))
}
