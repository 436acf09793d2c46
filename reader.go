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

// Reader drives a Parser sink from the tagged binary wire format read off
// an InputPipe. A single Reader is meant for a single top-level pipe
// session; call Read once per OnPipeOpen/OnPipeClose pair on the wire.
type Reader struct {
	pipe InputPipe
	bo   binary.ByteOrder
	mem  []byte
}

// NewReader returns a Reader that decodes the wire format from pipe.
func NewReader(pipe InputPipe, opts ...Option) *Reader {
	o := resolveOptions(opts)
	return &Reader{pipe: pipe, bo: o.ByteOrder}
}

func (r *Reader) read(n int) ([]byte, error) {
	if cap(r.mem) < n {
		r.mem = make([]byte, n)
	}
	buf := r.mem[:n]
	if _, err := r.pipe.ReadBytes(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// Read decodes one full pipe session: a version header, a sequence of
// top-level values, and the closing terminator, dispatching every event
// to dst.
func (r *Reader) Read(dst Parser) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			if e, ok := rec.(error); ok {
				err = e
			} else {
				err = fmt.Errorf("bytepipe: %v", rec)
			}
		}
	}()

	head, e := r.read(1)
	if e != nil {
		return e
	}
	version := head[0]
	if version > 3 {
		return fmt.Errorf("%w: %d", ErrBadVersion, version)
	}

	dst.OnPipeOpen()

	for {
		idBuf, e := r.read(1)
		if e != nil {
			return e
		}
		if idBuf[0] == 0 {
			break
		}
		if e := r.readGeneric(dst, idBuf[0]); e != nil {
			return e
		}
	}

	dst.OnPipeClose()
	return nil
}

func splitID(b byte) (PrimaryID, SecondaryID) {
	return PrimaryID(b & 0xF), SecondaryID(b >> 4)
}

func (r *Reader) readGeneric(dst Parser, id byte) error {
	primary, secondary := splitID(id)
	switch primary {
	case PIDNull:
		return nil
	case PIDString:
		if secondary != SIDC8 {
			return fmt.Errorf("%w: string subtype", ErrBadSecondaryID)
		}
		lenBuf, err := r.read(4)
		if err != nil {
			return err
		}
		length := r.bo.Uint32(lenBuf)
		strBuf := make([]byte, length)
		if _, err := r.pipe.ReadBytes(strBuf); err != nil {
			return err
		}
		dst.OnPrimitiveString(string(strBuf))
		return nil
	case PIDArray:
		return r.readArray(dst, secondary)
	case PIDObject:
		return r.readObject(dst)
	case PIDUserPod:
		return r.readUserPod(dst, secondary)
	case PIDPrimitive:
		return r.readPrimitive(dst, secondary)
	default:
		return fmt.Errorf("%w: %d", ErrBadPrimaryID, primary)
	}
}

func (r *Reader) readObject(dst Parser) error {
	countBuf, err := r.read(4)
	if err != nil {
		return err
	}
	components := r.bo.Uint32(countBuf)
	dst.OnObjectBegin(components)
	for i := uint32(0); i < components; i++ {
		idFieldBuf, err := r.read(2)
		if err != nil {
			return err
		}
		dst.OnComponentID(r.bo.Uint16(idFieldBuf))
		valueIDBuf, err := r.read(1)
		if err != nil {
			return err
		}
		if err := r.readGeneric(dst, valueIDBuf[0]); err != nil {
			return err
		}
	}
	dst.OnObjectEnd()
	return nil
}

func (r *Reader) readPrimitive(dst Parser, secondary SecondaryID) error {
	if secondary > wireSecondaryMax {
		return fmt.Errorf("%w: %d", ErrBadSecondaryID, secondary)
	}
	n := secondaryTypeSize[secondary]
	var raw uint64
	if n > 0 {
		buf, err := r.read(int(n))
		if err != nil {
			return err
		}
		switch n {
		case 1:
			raw = uint64(buf[0])
		case 2:
			raw = uint64(r.bo.Uint16(buf))
		case 4:
			raw = uint64(r.bo.Uint32(buf))
		case 8:
			raw = r.bo.Uint64(buf)
		}
	}
	switch secondary {
	case SIDNull:
		dst.OnNull()
	case SIDU8:
		dst.OnPrimitiveU8(uint8(raw))
	case SIDU16:
		dst.OnPrimitiveU16(uint16(raw))
	case SIDU32:
		dst.OnPrimitiveU32(uint32(raw))
	case SIDU64:
		dst.OnPrimitiveU64(raw)
	case SIDS8:
		dst.OnPrimitiveS8(int8(raw))
	case SIDS16:
		dst.OnPrimitiveS16(int16(raw))
	case SIDS32:
		dst.OnPrimitiveS32(int32(raw))
	case SIDS64:
		dst.OnPrimitiveS64(int64(raw))
	case SIDF32:
		dst.OnPrimitiveF32(math.Float32frombits(uint32(raw)))
	case SIDF64:
		dst.OnPrimitiveF64(math.Float64frombits(raw))
	case SIDC8:
		dst.OnPrimitiveC8(byte(raw))
	case SIDF16:
		dst.OnPrimitiveF16(float16.Frombits(uint16(raw)))
	default:
		return fmt.Errorf("%w: %d", ErrBadSecondaryID, secondary)
	}
	return nil
}

func (r *Reader) readArray(dst Parser, secondary SecondaryID) error {
	sizeBuf, err := r.read(4)
	if err != nil {
		return err
	}
	size := r.bo.Uint32(sizeBuf)

	if secondary == SIDNull {
		dst.OnArrayBegin(size)
		for i := uint32(0); i < size; i++ {
			idBuf, err := r.read(1)
			if err != nil {
				return err
			}
			if err := r.readGeneric(dst, idBuf[0]); err != nil {
				return err
			}
		}
		dst.OnArrayEnd()
		return nil
	}

	switch secondary {
	case SIDU8:
		buf := make([]byte, size)
		if _, err := r.pipe.ReadBytes(buf); err != nil {
			return err
		}
		dst.OnPrimitiveArrayU8(buf)
	case SIDU16:
		buf := make([]byte, size*2)
		if _, err := r.pipe.ReadBytes(buf); err != nil {
			return err
		}
		out := make([]uint16, size)
		for i := range out {
			out[i] = r.bo.Uint16(buf[i*2:])
		}
		dst.OnPrimitiveArrayU16(out)
	case SIDU32:
		buf := make([]byte, size*4)
		if _, err := r.pipe.ReadBytes(buf); err != nil {
			return err
		}
		out := make([]uint32, size)
		for i := range out {
			out[i] = r.bo.Uint32(buf[i*4:])
		}
		dst.OnPrimitiveArrayU32(out)
	case SIDU64:
		buf := make([]byte, size*8)
		if _, err := r.pipe.ReadBytes(buf); err != nil {
			return err
		}
		out := make([]uint64, size)
		for i := range out {
			out[i] = r.bo.Uint64(buf[i*8:])
		}
		dst.OnPrimitiveArrayU64(out)
	case SIDS8:
		buf := make([]byte, size)
		if _, err := r.pipe.ReadBytes(buf); err != nil {
			return err
		}
		out := make([]int8, size)
		for i := range out {
			out[i] = int8(buf[i])
		}
		dst.OnPrimitiveArrayS8(out)
	case SIDS16:
		buf := make([]byte, size*2)
		if _, err := r.pipe.ReadBytes(buf); err != nil {
			return err
		}
		out := make([]int16, size)
		for i := range out {
			out[i] = int16(r.bo.Uint16(buf[i*2:]))
		}
		dst.OnPrimitiveArrayS16(out)
	case SIDS32:
		buf := make([]byte, size*4)
		if _, err := r.pipe.ReadBytes(buf); err != nil {
			return err
		}
		out := make([]int32, size)
		for i := range out {
			out[i] = int32(r.bo.Uint32(buf[i*4:]))
		}
		dst.OnPrimitiveArrayS32(out)
	case SIDS64:
		buf := make([]byte, size*8)
		if _, err := r.pipe.ReadBytes(buf); err != nil {
			return err
		}
		out := make([]int64, size)
		for i := range out {
			out[i] = int64(r.bo.Uint64(buf[i*8:]))
		}
		dst.OnPrimitiveArrayS64(out)
	case SIDF32:
		buf := make([]byte, size*4)
		if _, err := r.pipe.ReadBytes(buf); err != nil {
			return err
		}
		out := make([]float32, size)
		for i := range out {
			out[i] = math.Float32frombits(r.bo.Uint32(buf[i*4:]))
		}
		dst.OnPrimitiveArrayF32(out)
	case SIDF64:
		buf := make([]byte, size*8)
		if _, err := r.pipe.ReadBytes(buf); err != nil {
			return err
		}
		out := make([]float64, size)
		for i := range out {
			out[i] = math.Float64frombits(r.bo.Uint64(buf[i*8:]))
		}
		dst.OnPrimitiveArrayF64(out)
	case SIDC8:
		buf := make([]byte, size)
		if _, err := r.pipe.ReadBytes(buf); err != nil {
			return err
		}
		dst.OnPrimitiveArrayC8(buf)
	case SIDF16:
		buf := make([]byte, size*2)
		if _, err := r.pipe.ReadBytes(buf); err != nil {
			return err
		}
		out := make([]float16.Float16, size)
		for i := range out {
			out[i] = float16.Frombits(r.bo.Uint16(buf[i*2:]))
		}
		dst.OnPrimitiveArrayF16(out)
	default:
		return fmt.Errorf("%w: %d", ErrBadSecondaryID, secondary)
	}
	return nil
}

func (r *Reader) readUserPod(dst Parser, lowNibble SecondaryID) error {
	headBuf, err := r.read(6)
	if err != nil {
		return err
	}
	extended := r.bo.Uint16(headBuf[0:2])
	bytesLen := r.bo.Uint32(headBuf[2:6])
	typ := uint32(extended)<<4 | uint32(lowNibble)

	data := make([]byte, bytesLen)
	if _, err := r.pipe.ReadBytes(data); err != nil {
		return err
	}
	dst.OnUserPod(typ, data)
	return nil
}
