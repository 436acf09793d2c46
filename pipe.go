// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bytepipe

import (
	"fmt"
	"io"
)

// InputPipe is the minimal read-side contract a byte-level transform
// (packet framing, ECC decoding, run-length decoding, ...) must satisfy to
// be stacked beneath a Reader. Implementations read exactly len(dst) bytes
// or return an error; short, non-error reads are not part of the contract,
// mirroring the upstream io.ReadFull discipline used throughout this
// package.
type InputPipe interface {
	ReadBytes(dst []byte) (int, error)
}

// OutputPipe is the minimal write-side contract a byte-level transform must
// satisfy to be stacked beneath a Writer. Flush pushes any buffered bytes
// (a partial ECC block, a pending RLE run) to the next pipe downstream;
// callers must call Flush after the last WriteBytes of a message.
type OutputPipe interface {
	WriteBytes(src []byte) (int, error)
	Flush() error
}

// streamInputPipe adapts an io.Reader to InputPipe using io.ReadFull
// semantics: a short read is reported as ErrShortRead wrapping the
// underlying error.
type streamInputPipe struct {
	r io.Reader
}

// NewInputPipe wraps r as the bottom of an input pipe stack.
func NewInputPipe(r io.Reader) InputPipe {
	return &streamInputPipe{r: r}
}

func (p *streamInputPipe) ReadBytes(dst []byte) (int, error) {
	n, err := io.ReadFull(p.r, dst)
	if err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return n, fmt.Errorf("%w: %v", ErrShortRead, err)
		}
		return n, err
	}
	return n, nil
}

// streamOutputPipe adapts an io.Writer to OutputPipe. Flush is a no-op
// unless the underlying writer also implements an explicit flush, which a
// plain io.Writer does not, so nothing is buffered at this layer.
type streamOutputPipe struct {
	w io.Writer
}

// NewOutputPipe wraps w as the bottom of an output pipe stack.
func NewOutputPipe(w io.Writer) OutputPipe {
	return &streamOutputPipe{w: w}
}

func (p *streamOutputPipe) WriteBytes(src []byte) (int, error) {
	n, err := p.w.Write(src)
	if err != nil {
		return n, err
	}
	if n != len(src) {
		return n, ErrShortWrite
	}
	return n, nil
}

func (p *streamOutputPipe) Flush() error {
	if f, ok := p.w.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}
