// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bytepipe

import "encoding/binary"

// rleFlag marks a block header as a repeated-word run rather than a
// literal run; rleMaxLength is the largest count either kind of block
// can carry.
const (
	rleFlag      uint16 = 1 << 15
	rleMaxLength uint16 = rleFlag - 1
)

// RLEOutputPipe wraps an OutputPipe with byte-oriented run-length
// encoding: a uint16 block header carries either a literal-run length or
// a repeat count with the top bit set, followed by either the literal
// bytes or the single repeated byte. It suits payloads with long runs of
// identical bytes, e.g. sparse arrays or padded fixed-size records.
type RLEOutputPipe struct {
	downstream OutputPipe
	buffer     []byte
	current    byte
	length     uint16
	rleMode    bool
}

var _ OutputPipe = (*RLEOutputPipe)(nil)

// NewRLEOutputPipe returns an RLEOutputPipe writing encoded blocks to
// downstream.
func NewRLEOutputPipe(downstream OutputPipe) *RLEOutputPipe {
	return &RLEOutputPipe{downstream: downstream, buffer: make([]byte, 0, rleMaxLength)}
}

func (p *RLEOutputPipe) flushBlock() (bool, error) {
	if p.length == 0 {
		return false, nil
	}
	if p.rleMode {
		var head [3]byte
		binary.LittleEndian.PutUint16(head[:2], p.length|rleFlag)
		head[2] = p.current
		if _, err := p.downstream.WriteBytes(head[:]); err != nil {
			return false, err
		}
	} else {
		var head [2]byte
		binary.LittleEndian.PutUint16(head[:], p.length)
		if _, err := p.downstream.WriteBytes(head[:]); err != nil {
			return false, err
		}
		if _, err := p.downstream.WriteBytes(p.buffer[:p.length]); err != nil {
			return false, err
		}
	}
	p.current = 0
	p.length = 0
	p.rleMode = false
	p.buffer = p.buffer[:0]
	return true, nil
}

func (p *RLEOutputPipe) writeWordRLE(word byte) error {
	if p.length == rleMaxLength {
		if _, err := p.flushBlock(); err != nil {
			return err
		}
		return p.writeWordNonRLE(word)
	}
	switch {
	case p.length == 0:
		p.current = word
		p.length = 1
		p.rleMode = true
	case word == p.current:
		p.length++
	default:
		if _, err := p.flushBlock(); err != nil {
			return err
		}
		return p.writeWordNonRLE(word)
	}
	return nil
}

func (p *RLEOutputPipe) writeWordNonRLE(word byte) error {
	if p.length == rleMaxLength {
		if _, err := p.flushBlock(); err != nil {
			return err
		}
	}
	if p.length > 0 && p.buffer[p.length-1] == word {
		p.length--
		if _, err := p.flushBlock(); err != nil {
			return err
		}
		p.current = word
		p.length = 2
		p.rleMode = true
		return nil
	}
	p.buffer = append(p.buffer, word)
	p.length++
	return nil
}

func (p *RLEOutputPipe) writeWord(word byte) error {
	if p.rleMode {
		return p.writeWordRLE(word)
	}
	return p.writeWordNonRLE(word)
}

// WriteBytes feeds src through the run-length encoder one byte at a
// time; the encoded blocks reach the downstream pipe as they fill or as
// runs break, not necessarily during this call.
func (p *RLEOutputPipe) WriteBytes(src []byte) (int, error) {
	for _, b := range src {
		if err := p.writeWord(b); err != nil {
			return 0, err
		}
	}
	return len(src), nil
}

// Flush forces any buffered block to the downstream pipe and flushes it
// in turn.
func (p *RLEOutputPipe) Flush() error {
	wrote, err := p.flushBlock()
	if err != nil {
		return err
	}
	if wrote {
		return p.downstream.Flush()
	}
	return nil
}

// RLEInputPipe is the inverse of RLEOutputPipe: it decodes run-length
// blocks read from an upstream pipe back into a flat byte stream.
type RLEInputPipe struct {
	upstream   InputPipe
	buffer     []byte
	length     uint16
	repeatWord byte
	rleMode    bool
}

var _ InputPipe = (*RLEInputPipe)(nil)

// NewRLEInputPipe returns an RLEInputPipe reading encoded blocks from
// upstream.
func NewRLEInputPipe(upstream InputPipe) *RLEInputPipe {
	return &RLEInputPipe{upstream: upstream, buffer: make([]byte, rleMaxLength)}
}

func (p *RLEInputPipe) readNextBlock() error {
	var head [2]byte
	if _, err := p.upstream.ReadBytes(head[:]); err != nil {
		return err
	}
	length := binary.LittleEndian.Uint16(head[:])
	if length&rleFlag != 0 {
		p.length = length &^ rleFlag
		p.rleMode = true
		var word [1]byte
		if _, err := p.upstream.ReadBytes(word[:]); err != nil {
			return err
		}
		p.repeatWord = word[0]
		return nil
	}
	p.length = length
	p.rleMode = false
	if _, err := p.upstream.ReadBytes(p.buffer[:p.length]); err != nil {
		return err
	}
	return nil
}

// ReadBytes fills dst by decoding as many run-length blocks as needed.
func (p *RLEInputPipe) ReadBytes(dst []byte) (int, error) {
	remaining := dst
	for len(remaining) != 0 {
		if p.length == 0 {
			if err := p.readNextBlock(); err != nil {
				return 0, err
			}
		}
		n := len(remaining)
		if int(p.length) < n {
			n = int(p.length)
		}
		if p.rleMode {
			for i := 0; i < n; i++ {
				remaining[i] = p.repeatWord
			}
		} else {
			copy(remaining[:n], p.buffer[:n])
			copy(p.buffer, p.buffer[n:p.length])
		}
		p.length -= uint16(n)
		remaining = remaining[n:]
	}
	return len(dst), nil
}
