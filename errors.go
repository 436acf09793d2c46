// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bytepipe

import "errors"

// Sentinel errors for the failure kinds a pipe stack, codec, or parser sink
// can report. Wrap with fmt.Errorf("...: %w", ErrXxx) to add positional
// detail; callers can still match with errors.Is.
var (
	// ErrInvalidArgument reports a nil pipe, reader, writer, or an option
	// value outside its valid range.
	ErrInvalidArgument = errors.New("bytepipe: invalid argument")

	// ErrShortRead means an InputPipe produced fewer bytes than requested.
	ErrShortRead = errors.New("bytepipe: short read")

	// ErrShortWrite means an OutputPipe accepted fewer bytes than requested.
	ErrShortWrite = errors.New("bytepipe: short write")

	// ErrTooLong reports that a value or packet length exceeds the wire
	// format's representable range.
	ErrTooLong = errors.New("bytepipe: value too long")

	// ErrBadVersion means a pipe header advertised a wire version the
	// reader does not support.
	ErrBadVersion = errors.New("bytepipe: unsupported wire version")

	// ErrBadPrimaryID means a value header's primary id was not one of
	// Null, Primitive, String, Array, Object, UserPod.
	ErrBadPrimaryID = errors.New("bytepipe: unknown primary id")

	// ErrBadSecondaryID means a value header's secondary id did not match
	// any known primitive type.
	ErrBadSecondaryID = errors.New("bytepipe: unknown secondary id")

	// ErrBadState means a Writer or Reader method was called while the
	// internal mode stack was not in the state the call requires, e.g.
	// OnObjectEnd outside of an Object.
	ErrBadState = errors.New("bytepipe: invalid state")

	// ErrUnalignedECC means a raw Hamming pipe was asked to encode or
	// decode a byte count that does not divide evenly into the codec's
	// block size.
	ErrUnalignedECC = errors.New("bytepipe: byte count not aligned to ECC block size")

	// ErrUncorrectableECC means extended Hamming(15,11) decoding found a
	// two-bit error: single-bit correction ran, but the overall parity
	// bit still disagrees.
	ErrUncorrectableECC = errors.New("bytepipe: uncorrectable ECC error (double bit)")

	// ErrBadPacketHeader means a packet pipe read a header with an
	// unsupported version field or a used_size greater than packet_size.
	ErrBadPacketHeader = errors.New("bytepipe: malformed packet header")
)
