// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bytepipe

import (
	"encoding/binary"

	"github.com/anvilio/bytepipe/internal/bo"
)

// Options configures a Writer or Reader.
type Options struct {
	// ByteOrder controls how multi-byte wire fields are encoded and
	// decoded. The wire format is little-endian by default;
	// WithLegacyHostByteOrder switches to the machine's native order to
	// interoperate with a codec that never normalized byte order across
	// architectures.
	ByteOrder binary.ByteOrder

	// Version is the pipe header version a Writer advertises. It has no
	// effect on Reader, which accepts any version up to WireV3 uniformly.
	Version WireVersion
}

var defaultOptions = Options{
	ByteOrder: binary.LittleEndian,
	Version:   WireV1,
}

// WithWireVersion sets the pipe header version a Writer advertises,
// restricting which event shapes it will emit natively. A WireV1 writer
// decomposes bulk primitive arrays into per-element events instead of
// using the compact bulk wire encoding; WireV2 and WireV3 both use the
// bulk encoding and differ only in the version byte the pipe header
// advertises. Packet header layouts (packet.go) depend on packet size, not
// on this setting.
func WithWireVersion(v WireVersion) Option {
	return func(o *Options) { o.Version = v }
}

// Option configures a Writer or Reader constructor.
type Option func(*Options)

// WithByteOrder overrides the multi-byte field encoding. Most callers
// should not need this; it exists for interop with a non-default writer.
func WithByteOrder(order binary.ByteOrder) Option {
	return func(o *Options) { o.ByteOrder = order }
}

// WithLegacyHostByteOrder selects the machine's native byte order instead
// of the wire format's little-endian default.
func WithLegacyHostByteOrder() Option {
	return func(o *Options) { o.ByteOrder = bo.Native() }
}

func resolveOptions(opts []Option) Options {
	o := defaultOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
