// Package endian provides byte order utilities backing varkit's External
// codec and packed.Array's Bytes export.
//
// This package extends Go's standard encoding/binary package by combining
// ByteOrder and AppendByteOrder interfaces into a unified EndianEngine
// interface. Per the wire contract, External/FOR/Packed/Bitstream payloads
// are little-endian in memory; Tagged payloads are big-endian within the
// value bytes and do not use this package.
//
// # Basic Usage
//
// Most callers should use GetLittleEndianEngine(), the format's canonical
// byte order:
//
//	engine := endian.GetLittleEndianEngine()
//	buf = engine.AppendUint64(buf, value)
//
// For interoperability with big-endian hosts:
//
//	engine := endian.GetBigEndianEngine()
//
// # Thread Safety
//
// All functions in this package are safe for concurrent use. The returned
// EndianEngine instances are immutable and stateless.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary
// into a single interface, satisfied by binary.LittleEndian and
// binary.BigEndian.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// CheckEndianness probes the host's native byte order using a fixed
// integer's in-memory layout. This is the process-wide "endian probe" datum
// referenced by spec §9 (Global state) — computed on demand rather than
// cached, since it is cheap and callers may want it before any other
// package state exists.
func CheckEndianness() binary.ByteOrder {
	// 0x0100 is 256. For a little-endian system, the LSB (0x00) is first.
	// For a big-endian system, the MSB (0x01) is first.
	var i uint16 = 0x0100

	b := (*[2]byte)(unsafe.Pointer(&i))
	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// IsNativeLittleEndian reports whether the host is little-endian.
func IsNativeLittleEndian() bool {
	return CheckEndianness() == binary.LittleEndian
}

// IsNativeBigEndian reports whether the host is big-endian.
func IsNativeBigEndian() bool {
	return CheckEndianness() == binary.BigEndian
}

// CompareNativeEndian reports whether engine matches the host's native byte
// order.
func CompareNativeEndian(engine EndianEngine) bool {
	return engine == CheckEndianness()
}

// GetLittleEndianEngine returns the little-endian engine, the canonical byte
// order for varkit's wire formats.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine, used only for
// interoperability with big-endian hosts.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}
