// Package endian provides the byte order used to lay out brs buffers.
//
// The brs wire format is deliberately tied to the producer's native byte order: hunk
// headers, indices and scalar payloads are written the way the host stores them in
// memory. A buffer is therefore only readable as-is by a consumer sharing the producer's
// architecture. This package detects the host order once and exposes it as an
// EndianEngine, which combines the ByteOrder and AppendByteOrder interfaces of
// encoding/binary:
//
//	engine := endian.GetNativeEngine()
//	buf = engine.AppendUint32(buf, word)
//
// The explicit little and big endian engines exist so tests and tools can build or read
// buffers for a specific architecture regardless of the host.
//
// # Thread Safety
//
// All functions and methods in this package are safe for concurrent use.
// The returned EndianEngine instances are immutable and stateless.
package endian

import (
	"encoding/binary"

	"golang.org/x/sys/cpu"
)

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
//
// This interface is satisfied by binary.LittleEndian and binary.BigEndian.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

var nativeEngine = detectNative()

// detectNative picks the engine for the GOARCH the binary was built for.
func detectNative() EndianEngine {
	if cpu.IsBigEndian {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// CheckEndianness returns the host's byte order.
func CheckEndianness() binary.ByteOrder {
	return nativeEngine
}

// IsNativeLittleEndian reports whether the host is little-endian.
func IsNativeLittleEndian() bool {
	return nativeEngine == binary.LittleEndian
}

// IsNativeBigEndian reports whether the host is big-endian.
func IsNativeBigEndian() bool {
	return nativeEngine == binary.BigEndian
}

// CompareNativeEndian reports whether engine matches the host byte order.
func CompareNativeEndian(engine EndianEngine) bool {
	return engine == nativeEngine
}

// GetNativeEngine returns the engine matching the host byte order.
// This is the engine brs uses unless told otherwise.
func GetNativeEngine() EndianEngine {
	return nativeEngine
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}
