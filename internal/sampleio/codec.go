package sampleio

import (
	"encoding/binary"
	"math"

	"github.com/ttsou/resample"
)

// Codec encodes and decodes one element type to its raw little-endian
// form. Complex codecs are derived from their component codec: real
// component first, imaginary second, back to back.
type Codec[E any] struct {
	// Size is the encoded element width in bytes.
	Size int

	// Put encodes v into b[:Size].
	Put func(b []byte, v E)

	// Get decodes one element from b[:Size].
	Get func(b []byte) E
}

var (
	codecS8 = Codec[int8]{
		Size: 1,
		Put:  func(b []byte, v int8) { b[0] = byte(v) },
		Get:  func(b []byte) int8 { return int8(b[0]) },
	}
	codecS16 = Codec[int16]{
		Size: 2,
		Put:  func(b []byte, v int16) { binary.LittleEndian.PutUint16(b, uint16(v)) },
		Get:  func(b []byte) int16 { return int16(binary.LittleEndian.Uint16(b)) },
	}
	codecS32 = Codec[int32]{
		Size: 4,
		Put:  func(b []byte, v int32) { binary.LittleEndian.PutUint32(b, uint32(v)) },
		Get:  func(b []byte) int32 { return int32(binary.LittleEndian.Uint32(b)) },
	}
	codecS64 = Codec[int64]{
		Size: 8,
		Put:  func(b []byte, v int64) { binary.LittleEndian.PutUint64(b, uint64(v)) },
		Get:  func(b []byte) int64 { return int64(binary.LittleEndian.Uint64(b)) },
	}
	codecF32 = Codec[float32]{
		Size: 4,
		Put:  func(b []byte, v float32) { binary.LittleEndian.PutUint32(b, math.Float32bits(v)) },
		Get:  func(b []byte) float32 { return math.Float32frombits(binary.LittleEndian.Uint32(b)) },
	}
	codecF64 = Codec[float64]{
		Size: 8,
		Put:  func(b []byte, v float64) { binary.LittleEndian.PutUint64(b, math.Float64bits(v)) },
		Get:  func(b []byte) float64 { return math.Float64frombits(binary.LittleEndian.Uint64(b)) },
	}
)

// complexCodec derives the pair codec from a component codec.
func complexCodec[T resample.Real](c Codec[T]) Codec[resample.Complex[T]] {
	return Codec[resample.Complex[T]]{
		Size: 2 * c.Size,
		Put: func(b []byte, v resample.Complex[T]) {
			c.Put(b, v.Re)
			c.Put(b[c.Size:], v.Im)
		},
		Get: func(b []byte) resample.Complex[T] {
			return resample.Complex[T]{Re: c.Get(b), Im: c.Get(b[c.Size:])}
		},
	}
}

// For selects the codec for element type E, instantiated over a zero
// value. The Element type set makes the default branch unreachable.
func For[E resample.Element]() Codec[E] {
	var zero E
	var c any
	switch any(zero).(type) {
	case int8:
		c = codecS8
	case int16:
		c = codecS16
	case int32:
		c = codecS32
	case int64:
		c = codecS64
	case float32:
		c = codecF32
	case float64:
		c = codecF64
	case resample.Complex[int8]:
		c = complexCodec(codecS8)
	case resample.Complex[int16]:
		c = complexCodec(codecS16)
	case resample.Complex[int32]:
		c = complexCodec(codecS32)
	case resample.Complex[int64]:
		c = complexCodec(codecS64)
	case resample.Complex[float32]:
		c = complexCodec(codecF32)
	case resample.Complex[float64]:
		c = complexCodec(codecF64)
	default:
		panic("sampleio: element type outside codec registry")
	}

	cc, ok := c.(Codec[E])
	if !ok {
		panic("sampleio: codec registry type mismatch")
	}
	return cc
}
