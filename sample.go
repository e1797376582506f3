package wavio

import "math"

// SampleKind identifies one of the numeric sample encodings a WAV data
// region can carry. It doubles as the tag used by the conversion routines
// for the in-memory representation of a scalar sample.
type SampleKind uint8

const (
	// Uint8 is 8-bit offset-unsigned PCM with the zero point at 128.
	Uint8 SampleKind = iota
	// Int16 is 16-bit signed little-endian PCM.
	Int16
	// Int24 is 24-bit signed little-endian PCM, packed in 3 bytes on disk
	// and carried in-memory as an int32.
	Int24
	// Int32 is 32-bit signed little-endian PCM.
	Int32
	// Float32 is 32-bit little-endian IEEE float, normalized to [-1, 1].
	Float32
)

const (
	pcm8Offset = 128

	scalePCM8  = 128.0
	scalePCM16 = 32768.0
	scalePCM24 = 8388608.0
	scalePCM32 = 2147483648.0

	maxPCMInt16 = 32767
	maxPCMInt24 = 8388607
	maxPCMInt32 = 2147483647
)

// BitDepth returns the number of significant bits per sample.
func (k SampleKind) BitDepth() int {
	switch k {
	case Uint8:
		return 8
	case Int16:
		return 16
	case Int24:
		return 24
	default:
		return 32
	}
}

// ByteSize returns the encoded size of one sample in bytes.
func (k SampleKind) ByteSize() int {
	return k.BitDepth() / 8
}

// String implements the Stringer interface.
func (k SampleKind) String() string {
	switch k {
	case Uint8:
		return "8-bit unsigned PCM"
	case Int16:
		return "16-bit signed PCM"
	case Int24:
		return "24-bit signed PCM"
	case Int32:
		return "32-bit signed PCM"
	case Float32:
		return "32-bit IEEE float"
	default:
		return "unknown sample kind"
	}
}

// Quantize maps a normalized float sample onto the kind's integer range,
// rounding to nearest and clamping. Uint8 results carry the 128 offset;
// Float32 quantizes through the 32-bit integer range.
func (k SampleKind) Quantize(v float32) int32 {
	if k == Float32 {
		k = Int32
	}

	return quantize(k, v)
}

// Sample constrains the in-memory scalar types the codec reads into and
// writes from. 24-bit data is carried as int32.
type Sample interface {
	uint8 | int16 | int32 | float32
}

// InterleavedIndex returns the buffer position of the sample for the given
// frame and channel in an interleaved layout, where consecutive entries
// cycle through the channels of one frame before the next frame starts.
func InterleavedIndex(numChannels, frame, channel int) int {
	return frame*numChannels + channel
}

// PlanarIndex returns the buffer position of the sample for the given frame
// and channel in a planar layout, where all frames of one channel are
// contiguous before the next channel begins.
func PlanarIndex(numFrames, frame, channel int) int {
	return channel*numFrames + frame
}

// ConvertSample converts a scalar sample between two in-memory
// representations. Same-type conversion is the identity, integer widening
// is an exact left shift, narrowing truncates low bits, and conversions
// through float normalize by the integer type's maximum magnitude.
func ConvertSample[D, S Sample](v S) D {
	if kindOf[S]() == Float32 {
		return sampleFromFloat[D](float32(v))
	}

	return sampleFromInt[D](kindOf[S](), int32(v))
}

func kindOf[T Sample]() SampleKind {
	var zero T

	switch any(zero).(type) {
	case uint8:
		return Uint8
	case int16:
		return Int16
	case int32:
		return Int32
	default:
		return Float32
	}
}

func sampleFromInt[T Sample](src SampleKind, v int32) T {
	if dst := kindOf[T](); dst != Float32 {
		return T(convertInt(dst, src, v))
	}

	return T(normalize(src, v))
}

func sampleFromFloat[T Sample](v float32) T {
	if dst := kindOf[T](); dst != Float32 {
		return T(quantize(dst, v))
	}

	return T(v)
}

func sampleToInt[T Sample](dst SampleKind, v T) int32 {
	if src := kindOf[T](); src != Float32 {
		return convertInt(dst, src, int32(v))
	}

	return quantize(dst, float32(v))
}

func sampleToFloat[T Sample](v T) float32 {
	if src := kindOf[T](); src != Float32 {
		return normalize(src, int32(v))
	}

	return float32(v)
}

// convertInt converts between integer sample kinds. Widening is an exact
// left shift, narrowing an arithmetic right shift; Uint8 values are
// recentered around the 128 zero point on the way in and out.
func convertInt(dst, src SampleKind, v int32) int32 {
	if src == Float32 || dst == Float32 {
		panic("wavio: float sample kind in integer conversion")
	}

	if src == dst {
		return v
	}

	if src == Uint8 {
		v -= pcm8Offset
	}

	shift := dst.BitDepth() - src.BitDepth()
	switch {
	case shift > 0:
		v <<= uint(shift)
	case shift < 0:
		v >>= uint(-shift)
	}

	if dst == Uint8 {
		v += pcm8Offset
	}

	return v
}

// normalize maps an integer sample onto (-1, 1] by dividing through the
// source kind's maximum magnitude.
func normalize(k SampleKind, v int32) float32 {
	switch k {
	case Uint8:
		return float32(float64(v-pcm8Offset) / scalePCM8)
	case Int16:
		return float32(float64(v) / scalePCM16)
	case Int24:
		return float32(float64(v) / scalePCM24)
	case Int32:
		return float32(float64(v) / scalePCM32)
	default:
		panic("wavio: float sample kind in normalization")
	}
}

// quantize maps a float sample onto the target integer kind by scaling,
// rounding to nearest and clamping to the representable range.
func quantize(k SampleKind, v float32) int32 {
	switch k {
	case Uint8:
		return clampScaled(v, scalePCM8, -pcm8Offset, pcm8Offset-1) + pcm8Offset
	case Int16:
		return clampScaled(v, scalePCM16, -scalePCM16, maxPCMInt16)
	case Int24:
		return clampScaled(v, scalePCM24, -scalePCM24, maxPCMInt24)
	case Int32:
		return clampScaled(v, scalePCM32, -scalePCM32, maxPCMInt32)
	default:
		panic("wavio: float sample kind in quantization")
	}
}

func clampScaled(v float32, scale float64, minVal, maxVal int64) int32 {
	scaled := math.Round(float64(v) * scale)

	if scaled >= float64(maxVal) {
		return int32(maxVal)
	}

	if scaled <= float64(minVal) {
		return int32(minVal)
	}

	return int32(scaled)
}
