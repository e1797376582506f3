package wavio

import (
	"encoding/binary"
	"fmt"
)

const (
	wavFormatPCM        = 1
	wavFormatALaw       = 6
	wavFormatMuLaw      = 7
	wavFormatIEEEFloat  = 3
	wavFormatExtensible = 0xFFFE

	// fmtChunkSize is the fixed-size part of the fmt chunk payload.
	fmtChunkSize = 16
)

// Format is the parsed and validated fmt chunk of a WAV file. It is
// immutable after construction; Decoder and Encoder hand out copies.
type Format struct {
	Code           uint16
	NumChannels    uint16
	SampleRate     uint32
	AvgBytesPerSec uint32
	BlockAlign     uint16
	BitsPerSample  uint16
}

// decodeFormat reads the fixed-size fmt record field by field. The wire
// layout is defined byte-for-byte, so the fields are decoded explicitly
// rather than through struct layout.
func decodeFormat(buf []byte) Format {
	return Format{
		Code:           binary.LittleEndian.Uint16(buf[0:2]),
		NumChannels:    binary.LittleEndian.Uint16(buf[2:4]),
		SampleRate:     binary.LittleEndian.Uint32(buf[4:8]),
		AvgBytesPerSec: binary.LittleEndian.Uint32(buf[8:12]),
		BlockAlign:     binary.LittleEndian.Uint16(buf[12:14]),
		BitsPerSample:  binary.LittleEndian.Uint16(buf[14:16]),
	}
}

// SampleSize returns the encoded size of a single sample in bytes.
func (f Format) SampleSize() int {
	return int(f.BitsPerSample) / 8
}

// FrameSize returns the number of bytes one frame (all channels) occupies.
func (f Format) FrameSize() int {
	return int(f.NumChannels) * f.SampleSize()
}

// SampleKind returns the on-disk sample encoding described by the format
// code and bit depth. Only valid on a validated format.
func (f Format) SampleKind() SampleKind {
	if f.Code == wavFormatIEEEFloat {
		return Float32
	}

	switch f.BitsPerSample {
	case 8:
		return Uint8
	case 16:
		return Int16
	case 24:
		return Int24
	default:
		return Int32
	}
}

func (f Format) validate() error {
	switch f.Code {
	case wavFormatPCM, wavFormatIEEEFloat, wavFormatExtensible:
	default:
		return fmt.Errorf("%w: format code %d", ErrUnsupported, f.Code)
	}

	if f.NumChannels == 0 {
		return fmt.Errorf("%w: zero channels", ErrInvalidValue)
	}

	if f.SampleRate == 0 {
		return fmt.Errorf("%w: zero sample rate", ErrInvalidValue)
	}

	switch f.BitsPerSample {
	case 8, 16, 24, 32:
	case 0:
		return fmt.Errorf("%w: zero bits per sample", ErrInvalidValue)
	default:
		return fmt.Errorf("%w: %d bits per sample", ErrUnsupported, f.BitsPerSample)
	}

	if f.Code == wavFormatIEEEFloat && f.BitsPerSample != 32 {
		return fmt.Errorf("%w: %d-bit IEEE float", ErrUnsupported, f.BitsPerSample)
	}

	if f.BlockAlign == 0 || f.BlockAlign%f.NumChannels != 0 {
		return fmt.Errorf("%w: block align %d for %d channels", ErrInvalidValue, f.BlockAlign, f.NumChannels)
	}

	// a sample slot wider than the bit depth means 32-bit-aligned packing,
	// which is rejected rather than supported
	if storedBits := int(f.BlockAlign/f.NumChannels) * 8; storedBits != int(f.BitsPerSample) {
		return fmt.Errorf("%w: %d bits per sample stored in %d-bit slots", ErrUnsupported, f.BitsPerSample, storedBits)
	}

	if f.AvgBytesPerSec != f.SampleRate*uint32(f.BlockAlign) {
		return fmt.Errorf("%w: byte rate %d does not match %d Hz with block align %d",
			ErrInvalidValue, f.AvgBytesPerSec, f.SampleRate, f.BlockAlign)
	}

	return nil
}
