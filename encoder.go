package wavio

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/riff"
)

// headerSize covers the RIFF header, the fixed fmt chunk and the data
// chunk header.
const headerSize = 12 + 8 + fmtChunkSize + 8

// Encoder streams sample data into a WAV container. NewEncoder writes a
// provisional header with a data size of zero; Close seeks back and stamps
// the real sizes. Writing after Close is permitted, the header is simply
// stale until the next Close.
//
// An Encoder is not safe for concurrent use. The underlying stream is
// borrowed for the encoder's lifetime, never closed.
type Encoder struct {
	w io.WriteSeeker

	format Format
	kind   SampleKind

	// dataBytes accumulates the size of the data region across writes.
	dataBytes int64

	scratch []byte
}

// NewEncoder validates the target parameters, derives the format descriptor
// from the sample kind and writes the provisional header. Uint8 through
// Int32 map to PCM at the kind's bit depth, Float32 to IEEE float.
func NewEncoder(w io.WriteSeeker, kind SampleKind, sampleRate, numChans int) (*Encoder, error) {
	if kind > Float32 {
		return nil, fmt.Errorf("%w: unknown sample kind %d", ErrInvalidArgument, kind)
	}

	if sampleRate <= 0 || int64(sampleRate) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: sample rate %d", ErrInvalidArgument, sampleRate)
	}

	if numChans <= 0 || numChans > math.MaxUint16 {
		return nil, fmt.Errorf("%w: %d channels", ErrInvalidArgument, numChans)
	}

	blockAlign := numChans * kind.ByteSize()
	if blockAlign > math.MaxUint16 {
		return nil, fmt.Errorf("%w: block align %d", ErrInvalidArgument, blockAlign)
	}

	byteRate := int64(sampleRate) * int64(blockAlign)
	if byteRate > math.MaxUint32 {
		return nil, fmt.Errorf("%w: byte rate %d", ErrInvalidArgument, byteRate)
	}

	code := uint16(wavFormatPCM)
	if kind == Float32 {
		code = wavFormatIEEEFloat
	}

	e := &Encoder{
		w:    w,
		kind: kind,
		format: Format{
			Code:           code,
			NumChannels:    uint16(numChans),
			SampleRate:     uint32(sampleRate),
			AvgBytesPerSec: uint32(byteRate),
			BlockAlign:     uint16(blockAlign),
			BitsPerSample:  uint16(kind.BitDepth()),
		},
	}

	err := e.writeHeader()
	if err != nil {
		return nil, err
	}

	return e, nil
}

// Format returns a copy of the format descriptor being written.
func (e *Encoder) Format() Format {
	return e.format
}

// SampleKind returns the on-disk sample encoding of the data region.
func (e *Encoder) SampleKind() SampleKind {
	return e.kind
}

// DataBytes returns the number of data-region bytes written so far.
func (e *Encoder) DataBytes() int64 {
	return e.dataBytes
}

// WriteFrames encodes every full frame in src and appends it to the data
// region, reading src in the interleaved or planar layout.
func WriteFrames[T Sample](e *Encoder, src []T, interleaved bool) error {
	return WriteFramesN(e, src, len(src)/int(e.format.NumChannels), interleaved)
}

// WriteFramesN is the bounded variant of WriteFrames: it encodes at most
// frames full frames, capped by what src actually holds.
func WriteFramesN[T Sample](e *Encoder, src []T, frames int, interleaved bool) error {
	chans := int(e.format.NumChannels)

	bufFrames := len(src) / chans
	if frames > bufFrames {
		frames = bufFrames
	}

	if frames <= 0 {
		return nil
	}

	sampleSize := e.kind.ByteSize()

	need := frames * chans * sampleSize
	if cap(e.scratch) < need {
		e.scratch = make([]byte, need)
	}

	raw := e.scratch[:need]

	off := 0

	for frame := 0; frame < frames; frame++ {
		for ch := 0; ch < chans; ch++ {
			idx := InterleavedIndex(chans, frame, ch)
			if !interleaved {
				idx = PlanarIndex(bufFrames, frame, ch)
			}

			encodeSample(e.kind, raw[off:], src[idx])
			off += sampleSize
		}
	}

	n, err := e.w.Write(raw)
	e.dataBytes += int64(n)

	if err != nil {
		return fmt.Errorf("failed to write sample data: %w", err)
	}

	return nil
}

func encodeSample[T Sample](kind SampleKind, buf []byte, v T) {
	switch kind {
	case Uint8:
		buf[0] = uint8(sampleToInt(Uint8, v))
	case Int16:
		binary.LittleEndian.PutUint16(buf, uint16(sampleToInt(Int16, v)))
	case Int24:
		copy(buf[:3], audio.Int32toInt24LEBytes(sampleToInt(Int24, v)))
	case Int32:
		binary.LittleEndian.PutUint32(buf, uint32(sampleToInt(Int32, v)))
	default:
		binary.LittleEndian.PutUint32(buf, math.Float32bits(sampleToFloat(v)))
	}
}

// Close rewrites the header with the final accumulated data size and seeks
// back to the end of the stream, so further writes stay valid until the
// next Close. The underlying writer is not closed.
func (e *Encoder) Close() error {
	if headerSize-8+e.dataBytes > math.MaxUint32 {
		return fmt.Errorf("%w: %d data bytes exceed the RIFF size field", ErrOverflow, e.dataBytes)
	}

	if _, err := e.w.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("failed to seek to the header: %w", err)
	}

	if err := e.writeHeader(); err != nil {
		return err
	}

	if _, err := e.w.Seek(0, io.SeekEnd); err != nil {
		return fmt.Errorf("failed to seek back to the stream end: %w", err)
	}

	if f, ok := e.w.(*os.File); ok {
		return f.Sync()
	}

	return nil
}

// writeHeader emits the full 44-byte header, field by field in little
// endian, using the current accumulated data size.
func (e *Encoder) writeHeader() error {
	var hdr [headerSize]byte

	copy(hdr[0:4], riff.RiffID[:])
	binary.LittleEndian.PutUint32(hdr[4:8], uint32(headerSize-8+e.dataBytes))
	copy(hdr[8:12], riff.WavFormatID[:])

	copy(hdr[12:16], riff.FmtID[:])
	binary.LittleEndian.PutUint32(hdr[16:20], fmtChunkSize)
	binary.LittleEndian.PutUint16(hdr[20:22], e.format.Code)
	binary.LittleEndian.PutUint16(hdr[22:24], e.format.NumChannels)
	binary.LittleEndian.PutUint32(hdr[24:28], e.format.SampleRate)
	binary.LittleEndian.PutUint32(hdr[28:32], e.format.AvgBytesPerSec)
	binary.LittleEndian.PutUint16(hdr[32:34], e.format.BlockAlign)
	binary.LittleEndian.PutUint16(hdr[34:36], e.format.BitsPerSample)

	copy(hdr[36:40], riff.DataFormatID[:])
	binary.LittleEndian.PutUint32(hdr[40:44], uint32(e.dataBytes))

	_, err := e.w.Write(hdr[:])
	if err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	return nil
}
