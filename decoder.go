package wavio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/riff"
)

// Decoder streams sample data out of a WAV container. The whole header is
// parsed up front by NewDecoder; afterwards the decoder only moves forward
// through the data region, except for explicit frame seeks.
//
// A Decoder is not safe for concurrent use. The underlying stream is
// borrowed for the decoder's lifetime, never closed.
type Decoder struct {
	r io.ReadSeeker

	format Format

	// pos is the absolute stream position in bytes. It is the single
	// source of truth and is resynchronized on every seek, so a buffered
	// stream whose own cursor drifts cannot desynchronize the decoder.
	pos       int64
	dataStart int64
	dataSize  int64
	fileSize  int64

	scratch []byte
}

// NewDecoder reads and validates all leading chunks of the stream up to and
// including the data chunk header. The stream is left positioned on the
// first sample.
func NewDecoder(r io.ReadSeeker) (*Decoder, error) {
	d := &Decoder{r: r}

	err := d.readHeaders()
	if err != nil {
		return nil, err
	}

	return d, nil
}

// Format returns a copy of the validated format descriptor.
func (d *Decoder) Format() Format {
	return d.format
}

// SampleRate returns the number of frames per second.
func (d *Decoder) SampleRate() int {
	return int(d.format.SampleRate)
}

// NumChannels returns the number of channels per frame.
func (d *Decoder) NumChannels() int {
	return int(d.format.NumChannels)
}

// BitDepth returns the bit depth encoding of each sample.
func (d *Decoder) BitDepth() int {
	return int(d.format.BitsPerSample)
}

// AudioFormat returns the decoded format as a go-audio format value.
func (d *Decoder) AudioFormat() *audio.Format {
	return &audio.Format{
		NumChannels: int(d.format.NumChannels),
		SampleRate:  int(d.format.SampleRate),
	}
}

// Remaining returns the number of samples left in the data region. The
// result is always a multiple of the channel count.
func (d *Decoder) Remaining() int64 {
	return (d.dataSize - (d.pos - d.dataStart)) / int64(d.format.SampleSize())
}

// TotalFrames returns the number of frames in the data region.
func (d *Decoder) TotalFrames() int64 {
	return d.dataSize / int64(d.format.FrameSize())
}

// CurrentFrame returns the frame index the next read will start at.
func (d *Decoder) CurrentFrame() int64 {
	return (d.pos - d.dataStart) / int64(d.format.FrameSize())
}

// Duration returns the play time of the full data region.
func (d *Decoder) Duration() time.Duration {
	return time.Duration(float64(d.TotalFrames()) / float64(d.format.SampleRate) * float64(time.Second))
}

// SeekFrame positions the decoder on the given frame. Out-of-range targets
// are clamped to [0, TotalFrames]. It returns the resulting current frame.
func (d *Decoder) SeekFrame(frame int64) (int64, error) {
	if frame < 0 {
		frame = 0
	}

	if total := d.TotalFrames(); frame > total {
		frame = total
	}

	err := d.seekTo(d.dataStart + frame*int64(d.format.FrameSize()))
	if err != nil {
		return 0, err
	}

	return d.CurrentFrame(), nil
}

// ReadFrames fills dst with samples converted to T, using the interleaved
// or planar layout. It decodes min(len(dst)/channels, frames remaining)
// full frames and zero-fills the rest of dst, so the buffer is always fully
// populated; the returned count is the number of genuine frames. A stream
// that ends before the data chunk's declared size fails with
// ErrEndOfStream.
func ReadFrames[T Sample](d *Decoder, dst []T, interleaved bool) (int, error) {
	chans := int(d.format.NumChannels)
	capFrames := len(dst) / chans

	frames := capFrames
	if avail := d.Remaining() / int64(chans); int64(frames) > avail {
		frames = int(avail)
	}

	sampleSize := d.format.SampleSize()
	raw := d.grow(frames * chans * sampleSize)

	if frames > 0 {
		err := d.readFull(raw)
		if err != nil {
			return 0, err
		}
	}

	kind := d.format.SampleKind()

	for frame := 0; frame < capFrames; frame++ {
		for ch := 0; ch < chans; ch++ {
			idx := InterleavedIndex(chans, frame, ch)
			if !interleaved {
				idx = PlanarIndex(capFrames, frame, ch)
			}

			if frame < frames {
				dst[idx] = decodeSample[T](kind, raw[(frame*chans+ch)*sampleSize:])
			} else {
				dst[idx] = sampleFromFloat[T](0)
			}
		}
	}

	return frames, nil
}

func decodeSample[T Sample](kind SampleKind, buf []byte) T {
	switch kind {
	case Uint8:
		return sampleFromInt[T](Uint8, int32(buf[0]))
	case Int16:
		return sampleFromInt[T](Int16, int32(int16(binary.LittleEndian.Uint16(buf))))
	case Int24:
		return sampleFromInt[T](Int24, audio.Int24LETo32(buf[:3]))
	case Int32:
		return sampleFromInt[T](Int32, int32(binary.LittleEndian.Uint32(buf)))
	default:
		return sampleFromFloat[T](math.Float32frombits(binary.LittleEndian.Uint32(buf)))
	}
}

// readHeaders performs the single construction-time pass over the leading
// chunks: RIFF marker, declared file size, WAVE marker, then the chunk loop
// until the terminal data chunk.
func (d *Decoder) readHeaders() error {
	err := d.seekTo(0)
	if err != nil {
		return err
	}

	var (
		tag     [4]byte
		sizeBuf [4]byte
	)

	if err := d.readFull(tag[:]); err != nil {
		return err
	}

	if tag != riff.RiffID {
		return fmt.Errorf("%w: missing RIFF marker", ErrInvalidFileType)
	}

	if err := d.readFull(sizeBuf[:]); err != nil {
		return err
	}

	// the size field excludes the two leading tags
	d.fileSize = int64(binary.LittleEndian.Uint32(sizeBuf[:])) + 8

	if err := d.readFull(tag[:]); err != nil {
		return err
	}

	if tag != riff.WavFormatID {
		return fmt.Errorf("%w: missing WAVE marker", ErrInvalidFileType)
	}

	var haveFmt, haveData bool
	for !haveData {
		if err := d.readFull(tag[:]); err != nil {
			return err
		}

		if err := d.readFull(sizeBuf[:]); err != nil {
			return err
		}

		size := int64(binary.LittleEndian.Uint32(sizeBuf[:]))

		switch tag {
		case riff.FmtID:
			if err := d.readFormatChunk(size); err != nil {
				return err
			}

			haveFmt = true
		case riff.DataFormatID:
			// the data chunk is terminal, nothing after it is scanned
			d.dataSize = size
			haveData = true
		default:
			if err := d.seekTo(d.pos + size); err != nil {
				return err
			}
		}
	}

	if !haveFmt {
		return fmt.Errorf("%w: no fmt chunk before data", ErrInvalidFileType)
	}

	d.dataStart = d.pos

	if d.dataStart+d.dataSize > d.fileSize {
		return fmt.Errorf("%w: data chunk of %d bytes exceeds the declared file size of %d bytes",
			ErrInvalidSize, d.dataSize, d.fileSize)
	}

	if d.dataSize%int64(d.format.FrameSize()) != 0 {
		return fmt.Errorf("%w: data length %d ends in a partial frame", ErrInvalidSize, d.dataSize)
	}

	return nil
}

func (d *Decoder) readFormatChunk(size int64) error {
	if size < fmtChunkSize {
		return fmt.Errorf("%w: fmt chunk of %d bytes", ErrInvalidSize, size)
	}

	var buf [fmtChunkSize]byte

	err := d.readFull(buf[:])
	if err != nil {
		return err
	}

	d.format = decodeFormat(buf[:])
	if err := d.format.validate(); err != nil {
		return err
	}

	// extended fmt chunks carry extra fields the codec does not interpret
	if size > fmtChunkSize {
		return d.seekTo(d.pos + size - fmtChunkSize)
	}

	return nil
}

// readFull reads exactly len(buf) bytes and advances the position counter
// by the bytes actually consumed, even on a short read. Exhaustion of the
// stream maps to ErrEndOfStream; any other read fault keeps its cause.
func (d *Decoder) readFull(buf []byte) error {
	n, err := io.ReadFull(d.r, buf)
	d.pos += int64(n)

	if err == nil {
		return nil
	}

	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: got %d of %d bytes", ErrEndOfStream, n, len(buf))
	}

	return fmt.Errorf("failed to read %d bytes: %w", len(buf), err)
}

func (d *Decoder) seekTo(offset int64) error {
	pos, err := d.r.Seek(offset, io.SeekStart)
	if err != nil {
		return fmt.Errorf("failed to seek to offset %d: %w", offset, err)
	}

	d.pos = pos

	return nil
}

func (d *Decoder) grow(size int) []byte {
	if cap(d.scratch) < size {
		d.scratch = make([]byte, size)
	}

	return d.scratch[:size]
}
