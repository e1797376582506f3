package wavio

import "errors"

var (
	// ErrInvalidFileType is returned when the RIFF or WAVE markers are
	// missing or when the file contains no fmt chunk.
	ErrInvalidFileType = errors.New("invalid file type")
	// ErrInvalidSize is returned when a declared size is inconsistent with
	// the actual or derived sizes, including non-frame-aligned data lengths.
	ErrInvalidSize = errors.New("invalid size")
	// ErrInvalidValue is returned for internally inconsistent fmt chunk
	// fields, such as zero channels or a mismatched byte rate.
	ErrInvalidValue = errors.New("invalid value")
	// ErrUnsupported is returned for recognized but unhandled format codes,
	// bit depths, or sample packings.
	ErrUnsupported = errors.New("unsupported format")
	// ErrInvalidArgument is returned when encoder construction parameters
	// are out of range.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrOverflow is returned when a size would exceed the 32-bit RIFF
	// size field.
	ErrOverflow = errors.New("size overflow")
	// ErrEndOfStream is returned when the underlying stream is exhausted
	// in the middle of a read.
	ErrEndOfStream = errors.New("unexpected end of stream")
)
