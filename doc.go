// Package wavio reads and writes the RIFF/WAVE audio container and
// converts samples between the on-disk encodings (8-bit unsigned PCM,
// 16/24/32-bit signed PCM, 32-bit IEEE float) and a caller-chosen in-memory
// sample type.
//
// Decoder streams sample data out of an io.ReadSeeker with frame-accurate
// seeking; Encoder streams sample data into an io.WriteSeeker and stamps
// the final sizes on Close. ReadFrames and WriteFrames are generic over the
// in-memory sample type and support interleaved and planar buffer layouts:
//
//	dec, err := wavio.NewDecoder(file)
//	buf := make([]float32, 1024*dec.NumChannels())
//	n, err := wavio.ReadFrames(dec, buf, true)
//
// Compressed WAV codecs (A-law, mu-law, ADPCM, GSM) are rejected with
// ErrUnsupported, not transcoded. Chunks other than "fmt " and "data" are
// skipped without interpretation.
package wavio
