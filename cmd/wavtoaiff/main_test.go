package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cwbudde/wavio"
	"github.com/go-audio/aiff"
	"github.com/go-audio/audio"
)

func TestFloat32ToIntBuffer(t *testing.T) {
	format := &audio.Format{NumChannels: 1, SampleRate: 48000}
	in := []float32{-1.5, 0, 0.5, 1.5}

	got := float32ToIntBuffer(in, format, wavio.Int16)
	if got.SourceBitDepth != 16 {
		t.Fatalf("unexpected bit depth %d", got.SourceBitDepth)
	}

	want := []int{-32768, 0, 16384, 32767}
	if len(got.Data) != len(want) {
		t.Fatalf("unexpected data length %d", len(got.Data))
	}

	for i := range want {
		if got.Data[i] != want[i] {
			t.Fatalf("sample[%d]=%d, want %d", i, got.Data[i], want[i])
		}
	}
}

func TestRunConvertsWavToAiff(t *testing.T) {
	dir := t.TempDir()
	wavPath := filepath.Join(dir, "tone.wav")

	f, err := os.Create(wavPath)
	if err != nil {
		t.Fatal(err)
	}

	enc, err := wavio.NewEncoder(f, wavio.Int16, 44100, 1)
	if err != nil {
		t.Fatalf("create encoder: %v", err)
	}

	samples := make([]int16, 200)
	for i := range samples {
		samples[i] = int16(i * 100)
	}

	if err := wavio.WriteFrames(enc, samples, true); err != nil {
		t.Fatalf("write frames: %v", err)
	}

	if err := enc.Close(); err != nil {
		t.Fatalf("close encoder: %v", err)
	}

	f.Close()

	if err := run([]string{"-path", wavPath}); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	aifPath := filepath.Join(dir, "tone.aif")

	out, err := os.Open(aifPath)
	if err != nil {
		t.Fatalf("converted file missing: %v", err)
	}
	defer out.Close()

	dec := aiff.NewDecoder(out)

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		t.Fatalf("decode aiff: %v", err)
	}

	if len(buf.Data) != len(samples) {
		t.Fatalf("expected %d samples, got %d", len(samples), len(buf.Data))
	}

	for i := range samples {
		if buf.Data[i] != int(samples[i]) {
			t.Fatalf("sample[%d]=%d, want %d", i, buf.Data[i], samples[i])
		}
	}
}

func TestRunMissingPath(t *testing.T) {
	if err := run(nil); err == nil {
		t.Fatal("expected error without -path")
	}
}
