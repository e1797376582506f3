package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cwbudde/wavio"
)

func TestRunGeneratesWavFile(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "sine.wav")

	err := run([]string{"-output", outPath, "-length", "0.01", "-frequency", "220"})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	fi, err := os.Stat(outPath)
	if err != nil {
		t.Fatalf("output file missing: %v", err)
	}

	if fi.Size() <= 44 {
		t.Fatalf("unexpected small wav file size: %d", fi.Size())
	}

	f, err := os.Open(outPath)
	if err != nil {
		t.Fatalf("open generated file: %v", err)
	}
	defer f.Close()

	dec, err := wavio.NewDecoder(f)
	if err != nil {
		t.Fatalf("generated file is not a valid wav: %v", err)
	}

	if dec.SampleRate() != 48000 {
		t.Fatalf("sample rate=%d, want 48000", dec.SampleRate())
	}

	if dec.BitDepth() != 16 {
		t.Fatalf("bit depth=%d, want 16", dec.BitDepth())
	}

	if dec.NumChannels() != 1 {
		t.Fatalf("channels=%d, want 1", dec.NumChannels())
	}

	// 0.01 sec * 48000 Hz = 480 frames
	if dec.TotalFrames() != 480 {
		t.Fatalf("expected 480 frames, got %d", dec.TotalFrames())
	}
}

func TestRunFlagParseError(t *testing.T) {
	err := run([]string{"-length", "not-a-number"})
	if err == nil {
		t.Fatalf("expected failure for invalid flag value")
	}
}

func TestRunInvalidOutputPath(t *testing.T) {
	err := run([]string{"-output", "/nonexistent/dir/file.wav", "-length", "0.001"})
	if err == nil {
		t.Fatal("expected error for invalid output path")
	}
}
