package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cwbudde/wavio"
)

func writeTestWav(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "tone.wav")

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	enc, err := wavio.NewEncoder(f, wavio.Int16, 8000, 2)
	if err != nil {
		t.Fatalf("create encoder: %v", err)
	}

	samples := make([]int16, 2*100)
	for i := range samples {
		samples[i] = int16(i)
	}

	if err := wavio.WriteFrames(enc, samples, true); err != nil {
		t.Fatalf("write frames: %v", err)
	}

	if err := enc.Close(); err != nil {
		t.Fatalf("close encoder: %v", err)
	}

	return path
}

func TestRunPrintsInfo(t *testing.T) {
	path := writeTestWav(t)

	var out bytes.Buffer

	err := run([]string{"-path", path}, &out)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	got := out.String()
	for _, want := range []string{"16-bit signed PCM", "channels:    2", "sample rate: 8000 Hz", "frames:      100"} {
		if !strings.Contains(got, want) {
			t.Fatalf("output missing %q:\n%s", want, got)
		}
	}
}

func TestRunMissingPath(t *testing.T) {
	err := run(nil, os.Stdout)
	if err == nil {
		t.Fatal("expected error without -path")
	}
}

func TestRunInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not-a-wav.wav")
	if err := os.WriteFile(path, []byte("not a riff file at all"), 0o644); err != nil {
		t.Fatal(err)
	}

	err := run([]string{"-path", path}, os.Stdout)
	if err == nil {
		t.Fatal("expected error for a non-wav file")
	}
}
