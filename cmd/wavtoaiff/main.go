// This tool converts a wav file into an identical aiff file and stores
// it in the same folder as the source.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/cwbudde/wavio"
	"github.com/go-audio/aiff"
	"github.com/go-audio/audio"
)

func main() {
	err := run(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	flagSet := flag.NewFlagSet("wavtoaiff", flag.ContinueOnError)

	path := flagSet.String("path", "", "the path to the wav file to convert to aiff")

	err := flagSet.Parse(args)
	if err != nil {
		return err
	}

	if *path == "" {
		return fmt.Errorf("you must set the -path flag")
	}

	file, err := os.Open(*path)
	if err != nil {
		return fmt.Errorf("invalid path %s: %w", *path, err)
	}
	defer file.Close()

	decoder, err := wavio.NewDecoder(file)
	if err != nil {
		return fmt.Errorf("invalid WAV file: %w", err)
	}

	outPath := (*path)[:len(*path)-len(filepath.Ext(*path))] + ".aif"

	outFile, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", outPath, err)
	}
	defer outFile.Close()

	encoder := aiff.NewEncoder(outFile, decoder.SampleRate(), decoder.BitDepth(), decoder.NumChannels())
	format := decoder.AudioFormat()
	kind := decoder.Format().SampleKind()

	const bufferFrames = 4096
	buf := make([]float32, bufferFrames*decoder.NumChannels())

	for decoder.Remaining() > 0 {
		num, err := wavio.ReadFrames(decoder, buf, true)
		if err != nil {
			return fmt.Errorf("failed to decode samples: %w", err)
		}

		if num == 0 {
			break
		}

		intBuf := float32ToIntBuffer(buf[:num*decoder.NumChannels()], format, kind)

		err = encoder.Write(intBuf)
		if err != nil {
			return fmt.Errorf("failed to encode samples: %w", err)
		}
	}

	err = encoder.Close()
	if err != nil {
		return fmt.Errorf("failed to finalize %s: %w", outPath, err)
	}

	fmt.Printf("Wav file converted to %s\n", outPath)

	return nil
}

func float32ToIntBuffer(data []float32, format *audio.Format, kind wavio.SampleKind) *audio.IntBuffer {
	intBuf := &audio.IntBuffer{
		Format:         format,
		SourceBitDepth: kind.BitDepth(),
		Data:           make([]int, len(data)),
	}
	for i, v := range data {
		intBuf.Data[i] = int(kind.Quantize(v))
	}

	return intBuf
}
