// This tool prints the format, frame count and duration of a WAV file.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/cwbudde/wavio"
)

func main() {
	err := run(os.Args[1:], os.Stdout)
	if err != nil {
		log.Fatal(err)
	}
}

func run(args []string, out io.Writer) error {
	flagSet := flag.NewFlagSet("wavinfo", flag.ContinueOnError)

	path := flagSet.String("path", "", "the path to the wav file to inspect")

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

	dec, err := wavio.NewDecoder(file)
	if err != nil {
		return fmt.Errorf("invalid WAV file: %w", err)
	}

	format := dec.Format()

	fmt.Fprintf(out, "%s\n", format.SampleKind())
	fmt.Fprintf(out, "channels:    %d\n", dec.NumChannels())
	fmt.Fprintf(out, "sample rate: %d Hz\n", dec.SampleRate())
	fmt.Fprintf(out, "byte rate:   %d\n", format.AvgBytesPerSec)
	fmt.Fprintf(out, "frames:      %d\n", dec.TotalFrames())
	fmt.Fprintf(out, "duration:    %s\n", dec.Duration())

	return nil
}
