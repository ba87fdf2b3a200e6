// Command flacinfo prints the metadata chain and frame summary of a FLAC
// file.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"

	"github.com/pkg/errors"

	"github.com/artemist-go/muflac"
	"github.com/artemist-go/muflac/meta"
)

func main() {
	verbose := flag.Bool("v", false, "print a summary of every frame")
	flag.Parse()
	if flag.NArg() != 1 {
		log.Fatal("usage: flacinfo [-v] file.flac")
	}
	if err := printInfo(flag.Arg(0), *verbose); err != nil {
		log.Fatalf("%+v", err)
	}
}

func printInfo(name string, verbose bool) error {
	s, closer, err := flac.Open(name)
	if err != nil {
		return errors.WithStack(err)
	}
	defer closer.Close()

	si := s.StreamInfo
	fmt.Printf("sample rate:  %d Hz\n", si.SampleRate)
	fmt.Printf("channels:     %d\n", si.NumChannels)
	fmt.Printf("sample depth: %d bits\n", si.SampleDepth)
	fmt.Printf("block size:   %d..%d samples\n", si.MinBlockSize, si.MaxBlockSize)
	if si.NumSamples > 0 {
		fmt.Printf("total samples: %d\n", si.NumSamples)
	}

	fmt.Printf("metadata blocks: %d\n", len(s.Blocks))
	for i, block := range s.Blocks {
		fmt.Printf("  [%d] %s\n", i, describeBlock(block))
	}

	numFrames := 0
	for {
		f, err := s.ParseNext()
		if err == io.EOF {
			break
		}
		if err != nil {
			return errors.WithStack(err)
		}
		numFrames++
		if verbose {
			fmt.Printf("frame %d: block_size=%d channels=%d\n",
				numFrames-1, f.Header.BlockSize, len(f.Subframes))
		}
	}
	fmt.Printf("frames decoded: %d\n", numFrames)
	return nil
}

func describeBlock(block *meta.Block) string {
	switch body := block.Body.(type) {
	case *meta.StreamInfo:
		return "STREAMINFO"
	case meta.Padding:
		return fmt.Sprintf("PADDING (%d bytes)", body.Length)
	case meta.Application:
		return fmt.Sprintf("APPLICATION (%d bytes)", len(body.Data))
	case meta.SeekTable:
		return fmt.Sprintf("SEEKTABLE (%d bytes)", len(body.Data))
	case meta.VorbisComment:
		return fmt.Sprintf("VORBIS_COMMENT (%d bytes)", len(body.Data))
	case meta.CueSheet:
		return fmt.Sprintf("CUESHEET (%d bytes)", len(body.Data))
	case meta.Picture:
		return fmt.Sprintf("PICTURE (%d bytes)", len(body.Data))
	case meta.Reserved:
		return fmt.Sprintf("RESERVED type=%d (%d bytes)", body.Type, len(body.Data))
	case meta.Invalid:
		return fmt.Sprintf("INVALID (%d bytes)", len(body.Data))
	default:
		return "UNKNOWN"
	}
}
