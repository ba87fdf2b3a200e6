// Package flac parses the FLAC (Free Lossless Audio Codec) container and
// frame format: the stream magic, the metadata block chain, and audio
// frames decoded on demand. It decodes structure, not sound — producing PCM
// samples from the decoded subframes is left to a downstream consumer.
package flac

import (
	"io"
	"os"

	"github.com/mewkiz/pkg/errutil"

	"github.com/artemist-go/muflac/frame"
	"github.com/artemist-go/muflac/internal/bits"
	"github.com/artemist-go/muflac/meta"
)

// Stream is a parsed FLAC bitstream positioned at the start of its audio
// frames. Its metadata chain has already been read in full; frames are
// decoded one at a time by ParseNext.
type Stream struct {
	// StreamInfo holds the mandatory STREAMINFO block's fields.
	StreamInfo *meta.StreamInfo
	// Blocks holds every metadata block in chain order, STREAMINFO first.
	Blocks []*meta.Block

	r *bits.Reader
}

// Open opens the named file and parses its FLAC metadata chain. The
// returned io.Closer must be closed by the caller once done with the
// Stream; it is not closed automatically by ParseNext.
func Open(name string) (*Stream, io.Closer, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, nil, bits.NewIOError("open file", err)
	}
	s, err := NewStream(f)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return s, f, nil
}

// NewStream reads r's magic and metadata block chain, then returns a Stream
// ready to decode frames via ParseNext. r is read sequentially and never
// rewound; it must still be positioned at the first frame's sync code when
// NewStream returns.
func NewStream(r io.Reader) (*Stream, error) {
	br := bits.NewReader(r)
	if err := meta.ReadMagic(br); err != nil {
		return nil, err
	}

	s := &Stream{r: br}
	first := true
	for {
		block, err := meta.ReadBlock(br)
		if err != nil {
			return nil, err
		}
		if first {
			si, ok := block.Body.(*meta.StreamInfo)
			if !ok {
				return nil, bits.NewContentError("first metadata block must be STREAMINFO")
			}
			s.StreamInfo = si
			first = false
		}
		s.Blocks = append(s.Blocks, block)
		if block.IsLast {
			break
		}
	}
	return s, nil
}

// ParseNext decodes and returns the next audio frame. It returns io.EOF once
// the underlying source is exhausted.
func (s *Stream) ParseNext() (*frame.Frame, error) {
	f, err := frame.ReadFrame(s.r, s.StreamInfo)
	if err != nil {
		if isEOF(err) {
			return nil, io.EOF
		}
		return nil, err
	}
	return f, nil
}

// isEOF unwraps the module's *Error and errutil's position-annotated
// *ErrInfo by hand, since *ErrInfo does not implement the standard
// errors.Unwrap interface, to check whether an io.EOF ultimately caused a
// failed read.
func isEOF(err error) bool {
	for err != nil {
		if err == io.EOF {
			return true
		}
		switch e := err.(type) {
		case *Error:
			err = e.Err
		case *errutil.ErrInfo:
			err = e.Err
		default:
			return false
		}
	}
	return false
}
