// Package meta parses the FLAC metadata block chain: the stream magic, the
// mandatory STREAMINFO block, and the raw payloads of every other metadata
// block type.
package meta

import (
	"github.com/artemist-go/muflac/internal/bits"
)

// Magic is the four-byte signature present at the start of every FLAC
// stream.
const Magic = "fLaC"

// ReadMagic consumes 4 aligned bytes from r and requires them to equal
// "fLaC".
func ReadMagic(r *bits.Reader) error {
	got, err := r.ReadBytes(4)
	if err != nil {
		return err
	}
	if string(got) != Magic {
		return bits.NewContentError("invalid FLAC signature")
	}
	return nil
}

// BlockType identifies the kind of payload a metadata block carries.
type BlockType uint8

// Metadata block types, per the FLAC format.
const (
	TypeStreamInfo BlockType = iota
	TypePadding
	TypeApplication
	TypeSeekTable
	TypeVorbisComment
	TypeCueSheet
	TypePicture
)

// TypeInvalid is reserved to prevent sync-fooling strings of 1 bits in the
// block-type field.
const TypeInvalid BlockType = 127

// Body is implemented by every metadata block payload type.
type Body interface {
	blockType() BlockType
}

// Block is one link in the metadata chain: a last-block flag and its typed
// payload.
type Block struct {
	IsLast bool
	Body   Body
}

// StreamInfo is the mandatory first metadata block of a FLAC stream,
// describing stream-wide properties.
type StreamInfo struct {
	MinBlockSize  uint16 // samples per channel, 1..=65535
	MaxBlockSize  uint16 // samples per channel, 1..=65535
	MinFrameSize  uint32 // bytes, 0 means unknown (24 bits used)
	MaxFrameSize  uint32 // bytes, 0 means unknown (24 bits used)
	SampleRate    uint32 // Hz, 1..=655350 (20 bits used)
	NumChannels   uint8  // 1..=8
	SampleDepth   uint8  // bits per sample, 4..=32
	NumSamples    uint64 // total samples per channel, 0 means unknown (36 bits used)
	DecodedMD5    [16]byte
}

func (*StreamInfo) blockType() BlockType { return TypeStreamInfo }

// Padding is a block reserved for future use whose payload carries no
// information; its bytes are consumed and discarded.
type Padding struct {
	Length uint32
}

func (Padding) blockType() BlockType { return TypePadding }

// Application holds third-party application specific data, retained
// verbatim.
type Application struct {
	Data []byte
}

func (Application) blockType() BlockType { return TypeApplication }

// SeekTable retains a seek table block's raw payload; structured parsing of
// individual seek points is out of scope.
type SeekTable struct {
	Data []byte
}

func (SeekTable) blockType() BlockType { return TypeSeekTable }

// VorbisComment retains a Vorbis comment block's raw payload; structured
// tag parsing is out of scope.
type VorbisComment struct {
	Data []byte
}

func (VorbisComment) blockType() BlockType { return TypeVorbisComment }

// CueSheet retains a cue sheet block's raw payload; structured track/index
// parsing is out of scope.
type CueSheet struct {
	Data []byte
}

func (CueSheet) blockType() BlockType { return TypeCueSheet }

// Picture retains a picture block's raw payload; structured field parsing is
// out of scope.
type Picture struct {
	Data []byte
}

func (Picture) blockType() BlockType { return TypePicture }

// Reserved retains a metadata block whose type (7..=126) is reserved for
// future use.
type Reserved struct {
	Type BlockType
	Data []byte
}

func (r Reserved) blockType() BlockType { return r.Type }

// Invalid retains the payload of a metadata block with the invalid block
// type 127.
type Invalid struct {
	Data []byte
}

func (Invalid) blockType() BlockType { return TypeInvalid }

// ReadBlock reads one metadata block header and its typed payload. STREAMINFO
// is decoded field-by-field (see readStreamInfo); every other block type's
// payload is retained as raw bytes without further structural parsing.
func ReadBlock(r *bits.Reader) (*Block, error) {
	isLastBit, err := r.ReadBit()
	if err != nil {
		return nil, err
	}
	rawType, err := r.ReadUnsigned(7)
	if err != nil {
		return nil, err
	}
	length, err := r.ReadUnsigned(24)
	if err != nil {
		return nil, err
	}

	blockType := BlockType(rawType)
	block := &Block{IsLast: isLastBit != 0}

	switch blockType {
	case TypeStreamInfo:
		si, err := readStreamInfo(r)
		if err != nil {
			return nil, err
		}
		block.Body = si
	case TypePadding:
		if _, err := r.ReadBytes(int(length)); err != nil {
			return nil, err
		}
		block.Body = Padding{Length: uint32(length)}
	case TypeApplication:
		data, err := r.ReadBytes(int(length))
		if err != nil {
			return nil, err
		}
		block.Body = Application{Data: data}
	case TypeSeekTable:
		data, err := r.ReadBytes(int(length))
		if err != nil {
			return nil, err
		}
		block.Body = SeekTable{Data: data}
	case TypeVorbisComment:
		data, err := r.ReadBytes(int(length))
		if err != nil {
			return nil, err
		}
		block.Body = VorbisComment{Data: data}
	case TypeCueSheet:
		data, err := r.ReadBytes(int(length))
		if err != nil {
			return nil, err
		}
		block.Body = CueSheet{Data: data}
	case TypePicture:
		data, err := r.ReadBytes(int(length))
		if err != nil {
			return nil, err
		}
		block.Body = Picture{Data: data}
	case TypeInvalid:
		data, err := r.ReadBytes(int(length))
		if err != nil {
			return nil, err
		}
		block.Body = Invalid{Data: data}
	default:
		data, err := r.ReadBytes(int(length))
		if err != nil {
			return nil, err
		}
		block.Body = Reserved{Type: blockType, Data: data}
	}

	return block, nil
}

// readStreamInfo decodes the 34-byte STREAMINFO payload bit-by-bit.
func readStreamInfo(r *bits.Reader) (*StreamInfo, error) {
	minBlockSize, err := r.ReadUnsigned(16)
	if err != nil {
		return nil, err
	}
	maxBlockSize, err := r.ReadUnsigned(16)
	if err != nil {
		return nil, err
	}
	minFrameSize, err := r.ReadUnsigned(24)
	if err != nil {
		return nil, err
	}
	maxFrameSize, err := r.ReadUnsigned(24)
	if err != nil {
		return nil, err
	}
	sampleRate, err := r.ReadUnsigned(20)
	if err != nil {
		return nil, err
	}
	numChannels, err := r.ReadUnsigned(3)
	if err != nil {
		return nil, err
	}
	sampleDepth, err := r.ReadUnsigned(5)
	if err != nil {
		return nil, err
	}
	numSamples, err := r.ReadUnsigned(36)
	if err != nil {
		return nil, err
	}
	md5Hi, md5Lo, err := r.ReadUint128(128)
	if err != nil {
		return nil, err
	}

	si := &StreamInfo{
		MinBlockSize: uint16(minBlockSize),
		MaxBlockSize: uint16(maxBlockSize),
		MinFrameSize: uint32(minFrameSize),
		MaxFrameSize: uint32(maxFrameSize),
		SampleRate:   uint32(sampleRate),
		NumChannels:  uint8(numChannels) + 1,
		SampleDepth:  uint8(sampleDepth) + 1,
		NumSamples:   numSamples,
	}
	putUint128(si.DecodedMD5[:], md5Hi, md5Lo)
	return si, nil
}

// putUint128 stores hi:lo big-endian into a 16-byte digest.
func putUint128(dst []byte, hi, lo uint64) {
	for i := 0; i < 8; i++ {
		dst[7-i] = byte(hi >> (8 * i))
		dst[15-i] = byte(lo >> (8 * i))
	}
}
