package frame

import (
	"github.com/mewkiz/pkg/hashutil/crc16"

	"github.com/artemist-go/muflac/internal/bits"
	"github.com/artemist-go/muflac/meta"
)

// channelCount returns the number of subframes a frame's channel assignment
// requires, given the header's declared channel count.
func (h *Header) channelCount() int {
	return int(h.NumChannels)
}

// ReadFrame parses one audio frame: its header, one subframe per channel,
// padding to byte alignment, and the trailing CRC-16. The CRC-16 is captured
// but not verified; see the header's CRC8 field for the same convention at
// the header level.
func ReadFrame(r *bits.Reader, streamInfo *meta.StreamInfo) (*Frame, error) {
	crc16Hash := crc16.NewIBM()
	r.SetSink(crc16Hash)
	defer r.SetSink(nil)

	header, err := readHeader(r, streamInfo)
	if err != nil {
		return nil, err
	}

	subframes := make([]*Subframe, header.channelCount())
	for i := range subframes {
		depth := header.SampleDepth
		switch header.ChannelAssignment {
		case LeftSide:
			if i == 1 {
				depth += sideChannelDepthBump
			}
		case RightSide:
			if i == 0 {
				depth += sideChannelDepthBump
			}
		case MidSide:
			if i == 1 {
				depth += sideChannelDepthBump
			}
		}
		subframe, err := readSubframe(r, header.BlockSize, depth)
		if err != nil {
			return nil, err
		}
		subframes[i] = subframe
	}

	padBits := (8 - r.TotalPosition()%8) % 8
	if padBits != 0 {
		pad, err := r.ReadUnsigned(uint8(padBits))
		if err != nil {
			return nil, err
		}
		if pad != 0 {
			return nil, bits.NewContentError("frame: padding before footer must be 0")
		}
	}

	r.SetSink(nil)
	crc16Val, err := r.ReadUnsigned(16)
	if err != nil {
		return nil, err
	}

	return &Frame{
		Header:        header,
		Subframes:     subframes,
		CRC16:         uint16(crc16Val),
		ComputedCRC16: crc16Hash.Sum16(),
	}, nil
}
