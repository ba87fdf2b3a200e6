package frame

import (
	"io"

	"github.com/mewkiz/pkg/hashutil/crc8"

	"github.com/artemist-go/muflac/internal/bits"
	"github.com/artemist-go/muflac/meta"
)

// SyncCode is the 14-bit pattern that begins every frame header.
const SyncCode = 0x3FFE

// readHeader parses a frame header. streamInfo supplies the sample rate and
// sample depth when a frame's header defers to STREAMINFO (the 0b0000 /
// 0b000 codes).
func readHeader(r *bits.Reader, streamInfo *meta.StreamInfo) (*Header, error) {
	outerSink := r.Sink()
	crc8Hash := crc8.NewATM()
	if outerSink != nil {
		r.SetSink(io.MultiWriter(outerSink, crc8Hash))
	} else {
		r.SetSink(crc8Hash)
	}

	syncCode, err := r.ReadUnsigned(14)
	if err != nil {
		return nil, err
	}
	if syncCode != SyncCode {
		return nil, bits.NewContentError("frame header: invalid sync code")
	}

	if reserved, err := r.ReadBit(); err != nil {
		return nil, err
	} else if reserved != 0 {
		return nil, bits.NewReservedError("frame header: first reserved bit must be 0")
	}

	isVariable, err := r.ReadBit()
	if err != nil {
		return nil, err
	}

	blockSizeCode, err := r.ReadUnsigned(4)
	if err != nil {
		return nil, err
	}
	sampleRateCode, err := r.ReadUnsigned(4)
	if err != nil {
		return nil, err
	}
	channelCode, err := r.ReadUnsigned(4)
	if err != nil {
		return nil, err
	}
	sampleDepthCode, err := r.ReadUnsigned(3)
	if err != nil {
		return nil, err
	}

	if reserved, err := r.ReadBit(); err != nil {
		return nil, err
	} else if reserved != 0 {
		return nil, bits.NewReservedError("frame header: second reserved bit must be 0")
	}

	hdr := &Header{HasVariableBlockSize: isVariable != 0}

	maxBytes := 4
	if hdr.HasVariableBlockSize {
		maxBytes = 5
	}
	frameOrSampleNumber, err := r.ReadUTF8Uint(maxBytes)
	if err != nil {
		return nil, err
	}
	hdr.FrameOrSampleNumber = frameOrSampleNumber

	blockSize, err := readBlockSize(r, uint8(blockSizeCode))
	if err != nil {
		return nil, err
	}
	hdr.BlockSize = blockSize

	sampleRate, err := readSampleRate(r, uint8(sampleRateCode), streamInfo)
	if err != nil {
		return nil, err
	}
	hdr.SampleRate = sampleRate

	assignment, numChannels, err := channelAssignment(uint8(channelCode))
	if err != nil {
		return nil, err
	}
	hdr.ChannelAssignment = assignment
	hdr.NumChannels = numChannels

	sampleDepth, err := sampleDepthFromCode(uint8(sampleDepthCode), streamInfo)
	if err != nil {
		return nil, err
	}
	hdr.SampleDepth = sampleDepth

	r.SetSink(outerSink)
	crc8Val, err := r.ReadUnsigned(8)
	if err != nil {
		return nil, err
	}
	hdr.CRC8 = uint8(crc8Val)
	hdr.ComputedCRC8 = crc8Hash.Sum8()

	return hdr, nil
}

// readBlockSize resolves the block_size_code table, including the deferred
// 8-bit/16-bit reads for codes 0b0110/0b0111.
func readBlockSize(r *bits.Reader, code uint8) (uint16, error) {
	switch {
	case code == 0b0000:
		return 0, bits.NewReservedError("frame header: block size code 0b0000 is reserved")
	case code == 0b0001:
		return 192, nil
	case code >= 0b0010 && code <= 0b0101:
		return 576 << (code - 2), nil
	case code == 0b0110:
		v, err := r.ReadUnsigned(8)
		if err != nil {
			return 0, err
		}
		return uint16(v) + 1, nil
	case code == 0b0111:
		v, err := r.ReadUnsigned(16)
		if err != nil {
			return 0, err
		}
		return uint16(v) + 1, nil
	default: // 0b1000..=0b1111
		return 256 << (code - 8), nil
	}
}

// readSampleRate resolves the sample_rate_code table, including the
// deferred 8-bit/16-bit/16-bit reads for codes 0b1100/0b1101/0b1110.
func readSampleRate(r *bits.Reader, code uint8, streamInfo *meta.StreamInfo) (uint32, error) {
	switch code {
	case 0b0000:
		return streamInfo.SampleRate, nil
	case 0b0001:
		return 88200, nil
	case 0b0010:
		return 176400, nil
	case 0b0011:
		return 192000, nil
	case 0b0100:
		return 8000, nil
	case 0b0101:
		return 16000, nil
	case 0b0110:
		return 22050, nil
	case 0b0111:
		return 24000, nil
	case 0b1000:
		return 32000, nil
	case 0b1001:
		return 44100, nil
	case 0b1010:
		return 48000, nil
	case 0b1011:
		return 96000, nil
	case 0b1100:
		v, err := r.ReadUnsigned(8)
		if err != nil {
			return 0, err
		}
		return uint32(v) * 1000, nil
	case 0b1101:
		v, err := r.ReadUnsigned(16)
		if err != nil {
			return 0, err
		}
		return uint32(v), nil
	case 0b1110:
		v, err := r.ReadUnsigned(16)
		if err != nil {
			return 0, err
		}
		return uint32(v) * 10, nil
	default: // 0b1111
		return 0, bits.NewReservedError("frame header: sample rate code 0b1111 is reserved")
	}
}

// channelAssignment resolves the channel_assignment_code table to an
// assignment and its channel count.
func channelAssignment(code uint8) (ChannelAssignment, uint8, error) {
	switch {
	case code <= 0b0111:
		return Direct, code + 1, nil
	case code == 0b1000:
		return LeftSide, 2, nil
	case code == 0b1001:
		return RightSide, 2, nil
	case code == 0b1010:
		return MidSide, 2, nil
	default: // 0b1011..=0b1111
		return 0, 0, bits.NewReservedError("frame header: channel assignment code is reserved")
	}
}

// sampleDepthFromCode resolves the sample_depth_code table.
func sampleDepthFromCode(code uint8, streamInfo *meta.StreamInfo) (uint8, error) {
	switch code {
	case 0b000:
		return streamInfo.SampleDepth, nil
	case 0b001:
		return 8, nil
	case 0b010:
		return 12, nil
	case 0b100:
		return 16, nil
	case 0b101:
		return 24, nil
	case 0b110:
		return 32, nil
	default: // 0b011, 0b111
		return 0, bits.NewReservedError("frame header: sample depth code is reserved")
	}
}
