// Package frame decodes FLAC frame headers and their subframes: CONSTANT,
// VERBATIM, FIXED and LPC prediction methods, with Rice-coded residual
// partitions.
package frame

// ChannelAssignment specifies how the channels of a frame relate to each
// other.
type ChannelAssignment uint8

// The four channel assignments a frame header can declare.
const (
	Direct ChannelAssignment = iota
	LeftSide
	RightSide
	MidSide
)

// Header holds the decoded fields of a frame header plus the cross-field
// values resolved from them.
type Header struct {
	HasVariableBlockSize bool
	BlockSize            uint16 // samples per channel in this frame, 1..=65535
	SampleRate           uint32 // Hz
	ChannelAssignment    ChannelAssignment
	NumChannels          uint8 // 1..=8
	SampleDepth          uint8 // bits per sample
	FrameOrSampleNumber  uint64
	CRC8                 uint8 // as captured from the bitstream
	ComputedCRC8         uint8 // as computed over the header bytes; not compared against CRC8
}

// SubframeKind identifies which of the four prediction methods a subframe
// uses.
type SubframeKind uint8

// The four subframe prediction methods.
const (
	SubframeConstant SubframeKind = iota
	SubframeVerbatim
	SubframeFixed
	SubframeLPC
)

// SubframeData is implemented by the four kinds of subframe payload.
type SubframeData interface {
	Kind() SubframeKind
}

// Constant is a subframe whose single sample is replicated for the whole
// block.
type Constant struct {
	Value int64
}

// Kind implements SubframeData.
func (Constant) Kind() SubframeKind { return SubframeConstant }

// Verbatim is a subframe storing one signed sample per position in the
// block, unencoded.
type Verbatim struct {
	Samples []int64
}

// Kind implements SubframeData.
func (Verbatim) Kind() SubframeKind { return SubframeVerbatim }

// Fixed is a subframe predicted with one of the five built-in fixed
// predictors (order 0..=4).
type Fixed struct {
	Order    uint8
	Warmup   []int64
	Residual *Residual
}

// Kind implements SubframeData.
func (Fixed) Kind() SubframeKind { return SubframeFixed }

// LPC is a subframe predicted with explicit quantized linear-prediction
// coefficients (order 1..=32).
type LPC struct {
	Order                uint8
	Warmup               []int64
	CoefficientPrecision uint8
	Shift                int8
	Coefficients         []int64
	Residual             *Residual
}

// Kind implements SubframeData.
func (LPC) Kind() SubframeKind { return SubframeLPC }

// Subframe is one channel's encoded audio data within a frame.
type Subframe struct {
	WastedBits uint8
	Data       SubframeData
}

// RicePartition is one contiguous run of residual samples sharing a single
// Rice parameter, or raw fixed-width samples if the parameter holds the
// escape value.
type RicePartition struct {
	EncodingParameter uint8
	Residual          []int64
}

// Residual is the Rice-coded prediction error sequence following a Fixed or
// LPC subframe's warmup samples.
type Residual struct {
	ParameterSize  uint8 // 4 or 5
	PartitionOrder uint8 // 0..=15
	Partitions     []RicePartition
}

// Frame aggregates a decoded frame header, one subframe per channel (in
// order), and the frame's trailing CRC-16.
type Frame struct {
	Header        *Header
	Subframes     []*Subframe
	CRC16         uint16 // as captured from the bitstream
	ComputedCRC16 uint16 // as computed over the frame bytes; not compared against CRC16
}
