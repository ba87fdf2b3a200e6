package frame

import (
	"github.com/artemist-go/muflac/internal/bits"
)

// maxFixedOrder is the highest valid FIXED subframe predictor order.
const maxFixedOrder = 4

// maxLPCOrder is the largest LPC prediction order the format allows.
const maxLPCOrder = 32

// sideChannelDepthBump is the extra bit of precision a side channel carries
// in LeftSide/RightSide/MidSide assignments.
const sideChannelDepthBump = 1

// readSubframe reads one subframe. sampleDepth is the depth for this
// specific channel, already bumped by sideChannelDepthBump by the caller
// when this channel is the side channel of a stereo decorrelation.
func readSubframe(r *bits.Reader, blockSize uint16, sampleDepth uint8) (*Subframe, error) {
	if padBit, err := r.ReadBit(); err != nil {
		return nil, err
	} else if padBit != 0 {
		return nil, bits.NewReservedError("subframe header: pad bit must be 0")
	}

	typeCode, err := r.ReadUnsigned(6)
	if err != nil {
		return nil, err
	}

	hasWastedBits, err := r.ReadBit()
	if err != nil {
		return nil, err
	}
	var wastedBits uint8
	if hasWastedBits != 0 {
		n, err := r.ReadUnary(true)
		if err != nil {
			return nil, err
		}
		wastedBits = uint8(n) + 1
	}

	if wastedBits >= sampleDepth {
		return nil, bits.NewContentError("subframe header: wasted bits count exceeds sample depth")
	}
	effectiveDepth := sampleDepth - wastedBits

	data, err := readSubframeData(r, uint8(typeCode), blockSize, effectiveDepth)
	if err != nil {
		return nil, err
	}

	return &Subframe{WastedBits: wastedBits, Data: data}, nil
}

func readSubframeData(r *bits.Reader, typeCode uint8, blockSize uint16, depth uint8) (SubframeData, error) {
	switch {
	case typeCode == 0b000000:
		return readConstant(r, depth)
	case typeCode == 0b000001:
		return readVerbatim(r, blockSize, depth)
	case typeCode >= 0b001000 && typeCode <= 0b001100:
		order := typeCode - 0b001000
		return readFixed(r, order, blockSize, depth)
	case typeCode >= 0b100000 && typeCode <= 0b111111:
		order := (typeCode & 0b011111) + 1
		return readLPC(r, order, blockSize, depth)
	default:
		return nil, bits.NewReservedError("subframe header: subframe type code is reserved")
	}
}

func readConstant(r *bits.Reader, depth uint8) (SubframeData, error) {
	v, err := r.ReadSigned(depth)
	if err != nil {
		return nil, err
	}
	return Constant{Value: v}, nil
}

func readVerbatim(r *bits.Reader, blockSize uint16, depth uint8) (SubframeData, error) {
	samples := make([]int64, blockSize)
	for i := range samples {
		v, err := r.ReadSigned(depth)
		if err != nil {
			return nil, err
		}
		samples[i] = v
	}
	return Verbatim{Samples: samples}, nil
}

func readFixed(r *bits.Reader, order uint8, blockSize uint16, depth uint8) (SubframeData, error) {
	if order > maxFixedOrder {
		return nil, bits.NewReservedError("fixed subframe: order exceeds 4")
	}
	warmup, err := readWarmup(r, order, depth)
	if err != nil {
		return nil, err
	}
	residual, err := readResidual(r, blockSize, order)
	if err != nil {
		return nil, err
	}
	return &Fixed{Order: order, Warmup: warmup, Residual: residual}, nil
}

func readLPC(r *bits.Reader, order uint8, blockSize uint16, depth uint8) (SubframeData, error) {
	if order < 1 || order > maxLPCOrder {
		return nil, bits.NewReservedError("LPC subframe: order out of range")
	}
	warmup, err := readWarmup(r, order, depth)
	if err != nil {
		return nil, err
	}

	precisionCode, err := r.ReadUnsigned(4)
	if err != nil {
		return nil, err
	}
	if precisionCode == 0b1111 {
		return nil, bits.NewReservedError("LPC subframe: coefficient precision code 0b1111 is reserved")
	}
	precision := uint8(precisionCode) + 1

	shiftRaw, err := r.ReadUnsigned(5)
	if err != nil {
		return nil, err
	}
	shift := int8(shiftRaw)

	coefficients := make([]int64, order)
	for i := range coefficients {
		v, err := r.ReadSigned(precision)
		if err != nil {
			return nil, err
		}
		coefficients[i] = v
	}

	residual, err := readResidual(r, blockSize, order)
	if err != nil {
		return nil, err
	}

	return &LPC{
		Order:                order,
		Warmup:               warmup,
		CoefficientPrecision: precision,
		Shift:                shift,
		Coefficients:         coefficients,
		Residual:             residual,
	}, nil
}

func readWarmup(r *bits.Reader, order uint8, depth uint8) ([]int64, error) {
	warmup := make([]int64, order)
	for i := range warmup {
		v, err := r.ReadSigned(depth)
		if err != nil {
			return nil, err
		}
		warmup[i] = v
	}
	return warmup, nil
}

// riceEscapeParameter returns the all-ones value of the given parameter
// width (4 or 5 bits) that marks a partition whose samples are stored raw
// rather than Rice-coded.
func riceEscapeParameter(parameterSize uint8) uint8 {
	return 1<<parameterSize - 1
}

// readResidual reads a Rice-coded residual for predictorOrder warmup samples
// already consumed out of blockSize total samples.
func readResidual(r *bits.Reader, blockSize uint16, predictorOrder uint8) (*Residual, error) {
	methodCode, err := r.ReadUnsigned(2)
	if err != nil {
		return nil, err
	}
	var parameterSize uint8
	switch methodCode {
	case 0b00:
		parameterSize = 4
	case 0b01:
		parameterSize = 5
	default:
		return nil, bits.NewReservedError("residual: coding method code is reserved")
	}

	partitionOrderRaw, err := r.ReadUnsigned(4)
	if err != nil {
		return nil, err
	}
	partitionOrder := uint8(partitionOrderRaw)

	numPartitions := uint32(1) << partitionOrder
	if uint32(blockSize)%numPartitions != 0 {
		return nil, bits.NewContentError("residual: block size is not divisible by partition count")
	}
	samplesPerPartition := uint32(blockSize) / numPartitions

	partitions := make([]RicePartition, numPartitions)
	for i := uint32(0); i < numPartitions; i++ {
		n := samplesPerPartition
		if i == 0 {
			if samplesPerPartition < uint32(predictorOrder) {
				return nil, bits.NewContentError("residual: first partition smaller than predictor order")
			}
			n -= uint32(predictorOrder)
		}

		parameter, err := r.ReadUnsigned(parameterSize)
		if err != nil {
			return nil, err
		}

		part := RicePartition{EncodingParameter: uint8(parameter)}
		if part.EncodingParameter == riceEscapeParameter(parameterSize) {
			rawBits, err := r.ReadUnsigned(5)
			if err != nil {
				return nil, err
			}
			samples := make([]int64, n)
			if rawBits > 0 {
				for j := range samples {
					v, err := r.ReadSigned(uint8(rawBits))
					if err != nil {
						return nil, err
					}
					samples[j] = v
				}
			}
			part.Residual = samples
		} else {
			samples := make([]int64, n)
			for j := range samples {
				v, err := bits.DecodeRice(r, part.EncodingParameter)
				if err != nil {
					return nil, err
				}
				samples[j] = int64(v)
			}
			part.Residual = samples
		}
		partitions[i] = part
	}

	return &Residual{ParameterSize: parameterSize, PartitionOrder: partitionOrder, Partitions: partitions}, nil
}
