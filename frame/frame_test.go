package frame

import (
	"bytes"
	"testing"

	"github.com/icza/bitio"

	"github.com/artemist-go/muflac/internal/bits"
	"github.com/artemist-go/muflac/meta"
)

// buildMonoConstantFrame encodes a single-channel, 576-sample, 16-bit, 44100Hz
// frame whose one subframe is CONSTANT, matching the S5 scenario.
func buildMonoConstantFrame(t *testing.T) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	bw := bitio.NewWriter(buf)
	write := func(v uint64, n uint8) {
		if err := bw.WriteBits(v, n); err != nil {
			t.Fatal(err)
		}
	}
	write(SyncCode, 14)
	write(0, 1)
	write(0, 1)      // fixed blocking
	write(0b0010, 4) // block size 576<<(2-2) = 576
	write(0b1001, 4) // 44100 Hz
	write(0b0000, 4) // 1 channel
	write(0b100, 3)  // 16-bit depth
	write(0, 1)
	write(0, 8) // frame number 0
	write(0, 8) // crc8

	// subframe: constant
	write(0, 1)
	write(0b000000, 6)
	write(0, 1)
	write(uint64(uint16(int16(42)))&0xFFFF, 16)

	// pad to byte alignment (header+subframe above total bits happen to be byte aligned already)
	bw.Close()
	data := buf.Bytes()

	// append a placeholder CRC-16; ReadFrame captures but does not verify it.
	data = append(data, 0xCA, 0xFE)
	return data
}

func TestReadFrameMonoConstant(t *testing.T) {
	data := buildMonoConstantFrame(t)
	si := &meta.StreamInfo{SampleRate: 44100, SampleDepth: 16}
	r := bits.NewReader(bytes.NewReader(data))

	fr, err := ReadFrame(r, si)
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	if fr.Header.BlockSize != 576 {
		t.Errorf("BlockSize = %d, want 576", fr.Header.BlockSize)
	}
	if len(fr.Subframes) != 1 {
		t.Fatalf("len(Subframes) = %d, want 1", len(fr.Subframes))
	}
	c, ok := fr.Subframes[0].Data.(Constant)
	if !ok {
		t.Fatalf("Data = %T, want Constant", fr.Subframes[0].Data)
	}
	if c.Value != 42 {
		t.Errorf("Value = %d, want 42", c.Value)
	}
	if fr.CRC16 != 0xCAFE {
		t.Errorf("CRC16 = %#x, want 0xCAFE", fr.CRC16)
	}
}

func TestReadFrameSideChannelDepthBump(t *testing.T) {
	buf := new(bytes.Buffer)
	bw := bitio.NewWriter(buf)
	write := func(v uint64, n uint8) { bw.WriteBits(v, n) }
	write(SyncCode, 14)
	write(0, 1)
	write(0, 1)
	write(0b0001, 4) // block size 192
	write(0b1001, 4) // 44100 Hz
	write(0b1000, 4) // LeftSide
	write(0b100, 3)  // 16-bit depth
	write(0, 1)
	write(0, 8) // frame number 0
	write(0, 8) // crc8

	// subframe 0 (left): constant at depth 16
	write(0, 1)
	write(0b000000, 6)
	write(0, 1)
	write(uint64(uint16(int16(1)))&0xFFFF, 16)

	// subframe 1 (side): constant at depth 17 (16+1 bump)
	write(0, 1)
	write(0b000000, 6)
	write(0, 1)
	write(uint64(uint32(int32(-1)))&0x1FFFF, 17)

	bw.Close() // flushes the trailing partial byte with the zero padding ReadFrame expects
	data := append(buf.Bytes(), 0xAB, 0xCD)

	si := &meta.StreamInfo{SampleRate: 44100, SampleDepth: 16}
	r := bits.NewReader(bytes.NewReader(data))
	fr, err := ReadFrame(r, si)
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	side, ok := fr.Subframes[1].Data.(Constant)
	if !ok {
		t.Fatalf("Data = %T, want Constant", fr.Subframes[1].Data)
	}
	if side.Value != -1 {
		t.Errorf("side Value = %d, want -1", side.Value)
	}
}
