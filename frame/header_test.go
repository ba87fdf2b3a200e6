package frame

import (
	"bytes"
	"testing"

	"github.com/icza/bitio"

	"github.com/artemist-go/muflac/internal/bits"
	"github.com/artemist-go/muflac/meta"
)

// writeHeaderBits encodes a fixed-blocksize stereo 16-bit/44100Hz frame
// header with a 4096-sample block and frame number 0, matching the S4
// scenario from the specification.
func writeHeaderBits(t *testing.T, crc8 uint8) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	bw := bitio.NewWriter(buf)
	write := func(v uint64, n uint8) {
		if err := bw.WriteBits(v, n); err != nil {
			t.Fatal(err)
		}
	}
	write(SyncCode, 14)
	write(0, 1)        // reserved
	write(0, 1)        // fixed blocking strategy
	write(0b0111, 4)   // block size code: read 16-bit value next
	write(0b1001, 4)   // sample rate code: 44100 Hz
	write(0b0001, 4)   // channel assignment: 2 channels direct
	write(0b100, 3)    // sample depth code: 16 bits
	write(0, 1)        // reserved
	write(0, 8)        // frame number = 0 (single UTF-8 byte)
	write(4095, 16)    // block size - 1 (deferred 16-bit read)
	write(uint64(crc8), 8)
	if err := bw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestReadHeaderFixedBlockSize(t *testing.T) {
	data := writeHeaderBits(t, 0xAB)
	r := bits.NewReader(bytes.NewReader(data))
	si := &meta.StreamInfo{SampleRate: 44100, SampleDepth: 16}

	hdr, err := readHeader(r, si)
	if err != nil {
		t.Fatalf("readHeader: %v", err)
	}
	if hdr.HasVariableBlockSize {
		t.Error("HasVariableBlockSize = true, want false")
	}
	if hdr.BlockSize != 4096 {
		t.Errorf("BlockSize = %d, want 4096", hdr.BlockSize)
	}
	if hdr.SampleRate != 44100 {
		t.Errorf("SampleRate = %d, want 44100", hdr.SampleRate)
	}
	if hdr.ChannelAssignment != Direct || hdr.NumChannels != 2 {
		t.Errorf("assignment = %v/%d, want Direct/2", hdr.ChannelAssignment, hdr.NumChannels)
	}
	if hdr.SampleDepth != 16 {
		t.Errorf("SampleDepth = %d, want 16", hdr.SampleDepth)
	}
	if hdr.FrameOrSampleNumber != 0 {
		t.Errorf("FrameOrSampleNumber = %d, want 0", hdr.FrameOrSampleNumber)
	}
	if hdr.CRC8 != 0xAB {
		t.Errorf("CRC8 = %#x, want 0xAB", hdr.CRC8)
	}
}

func TestReadHeaderBadSyncCode(t *testing.T) {
	buf := new(bytes.Buffer)
	bw := bitio.NewWriter(buf)
	bw.WriteBits(0, 14)
	bw.Close()
	r := bits.NewReader(bytes.NewReader(buf.Bytes()))
	_, err := readHeader(r, &meta.StreamInfo{})
	if e, ok := err.(*bits.Error); !ok || e.Kind != bits.KindContent {
		t.Errorf("err = %v, want KindContent", err)
	}
}

func TestReadHeaderReservedChannelAssignment(t *testing.T) {
	buf := new(bytes.Buffer)
	bw := bitio.NewWriter(buf)
	write := func(v uint64, n uint8) { bw.WriteBits(v, n) }
	write(SyncCode, 14)
	write(0, 1)
	write(0, 1)
	write(0b0001, 4) // block size 192
	write(0b1001, 4) // 44100 Hz
	write(0b1111, 4) // reserved channel assignment
	write(0b100, 3)
	write(0, 1)
	write(0, 8) // frame number 0
	bw.Close()

	r := bits.NewReader(bytes.NewReader(buf.Bytes()))
	_, err := readHeader(r, &meta.StreamInfo{})
	if e, ok := err.(*bits.Error); !ok || e.Kind != bits.KindReserved {
		t.Errorf("err = %v, want KindReserved", err)
	}
}

func TestReadHeaderDeferredToStreamInfo(t *testing.T) {
	buf := new(bytes.Buffer)
	bw := bitio.NewWriter(buf)
	write := func(v uint64, n uint8) { bw.WriteBits(v, n) }
	write(SyncCode, 14)
	write(0, 1)
	write(0, 1)
	write(0b0001, 4) // block size 192
	write(0b0000, 4) // sample rate deferred to STREAMINFO
	write(0b0000, 4) // 1 channel direct
	write(0b000, 3)  // sample depth deferred to STREAMINFO
	write(0, 1)
	write(0, 8) // frame number 0
	write(0, 8) // crc8
	bw.Close()

	si := &meta.StreamInfo{SampleRate: 48000, SampleDepth: 24}
	r := bits.NewReader(bytes.NewReader(buf.Bytes()))
	hdr, err := readHeader(r, si)
	if err != nil {
		t.Fatalf("readHeader: %v", err)
	}
	if hdr.SampleRate != 48000 {
		t.Errorf("SampleRate = %d, want 48000 (from STREAMINFO)", hdr.SampleRate)
	}
	if hdr.SampleDepth != 24 {
		t.Errorf("SampleDepth = %d, want 24 (from STREAMINFO)", hdr.SampleDepth)
	}
}
