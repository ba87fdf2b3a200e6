// Package bits implements the bit-oriented reader shared by the metadata and
// frame parsers: arbitrary-width unsigned and signed reads, unary-coded
// integers, "UTF-8" style variable-length integers, and aligned byte runs
// over an underlying byte source.
package bits

import (
	"io"

	"github.com/icza/bitio"
)

// Reader reads a bit-oriented stream MSB-first over an underlying byte
// source. It holds no lookahead beyond what a single read requires and never
// seeks backwards; total bits consumed is tracked monotonically.
type Reader struct {
	r    *bitio.CountReader
	sink *teeSink
}

// NewReader returns a Reader that consumes bits from r.
func NewReader(r io.Reader) *Reader {
	sink := &teeSink{inner: r}
	return &Reader{r: bitio.NewCountReader(sink), sink: sink}
}

// teeSink forwards every byte actually read from inner to w, when w is set.
// It lets a caller accumulate a running checksum (e.g. CRC-8/CRC-16) over the
// exact raw bytes a Reader consumes, regardless of bit alignment.
//
// teeSink implements io.ByteReader as well as io.Read so that bitio.NewReader
// picks it up directly instead of wrapping it in a buffering bufio.Reader:
// bufio.fill() pulls in up to 4096 bytes from the underlying source on its
// first call and would tee all of it immediately, reading far ahead of what
// the caller has actually consumed.
type teeSink struct {
	inner io.Reader
	w     io.Writer
}

func (t *teeSink) Read(p []byte) (int, error) {
	n, err := t.inner.Read(p)
	if n > 0 && t.w != nil {
		t.w.Write(p[:n])
	}
	return n, err
}

func (t *teeSink) ReadByte() (byte, error) {
	var b [1]byte
	if _, err := io.ReadFull(t.inner, b[:]); err != nil {
		return 0, err
	}
	if t.w != nil {
		t.w.Write(b[:])
	}
	return b[0], nil
}

// SetSink directs subsequent raw byte reads to w in addition to normal
// consumption. Pass nil to stop forwarding.
func (r *Reader) SetSink(w io.Writer) {
	r.sink.w = w
}

// Sink returns the writer currently receiving raw byte reads, or nil.
func (r *Reader) Sink() io.Writer {
	return r.sink.w
}

// TotalPosition returns the number of bits consumed since the reader was
// created.
func (r *Reader) TotalPosition() uint64 {
	return uint64(r.r.BitsCount)
}

// ReadBit reads a single bit, advancing the position by 1.
func (r *Reader) ReadBit() (uint64, error) {
	b, err := r.r.ReadBool()
	if err != nil {
		return 0, NewIOError("read bit", err)
	}
	if b {
		return 1, nil
	}
	return 0, nil
}

// ReadUnsigned reads n (0..=64) bits MSB-first and returns them as an
// unsigned integer. n == 0 returns 0 without consuming bits. Fields wider
// than 64 bits (only STREAMINFO's 128-bit MD5 in this format) are read with
// ReadUint128 instead.
func (r *Reader) ReadUnsigned(n uint8) (uint64, error) {
	if n == 0 {
		return 0, nil
	}
	if n > 64 {
		panic("bits: ReadUnsigned: n must be <= 64; use ReadUint128 for wider fields")
	}
	u, err := r.r.ReadBits(n)
	if err != nil {
		return 0, NewIOError("read unsigned", err)
	}
	return u, nil
}

// ReadUint128 reads n (0..=128) bits MSB-first, returning the high and low
// 64-bit halves of the result (hi holds the leading n-64 bits, or 0 when
// n <= 64). Splitting a wide read into ReadUnsigned(n-64) then
// ReadUnsigned(64) reconstructs the identical bit sequence a single n-bit
// read would have produced.
func (r *Reader) ReadUint128(n uint8) (hi, lo uint64, err error) {
	if n > 128 {
		panic("bits: ReadUint128: n must be <= 128")
	}
	if n <= 64 {
		lo, err = r.ReadUnsigned(n)
		return 0, lo, err
	}
	hi, err = r.ReadUnsigned(n - 64)
	if err != nil {
		return 0, 0, err
	}
	lo, err = r.ReadUnsigned(64)
	if err != nil {
		return 0, 0, err
	}
	return hi, lo, nil
}

// ReadSigned reads n (1..=33) bits MSB-first and interprets them as a
// two's-complement integer, sign-extended to 64 bits. The range extends one
// bit past the format's 32-bit sample depth ceiling to cover the side
// channel of a LeftSide/RightSide/MidSide subframe at full depth.
func (r *Reader) ReadSigned(n uint8) (int64, error) {
	if n == 0 || n > 33 {
		panic("bits: ReadSigned: n must be in 1..=33")
	}
	u, err := r.ReadUnsigned(n)
	if err != nil {
		return 0, err
	}
	return IntN(u, uint(n)), nil
}

// ReadUnary counts the number of consecutive bits equal to !stop before the
// first bit equal to stop. The terminating bit is consumed but not counted.
func (r *Reader) ReadUnary(stop bool) (uint64, error) {
	var stopBit uint64
	if stop {
		stopBit = 1
	}
	var count uint64
	for {
		bit, err := r.ReadBit()
		if err != nil {
			return 0, err
		}
		if bit == stopBit {
			return count, nil
		}
		count++
	}
}

// ReadBytes reads k whole bytes, advancing the position by 8*k bits. When the
// reader is currently byte-aligned this reads directly from the byte source;
// otherwise the bytes are reassembled bit-by-bit, which bitio.Reader (the
// underlying cursor) already does transparently via its io.Reader interface.
func (r *Reader) ReadBytes(k int) ([]byte, error) {
	if k == 0 {
		return nil, nil
	}
	buf := make([]byte, k)
	if _, err := io.ReadFull(r.r, buf); err != nil {
		return nil, NewIOError("read bytes", err)
	}
	return buf, nil
}

// utf8 leading-byte patterns for the FLAC subset of "UTF-8" coded integers:
// up to 7 bytes encoding up to 36 bits.
const (
	utf8Cont1 = 0xC0 // 110xxxxx, 2 bytes total
	utf8Cont2 = 0xE0 // 1110xxxx, 3 bytes total
	utf8Cont3 = 0xF0 // 11110xxx, 4 bytes total
	utf8Cont4 = 0xF8 // 111110xx, 5 bytes total
	utf8Cont5 = 0xFC // 1111110x, 6 bytes total
	utf8Cont6 = 0xFE // 11111110, 7 bytes total
)

// ReadUTF8Uint decodes a single codepoint in the FLAC subset of "UTF-8": 1 to
// 7 bytes encoding up to 36 bits. It fails with a too-long error if decoding
// would consume more than maxBytes, and with a UTF8 error for an ill-formed
// leading or continuation byte.
func (r *Reader) ReadUTF8Uint(maxBytes int) (uint64, error) {
	first, err := r.ReadUnsigned(8)
	if err != nil {
		return 0, err
	}

	var length int
	var value uint64
	switch {
	case first&0x80 == 0:
		// 0xxxxxxx: 1 byte, 7 bits of payload.
		return first, nil
	case first&0xE0 == utf8Cont1:
		length, value = 2, first&0x1F
	case first&0xF0 == utf8Cont2:
		length, value = 3, first&0x0F
	case first&0xF8 == utf8Cont3:
		length, value = 4, first&0x07
	case first&0xFC == utf8Cont4:
		length, value = 5, first&0x03
	case first&0xFE == utf8Cont5:
		length, value = 6, first&0x01
	case first == utf8Cont6:
		length, value = 7, 0
	default:
		return 0, NewUTF8Error("invalid leading byte in UTF-8 coded integer")
	}

	if length > maxBytes {
		return 0, NewTooLongError("UTF-8 coded integer exceeds maximum byte length")
	}

	for i := 1; i < length; i++ {
		cont, err := r.ReadUnsigned(8)
		if err != nil {
			return 0, err
		}
		if cont&0xC0 != 0x80 {
			return 0, NewUTF8Error("invalid continuation byte in UTF-8 coded integer")
		}
		value = value<<6 | (cont & 0x3F)
	}
	return value, nil
}
