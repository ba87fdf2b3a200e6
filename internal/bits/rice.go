package bits

// DecodeRice reads a single Rice-coded signed sample with the given encoding
// parameter k: a unary-coded quotient terminated by a 1 bit, followed by a
// k-bit remainder, combined into raw = (quotient << k) | remainder and folded
// to a signed value the same way DecodeZigZag does (even raw -> raw/2, odd
// raw -> -(raw/2)-1). The result fits in a signed 32-bit integer for all
// legal FLAC streams.
func DecodeRice(r *Reader, k uint8) (int32, error) {
	quotient, err := r.ReadUnary(true)
	if err != nil {
		return 0, err
	}
	var remainder uint64
	if k > 0 {
		remainder, err = r.ReadUnsigned(k)
		if err != nil {
			return 0, err
		}
	}
	raw := quotient<<k | remainder
	if raw&1 == 0 {
		return int32(raw >> 1), nil
	}
	return int32(-(int64(raw>>1) + 1)), nil
}
