package bits

// DecodeZigZag folds an unsigned composite Rice value back to a signed
// residual: even x maps to x/2, odd x maps to -(x/2)-1.
//
// Examples of folded values on the left and decoded values on the right:
//
//	0 =>  0
//	1 => -1
//	2 =>  1
//	3 => -2
//	4 =>  2
//	5 => -3
//	6 =>  3
func DecodeZigZag(x uint32) int32 {
	return int32(x>>1) ^ -int32(x&1)
}
