package simd

// This file provides the lane-permutation primitive the v5/v6/v7 kernels
// use to pair up every combination of a "block" of 2 adjacent D-lanes with
// a block of 2 adjacent T-lanes without re-loading from memory: Swap
// reorders the 8 lanes of a vector so that a subsequent Min/Add against
// the un-swapped vector produces a different pairing each time.

// Swap permutes the 8 lanes of v according to width, matching the AVX2
// shuffle patterns used by the reference implementation's simd::swap:
//
//	width 1: [0,1,2,3,4,5,6,7] -> [1,0,3,2,5,4,7,6]  (swap adjacent pairs)
//	width 2: [0,1,2,3,4,5,6,7] -> [2,3,0,1,6,7,4,5]  (swap adjacent quads' halves)
//	width 4: [0,1,2,3,4,5,6,7] -> [4,5,6,7,0,1,2,3]  (swap the two halves)
//
// Any other width is a programmer error and panics.
func Swap(v Vec8, width int) Vec8 {
	switch width {
	case 1:
		return Vec8{v[1], v[0], v[3], v[2], v[5], v[4], v[7], v[6]}
	case 2:
		return Vec8{v[2], v[3], v[0], v[1], v[6], v[7], v[4], v[5]}
	case 4:
		return Vec8{v[4], v[5], v[6], v[7], v[0], v[1], v[2], v[3]}
	default:
		panic("simd: Swap: width must be 1, 2, or 4")
	}
}
