package simd

import "math"

// Inf returns a vector with every lane set to +Inf, the identity element
// for min-plus accumulation and the padding value for out-of-range lanes
// in both the row and vertical packing layouts.
func Inf() Vec8 {
	var v Vec8
	for i := range v {
		v[i] = float32(math.Inf(1))
	}
	return v
}

// Zero returns a vector with every lane set to 0.
func Zero() Vec8 {
	return Vec8{}
}

// FromLanes builds a vector from 8 explicit scalar values, used by the
// packing layer to assemble one vector lane-by-lane from non-contiguous
// source elements (a transposed column, or 8 rows of one column in the
// vertical layout).
func FromLanes(lanes [Lanes]float32) Vec8 {
	return Vec8(lanes)
}

// Load reads 8 consecutive float32 values from src starting at off.
// The caller must ensure src[off:off+Lanes] is in range; packed buffers
// are always sized to a multiple of Lanes so this never runs past the
// allocation, only past the logical N (which is why out-of-range lanes
// must be pre-filled with Inf by the packing layer).
func Load(src []float32, off int) Vec8 {
	var v Vec8
	copy(v[:], src[off:off+Lanes])
	return v
}

// Store writes v's 8 lanes into dst starting at off.
func Store(v Vec8, dst []float32, off int) {
	copy(dst[off:off+Lanes], v[:])
}

// Add performs element-wise addition, the product (⊗) of the min-plus
// semiring.
func Add(a, b Vec8) Vec8 {
	var r Vec8
	for i := range r {
		r[i] = a[i] + b[i]
	}
	return r
}

// Min performs element-wise minimum, the sum (⊕) of the min-plus
// semiring and the fold operator for shortcut accumulation.
func Min(a, b Vec8) Vec8 {
	var r Vec8
	for i := range r {
		r[i] = min(a[i], b[i])
	}
	return r
}

// Extract returns the scalar value of a single lane.
func Extract(v Vec8, lane int) float32 {
	return v[lane]
}

// HorizontalMin folds all 8 lanes of v down to their minimum, replicated
// into every lane of the result. It runs the same three swap-then-min
// rounds as the reference AVX2 horizontal_min: pairs (width 1), quads
// (width 2), then halves (width 4), so after the third round every lane
// holds the minimum of the original 8.
func HorizontalMin(v Vec8) Vec8 {
	v = Min(v, Swap(v, 1))
	v = Min(v, Swap(v, 2))
	v = Min(v, Swap(v, 4))
	return v
}

// PrefetchVec is a non-binding hint that the vector at src[off] will be
// needed soon, used by v6 to hint at upcoming entries of vd/vt a fixed
// distance ahead of the current column. Go gives no portable prefetch
// intrinsic outside asm and this package has no asm, so it is a no-op in
// every build, whatever the dispatch level.
func PrefetchVec(src []Vec8, off int) {
	_ = src
	_ = off
}
