package simd

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInfIsMinIdentity(t *testing.T) {
	inf := Inf()
	v := FromLanes([Lanes]float32{1, 2, 3, 4, 5, 6, 7, 8})
	require.Equal(t, v, Min(v, inf))
}

func TestAddMin(t *testing.T) {
	a := FromLanes([Lanes]float32{1, 2, 3, 4, 5, 6, 7, 8})
	b := FromLanes([Lanes]float32{8, 7, 6, 5, 4, 3, 2, 1})
	sum := Add(a, b)
	for i := 0; i < Lanes; i++ {
		require.Equal(t, float32(9), Extract(sum, i))
	}

	m := Min(a, b)
	require.Equal(t, float32(1), Extract(m, 0))
	require.Equal(t, float32(1), Extract(m, 7))
	require.Equal(t, float32(4), Extract(m, 3))
}

func TestLoadStoreRoundTrip(t *testing.T) {
	src := []float32{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	v := Load(src, 1)
	dst := make([]float32, 10)
	Store(v, dst, 0)
	require.Equal(t, src[1:9], dst[0:8])
}

func TestSwapWidths(t *testing.T) {
	v := FromLanes([Lanes]float32{0, 1, 2, 3, 4, 5, 6, 7})
	require.Equal(t, FromLanes([Lanes]float32{1, 0, 3, 2, 5, 4, 7, 6}), Swap(v, 1))
	require.Equal(t, FromLanes([Lanes]float32{2, 3, 0, 1, 6, 7, 4, 5}), Swap(v, 2))
	require.Equal(t, FromLanes([Lanes]float32{4, 5, 6, 7, 0, 1, 2, 3}), Swap(v, 4))
}

func TestSwapInvalidWidthPanics(t *testing.T) {
	require.Panics(t, func() { Swap(Zero(), 3) })
}

func TestHorizontalMin(t *testing.T) {
	v := FromLanes([Lanes]float32{5, 3, 8, 1, 9, 2, 7, 4})
	h := HorizontalMin(v)
	for i := 0; i < Lanes; i++ {
		require.Equal(t, float32(1), Extract(h, i))
	}
}

func TestAlignedVec8IsAligned(t *testing.T) {
	v := AlignedVec8(37)
	require.Len(t, v, 37)
	require.True(t, VecAligned(v))
}

func TestAlignedVec8Empty(t *testing.T) {
	require.Nil(t, AlignedVec8(0))
	require.True(t, VecAligned(nil))
}

func TestHorizontalMinWithInfPadding(t *testing.T) {
	inf := float32(math.Inf(1))
	v := FromLanes([Lanes]float32{inf, inf, inf, 4, inf, inf, inf, inf})
	h := HorizontalMin(v)
	require.Equal(t, float32(4), Extract(h, 0))
}
