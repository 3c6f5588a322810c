// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package pack

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aalto-cs/shortcut/simd"
)

func TestPackRowRoundTrip(t *testing.T) {
	const n = 9
	d := make([]float32, n*n)
	for i := range d {
		d[i] = float32(i)
	}

	vd, vt, err := PackRow(d, n)
	require.NoError(t, err)
	require.Equal(t, n, vd.N)
	require.Equal(t, 2, vd.VPR) // ceil(9/8) = 2

	for i := 0; i < n; i++ {
		row := vd.Row(i)
		for j := 0; j < n; j++ {
			got := simd.Extract(row[j/simd.Lanes], j%simd.Lanes)
			require.Equal(t, d[n*i+j], got, "vd(%d,%d)", i, j)
		}
		trow := vt.Row(i)
		for j := 0; j < n; j++ {
			got := simd.Extract(trow[j/simd.Lanes], j%simd.Lanes)
			require.Equal(t, d[n*j+i], got, "vt(%d,%d)", i, j)
		}
	}
}

func TestPackRowPadsWithInf(t *testing.T) {
	const n = 3
	d := make([]float32, n*n)
	vd, _, err := PackRow(d, n)
	require.NoError(t, err)

	row := vd.Row(0)
	last := row[vd.VPR-1]
	for lane := n % simd.Lanes; lane < simd.Lanes; lane++ {
		require.True(t, math.IsInf(float64(simd.Extract(last, lane)), 1))
	}
}

func TestPackRowBlockedPadsRows(t *testing.T) {
	const n = 5
	const blockHeight = 3
	d := make([]float32, n*n)
	for i := range d {
		d[i] = float32(i + 1)
	}

	vd, vt, err := PackRowBlocked(d, n, blockHeight)
	require.NoError(t, err)
	require.True(t, simd.VecAligned(vd.Vectors))
	require.True(t, simd.VecAligned(vt.Vectors))

	blocks := (n + blockHeight - 1) / blockHeight
	paddedN := blocks * blockHeight
	require.Equal(t, paddedN*vd.VPR, len(vd.Vectors))

	// Row n (first padding row) must be all +Inf in both vd and vt.
	padRow := vd.Row(n)
	for _, v := range padRow {
		for lane := 0; lane < simd.Lanes; lane++ {
			require.True(t, math.IsInf(float64(simd.Extract(v, lane)), 1))
		}
	}
	padTRow := vt.Row(n)
	for _, v := range padTRow {
		for lane := 0; lane < simd.Lanes; lane++ {
			require.True(t, math.IsInf(float64(simd.Extract(v, lane)), 1))
		}
	}

	// In-range rows must still match the source matrix.
	row0 := vd.Row(0)
	require.Equal(t, d[0], simd.Extract(row0[0], 0))
}

func TestPackRowSingleElement(t *testing.T) {
	d := []float32{42}
	vd, vt, err := PackRow(d, 1)
	require.NoError(t, err)
	require.Equal(t, float32(42), simd.Extract(vd.Row(0)[0], 0))
	require.Equal(t, float32(42), simd.Extract(vt.Row(0)[0], 0))
}

func TestPackRowBuffersAreAligned(t *testing.T) {
	const n = 17
	d := make([]float32, n*n)
	vd, vt, err := PackRow(d, n)
	require.NoError(t, err)
	require.True(t, simd.VecAligned(vd.Vectors))
	require.True(t, simd.VecAligned(vt.Vectors))
}
