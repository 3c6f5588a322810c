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

func TestPackVerticalRoundTrip(t *testing.T) {
	const n = 10
	d := make([]float32, n*n)
	for i := range d {
		d[i] = float32(i)
	}

	vd, vt, err := PackVertical(d, n)
	require.NoError(t, err)
	require.Equal(t, 2, vd.VPC) // ceil(10/8) = 2

	for blockIdx := 0; blockIdx < vd.VPC; blockIdx++ {
		for col := 0; col < n; col++ {
			v := vd.Block(blockIdx, col)
			tv := vt.Block(blockIdx, col)
			for b := 0; b < simd.Lanes; b++ {
				row := blockIdx*simd.Lanes + b
				if row >= n {
					require.True(t, math.IsInf(float64(simd.Extract(v, b)), 1))
					continue
				}
				require.Equal(t, d[n*row+col], simd.Extract(v, b))
				require.Equal(t, d[n*col+row], simd.Extract(tv, b))
			}
		}
	}
}

func TestPackVerticalRowBlock(t *testing.T) {
	const n = 4
	d := make([]float32, n*n)
	for i := range d {
		d[i] = float32(i)
	}
	vd, _, err := PackVertical(d, n)
	require.NoError(t, err)

	require.Equal(t, 1, vd.VPC)
	rowBlock := vd.RowBlock(0)
	require.Equal(t, n, len(rowBlock))
	for col := 0; col < n; col++ {
		require.Equal(t, vd.Block(0, col), rowBlock[col])
	}
}

func TestPackVerticalBuffersAreAligned(t *testing.T) {
	const n = 23
	d := make([]float32, n*n)
	vd, vt, err := PackVertical(d, n)
	require.NoError(t, err)
	require.True(t, simd.VecAligned(vd.Vectors))
	require.True(t, simd.VecAligned(vt.Vectors))
}
