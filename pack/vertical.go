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

	"github.com/aalto-cs/shortcut/simd"
	"golang.org/x/sync/errgroup"
)

// VerticalPacked holds D (or its transpose) packed "sideways": instead of
// 8 consecutive columns of one row sharing a vector (RowPacked), 8
// consecutive ROWS of one column share a vector. v5, v6 and v7 use this
// layout because their register tile pairs up row-blocks against
// column-blocks via lane permutation (simd.Swap) rather than via
// horizontal reduction, and that only works if a vector's 8 lanes are 8
// different rows of the same column.
type VerticalPacked struct {
	Vectors []simd.Vec8
	N       int
	VPC     int // vectors per column (row-blocks) = ceil(N/Lanes)
}

// Block returns the vector for row-block blockIdx (rows
// [blockIdx*Lanes, blockIdx*Lanes+Lanes)) at column col.
func (p VerticalPacked) Block(blockIdx, col int) simd.Vec8 {
	return p.Vectors[blockIdx*p.N+col]
}

// RowBlock returns the N column vectors belonging to row-block blockIdx,
// i.e. one "vd_row"/"vt_row" in the reference kernel's terms: vd.Row(i)
// there is literally vd.chunks_exact(n).nth(i).
func (p VerticalPacked) RowBlock(blockIdx int) []simd.Vec8 {
	return p.Vectors[blockIdx*p.N : (blockIdx+1)*p.N]
}

func vecsPerCol(n int) int {
	return (n + simd.Lanes - 1) / simd.Lanes
}

// PackVertical packs D and D^T into the vertical row-block layout used by
// v5/v6/v7, grounded directly on the reference pack_simd_row closure
// (shared verbatim across v5_more_register_reuse, v6_prefetch and
// v7_cache_reuse): for row-block i and column jv, lane b holds
// D[i*Lanes+b][jv] for vd and D[jv][i*Lanes+b] for vt, with out-of-range
// rows (i*Lanes+b >= N) padded to +Inf.
func PackVertical(d []float32, n int) (vd, vt VerticalPacked, err error) {
	vpc := vecsPerCol(n)
	vd = VerticalPacked{Vectors: simd.AlignedVec8(vpc * n), N: n, VPC: vpc}
	vt = VerticalPacked{Vectors: simd.AlignedVec8(vpc * n), N: n, VPC: vpc}

	var g errgroup.Group
	g.Go(func() error {
		packVerticalD(d, n, vpc, vd.Vectors)
		return nil
	})
	g.Go(func() error {
		packVerticalT(d, n, vpc, vt.Vectors)
		return nil
	})
	if err := g.Wait(); err != nil {
		return vd, vt, err
	}
	if !simd.VecAligned(vd.Vectors) || !simd.VecAligned(vt.Vectors) {
		panic("pack: PackVertical produced a misaligned buffer")
	}
	return vd, vt, nil
}

func packVerticalD(d []float32, n, vpc int, dst []simd.Vec8) {
	inf := float32(math.Inf(1))
	for i := 0; i < vpc; i++ {
		for jv := 0; jv < n; jv++ {
			var lanes [simd.Lanes]float32
			for b := range lanes {
				lanes[b] = inf
				row := i*simd.Lanes + b
				if row < n {
					lanes[b] = d[n*row+jv]
				}
			}
			dst[i*n+jv] = simd.FromLanes(lanes)
		}
	}
}

func packVerticalT(d []float32, n, vpc int, dst []simd.Vec8) {
	inf := float32(math.Inf(1))
	for i := 0; i < vpc; i++ {
		for jv := 0; jv < n; jv++ {
			var lanes [simd.Lanes]float32
			for b := range lanes {
				lanes[b] = inf
				row := i*simd.Lanes + b
				if row < n {
					lanes[b] = d[n*jv+row]
				}
			}
			dst[i*n+jv] = simd.FromLanes(lanes)
		}
	}
}
