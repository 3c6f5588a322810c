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

package kernel

import (
	"math"

	"github.com/aalto-cs/shortcut/workerpool"
)

// v2BlockSize is the number of independent scalar accumulators step_row
// folds the row into, breaking the single min()-chain's serial dependency
// so the compiler/CPU can run 4 comparisons in parallel before a final
// 4-way reduction. Grounded on v2_instr_level_parallelism's BLOCK_SIZE.
const v2BlockSize = 4

// stepV2 packs D and D^T into scalar row buffers padded to a multiple of
// v2BlockSize (plain float32, not simd.Vec8 — v2 predates the SIMD
// variants and gets its speedup purely from instruction-level
// parallelism, not vectorization), then folds 4 independent running
// minimums per row pair before combining them.
func stepV2(r, d []float32, n int, pool *workerpool.Pool) {
	blocksPerRow := (n + v2BlockSize - 1) / v2BlockSize
	nPadded := blocksPerRow * v2BlockSize
	inf := float32(math.Inf(1))

	vd := make([]float32, n*nPadded)
	vt := make([]float32, n*nPadded)
	for i := range vd {
		vd[i] = inf
		vt[i] = inf
	}

	pool.ParallelForZip(n, func(start, end int) {
		for row := start; row < end; row++ {
			vdRow := vd[row*nPadded : row*nPadded+n]
			vtRow := vt[row*nPadded : row*nPadded+n]
			for col := 0; col < n; col++ {
				vdRow[col] = d[n*row+col]
				vtRow[col] = d[n*col+row]
			}
		}
	})

	pool.ParallelForZip(n, func(start, end int) {
		for i := start; i < end; i++ {
			dRow := vd[i*nPadded : i*nPadded+nPadded]
			rRow := r[n*i : n*i+n]
			for j := 0; j < n; j++ {
				tRow := vt[j*nPadded : j*nPadded+nPadded]

				var block [v2BlockSize]float32
				for b := range block {
					block[b] = inf
				}
				for b := 0; b < nPadded; b += v2BlockSize {
					for bi := 0; bi < v2BlockSize; bi++ {
						z := dRow[b+bi] + tRow[b+bi]
						if z < block[bi] {
							block[bi] = z
						}
					}
				}

				v := inf
				for _, x := range block {
					if x < v {
						v = x
					}
				}
				rRow[j] = v
			}
		}
	})
}
