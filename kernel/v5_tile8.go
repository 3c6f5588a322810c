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
	"github.com/aalto-cs/shortcut/pack"
	"github.com/aalto-cs/shortcut/simd"
	"github.com/aalto-cs/shortcut/workerpool"
)

// stepV5 packs D and D^T vertically (pack.PackVertical, 8 rows per
// vector) so a single row-block/column-block pair can compute 64 output
// elements from one pass over their n shared column vectors, using
// simd.Swap lane permutations instead of 8x horizontal reduction.
// Grounded on v5_more_register_reuse's step_row: permute d0 into
// d2/d4/d6 and t0 into t1, accumulate all 8 combinations into tmp, then
// extract every lane with the tmp[block_j^block_i] trick.
func stepV5(r, d []float32, n int, pool *workerpool.Pool) error {
	vd, vt, err := pack.PackVertical(d, n)
	if err != nil {
		return err
	}

	pool.ParallelForZip(vd.VPC, func(start, end int) {
		for i := start; i < end; i++ {
			vdRow := vd.RowBlock(i)
			rRowBlock := r[i*simd.Lanes*n:]

			for j := 0; j < vt.VPC; j++ {
				vtRow := vt.RowBlock(j)

				tmp := newPartialBlock()
				for col, d0 := range vdRow {
					accumulateBlock8(&tmp, d0, vtRow[col])
				}
				finalizeBlock8(&tmp)
				extractBlock8(tmp, rRowBlock, n, i, j)
			}
		}
	})
	return nil
}
