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

// v6PrefetchDistance is how many columns ahead of the current one v6
// hints the prefetcher to start pulling in, matching
// v6_prefetch's hard-coded offset of 20 columns.
const v6PrefetchDistance = 20

// stepV6 is stepV5 with a software prefetch hint issued each inner-loop
// iteration for the vd/vt entries v6PrefetchDistance columns ahead,
// grounded on v6_prefetch's step_row (identical to v5's except for the
// two simd::prefetch calls per iteration).
func stepV6(r, d []float32, n int, pool *workerpool.Pool) error {
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
					simd.PrefetchVec(vdRow, col+v6PrefetchDistance)
					simd.PrefetchVec(vtRow, col+v6PrefetchDistance)
				}
				finalizeBlock8(&tmp)
				extractBlock8(tmp, rRowBlock, n, i, j)
			}
		}
	})
	return nil
}
