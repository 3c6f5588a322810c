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

// v4BlockHeight is the number of D/T rows folded together into one 3x3
// register tile per inner-loop iteration, reusing each loaded vector 3x
// instead of once. Grounded on v4_register_reuse's BLOCK_HEIGHT.
const v4BlockHeight = 3

// stepV4 packs D and D^T row-blocked to a multiple of v4BlockHeight
// (pack.PackRowBlocked) and folds 3 D rows against 3 T rows at a time
// into 9 accumulators, reusing each of the 6 loaded vectors across 3
// Min/Add pairs instead of reloading per output pair. Grounded on
// v4_register_reuse's step_row_block.
func stepV4(r, d []float32, n int, pool *workerpool.Pool) error {
	vd, vt, err := pack.PackRowBlocked(d, n, v4BlockHeight)
	if err != nil {
		return err
	}

	blocksPerCol := (n + v4BlockHeight - 1) / v4BlockHeight

	pool.ParallelForZip(blocksPerCol, func(start, end int) {
		for i := start; i < end; i++ {
			vd0 := vd.Row(v4BlockHeight * i)
			vd1 := vd.Row(v4BlockHeight*i + 1)
			vd2 := vd.Row(v4BlockHeight*i + 2)

			for j := 0; j < blocksPerCol; j++ {
				vt0 := vt.Row(v4BlockHeight * j)
				vt1 := vt.Row(v4BlockHeight*j + 1)
				vt2 := vt.Row(v4BlockHeight*j + 2)

				var tmp [9]simd.Vec8
				for t := range tmp {
					tmp[t] = simd.Inf()
				}
				for kv := range vd0 {
					d0, d1, d2 := vd0[kv], vd1[kv], vd2[kv]
					t0, t1, t2 := vt0[kv], vt1[kv], vt2[kv]
					tmp[0] = simd.Min(tmp[0], simd.Add(d0, t0))
					tmp[1] = simd.Min(tmp[1], simd.Add(d0, t1))
					tmp[2] = simd.Min(tmp[2], simd.Add(d0, t2))
					tmp[3] = simd.Min(tmp[3], simd.Add(d1, t0))
					tmp[4] = simd.Min(tmp[4], simd.Add(d1, t1))
					tmp[5] = simd.Min(tmp[5], simd.Add(d1, t2))
					tmp[6] = simd.Min(tmp[6], simd.Add(d2, t0))
					tmp[7] = simd.Min(tmp[7], simd.Add(d2, t1))
					tmp[8] = simd.Min(tmp[8], simd.Add(d2, t2))
				}

				for blockI := 0; blockI < v4BlockHeight; blockI++ {
					resI := i*v4BlockHeight + blockI
					if resI >= n {
						continue
					}
					rRow := r[n*resI : n*resI+n]
					for blockJ := 0; blockJ < v4BlockHeight; blockJ++ {
						resJ := j*v4BlockHeight + blockJ
						if resJ >= n {
							continue
						}
						rRow[resJ] = simd.Extract(simd.HorizontalMin(tmp[blockI*v4BlockHeight+blockJ]), 0)
					}
				}
			}
		}
	})
	return nil
}
