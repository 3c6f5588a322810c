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

// stepV1 fixes v0's strided column read by materializing T = D^T once up
// front, then folding D's row i against T's row j — both now stride-1
// reads. Grounded on v1_linear_reading's _step: transpose_row builds T in
// parallel, step_row then zips D's rows against T's rows.
func stepV1(r, d []float32, n int, pool *workerpool.Pool) {
	t := make([]float32, n*n)
	pool.ParallelForZip(n, func(start, end int) {
		for i := start; i < end; i++ {
			tRow := t[n*i : n*i+n]
			for j := range tRow {
				tRow[j] = d[n*j+i]
			}
		}
	})

	pool.ParallelForZip(n, func(start, end int) {
		for i := start; i < end; i++ {
			dRow := d[n*i : n*i+n]
			rRow := r[n*i : n*i+n]
			for j := 0; j < n; j++ {
				tRow := t[n*j : n*j+n]
				v := float32(math.Inf(1))
				for k, x := range dRow {
					z := x + tRow[k]
					if z < v {
						v = z
					}
				}
				rRow[j] = v
			}
		}
	})
}
