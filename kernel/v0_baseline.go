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

// stepV0 is the unoptimized triple-nested-loop min-plus fold, grounded on
// v0_baseline's _step: row i of R is produced by scanning column j of D
// as D[k*n+j], which strides by n and defeats the cache every time — kept
// as the correctness baseline every other variant is checked against.
func stepV0(r, d []float32, n int, pool *workerpool.Pool) {
	pool.ParallelFor(n, func(start, end int) {
		for i := start; i < end; i++ {
			rRow := r[n*i : n*i+n]
			for j := 0; j < n; j++ {
				v := float32(math.Inf(1))
				for k := 0; k < n; k++ {
					z := d[n*i+k] + d[n*k+j]
					if z < v {
						v = z
					}
				}
				rRow[j] = v
			}
		}
	})
}
