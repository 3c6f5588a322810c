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

// stepV3 packs D and D^T into 8-wide row vectors (pack.PackRow), then
// folds each row pair with simd.Add/simd.Min 8 elements at a time and
// reduces with simd.HorizontalMin. Grounded on v3_simd's _step:
// pack_simd_row builds vd/vt, step_row folds vd_row against every vt_row.
func stepV3(r, d []float32, n int, pool *workerpool.Pool) error {
	vd, vt, err := pack.PackRow(d, n)
	if err != nil {
		return err
	}

	pool.ParallelForZip(n, func(start, end int) {
		for i := start; i < end; i++ {
			dRow := vd.Row(i)
			rRow := r[n*i : n*i+n]
			for j := 0; j < n; j++ {
				tRow := vt.Row(j)
				acc := simd.Inf()
				for k, x := range dRow {
					acc = simd.Min(acc, simd.Add(x, tRow[k]))
				}
				rRow[j] = simd.Extract(simd.HorizontalMin(acc), 0)
			}
		}
	})
	return nil
}
