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

// PackRowBlocked packs D and D^T the way PackRow does, but additionally
// pads the ROW count up to a multiple of blockHeight (v4's BLOCK_HEIGHT,
// 3), filling the padding rows with +Inf. v4's 3x3 register tile reads
// three D rows and three T rows together; a ragged final block would
// force a scalar-tail special case, so v4 instead over-allocates full
// blockHeight-row micro-panels the same way the teacher's BasePackLHS
// zero-pads the final micro-panel of a partial M-dimension panel.
func PackRowBlocked(d []float32, n, blockHeight int) (vd, vt RowPacked, err error) {
	blocks := (n + blockHeight - 1) / blockHeight
	paddedN := blocks * blockHeight
	vpr := vecsPerRow(n)

	vd = RowPacked{Vectors: simd.AlignedVec8(paddedN * vpr), N: n, VPR: vpr}
	vt = RowPacked{Vectors: simd.AlignedVec8(paddedN * vpr), N: n, VPR: vpr}

	var g errgroup.Group
	g.Go(func() error {
		packRowMajorPadded(d, n, paddedN, vpr, vd.Vectors)
		return nil
	})
	g.Go(func() error {
		packColumnMajorPadded(d, n, paddedN, vpr, vt.Vectors)
		return nil
	})
	if err := g.Wait(); err != nil {
		return vd, vt, err
	}
	if !simd.VecAligned(vd.Vectors) || !simd.VecAligned(vt.Vectors) {
		panic("pack: PackRowBlocked produced a misaligned buffer")
	}
	return vd, vt, nil
}

func packRowMajorPadded(d []float32, n, paddedN, vpr int, dst []simd.Vec8) {
	inf := float32(math.Inf(1))
	for i := 0; i < paddedN; i++ {
		row := dst[i*vpr : (i+1)*vpr]
		for jv := 0; jv < vpr; jv++ {
			var lanes [simd.Lanes]float32
			for b := range lanes {
				lanes[b] = inf
				j := jv*simd.Lanes + b
				if i < n && j < n {
					lanes[b] = d[n*i+j]
				}
			}
			row[jv] = simd.FromLanes(lanes)
		}
	}
}

func packColumnMajorPadded(d []float32, n, paddedN, vpr int, dst []simd.Vec8) {
	inf := float32(math.Inf(1))
	for i := 0; i < paddedN; i++ {
		row := dst[i*vpr : (i+1)*vpr]
		for jv := 0; jv < vpr; jv++ {
			var lanes [simd.Lanes]float32
			for b := range lanes {
				lanes[b] = inf
				j := jv*simd.Lanes + b
				if i < n && j < n {
					lanes[b] = d[n*j+i]
				}
			}
			row[jv] = simd.FromLanes(lanes)
		}
	}
}
