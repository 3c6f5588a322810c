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
	"github.com/aalto-cs/shortcut/zorder"
)

// v7StripeWidth is how many adjacent columns of D/D^T are processed per
// pass before merging into the running partial results. Narrower stripes
// keep more of vd/vt resident in cache across the many (i,j) block pairs
// visited in Z-order, at the cost of one extra accumulate/store per
// stripe boundary. Grounded on v7_cache_reuse's VERTICAL_STRIPE_WIDTH.
const v7StripeWidth = 500

// v7PairBatch is how many consecutive Z-order pairs a worker claims per
// steal in the stripe loop. Since zorder.ParallelSort leaves row_pairs in
// Z-order, neighboring pairs share nearby vd/vt columns; grabbing them in
// a batch rather than one at a time keeps that locality on a single
// worker instead of scattering adjacent pairs across the pool, on top of
// the usual reduced-atomic-traffic benefit of batched stealing.
const v7PairBatch = 4

// stepV7 is v5/v6's 8x8 register tile, but instead of visiting
// (row-block, column-block) pairs in row-major order it visits them in
// Z-order (zorder.BuildRowPairs + zorder.ParallelSort) and processes all
// pairs one narrow vertical stripe of columns at a time, so the working
// set of vd/vt columns touched within a stripe stays cache-resident
// across many block pairs instead of streaming through all of vd/vt once
// per row-block.
//
// Grounded on v7_cache_reuse's _step. That implementation additionally
// buffers results into an "rz" array in Z-order before a final copy into
// r, with a TODO noting the indirection is avoidable by writing directly
// into r once a (z -> i,j) mapping is available; since row_pairs[z]
// already gives that mapping here, this version takes the TODO and
// extracts straight into r, skipping the rz buffer entirely.
func stepV7(r, d []float32, n int, pool *workerpool.Pool) error {
	vd, vt, err := pack.PackVertical(d, n)
	if err != nil {
		return err
	}

	pairs := zorder.BuildRowPairs(vd.VPC)
	zorder.ParallelSort(pool, pairs)

	partials := make([]PartialBlock, len(pairs))
	for idx := range partials {
		partials[idx] = newPartialBlock()
	}

	numStripes := (n + v7StripeWidth - 1) / v7StripeWidth
	for stripe := 0; stripe < numStripes; stripe++ {
		colBegin := stripe * v7StripeWidth
		colEnd := min(n, (stripe+1)*v7StripeWidth)

		pool.ParallelForAtomicBatched(len(pairs), v7PairBatch, func(start, end int) {
			for z := start; z < end; z++ {
				p := pairs[z]
				i, j := int(p.I), int(p.J)
				vdStripe := vd.RowBlock(i)[colBegin:colEnd]
				vtStripe := vt.RowBlock(j)[colBegin:colEnd]

				tmp := &partials[z]
				for col, d0 := range vdStripe {
					accumulateBlock8(tmp, d0, vtStripe[col])
				}
			}
		})
	}

	pool.ParallelForAtomic(len(pairs), func(z int) {
		p := pairs[z]
		i, j := int(p.I), int(p.J)
		tmp := partials[z]
		finalizeBlock8(&tmp)
		rRowBlock := r[i*simd.Lanes*n:]
		extractBlock8(tmp, rRowBlock, n, i, j)
	})
	return nil
}
