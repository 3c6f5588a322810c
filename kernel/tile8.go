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

// Package kernel implements the seven min-plus ("shortcut") matrix step
// variants: R[i,j] = min_k(D[i,k] + D[k,j]). Each variant trades a
// different packing/register/scheduling strategy for throughput; Step
// dispatches to whichever one the caller names.
package kernel

import "github.com/aalto-cs/shortcut/simd"

// PartialBlock holds the 8 independent min-plus accumulators v5, v6 and v7
// build up per (row-block, column-block) pair before extracting 64 final
// scalar results from it. It plays the role the teacher's Tile[T] plays
// for ordinary matmul (hwy/tile.go: a fixed-size accumulator that many
// inner-loop iterations fold into before a single bulk readout) — narrowed
// here from a generic dim×dim outer-product accumulator to the specific
// 8-entry, XOR-addressed shape the shortcut tile permutation trick needs.
type PartialBlock [simd.Lanes]simd.Vec8

// newPartialBlock returns a block with every accumulator at +Inf, the
// min-plus identity.
func newPartialBlock() PartialBlock {
	var b PartialBlock
	for i := range b {
		b[i] = simd.Inf()
	}
	return b
}

// accumulateBlock8 folds one (d0, t0) pair of vertically-packed vectors
// into tmp, reproducing the reference step_row inner loop shared by v5,
// v6 and v7: d0 is permuted into d2/d4/d6 (lane b reads lane b^2, b^4,
// b^6 of d0) and t0 into t1 (lane b reads lane b^1 of t0), then all
// 8 combinations of {d0,d2,d4,d6} x {t0,t1} are min-accumulated. This
// halves the permutation work of a naive 8x8 tile: only 3 row
// permutations (d2, d4, d6) and 1 column permutation (t1) are
// materialized; the rest come for free from the tmp[block_j^block_i] XOR
// addressing used at extraction time.
func accumulateBlock8(tmp *PartialBlock, d0, t0 simd.Vec8) {
	d2 := simd.Swap(d0, 2)
	d4 := simd.Swap(d0, 4)
	d6 := simd.Swap(d4, 2)
	t1 := simd.Swap(t0, 1)

	tmp[0] = simd.Min(tmp[0], simd.Add(d0, t0))
	tmp[1] = simd.Min(tmp[1], simd.Add(d0, t1))
	tmp[2] = simd.Min(tmp[2], simd.Add(d2, t0))
	tmp[3] = simd.Min(tmp[3], simd.Add(d2, t1))
	tmp[4] = simd.Min(tmp[4], simd.Add(d4, t0))
	tmp[5] = simd.Min(tmp[5], simd.Add(d4, t1))
	tmp[6] = simd.Min(tmp[6], simd.Add(d6, t0))
	tmp[7] = simd.Min(tmp[7], simd.Add(d6, t1))
}

// finalizeBlock8 undoes the t1 permutation on the odd-indexed
// accumulators so that extractBlock8's tmp[blockJ^blockI] addressing lines
// up lane-for-lane with the un-permuted row/column blocks.
func finalizeBlock8(tmp *PartialBlock) {
	tmp[1] = simd.Swap(tmp[1], 1)
	tmp[3] = simd.Swap(tmp[3], 1)
	tmp[5] = simd.Swap(tmp[5], 1)
	tmp[7] = simd.Swap(tmp[7], 1)
}

// extractBlock8 reads the 64 final scalars out of a finalized tmp into
// rRowBlock, a window of Lanes consecutive rows of R starting at row
// i*Lanes, for the column-block starting at column j*Lanes. Entries past
// the real N in either dimension are left untouched.
func extractBlock8(tmp PartialBlock, rRowBlock []float32, n, i, j int) {
	for blockI := 0; blockI < simd.Lanes; blockI++ {
		resJ := blockI + j*simd.Lanes
		if resJ >= n {
			continue
		}
		for blockJ := 0; blockJ < simd.Lanes; blockJ++ {
			resI := blockJ + i*simd.Lanes
			if resI >= n {
				continue
			}
			v := tmp[blockJ^blockI]
			rRowBlock[blockJ*n+resJ] = simd.Extract(v, blockI)
		}
	}
}
