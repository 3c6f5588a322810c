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

// Package zorder builds and sorts the Z-order (Morton) traversal schedule
// v7 uses to visit output blocks in an order that keeps a 500-vector
// stripe of D/D^T resident in cache across many adjacent blocks, instead
// of streaming through all of D/D^T once per output row-block.
package zorder

import "github.com/samber/lo"

// Triple is one entry of v7's row_pairs: Key is the Morton-interleaved
// coordinate of (I, J) used only for sorting, I and J are the actual
// row-block / column-block indices to process once sorted.
type Triple struct {
	Key uint64
	I   int32
	J   int32
}

// Interleave computes the 2D Morton key for (i, j): bits of i occupy the
// even positions, bits of j the odd positions, so numerically adjacent
// keys correspond to spatially adjacent (i, j) pairs. This is the Go
// equivalent of the reference implementation's
// _pdep_u32(i, 0x55555555) | _pdep_u32(j, 0xAAAAAAAA); PDEP isn't
// exposed from Go, so the bits are spread with the classic
// mask-and-shift sequence instead.
func Interleave(i, j int32) uint64 {
	return spreadBits(uint32(i)) | (spreadBits(uint32(j)) << 1)
}

// spreadBits inserts a 0 bit between every bit of x (the classic
// "Insert 1 zero bit" bit-twiddling trick), so that OR-ing two spread
// values together interleaves them.
func spreadBits(x uint32) uint64 {
	v := uint64(x) & 0xFFFFFFFF
	v = (v | (v << 16)) & 0x0000FFFF0000FFFF
	v = (v | (v << 8)) & 0x00FF00FF00FF00FF
	v = (v | (v << 4)) & 0x0F0F0F0F0F0F0F0F
	v = (v | (v << 2)) & 0x3333333333333333
	v = (v | (v << 1)) & 0x5555555555555555
	return v
}

// BuildRowPairs constructs the unsorted row_pairs for a blocksPerCol x
// blocksPerCol grid of blocks (blocksPerCol is v7's vecs_per_col, i.e. one
// entry per (row-block, col-block) pair), keyed for a subsequent ParallelSort.
// Built with lo.Range/lo.FlatMap rather than hand-rolled nested loops,
// matching the declarative index-construction style the teacher pack
// favors for index generation.
func BuildRowPairs(blocksPerCol int) []Triple {
	rows := lo.Range(blocksPerCol)
	cols := lo.Range(blocksPerCol)
	return lo.FlatMap(rows, func(i, _ int) []Triple {
		return lo.Map(cols, func(j, _ int) Triple {
			return Triple{
				Key: Interleave(int32(i), int32(j)),
				I:   int32(i),
				J:   int32(j),
			}
		})
	})
}
