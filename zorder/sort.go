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

package zorder

import (
	"math/bits"

	"github.com/aalto-cs/shortcut/workerpool"
)

const sortInsertionThreshold = 64

// ParallelSort sorts pairs by Key ascending, matching the reference
// implementation's par_sort_unstable() over row_pairs. The overall shape
// — insertion sort below a threshold, otherwise a pivot partition that
// recurses with a depth budget and falls back to heapsort if the budget
// runs out — follows the teacher's hwy/contrib/sort VQSort skeleton
// (sortImpl/sortInsertion/sortHeap), rewritten against a concrete Triple
// slice rather than the teacher's generic-but-incomplete entry points
// (VQSort there calls SortSmall/CompressPartition3Way/RadixSort helpers
// that don't exist anywhere in the retrieved sort package).
//
// When pool is non-nil, the top two recursion levels sort one partition
// on a new goroutine while the caller sorts the other (the pool's workers
// are not used); a nil pool runs entirely sequentially.
func ParallelSort(pool *workerpool.Pool, pairs []Triple) {
	if len(pairs) < 2 {
		return
	}
	maxDepth := 2 * bits.Len(uint(len(pairs)))
	sortParallel(pool, pairs, maxDepth, 2)
}

func sortParallel(pool *workerpool.Pool, data []Triple, maxDepth, parallelLevels int) {
	if len(data) <= sortInsertionThreshold {
		sortInsertion(data)
		return
	}
	if maxDepth == 0 {
		sortHeap(data)
		return
	}

	mid := partition(data, pivot(data))

	if parallelLevels <= 0 || pool == nil {
		sortParallel(pool, data[:mid], maxDepth-1, parallelLevels-1)
		sortParallel(pool, data[mid:], maxDepth-1, parallelLevels-1)
		return
	}

	done := make(chan struct{})
	go func() {
		sortParallel(pool, data[:mid], maxDepth-1, parallelLevels-1)
		close(done)
	}()
	sortParallel(pool, data[mid:], maxDepth-1, parallelLevels-1)
	<-done
}

// pivot samples the first, middle and last element and returns the
// median, the same "median of three" sampling the teacher's
// PivotSampled uses to avoid worst-case quadratic behavior on sorted or
// reverse-sorted input.
func pivot(data []Triple) uint64 {
	a, b, c := data[0].Key, data[len(data)/2].Key, data[len(data)-1].Key
	if a > b {
		a, b = b, a
	}
	if b > c {
		b = c
	}
	if a > b {
		b = a
	}
	return b
}

// partition performs a 2-way Hoare-style partition around key, returning
// the split point. Equal-to-pivot keys are not pulled into a separate
// band (unlike the teacher's 3-way partition): the keys BuildRowPairs
// produces are all distinct, and a plain 2-way split still terminates
// on duplicate keys.
func partition(data []Triple, key uint64) int {
	i, j := 0, len(data)-1
	for i <= j {
		for i <= j && data[i].Key < key {
			i++
		}
		for i <= j && data[j].Key > key {
			j--
		}
		if i <= j {
			data[i], data[j] = data[j], data[i]
			i++
			j--
		}
	}
	if i == 0 {
		return 1
	}
	if i == len(data) {
		return len(data) - 1
	}
	return i
}

func sortInsertion(data []Triple) {
	for i := 1; i < len(data); i++ {
		v := data[i]
		j := i - 1
		for j >= 0 && data[j].Key > v.Key {
			data[j+1] = data[j]
			j--
		}
		data[j+1] = v
	}
}

// sortHeap is the depth-limit fallback guaranteeing O(n log n) even on
// adversarial input that would otherwise defeat the pivot sampling.
func sortHeap(data []Triple) {
	n := len(data)
	for i := n/2 - 1; i >= 0; i-- {
		siftDown(data, i, n)
	}
	for i := n - 1; i > 0; i-- {
		data[0], data[i] = data[i], data[0]
		siftDown(data, 0, i)
	}
}

func siftDown(data []Triple, root, n int) {
	for {
		largest := root
		l, r := 2*root+1, 2*root+2
		if l < n && data[l].Key > data[largest].Key {
			largest = l
		}
		if r < n && data[r].Key > data[largest].Key {
			largest = r
		}
		if largest == root {
			return
		}
		data[root], data[largest] = data[largest], data[root]
		root = largest
	}
}
