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
	"errors"
	"fmt"

	"github.com/aalto-cs/shortcut/workerpool"
)

// Variant selects one of the seven shortcut step implementations.
type Variant int

const (
	V0 Variant = iota
	V1
	V2
	V3
	V4
	V5
	V6
	V7
)

func (v Variant) String() string {
	if v < V0 || v > V7 {
		return fmt.Sprintf("kernel.Variant(%d)", int(v))
	}
	return [...]string{"v0", "v1", "v2", "v3", "v4", "v5", "v6", "v7"}[v]
}

var (
	// ErrInvalidN is returned when n is not positive.
	ErrInvalidN = errors.New("kernel: n must be positive")
	// ErrBufferTooSmall is returned when d or r is shorter than n*n.
	ErrBufferTooSmall = errors.New("kernel: d or r shorter than n*n")
	// ErrUnknownVariant is returned for a Variant outside V0..V7.
	ErrUnknownVariant = errors.New("kernel: unknown variant")
)

// smallNThreshold is where v7's Z-order bookkeeping (building and sorting
// row_pairs, merging partial results across stripes) stops paying for
// itself against v5's simpler direct traversal; picked as a documented
// Open Question resolution rather than measured, since tuning it is a
// benchmarking exercise outside this repo's scope (see DESIGN.md).
const smallNThreshold = 64

// Best returns the recommended variant for an N x N problem: v7 for
// larger matrices, where cache-aware Z-order traversal has room to pay
// off, v5 below smallNThreshold where its bookkeeping would dominate.
func Best(n int) Variant {
	if n < smallNThreshold {
		return V5
	}
	return V7
}

// Step computes R[i,j] = min_k(D[i,k] + D[k,j]) for the N x N matrix D,
// writing into R, using the algorithm named by v. Both d and r must have
// length at least n*n; r's existing contents are fully overwritten. A nil
// pool runs every variant single-threaded on the calling goroutine.
func Step(v Variant, r, d []float32, n int, pool *workerpool.Pool) error {
	if n <= 0 {
		return ErrInvalidN
	}
	if len(d) < n*n || len(r) < n*n {
		return ErrBufferTooSmall
	}

	switch v {
	case V0:
		stepV0(r, d, n, pool)
		return nil
	case V1:
		stepV1(r, d, n, pool)
		return nil
	case V2:
		stepV2(r, d, n, pool)
		return nil
	case V3:
		return stepV3(r, d, n, pool)
	case V4:
		return stepV4(r, d, n, pool)
	case V5:
		return stepV5(r, d, n, pool)
	case V6:
		return stepV6(r, d, n, pool)
	case V7:
		return stepV7(r, d, n, pool)
	default:
		return ErrUnknownVariant
	}
}
