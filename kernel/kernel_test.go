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
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aalto-cs/shortcut/workerpool"
)

var allVariants = []Variant{V0, V1, V2, V3, V4, V5, V6, V7}

func runStep(t *testing.T, v Variant, d []float32, n int, pool *workerpool.Pool) []float32 {
	t.Helper()
	r := make([]float32, n*n)
	require.NoError(t, Step(v, r, d, n, pool))
	return r
}

func TestScenarioN1Zero(t *testing.T) {
	d := []float32{0}
	for _, v := range allVariants {
		r := runStep(t, v, d, 1, nil)
		require.Equal(t, []float32{0}, r, v.String())
	}
}

func TestScenarioN1SelfLoop(t *testing.T) {
	d := []float32{5}
	for _, v := range allVariants {
		r := runStep(t, v, d, 1, nil)
		require.Equal(t, []float32{10}, r, v.String())
	}
}

func TestScenarioN2(t *testing.T) {
	d := []float32{0, 7, 3, 0}
	want := []float32{0, 7, 3, 0}
	for _, v := range allVariants {
		r := runStep(t, v, d, 2, nil)
		require.Equal(t, want, r, v.String())
	}
}

func TestScenarioN3(t *testing.T) {
	d := []float32{0, 8, 2, 1, 0, 9, 4, 5, 0}
	want := []float32{0, 7, 2, 1, 0, 3, 4, 5, 0}
	for _, v := range allVariants {
		r := runStep(t, v, d, 3, nil)
		require.Equal(t, want, r, v.String())
	}
}

func TestScenarioN8IdentityPlusUnit(t *testing.T) {
	const n = 8
	d := make([]float32, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i != j {
				d[n*i+j] = 1
			}
		}
	}
	for _, v := range allVariants {
		r := runStep(t, v, d, n, nil)
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				want := float32(1)
				if i == j {
					want = 0
				}
				require.Equal(t, want, r[n*i+j], "%s: (%d,%d)", v, i, j)
			}
		}
	}
}

func TestScenarioN64RandomAgreement(t *testing.T) {
	const n = 64
	rng := rand.New(rand.NewSource(64))
	d := make([]float32, n*n)
	for i := range d {
		d[i] = rng.Float32()
	}

	ref := runStep(t, V0, d, n, nil)
	for _, v := range allVariants[1:] {
		r := runStep(t, v, d, n, nil)
		for idx := range ref {
			requireWithinULP(t, ref[idx], r[idx], v, idx)
		}
	}
}

func TestReflexiveTightness(t *testing.T) {
	const n = 10
	rng := rand.New(rand.NewSource(10))
	d := make([]float32, n*n)
	for i := range d {
		d[i] = rng.Float32() * 100
	}
	for i := 0; i < n; i++ {
		d[n*i+i] = 0
	}

	r := runStep(t, V7, d, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			require.LessOrEqual(t, r[n*i+j], d[n*i+j], "(%d,%d)", i, j)
		}
	}
}

func TestMonotonicity(t *testing.T) {
	const n = 12
	rng := rand.New(rand.NewSource(12))
	d := make([]float32, n*n)
	dPrime := make([]float32, n*n)
	for i := range d {
		d[i] = rng.Float32() * 10
		dPrime[i] = d[i] + rng.Float32()*5
	}

	r := runStep(t, V5, d, n, nil)
	rPrime := runStep(t, V5, dPrime, n, nil)
	for i := range r {
		require.LessOrEqual(t, r[i], rPrime[i])
	}
}

func TestPaddingInvariance(t *testing.T) {
	const n = 9
	const nPrime = 16
	rng := rand.New(rand.NewSource(9))
	d := make([]float32, n*n)
	for i := range d {
		d[i] = rng.Float32() * 20
	}

	dExt := make([]float32, nPrime*nPrime)
	for i := range dExt {
		dExt[i] = float32(math.Inf(1))
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			dExt[nPrime*i+j] = d[n*i+j]
		}
	}

	r := runStep(t, V7, d, n, nil)
	rExt := runStep(t, V7, dExt, nPrime, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			require.Equal(t, r[n*i+j], rExt[nPrime*i+j], "(%d,%d)", i, j)
		}
	}
}

func TestDeterminismPerVariant(t *testing.T) {
	const n = 20
	rng := rand.New(rand.NewSource(20))
	d := make([]float32, n*n)
	for i := range d {
		d[i] = rng.Float32() * 50
	}

	for _, v := range allVariants {
		first := runStep(t, v, d, n, nil)
		pool := workerpool.New(4)
		second := runStep(t, v, d, n, pool)
		pool.Close()
		require.Equal(t, first, second, v.String())
	}
}

func TestFuzzVariantAgreement(t *testing.T) {
	for _, n := range []int{1, 7, 8, 9, 16, 17, 100} {
		n := n
		t.Run("", func(t *testing.T) {
			rng := rand.New(rand.NewSource(int64(1000 + n)))
			d := make([]float32, n*n)
			for i := range d {
				d[i] = rng.Float32() * 30
			}

			ref := runStep(t, V0, d, n, nil)
			for _, v := range allVariants[1:] {
				r := runStep(t, v, d, n, nil)
				for idx := range ref {
					requireWithinULP(t, ref[idx], r[idx], v, idx)
				}
			}
		})
	}
}

func TestInvalidArguments(t *testing.T) {
	r := make([]float32, 4)
	d := make([]float32, 4)
	require.ErrorIs(t, Step(V0, r, d, 0, nil), ErrInvalidN)
	require.ErrorIs(t, Step(V0, r, d, -1, nil), ErrInvalidN)
	require.ErrorIs(t, Step(V0, make([]float32, 1), d, 2, nil), ErrBufferTooSmall)
	require.ErrorIs(t, Step(Variant(99), r, d, 2, nil), ErrUnknownVariant)
}

func TestBestVariantThreshold(t *testing.T) {
	require.Equal(t, V5, Best(1))
	require.Equal(t, V5, Best(smallNThreshold-1))
	require.Equal(t, V7, Best(smallNThreshold))
	require.Equal(t, V7, Best(10_000))
}

// requireWithinULP allows the documented reduction-order nondeterminism
// between variants (spec invariant: variant agreement to 1 ULP).
func requireWithinULP(t *testing.T, want, got float32, v Variant, idx int) {
	t.Helper()
	if want == got {
		return
	}
	wantBits := math.Float32bits(want)
	gotBits := math.Float32bits(got)
	diff := int64(wantBits) - int64(gotBits)
	if diff < 0 {
		diff = -diff
	}
	require.LessOrEqualf(t, diff, int64(1), "%s: index %d: want %v got %v", v, idx, want, got)
}
