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

// Package simd provides the 8-lane float32 vector primitives the shortcut
// kernels are built from: min-plus accumulation (Add/Min), the lane
// permutations used to pair up row and column blocks (Swap), and the
// horizontal reduction that turns a lane-wise accumulator into one scalar
// per block (HorizontalMin).
//
// It follows the same write-once-dispatch-at-runtime design as the
// Highway C++ library the go-highway package ported: call sites use Vec8
// and the package vars in dispatch.go record which instruction set the
// running CPU offers (or scalar when the HWY_NO_SIMD-equivalent
// SHORTCUT_NO_SIMD is set). The operations themselves, in vec8.go and
// shuffle.go, are portable Go loops over the 8 lanes and run the same way
// at every dispatch level.
package simd

// Lanes is the number of float32 elements packed into one Vec8.
const Lanes = 8

// Vec8 holds 8 float32 lanes. It is a value type so it can be copied,
// returned, and held in accumulator arrays/slices without aliasing
// concerns, mirroring __m256 in the original AVX2 source.
type Vec8 [Lanes]float32
