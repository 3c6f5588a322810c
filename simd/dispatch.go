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

package simd

import (
	"os"
	"strconv"
)

// DispatchLevel records which SIMD instruction set was detected on the
// running CPU. The package's Vec8 operations do not branch on it: they
// are the same portable Go loops at every level.
type DispatchLevel int

const (
	// DispatchScalar indicates no SIMD, pure Go implementation.
	DispatchScalar DispatchLevel = iota

	// DispatchSSE2 indicates SSE2 instructions (x86-64 baseline, 128-bit).
	DispatchSSE2

	// DispatchAVX2 indicates AVX2 instructions (256-bit), the level the
	// v3-v7 kernels are designed around: one Vec8 fills exactly one
	// 256-bit ymm register.
	DispatchAVX2

	// DispatchAVX512 indicates AVX-512 instructions (512-bit).
	DispatchAVX512

	// DispatchNEON indicates ARM NEON instructions (128-bit SIMD).
	DispatchNEON
)

// String returns a human-readable name for the dispatch level.
func (d DispatchLevel) String() string {
	switch d {
	case DispatchScalar:
		return "scalar"
	case DispatchSSE2:
		return "sse2"
	case DispatchAVX2:
		return "avx2"
	case DispatchAVX512:
		return "avx512"
	case DispatchNEON:
		return "neon"
	default:
		return "unknown"
	}
}

// currentLevel is the detected SIMD level for this runtime, set by
// init() in dispatch_*.go.
var currentLevel DispatchLevel

// currentWidth is the SIMD register width in bytes for currentLevel.
var currentWidth int

// CurrentLevel returns the SIMD instruction set being used.
func CurrentLevel() DispatchLevel {
	return currentLevel
}

// CurrentWidth returns the SIMD register width in bytes.
func CurrentWidth() int {
	return currentWidth
}

// CurrentName returns a human-readable name for the current SIMD target.
func CurrentName() string {
	return currentLevel.String()
}

// HasSIMD returns true if hardware SIMD acceleration is available, i.e.
// the dispatcher did not fall back to the pure-Go scalar path.
func HasSIMD() bool {
	return currentLevel != DispatchScalar
}

// NoSimdEnv reports whether SHORTCUT_NO_SIMD is set, forcing the scalar
// fallback regardless of detected CPU features. Useful for reproducing
// a run, or for comparing the scalar and vectorized variants directly.
func NoSimdEnv() bool {
	val := os.Getenv("SHORTCUT_NO_SIMD")
	if val == "" {
		return false
	}
	if b, err := strconv.ParseBool(val); err == nil {
		return b
	}
	return true
}

// NumLanes returns how many float32 lanes fit in one vector at the
// current dispatch width (32 bytes / 4 bytes per lane = 8 for AVX2).
func NumLanes() int {
	if currentWidth == 0 {
		return Lanes
	}
	return currentWidth / 4
}
