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

//go:build arm64

package simd

import "golang.org/x/sys/cpu"

func init() {
	if NoSimdEnv() {
		currentLevel = DispatchScalar
		currentWidth = 32
		return
	}

	// ARM64 always has NEON (ASIMD); two 128-bit NEON vectors hold a
	// Vec8's 8 float32 lanes, so the dispatched width stays 32 bytes
	// (matching AVX2's Vec8-per-ymm shape) even though the underlying
	// registers are 128-bit.
	if cpu.ARM64.HasASIMD {
		currentLevel = DispatchNEON
		currentWidth = 32
	} else {
		currentLevel = DispatchScalar
		currentWidth = 32
	}
}
