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

//go:build amd64 && !goexperiment.simd

package simd

// Fallback for when GOEXPERIMENT=simd is not enabled: without
// simd/archsimd there is no portable way to query AVX2/AVX512 support
// from Go, so this build stays in scalar mode. Build with
// GOEXPERIMENT=simd (see dispatch_amd64_simd.go) for real detection.

func init() {
	if NoSimdEnv() {
		setScalarMode()
		return
	}
	setScalarMode()
}

func setScalarMode() {
	currentLevel = DispatchScalar
	currentWidth = 32 // AVX2 vector width; scalar ops still process 8 lanes at a time
}
