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

// Package extern is the ABI boundary a host process in another language
// links against, the Go equivalent of the reference implementation's
// create_extern_c_wrapper! macro: raw pointers in, a status code out,
// no panics ever escape. Grounded on the teacher's asm wrapper packages
// (e.g. hwy/contrib/matvec/asm), which take unsafe.Pointer arguments at
// the boundary between Go and foreign calling conventions.
package extern

import (
	"fmt"
	"os"
	"runtime"
	"unsafe"

	"github.com/aalto-cs/shortcut/kernel"
	"github.com/aalto-cs/shortcut/workerpool"
)

// Step computes R = shortcut(D) for an N x N matrix, where rPtr and dPtr
// point to n*n contiguous float32 values each. It is safe to call from a
// cgo export shim (//export Step, built with -buildmode=c-archive or
// c-shared) since it never panics across the boundary: any internal
// panic is recovered, reported to stderr, and turned into a -1 return.
//
// Returns 0 on success, -1 on invalid n or internal failure. R is left
// untouched if n <= 0.
func Step(rPtr, dPtr unsafe.Pointer, n int32) (status int32) {
	if n <= 0 {
		return -1
	}

	defer func() {
		if rec := recover(); rec != nil {
			fmt.Fprintf(os.Stderr, "shortcut: extern.Step panicked: %v\n", rec)
			status = -1
		}
	}()

	count := int(n) * int(n)
	r := unsafe.Slice((*float32)(rPtr), count)
	d := unsafe.Slice((*float32)(dPtr), count)

	pool := workerpool.New(runtime.GOMAXPROCS(0))
	defer pool.Close()

	if err := kernel.Step(kernel.Best(int(n)), r, d, int(n), pool); err != nil {
		fmt.Fprintf(os.Stderr, "shortcut: extern.Step: %v\n", err)
		return -1
	}
	return 0
}
