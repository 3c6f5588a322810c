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

// Command shortcutbench runs a shortcut kernel step repeatedly on a
// random N x N matrix and reports per-iteration wall-clock time, the Go
// equivalent of the reference implementation's single-variant benchmark
// driver binary. Since this repo ships all seven variants in one binary
// rather than one driver per variant, --variant selects among them.
package main

import (
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/aalto-cs/shortcut/kernel"
	"github.com/aalto-cs/shortcut/workerpool"
)

var variantNames = map[string]kernel.Variant{
	"v0": kernel.V0, "v1": kernel.V1, "v2": kernel.V2, "v3": kernel.V3,
	"v4": kernel.V4, "v5": kernel.V5, "v6": kernel.V6, "v7": kernel.V7,
}

func main() {
	var variantFlag string
	var noMultiThread bool

	cmd := &cobra.Command{
		Use:   "shortcutbench N [ITERATIONS]",
		Short: "Benchmark a min-plus shortcut matrix step",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil || n <= 0 {
				return fmt.Errorf("N must be a positive integer, got %q", args[0])
			}

			iterations := 1
			if len(args) == 2 {
				iterations, err = strconv.Atoi(args[1])
				if err != nil || iterations <= 0 {
					return fmt.Errorf("ITERATIONS must be a positive integer, got %q", args[1])
				}
			}

			variant := kernel.Best(n)
			if variantFlag != "" {
				v, ok := variantNames[variantFlag]
				if !ok {
					known := lo.Keys(variantNames)
					return fmt.Errorf("unknown variant %q (want one of %v)", variantFlag, known)
				}
				variant = v
			}

			var pool *workerpool.Pool
			if !noMultiThread {
				pool = workerpool.New(runtime.GOMAXPROCS(0))
				defer pool.Close()
			}

			fmt.Printf("benchmarking shortcutbench with input containing %d*%d elements\n", n, n)

			rng := rand.New(rand.NewSource(1))
			d := make([]float32, n*n)
			for i := range d {
				d[i] = rng.Float32()
			}
			r := make([]float32, n*n)

			for iter := 0; iter < iterations; iter++ {
				start := time.Now()
				if err := kernel.Step(variant, r, d, n, pool); err != nil {
					return err
				}
				elapsed := time.Since(start)
				fmt.Printf("%d.%06d\n", elapsed/time.Second, (elapsed%time.Second)/time.Microsecond)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&variantFlag, "variant", "", "kernel variant to run (v0..v7, default: dispatcher's best choice)")
	cmd.Flags().BoolVar(&noMultiThread, "no-multi-thread", false, "run single-threaded (nil worker pool)")
	cmd.SilenceUsage = true

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
