/*
 * Licensed to the Apache Software Foundation (ASF) under one or more
 * contributor license agreements.  See the NOTICE file distributed with
 * this work for additional information regarding copyright ownership.
 * The ASF licenses this file to You under the Apache License, Version 2.0
 * (the "License"); you may not use this file except in compliance with
 * the License.  You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package parallel runs indexed loop bodies whose random streams do not
// depend on scheduling. Each iteration receives a generator seeded from
// (base seed, index) only, so the same seed produces bit-identical
// results whether the loop runs sequentially, in fixed chunks, or on a
// dynamic work queue.
package parallel

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/countstats/downsample-go/internal"
)

// Policy selects the scheduling of RunIndexed. All policies produce the
// same results for the same base seed; they differ only in how
// iterations are assigned to goroutines.
type Policy int

const (
	// Greedy runs every iteration sequentially on the calling goroutine.
	Greedy Policy = iota
	// Static splits the index range into one contiguous chunk per worker.
	Static
	// Dynamic hands out indexes one at a time from a shared counter.
	Dynamic
)

func (p Policy) String() string {
	switch p {
	case Greedy:
		return "greedy"
	case Static:
		return "static"
	case Dynamic:
		return "dynamic"
	}
	return fmt.Sprintf("policy(%d)", int(p))
}

type config struct {
	policy  Policy
	seed    int64
	seedSet bool
	rng     *rand.Rand
	workers int
}

type Option func(*config)

// WithPolicy selects the scheduling policy. The default is Greedy.
func WithPolicy(p Policy) Option {
	return func(c *config) { c.policy = p }
}

// WithSeed fixes the base seed, overriding WithRNG.
func WithSeed(seed int64) Option {
	return func(c *config) {
		c.seed = seed
		c.seedSet = true
	}
}

// WithRNG supplies the generator from which the base seed is drawn when
// no explicit seed is given. Exactly one value is consumed from it,
// before any iteration starts.
func WithRNG(rng *rand.Rand) Option {
	return func(c *config) { c.rng = rng }
}

// WithWorkers bounds the number of goroutines used by the Static and
// Dynamic policies. Defaults to runtime.GOMAXPROCS(0).
func WithWorkers(n int) Option {
	return func(c *config) { c.workers = n }
}

// RunIndexed executes body(i, rng) for every i in [0, count). Each
// iteration's rng is an independent stream derived from the base seed
// and i alone; no generator instance is shared between iterations. The
// first error returned by any body is propagated; under the parallel
// policies, iterations already in flight may still complete, but no
// further indexes are handed out.
func RunIndexed(count int, body func(index int, rng *rand.Rand) error, opts ...Option) error {
	if count < 0 {
		return fmt.Errorf("iteration count must be non-negative, got %d", count)
	}
	if count == 0 {
		return nil
	}

	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	base := cfg.seed
	if !cfg.seedSet {
		if cfg.rng != nil {
			base = cfg.rng.Int63()
		} else {
			base = internal.FallbackInt63()
		}
	}

	workers := cfg.workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > count {
		workers = count
	}

	switch cfg.policy {
	case Static:
		return runStatic(count, workers, base, body)
	case Dynamic:
		return runDynamic(count, workers, base, body)
	default:
		return runGreedy(count, base, body)
	}
}

func iterationRNG(base int64, index int) *rand.Rand {
	return rand.New(rand.NewSource(internal.MixSeed(base, index)))
}

func runGreedy(count int, base int64, body func(int, *rand.Rand) error) error {
	for i := 0; i < count; i++ {
		if err := body(i, iterationRNG(base, i)); err != nil {
			return err
		}
	}
	return nil
}

func runStatic(count, workers int, base int64, body func(int, *rand.Rand) error) error {
	g, ctx := errgroup.WithContext(context.Background())
	for w := 0; w < workers; w++ {
		lo := w * count / workers
		hi := (w + 1) * count / workers
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				if ctx.Err() != nil {
					return nil
				}
				if err := body(i, iterationRNG(base, i)); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return g.Wait()
}

func runDynamic(count, workers int, base int64, body func(int, *rand.Rand) error) error {
	var next atomic.Int64
	g, ctx := errgroup.WithContext(context.Background())
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for {
				i := int(next.Add(1)) - 1
				if i >= count || ctx.Err() != nil {
					return nil
				}
				if err := body(i, iterationRNG(base, i)); err != nil {
					return err
				}
			}
		})
	}
	return g.Wait()
}
