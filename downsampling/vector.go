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

// Package downsampling reduces non-negative count vectors (or every
// row/column of a count matrix) to a smaller total by sampling without
// replacement, preserving the original multinomial proportions. Vectors
// collected with different totals become directly comparable after
// being downsampled to a common target.
package downsampling

import (
	"fmt"
	"math/rand"

	"golang.org/x/exp/constraints"

	"github.com/countstats/downsample-go/common"
	"github.com/countstats/downsample-go/internal"
)

type vectorConfig[C constraints.Integer] struct {
	output []C
}

type VectorOption[C constraints.Integer] func(*vectorConfig[C])

// WithOutput supplies the buffer the result is written into. It must
// have the same length as the input.
func WithOutput[C constraints.Integer](out []C) VectorOption[C] {
	return func(c *vectorConfig[C]) { c.output = out }
}

// Vector downsamples counts to at most target total, drawing without
// replacement so that each remaining unit is equally likely to survive.
// The result has the same length as counts, with output[i] <= counts[i]
// everywhere and sum(output) == min(sum(counts), target).
//
// When the input total is already at most target the input is copied
// through unchanged and no randomness is consumed. Otherwise exactly
// target draws are made from rng, costing O(target * log n).
//
// A nil rng falls back to the module's ambient stream; pass a seeded
// generator for reproducible results.
func Vector[C constraints.Integer](counts []C, target int64, rng *rand.Rand, opts ...VectorOption[C]) ([]C, error) {
	if target < 0 {
		return nil, fmt.Errorf("%w: negative target %d", ErrInvalidInput, target)
	}

	var total int64
	for i, c := range counts {
		if c < 0 {
			return nil, fmt.Errorf("%w: negative count %d at index %d in %s",
				ErrInvalidInput, int64(c), i, common.Describe(counts))
		}
		total += int64(c)
	}

	cfg := &vectorConfig[C]{}
	for _, opt := range opts {
		opt(cfg)
	}
	out := cfg.output
	if out == nil {
		out = make([]C, len(counts))
	} else if len(out) != len(counts) {
		return nil, fmt.Errorf("%w: output length %d does not match input %s",
			ErrInvalidInput, len(out), common.Describe(counts))
	}

	if len(counts) == 0 {
		return out, nil
	}
	if total <= target {
		copy(out, counts)
		return out, nil
	}
	if len(counts) == 1 {
		// Single bucket, trivial clamp. total > target here.
		out[0] = C(target)
		return out, nil
	}

	if rng == nil {
		rng = rand.New(rand.NewSource(internal.FallbackInt63()))
	}

	tree, err := NewAggregationTree(counts)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i] = 0
	}
	for drawn := int64(0); drawn < target; drawn++ {
		leaf := tree.DrawAndDecrement(rng.Int63n(tree.Total()) + 1)
		out[leaf]++
	}
	return out, nil
}
