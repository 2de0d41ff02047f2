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

package downsampling

import (
	"fmt"
	"math/rand"

	"golang.org/x/exp/constraints"

	"github.com/countstats/downsample-go/arrays"
	"github.com/countstats/downsample-go/parallel"
)

type matrixConfig[C constraints.Integer] struct {
	seed     int64
	seedSet  bool
	rng      *rand.Rand
	policy   parallel.Policy
	output   *arrays.Dense[C]
	mismatch arrays.MismatchHandler
}

type MatrixOption[C constraints.Integer] func(*matrixConfig[C])

// WithSeed fixes the base seed of the per-vector random streams,
// overriding WithMatrixRNG.
func WithSeed[C constraints.Integer](seed int64) MatrixOption[C] {
	return func(c *matrixConfig[C]) {
		c.seed = seed
		c.seedSet = true
	}
}

// WithMatrixRNG supplies the generator the base seed is drawn from when
// no explicit seed is given.
func WithMatrixRNG[C constraints.Integer](rng *rand.Rand) MatrixOption[C] {
	return func(c *matrixConfig[C]) { c.rng = rng }
}

// WithPolicy selects the scheduling policy of the per-vector fan-out.
// Results are identical under every policy; the default is Dynamic.
func WithPolicy[C constraints.Integer](p parallel.Policy) MatrixOption[C] {
	return func(c *matrixConfig[C]) { c.policy = p }
}

// WithMatrixOutput supplies the output matrix; it must have the same
// shape as the input.
func WithMatrixOutput[C constraints.Integer](out *arrays.Dense[C]) MatrixOption[C] {
	return func(c *matrixConfig[C]) { c.output = out }
}

// WithMismatch configures how an inefficient-axis advisory is handled.
// The default warns through slog.Default.
func WithMismatch[C constraints.Integer](h arrays.MismatchHandler) MatrixOption[C] {
	return func(c *matrixConfig[C]) { c.mismatch = h }
}

// Matrix downsamples every vector of m along the given axis to at most
// target total, independently, and returns the result. Rows are
// downsampled when axis is arrays.Rows, columns otherwise.
//
// The per-vector work is fanned out through parallel.RunIndexed: each
// vector gets its own random stream derived from the base seed and its
// index, and writes only its own disjoint slice of the output, so the
// result depends on the seed alone and not on scheduling.
//
// When axis disagrees with m's efficient iteration axis the configured
// mismatch handler is consulted; unless it escalates to an error the
// operation proceeds through a per-vector gather/scatter path. The
// output matrix is allocated with a layout matching axis unless the
// caller supplies one.
func Matrix[C constraints.Integer](m *arrays.Dense[C], target int64, axis arrays.Axis, opts ...MatrixOption[C]) (*arrays.Dense[C], error) {
	if m == nil {
		return nil, fmt.Errorf("%w: nil input matrix", ErrInvalidInput)
	}
	if target < 0 {
		return nil, fmt.Errorf("%w: negative target %d", ErrInvalidInput, target)
	}

	cfg := &matrixConfig[C]{policy: parallel.Dynamic}
	for _, opt := range opts {
		opt(cfg)
	}

	if efficient := m.EfficientAxis(); efficient != axis {
		if err := cfg.mismatch.Handle(axis, efficient, m.Fingerprint()); err != nil {
			return nil, err
		}
	}

	out := cfg.output
	if out == nil {
		out = arrays.DenseLike(m, arrays.LayoutFor(axis))
	} else if !arrays.SameShape(m, out) {
		return nil, fmt.Errorf("%w: output is %dx%d, input is %dx%d: %w",
			ErrInvalidInput, out.Rows(), out.Cols(), m.Rows(), m.Cols(), arrays.ErrShapeMismatch)
	}

	runOpts := []parallel.Option{parallel.WithPolicy(cfg.policy)}
	if cfg.seedSet {
		runOpts = append(runOpts, parallel.WithSeed(cfg.seed))
	} else if cfg.rng != nil {
		runOpts = append(runOpts, parallel.WithRNG(cfg.rng))
	}

	n := m.VecLen(axis)
	err := parallel.RunIndexed(m.VecCount(axis), func(i int, rng *rand.Rand) error {
		src, ok := m.Vec(axis, i)
		if !ok {
			scratch := make([]C, n)
			m.CopyVec(axis, i, scratch)
			src = scratch
		}
		if dst, ok := out.Vec(axis, i); ok {
			_, err := Vector(src, target, rng, WithOutput(dst))
			return err
		}
		buf := make([]C, n)
		if _, err := Vector(src, target, rng, WithOutput(buf)); err != nil {
			return err
		}
		out.SetVec(axis, i, buf)
		return nil
	}, runOpts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}
