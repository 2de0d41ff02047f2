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
	"math"

	"github.com/countstats/downsample-go/common"
)

const (
	DefaultMinTarget    = int64(750)
	DefaultLowQuantile  = 0.05
	DefaultHighQuantile = 0.5
)

type targetSizeConfig struct {
	minTarget    int64
	lowQuantile  float64
	highQuantile float64
}

type TargetSizeOption func(*targetSizeConfig)

// WithMinTarget sets the floor the low-quantile candidate is raised to.
func WithMinTarget(minTarget int64) TargetSizeOption {
	return func(c *targetSizeConfig) { c.minTarget = minTarget }
}

// WithQuantileRange sets the quantile fractions bounding the candidate:
// the low quantile proposes a target, the high quantile caps it.
func WithQuantileRange(low, high float64) TargetSizeOption {
	return func(c *targetSizeConfig) {
		c.lowQuantile = low
		c.highQuantile = high
	}
}

// PickTargetSize derives one reasonable downsampling target from the
// distribution of per-vector totals: the low quantile of the totals,
// raised to at least minTarget, then capped at the high quantile so the
// target never exceeds what a typical vector actually holds. The result
// is rounded to the nearest integer.
func PickTargetSize(totals []int64, opts ...TargetSizeOption) (int64, error) {
	cfg := &targetSizeConfig{
		minTarget:    DefaultMinTarget,
		lowQuantile:  DefaultLowQuantile,
		highQuantile: DefaultHighQuantile,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.lowQuantile < 0 || cfg.highQuantile > 1 || cfg.lowQuantile > cfg.highQuantile ||
		math.IsNaN(cfg.lowQuantile) || math.IsNaN(cfg.highQuantile) {
		return 0, fmt.Errorf("%w: quantile range [%g, %g] must satisfy 0 <= low <= high <= 1",
			ErrInvalidInput, cfg.lowQuantile, cfg.highQuantile)
	}
	if len(totals) == 0 {
		return 0, fmt.Errorf("%w: cannot pick a target size from zero totals", ErrInvalidInput)
	}

	candidate := math.Max(float64(cfg.minTarget), common.Quantile(totals, cfg.lowQuantile))
	ceiling := common.Quantile(totals, cfg.highQuantile)
	return int64(math.Round(math.Min(candidate, ceiling))), nil
}
