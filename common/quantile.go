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

package common

import (
	"math"
	"slices"
	"strconv"
)

// Quantile returns the q-quantile of values, with linear interpolation
// between the two closest order statistics (the "type 7" definition used
// by most statistics environments). values is not modified.
//
// Panics if values is empty or q is outside [0, 1]; callers are expected
// to validate their inputs first.
func Quantile(values []int64, q float64) float64 {
	if len(values) == 0 {
		panic("quantile of an empty slice is undefined")
	}
	if q < 0 || q > 1 || math.IsNaN(q) {
		panic("quantile fraction must be in [0, 1], got " + strconv.FormatFloat(q, 'g', -1, 64))
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	h := q * float64(len(sorted)-1)
	lo := int(math.Floor(h))
	hi := int(math.Ceil(h))
	if lo == hi {
		return float64(sorted[lo])
	}
	frac := h - float64(lo)
	return float64(sorted[lo]) + frac*float64(sorted[hi]-sorted[lo])
}
