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
	"strconv"

	"golang.org/x/exp/constraints"

	"github.com/countstats/downsample-go/common"
)

// AggregationTree is a complete binary tree over a count vector, stored
// as a single flat slice with computed child offsets. Every internal
// node holds the sum of its two children, so a weighted draw is a
// single root-to-leaf descent and a decrement walks the same path back
// up. Both cost O(log n).
//
// A tree is built fresh for one sampling pass and discarded; it is not
// safe for concurrent use.
type AggregationTree struct {
	// nodes[1] is the root; leaves occupy nodes[base : base+n] with the
	// remainder of the leaf level zero-padded.
	nodes []int64
	base  int
	n     int
}

// NewAggregationTree builds a tree whose leaves are the given counts,
// zero-padded to the next power of two. Total build work is O(n).
func NewAggregationTree[C constraints.Integer](counts []C) (*AggregationTree, error) {
	for i, c := range counts {
		if c < 0 {
			return nil, fmt.Errorf("%w: negative count %d at index %d in %s",
				ErrInvalidInput, int64(c), i, common.Describe(counts))
		}
	}

	base := common.CeilPowerOf2(len(counts))
	nodes := make([]int64, 2*base)
	for i, c := range counts {
		nodes[base+i] = int64(c)
	}
	for i := base - 1; i >= 1; i-- {
		nodes[i] = nodes[2*i] + nodes[2*i+1]
	}

	return &AggregationTree{nodes: nodes, base: base, n: len(counts)}, nil
}

// Len returns the number of leaves the tree was built from, excluding
// padding.
func (t *AggregationTree) Len() int {
	return t.n
}

// Total returns the sum of all remaining leaf values.
func (t *AggregationTree) Total() int64 {
	return t.nodes[1]
}

// DrawAndDecrement removes one unit from the tree, selected by r, and
// returns the index of the leaf it came from. r must be in
// [1, Total()]: the descent goes left while r is at most the left
// child's sum, otherwise subtracts that sum and goes right, so leaf i
// is selected with probability proportional to its remaining value.
//
// An out-of-range r or an exhausted leaf on the descended path means
// the tree's sums are corrupted; both panic rather than return an
// error, since no caller can recover a corrupted tree.
func (t *AggregationTree) DrawAndDecrement(r int64) int {
	if r < 1 || r > t.Total() {
		panic("aggregation tree: draw value " + strconv.FormatInt(r, 10) +
			" outside [1, " + strconv.FormatInt(t.Total(), 10) + "]")
	}

	pos := 1
	for pos < t.base {
		left := 2 * pos
		if r <= t.nodes[left] {
			pos = left
		} else {
			r -= t.nodes[left]
			pos = left + 1
		}
	}

	if t.nodes[pos] <= 0 {
		panic("aggregation tree: drawing from an exhausted leaf, tree sums are corrupted")
	}
	for i := pos; i >= 1; i /= 2 {
		t.nodes[i]--
	}
	return pos - t.base
}
