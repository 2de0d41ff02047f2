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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCeilPowerOf2(t *testing.T) {
	assert.Equal(t, 1, CeilPowerOf2(0))
	assert.Equal(t, 1, CeilPowerOf2(1))
	assert.Equal(t, 2, CeilPowerOf2(2))
	assert.Equal(t, 4, CeilPowerOf2(3))
	assert.Equal(t, 4, CeilPowerOf2(4))
	assert.Equal(t, 8, CeilPowerOf2(5))
	assert.Equal(t, 1024, CeilPowerOf2(1000))
}

func TestIsPowerOf2(t *testing.T) {
	assert.False(t, IsPowerOf2(0))
	assert.True(t, IsPowerOf2(1))
	assert.True(t, IsPowerOf2(64))
	assert.False(t, IsPowerOf2(63))
	assert.False(t, IsPowerOf2(-4))
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "counts(len=0 total=0 [])", Describe([]int64{}))
	assert.Equal(t, "counts(len=4 total=10 [2 0 3 5])", Describe([]int64{2, 0, 3, 5}))
	assert.Equal(t, "counts(len=3 total=6 [1 2 3])", Describe([]uint32{1, 2, 3}))
}

func TestDescribeTruncatesLongSlices(t *testing.T) {
	values := make([]int64, 20)
	for i := range values {
		values[i] = 1
	}
	assert.Equal(t, "counts(len=20 total=20 [1 1 1 1 1 1 1 1 ...])", Describe(values))
}
