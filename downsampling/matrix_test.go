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
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/countstats/downsample-go/arrays"
	"github.com/countstats/downsample-go/parallel"
)

func randomMatrix(t *testing.T, rows, cols int, layout arrays.Layout, seed int64) *arrays.Dense[int64] {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	values := make([]int64, rows*cols)
	for i := range values {
		values[i] = rng.Int63n(50)
	}
	m, err := arrays.DenseOf(rows, cols, layout, values)
	require.NoError(t, err)
	return m
}

func vecTotal(m *arrays.Dense[int64], axis arrays.Axis, i int) int64 {
	buf := make([]int64, m.VecLen(axis))
	m.CopyVec(axis, i, buf)
	var total int64
	for _, v := range buf {
		total += v
	}
	return total
}

func TestMatrixIdenticalAcrossPolicies(t *testing.T) {
	m := randomMatrix(t, 8, 40, arrays.RowMajor, 1)

	var fingerprints []uint64
	for _, policy := range []parallel.Policy{parallel.Greedy, parallel.Static, parallel.Dynamic} {
		out, err := Matrix(m, 100, arrays.Rows,
			WithSeed[int64](42), WithPolicy[int64](policy))
		require.NoError(t, err)
		fingerprints = append(fingerprints, out.Fingerprint())
	}
	assert.Equal(t, fingerprints[0], fingerprints[1])
	assert.Equal(t, fingerprints[0], fingerprints[2])
}

func TestMatrixRowConservationAndBounds(t *testing.T) {
	const target = int64(60)
	m := randomMatrix(t, 10, 30, arrays.RowMajor, 2)

	out, err := Matrix(m, target, arrays.Rows, WithSeed[int64](7))
	require.NoError(t, err)
	require.True(t, arrays.SameShape(m, out))

	for r := 0; r < m.Rows(); r++ {
		assert.Equal(t, min(vecTotal(m, arrays.Rows, r), target), vecTotal(out, arrays.Rows, r), "row %d", r)
		for c := 0; c < m.Cols(); c++ {
			assert.LessOrEqual(t, out.At(r, c), m.At(r, c))
			assert.GreaterOrEqual(t, out.At(r, c), int64(0))
		}
	}
}

func TestMatrixColumnsAxis(t *testing.T) {
	const target = int64(40)
	m := randomMatrix(t, 20, 6, arrays.ColumnMajor, 3)

	out, err := Matrix(m, target, arrays.Columns, WithSeed[int64](9))
	require.NoError(t, err)
	assert.Equal(t, arrays.ColumnMajor, out.Layout())

	for c := 0; c < m.Cols(); c++ {
		assert.Equal(t, min(vecTotal(m, arrays.Columns, c), target), vecTotal(out, arrays.Columns, c), "column %d", c)
	}
}

// The same counts stored row-major and column-major must downsample to
// the same logical result; the gather/scatter path only changes memory
// traffic, never values.
func TestMatrixLayoutIndependentResults(t *testing.T) {
	rm := randomMatrix(t, 8, 12, arrays.RowMajor, 4)
	cm := arrays.DenseLike(rm, arrays.ColumnMajor)
	for r := 0; r < rm.Rows(); r++ {
		for c := 0; c < rm.Cols(); c++ {
			cm.Set(r, c, rm.At(r, c))
		}
	}

	ignore := WithMismatch[int64](arrays.MismatchHandler{Policy: arrays.MismatchIgnore})
	a, err := Matrix(rm, 50, arrays.Rows, WithSeed[int64](21), ignore)
	require.NoError(t, err)
	b, err := Matrix(cm, 50, arrays.Rows, WithSeed[int64](21), ignore)
	require.NoError(t, err)

	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
}

func TestMatrixOutputLayoutMatchesAxis(t *testing.T) {
	m := randomMatrix(t, 5, 5, arrays.RowMajor, 5)
	ignore := WithMismatch[int64](arrays.MismatchHandler{Policy: arrays.MismatchIgnore})

	out, err := Matrix(m, 10, arrays.Columns, WithSeed[int64](1), ignore)
	require.NoError(t, err)
	assert.Equal(t, arrays.ColumnMajor, out.Layout())
}

func TestMatrixMismatchErrorPolicy(t *testing.T) {
	m := randomMatrix(t, 5, 5, arrays.RowMajor, 6)

	_, err := Matrix(m, 10, arrays.Columns,
		WithMismatch[int64](arrays.MismatchHandler{Policy: arrays.MismatchError}))
	assert.ErrorIs(t, err, arrays.ErrInefficientAxis)
}

func TestMatrixCallerSuppliedOutput(t *testing.T) {
	m := randomMatrix(t, 4, 8, arrays.RowMajor, 7)
	out := arrays.DenseLike(m, arrays.RowMajor)

	got, err := Matrix(m, 20, arrays.Rows, WithSeed[int64](3), WithMatrixOutput(out))
	require.NoError(t, err)
	assert.Same(t, out, got)
}

func TestMatrixOutputShapeMismatch(t *testing.T) {
	m := randomMatrix(t, 4, 8, arrays.RowMajor, 8)
	wrong, err := arrays.NewDense[int64](4, 7, arrays.RowMajor)
	require.NoError(t, err)

	_, err = Matrix(m, 20, arrays.Rows, WithMatrixOutput(wrong))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestMatrixPropagatesVectorError(t *testing.T) {
	m, err := arrays.DenseOf(2, 3, arrays.RowMajor, []int64{1, 2, 3, 4, -5, 6})
	require.NoError(t, err)

	for _, policy := range []parallel.Policy{parallel.Greedy, parallel.Static, parallel.Dynamic} {
		_, err := Matrix(m, 2, arrays.Rows, WithPolicy[int64](policy))
		assert.ErrorIs(t, err, ErrInvalidInput, "policy %v", policy)
	}
}

func TestMatrixRejectsBadArguments(t *testing.T) {
	_, err := Matrix[int64](nil, 5, arrays.Rows)
	assert.ErrorIs(t, err, ErrInvalidInput)

	m := randomMatrix(t, 2, 2, arrays.RowMajor, 9)
	_, err = Matrix(m, -1, arrays.Rows)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestMatrixEmpty(t *testing.T) {
	m, err := arrays.NewDense[int64](0, 5, arrays.RowMajor)
	require.NoError(t, err)

	out, err := Matrix(m, 10, arrays.Rows)
	require.NoError(t, err)
	assert.Equal(t, 0, out.Rows())
	assert.Equal(t, 5, out.Cols())
}

func TestMatrixSeededRNGReproducible(t *testing.T) {
	m := randomMatrix(t, 6, 10, arrays.RowMajor, 10)

	a, err := Matrix(m, 30, arrays.Rows, WithMatrixRNG[int64](rand.New(rand.NewSource(55))))
	require.NoError(t, err)
	b, err := Matrix(m, 30, arrays.Rows, WithMatrixRNG[int64](rand.New(rand.NewSource(55))))
	require.NoError(t, err)
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
}
