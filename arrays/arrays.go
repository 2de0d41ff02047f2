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

// Package arrays provides the dense count-matrix representation consumed
// by the downsampling package: flat storage with an explicit memory
// layout, vector views along either axis, and allocation of compatible
// output matrices.
package arrays

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/exp/constraints"
)

// Axis selects whether the rows or the columns of a matrix are treated
// as the independent vectors of an operation.
type Axis int

const (
	Rows Axis = iota
	Columns
)

func (a Axis) String() string {
	switch a {
	case Rows:
		return "rows"
	case Columns:
		return "columns"
	}
	return fmt.Sprintf("axis(%d)", int(a))
}

// Layout describes which axis of a Dense matrix is contiguous in memory.
type Layout int

const (
	RowMajor Layout = iota
	ColumnMajor
)

func (l Layout) String() string {
	switch l {
	case RowMajor:
		return "row-major"
	case ColumnMajor:
		return "column-major"
	}
	return fmt.Sprintf("layout(%d)", int(l))
}

// EfficientAxis returns the axis whose vectors are contiguous under l.
func (l Layout) EfficientAxis() Axis {
	if l == ColumnMajor {
		return Columns
	}
	return Rows
}

// LayoutFor returns the layout under which vectors along the given axis
// are contiguous.
func LayoutFor(axis Axis) Layout {
	if axis == Columns {
		return ColumnMajor
	}
	return RowMajor
}

// Dense is a fixed-shape matrix of integer counts backed by a single
// flat slice, addressed with computed offsets instead of per-row
// allocations.
type Dense[C constraints.Integer] struct {
	rows   int
	cols   int
	layout Layout
	data   []C
}

// NewDense allocates a zeroed rows-by-cols matrix with the given layout.
func NewDense[C constraints.Integer](rows, cols int, layout Layout) (*Dense[C], error) {
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("matrix dimensions must be non-negative, got %dx%d", rows, cols)
	}
	return &Dense[C]{
		rows:   rows,
		cols:   cols,
		layout: layout,
		data:   make([]C, rows*cols),
	}, nil
}

// DenseOf builds a matrix from values given in row-major order,
// regardless of the requested storage layout.
func DenseOf[C constraints.Integer](rows, cols int, layout Layout, values []C) (*Dense[C], error) {
	if len(values) != rows*cols {
		return nil, fmt.Errorf("need %d values for a %dx%d matrix, got %d", rows*cols, rows, cols, len(values))
	}
	m, err := NewDense[C](rows, cols, layout)
	if err != nil {
		return nil, err
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			m.Set(r, c, values[r*cols+c])
		}
	}
	return m, nil
}

// DenseLike allocates a zeroed matrix with the same shape as m and the
// requested layout.
func DenseLike[C constraints.Integer](m *Dense[C], layout Layout) *Dense[C] {
	return &Dense[C]{
		rows:   m.rows,
		cols:   m.cols,
		layout: layout,
		data:   make([]C, m.rows*m.cols),
	}
}

func (m *Dense[C]) Rows() int      { return m.rows }
func (m *Dense[C]) Cols() int      { return m.cols }
func (m *Dense[C]) Layout() Layout { return m.layout }

// EfficientAxis returns the axis along which m's vectors are contiguous.
func (m *Dense[C]) EfficientAxis() Axis {
	return m.layout.EfficientAxis()
}

// VecCount returns the number of vectors m holds along the given axis.
func (m *Dense[C]) VecCount(axis Axis) int {
	if axis == Columns {
		return m.cols
	}
	return m.rows
}

// VecLen returns the length of each vector along the given axis.
func (m *Dense[C]) VecLen(axis Axis) int {
	if axis == Columns {
		return m.rows
	}
	return m.cols
}

func (m *Dense[C]) index(r, c int) int {
	if m.layout == ColumnMajor {
		return c*m.rows + r
	}
	return r*m.cols + c
}

// At returns the element at row r, column c.
func (m *Dense[C]) At(r, c int) C {
	return m.data[m.index(r, c)]
}

// Set stores v at row r, column c.
func (m *Dense[C]) Set(r, c int, v C) {
	m.data[m.index(r, c)] = v
}

// Vec returns the i-th vector along axis as a slice into m's backing
// storage. ok is false when the layout makes that vector non-contiguous;
// callers then fall back to CopyVec/SetVec.
func (m *Dense[C]) Vec(axis Axis, i int) (vec []C, ok bool) {
	if m.EfficientAxis() != axis {
		return nil, false
	}
	n := m.VecLen(axis)
	return m.data[i*n : (i+1)*n], true
}

// CopyVec gathers the i-th vector along axis into dst, which must have
// length VecLen(axis).
func (m *Dense[C]) CopyVec(axis Axis, i int, dst []C) {
	if vec, ok := m.Vec(axis, i); ok {
		copy(dst, vec)
		return
	}
	if axis == Rows {
		for c := 0; c < m.cols; c++ {
			dst[c] = m.At(i, c)
		}
		return
	}
	for r := 0; r < m.rows; r++ {
		dst[r] = m.At(r, i)
	}
}

// SetVec scatters src into the i-th vector along axis.
func (m *Dense[C]) SetVec(axis Axis, i int, src []C) {
	if vec, ok := m.Vec(axis, i); ok {
		copy(vec, src)
		return
	}
	if axis == Rows {
		for c := 0; c < m.cols; c++ {
			m.Set(i, c, src[c])
		}
		return
	}
	for r := 0; r < m.rows; r++ {
		m.Set(r, i, src[r])
	}
}

// Fingerprint returns an xxhash64 digest of m's shape and logical
// row-major contents. Two matrices with equal shape and elements hash
// identically regardless of storage layout, which makes the digest
// usable both for identifying matrices in log output and for comparing
// results in tests.
func (m *Dense[C]) Fingerprint() uint64 {
	h := xxhash.New()
	var scratch [8]byte
	binary.LittleEndian.PutUint64(scratch[:], uint64(m.rows))
	_, _ = h.Write(scratch[:])
	binary.LittleEndian.PutUint64(scratch[:], uint64(m.cols))
	_, _ = h.Write(scratch[:])
	for r := 0; r < m.rows; r++ {
		for c := 0; c < m.cols; c++ {
			binary.LittleEndian.PutUint64(scratch[:], uint64(m.At(r, c)))
			_, _ = h.Write(scratch[:])
		}
	}
	return h.Sum64()
}

// ErrShapeMismatch reports an output matrix whose shape differs from
// its input.
var ErrShapeMismatch = errors.New("output matrix shape does not match input")

// SameShape reports whether a and b have identical dimensions.
func SameShape[C constraints.Integer](a, b *Dense[C]) bool {
	return a.rows == b.rows && a.cols == b.cols
}
