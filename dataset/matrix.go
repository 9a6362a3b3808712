// Copyright 2026 broom Project Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dataset

import (
	"slices"

	"gonum.org/v1/gonum/stat"
)

type triple struct {
	row, col int32
	value    float32
}

// Matrix is an immutable sparse matrix in compressed sparse row layout.
// Absent cells are zero. Duplicate coordinates passed to the constructor are
// summed: implicit feedback strengths are counts and accumulating preserves
// the total signal, while last-write-wins would silently drop it.
type Matrix struct {
	rows, cols int
	rowPtr     []int32
	colInd     []int32
	values     []float32
}

func newMatrix(rows, cols int, triples []triple) *Matrix {
	slices.SortFunc(triples, func(a, b triple) int {
		if a.row != b.row {
			return int(a.row - b.row)
		}
		return int(a.col - b.col)
	})
	// merge duplicate coordinates by summing
	merged := triples[:0]
	for _, t := range triples {
		if n := len(merged); n > 0 && merged[n-1].row == t.row && merged[n-1].col == t.col {
			merged[n-1].value += t.value
		} else {
			merged = append(merged, t)
		}
	}
	m := &Matrix{
		rows:   rows,
		cols:   cols,
		rowPtr: make([]int32, rows+1),
		colInd: make([]int32, len(merged)),
		values: make([]float32, len(merged)),
	}
	for k, t := range merged {
		m.rowPtr[t.row+1]++
		m.colInd[k] = t.col
		m.values[k] = t.value
	}
	for r := 1; r <= rows; r++ {
		m.rowPtr[r] += m.rowPtr[r-1]
	}
	return m
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int {
	return m.rows
}

// Cols returns the number of columns.
func (m *Matrix) Cols() int {
	return m.cols
}

// NNZ returns the number of stored cells.
func (m *Matrix) NNZ() int {
	return len(m.values)
}

// At returns the cell value at (i, j), zero for absent cells.
func (m *Matrix) At(i, j int32) float32 {
	start, end := m.rowPtr[i], m.rowPtr[i+1]
	pos, found := slices.BinarySearch(m.colInd[start:end], j)
	if !found {
		return 0
	}
	return m.values[start+int32(pos)]
}

// Row iterates stored cells of row i in ascending column order.
func (m *Matrix) Row(i int32, f func(j int32, value float32)) {
	for k := m.rowPtr[i]; k < m.rowPtr[i+1]; k++ {
		f(m.colInd[k], m.values[k])
	}
}

// Transpose returns a new matrix with rows and columns swapped. The receiver
// is unchanged.
func (m *Matrix) Transpose() *Matrix {
	triples := make([]triple, 0, m.NNZ())
	for i := 0; i < m.rows; i++ {
		m.Row(int32(i), func(j int32, value float32) {
			triples = append(triples, triple{row: j, col: int32(i), value: value})
		})
	}
	return newMatrix(m.cols, m.rows, triples)
}

// MeanStrength returns the mean of stored cell values.
func (m *Matrix) MeanStrength() float64 {
	if len(m.values) == 0 {
		return 0
	}
	values := make([]float64, len(m.values))
	for i, v := range m.values {
		values[i] = float64(v)
	}
	return stat.Mean(values, nil)
}

// Sparsity returns the fraction of absent cells.
func (m *Matrix) Sparsity() float64 {
	if m.rows == 0 || m.cols == 0 {
		return 1
	}
	return 1 - float64(m.NNZ())/(float64(m.rows)*float64(m.cols))
}
