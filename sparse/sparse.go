/*
Package sparse implements a simple type for sparse integer matrices.
It is mainly used for state transition tables of finite state machines, where
most (state, input) combinations lead to an error state, i.e. the null-value.

This implementation uses the COO algorithm (a.k.a. triplet-encoding).

   https://medium.com/@jmaxg3/101-ways-to-store-a-sparse-matrix-c7f2bf15a229
   https://www.coin-or.org/Ipopt/documentation/node38.html


License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package sparse

import (
	"fmt"
	"strings"

	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

// IntMatrix is a type for a sparse matrix of integer values. Construct with
//
//     M := NewIntMatrix[int8](10, 10, -1)  // last parameter is M's null-value
//
// Now
//
//     M.Set(2, 3, 47)               // set a value
//     v := M.Value(2, 3)            // returns 47
//     cnt := M.ValueCount()         // returns 1 (one position set)
//     v = M.Value(9, 9)             // returns -1, i.e. the null-value
//
// Values cannot be deleted, but may be overwritten with the null-value. Space for
// null-values is not re-claimed.
type IntMatrix[T constraints.Integer] struct {
	values  []triplet[T] // sorted by (row, col)
	rowcnt  int
	colcnt  int
	nullval T
}

// Triplet values to store
type triplet[T constraints.Integer] struct {
	row, col int
	value    T
}

// NewIntMatrix creates a new matrix for integers, size m x n. The 3rd argument
// is a null-value, indicating empty entries.
func NewIntMatrix[T constraints.Integer](m, n int, nullValue T) *IntMatrix[T] {
	return &IntMatrix[T]{
		values:  []triplet[T]{},
		rowcnt:  m,
		colcnt:  n,
		nullval: nullValue,
	}
}

// M returns the row count.
func (m *IntMatrix[T]) M() int {
	return m.rowcnt
}

// N returns the column count.
func (m *IntMatrix[T]) N() int {
	return m.colcnt
}

// NullValue returns this matrix' null value
func (m *IntMatrix[T]) NullValue() T {
	return m.nullval
}

// ValueCount returns the number of values in the matrix.
func (m *IntMatrix[T]) ValueCount() int {
	return len(m.values)
}

// Value returns the value at position (i,j), or NullValue.
// Positions outside of the matrix' dimensions are always null.
func (m *IntMatrix[T]) Value(i, j int) T {
	if k, found := m.find(i, j); found {
		return m.values[k].value
	}
	return m.nullval
}

// Set a value in the matrix at position (i,j).
// Will panic if (i,j) is outside of the matrix' dimensions.
func (m *IntMatrix[T]) Set(i, j int, value T) *IntMatrix[T] {
	if i < 0 || i >= m.rowcnt || j < 0 || j >= m.colcnt {
		panic(fmt.Sprintf("sparse matrix index (%d,%d) out of range %dx%d", i, j, m.rowcnt, m.colcnt))
	}
	k, found := m.find(i, j)
	if found {
		m.values[k].value = value
		return m
	}
	m.values = slices.Insert(m.values, k, triplet[T]{row: i, col: j, value: value})
	return m
}

// Row calls f for every non-null entry in row i, in column order.
func (m *IntMatrix[T]) Row(i int, f func(j int, value T)) {
	k, _ := m.find(i, 0)
	for ; k < len(m.values) && m.values[k].row == i; k++ {
		if m.values[k].value != m.nullval {
			f(m.values[k].col, m.values[k].value)
		}
	}
}

func (m *IntMatrix[T]) find(i, j int) (int, bool) {
	return slices.BinarySearchFunc(m.values, [2]int{i, j}, func(t triplet[T], at [2]int) int {
		if t.row != at[0] {
			return t.row - at[0]
		}
		return t.col - at[1]
	})
}

// String prints a matrix in a compact, row-oriented format. Intended for
// debugging.
func (m *IntMatrix[T]) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%dx%d null=%v]", m.rowcnt, m.colcnt, m.nullval)
	row := -1
	for _, t := range m.values {
		if t.row != row {
			row = t.row
			fmt.Fprintf(&b, "\n%3d:", row)
		}
		fmt.Fprintf(&b, " %d→%v", t.col, t.value)
	}
	return b.String()
}
