package mats

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	errIndexOutOfRange  = errors.New("index out of range")
	errDivisionByZero   = errors.New("division by zero")
	errNonNumericMatrix = errors.New("matrix elements must be int or float")
)

// Matrix is a fixed-shape, row-major matrix. Elem is KindInt or KindFloat;
// an int matrix keeps its elements in ints and a float matrix in floats.
type Matrix struct {
	rows   int
	cols   int
	elem   ValueKind
	ints   []int64
	floats []float64
}

// NewMatrix returns a zero-filled rows x cols matrix.
func NewMatrix(rows, cols int, elem ValueKind) *Matrix {
	m := &Matrix{rows: rows, cols: cols}
	if elem == KindFloat {
		m.elem = KindFloat
		m.floats = make([]float64, rows*cols)
	} else {
		m.elem = KindInt
		m.ints = make([]int64, rows*cols)
	}
	return m
}

// MatrixFromRows builds a matrix from equally long rows of numeric values.
// Any float element makes the whole matrix float.
func MatrixFromRows(rows [][]Value) (*Matrix, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, errors.New("empty matrix")
	}
	cols := len(rows[0])
	elem := KindInt
	for _, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("matrix rows have unequal lengths %d and %d", cols, len(row))
		}
		for _, v := range row {
			switch v.Kind() {
			case KindInt:
			case KindFloat:
				elem = KindFloat
			default:
				return nil, fmt.Errorf("%w, got %s", errNonNumericMatrix, v.Kind())
			}
		}
	}
	m := NewMatrix(len(rows), cols, elem)
	for i, row := range rows {
		for j, v := range row {
			if elem == KindInt {
				m.ints[i*cols+j] = v.Int()
			} else {
				m.floats[i*cols+j] = v.Float()
			}
		}
	}
	return m, nil
}

// Identity returns the n x n identity matrix.
func Identity(n int) *Matrix {
	m := NewMatrix(n, n, KindInt)
	for i := range n {
		m.ints[i*n+i] = 1
	}
	return m
}

// Filled returns an n x n int matrix with every element set to value.
func Filled(n int, value int64) *Matrix {
	m := NewMatrix(n, n, KindInt)
	for i := range m.ints {
		m.ints[i] = value
	}
	return m
}

func (m *Matrix) Rows() int       { return m.rows }
func (m *Matrix) Cols() int       { return m.cols }
func (m *Matrix) Elem() ValueKind { return m.elem }

func (m *Matrix) inRange(row, col int64) bool {
	return row >= 0 && col >= 0 && row < int64(m.rows) && col < int64(m.cols)
}

func (m *Matrix) element(i int) Value {
	if m.elem == KindInt {
		return NewInt(m.ints[i])
	}
	return NewFloat(m.floats[i])
}

// promote converts an int matrix to float in place.
func (m *Matrix) promote() {
	if m.elem == KindFloat {
		return
	}
	m.floats = make([]float64, len(m.ints))
	for i, n := range m.ints {
		m.floats[i] = float64(n)
	}
	m.ints = nil
	m.elem = KindFloat
}

// At returns the element at row, col (0-based).
func (m *Matrix) At(row, col int64) (Value, error) {
	if !m.inRange(row, col) {
		return Value{}, fmt.Errorf("%w: [%d, %d] in %dx%d matrix", errIndexOutOfRange, row, col, m.rows, m.cols)
	}
	return m.element(int(row*int64(m.cols) + col)), nil
}

// Set stores v at row, col in place. A float value promotes an int matrix
// to float.
func (m *Matrix) Set(row, col int64, v Value) error {
	if !m.inRange(row, col) {
		return fmt.Errorf("%w: [%d, %d] in %dx%d matrix", errIndexOutOfRange, row, col, m.rows, m.cols)
	}
	i := int(row*int64(m.cols) + col)
	switch v.Kind() {
	case KindInt:
		if m.elem == KindInt {
			m.ints[i] = v.Int()
		} else {
			m.floats[i] = v.Float()
		}
	case KindFloat:
		m.promote()
		m.floats[i] = v.Float()
	default:
		return fmt.Errorf("%w, got %s", errNonNumericMatrix, v.Kind())
	}
	return nil
}

func (m *Matrix) Clone() *Matrix {
	out := &Matrix{rows: m.rows, cols: m.cols, elem: m.elem}
	out.ints = slices.Clone(m.ints)
	out.floats = slices.Clone(m.floats)
	return out
}

func (m *Matrix) Transpose() *Matrix {
	out := NewMatrix(m.cols, m.rows, m.elem)
	for i := range m.rows {
		for j := range m.cols {
			if m.elem == KindInt {
				out.ints[j*m.rows+i] = m.ints[i*m.cols+j]
			} else {
				out.floats[j*m.rows+i] = m.floats[i*m.cols+j]
			}
		}
	}
	return out
}

func (m *Matrix) Negate() *Matrix {
	out := m.Clone()
	for i, n := range out.ints {
		out.ints[i] = -n
	}
	for i, f := range out.floats {
		out.floats[i] = -f
	}
	return out
}

func (m *Matrix) SameShape(other *Matrix) bool {
	return m.rows == other.rows && m.cols == other.cols
}

// Equal reports whether both matrices have the same shape and numerically
// equal elements.
func (m *Matrix) Equal(other *Matrix) bool {
	if m == nil || other == nil {
		return m == other
	}
	if !m.SameShape(other) {
		return false
	}
	if m.elem == KindInt && other.elem == KindInt {
		return slices.Equal(m.ints, other.ints)
	}
	for i := range m.rows * m.cols {
		if m.element(i).Float() != other.element(i).Float() {
			return false
		}
	}
	return true
}

func (m *Matrix) Shape() string {
	return fmt.Sprintf("%dx%d", m.rows, m.cols)
}

func (m *Matrix) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i := range m.rows {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('[')
		for j := range m.cols {
			if j > 0 {
				b.WriteByte(',')
			}
			b.WriteString(m.element(i*m.cols + j).String())
		}
		b.WriteByte(']')
	}
	b.WriteByte(']')
	return b.String()
}
