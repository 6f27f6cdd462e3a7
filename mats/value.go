package mats

import (
	"fmt"
	"math"
	"strconv"
)

type ValueKind int

const (
	KindInvalid ValueKind = iota
	KindInt
	KindFloat
	KindBool
	KindString
	KindMatrix
)

// Value is a runtime value. Scalars are immutable; a matrix value shares its
// *Matrix, so subscript assignment is visible through every binding.
type Value struct {
	kind ValueKind
	data any
}

func NewInt(i int64) Value           { return Value{kind: KindInt, data: i} }
func NewFloat(f float64) Value       { return Value{kind: KindFloat, data: f} }
func NewBool(b bool) Value           { return Value{kind: KindBool, data: b} }
func NewString(s string) Value       { return Value{kind: KindString, data: s} }
func NewMatrixValue(m *Matrix) Value { return Value{kind: KindMatrix, data: m} }

func (v Value) Kind() ValueKind { return v.kind }

func (v Value) IsNumeric() bool { return v.kind == KindInt || v.kind == KindFloat }

func (v Value) Int() int64 {
	switch v.kind {
	case KindInt:
		return v.data.(int64)
	case KindFloat:
		return int64(v.data.(float64))
	default:
		return 0
	}
}

func (v Value) Float() float64 {
	switch v.kind {
	case KindFloat:
		return v.data.(float64)
	case KindInt:
		return float64(v.data.(int64))
	default:
		return 0
	}
}

func (v Value) Bool() bool {
	if v.kind == KindBool {
		return v.data.(bool)
	}
	return false
}

func (v Value) Str() string {
	if v.kind == KindString {
		return v.data.(string)
	}
	return ""
}

func (v Value) Matrix() *Matrix {
	if v.kind != KindMatrix {
		return nil
	}
	return v.data.(*Matrix)
}

func (k ValueKind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindMatrix:
		return "matrix"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// String renders the value the way print writes it.
func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.data.(int64), 10)
	case KindFloat:
		return formatFloat(v.data.(float64))
	case KindBool:
		return strconv.FormatBool(v.data.(bool))
	case KindString:
		return v.data.(string)
	case KindMatrix:
		return v.data.(*Matrix).String()
	default:
		return "<invalid>"
	}
}

// Equal compares scalars by value and matrices by shape and elements.
func (v Value) Equal(other Value) bool {
	if v.IsNumeric() && other.IsNumeric() {
		if v.kind == KindInt && other.kind == KindInt {
			return v.Int() == other.Int()
		}
		return v.Float() == other.Float()
	}
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindBool:
		return v.Bool() == other.Bool()
	case KindString:
		return v.Str() == other.Str()
	case KindMatrix:
		return v.Matrix().Equal(other.Matrix())
	}
	return false
}

// formatFloat prints the shortest representation that round-trips, keeping
// a trailing ".0" on integral values.
func formatFloat(f float64) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	for _, r := range s {
		if r == '.' {
			return s
		}
	}
	return s + ".0"
}
