package mats

import (
	"errors"
	"fmt"
)

// errUnsupportedOperands marks operand combinations an operator does not
// accept. The interpreter reports it as a TypeError.
var errUnsupportedOperands = errors.New("unsupported operand types")

func unsupported(op Operator, left, right Value) error {
	return fmt.Errorf("%w for %s: %s and %s", errUnsupportedOperands, op, describeValue(left), describeValue(right))
}

func describeValue(v Value) string {
	if m := v.Matrix(); m != nil {
		return fmt.Sprintf("matrix %s", m.Shape())
	}
	return v.Kind().String()
}

// binaryValues applies any binary operator to two runtime values.
func binaryValues(op Operator, left, right Value) (Value, error) {
	switch {
	case op.IsArithmetic():
		return arithmeticValues(op, left, right)
	case op.IsRelational():
		return compareValues(op, left, right)
	case op.IsElementwise():
		return elementwiseValues(op, left, right)
	default:
		return Value{}, fmt.Errorf("unknown operator %s", op)
	}
}

func arithmeticValues(op Operator, left, right Value) (Value, error) {
	if !left.IsNumeric() || !right.IsNumeric() {
		return Value{}, unsupported(op, left, right)
	}
	if left.Kind() == KindInt && right.Kind() == KindInt {
		l, r := left.Int(), right.Int()
		switch op {
		case OpAdd:
			return NewInt(l + r), nil
		case OpSub:
			return NewInt(l - r), nil
		case OpMul:
			return NewInt(l * r), nil
		default:
			if r == 0 {
				return Value{}, errDivisionByZero
			}
			return NewInt(l / r), nil
		}
	}
	l, r := left.Float(), right.Float()
	switch op {
	case OpAdd:
		return NewFloat(l + r), nil
	case OpSub:
		return NewFloat(l - r), nil
	case OpMul:
		return NewFloat(l * r), nil
	default:
		if r == 0 {
			return Value{}, errDivisionByZero
		}
		return NewFloat(l / r), nil
	}
}

func compareValues(op Operator, left, right Value) (Value, error) {
	if left.Kind() != right.Kind() {
		return Value{}, unsupported(op, left, right)
	}
	var cmp int
	switch left.Kind() {
	case KindInt:
		cmp = compareOrdered(left.Int(), right.Int())
	case KindFloat:
		cmp = compareOrdered(left.Float(), right.Float())
	case KindString:
		cmp = compareOrdered(left.Str(), right.Str())
	case KindBool:
		switch op {
		case OpEQ:
			return NewBool(left.Bool() == right.Bool()), nil
		case OpNE:
			return NewBool(left.Bool() != right.Bool()), nil
		}
		return Value{}, unsupported(op, left, right)
	default:
		return Value{}, unsupported(op, left, right)
	}

	switch op {
	case OpLT:
		return NewBool(cmp < 0), nil
	case OpGT:
		return NewBool(cmp > 0), nil
	case OpLTE:
		return NewBool(cmp <= 0), nil
	case OpGTE:
		return NewBool(cmp >= 0), nil
	case OpEQ:
		return NewBool(cmp == 0), nil
	default:
		return NewBool(cmp != 0), nil
	}
}

func compareOrdered[T int64 | float64 | string](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func elementwiseValues(op Operator, left, right Value) (Value, error) {
	lm, rm := left.Matrix(), right.Matrix()
	if lm == nil || rm == nil || !lm.SameShape(rm) {
		return Value{}, unsupported(op, left, right)
	}
	if op != OpDotDiv && lm.elem == KindInt && rm.elem == KindInt {
		out := NewMatrix(lm.rows, lm.cols, KindInt)
		for i := range out.ints {
			l, r := lm.ints[i], rm.ints[i]
			switch op {
			case OpDotAdd:
				out.ints[i] = l + r
			case OpDotSub:
				out.ints[i] = l - r
			default:
				out.ints[i] = l * r
			}
		}
		return NewMatrixValue(out), nil
	}

	out := NewMatrix(lm.rows, lm.cols, KindFloat)
	for i := range out.floats {
		l, r := lm.element(i).Float(), rm.element(i).Float()
		switch op {
		case OpDotAdd:
			out.floats[i] = l + r
		case OpDotSub:
			out.floats[i] = l - r
		case OpDotMul:
			out.floats[i] = l * r
		default:
			if r == 0 {
				return Value{}, errDivisionByZero
			}
			out.floats[i] = l / r
		}
	}
	return NewMatrixValue(out), nil
}

// negateValue applies unary minus to a number or, element-wise, a matrix.
func negateValue(v Value) (Value, error) {
	switch v.Kind() {
	case KindInt:
		return NewInt(-v.Int()), nil
	case KindFloat:
		return NewFloat(-v.Float()), nil
	case KindMatrix:
		return NewMatrixValue(v.Matrix().Negate()), nil
	default:
		return Value{}, fmt.Errorf("%w for unary -: %s", errUnsupportedOperands, v.Kind())
	}
}

func transposeValue(v Value) (Value, error) {
	m := v.Matrix()
	if m == nil {
		return Value{}, fmt.Errorf("%w for transpose: %s", errUnsupportedOperands, v.Kind())
	}
	return NewMatrixValue(m.Transpose()), nil
}

// compoundMatrixValues combines two equally shaped matrices for `+=` and `-=`.
func compoundMatrixValues(op Operator, left, right Value) (Value, error) {
	switch op {
	case OpAdd:
		return elementwiseValues(OpDotAdd, left, right)
	case OpSub:
		return elementwiseValues(OpDotSub, left, right)
	default:
		return Value{}, unsupported(op, left, right)
	}
}
