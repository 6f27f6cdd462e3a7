package mats

import "fmt"

type TypeKind int

const (
	TypeUnknown TypeKind = iota
	TypeInt
	TypeFloat
	TypeBool
	TypeString
	TypeMatrix
)

func (k TypeKind) String() string {
	switch k {
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeBool:
		return "bool"
	case TypeString:
		return "string"
	case TypeMatrix:
		return "matrix"
	default:
		return "unknown"
	}
}

// Type is the static type of an expression. Rows and Cols are -1 when the
// shape of a matrix cannot be derived; Elem is the element kind of a matrix.
type Type struct {
	Kind TypeKind
	Rows int
	Cols int
	Elem TypeKind
}

var (
	unknownType = Type{Kind: TypeUnknown}
	intType     = Type{Kind: TypeInt}
	floatType   = Type{Kind: TypeFloat}
	boolType    = Type{Kind: TypeBool}
	stringType  = Type{Kind: TypeString}
)

func matrixType(rows, cols int, elem TypeKind) Type {
	return Type{Kind: TypeMatrix, Rows: rows, Cols: cols, Elem: elem}
}

func (t Type) IsUnknown() bool { return t.Kind == TypeUnknown }
func (t Type) IsNumeric() bool { return t.Kind == TypeInt || t.Kind == TypeFloat }
func (t Type) IsMatrix() bool  { return t.Kind == TypeMatrix }

// KnownShape reports whether both dimensions are statically known.
func (t Type) KnownShape() bool {
	return t.Kind == TypeMatrix && t.Rows >= 0 && t.Cols >= 0
}

func (t Type) transposed() Type {
	t.Rows, t.Cols = t.Cols, t.Rows
	return t
}

// sameShape is false only when both shapes are known and differ.
func (t Type) sameShape(other Type) bool {
	if !t.KnownShape() || !other.KnownShape() {
		return true
	}
	return t.Rows == other.Rows && t.Cols == other.Cols
}

func (t Type) String() string {
	if t.Kind != TypeMatrix {
		return t.Kind.String()
	}
	dim := func(n int) string {
		if n < 0 {
			return "?"
		}
		return fmt.Sprint(n)
	}
	if t.Elem == TypeUnknown {
		return fmt.Sprintf("matrix %sx%s", dim(t.Rows), dim(t.Cols))
	}
	return fmt.Sprintf("matrix<%s> %sx%s", t.Elem, dim(t.Rows), dim(t.Cols))
}

// typeOfValue derives the static type of a runtime value. Sessions use it to
// seed the checker with bindings created by earlier inputs.
func typeOfValue(v Value) Type {
	switch v.Kind() {
	case KindInt:
		return intType
	case KindFloat:
		return floatType
	case KindBool:
		return boolType
	case KindString:
		return stringType
	case KindMatrix:
		m := v.Matrix()
		elem := TypeInt
		if m.Elem() == KindFloat {
			elem = TypeFloat
		}
		return matrixType(m.Rows(), m.Cols(), elem)
	default:
		return unknownType
	}
}
