package mats

func (c *Checker) exprType(expr Expression) Type {
	ok := c.enter(expr)
	defer c.leave()
	if !ok {
		return unknownType
	}

	switch e := expr.(type) {
	case *BinaryExpr:
		return c.binaryType(e)
	case *Variable:
		return c.variableType(e)
	default:
		c.report(expr, TypeError, "unsupported expression %T", expr)
		return unknownType
	}
}

func (c *Checker) binaryType(e *BinaryExpr) Type {
	left := c.exprType(e.Left)
	right := c.exprType(e.Right)
	if left.IsUnknown() || right.IsUnknown() {
		return unknownType
	}

	switch {
	case e.Operator.IsArithmetic():
		if left.IsNumeric() && right.IsNumeric() {
			return numericResult(left, right)
		}
	case e.Operator.IsRelational():
		if comparableTypes(e.Operator, left, right) {
			return boolType
		}
	case e.Operator.IsElementwise():
		if left.IsMatrix() && right.IsMatrix() && left.sameShape(right) {
			return elementwiseResult(e.Operator, left, right)
		}
	}
	c.report(e, TypeError, "unsupported operand types for %s: %s and %s", e.Operator, left, right)
	return unknownType
}

func numericResult(left, right Type) Type {
	if left.Kind == TypeFloat || right.Kind == TypeFloat {
		return floatType
	}
	return intType
}

func comparableTypes(op Operator, left, right Type) bool {
	if left.Kind != right.Kind {
		return false
	}
	switch left.Kind {
	case TypeInt, TypeFloat, TypeString:
		return true
	case TypeBool:
		return op == OpEQ || op == OpNE
	default:
		return false
	}
}

// elementwiseResult takes whichever shape is known and widens the element
// kind to float when either side is float or the operator divides.
func elementwiseResult(op Operator, left, right Type) Type {
	out := left
	if !out.KnownShape() {
		out.Rows, out.Cols = right.Rows, right.Cols
	}
	switch {
	case op == OpDotDiv || left.Elem == TypeFloat || right.Elem == TypeFloat:
		out.Elem = TypeFloat
	case left.Elem == TypeInt && right.Elem == TypeInt:
		out.Elem = TypeInt
	default:
		out.Elem = TypeUnknown
	}
	return out
}

func (c *Checker) variableType(v *Variable) Type {
	t := c.operandType(v.Value)
	if t.IsUnknown() {
		return t
	}
	if v.Minus%2 != 0 && !t.IsNumeric() && !t.IsMatrix() {
		c.report(v, TypeError, "bad operand type for unary -: %s", t)
		return unknownType
	}
	if v.Trans%2 != 0 {
		if !t.IsMatrix() {
			c.report(v, TypeError, "transpose requires a matrix, got %s", t)
			return unknownType
		}
		t = t.transposed()
	}
	return t
}

func (c *Checker) operandType(op Operand) Type {
	switch o := op.(type) {
	case *Identifier:
		t, ok := c.env.Lookup(o.Name)
		if !ok {
			c.report(o, NameError, "name '%s' is not defined", o.Name)
			return unknownType
		}
		return t
	case *IntLiteral:
		return intType
	case *FloatLiteral:
		return floatType
	case *StringLiteral:
		return stringType
	case *ParenExpr:
		return c.exprType(o.Expr)
	case *SpecialMatrix:
		return c.specialMatrixType(o)
	case *SimpleMatrix:
		return c.simpleMatrixType(o)
	default:
		c.report(op, TypeError, "unsupported operand %T", op)
		return unknownType
	}
}

func (c *Checker) specialMatrixType(m *SpecialMatrix) Type {
	if len(m.Args) != 1 {
		c.report(m, TypeError, "%s expects exactly one argument, got %d", m.Kind, len(m.Args))
		for _, arg := range m.Args {
			c.exprType(arg)
		}
		return unknownType
	}

	arg := m.Args[0]
	t := c.exprType(arg)
	if t.IsUnknown() {
		return matrixType(-1, -1, TypeInt)
	}
	if t.Kind != TypeInt {
		c.report(arg, TypeError, "%s size must be int, got %s", m.Kind, t)
		return unknownType
	}
	n, literal := literalInt(arg)
	if !literal {
		return matrixType(-1, -1, TypeInt)
	}
	if n <= 0 {
		c.report(arg, ValueError, "%s size must be positive, got %d", m.Kind, n)
		return unknownType
	}
	return matrixType(int(n), int(n), TypeInt)
}

func (c *Checker) simpleMatrixType(m *SimpleMatrix) Type {
	rows := m.Flatten()
	if len(rows) == 0 {
		c.report(m, TypeError, "empty matrix literal")
		return unknownType
	}

	valid := true
	cols := len(rows[0])
	for i, row := range rows {
		if len(row) != cols {
			c.report(m, TypeError, "matrix rows have unequal lengths: row 1 has %d elements, row %d has %d", cols, i+1, len(row))
			valid = false
			break
		}
	}
	if valid && cols == 0 {
		c.report(m, TypeError, "empty matrix literal")
		valid = false
	}

	elem := TypeUnknown
	for _, row := range rows {
		for _, expr := range row {
			t := c.exprType(expr)
			switch {
			case t.IsUnknown():
				valid = false
			case !t.IsNumeric():
				c.report(expr, TypeError, "matrix elements must be int or float, got %s", t)
				valid = false
			case elem == TypeUnknown:
				elem = t.Kind
			case elem != t.Kind:
				c.report(expr, TypeError, "matrix elements must share one type, got %s and %s", elem, t)
				valid = false
			}
		}
	}

	if !valid {
		return unknownType
	}
	return matrixType(len(rows), cols, elem)
}
