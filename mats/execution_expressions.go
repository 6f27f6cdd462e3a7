package mats

// maxMatrixDim bounds the size argument of eye, zeros and ones.
const maxMatrixDim = 1 << 14

func (exec *Execution) evalExpr(env *Env[Value], expr Expression) (Value, error) {
	if err := exec.enter(expr); err != nil {
		exec.leave()
		return Value{}, err
	}
	defer exec.leave()

	switch e := expr.(type) {
	case *BinaryExpr:
		left, err := exec.evalExpr(env, e.Left)
		if err != nil {
			return Value{}, err
		}
		right, err := exec.evalExpr(env, e.Right)
		if err != nil {
			return Value{}, err
		}
		out, err := binaryValues(e.Operator, left, right)
		return out, exec.wrapError(err, e.Pos())
	case *Variable:
		return exec.evalVariable(env, e)
	default:
		return Value{}, exec.errorAt(expr.Pos(), TypeError, "unsupported expression %T", expr)
	}
}

func (exec *Execution) evalVariable(env *Env[Value], v *Variable) (Value, error) {
	val, err := exec.evalOperand(env, v.Value)
	if err != nil {
		return Value{}, err
	}
	if v.Minus%2 != 0 {
		if val, err = negateValue(val); err != nil {
			return Value{}, exec.wrapError(err, v.Pos())
		}
	}
	if v.Trans%2 != 0 {
		if val, err = transposeValue(val); err != nil {
			return Value{}, exec.wrapError(err, v.Pos())
		}
	}
	return val, nil
}

func (exec *Execution) evalOperand(env *Env[Value], op Operand) (Value, error) {
	switch o := op.(type) {
	case *Identifier:
		val, ok := env.Lookup(o.Name)
		if !ok {
			return Value{}, exec.errorAt(o.Pos(), NameError, "name '%s' is not defined", o.Name)
		}
		return val, nil
	case *IntLiteral:
		return NewInt(o.Value), nil
	case *FloatLiteral:
		return NewFloat(o.Value), nil
	case *StringLiteral:
		return NewString(o.Value), nil
	case *ParenExpr:
		return exec.evalExpr(env, o.Expr)
	case *SpecialMatrix:
		return exec.evalSpecialMatrix(env, o)
	case *SimpleMatrix:
		return exec.evalSimpleMatrix(env, o)
	default:
		return Value{}, exec.errorAt(op.Pos(), TypeError, "unsupported operand %T", op)
	}
}

func (exec *Execution) evalSpecialMatrix(env *Env[Value], m *SpecialMatrix) (Value, error) {
	if len(m.Args) != 1 {
		return Value{}, exec.errorAt(m.Pos(), TypeError, "%s expects exactly one argument, got %d", m.Kind, len(m.Args))
	}
	n, err := exec.evalInt(env, m.Args[0], string(m.Kind)+" size")
	if err != nil {
		return Value{}, err
	}
	if n <= 0 {
		return Value{}, exec.errorAt(m.Args[0].Pos(), ValueError, "%s size must be positive, got %d", m.Kind, n)
	}
	if n > maxMatrixDim {
		return Value{}, exec.errorAt(m.Args[0].Pos(), ValueError, "%s size %d exceeds limit of %d", m.Kind, n, maxMatrixDim)
	}

	switch m.Kind {
	case SpecialEye:
		return NewMatrixValue(Identity(int(n))), nil
	case SpecialZeros:
		return NewMatrixValue(Filled(int(n), 0)), nil
	default:
		return NewMatrixValue(Filled(int(n), 1)), nil
	}
}

func (exec *Execution) evalSimpleMatrix(env *Env[Value], m *SimpleMatrix) (Value, error) {
	exprRows := m.Flatten()
	rows := make([][]Value, len(exprRows))
	for i, exprRow := range exprRows {
		row := make([]Value, len(exprRow))
		for j, expr := range exprRow {
			v, err := exec.evalExpr(env, expr)
			if err != nil {
				return Value{}, err
			}
			row[j] = v
		}
		rows[i] = row
	}
	out, err := MatrixFromRows(rows)
	if err != nil {
		return Value{}, exec.wrapError(err, m.Pos())
	}
	return NewMatrixValue(out), nil
}
