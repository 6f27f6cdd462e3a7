package mats

func (exec *Execution) execAssign(env *Env[Value], s *AssignStmt) error {
	value, err := exec.evalExpr(env, s.Value)
	if err != nil {
		return err
	}

	if s.Subscript != nil {
		return exec.assignElement(env, s, value)
	}

	op, compound := s.Op.Binary()
	if !compound {
		env.Assign(s.Name, value)
		return nil
	}

	current, ok := env.Lookup(s.Name)
	if !ok {
		return exec.errorAt(s.Pos(), NameError, "name '%s' is not defined", s.Name)
	}
	var out Value
	if current.Kind() == KindMatrix && value.Kind() == KindMatrix {
		out, err = compoundMatrixValues(op, current, value)
	} else {
		out, err = arithmeticValues(op, current, value)
	}
	if err != nil {
		return exec.wrapError(err, s.Pos())
	}
	env.Assign(s.Name, out)
	return nil
}

// assignElement writes A[row, col] in place, so every binding that shares the
// matrix sees the change.
func (exec *Execution) assignElement(env *Env[Value], s *AssignStmt, value Value) error {
	if len(s.Subscript) != 2 {
		return exec.errorAt(s.Pos(), TypeError, "matrix subscript needs 2 indices, got %d", len(s.Subscript))
	}

	target, ok := env.Lookup(s.Name)
	if !ok {
		return exec.errorAt(s.Pos(), NameError, "name '%s' is not defined", s.Name)
	}
	m := target.Matrix()
	if m == nil {
		return exec.errorAt(s.Pos(), TypeError, "'%s' is %s, not a matrix", s.Name, target.Kind())
	}

	row, err := exec.evalInt(env, s.Subscript[0], "matrix index")
	if err != nil {
		return err
	}
	col, err := exec.evalInt(env, s.Subscript[1], "matrix index")
	if err != nil {
		return err
	}

	if op, compound := s.Op.Binary(); compound {
		current, err := m.At(row, col)
		if err != nil {
			return exec.wrapError(err, s.Subscript[0].Pos())
		}
		if value, err = arithmeticValues(op, current, value); err != nil {
			return exec.wrapError(err, s.Pos())
		}
	}

	if err := m.Set(row, col, value); err != nil {
		return exec.wrapError(err, s.Subscript[0].Pos())
	}
	return nil
}
