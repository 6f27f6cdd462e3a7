package mats

import "fmt"

func (exec *Execution) execStatement(env *Env[Value], stmt Statement) (flow, error) {
	if err := exec.enter(stmt); err != nil {
		exec.leave()
		return flow{}, err
	}
	defer exec.leave()

	exec.lastPos = stmt.Pos()
	if err := exec.step(); err != nil {
		return flow{}, err
	}

	switch s := stmt.(type) {
	case *Statements:
		return exec.execStatements(env, s)
	case *IfStmt:
		return exec.execIf(env, s)
	case *WhileStmt:
		return exec.execWhile(env, s)
	case *ForStmt:
		return exec.execFor(env, s)
	case *PrintStmt:
		return exec.execPrint(env, s)
	case *AssignStmt:
		return normalFlow, exec.execAssign(env, s)
	case *BreakStmt:
		return flow{kind: flowBreak}, nil
	case *ContinueStmt:
		return flow{kind: flowContinue}, nil
	case *ReturnStmt:
		return exec.execReturn(env, s)
	default:
		return flow{}, exec.errorAt(stmt.Pos(), TypeError, "unsupported statement %T", stmt)
	}
}

func (exec *Execution) execStatements(env *Env[Value], s *Statements) (flow, error) {
	if s.Block {
		env.Enter(ScopeLocal)
		defer env.Exit()
	}
	for _, stmt := range s.List {
		f, err := exec.execStatement(env, stmt)
		if err != nil || f.kind != flowNormal {
			return f, err
		}
	}
	return normalFlow, nil
}

func (exec *Execution) execScoped(env *Env[Value], kind ScopeKind, stmt Statement) (flow, error) {
	env.Enter(kind)
	defer env.Exit()
	return exec.execStatement(env, stmt)
}

func (exec *Execution) execIf(env *Env[Value], s *IfStmt) (flow, error) {
	cond, err := exec.evalCondition(env, s.Condition, "if")
	if err != nil {
		return flow{}, err
	}
	if cond {
		return exec.execScoped(env, ScopeLocal, s.Then)
	}
	if s.Else != nil {
		return exec.execScoped(env, ScopeLocal, s.Else)
	}
	return normalFlow, nil
}

func (exec *Execution) execWhile(env *Env[Value], s *WhileStmt) (flow, error) {
	env.Enter(ScopeLoop)
	defer env.Exit()

	for {
		cond, err := exec.evalCondition(env, s.Condition, "while")
		if err != nil {
			return flow{}, err
		}
		if !cond {
			return normalFlow, nil
		}
		f, err := exec.execStatement(env, s.Body)
		if err != nil {
			return flow{}, err
		}
		switch f.kind {
		case flowBreak:
			return normalFlow, nil
		case flowReturn:
			return f, nil
		}
	}
}

// execFor runs the body while the iterator is below the end bound. Both
// bounds are evaluated once; the iterator advances from its current value, so
// a body that reassigns it steers the loop.
func (exec *Execution) execFor(env *Env[Value], s *ForStmt) (flow, error) {
	start, err := exec.evalInt(env, s.Start, "for loop start")
	if err != nil {
		return flow{}, err
	}
	end, err := exec.evalInt(env, s.End, "for loop end")
	if err != nil {
		return flow{}, err
	}

	env.Enter(ScopeLoop)
	defer env.Exit()
	env.Bind(s.Iterator, NewInt(start))

	for {
		current, err := exec.iteratorValue(env, s)
		if err != nil {
			return flow{}, err
		}
		if current >= end {
			return normalFlow, nil
		}

		f, err := exec.execStatement(env, s.Body)
		if err != nil {
			return flow{}, err
		}
		switch f.kind {
		case flowBreak:
			return normalFlow, nil
		case flowReturn:
			return f, nil
		}

		current, err = exec.iteratorValue(env, s)
		if err != nil {
			return flow{}, err
		}
		env.Assign(s.Iterator, NewInt(current+1))
	}
}

func (exec *Execution) iteratorValue(env *Env[Value], s *ForStmt) (int64, error) {
	v, ok := env.Lookup(s.Iterator)
	if !ok || v.Kind() != KindInt {
		return 0, exec.errorAt(s.Pos(), TypeError, "for loop variable '%s' must stay int, got %s", s.Iterator, v.Kind())
	}
	return v.Int(), nil
}

func (exec *Execution) execPrint(env *Env[Value], s *PrintStmt) (flow, error) {
	values := make([]Value, 0, len(s.Args))
	for _, arg := range s.Args {
		v, err := exec.evalExpr(env, arg)
		if err != nil {
			return flow{}, err
		}
		values = append(values, v)
	}
	if err := exec.writeLine(values); err != nil {
		return flow{}, fmt.Errorf("print: %w", err)
	}
	return normalFlow, nil
}

func (exec *Execution) execReturn(env *Env[Value], s *ReturnStmt) (flow, error) {
	if len(s.Values) != 1 {
		return flow{}, exec.errorAt(s.Pos(), TypeError, "return expects exactly one value, got %d", len(s.Values))
	}
	v, err := exec.evalInt(env, s.Values[0], "return value")
	if err != nil {
		return flow{}, err
	}
	return flow{kind: flowReturn, value: NewInt(v)}, nil
}

func (exec *Execution) evalCondition(env *Env[Value], expr Expression, what string) (bool, error) {
	v, err := exec.evalExpr(env, expr)
	if err != nil {
		return false, err
	}
	if v.Kind() != KindBool {
		return false, exec.errorAt(expr.Pos(), TypeError, "%s condition must be bool, got %s", what, v.Kind())
	}
	return v.Bool(), nil
}

func (exec *Execution) evalInt(env *Env[Value], expr Expression, what string) (int64, error) {
	v, err := exec.evalExpr(env, expr)
	if err != nil {
		return 0, err
	}
	if v.Kind() != KindInt {
		return 0, exec.errorAt(expr.Pos(), TypeError, "%s must be int, got %s", what, v.Kind())
	}
	return v.Int(), nil
}
