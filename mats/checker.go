package mats

import "fmt"

// Checker is the static type and shape checker. It walks the tree once,
// recording a diagnostic for every problem it finds, and never stops early.
type Checker struct {
	env      *Env[Type]
	diags    []Diagnostic
	depth    int
	maxDepth int
	// persistent checkers keep globals between Check calls.
	persistent bool
}

// NewChecker returns a checker whose every Check starts from an empty global
// scope.
func NewChecker(maxDepth int) *Checker {
	return newCheckerWithEnv(NewEnv[Type](), maxDepth)
}

// newSessionChecker checks against globals that outlive a single program.
func newSessionChecker(env *Env[Type], maxDepth int) *Checker {
	c := newCheckerWithEnv(env, maxDepth)
	c.persistent = true
	return c
}

func newCheckerWithEnv(env *Env[Type], maxDepth int) *Checker {
	if maxDepth <= 0 {
		maxDepth = defaultMaxDepth
	}
	return &Checker{env: env, maxDepth: maxDepth}
}

// Check returns the diagnostics for prog in traversal order.
func (c *Checker) Check(prog *Statements) []Diagnostic {
	c.diags = nil
	c.depth = 0
	if !c.persistent {
		c.env = NewEnv[Type]()
	}
	if prog != nil {
		for _, stmt := range prog.List {
			c.checkStatement(stmt)
		}
	}
	c.env.Reset()
	return c.diags
}

// Globals returns the static types of the global bindings left by the last
// Check.
func (c *Checker) Globals() map[string]Type {
	names := c.env.Names()
	out := make(map[string]Type, len(names))
	for _, name := range names {
		t, _ := c.env.Lookup(name)
		out[name] = t
	}
	return out
}

func (c *Checker) report(node Node, kind ErrorKind, format string, args ...any) {
	pos := node.Pos()
	c.diags = append(c.diags, Diagnostic{
		Line:    pos.Line,
		Column:  pos.Column,
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	})
}

func (c *Checker) enter(node Node) bool {
	c.depth++
	if c.depth > c.maxDepth {
		c.report(node, NestingError, "nesting exceeds limit of %d", c.maxDepth)
		return false
	}
	return true
}

func (c *Checker) leave() {
	c.depth--
}

func (c *Checker) checkStatement(stmt Statement) {
	ok := c.enter(stmt)
	defer c.leave()
	if !ok {
		return
	}

	switch s := stmt.(type) {
	case *Statements:
		if s.Block {
			c.env.Enter(ScopeLocal)
			defer c.env.Exit()
		}
		for _, inner := range s.List {
			c.checkStatement(inner)
		}
	case *IfStmt:
		c.expectBool(s.Condition, "if")
		c.checkScoped(ScopeLocal, s.Then)
		if s.Else != nil {
			c.checkScoped(ScopeLocal, s.Else)
		}
	case *WhileStmt:
		c.expectBool(s.Condition, "while")
		c.checkScoped(ScopeLoop, s.Body)
	case *ForStmt:
		c.expectInt(s.Start, "for loop start")
		c.expectInt(s.End, "for loop end")
		c.env.Enter(ScopeLoop)
		c.env.Bind(s.Iterator, intType)
		c.checkStatement(s.Body)
		c.env.Exit()
	case *PrintStmt:
		for _, arg := range s.Args {
			c.exprType(arg)
		}
	case *AssignStmt:
		c.checkAssign(s)
	case *BreakStmt:
		if !c.env.InLoop() {
			c.report(s, ScopeError, "break outside loop")
		}
	case *ContinueStmt:
		if !c.env.InLoop() {
			c.report(s, ScopeError, "continue outside loop")
		}
	case *ReturnStmt:
		if len(s.Values) != 1 {
			c.report(s, TypeError, "return expects exactly one value, got %d", len(s.Values))
			for _, v := range s.Values {
				c.exprType(v)
			}
			return
		}
		c.expectInt(s.Values[0], "return value")
	default:
		c.report(stmt, TypeError, "unsupported statement %T", stmt)
	}
}

func (c *Checker) checkScoped(kind ScopeKind, stmt Statement) {
	c.env.Enter(kind)
	defer c.env.Exit()
	c.checkStatement(stmt)
}

func (c *Checker) expectBool(expr Expression, what string) {
	t := c.exprType(expr)
	if !t.IsUnknown() && t.Kind != TypeBool {
		c.report(expr, TypeError, "%s condition must be bool, got %s", what, t)
	}
}

func (c *Checker) expectInt(expr Expression, what string) {
	t := c.exprType(expr)
	if !t.IsUnknown() && t.Kind != TypeInt {
		c.report(expr, TypeError, "%s must be int, got %s", what, t)
	}
}

func (c *Checker) checkAssign(s *AssignStmt) {
	value := c.exprType(s.Value)

	if s.Subscript != nil {
		c.checkElementAssign(s, value)
		return
	}

	if s.Op == AssignSet {
		c.env.Assign(s.Name, value)
		return
	}

	current, ok := c.env.Lookup(s.Name)
	if !ok {
		c.report(s, NameError, "name '%s' is not defined", s.Name)
		return
	}
	if current.IsUnknown() || value.IsUnknown() {
		return
	}

	op, _ := s.Op.Binary()
	switch {
	case current.IsNumeric() && value.IsNumeric():
		c.env.Assign(s.Name, numericResult(current, value))
	case current.IsMatrix() && value.IsMatrix() && (op == OpAdd || op == OpSub):
		if !current.sameShape(value) {
			c.report(s, TypeError, "unsupported operand types for %s: %s and %s", s.Op, current, value)
			return
		}
		c.env.Assign(s.Name, elementwiseResult(op, current, value))
	default:
		c.report(s, TypeError, "unsupported operand types for %s: %s and %s", s.Op, current, value)
	}
}

func (c *Checker) checkElementAssign(s *AssignStmt, value Type) {
	if len(s.Subscript) != 2 {
		c.report(s, TypeError, "matrix subscript needs 2 indices, got %d", len(s.Subscript))
		for _, sub := range s.Subscript {
			c.exprType(sub)
		}
		return
	}

	target, ok := c.env.Lookup(s.Name)
	if !ok {
		c.report(s, NameError, "name '%s' is not defined", s.Name)
	} else if !target.IsUnknown() && !target.IsMatrix() {
		c.report(s, TypeError, "'%s' is %s, not a matrix", s.Name, target)
		target = unknownType
	}

	dims := [2]int{target.Rows, target.Cols}
	labels := [2]string{"row", "column"}
	for i, sub := range s.Subscript {
		t := c.exprType(sub)
		if !t.IsUnknown() && t.Kind != TypeInt {
			c.report(sub, TypeError, "matrix index must be int, got %s", t)
			continue
		}
		idx, literal := literalInt(sub)
		if !literal {
			continue
		}
		if idx < 0 {
			c.report(sub, ValueError, "%s index %d is negative", labels[i], idx)
		} else if target.KnownShape() && idx >= int64(dims[i]) {
			c.report(sub, ValueError, "%s index %d out of range for %s", labels[i], idx, target)
		}
	}

	if !value.IsUnknown() && !value.IsNumeric() {
		c.report(s.Value, TypeError, "matrix element must be int or float, got %s", value)
		return
	}
	if ok && target.IsMatrix() && value.Kind == TypeFloat && target.Elem == TypeInt {
		target.Elem = TypeFloat
		c.env.Assign(s.Name, target)
	}
}

// literalInt reports the value of an integer literal, optionally negated.
func literalInt(expr Expression) (int64, bool) {
	v, ok := expr.(*Variable)
	if !ok || v.Trans%2 != 0 {
		return 0, false
	}
	lit, ok := v.Value.(*IntLiteral)
	if !ok {
		return 0, false
	}
	if v.Minus%2 != 0 {
		return -lit.Value, true
	}
	return lit.Value, true
}
