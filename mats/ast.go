package mats

type Node interface {
	Pos() Position
}

type Statement interface {
	Node
	stmtNode()
}

type Expression interface {
	Node
	exprNode()
}

// Operand is what a Variable wraps: a name, a literal or a matrix literal.
type Operand interface {
	Node
	operandNode()
}

// Statements is an ordered statement list. Block marks a `{...}` block, which
// opens its own scope; the program root and synthesized lists are flat.
type Statements struct {
	Position
	List  []Statement
	Block bool
}

func (s *Statements) stmtNode() {}

type IfStmt struct {
	Position
	Condition Expression
	Then      Statement
	Else      Statement
}

func (s *IfStmt) stmtNode() {}

type WhileStmt struct {
	Position
	Condition Expression
	Body      Statement
}

func (s *WhileStmt) stmtNode() {}

type ForStmt struct {
	Position
	Iterator string
	Start    Expression
	End      Expression
	Body     Statement
}

func (s *ForStmt) stmtNode() {}

type PrintStmt struct {
	Position
	Args []Expression
}

func (s *PrintStmt) stmtNode() {}

// AssignStmt assigns to Name, or to the element Name[Subscript[0], Subscript[1]]
// when Subscript is non-nil.
type AssignStmt struct {
	Position
	Name      string
	Op        AssignOp
	Value     Expression
	Subscript []Expression
}

func (s *AssignStmt) stmtNode() {}

type BreakStmt struct {
	Position
}

func (s *BreakStmt) stmtNode() {}

type ContinueStmt struct {
	Position
}

func (s *ContinueStmt) stmtNode() {}

type ReturnStmt struct {
	Position
	Values []Expression
}

func (s *ReturnStmt) stmtNode() {}

type BinaryExpr struct {
	Position
	Left     Expression
	Operator Operator
	Right    Expression
}

func (e *BinaryExpr) exprNode() {}

// Variable applies unary minus Minus times and transpose Trans times (each
// counted mod 2) to its operand.
type Variable struct {
	Position
	Value Operand
	Minus int
	Trans int
}

func (e *Variable) exprNode() {}

type Identifier struct {
	Position
	Name string
}

func (o *Identifier) operandNode() {}

type IntLiteral struct {
	Position
	Value int64
}

func (o *IntLiteral) operandNode() {}

type FloatLiteral struct {
	Position
	Value float64
}

func (o *FloatLiteral) operandNode() {}

type StringLiteral struct {
	Position
	Value string
}

func (o *StringLiteral) operandNode() {}

// SpecialMatrix is eye(n), zeros(n) or ones(n). Args keeps every argument the
// parser saw so arity is checked statically.
type SpecialMatrix struct {
	Position
	Kind SpecialKind
	Args []Expression
}

func (o *SpecialMatrix) operandNode() {}

type SimpleMatrix struct {
	Position
	Rows [][]Expression
}

func (o *SimpleMatrix) operandNode() {}

// ParenExpr carries a parenthesised expression that is negated or transposed.
type ParenExpr struct {
	Position
	Expr Expression
}

func (o *ParenExpr) operandNode() {}

type SpecialKind string

const (
	SpecialEye   SpecialKind = "eye"
	SpecialZeros SpecialKind = "zeros"
	SpecialOnes  SpecialKind = "ones"
)

// Operator is a binary operator.
type Operator string

const (
	OpAdd Operator = "+"
	OpSub Operator = "-"
	OpMul Operator = "*"
	OpDiv Operator = "/"

	OpLT  Operator = "<"
	OpGT  Operator = ">"
	OpLTE Operator = "<="
	OpGTE Operator = ">="
	OpEQ  Operator = "=="
	OpNE  Operator = "!="

	OpDotAdd Operator = ".+"
	OpDotSub Operator = ".-"
	OpDotMul Operator = ".*"
	OpDotDiv Operator = "./"
)

func (op Operator) IsArithmetic() bool {
	switch op {
	case OpAdd, OpSub, OpMul, OpDiv:
		return true
	}
	return false
}

func (op Operator) IsRelational() bool {
	switch op {
	case OpLT, OpGT, OpLTE, OpGTE, OpEQ, OpNE:
		return true
	}
	return false
}

func (op Operator) IsElementwise() bool {
	switch op {
	case OpDotAdd, OpDotSub, OpDotMul, OpDotDiv:
		return true
	}
	return false
}

// AssignOp is `=` or one of the compound assignment operators.
type AssignOp string

const (
	AssignSet AssignOp = "="
	AssignAdd AssignOp = "+="
	AssignSub AssignOp = "-="
	AssignMul AssignOp = "*="
	AssignDiv AssignOp = "/="
)

// Binary returns the arithmetic operator a compound assignment applies. It
// reports false for plain `=`.
func (op AssignOp) Binary() (Operator, bool) {
	switch op {
	case AssignAdd:
		return OpAdd, true
	case AssignSub:
		return OpSub, true
	case AssignMul:
		return OpMul, true
	case AssignDiv:
		return OpDiv, true
	}
	return "", false
}

// Flatten returns the literal's rows with nested matrix literals expanded:
// a row made only of bare matrix literals contributes their rows instead.
func (m *SimpleMatrix) Flatten() [][]Expression {
	var rows [][]Expression
	for _, row := range m.Rows {
		nested := nestedLiterals(row)
		if nested == nil {
			rows = append(rows, row)
			continue
		}
		for _, inner := range nested {
			rows = append(rows, inner.Flatten()...)
		}
	}
	return rows
}

func nestedLiterals(row []Expression) []*SimpleMatrix {
	if len(row) == 0 {
		return nil
	}
	out := make([]*SimpleMatrix, 0, len(row))
	for _, elem := range row {
		v, ok := elem.(*Variable)
		if !ok || v.Minus != 0 || v.Trans != 0 {
			return nil
		}
		inner, ok := v.Value.(*SimpleMatrix)
		if !ok {
			return nil
		}
		out = append(out, inner)
	}
	return out
}
