package mats

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatTree renders node as an indented tree, one node per line, each level
// prefixed by "|  ".
func FormatTree(node Node) string {
	var tp treePrinter
	tp.node(node, 0)
	return tp.b.String()
}

type treePrinter struct {
	b strings.Builder
}

func (tp *treePrinter) line(indent int, text string) {
	tp.b.WriteString(strings.Repeat("|  ", indent))
	tp.b.WriteString(text)
	tp.b.WriteByte('\n')
}

func (tp *treePrinter) node(node Node, indent int) {
	switch n := node.(type) {
	case *Statements:
		for _, stmt := range n.List {
			tp.node(stmt, indent)
		}
	case *IfStmt:
		tp.line(indent, "IF")
		tp.node(n.Condition, indent+1)
		tp.line(indent, "THEN")
		tp.node(n.Then, indent+1)
		if n.Else != nil {
			tp.line(indent, "ELSE")
			tp.node(n.Else, indent+1)
		}
	case *WhileStmt:
		tp.line(indent, "WHILE")
		tp.node(n.Condition, indent+1)
		tp.node(n.Body, indent+1)
	case *ForStmt:
		tp.line(indent, "FOR")
		tp.line(indent+1, n.Iterator)
		tp.line(indent+1, "RANGE")
		tp.node(n.Start, indent+2)
		tp.node(n.End, indent+2)
		tp.node(n.Body, indent+1)
	case *PrintStmt:
		tp.line(indent, "PRINT")
		for _, arg := range n.Args {
			tp.node(arg, indent+1)
		}
	case *AssignStmt:
		tp.line(indent, string(n.Op))
		if n.Subscript != nil {
			tp.line(indent+1, "REF")
			tp.line(indent+2, n.Name)
			for _, sub := range n.Subscript {
				tp.node(sub, indent+2)
			}
		} else {
			tp.line(indent+1, n.Name)
		}
		tp.node(n.Value, indent+1)
	case *BreakStmt:
		tp.line(indent, "BREAK")
	case *ContinueStmt:
		tp.line(indent, "CONTINUE")
	case *ReturnStmt:
		tp.line(indent, "RETURN")
		for _, v := range n.Values {
			tp.node(v, indent+1)
		}
	case *BinaryExpr:
		tp.line(indent, string(n.Operator))
		tp.node(n.Left, indent+1)
		tp.node(n.Right, indent+1)
	case *Variable:
		for range n.Minus {
			tp.line(indent, "MINUS")
			indent++
		}
		for range n.Trans {
			tp.line(indent, "TRANSPOSE")
			indent++
		}
		tp.node(n.Value, indent)
	case *Identifier:
		tp.line(indent, n.Name)
	case *IntLiteral:
		tp.line(indent, strconv.FormatInt(n.Value, 10))
	case *FloatLiteral:
		tp.line(indent, formatFloat(n.Value))
	case *StringLiteral:
		tp.line(indent, strconv.Quote(n.Value))
	case *ParenExpr:
		tp.node(n.Expr, indent)
	case *SpecialMatrix:
		tp.line(indent, strings.ToUpper(string(n.Kind)))
		for _, arg := range n.Args {
			tp.node(arg, indent+1)
		}
	case *SimpleMatrix:
		tp.line(indent, "VECTOR")
		for _, row := range n.Rows {
			tp.line(indent+1, "VECTOR")
			for _, elem := range row {
				tp.node(elem, indent+2)
			}
		}
	default:
		tp.line(indent, fmt.Sprintf("<%T>", node))
	}
}
