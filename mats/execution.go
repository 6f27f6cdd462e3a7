package mats

import (
	"context"
	"io"
	"strings"
)

type flowKind int

const (
	flowNormal flowKind = iota
	flowBreak
	flowContinue
	flowReturn
)

// flow tells the enclosing statement how control leaves a statement. Only
// flowReturn carries a value.
type flow struct {
	kind  flowKind
	value Value
}

var normalFlow = flow{kind: flowNormal}

// Execution holds the state of a single run. The variable environment is
// passed explicitly to every evaluation call.
type Execution struct {
	ctx      context.Context
	out      io.Writer
	source   string
	quota    int
	steps    int
	depth    int
	maxDepth int
	lastPos  Position
}

func (exec *Execution) enter(node Node) error {
	exec.depth++
	if exec.depth > exec.maxDepth {
		return exec.errorAt(node.Pos(), NestingError, "nesting exceeds limit of %d", exec.maxDepth)
	}
	return nil
}

func (exec *Execution) leave() {
	exec.depth--
}

// runProgram executes the top-level statements of prog in env.
func (exec *Execution) runProgram(env *Env[Value], prog *Statements) (flow, error) {
	for _, stmt := range prog.List {
		f, err := exec.execStatement(env, stmt)
		if err != nil {
			return flow{}, err
		}
		switch f.kind {
		case flowReturn:
			return f, nil
		case flowBreak, flowContinue:
			return flow{}, exec.errorAt(stmt.Pos(), ScopeError, "%s outside loop", flowName(f.kind))
		}
	}
	return normalFlow, nil
}

func flowName(kind flowKind) string {
	if kind == flowBreak {
		return "break"
	}
	return "continue"
}

func (exec *Execution) writeLine(values []Value) error {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = v.String()
	}
	_, err := io.WriteString(exec.out, strings.Join(parts, " ")+"\n")
	return err
}
