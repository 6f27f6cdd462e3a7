package mats

import (
	"errors"
	"fmt"
	"strings"
)

// RuntimeError is a fatal fault raised while running a program.
type RuntimeError struct {
	Kind      ErrorKind
	Message   string
	Pos       Position
	CodeFrame string
}

func (re *RuntimeError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", re.Kind, re.Message)
	if re.CodeFrame != "" {
		b.WriteString("\n")
		b.WriteString(re.CodeFrame)
	}
	return b.String()
}

// Diagnostic converts the fault into a diagnostic record.
func (re *RuntimeError) Diagnostic() Diagnostic {
	return Diagnostic{Line: re.Pos.Line, Column: re.Pos.Column, Kind: re.Kind, Message: re.Message}
}

func (exec *Execution) step() error {
	exec.steps++
	if exec.quota > 0 && exec.steps > exec.quota {
		return exec.errorAt(exec.lastPos, LimitError, "step quota exceeded (%d)", exec.quota)
	}
	if exec.ctx != nil {
		select {
		case <-exec.ctx.Done():
			return exec.ctx.Err()
		default:
		}
	}
	return nil
}

func (exec *Execution) errorAt(pos Position, kind ErrorKind, format string, args ...any) error {
	return &RuntimeError{
		Kind:      kind,
		Message:   fmt.Sprintf(format, args...),
		Pos:       pos,
		CodeFrame: formatCodeFrame(exec.source, pos),
	}
}

// wrapError turns an error from the value layer into a RuntimeError at pos.
func (exec *Execution) wrapError(err error, pos Position) error {
	if err == nil {
		return nil
	}
	var re *RuntimeError
	if errors.As(err, &re) {
		return err
	}
	return exec.errorAt(pos, classifyError(err), "%s", err.Error())
}

func classifyError(err error) ErrorKind {
	switch {
	case errors.Is(err, errDivisionByZero):
		return ZeroDivisionError
	case errors.Is(err, errIndexOutOfRange):
		return IndexError
	default:
		return TypeError
	}
}
