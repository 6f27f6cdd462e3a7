package mats

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a diagnostic or runtime fault.
type ErrorKind string

const (
	SyntaxError       ErrorKind = "SyntaxError"
	NameError         ErrorKind = "NameError"
	TypeError         ErrorKind = "TypeError"
	ValueError        ErrorKind = "ValueError"
	ScopeError        ErrorKind = "ScopeError"
	NestingError      ErrorKind = "NestingError"
	ZeroDivisionError ErrorKind = "ZeroDivisionError"
	IndexError        ErrorKind = "IndexError"
	LimitError        ErrorKind = "LimitError"
)

// Diagnostic is a single problem found before or while running a program.
type Diagnostic struct {
	Line    int       `yaml:"line"`
	Column  int       `yaml:"column"`
	Kind    ErrorKind `yaml:"kind"`
	Message string    `yaml:"message"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%d:%d: %s: %s", d.Line, d.Column, d.Kind, d.Message)
}

// Pos reports where the diagnostic applies.
func (d Diagnostic) Pos() Position {
	return Position{Line: d.Line, Column: d.Column}
}

// ParseDiagnostics flattens the error returned by Engine.Parse into
// diagnostics. Errors that are not syntax errors are dropped.
func ParseDiagnostics(err error) []Diagnostic {
	var diags []Diagnostic
	var walk func(error)
	walk = func(err error) {
		if joined, ok := err.(interface{ Unwrap() []error }); ok {
			for _, inner := range joined.Unwrap() {
				walk(inner)
			}
			return
		}
		var pe *ParseError
		if errors.As(err, &pe) {
			diags = append(diags, pe.Diagnostic())
		}
	}
	if err != nil {
		walk(err)
	}
	return diags
}
