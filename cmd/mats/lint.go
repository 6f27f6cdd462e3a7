package main

import (
	"cmp"
	"slices"

	"github.com/mgomes/matscript/mats"
)

type lintWarning struct {
	Line    int    `yaml:"line"`
	Column  int    `yaml:"column"`
	Message string `yaml:"message"`
}

// lintProgram reports statements that can never run because an earlier
// statement in the same list always returns, breaks or continues.
func lintProgram(prog *mats.Statements) []lintWarning {
	warnings := make([]lintWarning, 0)
	if prog == nil {
		return warnings
	}
	lintStatements(prog.List, &warnings)

	slices.SortStableFunc(warnings, func(a, b lintWarning) int {
		return cmp.Or(cmp.Compare(a.Line, b.Line), cmp.Compare(a.Column, b.Column))
	})
	return warnings
}

func lintStatements(statements []mats.Statement, warnings *[]lintWarning) bool {
	terminated := false
	for _, stmt := range statements {
		if terminated {
			pos := stmt.Pos()
			*warnings = append(*warnings, lintWarning{
				Line:    pos.Line,
				Column:  pos.Column,
				Message: "unreachable statement",
			})
			continue
		}
		if statementTerminates(stmt, warnings) {
			terminated = true
		}
	}
	return terminated
}

func statementTerminates(stmt mats.Statement, warnings *[]lintWarning) bool {
	switch typed := stmt.(type) {
	case *mats.ReturnStmt, *mats.BreakStmt, *mats.ContinueStmt:
		return true
	case *mats.Statements:
		return lintStatements(typed.List, warnings)
	case *mats.IfStmt:
		thenTerminated := statementTerminates(typed.Then, warnings)
		if typed.Else == nil {
			return false
		}
		elseTerminated := statementTerminates(typed.Else, warnings)
		return thenTerminated && elseTerminated
	case *mats.WhileStmt:
		statementTerminates(typed.Body, warnings)
		return false
	case *mats.ForStmt:
		statementTerminates(typed.Body, warnings)
		return false
	default:
		return false
	}
}
