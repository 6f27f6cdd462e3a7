package mats

import (
	"fmt"
	"strings"
)

// ParseError reports a syntax error with the offending position.
type ParseError struct {
	Pos     Position
	Message string
	source  string
	atEOF   bool
}

func (e *ParseError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "parse error at %d:%d: %s", e.Pos.Line, e.Pos.Column, e.Message)
	if frame := formatCodeFrame(e.source, e.Pos); frame != "" {
		b.WriteString("\n")
		b.WriteString(frame)
	}
	return b.String()
}

// Diagnostic converts the parse error into a diagnostic record.
func (e *ParseError) Diagnostic() Diagnostic {
	return Diagnostic{Line: e.Pos.Line, Column: e.Pos.Column, Kind: SyntaxError, Message: e.Message}
}

func (p *parser) errorExpected(tok Token, expected string) {
	p.tokenError(tok, fmt.Sprintf("expected %s, got %s", expected, tokenLabel(tok)))
}

func (p *parser) errorUnexpected(tok Token) {
	p.tokenError(tok, fmt.Sprintf("unexpected %s", tokenLabel(tok)))
}

func (p *parser) tokenError(tok Token, msg string) {
	if p.halted {
		return
	}
	p.errors = append(p.errors, &ParseError{Pos: tok.Pos, Message: msg, source: p.l.input, atEOF: tok.Type == tokenEOF})
}

func (p *parser) addParseError(pos Position, msg string) {
	if p.halted {
		return
	}
	p.errors = append(p.errors, &ParseError{Pos: pos, Message: msg, source: p.l.input})
}

func tokenLabel(tok Token) string {
	switch tok.Type {
	case tokenIllegal:
		if tok.Literal == "unterminated string" {
			return tok.Literal
		}
		return fmt.Sprintf("invalid character %q", tok.Literal)
	case tokenEOF:
		return "end of input"
	case tokenIdent:
		return fmt.Sprintf("identifier %s", tok.Literal)
	case tokenInt:
		return "integer"
	case tokenFloat:
		return "float"
	case tokenString:
		return "string"
	case tokenIf, tokenElse, tokenFor, tokenWhile, tokenBreak, tokenContinue,
		tokenReturn, tokenEye, tokenZeros, tokenOnes, tokenPrint:
		return fmt.Sprintf("'%s'", strings.ToLower(string(tok.Type)))
	default:
		return fmt.Sprintf("%q", string(tok.Type))
	}
}
