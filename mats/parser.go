package mats

import (
	"fmt"
	"strconv"
)

type (
	prefixParseFn func() Expression
	infixParseFn  func(Expression) Expression
)

const defaultMaxDepth = 1000

type parser struct {
	l *lexer

	curToken  Token
	peekToken Token

	errors []error

	prefixFns map[TokenType]prefixParseFn
	infixFns  map[TokenType]infixParseFn

	depth    int
	maxDepth int
	halted   bool
}

func newParser(input string, maxDepth int) *parser {
	if maxDepth <= 0 {
		maxDepth = defaultMaxDepth
	}
	l := newLexer(input)
	p := &parser{l: l, maxDepth: maxDepth}

	p.prefixFns = make(map[TokenType]prefixParseFn)
	p.infixFns = make(map[TokenType]infixParseFn)

	p.registerPrefix(tokenIdent, p.parseIdentifier)
	p.registerPrefix(tokenInt, p.parseIntegerLiteral)
	p.registerPrefix(tokenFloat, p.parseFloatLiteral)
	p.registerPrefix(tokenString, p.parseStringLiteral)
	p.registerPrefix(tokenLParen, p.parseGroupedExpression)
	p.registerPrefix(tokenLBracket, p.parseMatrixLiteral)
	p.registerPrefix(tokenEye, p.parseSpecialMatrix)
	p.registerPrefix(tokenZeros, p.parseSpecialMatrix)
	p.registerPrefix(tokenOnes, p.parseSpecialMatrix)
	p.registerPrefix(tokenMinus, p.parsePrefixMinus)

	for tt := range binaryOperators {
		p.infixFns[tt] = p.parseInfixExpression
	}
	p.infixFns[tokenTranspose] = p.parseTranspose

	p.nextToken()
	p.nextToken()

	return p
}

func (p *parser) registerPrefix(tt TokenType, fn prefixParseFn) {
	p.prefixFns[tt] = fn
}

func (p *parser) nextToken() {
	p.curToken = p.peekToken
	if p.halted {
		p.peekToken = Token{Type: tokenEOF, Pos: p.curToken.Pos}
		return
	}
	p.peekToken = p.l.NextToken()
}

// ParseProgram parses the whole input. The returned tree is only meaningful
// when no errors are reported.
func (p *parser) ParseProgram() (*Statements, []error) {
	program := &Statements{Position: Position{Line: 1, Column: 1}}
	program.List = p.parseStatementList(tokenEOF)
	if p.curToken.Type != tokenEOF {
		p.errorUnexpected(p.curToken)
	}
	return program, p.errors
}

func (p *parser) expectPeek(tt TokenType) bool {
	if p.peekToken.Type == tt {
		p.nextToken()
		return true
	}
	p.errorExpected(p.peekToken, fmt.Sprintf("%q", string(tt)))
	return false
}

func (p *parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekToken.Type]; ok {
		return prec
	}
	return lowestPrec
}

func (p *parser) enter(pos Position) bool {
	p.depth++
	if p.depth > p.maxDepth {
		p.addParseError(pos, fmt.Sprintf("nesting exceeds limit of %d", p.maxDepth))
		p.halted = true
		return false
	}
	return true
}

func (p *parser) leave() {
	p.depth--
}

func (p *parser) parseExpression(precedence int) Expression {
	if !p.enter(p.curToken.Pos) {
		p.leave()
		return nil
	}
	defer p.leave()

	prefix := p.prefixFns[p.curToken.Type]
	if prefix == nil {
		p.errorUnexpected(p.curToken)
		return nil
	}

	left := prefix()
	if left == nil {
		return nil
	}

	for precedence < p.peekPrecedence() {
		infix := p.infixFns[p.peekToken.Type]
		if infix == nil {
			return left
		}
		p.nextToken()
		left = infix(left)
		if left == nil {
			return nil
		}
	}

	return left
}

func (p *parser) parseIdentifier() Expression {
	pos := p.curToken.Pos
	return &Variable{Position: pos, Value: &Identifier{Position: pos, Name: p.curToken.Literal}}
}

func (p *parser) parseIntegerLiteral() Expression {
	pos := p.curToken.Pos
	value, err := strconv.ParseInt(p.curToken.Literal, 10, 64)
	if err != nil {
		p.addParseError(pos, fmt.Sprintf("invalid integer literal %s", p.curToken.Literal))
		return nil
	}
	return &Variable{Position: pos, Value: &IntLiteral{Position: pos, Value: value}}
}

func (p *parser) parseFloatLiteral() Expression {
	pos := p.curToken.Pos
	value, err := strconv.ParseFloat(p.curToken.Literal, 64)
	if err != nil {
		p.addParseError(pos, fmt.Sprintf("invalid float literal %s", p.curToken.Literal))
		return nil
	}
	return &Variable{Position: pos, Value: &FloatLiteral{Position: pos, Value: value}}
}

func (p *parser) parseStringLiteral() Expression {
	pos := p.curToken.Pos
	return &Variable{Position: pos, Value: &StringLiteral{Position: pos, Value: p.curToken.Literal}}
}

func (p *parser) parseGroupedExpression() Expression {
	p.nextToken()
	expr := p.parseExpression(lowestPrec)
	if expr == nil {
		return nil
	}
	if !p.expectPeek(tokenRParen) {
		return nil
	}
	return expr
}

func (p *parser) parsePrefixMinus() Expression {
	pos := p.curToken.Pos
	p.nextToken()
	operand := p.parseExpression(precPrefix)
	if operand == nil {
		return nil
	}
	v := asVariable(operand)
	v.Minus++
	v.Position = pos
	return v
}

func (p *parser) parseTranspose(left Expression) Expression {
	v := asVariable(left)
	v.Trans++
	return v
}

func (p *parser) parseInfixExpression(left Expression) Expression {
	tok := p.curToken
	op := binaryOperators[tok.Type]
	precedence := precedences[tok.Type]

	p.nextToken()
	right := p.parseExpression(precedence)
	if right == nil {
		return nil
	}
	if op.IsRelational() && p.peekPrecedence() == precComparison {
		p.addParseError(p.peekToken.Pos, "comparison operators cannot be chained")
	}
	return &BinaryExpr{Position: tok.Pos, Left: left, Operator: op, Right: right}
}

// parseMatrixLiteral reads `[a, b; c, d]`. Rows are separated by `;` and a
// trailing separator is tolerated.
func (p *parser) parseMatrixLiteral() Expression {
	pos := p.curToken.Pos
	p.nextToken()

	var rows [][]Expression
	row := []Expression{}
	for {
		switch p.curToken.Type {
		case tokenRBracket:
			rows = append(rows, row)
			if len(rows) == 1 && len(row) == 0 {
				rows = nil
			}
			return &Variable{Position: pos, Value: &SimpleMatrix{Position: pos, Rows: rows}}
		case tokenSemicolon:
			rows = append(rows, row)
			row = []Expression{}
			p.nextToken()
			continue
		case tokenEOF:
			p.errorExpected(p.curToken, "']'")
			return nil
		}

		elem := p.parseExpression(lowestPrec)
		if elem == nil {
			return nil
		}
		row = append(row, elem)
		p.nextToken()
		switch p.curToken.Type {
		case tokenComma:
			p.nextToken()
		case tokenSemicolon, tokenRBracket:
		default:
			p.errorExpected(p.curToken, "',', ';' or ']'")
			return nil
		}
	}
}

func (p *parser) parseSpecialMatrix() Expression {
	pos := p.curToken.Pos
	var kind SpecialKind
	switch p.curToken.Type {
	case tokenEye:
		kind = SpecialEye
	case tokenZeros:
		kind = SpecialZeros
	default:
		kind = SpecialOnes
	}
	if !p.expectPeek(tokenLParen) {
		return nil
	}
	args, ok := p.parseExpressionList(tokenRParen)
	if !ok || !p.expectPeek(tokenRParen) {
		return nil
	}
	return &Variable{Position: pos, Value: &SpecialMatrix{Position: pos, Kind: kind, Args: args}}
}

// parseExpressionList parses a comma separated list that starts after the
// current token and stops before end. An empty list is allowed.
func (p *parser) parseExpressionList(end TokenType) ([]Expression, bool) {
	list := []Expression{}
	if p.peekToken.Type == end {
		return list, true
	}

	p.nextToken()
	expr := p.parseExpression(lowestPrec)
	if expr == nil {
		return nil, false
	}
	list = append(list, expr)

	for p.peekToken.Type == tokenComma {
		p.nextToken()
		p.nextToken()
		expr := p.parseExpression(lowestPrec)
		if expr == nil {
			return nil, false
		}
		list = append(list, expr)
	}
	return list, true
}

// asVariable returns expr as a Variable so minus and transpose counts can be
// attached, wrapping anything else in a ParenExpr.
func asVariable(expr Expression) *Variable {
	if v, ok := expr.(*Variable); ok {
		return v
	}
	pos := expr.Pos()
	return &Variable{Position: pos, Value: &ParenExpr{Position: pos, Expr: expr}}
}
