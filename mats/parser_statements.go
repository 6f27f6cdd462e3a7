package mats

// parseStatementList parses statements until stop or end of input. On return
// curToken is stop (or EOF).
func (p *parser) parseStatementList(stop TokenType) []Statement {
	list := []Statement{}
	for p.curToken.Type != stop && p.curToken.Type != tokenEOF {
		var stmt Statement
		if p.curToken.Type == tokenLBrace {
			stmt = p.parseBraceBlock()
		} else {
			stmt = p.parseStatement()
		}
		switch s := stmt.(type) {
		case nil:
			p.synchronize()
		case *Statements:
			if s.Block {
				list = append(list, s)
			} else {
				list = append(list, s.List...)
			}
		default:
			list = append(list, s)
		}
		p.nextToken()
	}
	return list
}

// synchronize skips to the end of the broken statement so parsing can resume
// with the next one.
func (p *parser) synchronize() {
	for p.curToken.Type != tokenSemicolon && p.curToken.Type != tokenEOF {
		if p.peekToken.Type == tokenRBrace || p.peekToken.Type == tokenEOF {
			return
		}
		p.nextToken()
	}
}

func (p *parser) parseBraceBlock() Statement {
	pos := p.curToken.Pos
	if !p.enter(pos) {
		p.leave()
		return nil
	}
	defer p.leave()

	p.nextToken()
	list := p.parseStatementList(tokenRBrace)
	if p.curToken.Type != tokenRBrace {
		p.errorExpected(p.curToken, "'}'")
		return nil
	}
	return &Statements{Position: pos, List: list, Block: true}
}

// parseBody parses the body of if, while and for: a braced block or a single
// statement.
func (p *parser) parseBody() Statement {
	if p.curToken.Type == tokenLBrace {
		return p.parseBraceBlock()
	}
	if !p.enter(p.curToken.Pos) {
		p.leave()
		return nil
	}
	defer p.leave()
	return p.parseStatement()
}

func (p *parser) parseStatement() Statement {
	switch p.curToken.Type {
	case tokenIf:
		return p.parseIfStatement()
	case tokenWhile:
		return p.parseWhileStatement()
	case tokenFor:
		return p.parseForStatement()
	case tokenPrint:
		return p.parsePrintStatement()
	case tokenBreak:
		pos := p.curToken.Pos
		if !p.expectPeek(tokenSemicolon) {
			return nil
		}
		return &BreakStmt{Position: pos}
	case tokenContinue:
		pos := p.curToken.Pos
		if !p.expectPeek(tokenSemicolon) {
			return nil
		}
		return &ContinueStmt{Position: pos}
	case tokenReturn:
		return p.parseReturnStatement()
	case tokenIdent:
		return p.parseAssignments()
	default:
		p.errorUnexpected(p.curToken)
		return nil
	}
}

func (p *parser) parseIfStatement() Statement {
	stmt := &IfStmt{Position: p.curToken.Pos}

	p.nextToken()
	stmt.Condition = p.parseExpression(lowestPrec)
	if stmt.Condition == nil {
		return nil
	}

	p.nextToken()
	stmt.Then = p.parseBody()
	if stmt.Then == nil {
		return nil
	}

	if p.peekToken.Type == tokenElse {
		p.nextToken()
		p.nextToken()
		stmt.Else = p.parseBody()
		if stmt.Else == nil {
			return nil
		}
	}
	return stmt
}

func (p *parser) parseWhileStatement() Statement {
	stmt := &WhileStmt{Position: p.curToken.Pos}

	p.nextToken()
	stmt.Condition = p.parseExpression(lowestPrec)
	if stmt.Condition == nil {
		return nil
	}

	p.nextToken()
	stmt.Body = p.parseBody()
	if stmt.Body == nil {
		return nil
	}
	return stmt
}

func (p *parser) parseForStatement() Statement {
	stmt := &ForStmt{Position: p.curToken.Pos}

	if !p.expectPeek(tokenIdent) {
		return nil
	}
	stmt.Iterator = p.curToken.Literal

	if !p.expectPeek(tokenAssign) {
		return nil
	}
	p.nextToken()
	stmt.Start = p.parseExpression(lowestPrec)
	if stmt.Start == nil {
		return nil
	}

	if !p.expectPeek(tokenColon) {
		return nil
	}
	p.nextToken()
	stmt.End = p.parseExpression(lowestPrec)
	if stmt.End == nil {
		return nil
	}

	p.nextToken()
	stmt.Body = p.parseBody()
	if stmt.Body == nil {
		return nil
	}
	return stmt
}

func (p *parser) parsePrintStatement() Statement {
	stmt := &PrintStmt{Position: p.curToken.Pos}
	args, ok := p.parseExpressionList(tokenSemicolon)
	if !ok || !p.expectPeek(tokenSemicolon) {
		return nil
	}
	stmt.Args = args
	return stmt
}

func (p *parser) parseReturnStatement() Statement {
	stmt := &ReturnStmt{Position: p.curToken.Pos}
	values, ok := p.parseExpressionList(tokenSemicolon)
	if !ok || !p.expectPeek(tokenSemicolon) {
		return nil
	}
	stmt.Values = values
	return stmt
}

// parseAssignments handles `a = 1, b[0, 1] += 2;`. More than one assignment
// comes back as a flat Statements list.
func (p *parser) parseAssignments() Statement {
	var assigns []Statement
	for {
		assign := p.parseAssignment()
		if assign == nil {
			return nil
		}
		assigns = append(assigns, assign)
		if p.peekToken.Type != tokenComma {
			break
		}
		p.nextToken()
		if !p.expectPeek(tokenIdent) {
			return nil
		}
	}
	if !p.expectPeek(tokenSemicolon) {
		return nil
	}
	if len(assigns) == 1 {
		return assigns[0]
	}
	return &Statements{Position: assigns[0].Pos(), List: assigns}
}

func (p *parser) parseAssignment() *AssignStmt {
	stmt := &AssignStmt{Position: p.curToken.Pos, Name: p.curToken.Literal}

	if p.peekToken.Type == tokenLBracket {
		p.nextToken()
		subs, ok := p.parseExpressionList(tokenRBracket)
		if !ok || !p.expectPeek(tokenRBracket) {
			return nil
		}
		stmt.Subscript = subs
	}

	op, ok := assignOperators[p.peekToken.Type]
	if !ok {
		p.errorExpected(p.peekToken, "assignment operator")
		return nil
	}
	p.nextToken()
	stmt.Op = op

	p.nextToken()
	stmt.Value = p.parseExpression(lowestPrec)
	if stmt.Value == nil {
		return nil
	}
	return stmt
}
