package mats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lexAll(input string) []Token {
	l := newLexer(input)
	var out []Token
	for {
		tok := l.NextToken()
		out = append(out, tok)
		if tok.Type == tokenEOF {
			return out
		}
	}
}

func tokenTypes(toks []Token) []TokenType {
	types := make([]TokenType, len(toks))
	for i, tok := range toks {
		types[i] = tok.Type
	}
	return types
}

func TestLexerOperatorsAndNumbers(t *testing.T) {
	toks := lexAll(`A[0, 1] += 2.5; x = .5 ./ 1.; # trailing comment
print "hi\n";`)

	assert.Equal(t, []TokenType{
		tokenIdent, tokenLBracket, tokenInt, tokenComma, tokenInt, tokenRBracket, tokenAddAssign, tokenFloat, tokenSemicolon,
		tokenIdent, tokenAssign, tokenFloat, tokenDotSlash, tokenFloat, tokenSemicolon,
		tokenPrint, tokenString, tokenSemicolon,
		tokenEOF,
	}, tokenTypes(toks))

	assert.Equal(t, "2.5", toks[7].Literal)
	assert.Equal(t, ".5", toks[11].Literal)
	assert.Equal(t, "1.", toks[13].Literal)
	assert.Equal(t, "hi\n", toks[16].Literal)
}

func TestLexerDotOperatorAfterInteger(t *testing.T) {
	toks := lexAll(`1./x 2.*y 3.-z 4.+w`)
	assert.Equal(t, []TokenType{
		tokenInt, tokenDotSlash, tokenIdent,
		tokenInt, tokenDotAsterisk, tokenIdent,
		tokenInt, tokenDotMinus, tokenIdent,
		tokenInt, tokenDotPlus, tokenIdent,
		tokenEOF,
	}, tokenTypes(toks))
}

func TestLexerExponentsAndComparisons(t *testing.T) {
	toks := lexAll(`1e3 2.5E-2 a <= b != c == d >= e < f > g`)
	require.Len(t, toks, 16)
	assert.Equal(t, tokenFloat, toks[0].Type)
	assert.Equal(t, "1e3", toks[0].Literal)
	assert.Equal(t, "2.5E-2", toks[1].Literal)
	assert.Equal(t, []TokenType{tokenLTE, tokenNotEQ, tokenEQ, tokenGTE, tokenLT, tokenGT},
		[]TokenType{toks[3].Type, toks[5].Type, toks[7].Type, toks[9].Type, toks[11].Type, toks[13].Type})
}

func TestLexerKeywordsAndTranspose(t *testing.T) {
	toks := lexAll(`if else for while break continue return eye zeros ones print A'`)
	assert.Equal(t, []TokenType{
		tokenIf, tokenElse, tokenFor, tokenWhile, tokenBreak, tokenContinue, tokenReturn,
		tokenEye, tokenZeros, tokenOnes, tokenPrint, tokenIdent, tokenTranspose, tokenEOF,
	}, tokenTypes(toks))
}

func TestLexerPositions(t *testing.T) {
	toks := lexAll("x = 1;\n  yy = 2;")
	assert.Equal(t, Position{Line: 1, Column: 1}, toks[0].Pos)
	assert.Equal(t, Position{Line: 1, Column: 5}, toks[2].Pos)
	assert.Equal(t, Position{Line: 2, Column: 3}, toks[4].Pos)
	assert.Equal(t, Position{Line: 2, Column: 6}, toks[5].Pos)
}

func TestLexerIllegalInput(t *testing.T) {
	toks := lexAll(`"open`)
	require.Len(t, toks, 2)
	assert.Equal(t, tokenIllegal, toks[0].Type)
	assert.Equal(t, "unterminated string", toks[0].Literal)

	toks = lexAll(`x @ y`)
	assert.Equal(t, tokenIllegal, toks[1].Type)
	assert.Equal(t, "@", toks[1].Literal)
}
