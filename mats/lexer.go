package mats

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type lexer struct {
	input string

	offset int
	width  int

	line   int
	column int

	ch rune
}

func newLexer(input string) *lexer {
	l := &lexer{input: input, line: 1, column: 0}
	l.readRune()
	return l
}

func (l *lexer) readRune() {
	if l.offset >= len(l.input) {
		l.width = 0
		l.ch = 0
		return
	}

	r, w := utf8.DecodeRuneInString(l.input[l.offset:])
	l.width = w
	l.offset += w

	if l.ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}

	l.ch = r
}

func (l *lexer) peekRune() rune {
	if l.offset >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.offset:])
	return r
}

func (l *lexer) peekRuneN(n int) rune {
	idx := l.offset
	var r rune
	var w int
	for i := 0; i <= n; i++ {
		if idx >= len(l.input) {
			return 0
		}
		r, w = utf8.DecodeRuneInString(l.input[idx:])
		if i == n {
			return r
		}
		idx += w
	}
	return 0
}

// NextToken scans the next token. At end of input it keeps returning EOF.
func (l *lexer) NextToken() Token {
	l.skipWhitespaceAndComments()

	tok := Token{Pos: Position{Line: l.line, Column: l.column}}

	switch l.ch {
	case 0:
		tok.Type = tokenEOF
	case '+':
		l.oneOrTwo(&tok, tokenPlus, '=', tokenAddAssign)
	case '-':
		l.oneOrTwo(&tok, tokenMinus, '=', tokenSubAssign)
	case '*':
		l.oneOrTwo(&tok, tokenAsterisk, '=', tokenMulAssign)
	case '/':
		l.oneOrTwo(&tok, tokenSlash, '=', tokenDivAssign)
	case '=':
		l.oneOrTwo(&tok, tokenAssign, '=', tokenEQ)
	case '<':
		l.oneOrTwo(&tok, tokenLT, '=', tokenLTE)
	case '>':
		l.oneOrTwo(&tok, tokenGT, '=', tokenGTE)
	case '!':
		if l.peekRune() == '=' {
			l.readRune()
			l.finish(&tok, tokenNotEQ, "!=")
		} else {
			l.finish(&tok, tokenIllegal, "!")
		}
	case '.':
		switch next := l.peekRune(); {
		case unicode.IsDigit(next):
			tok.Literal, _ = l.readNumber()
			tok.Type = tokenFloat
		case next == '+':
			l.readRune()
			l.finish(&tok, tokenDotPlus, ".+")
		case next == '-':
			l.readRune()
			l.finish(&tok, tokenDotMinus, ".-")
		case next == '*':
			l.readRune()
			l.finish(&tok, tokenDotAsterisk, ".*")
		case next == '/':
			l.readRune()
			l.finish(&tok, tokenDotSlash, "./")
		default:
			l.finish(&tok, tokenIllegal, ".")
		}
	case '(':
		l.finish(&tok, tokenLParen, "(")
	case ')':
		l.finish(&tok, tokenRParen, ")")
	case '{':
		l.finish(&tok, tokenLBrace, "{")
	case '}':
		l.finish(&tok, tokenRBrace, "}")
	case '[':
		l.finish(&tok, tokenLBracket, "[")
	case ']':
		l.finish(&tok, tokenRBracket, "]")
	case ',':
		l.finish(&tok, tokenComma, ",")
	case ';':
		l.finish(&tok, tokenSemicolon, ";")
	case ':':
		l.finish(&tok, tokenColon, ":")
	case '\'':
		l.finish(&tok, tokenTranspose, "'")
	case '"':
		literal, err := l.readString()
		if err != "" {
			tok.Type = tokenIllegal
			tok.Literal = err
		} else {
			tok.Type = tokenString
			tok.Literal = literal
		}
	default:
		switch {
		case isIdentifierStart(l.ch):
			literal := l.readIdentifier()
			tok.Type = lookupIdent(literal)
			tok.Literal = literal
		case unicode.IsDigit(l.ch):
			literal, isFloat := l.readNumber()
			tok.Literal = literal
			if isFloat {
				tok.Type = tokenFloat
			} else {
				tok.Type = tokenInt
			}
		default:
			l.finish(&tok, tokenIllegal, string(l.ch))
		}
	}

	return tok
}

// oneOrTwo emits single when the next rune is not second, and the two-rune
// token double otherwise.
func (l *lexer) oneOrTwo(tok *Token, single TokenType, second rune, double TokenType) {
	if l.peekRune() == second {
		l.readRune()
		l.finish(tok, double, string(double))
		return
	}
	l.finish(tok, single, string(single))
}

func (l *lexer) finish(tok *Token, tt TokenType, literal string) {
	tok.Type = tt
	tok.Literal = literal
	l.readRune()
}

func (l *lexer) currentOffset() int {
	return l.offset - l.width
}

func (l *lexer) skipWhitespaceAndComments() {
	for {
		switch l.ch {
		case ' ', '\t', '\r', '\n':
			l.readRune()
			continue
		case '#':
			l.skipComment()
			continue
		default:
			return
		}
	}
}

func (l *lexer) skipComment() {
	for l.ch != 0 && l.ch != '\n' {
		l.readRune()
	}
}

func (l *lexer) readIdentifier() string {
	start := l.currentOffset()
	for isIdentifierRune(l.peekRune()) {
		l.readRune()
	}
	literal := l.input[start:l.offset]
	l.readRune()
	return literal
}

// readNumber accepts `12`, `1.5`, `1.`, `.5` and an optional exponent. A dot
// followed by an arithmetic operator is left alone so `1./x` lexes as `1 ./ x`.
func (l *lexer) readNumber() (string, bool) {
	start := l.currentOffset()
	isFloat := l.ch == '.'

	for unicode.IsDigit(l.peekRune()) {
		l.readRune()
	}
	if !isFloat && l.peekRune() == '.' && !isArithmeticRune(l.peekRuneN(1)) {
		isFloat = true
		l.readRune()
		for unicode.IsDigit(l.peekRune()) {
			l.readRune()
		}
	}
	if r := l.peekRune(); r == 'e' || r == 'E' {
		next := l.peekRuneN(1)
		signed := next == '+' || next == '-'
		if unicode.IsDigit(next) || (signed && unicode.IsDigit(l.peekRuneN(2))) {
			isFloat = true
			l.readRune()
			if signed {
				l.readRune()
			}
			for unicode.IsDigit(l.peekRune()) {
				l.readRune()
			}
		}
	}

	literal := l.input[start:l.offset]
	l.readRune()
	return literal, isFloat
}

func (l *lexer) readString() (string, string) {
	var sb strings.Builder

	for {
		l.readRune()
		switch l.ch {
		case 0, '\n':
			return "", "unterminated string"
		case '"':
			l.readRune()
			return sb.String(), ""
		case '\\':
			next := l.peekRune()
			switch next {
			case '"', '\\':
				l.readRune()
				sb.WriteRune(next)
			case 'n':
				l.readRune()
				sb.WriteByte('\n')
			case 't':
				l.readRune()
				sb.WriteByte('\t')
			default:
				l.readRune()
				sb.WriteRune(next)
			}
		default:
			sb.WriteRune(l.ch)
		}
	}
}

func isIdentifierStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isIdentifierRune(r rune) bool {
	return isIdentifierStart(r) || (r >= '0' && r <= '9')
}

func isArithmeticRune(r rune) bool {
	return r == '+' || r == '-' || r == '*' || r == '/'
}

func lookupIdent(ident string) TokenType {
	switch ident {
	case "if":
		return tokenIf
	case "else":
		return tokenElse
	case "for":
		return tokenFor
	case "while":
		return tokenWhile
	case "break":
		return tokenBreak
	case "continue":
		return tokenContinue
	case "return":
		return tokenReturn
	case "eye":
		return tokenEye
	case "zeros":
		return tokenZeros
	case "ones":
		return tokenOnes
	case "print":
		return tokenPrint
	}
	return tokenIdent
}
