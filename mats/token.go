package mats

// TokenType identifies the lexical category of a token.
type TokenType string

const (
	tokenIllegal TokenType = "ILLEGAL"
	tokenEOF     TokenType = "EOF"

	tokenIdent  TokenType = "IDENT"
	tokenInt    TokenType = "INT"
	tokenFloat  TokenType = "FLOAT"
	tokenString TokenType = "STRING"

	tokenAssign    TokenType = "="
	tokenAddAssign TokenType = "+="
	tokenSubAssign TokenType = "-="
	tokenMulAssign TokenType = "*="
	tokenDivAssign TokenType = "/="

	tokenPlus        TokenType = "+"
	tokenMinus       TokenType = "-"
	tokenAsterisk    TokenType = "*"
	tokenSlash       TokenType = "/"
	tokenDotPlus     TokenType = ".+"
	tokenDotMinus    TokenType = ".-"
	tokenDotAsterisk TokenType = ".*"
	tokenDotSlash    TokenType = "./"

	tokenLT    TokenType = "<"
	tokenGT    TokenType = ">"
	tokenLTE   TokenType = "<="
	tokenGTE   TokenType = ">="
	tokenEQ    TokenType = "=="
	tokenNotEQ TokenType = "!="

	tokenComma     TokenType = ","
	tokenSemicolon TokenType = ";"
	tokenColon     TokenType = ":"
	tokenTranspose TokenType = "'"
	tokenLParen    TokenType = "("
	tokenRParen    TokenType = ")"
	tokenLBrace    TokenType = "{"
	tokenRBrace    TokenType = "}"
	tokenLBracket  TokenType = "["
	tokenRBracket  TokenType = "]"

	tokenIf       TokenType = "IF"
	tokenElse     TokenType = "ELSE"
	tokenFor      TokenType = "FOR"
	tokenWhile    TokenType = "WHILE"
	tokenBreak    TokenType = "BREAK"
	tokenContinue TokenType = "CONTINUE"
	tokenReturn   TokenType = "RETURN"
	tokenEye      TokenType = "EYE"
	tokenZeros    TokenType = "ZEROS"
	tokenOnes     TokenType = "ONES"
	tokenPrint    TokenType = "PRINT"
)

// Token captures lexical information for the parser.
type Token struct {
	Type    TokenType
	Literal string
	Pos     Position
}

// Position identifies a line and column in the source file.
type Position struct {
	Line   int
	Column int
}

// Pos lets every AST node that embeds a Position satisfy Node.
func (p Position) Pos() Position { return p }

// Keywords lists the reserved words in source order of the grammar.
var Keywords = []string{
	"if",
	"else",
	"for",
	"while",
	"break",
	"continue",
	"return",
	"eye",
	"zeros",
	"ones",
	"print",
}
