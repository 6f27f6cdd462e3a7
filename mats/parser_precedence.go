package mats

const (
	lowestPrec = iota
	precComparison
	precSum
	precProduct
	precPrefix
	precPostfix
)

var precedences = map[TokenType]int{
	tokenEQ:          precComparison,
	tokenNotEQ:       precComparison,
	tokenLT:          precComparison,
	tokenLTE:         precComparison,
	tokenGT:          precComparison,
	tokenGTE:         precComparison,
	tokenPlus:        precSum,
	tokenMinus:       precSum,
	tokenDotPlus:     precSum,
	tokenDotMinus:    precSum,
	tokenAsterisk:    precProduct,
	tokenSlash:       precProduct,
	tokenDotAsterisk: precProduct,
	tokenDotSlash:    precProduct,
	tokenTranspose:   precPostfix,
}

var binaryOperators = map[TokenType]Operator{
	tokenPlus:        OpAdd,
	tokenMinus:       OpSub,
	tokenAsterisk:    OpMul,
	tokenSlash:       OpDiv,
	tokenLT:          OpLT,
	tokenGT:          OpGT,
	tokenLTE:         OpLTE,
	tokenGTE:         OpGTE,
	tokenEQ:          OpEQ,
	tokenNotEQ:       OpNE,
	tokenDotPlus:     OpDotAdd,
	tokenDotMinus:    OpDotSub,
	tokenDotAsterisk: OpDotMul,
	tokenDotSlash:    OpDotDiv,
}

var assignOperators = map[TokenType]AssignOp{
	tokenAssign:    AssignSet,
	tokenAddAssign: AssignAdd,
	tokenSubAssign: AssignSub,
	tokenMulAssign: AssignMul,
	tokenDivAssign: AssignDiv,
}
