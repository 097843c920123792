package parser

import "fmt"

// Position locates a token in its input. Line and Column are 1-based,
// Column counts characters.
type Position struct {
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

type TokenKind int

const (
	TokenWhitespace TokenKind = iota
	TokenEOF

	// Literals
	TokenNumber
	TokenIdent

	// Operators and punctuation
	TokenPlus
	TokenMinus
	TokenDiv
	TokenMultiply
	TokenMod
	TokenQuestion
	TokenColon
	TokenNE
	TokenEQ
	TokenBitAnd
	TokenAnd
	TokenBitOr
	TokenOr
	TokenShl
	TokenLT
	TokenLE
	TokenShr
	TokenGT
	TokenGE
	TokenBitXor
	TokenBitNot
	TokenLParen
	TokenRParen
	TokenSemicolon
	TokenNot
)

var tokenKindNames = map[TokenKind]string{
	TokenWhitespace: "Whitespace",
	TokenEOF:        "EOF",
	TokenNumber:     "Number",
	TokenIdent:      "Identifier",
	TokenPlus:       "+",
	TokenMinus:      "-",
	TokenDiv:        "/",
	TokenMultiply:   "*",
	TokenMod:        "%",
	TokenQuestion:   "?",
	TokenColon:      ":",
	TokenNE:         "!=",
	TokenEQ:         "==",
	TokenBitAnd:     "&",
	TokenAnd:        "&&",
	TokenBitOr:      "|",
	TokenOr:         "||",
	TokenShl:        "<<",
	TokenLT:         "<",
	TokenLE:         "<=",
	TokenShr:        ">>",
	TokenGT:         ">",
	TokenGE:         ">=",
	TokenBitXor:     "^",
	TokenBitNot:     "~",
	TokenLParen:     "(",
	TokenRParen:     ")",
	TokenSemicolon:  ";",
	TokenNot:        "!",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Reserved reports whether the lexer produces k but no grammar rule
// consumes it yet.
func (k TokenKind) Reserved() bool {
	switch k {
	case TokenIdent, TokenQuestion, TokenColon, TokenNE, TokenEQ, TokenAnd,
		TokenOr, TokenShl, TokenLT, TokenLE, TokenShr, TokenGT, TokenGE,
		TokenBitNot, TokenSemicolon, TokenNot:
		return true
	}
	return false
}

// Token is a classified run of input. Text is only set for TokenNumber
// and TokenIdent.
type Token struct {
	Kind TokenKind
	Text string
	Pos  Position
}

func (t Token) String() string {
	if t.Text != "" {
		return t.Kind.String() + " " + t.Text
	}
	return t.Kind.String()
}

// HasLiteral reports whether tokens of kind k carry Text.
func (k TokenKind) HasLiteral() bool {
	return k == TokenNumber || k == TokenIdent
}
