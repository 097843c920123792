package parser

import (
	"testing"
)

func TestTokenKindString(t *testing.T) {
	tests := []struct {
		kind TokenKind
		want string
	}{
		{TokenWhitespace, "Whitespace"},
		{TokenEOF, "EOF"},
		{TokenNumber, "Number"},
		{TokenIdent, "Identifier"},
		{TokenPlus, "+"},
		{TokenNE, "!="},
		{TokenAnd, "&&"},
		{TokenShl, "<<"},
		{TokenGE, ">="},
		{TokenBitNot, "~"},
		{TokenSemicolon, ";"},
		{TokenKind(9999), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("TokenKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
			}
		})
	}
}

func TestTokenKindReserved(t *testing.T) {
	used := []TokenKind{
		TokenPlus, TokenMinus, TokenMultiply, TokenDiv, TokenMod,
		TokenBitAnd, TokenBitOr, TokenBitXor, TokenLParen, TokenRParen,
		TokenNumber, TokenWhitespace, TokenEOF,
	}
	for _, k := range used {
		if k.Reserved() {
			t.Errorf("%v.Reserved() = true, want false", k)
		}
	}

	reserved := []TokenKind{
		TokenIdent, TokenQuestion, TokenColon, TokenEQ, TokenNE, TokenAnd,
		TokenOr, TokenLT, TokenLE, TokenGT, TokenGE, TokenShl, TokenShr,
		TokenBitNot, TokenSemicolon, TokenNot,
	}
	for _, k := range reserved {
		if !k.Reserved() {
			t.Errorf("%v.Reserved() = false, want true", k)
		}
	}
}

func TestTokenString(t *testing.T) {
	if got := (Token{Kind: TokenNumber, Text: "42"}).String(); got != "Number 42" {
		t.Errorf("String() = %q, want %q", got, "Number 42")
	}
	if got := (Token{Kind: TokenPlus}).String(); got != "+" {
		t.Errorf("String() = %q, want %q", got, "+")
	}
}
