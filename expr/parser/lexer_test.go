package parser

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func lexAll(t *testing.T, input string) []Token {
	t.Helper()
	lx := NewLexerFromSource(NewStringSource(input))
	tokens, err := Tokenize(lx)
	if err != nil {
		t.Fatalf("Tokenize(%q): %v", input, err)
	}
	return tokens
}

func kinds(tokens []Token) []TokenKind {
	out := make([]TokenKind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}

func sameKinds(a, b []TokenKind) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestLexer(t *testing.T) {
	tests := []struct {
		input    string
		expected []TokenKind
	}{
		{"", []TokenKind{TokenEOF}},
		{"1", []TokenKind{TokenNumber, TokenEOF}},
		{" ", []TokenKind{TokenWhitespace, TokenEOF}},
		{"  ", []TokenKind{TokenWhitespace, TokenWhitespace, TokenEOF}},
		{"1+2", []TokenKind{TokenNumber, TokenPlus, TokenNumber, TokenEOF}},
		{" 1 + 2 ", []TokenKind{
			TokenWhitespace, TokenNumber, TokenWhitespace, TokenPlus,
			TokenWhitespace, TokenNumber, TokenWhitespace, TokenEOF,
		}},
		{"+-/*%?:^~();", []TokenKind{
			TokenPlus, TokenMinus, TokenDiv, TokenMultiply, TokenMod,
			TokenQuestion, TokenColon, TokenBitXor, TokenBitNot,
			TokenLParen, TokenRParen, TokenSemicolon, TokenEOF,
		}},
		{"(1)", []TokenKind{TokenLParen, TokenNumber, TokenRParen, TokenEOF}},
		{"a\tb\n", []TokenKind{TokenIdent, TokenWhitespace, TokenIdent, TokenWhitespace, TokenEOF}},
		{"x<<2", []TokenKind{TokenIdent, TokenShl, TokenNumber, TokenEOF}},
		{"a&&b||c", []TokenKind{TokenIdent, TokenAnd, TokenIdent, TokenOr, TokenIdent, TokenEOF}},
		{"===", []TokenKind{TokenEQ, TokenBitOr, TokenEOF}},
		{"<<=", []TokenKind{TokenShl, TokenBitOr, TokenEOF}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := kinds(lexAll(t, tt.input))
			if !sameKinds(got, tt.expected) {
				t.Errorf("got %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestLexerOperators(t *testing.T) {
	tests := []struct {
		input string
		kind  TokenKind
	}{
		{"!=", TokenNE},
		{"==", TokenEQ},
		{"&&", TokenAnd},
		{"||", TokenOr},
		{"<<", TokenShl},
		{"<=", TokenLE},
		{">>", TokenShr},
		{">=", TokenGE},
		{"&", TokenBitAnd},
		{"|", TokenBitOr},
		{"<", TokenLT},
		{">", TokenGT},
		{"!", TokenNot},
		{"=", TokenBitOr},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens := lexAll(t, tt.input)
			if len(tokens) != 2 {
				t.Fatalf("got %d tokens, want 2: %v", len(tokens), tokens)
			}
			if tokens[0].Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", tokens[0].Kind, tt.kind)
			}
			if tokens[0].Text != "" {
				t.Errorf("Text = %q, want empty", tokens[0].Text)
			}
		})
	}
}

func TestLexerMaximalMunchPushBack(t *testing.T) {
	prefixes := map[rune]TokenKind{
		'!': TokenNot,
		'=': TokenBitOr,
		'&': TokenBitAnd,
		'|': TokenBitOr,
		'<': TokenLT,
		'>': TokenGT,
	}
	followers := []struct {
		text string
		kind TokenKind
	}{
		{"7", TokenNumber},
		{"x", TokenIdent},
		{" ", TokenWhitespace},
		{"(", TokenLParen},
		{"+", TokenPlus},
	}

	for prefix, single := range prefixes {
		for _, f := range followers {
			input := string(prefix) + f.text
			t.Run(input, func(t *testing.T) {
				tokens := lexAll(t, input)
				want := []TokenKind{single, f.kind, TokenEOF}
				if got := kinds(tokens); !sameKinds(got, want) {
					t.Fatalf("got %v, want %v", got, want)
				}
				if f.kind.HasLiteral() && tokens[1].Text != f.text {
					t.Errorf("Text = %q, want %q", tokens[1].Text, f.text)
				}
			})
		}
	}
}

func TestLexerNumbers(t *testing.T) {
	for _, input := range []string{"0", "7", "42", "007", "1234567890", "99999999999999999999999"} {
		t.Run(input, func(t *testing.T) {
			tokens := lexAll(t, input)
			if len(tokens) != 2 {
				t.Fatalf("got %d tokens, want 2", len(tokens))
			}
			if tokens[0].Kind != TokenNumber {
				t.Errorf("Kind = %v, want %v", tokens[0].Kind, TokenNumber)
			}
			if tokens[0].Text != input {
				t.Errorf("Text = %q, want %q", tokens[0].Text, input)
			}
			if tokens[1].Kind != TokenEOF {
				t.Errorf("last Kind = %v, want %v", tokens[1].Kind, TokenEOF)
			}
		})
	}
}

func TestLexerNumberStopsAtNonDigit(t *testing.T) {
	tokens := lexAll(t, "12ab")
	want := []TokenKind{TokenNumber, TokenIdent, TokenEOF}
	if got := kinds(tokens); !sameKinds(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if tokens[0].Text != "12" || tokens[1].Text != "ab" {
		t.Errorf("texts = %q, %q, want %q, %q", tokens[0].Text, tokens[1].Text, "12", "ab")
	}
}

func TestLexerIdentifiers(t *testing.T) {
	tests := []string{
		"x",
		"foo",
		"Bar",
		"_private",
		"snake_case",
		"with123Numbers",
		"__",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			tokens := lexAll(t, input)
			if len(tokens) != 2 {
				t.Fatalf("got %d tokens, want 2: %v", len(tokens), tokens)
			}
			if tokens[0].Kind != TokenIdent {
				t.Errorf("Kind = %v, want %v", tokens[0].Kind, TokenIdent)
			}
			if tokens[0].Text != input {
				t.Errorf("Text = %q, want %q", tokens[0].Text, input)
			}
		})
	}
}

func TestLexerUnrecognizedCharacter(t *testing.T) {
	for _, input := range []string{"@", "1 $ 2", "#", "é"} {
		t.Run(input, func(t *testing.T) {
			lx := NewLexerFromSource(NewStringSource(input))
			_, err := Tokenize(lx)
			if !errors.Is(err, ErrUnrecognizedCharacter) {
				t.Fatalf("err = %v, want ErrUnrecognizedCharacter", err)
			}
			if !IsLexical(err) {
				t.Error("IsLexical = false, want true")
			}
		})
	}
}

func TestLexerEOFIsSticky(t *testing.T) {
	lx := NewLexerFromSource(NewStringSource("1"))
	for i, want := range []TokenKind{TokenNumber, TokenEOF, TokenEOF, TokenEOF} {
		tok, err := lx.NextToken()
		if err != nil {
			t.Fatalf("NextToken %d: %v", i, err)
		}
		if tok.Kind != want {
			t.Errorf("token %d: got %v, want %v", i, tok.Kind, want)
		}
	}
}

func TestLexerPositions(t *testing.T) {
	tokens := lexAll(t, "1 +\n 23")
	want := []Position{
		{Offset: 0, Line: 1, Column: 1},
		{Offset: 1, Line: 1, Column: 2},
		{Offset: 2, Line: 1, Column: 3},
		{Offset: 3, Line: 1, Column: 4},
		{Offset: 4, Line: 2, Column: 1},
		{Offset: 5, Line: 2, Column: 2},
		{Offset: 7, Line: 2, Column: 4},
	}
	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(tokens), len(want))
	}
	for i := range want {
		if tokens[i].Pos != want[i] {
			t.Errorf("token %d (%v): Pos = %+v, want %+v", i, tokens[i], tokens[i].Pos, want[i])
		}
	}
}

func TestLexerPositionAfterPushBack(t *testing.T) {
	tokens := lexAll(t, "<5")
	if tokens[1].Pos.Column != 2 {
		t.Errorf("Column after push back = %d, want 2", tokens[1].Pos.Column)
	}
}

func TestNewLexerStringBacked(t *testing.T) {
	lx, err := NewLexer("2*3", StringBacked)
	if err != nil {
		t.Fatalf("NewLexer: %v", err)
	}
	defer lx.Close()

	tokens, err := Tokenize(lx)
	if err != nil {
		t.Fatal(err)
	}
	want := []TokenKind{TokenNumber, TokenMultiply, TokenNumber, TokenEOF}
	if got := kinds(tokens); !sameKinds(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestNewLexerFileBacked(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expr.c")
	if err := os.WriteFile(path, []byte("(10 % 4)\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	lx, err := NewLexer(path, FileBacked)
	if err != nil {
		t.Fatalf("NewLexer: %v", err)
	}
	tokens, err := Tokenize(lx)
	if err != nil {
		t.Fatal(err)
	}
	if err := lx.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}

	want := []TokenKind{
		TokenLParen, TokenNumber, TokenWhitespace, TokenMod, TokenWhitespace,
		TokenNumber, TokenRParen, TokenWhitespace, TokenEOF,
	}
	if got := kinds(tokens); !sameKinds(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestNewLexerFileMissing(t *testing.T) {
	_, err := NewLexer(filepath.Join(t.TempDir(), "nope.c"), FileBacked)
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want os.ErrNotExist", err)
	}
}

func TestNewLexerUnknownBacking(t *testing.T) {
	if _, err := NewLexer("1", Backing(42)); err == nil {
		t.Error("err = nil, want error")
	}
}

func TestLexerBackingsAgree(t *testing.T) {
	inputs := []string{"1+2", " ( 3 * 4 ) ", "a == b != c", "x<=y>=z", "5 & 6 | 7 ^ 8"}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			fromString := lexAll(t, input)
			fromStream, err := Tokenize(NewLexerFromSource(NewStreamSource(strings.NewReader(input))))
			if err != nil {
				t.Fatal(err)
			}
			if len(fromString) != len(fromStream) {
				t.Fatalf("string backed %d tokens, stream backed %d", len(fromString), len(fromStream))
			}
			for i := range fromString {
				if fromString[i] != fromStream[i] {
					t.Errorf("token %d: string %+v, stream %+v", i, fromString[i], fromStream[i])
				}
			}
		})
	}
}

func TestLexerStreamReadError(t *testing.T) {
	lx := NewLexerFromSource(NewStreamSource(failingReader{}))
	if _, err := lx.NextToken(); err == nil {
		t.Error("err = nil, want read error")
	}
}

func TestBackingString(t *testing.T) {
	if StringBacked.String() != "string" || FileBacked.String() != "file" {
		t.Errorf("got %q, %q", StringBacked, FileBacked)
	}
}
