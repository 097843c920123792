package grammar

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tiehuis/cc/expr/parser"
	"golang.org/x/exp/ebnf"
)

func TestLoad(t *testing.T) {
	g, err := Load()
	if err != nil {
		for _, e := range Errors(err) {
			t.Log(e)
		}
		t.Fatal(err)
	}
	for _, name := range []string{"Expression", "Primary", "token", "operator", "number"} {
		if _, ok := g[name]; !ok {
			t.Errorf("production %s missing", name)
		}
	}
}

func TestLoadFileErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		grammar string
		start   string
		errs    int
	}{
		{"syntax", `A = "a" `, "", 1},
		{"missing", `A = B .`, "A", 1},
		{"unreachable", "A = \"a\" .\nB = \"b\" .", "A", 1},
		{"lexical", "A = b .\nb = C .\nC = \"c\" .", "A", 1},
		{"unverified", `A = "a" .`, "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".ebnf")
			if err := os.WriteFile(path, []byte(tt.grammar), 0o644); err != nil {
				t.Fatal(err)
			}
			_, err := LoadFile(path, tt.start)
			if got := len(Errors(err)); got != tt.errs {
				t.Errorf("got %d errors (%v), want %d", got, err, tt.errs)
			}
		})
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "none.ebnf"), "")
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want os.ErrNotExist", err)
	}
}

func TestLexer(t *testing.T) {
	g, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	lx, err := NewLexer(g, "x1 <= 42")
	if err != nil {
		t.Fatal(err)
	}
	tokens, err := lx.Tokenize()
	if err != nil {
		t.Fatal(err)
	}

	var got []string
	for _, tok := range tokens {
		got = append(got, tok.Kind+":"+tok.Text)
	}
	want := "identifier:x1 whitespace:  operator:<= whitespace:  number:42 EOF:"
	if strings.Join(got, " ") != want {
		t.Errorf("tokens = %q, want %q", strings.Join(got, " "), want)
	}
}

// TestLexerAgreement checks that the hand-written lexer and the grammar
// split the same input at the same places into the same categories.
func TestLexerAgreement(t *testing.T) {
	g, err := Load()
	if err != nil {
		t.Fatal(err)
	}

	inputs := []string{
		"1 + 2 * 3",
		"(10 - 4) % 3 ^ 7 | 1 & 2",
		"a_b1 != _c == d",
		"a&&b||c<<d>>e<=f>=g<h>i",
		"!x = ~y ? z : w;",
		"=== !== &&& |||",
		"\t\n\v\f\r 0",
		"12abc",
		"1\n+\n2",
		"",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			want, err := parser.Tokenize(parser.NewLexerFromSource(parser.NewStringSource(input)))
			if err != nil {
				t.Fatal(err)
			}
			lx, err := NewLexer(g, input)
			if err != nil {
				t.Fatal(err)
			}
			got, err := lx.Tokenize()
			if err != nil {
				t.Fatal(err)
			}

			if len(got) != len(want) {
				t.Fatalf("got %d tokens, want %d\n%v\n%v", len(got), len(want), got, want)
			}
			for i := range want {
				if got[i].Pos != want[i].Pos || got[i].Kind != Category(want[i].Kind) {
					t.Errorf("token %d: got %v, want %v", i, got[i], want[i])
				}
				if want[i].Kind.HasLiteral() && got[i].Text != want[i].Text {
					t.Errorf("token %d: text %q, want %q", i, got[i].Text, want[i].Text)
				}
			}
		})
	}
}

func TestLexerUnrecognized(t *testing.T) {
	g, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	lx, err := NewLexer(g, "1 @")
	if err != nil {
		t.Fatal(err)
	}
	_, err = lx.Tokenize()
	if !errors.Is(err, parser.ErrUnrecognizedCharacter) {
		t.Errorf("err = %v, want ErrUnrecognizedCharacter", err)
	}
}

// TestSyntaxTokensNotReserved checks that every literal the syntactic
// productions mention lexes to one token the parser consumes.
func TestSyntaxTokensNotReserved(t *testing.T) {
	g, err := Load()
	if err != nil {
		t.Fatal(err)
	}

	var literals []string
	var collect func(e ebnf.Expression)
	collect = func(e ebnf.Expression) {
		switch e := e.(type) {
		case *ebnf.Token:
			literals = append(literals, e.String)
		case ebnf.Alternative:
			for _, x := range e {
				collect(x)
			}
		case ebnf.Sequence:
			for _, x := range e {
				collect(x)
			}
		case *ebnf.Group:
			collect(e.Body)
		case *ebnf.Option:
			collect(e.Body)
		case *ebnf.Repetition:
			collect(e.Body)
		}
	}
	for name, prod := range g {
		if name[0] >= 'A' && name[0] <= 'Z' {
			collect(prod.Expr)
		}
	}
	if len(literals) == 0 {
		t.Fatal("no literals found")
	}

	for _, lit := range literals {
		tokens, err := parser.Tokenize(parser.NewLexerFromSource(parser.NewStringSource(lit)))
		if err != nil {
			t.Errorf("%q: %v", lit, err)
			continue
		}
		if len(tokens) != 2 {
			t.Errorf("%q lexes to %v, want one token", lit, tokens)
			continue
		}
		if tokens[0].Kind.Reserved() {
			t.Errorf("%q lexes to reserved %s", lit, tokens[0].Kind)
		}
	}
}
