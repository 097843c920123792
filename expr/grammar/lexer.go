package grammar

import (
	"fmt"
	"unicode/utf8"

	"github.com/tiehuis/cc/expr/parser"
	"golang.org/x/exp/ebnf"
)

// Token is a match of one alternative of the token production. Kind is
// the name of that alternative, e.g. "number" or "operator".
type Token struct {
	Kind string
	Text string
	Pos  parser.Position
}

func (t Token) String() string {
	return fmt.Sprintf("%s %s %q", t.Pos, t.Kind, t.Text)
}

// memoKey is used for memoization of match results.
type memoKey struct {
	name   string
	offset int
}

// Lexer tokenizes input by longest match over the alternatives of the
// token production.
type Lexer struct {
	grammar ebnf.Grammar
	kinds   []string
	input   string
	pos     parser.Position
	memo    map[memoKey]int // match length, -1 for no match
}

func NewLexer(g ebnf.Grammar, input string) (*Lexer, error) {
	kinds, err := tokenKinds(g)
	if err != nil {
		return nil, err
	}
	return &Lexer{
		grammar: g,
		kinds:   kinds,
		input:   input,
		pos:     parser.Position{Line: 1, Column: 1},
		memo:    make(map[memoKey]int),
	}, nil
}

func tokenKinds(g ebnf.Grammar) ([]string, error) {
	prod, ok := g[TokenProduction]
	if !ok || prod.Expr == nil {
		return nil, fmt.Errorf("grammar has no %s production", TokenProduction)
	}
	var alts ebnf.Alternative
	switch e := prod.Expr.(type) {
	case ebnf.Alternative:
		alts = e
	default:
		alts = ebnf.Alternative{e}
	}
	kinds := make([]string, 0, len(alts))
	for _, alt := range alts {
		name, ok := alt.(*ebnf.Name)
		if !ok {
			return nil, fmt.Errorf("%s: alternatives must be production names", TokenProduction)
		}
		kinds = append(kinds, name.String)
	}
	return kinds, nil
}

func (l *Lexer) advance(n int) {
	for _, r := range l.input[l.pos.Offset : l.pos.Offset+n] {
		if r == '\n' {
			l.pos.Line++
			l.pos.Column = 1
		} else {
			l.pos.Column++
		}
	}
	l.pos.Offset += n
}

// NextToken returns the longest match at the current position. Ties go
// to the alternative listed first. At end of input the Kind is "EOF".
func (l *Lexer) NextToken() (Token, error) {
	start := l.pos
	if start.Offset >= len(l.input) {
		return Token{Kind: "EOF", Pos: start}, nil
	}

	var bestKind string
	bestLen := 0
	for _, kind := range l.kinds {
		if n := l.matchName(kind, start.Offset); n > bestLen {
			bestLen = n
			bestKind = kind
		}
	}

	if bestLen == 0 {
		r, _ := utf8.DecodeRuneInString(l.input[start.Offset:])
		return Token{}, &parser.Error{Kind: parser.UnrecognizedCharacter, Pos: start, Char: r}
	}

	text := l.input[start.Offset : start.Offset+bestLen]
	l.advance(bestLen)
	return Token{Kind: bestKind, Text: text, Pos: start}, nil
}

// Tokenize reads all tokens, ending with the EOF token.
func (l *Lexer) Tokenize() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == "EOF" {
			return tokens, nil
		}
	}
}

// match returns the length of the longest match of expr at offset, or
// -1. A zero length is a successful empty match.
func (l *Lexer) match(expr ebnf.Expression, offset int) int {
	switch e := expr.(type) {
	case *ebnf.Token:
		if len(e.String) > 0 && len(l.input)-offset >= len(e.String) &&
			l.input[offset:offset+len(e.String)] == e.String {
			return len(e.String)
		}
		return -1

	case *ebnf.Range:
		if offset >= len(l.input) {
			return -1
		}
		r, w := utf8.DecodeRuneInString(l.input[offset:])
		lo, _ := utf8.DecodeRuneInString(e.Begin.String)
		hi, _ := utf8.DecodeRuneInString(e.End.String)
		if r >= lo && r <= hi {
			return w
		}
		return -1

	case ebnf.Sequence:
		total := 0
		for _, item := range e {
			n := l.match(item, offset+total)
			if n < 0 {
				return -1
			}
			total += n
		}
		return total

	case ebnf.Alternative:
		best := -1
		for _, alt := range e {
			if n := l.match(alt, offset); n > best {
				best = n
			}
		}
		return best

	case *ebnf.Repetition:
		total := 0
		for {
			n := l.match(e.Body, offset+total)
			if n <= 0 {
				return total
			}
			total += n
		}

	case *ebnf.Option:
		if n := l.match(e.Body, offset); n > 0 {
			return n
		}
		return 0

	case *ebnf.Group:
		return l.match(e.Body, offset)

	case *ebnf.Name:
		return l.matchName(e.String, offset)
	}
	return -1
}

// matchName matches a named production. Results are memoized per offset
// since the input never changes.
func (l *Lexer) matchName(name string, offset int) int {
	key := memoKey{name: name, offset: offset}
	if n, ok := l.memo[key]; ok {
		return n
	}

	prod, ok := l.grammar[name]
	if !ok || prod.Expr == nil {
		l.memo[key] = -1
		return -1
	}

	// Entering a cycle at the same offset matches nothing.
	l.memo[key] = -1
	n := l.match(prod.Expr, offset)
	l.memo[key] = n
	return n
}
