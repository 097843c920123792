package grammar

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/tiehuis/cc/expr/parser"
	"golang.org/x/exp/ebnf"
)

// symbol is one element of a rule's right-hand side. Exactly one field
// is set: name for a nonterminal, literal for a token text, category for
// a lexical production matched by token kind.
type symbol struct {
	name     string
	literal  string
	category string
}

type rule struct {
	lhs string
	rhs []symbol
}

// item is an Earley item: a rule with a dot position and origin.
type item struct {
	rule   int
	dot    int
	origin int
}

// itemSet is the set of Earley items at a particular chart position.
type itemSet struct {
	items []item
	seen  map[item]bool
}

func (s *itemSet) add(it item) {
	if s.seen == nil {
		s.seen = make(map[item]bool)
	}
	if s.seen[it] {
		return
	}
	s.seen[it] = true
	s.items = append(s.items, it)
}

// Recognizer decides membership of token sequences in the syntactic part
// of a grammar with an Earley chart. EBNF repetitions, options and
// groups are rewritten into plain rules on construction, so ambiguous
// and left-recursive grammars are fine.
type Recognizer struct {
	rules    []rule
	byLHS    map[string][]int
	nullable map[string]bool
	fresh    int
}

// NewRecognizer lowers every syntactic production of g. Names starting
// with a lower-case letter are lexical and match tokens by Category.
func NewRecognizer(g ebnf.Grammar) (*Recognizer, error) {
	r := &Recognizer{byLHS: make(map[string][]int)}
	for name, prod := range g {
		if isLexical(name) {
			continue
		}
		if err := r.addRules(name, prod.Expr); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
	}
	r.computeNullable()
	return r, nil
}

func isLexical(name string) bool {
	ch, _ := utf8.DecodeRuneInString(name)
	return !unicode.IsUpper(ch)
}

func (r *Recognizer) add(lhs string, rhs []symbol) {
	r.byLHS[lhs] = append(r.byLHS[lhs], len(r.rules))
	r.rules = append(r.rules, rule{lhs: lhs, rhs: rhs})
}

func (r *Recognizer) addRules(lhs string, e ebnf.Expression) error {
	if alt, ok := e.(ebnf.Alternative); ok {
		for _, x := range alt {
			if err := r.addRules(lhs, x); err != nil {
				return err
			}
		}
		return nil
	}
	rhs, err := r.sequence(lhs, e)
	if err != nil {
		return err
	}
	r.add(lhs, rhs)
	return nil
}

func (r *Recognizer) sequence(lhs string, e ebnf.Expression) ([]symbol, error) {
	switch e := e.(type) {
	case nil:
		return nil, nil
	case ebnf.Sequence:
		var rhs []symbol
		for _, x := range e {
			s, err := r.symbol(lhs, x)
			if err != nil {
				return nil, err
			}
			rhs = append(rhs, s)
		}
		return rhs, nil
	}
	s, err := r.symbol(lhs, e)
	if err != nil {
		return nil, err
	}
	return []symbol{s}, nil
}

func (r *Recognizer) newName(lhs string) string {
	r.fresh++
	return fmt.Sprintf("%s#%d", lhs, r.fresh)
}

func (r *Recognizer) symbol(lhs string, e ebnf.Expression) (symbol, error) {
	switch e := e.(type) {
	case *ebnf.Name:
		if isLexical(e.String) {
			return symbol{category: e.String}, nil
		}
		return symbol{name: e.String}, nil

	case *ebnf.Token:
		return symbol{literal: e.String}, nil

	case *ebnf.Group:
		n := r.newName(lhs)
		return symbol{name: n}, r.addRules(n, e.Body)

	case ebnf.Alternative:
		n := r.newName(lhs)
		return symbol{name: n}, r.addRules(n, e)

	case *ebnf.Option:
		n := r.newName(lhs)
		r.add(n, nil)
		return symbol{name: n}, r.addRules(n, e.Body)

	case *ebnf.Repetition:
		// n = ε | body n
		n := r.newName(lhs)
		r.add(n, nil)
		alts, ok := e.Body.(ebnf.Alternative)
		if !ok {
			alts = ebnf.Alternative{e.Body}
		}
		for _, alt := range alts {
			rhs, err := r.sequence(n, alt)
			if err != nil {
				return symbol{}, err
			}
			r.add(n, append(rhs, symbol{name: n}))
		}
		return symbol{name: n}, nil

	case ebnf.Sequence:
		n := r.newName(lhs)
		return symbol{name: n}, r.addRules(n, e)
	}
	return symbol{}, fmt.Errorf("unsupported expression %T in syntactic production", e)
}

func (r *Recognizer) computeNullable() {
	r.nullable = make(map[string]bool)
	for changed := true; changed; {
		changed = false
		for _, rl := range r.rules {
			if r.nullable[rl.lhs] {
				continue
			}
			all := true
			for _, s := range rl.rhs {
				if s.name == "" || !r.nullable[s.name] {
					all = false
					break
				}
			}
			if all {
				r.nullable[rl.lhs] = true
				changed = true
			}
		}
	}
}

// Category names the lexical production a token of kind k comes from.
func Category(k parser.TokenKind) string {
	switch k {
	case parser.TokenWhitespace:
		return "whitespace"
	case parser.TokenNumber:
		return "number"
	case parser.TokenIdent:
		return "identifier"
	case parser.TokenLParen, parser.TokenRParen, parser.TokenSemicolon:
		return "punctuation"
	case parser.TokenEOF:
		return "EOF"
	}
	return "operator"
}

func (s symbol) matches(tok parser.Token) bool {
	switch {
	case s.literal != "":
		if tok.Kind.HasLiteral() {
			return tok.Text == s.literal
		}
		return tok.Kind.String() == s.literal
	case s.category == TokenProduction:
		return true
	case s.category != "":
		return Category(tok.Kind) == s.category
	}
	return false
}

// Recognize reports whether tokens, minus whitespace and the final EOF,
// derive from start. On failure the error is a *parser.Error pointing at
// the first token no item could scan.
func (r *Recognizer) Recognize(start string, tokens []parser.Token) error {
	if len(r.byLHS[start]) == 0 {
		return fmt.Errorf("production %q not found in grammar", start)
	}

	var input []parser.Token
	eof := parser.Token{Kind: parser.TokenEOF}
	for _, tok := range tokens {
		switch tok.Kind {
		case parser.TokenWhitespace:
		case parser.TokenEOF:
			eof = tok
		default:
			input = append(input, tok)
		}
	}

	n := len(input)
	chart := make([]itemSet, n+1)
	for _, ri := range r.byLHS[start] {
		chart[0].add(item{rule: ri})
	}

	for i := 0; i <= n; i++ {
		// chart[i] grows while it is processed.
		for j := 0; j < len(chart[i].items); j++ {
			it := chart[i].items[j]
			rl := r.rules[it.rule]

			if it.dot == len(rl.rhs) {
				for _, w := range chart[it.origin].items {
					wr := r.rules[w.rule]
					if w.dot < len(wr.rhs) && wr.rhs[w.dot].name == rl.lhs {
						chart[i].add(item{rule: w.rule, dot: w.dot + 1, origin: w.origin})
					}
				}
				continue
			}

			next := rl.rhs[it.dot]
			if next.name != "" {
				for _, ri := range r.byLHS[next.name] {
					chart[i].add(item{rule: ri, origin: i})
				}
				if r.nullable[next.name] {
					chart[i].add(item{rule: it.rule, dot: it.dot + 1, origin: it.origin})
				}
				continue
			}

			if i < n && next.matches(input[i]) {
				chart[i+1].add(item{rule: it.rule, dot: it.dot + 1, origin: it.origin})
			}
		}
	}

	for _, it := range chart[n].items {
		rl := r.rules[it.rule]
		if rl.lhs == start && it.origin == 0 && it.dot == len(rl.rhs) {
			return nil
		}
	}

	furthest := 0
	for i := n; i >= 0; i-- {
		if len(chart[i].items) > 0 {
			furthest = i
			break
		}
	}
	got := eof
	if furthest < n {
		got = input[furthest]
	}
	return &parser.Error{Kind: parser.UnexpectedToken, Pos: got.Pos, Got: got}
}
