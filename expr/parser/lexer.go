package parser

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Lexer turns the characters of a Source into Tokens, one per call to
// NextToken. Whitespace is not discarded: every whitespace character
// becomes its own TokenWhitespace and the parser decides what to skip.
type Lexer struct {
	src    Source
	closer io.Closer

	pos     Position
	prev    Position
	lastGet bool
	done    bool
}

// NewLexer creates a lexer over data. For FileBacked, data is a path to
// open; for StringBacked, data is the text itself.
func NewLexer(data string, backing Backing) (*Lexer, error) {
	switch backing {
	case StringBacked:
		return NewLexerFromSource(NewStringSource(data)), nil
	case FileBacked:
		src, err := OpenFile(data)
		if err != nil {
			return nil, fmt.Errorf("open source: %w", err)
		}
		return NewLexerFromSource(src), nil
	default:
		return nil, fmt.Errorf("unknown backing: %d", backing)
	}
}

func NewLexerFromSource(src Source) *Lexer {
	l := &Lexer{
		src: src,
		pos: Position{Offset: 0, Line: 1, Column: 1},
	}
	if c, ok := src.(io.Closer); ok {
		l.closer = c
	}
	return l
}

// Close releases the underlying source if it holds an open file.
func (l *Lexer) Close() error {
	if l.closer == nil {
		return nil
	}
	err := l.closer.Close()
	l.closer = nil
	return err
}

func (l *Lexer) Position() Position {
	return l.pos
}

func (l *Lexer) get() (rune, bool) {
	r, ok := l.src.Get()
	l.lastGet = ok
	if !ok {
		return 0, false
	}
	l.prev = l.pos
	l.pos.Offset += utf8.RuneLen(r)
	if r == '\n' {
		l.pos.Line++
		l.pos.Column = 1
	} else {
		l.pos.Column++
	}
	return r, true
}

func (l *Lexer) unget() {
	if !l.lastGet {
		return
	}
	l.src.Unget()
	l.pos = l.prev
	l.lastGet = false
}

func (l *Lexer) sourceErr() error {
	if s, ok := l.src.(interface{ Err() error }); ok {
		return s.Err()
	}
	return nil
}

// NextToken returns the next token. Once TokenEOF has been returned,
// every further call returns TokenEOF again.
func (l *Lexer) NextToken() (Token, error) {
	if l.done {
		return Token{Kind: TokenEOF, Pos: l.pos}, nil
	}

	start := l.pos
	c, ok := l.get()
	if !ok {
		if err := l.sourceErr(); err != nil {
			return Token{}, fmt.Errorf("read source: %w", err)
		}
		l.done = true
		return Token{Kind: TokenEOF, Pos: start}, nil
	}

	if isSpace(c) {
		return Token{Kind: TokenWhitespace, Pos: start}, nil
	}

	switch c {
	case '+':
		return l.token(TokenPlus, start), nil
	case '-':
		return l.token(TokenMinus, start), nil
	case '/':
		return l.token(TokenDiv, start), nil
	case '*':
		return l.token(TokenMultiply, start), nil
	case '%':
		return l.token(TokenMod, start), nil
	case '?':
		return l.token(TokenQuestion, start), nil
	case ':':
		return l.token(TokenColon, start), nil
	case '^':
		return l.token(TokenBitXor, start), nil
	case '~':
		return l.token(TokenBitNot, start), nil
	case '(':
		return l.token(TokenLParen, start), nil
	case ')':
		return l.token(TokenRParen, start), nil
	case ';':
		return l.token(TokenSemicolon, start), nil
	case '!', '=', '&', '|', '<', '>':
		return l.scanOperator(c, start), nil
	}

	if isDigit(c) {
		return l.scanRun(TokenNumber, start, c, isDigit), nil
	}
	if isIdentStart(c) {
		return l.scanRun(TokenIdent, start, c, isIdentPart), nil
	}

	return Token{}, &Error{Kind: UnrecognizedCharacter, Pos: start, Char: c}
}

func (l *Lexer) token(kind TokenKind, start Position) Token {
	return Token{Kind: kind, Pos: start}
}

type munch struct {
	next rune
	kind TokenKind
}

// operatorFamilies lists, per leading character, the kind of the lone
// character followed by the two-character operators it can start.
var operatorFamilies = map[rune]struct {
	single TokenKind
	pairs  []munch
}{
	'!': {TokenNot, []munch{{'=', TokenNE}}},
	// A lone '=' has no token of its own and lexes as '|'.
	'=': {TokenBitOr, []munch{{'=', TokenEQ}}},
	'&': {TokenBitAnd, []munch{{'&', TokenAnd}}},
	'|': {TokenBitOr, []munch{{'|', TokenOr}}},
	'<': {TokenLT, []munch{{'<', TokenShl}, {'=', TokenLE}}},
	'>': {TokenGT, []munch{{'>', TokenShr}, {'=', TokenGE}}},
}

// scanOperator prefers a two-character operator over its one-character
// prefix. The lookahead is pushed back when it forms no known pair.
func (l *Lexer) scanOperator(first rune, start Position) Token {
	family := operatorFamilies[first]
	c, ok := l.get()
	if !ok {
		return l.token(family.single, start)
	}
	for _, m := range family.pairs {
		if c == m.next {
			return l.token(m.kind, start)
		}
	}
	l.unget()
	return l.token(family.single, start)
}

func (l *Lexer) scanRun(kind TokenKind, start Position, first rune, cont func(rune) bool) Token {
	var b strings.Builder
	b.WriteRune(first)
	for {
		c, ok := l.get()
		if !ok {
			break
		}
		if !cont(c) {
			l.unget()
			break
		}
		b.WriteRune(c)
	}
	return Token{Kind: kind, Text: b.String(), Pos: start}
}

// Tokenize pulls tokens from l until TokenEOF. The returned slice ends
// with the only TokenEOF in it.
func Tokenize(l *Lexer) ([]Token, error) {
	var tokens []Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == TokenEOF {
			return tokens, nil
		}
	}
}

func isSpace(c rune) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func isLetter(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentStart(c rune) bool {
	return isLetter(c) || c == '_'
}

func isIdentPart(c rune) bool {
	return isIdentStart(c) || isDigit(c)
}
