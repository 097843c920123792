package parser

import (
	"fmt"
	"io"
	"strconv"
)

type Option func(*Parser)

// WithArena allocates nodes from a instead of a private arena, so the
// caller can release a whole tree with a.Reset.
func WithArena(a *Arena) Option {
	return func(p *Parser) {
		p.arena = a
	}
}

// WithStrict rejects input that has tokens left after a complete
// expression. By default they are ignored.
func WithStrict() Option {
	return func(p *Parser) {
		p.strict = true
	}
}

// MaxDepth bounds how many parentheses may be open at once. Deeper input
// fails with NestingTooDeep instead of exhausting the goroutine stack.
const MaxDepth = 10000

type Parser struct {
	arena  *Arena
	strict bool
	ctx    *context
	depth  int
}

func newParser(opts []Option) *Parser {
	p := &Parser{}
	for _, opt := range opts {
		opt(p)
	}
	if p.arena == nil {
		p.arena = NewArena()
	}
	return p
}

// Parse lexes text from an in-memory backing and builds its AST.
func Parse(text string, opts ...Option) (Node, error) {
	lx := NewLexerFromSource(NewStringSource(text))
	return parseLexer(lx, opts)
}

// ParseFile lexes the file at path from a stream backing and builds its
// AST.
func ParseFile(path string, opts ...Option) (Node, error) {
	lx, err := NewLexer(path, FileBacked)
	if err != nil {
		return nil, err
	}
	defer lx.Close()
	return parseLexer(lx, opts)
}

// ParseReader is ParseFile for an already open stream.
func ParseReader(r io.Reader, opts ...Option) (Node, error) {
	return parseLexer(NewLexerFromSource(NewStreamSource(r)), opts)
}

func parseLexer(lx *Lexer, opts []Option) (Node, error) {
	tokens, err := Tokenize(lx)
	if err != nil {
		return nil, err
	}
	return ParseTokens(tokens, opts...)
}

// ParseTokens builds an AST from a complete token sequence by parsing a
// single expression. A failed parse returns a nil Node.
func ParseTokens(tokens []Token, opts ...Option) (Node, error) {
	p := newParser(opts)
	p.ctx = newContext(tokens)

	n, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if p.strict && !p.ctx.atEnd() {
		return nil, p.unexpected(p.ctx.peek(), TokenEOF)
	}
	return n, nil
}

func (p *Parser) unexpected(got Token, expected ...TokenKind) error {
	return &Error{
		Kind:     UnexpectedToken,
		Pos:      got.Pos,
		Got:      got,
		Expected: expected,
	}
}

// binaryLevel folds operators in ops left-associatively over operands
// parsed by next.
func (p *Parser) binaryLevel(next func() (Node, error), ops ...TokenKind) (Node, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}

	for {
		p.ctx.skipInsignificant()
		op := p.ctx.peek()
		if !isOneOf(op.Kind, ops) {
			return left, nil
		}
		p.ctx.consume()

		right, err := next()
		if err != nil {
			return nil, err
		}
		left = p.arena.Binary(op.Kind, left, right)
	}
}

func isOneOf(kind TokenKind, kinds []TokenKind) bool {
	for _, k := range kinds {
		if k == kind {
			return true
		}
	}
	return false
}

// expression : bitOr
func (p *Parser) parseExpression() (Node, error) {
	return p.parseBitOrExpr()
}

// bitOr : bitXor ( '|' bitXor )*
func (p *Parser) parseBitOrExpr() (Node, error) {
	return p.binaryLevel(p.parseBitXorExpr, TokenBitOr)
}

// bitXor : bitAnd ( '^' bitAnd )*
func (p *Parser) parseBitXorExpr() (Node, error) {
	return p.binaryLevel(p.parseBitAndExpr, TokenBitXor)
}

// bitAnd : additive ( '&' additive )*
func (p *Parser) parseBitAndExpr() (Node, error) {
	return p.binaryLevel(p.parseAdditiveExpr, TokenBitAnd)
}

// additive : multiplicative ( ('+' | '-') multiplicative )*
func (p *Parser) parseAdditiveExpr() (Node, error) {
	return p.binaryLevel(p.parseMultiplicativeExpr, TokenPlus, TokenMinus)
}

// multiplicative : unary ( ('*' | '/' | '%') unary )*
func (p *Parser) parseMultiplicativeExpr() (Node, error) {
	return p.binaryLevel(p.parseUnaryExpr, TokenMultiply, TokenDiv, TokenMod)
}

// unary : primary
func (p *Parser) parseUnaryExpr() (Node, error) {
	return p.parsePrimaryExpr()
}

// primary : number | '(' expression ')'
func (p *Parser) parsePrimaryExpr() (Node, error) {
	p.ctx.skipInsignificant()
	if p.ctx.peek().Kind != TokenLParen {
		return p.parseConstant()
	}
	if p.depth >= MaxDepth {
		tok := p.ctx.peek()
		return nil, &Error{Kind: NestingTooDeep, Pos: tok.Pos, Got: tok}
	}
	p.ctx.consume()

	p.depth++
	expr, err := p.parseExpression()
	p.depth--
	if err != nil {
		return nil, err
	}

	p.ctx.skipInsignificant()
	if tok := p.ctx.pop(); tok.Kind != TokenRParen {
		return nil, p.unexpected(tok, TokenRParen)
	}
	return expr, nil
}

func (p *Parser) parseConstant() (Node, error) {
	p.ctx.skipInsignificant()
	tok := p.ctx.pop()
	if tok.Kind != TokenNumber {
		return nil, p.unexpected(tok, TokenNumber, TokenLParen)
	}

	value, err := strconv.ParseInt(tok.Text, 10, 64)
	if err != nil {
		return nil, &Error{
			Kind: MalformedNumber,
			Pos:  tok.Pos,
			Got:  tok,
			Err:  fmt.Errorf("parse %q: %w", tok.Text, err),
		}
	}
	return p.arena.Leaf(value), nil
}
