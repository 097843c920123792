package parser

// context is the cursor over a materialized token sequence. The cursor
// never moves past the final TokenEOF.
type context struct {
	tokens []Token
	pos    int
}

func newContext(tokens []Token) *context {
	n := len(tokens)
	if n == 0 || tokens[n-1].Kind != TokenEOF {
		var pos Position
		if n > 0 {
			pos = tokens[n-1].Pos
		}
		tokens = append(tokens[:n:n], Token{Kind: TokenEOF, Pos: pos})
	}
	return &context{tokens: tokens}
}

func (c *context) peek() Token {
	return c.tokens[c.pos]
}

// consume advances the cursor. At TokenEOF it does nothing.
func (c *context) consume() {
	if c.pos < len(c.tokens)-1 {
		c.pos++
	}
}

func (c *context) pop() Token {
	tok := c.peek()
	c.consume()
	return tok
}

// skipInsignificant moves past whitespace.
func (c *context) skipInsignificant() {
	for c.tokens[c.pos].Kind == TokenWhitespace {
		c.pos++
	}
}

// atEnd reports whether only whitespace is left before TokenEOF.
func (c *context) atEnd() bool {
	c.skipInsignificant()
	return c.peek().Kind == TokenEOF
}
