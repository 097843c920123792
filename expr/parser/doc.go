// Package parser turns the text of a C-like arithmetic expression into an
// abstract syntax tree.
//
// # Architecture
//
//	┌─────────────┐     ┌─────────────┐     ┌─────────────┐     ┌─────────────┐
//	│   Source    │────▶│   Lexer     │────▶│   context   │────▶│   Parser    │
//	│ (string or  │     │  (tokens)   │     │ (cursor over│     │   (AST)     │
//	│   stream)   │     │             │     │   tokens)   │     │             │
//	└─────────────┘     └─────────────┘     └─────────────┘     └─────────────┘
//
// A Source hands out one character at a time and can push back the last
// one. StringSource reads from memory, StreamSource from any io.Reader
// (OpenFile for paths).
//
// The Lexer classifies characters into Tokens on demand. Whitespace is
// kept: each whitespace character becomes a TokenWhitespace, and the
// grammar skips those tokens wherever it looks for the next meaningful
// one. Operators that start with one of ! = & | < > are read with maximal
// munch, so "<=" is one TokenLE and "<5" is TokenLT followed by a number.
//
// # Grammar
//
// The parser is recursive descent with one function per precedence level,
// lowest binding first:
//
//	expression     : bitOr
//	bitOr          : bitXor ( '|' bitXor )*
//	bitXor         : bitAnd ( '^' bitAnd )*
//	bitAnd         : additive ( '&' additive )*
//	additive       : multiplicative ( ('+' | '-') multiplicative )*
//	multiplicative : unary ( ('*' | '/' | '%') unary )*
//	unary          : primary
//	primary        : number | '(' expression ')'
//
// Every level is a left-associative fold, so "1-2-3" parses as
// ((1-2)-3).
//
// The lexer also recognizes identifiers and the relational, logical,
// shift, ternary and bitwise-not operators. The grammar does not use them
// yet; TokenKind.Reserved lists them.
//
// # Quirks
//
// A lone '=' lexes as TokenBitOr, so "1 = 2" parses like "1 | 2".
//
// Identifiers may contain '_' and, after the first character, digits:
// "_a1" is one TokenIdent.
//
// A character no token starts with, such as '$' or '@', is an
// UnrecognizedCharacter error rather than being skipped.
//
// Parsing stops after one complete expression; anything after it is
// ignored unless WithStrict is given.
//
// # Errors
//
// A failed parse returns a nil Node and an *Error whose Kind is
// UnexpectedToken, MalformedNumber, UnrecognizedCharacter or
// NestingTooDeep. Errors match the sentinels ErrUnexpectedToken,
// ErrMalformedNumber, ErrUnrecognizedCharacter and ErrNestingTooDeep with
// errors.Is.
//
// Parentheses nest at most MaxDepth deep. The check keeps recursion
// bounded, so hostile input yields NestingTooDeep instead of a stack
// overflow.
//
// # Memory
//
// Nodes come from an Arena. Pass WithArena to share one across parses and
// release a whole tree with Arena.Reset once it has been evaluated or
// printed.
package parser
