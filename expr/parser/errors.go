package parser

import (
	"errors"
	"fmt"
	"strings"
)

type ErrorKind int

const (
	// UnexpectedToken: a grammar position required a specific token kind.
	UnexpectedToken ErrorKind = iota
	// MalformedNumber: a number literal did not parse as a base-10 integer.
	MalformedNumber
	// UnrecognizedCharacter: the lexer met a character no token starts with.
	UnrecognizedCharacter
	// NestingTooDeep: more than MaxDepth parentheses were open at once.
	NestingTooDeep
)

var errorKindNames = map[ErrorKind]string{
	UnexpectedToken:       "unexpected token",
	MalformedNumber:       "malformed number",
	UnrecognizedCharacter: "unrecognized character",
	NestingTooDeep:        "nesting too deep",
}

func (k ErrorKind) String() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}
	return "unknown error"
}

var (
	ErrUnexpectedToken       = errors.New("unexpected token")
	ErrMalformedNumber       = errors.New("malformed number")
	ErrUnrecognizedCharacter = errors.New("unrecognized character")
	ErrNestingTooDeep        = errors.New("nesting too deep")
)

var kindSentinels = map[ErrorKind]error{
	UnexpectedToken:       ErrUnexpectedToken,
	MalformedNumber:       ErrMalformedNumber,
	UnrecognizedCharacter: ErrUnrecognizedCharacter,
	NestingTooDeep:        ErrNestingTooDeep,
}

// Error is returned by the lexer and the parser. It matches the
// sentinel of its Kind (ErrUnexpectedToken, ErrMalformedNumber,
// ErrUnrecognizedCharacter or ErrNestingTooDeep) with errors.Is.
type Error struct {
	Kind     ErrorKind
	Pos      Position
	Got      Token
	Expected []TokenKind
	// Char is the offending character for UnrecognizedCharacter.
	Char rune
	// Err is the underlying cause, e.g. a strconv error for MalformedNumber.
	Err error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Pos.String())
	b.WriteString(": ")
	b.WriteString(e.Kind.String())
	switch e.Kind {
	case UnexpectedToken:
		fmt.Fprintf(&b, " %s", e.Got)
		if len(e.Expected) > 0 {
			names := make([]string, len(e.Expected))
			for i, k := range e.Expected {
				names[i] = k.String()
			}
			fmt.Fprintf(&b, ", expected %s", strings.Join(names, " or "))
		}
	case MalformedNumber:
		fmt.Fprintf(&b, " %q", e.Got.Text)
	case UnrecognizedCharacter:
		fmt.Fprintf(&b, " %q", e.Char)
	case NestingTooDeep:
		fmt.Fprintf(&b, ", more than %d open parentheses", MaxDepth)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	return kindSentinels[e.Kind] == target
}

// IsLexical reports whether err came from the lexer rather than the
// grammar.
func IsLexical(err error) bool {
	var perr *Error
	if errors.As(err, &perr) {
		return perr.Kind == UnrecognizedCharacter
	}
	return false
}
