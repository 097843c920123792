package parser

import (
	"bufio"
	"errors"
	"io"
	"os"
	"unicode/utf8"
)

// Backing selects where a Lexer reads its characters from.
type Backing int

const (
	StringBacked Backing = iota
	FileBacked
)

func (b Backing) String() string {
	switch b {
	case StringBacked:
		return "string"
	case FileBacked:
		return "file"
	}
	return "unknown"
}

// Source yields characters one at a time. Unget undoes exactly the
// immediately preceding Get; calling it twice in a row, or before any
// Get, has no effect.
type Source interface {
	Get() (rune, bool)
	Unget()
}

// StringSource reads from in-memory text. A NUL character terminates the
// text early.
type StringSource struct {
	text     string
	pos      int
	width    int
	canUnget bool
}

func NewStringSource(text string) *StringSource {
	return &StringSource{text: text}
}

func (s *StringSource) Get() (rune, bool) {
	s.canUnget = false
	if s.pos >= len(s.text) {
		return 0, false
	}
	r, w := utf8.DecodeRuneInString(s.text[s.pos:])
	if r == 0 {
		return 0, false
	}
	s.pos += w
	s.width = w
	s.canUnget = true
	return r, true
}

func (s *StringSource) Unget() {
	if !s.canUnget {
		return
	}
	s.pos -= s.width
	s.canUnget = false
}

// StreamSource reads from an io.Reader through a bufio.Reader, whose
// single-rune pushback backs Unget.
type StreamSource struct {
	r        *bufio.Reader
	closer   io.Closer
	err      error
	canUnget bool
}

func NewStreamSource(r io.Reader) *StreamSource {
	s := &StreamSource{r: bufio.NewReader(r)}
	if c, ok := r.(io.Closer); ok {
		s.closer = c
	}
	return s
}

// OpenFile returns a StreamSource over the file at path. The caller must
// Close it.
func OpenFile(path string) (*StreamSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return NewStreamSource(f), nil
}

func (s *StreamSource) Get() (rune, bool) {
	s.canUnget = false
	if s.err != nil {
		return 0, false
	}
	r, _, err := s.r.ReadRune()
	if err != nil {
		if !errors.Is(err, io.EOF) {
			s.err = err
		}
		return 0, false
	}
	s.canUnget = true
	return r, true
}

func (s *StreamSource) Unget() {
	if !s.canUnget {
		return
	}
	_ = s.r.UnreadRune()
	s.canUnget = false
}

// Err returns the first read error other than io.EOF.
func (s *StreamSource) Err() error {
	return s.err
}

func (s *StreamSource) Close() error {
	if s.closer == nil {
		return nil
	}
	err := s.closer.Close()
	s.closer = nil
	return err
}
