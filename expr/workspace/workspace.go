// Package workspace keeps the parsed state of a set of expression files
// and serves it to editors over the Language Server Protocol.
package workspace

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/tiehuis/cc/expr/eval"
	"github.com/tiehuis/cc/expr/parser"
)

// Ext is the extension of files picked up by ScanAll and the watcher.
const Ext = ".expr"

type Workspace struct {
	mu      sync.RWMutex
	rootDir string
	files   map[string]*File
}

// File is the result of lexing, parsing and evaluating one document.
// At most one of ParseErr and EvalErr is set.
type File struct {
	Path     string
	Content  []byte
	Tokens   []parser.Token
	AST      parser.Node
	Value    int64
	ParseErr error
	EvalErr  error
}

func New(rootDir string) *Workspace {
	return &Workspace{
		rootDir: rootDir,
		files:   make(map[string]*File),
	}
}

func (w *Workspace) RootDir() string {
	return w.rootDir
}

// ScanAll loads every expression file under the root. Dot-directories
// are skipped, as FileWatcher does.
func (w *Workspace) ScanAll() error {
	return filepath.Walk(w.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			return skipHidden(w.rootDir, path, info)
		}
		if filepath.Ext(path) == Ext {
			w.ScanFile(path)
		}
		return nil
	})
}

func (w *Workspace) ScanFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	w.UpdateFile(path, content)
	return nil
}

// UpdateFile replaces the content of path and recomputes its state.
func (w *Workspace) UpdateFile(path string, content []byte) *File {
	f := analyze(path, content)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.files[path] = f
	return f
}

func analyze(path string, content []byte) *File {
	f := &File{Path: path, Content: content}

	lx := parser.NewLexerFromSource(parser.NewStringSource(string(content)))
	tokens, err := parser.Tokenize(lx)
	if err != nil {
		f.ParseErr = err
		return f
	}
	f.Tokens = tokens

	ast, err := parser.ParseTokens(tokens, parser.WithStrict())
	if err != nil {
		f.ParseErr = err
		return f
	}
	f.AST = ast

	f.Value, f.EvalErr = eval.Eval(ast)
	return f
}

func (w *Workspace) RemoveFile(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.files, path)
}

func (w *Workspace) GetFile(path string) *File {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.files[path]
}

// Paths returns the known file paths in sorted order.
func (w *Workspace) Paths() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	paths := make([]string, 0, len(w.files))
	for p := range w.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// TokenAtPoint returns the non-whitespace token covering the 1-based
// line and column.
func (f *File) TokenAtPoint(line, column int) (parser.Token, bool) {
	for _, tok := range f.Tokens {
		if tok.Kind == parser.TokenWhitespace || tok.Kind == parser.TokenEOF {
			continue
		}
		if tok.Pos.Line != line {
			continue
		}
		if column >= tok.Pos.Column && column < tok.Pos.Column+tokenWidth(tok) {
			return tok, true
		}
	}
	return parser.Token{}, false
}

// ErrorPosition returns where the file's parse error occurred and how many
// columns it spans.
func (f *File) ErrorPosition() (parser.Position, int, bool) {
	var perr *parser.Error
	if !errors.As(f.ParseErr, &perr) {
		return parser.Position{}, 0, false
	}
	if perr.Kind == parser.UnrecognizedCharacter {
		return perr.Pos, 1, true
	}
	return perr.Pos, tokenWidth(perr.Got), true
}

func tokenWidth(tok parser.Token) int {
	if tok.Text != "" {
		return len([]rune(tok.Text))
	}
	switch tok.Kind {
	case parser.TokenEOF:
		return 0
	case parser.TokenNE, parser.TokenEQ, parser.TokenAnd, parser.TokenOr,
		parser.TokenShl, parser.TokenShr, parser.TokenLE, parser.TokenGE:
		return 2
	}
	return 1
}
