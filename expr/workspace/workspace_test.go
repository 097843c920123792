package workspace

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tiehuis/cc/expr/eval"
	"github.com/tiehuis/cc/expr/parser"
)

func TestUpdateFile(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		value    int64
		parseErr error
		evalErr  error
	}{
		{"value", "2 + 3 * 4\n", 14, nil, nil},
		{"unbalanced", "(1 + 2", 0, parser.ErrUnexpectedToken, nil},
		{"trailing", "1 2", 0, parser.ErrUnexpectedToken, nil},
		{"character", "1 $ 2", 0, parser.ErrUnrecognizedCharacter, nil},
		{"division", "4 / (2 - 2)", 0, nil, eval.ErrDivisionByZero},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := New(t.TempDir())
			f := w.UpdateFile("a.expr", []byte(tt.content))

			if tt.parseErr != nil {
				if !errors.Is(f.ParseErr, tt.parseErr) {
					t.Errorf("ParseErr = %v, want %v", f.ParseErr, tt.parseErr)
				}
				if f.AST != nil {
					t.Errorf("AST = %v, want nil", f.AST)
				}
				return
			}
			if f.ParseErr != nil {
				t.Fatalf("ParseErr = %v", f.ParseErr)
			}
			if tt.evalErr != nil {
				if !errors.Is(f.EvalErr, tt.evalErr) {
					t.Errorf("EvalErr = %v, want %v", f.EvalErr, tt.evalErr)
				}
				return
			}
			if f.Value != tt.value {
				t.Errorf("Value = %d, want %d", f.Value, tt.value)
			}
			if w.GetFile("a.expr") != f {
				t.Error("GetFile did not return the updated file")
			}
		})
	}
}

func TestScanAll(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write("one.expr", "1")
	write("two.expr", "1+1")
	write("notes.txt", "ignored")

	w := New(dir)
	if err := w.ScanAll(); err != nil {
		t.Fatal(err)
	}

	paths := w.Paths()
	want := []string{filepath.Join(dir, "one.expr"), filepath.Join(dir, "two.expr")}
	if len(paths) != len(want) {
		t.Fatalf("Paths() = %v, want %v", paths, want)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("Paths()[%d] = %q, want %q", i, paths[i], want[i])
		}
	}
	if f := w.GetFile(want[1]); f == nil || f.Value != 2 {
		t.Errorf("two.expr = %+v, want Value 2", f)
	}

	w.RemoveFile(want[0])
	if w.GetFile(want[0]) != nil {
		t.Error("file still present after RemoveFile")
	}
}

func TestScanAllSkipsHiddenDirs(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.expr", ".git/b.expr", "sub/c.expr", "sub/.cache/d.expr"} {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("1"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	w := New(dir)
	if err := w.ScanAll(); err != nil {
		t.Fatal(err)
	}

	watched := New(dir)
	NewFileWatcher(watched, time.Hour).Scan()

	want := []string{filepath.Join(dir, "a.expr"), filepath.Join(dir, "sub", "c.expr")}
	for _, got := range [][]string{w.Paths(), watched.Paths()} {
		if len(got) != len(want) {
			t.Fatalf("Paths() = %v, want %v", got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("Paths()[%d] = %q, want %q", i, got[i], want[i])
			}
		}
	}
}

func TestScanFileMissing(t *testing.T) {
	w := New(t.TempDir())
	if err := w.ScanFile(filepath.Join(w.RootDir(), "missing.expr")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want os.ErrNotExist", err)
	}
}

func TestTokenAtPoint(t *testing.T) {
	w := New(".")
	f := w.UpdateFile("a.expr", []byte("12 +\n  345"))

	tests := []struct {
		line, col int
		kind      parser.TokenKind
		text      string
		ok        bool
	}{
		{1, 1, parser.TokenNumber, "12", true},
		{1, 2, parser.TokenNumber, "12", true},
		{1, 3, 0, "", false},
		{1, 4, parser.TokenPlus, "", true},
		{2, 3, parser.TokenNumber, "345", true},
		{2, 5, parser.TokenNumber, "345", true},
		{2, 6, 0, "", false},
		{3, 1, 0, "", false},
	}
	for _, tt := range tests {
		tok, ok := f.TokenAtPoint(tt.line, tt.col)
		if ok != tt.ok {
			t.Errorf("TokenAtPoint(%d, %d) ok = %v, want %v", tt.line, tt.col, ok, tt.ok)
			continue
		}
		if ok && (tok.Kind != tt.kind || tok.Text != tt.text) {
			t.Errorf("TokenAtPoint(%d, %d) = %v, want %v %q", tt.line, tt.col, tok, tt.kind, tt.text)
		}
	}
}

func TestErrorPosition(t *testing.T) {
	tests := []struct {
		content string
		pos     parser.Position
		width   int
	}{
		{"1 + )", parser.Position{Offset: 4, Line: 1, Column: 5}, 1},
		{"(1 + 2", parser.Position{Offset: 6, Line: 1, Column: 7}, 0},
		{"1 +\n@", parser.Position{Offset: 4, Line: 2, Column: 1}, 1},
		{"1 + 22 33", parser.Position{Offset: 7, Line: 1, Column: 8}, 2},
		{"1 == 2", parser.Position{Offset: 2, Line: 1, Column: 3}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.content, func(t *testing.T) {
			f := New(".").UpdateFile("a.expr", []byte(tt.content))
			pos, width, ok := f.ErrorPosition()
			if !ok {
				t.Fatalf("ErrorPosition ok = false, ParseErr = %v", f.ParseErr)
			}
			if pos != tt.pos || width != tt.width {
				t.Errorf("ErrorPosition = %+v, %d, want %+v, %d", pos, width, tt.pos, tt.width)
			}
		})
	}

	clean := New(".").UpdateFile("b.expr", []byte("1"))
	if _, _, ok := clean.ErrorPosition(); ok {
		t.Error("ErrorPosition ok = true for a clean file")
	}
}
