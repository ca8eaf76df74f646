package diagfmt

import (
	"encoding/json"
	"strings"
	"testing"

	"pycheck/internal/lexer"
	"pycheck/internal/source"
	"pycheck/internal/token"
)

func tokenizeAll(t *testing.T, content string) ([]token.Token, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.py", []byte(content))
	file := fs.Get(id)

	tz := lexer.StartsAt(file, 0)
	var tokens []token.Token
	for {
		tok := tz.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			return tokens, fs
		}
	}
}

func TestFormatTokensPretty(t *testing.T) {
	tokens, fs := tokenizeAll(t, "( ):")

	var sb strings.Builder
	if err := FormatTokensPretty(&sb, tokens, fs); err != nil {
		t.Fatalf("FormatTokensPretty: %v", err)
	}

	lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("lines = %d, want 5:\n%s", len(lines), sb.String())
	}
	if lines[0] != `  1: LParen       "(" at 1:1-1:2` {
		t.Errorf("line 1 = %q", lines[0])
	}
	// Пробельный токен печатается без текста
	if lines[1] != "  2: Whitespace   at 1:2-1:3" {
		t.Errorf("line 2 = %q", lines[1])
	}
	if lines[3] != `  4: Colon        ":" at 1:4-1:5` {
		t.Errorf("line 4 = %q", lines[3])
	}
	if lines[4] != "  5: EOF          at 1:5-1:5" {
		t.Errorf("line 5 = %q", lines[4])
	}
}

func TestFormatTokensPrettyStopsAtEOF(t *testing.T) {
	tokens, fs := tokenizeAll(t, ",")
	// Повторные EOF после первого не печатаются
	tokens = append(tokens, token.Token{Kind: token.EOF, Span: source.Span{File: tokens[0].Span.File, Start: 1, End: 1}})

	var sb strings.Builder
	if err := FormatTokensPretty(&sb, tokens, fs); err != nil {
		t.Fatalf("FormatTokensPretty: %v", err)
	}
	lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2:\n%s", len(lines), sb.String())
	}
}

func TestFormatTokensJSON(t *testing.T) {
	tokens, fs := tokenizeAll(t, "if x:")

	var sb strings.Builder
	if err := FormatTokensJSON(&sb, tokens, fs); err != nil {
		t.Fatalf("FormatTokensJSON: %v", err)
	}

	var out []TokenOutput
	if err := json.Unmarshal([]byte(sb.String()), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	// KwIf, Whitespace, Other; после Other разбор вперёд ломается в Bogus
	if len(out) != 5 {
		t.Fatalf("tokens = %d, want 5: %+v", len(out), out)
	}
	if out[0].Kind != "KwIf" || out[0].Text != "if" {
		t.Errorf("token 0 = %+v", out[0])
	}
	if out[1].Kind != "Whitespace" || out[1].Text != "" {
		t.Errorf("token 1 = %+v", out[1])
	}
	if out[2].Kind != "Other" || out[2].Text != "x" {
		t.Errorf("token 2 = %+v", out[2])
	}
	if out[3].Kind != "Bogus" || out[3].Text != ":" {
		t.Errorf("token 3 = %+v", out[3])
	}
	if out[4].Kind != "EOF" || out[4].Span.Start != 5 || out[4].Span.End != 5 {
		t.Errorf("token 4 = %+v", out[4])
	}
}
