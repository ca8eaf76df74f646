package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"pycheck/internal/source"
	"pycheck/internal/token"
)

type TokenOutput struct {
	Kind string      `json:"kind"`
	Text string      `json:"text,omitempty"`
	Span source.Span `json:"span"`
}

// tokenText возвращает исходный текст токена; для пробельных токенов пусто,
// чтобы не засорять вывод.
func tokenText(tok token.Token, fs *source.FileSet) string {
	if tok.Kind == token.Whitespace || tok.Kind == token.Newline || tok.Kind == token.EOF {
		return ""
	}
	file := fs.Get(tok.Span.File)
	if tok.Span.End > file.Size() {
		return ""
	}
	return string(file.Content[tok.Span.Start:tok.Span.End])
}

// FormatTokensPretty выводит токены в человекочитаемом формате
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for i, tok := range tokens {
		// Получаем позицию токена
		startPos, endPos := fs.Resolve(tok.Span)

		fmt.Fprintf(w, "%3d: %-12s", i+1, tok.Kind.String())

		if text := tokenText(tok, fs); text != "" {
			fmt.Fprintf(w, " %q", text)
		}

		fmt.Fprintf(w, " at %d:%d-%d:%d",
			startPos.Line, startPos.Col,
			endPos.Line, endPos.Col)

		fmt.Fprintln(w)

		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	output := make([]TokenOutput, 0, len(tokens))

	for _, tok := range tokens {
		output = append(output, TokenOutput{
			Kind: tok.Kind.String(),
			Text: tokenText(tok, fs),
			Span: tok.Span,
		})

		if tok.Kind == token.EOF {
			break
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
