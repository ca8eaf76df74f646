package driver

import (
	"pycheck/internal/lexer"
	"pycheck/internal/source"
	"pycheck/internal/token"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
}

// Tokenize загружает файл и собирает все токены до EOF включительно.
func Tokenize(path string) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	tz := lexer.StartsAt(file, 0)
	var tokens []token.Token
	for {
		tok := tz.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
	}, nil
}
