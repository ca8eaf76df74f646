package lexer

import (
	"pycheck/internal/source"
	"pycheck/internal/token"
)

// Запросы — тонкие одноразовые композиции токенизатора: построить, тянуть
// токены до условия остановки, выбросить.

// FirstNonTriviaToken returns the first non-trivia token at or after offset.
// ok is false when only trivia remains.
func FirstNonTriviaToken(file *source.File, offset uint32) (token.Token, bool) {
	return StartsAt(file, offset).SkipTrivia().Next()
}

// FirstNonTriviaTokenRev returns the first non-trivia token strictly before
// offset, scanning backward. Prefer FirstNonTriviaToken where either works:
// the backward direction pays for comment detection.
func FirstNonTriviaTokenRev(file *source.File, offset uint32) (token.Token, bool) {
	return UpTo(file, offset).SkipTrivia().NextBack()
}

// LinesBefore counts line terminators between offset and the first
// non-whitespace token before it.
func LinesBefore(file *source.File, offset uint32) uint32 {
	tz := UpTo(file, offset)
	var newlines uint32
	for {
		tok := tz.NextBack()
		switch tok.Kind {
		case token.Newline:
			newlines++
		case token.Whitespace:
			// пробелы между переводами строк не считаются
		default:
			return newlines
		}
	}
}

// LinesAfter counts line terminators between offset and the first
// non-whitespace token after it.
func LinesAfter(file *source.File, offset uint32) uint32 {
	tz := StartsAt(file, offset)
	var newlines uint32
	for {
		tok := tz.Next()
		switch tok.Kind {
		case token.Newline:
			newlines++
		case token.Whitespace:
			// пробелы между переводами строк не считаются
		default:
			return newlines
		}
	}
}

// SkipTrailingTrivia returns the offset of the first token at or after offset
// that is not whitespace, a comment, or a continuation. A newline stops the
// scan. Returns offset unchanged when the text ends first.
func SkipTrailingTrivia(file *source.File, offset uint32) uint32 {
	tz := StartsAt(file, offset)
	for {
		tok := tz.Next()
		switch tok.Kind {
		case token.Whitespace, token.Comment, token.Continuation:
			continue
		case token.EOF:
			return offset
		default:
			return tok.Start()
		}
	}
}
