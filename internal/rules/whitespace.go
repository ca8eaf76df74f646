package rules

import (
	"fmt"

	"fortio.org/safecast"

	"pycheck/internal/diag"
	"pycheck/internal/fix"
	"pycheck/internal/lexer"
	"pycheck/internal/source"
	"pycheck/internal/token"
)

// MissingWhitespaceAfterKeyword flags keyword tokens glued to the following
// token, the E275 check. A following colon or line terminator is fine
// (`else:`, `if(` is not), and `async` composes with the next keyword so it
// never needs the check. `except*` and `yield)` are not in the scanner's
// keyword vocabulary and therefore never reach the pair check.
func MissingWhitespaceAfterKeyword(file *source.File, r diag.Reporter) {
	for line := uint32(1); line <= lineCount(file); line++ {
		checkKeywordLine(file, file.LineStart(line), r)
	}
}

// checkKeywordLine сканирует одну физическую строку. После первого Other
// классификация ненадёжна, дальше по строке не идём.
func checkKeywordLine(file *source.File, lineStart uint32, r diag.Reporter) {
	tz := lexer.StartsAt(file, lineStart)
	prev := token.Token{Kind: token.EOF}
	for {
		tok := tz.Next()
		if tok.Kind == token.EOF || tok.Kind == token.Newline {
			return
		}

		if glued(prev, tok) {
			at := source.Span{File: file.ID, Start: prev.End(), End: prev.End()}
			diag.ReportCheck(r, diag.CheckMissingWhitespaceAfterKeyword, prev.Span,
				fmt.Sprintf("missing whitespace after keyword '%s'", file.Content[prev.Start():prev.End()])).
				WithFix(fix.InsertText("insert missing whitespace", at, " ", fix.Preferred())).
				Emit()
		}

		if tok.Kind == token.Other {
			return
		}
		prev = tok
	}
}

// glued reports whether prev is a keyword that needs whitespace before tok.
func glued(prev, tok token.Token) bool {
	if !prev.Kind.IsKeyword() || prev.Kind == token.KwAsync {
		return false
	}
	if tok.Start() != prev.End() {
		return false
	}
	// Двоеточие сразу после keyword легально: `else:`, `match x:`
	return !tok.IsTrivia() && tok.Kind != token.Colon
}

func lineCount(file *source.File) uint32 {
	n, err := safecast.Conv[uint32](len(file.LineIdx) + 1)
	if err != nil {
		panic(fmt.Errorf("line count overflow: %w", err))
	}
	return n
}
