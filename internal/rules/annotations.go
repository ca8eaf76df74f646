package rules

import (
	"pycheck/internal/diag"
	"pycheck/internal/fix"
	"pycheck/internal/lexer"
	"pycheck/internal/source"
	"pycheck/internal/token"
)

// ReturnAnnotationFix builds a fix that inserts ` -> returnType` between the
// closing parenthesis of a function signature and its colon. afterParen is
// the byte offset just past `)`; it comes from the caller (LSP request or an
// external parser), not from this package. Returns false when the next
// non-trivia token is not the signature colon — inserting anywhere else would
// corrupt the source.
func ReturnAnnotationFix(file *source.File, afterParen uint32, returnType string) (diag.Fix, bool) {
	tok, ok := lexer.FirstNonTriviaToken(file, afterParen)
	if !ok || tok.Kind != token.Colon {
		return diag.Fix{}, false
	}

	at := source.Span{File: file.ID, Start: tok.Start(), End: tok.Start()}
	return fix.InsertText("add return type annotation", at, " -> "+returnType, fix.Preferred()), true
}

// MissingReturnAnnotation reports ANN201 for a signature without a return
// annotation and attaches the `-> None` fix when an insertion point exists.
func MissingReturnAnnotation(file *source.File, afterParen uint32, r diag.Reporter) {
	at := source.Span{File: file.ID, Start: afterParen, End: afterParen}
	builder := diag.ReportCheck(r, diag.CheckMissingReturnAnnotation, at,
		"missing return type annotation")
	if f, ok := ReturnAnnotationFix(file, afterParen, "None"); ok {
		builder.WithFix(f)
	}
	builder.Emit()
}
