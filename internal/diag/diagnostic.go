package diag

import (
	"pycheck/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

// TextEdit — один текстовый правёж в координатах исходного файла.
// OldText (если задан) — страховка: движок фиксов сверяет его с файлом
// перед применением.
type TextEdit struct {
	Span    source.Span
	NewText string
	OldText string
}

// Fix describes one automated correction for a diagnostic.
type Fix struct {
	ID          string
	Title       string
	IsPreferred bool
	Edits       []TextEdit
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
	Fixes    []Fix
}
