package rules

import (
	"fmt"
	"strings"

	"pycheck/internal/diag"
	"pycheck/internal/fix"
	"pycheck/internal/lexer"
	"pycheck/internal/source"
)

// DefaultMaxBlankLines — допустимое число подряд идущих пустых строк (E303).
const DefaultMaxBlankLines = 2

// TooManyBlankLines flags runs of blank lines longer than maxBlank, the E303
// check. The finding lands on the first non-blank line after the run; the fix
// removes the excess lines and keeps maxBlank of them.
func TooManyBlankLines(file *source.File, maxBlank uint32, r diag.Reporter) {
	lines := lineCount(file)
	sawCode := false
	run := uint32(0) // подряд идущие пустые строки перед текущей

	for line := uint32(1); line <= lines; line++ {
		if isBlankLine(file.GetLine(line)) {
			run++
			continue
		}

		start := file.LineStart(line)
		blanks := lexer.LinesBefore(file, start)
		if sawCode && blanks > 0 {
			// один перевод строки — терминатор предыдущей содержательной строки
			blanks--
		}
		sawCode = true

		if blanks > maxBlank {
			at := source.Span{File: file.ID, Start: start, End: start}
			builder := diag.ReportCheck(r, diag.CheckTooManyBlankLines, at,
				fmt.Sprintf("too many blank lines (%d)", blanks))

			// Фикс строим только если счёт по строкам согласен со сканером
			if run == blanks {
				excessStart := file.LineStart(line - blanks + maxBlank)
				span := source.Span{File: file.ID, Start: excessStart, End: start}
				expect := string(file.Content[excessStart:start])
				builder.WithFix(fix.DeleteSpan("remove extra blank lines", span, expect, fix.Preferred()))
			}
			builder.Emit()
		}
		run = 0
	}
}

// BlankLineAtEOF flags trailing blank lines, the W391 check.
func BlankLineAtEOF(file *source.File, r diag.Reporter) {
	size := file.Size()
	if size == 0 {
		return
	}
	last := file.Content[size-1]
	if last != '\n' && last != '\r' {
		return
	}

	// Последний перевод строки легален, всё сверх него — пустые строки в хвосте
	trailing := lexer.LinesBefore(file, size)
	if trailing <= 1 {
		return
	}

	lines := lineCount(file)
	lastContent := lines
	for lastContent > 0 && isBlankLine(file.GetLine(lastContent)) {
		lastContent--
	}

	at := source.Span{File: file.ID, Start: size, End: size}
	builder := diag.ReportCheck(r, diag.CheckBlankLineAtEOF, at, "blank line at end of file")

	if lastContent > 0 {
		// Удаляем всё после терминатора последней содержательной строки
		cut := file.LineStart(lastContent + 1)
		span := source.Span{File: file.ID, Start: cut, End: size}
		expect := string(file.Content[cut:size])
		builder.WithFix(fix.DeleteSpan("remove trailing blank lines", span, expect, fix.Preferred()))
	}
	builder.Emit()
}

// NoNewlineAtEOF flags a missing final line terminator, the W292 check.
func NoNewlineAtEOF(file *source.File, r diag.Reporter) {
	size := file.Size()
	if size == 0 {
		return
	}
	last := file.Content[size-1]
	if last == '\n' || last == '\r' {
		return
	}

	at := source.Span{File: file.ID, Start: size, End: size}
	diag.ReportCheck(r, diag.CheckNoNewlineAtEOF, at, "no newline at end of file").
		WithFix(fix.InsertText("add trailing newline", at, "\n", fix.Preferred())).
		Emit()
}

func isBlankLine(line string) bool {
	return strings.TrimRight(line, " \t\x0C\r") == ""
}
