package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"pycheck/internal/diag"
	"pycheck/internal/source"
)

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes с
// аналогичным форматом. Цвет включается опцией.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		prettyDiagnostic(w, d, fs, opts)
	}
}

func prettyDiagnostic(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	path := formatPath(fs, d.Primary.File, opts.PathMode)
	start, _ := fs.Resolve(d.Primary)

	sev := d.Severity.String()
	code := d.Code.ID()
	if opts.Color {
		sev = severityColor(d.Severity).Sprint(sev)
		code = color.New(color.Bold).Sprint(code)
	}
	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n", path, start.Line, start.Col, sev, code, d.Message)

	writeContext(w, fs, d.Primary, opts)

	if opts.ShowNotes {
		for _, note := range d.Notes {
			nstart, _ := fs.Resolve(note.Span)
			npath := formatPath(fs, note.Span.File, opts.PathMode)
			label := "note"
			if opts.Color {
				label = color.New(color.FgCyan).Sprint(label)
			}
			fmt.Fprintf(w, "  %s: %s:%d:%d: %s\n", label, npath, nstart.Line, nstart.Col, note.Msg)
		}
	}

	if opts.ShowFixes {
		for _, f := range d.Fixes {
			label := "fix"
			if opts.Color {
				label = color.New(color.FgGreen).Sprint(label)
			}
			suffix := ""
			if f.ID != "" {
				suffix = fmt.Sprintf(" (--id %s)", f.ID)
			}
			fmt.Fprintf(w, "  %s: %s%s\n", label, f.Title, suffix)
		}
	}
}

// writeContext печатает строку-контекст и подчёркивание ^~~~ под Span.
// Ширина подчёркивания считается в экранных колонках, не в байтах, чтобы
// каретка не уезжала на табах и широких рунах.
func writeContext(w io.Writer, fs *source.FileSet, span source.Span, opts PrettyOpts) {
	file := fs.Get(span.File)
	start, _ := fs.Resolve(span)
	line := file.GetLine(start.Line)
	if line == "" && span.Start >= file.Size() {
		return
	}
	line = strings.TrimRight(line, "\r")

	lineStart := file.LineStart(start.Line)
	if span.Start < lineStart {
		return
	}
	startOff := int(span.Start - lineStart)
	if startOff > len(line) {
		startOff = len(line)
	}
	endOff := int(span.End - lineStart)
	if endOff > len(line) {
		endOff = len(line)
	}
	if endOff < startOff {
		endOff = startOff
	}
	before := line[:startOff]
	covered := line[startOff:endOff]

	display := line
	if opts.Width > 0 {
		display = runewidth.Truncate(display, int(opts.Width), "…")
	}
	fmt.Fprintf(w, "  %s\n", display)

	pad := strings.Repeat(" ", runewidth.StringWidth(expandTabs(before)))
	caretWidth := runewidth.StringWidth(expandTabs(covered))
	if caretWidth < 1 {
		caretWidth = 1
	}
	caret := "^" + strings.Repeat("~", caretWidth-1)
	if opts.Color {
		caret = color.New(color.FgHiRed, color.Bold).Sprint(caret)
	}
	fmt.Fprintf(w, "  %s%s\n", pad, caret)
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return color.New(color.FgRed, color.Bold)
	case diag.SevWarning:
		return color.New(color.FgYellow, color.Bold)
	default:
		return color.New(color.FgCyan)
	}
}

func formatPath(fs *source.FileSet, id source.FileID, mode PathMode) string {
	f := fs.Get(id)
	switch mode {
	case PathModeAbsolute:
		return f.FormatPath("absolute", "")
	case PathModeRelative:
		return f.FormatPath("relative", fs.BaseDir())
	case PathModeBasename:
		return f.FormatPath("basename", "")
	case PathModeAuto:
		return f.FormatPath("auto", "")
	default:
		return f.Path
	}
}

// PrettySummary печатает итоговую строку после списка диагностик.
func PrettySummary(w io.Writer, bag *diag.Bag, opts PrettyOpts) {
	errs, warns := 0, 0
	for _, d := range bag.Items() {
		switch d.Severity {
		case diag.SevError:
			errs++
		case diag.SevWarning:
			warns++
		}
	}
	if errs == 0 && warns == 0 {
		msg := "no problems found"
		if opts.Color {
			msg = color.New(color.FgGreen).Sprint(msg)
		}
		fmt.Fprintln(w, msg)
		return
	}
	msg := fmt.Sprintf("found %d error(s), %d warning(s)", errs, warns)
	if opts.Color && errs > 0 {
		msg = color.New(color.FgRed).Sprint(msg)
	}
	if fixable := bag.CountFixable(); fixable > 0 {
		msg += fmt.Sprintf(", %d fixable with `pycheck fix`", fixable)
	}
	fmt.Fprintln(w, msg)
}
