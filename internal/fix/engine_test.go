package fix

import (
	"os"
	"path/filepath"
	"testing"

	"pycheck/internal/diag"
	"pycheck/internal/source"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func loadFile(t *testing.T, fs *source.FileSet, path string) source.FileID {
	t.Helper()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("load %s: %v", path, err)
	}
	return id
}

func TestApplyInsertFix(t *testing.T) {
	path := writeTempFile(t, "a.py", "if(x):\n    pass\n")
	fs := source.NewFileSetWithBase(filepath.Dir(path))
	fileID := loadFile(t, fs, path)

	at := source.Span{File: fileID, Start: 2, End: 2}
	diagnostics := []diag.Diagnostic{{
		Severity: diag.SevError,
		Code:     diag.CheckMissingWhitespaceAfterKeyword,
		Message:  "missing whitespace after keyword",
		Primary:  source.Span{File: fileID, Start: 0, End: 2},
		Fixes:    []diag.Fix{InsertText("insert whitespace", at, " ", WithID("ws-1"))},
	}}

	result, err := Apply(fs, diagnostics, ApplyOptions{Mode: ApplyModeAll})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(result.Applied) != 1 || result.Applied[0].ID != "ws-1" {
		t.Fatalf("applied = %+v, want one fix ws-1", result.Applied)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(got) != "if (x):\n    pass\n" {
		t.Fatalf("file content = %q", got)
	}
}

func TestApplyDeleteFixWithGuard(t *testing.T) {
	path := writeTempFile(t, "b.py", "x = 1\n\n\n\n")
	fs := source.NewFileSetWithBase(filepath.Dir(path))
	fileID := loadFile(t, fs, path)

	span := source.Span{File: fileID, Start: 6, End: 9}
	diagnostics := []diag.Diagnostic{{
		Severity: diag.SevWarning,
		Code:     diag.CheckBlankLineAtEOF,
		Message:  "blank line at end of file",
		Primary:  span,
		Fixes:    []diag.Fix{DeleteSpan("remove blank lines", span, "\n\n\n")},
	}}

	result, err := Apply(fs, diagnostics, ApplyOptions{Mode: ApplyModeOnce})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(result.FileChanges) != 1 {
		t.Fatalf("file changes = %+v, want 1", result.FileChanges)
	}

	got, _ := os.ReadFile(path)
	if string(got) != "x = 1\n" {
		t.Fatalf("file content = %q, want \"x = 1\\n\"", got)
	}
}

func TestApplyGuardMismatchSkips(t *testing.T) {
	path := writeTempFile(t, "c.py", "x = 1\n")
	fs := source.NewFileSetWithBase(filepath.Dir(path))
	fileID := loadFile(t, fs, path)

	span := source.Span{File: fileID, Start: 0, End: 1}
	diagnostics := []diag.Diagnostic{{
		Code:    diag.CheckTooManyBlankLines,
		Primary: span,
		Fixes:   []diag.Fix{ReplaceSpan("rename", span, "y", "z" /* не совпадает */)},
	}}

	result, err := Apply(fs, diagnostics, ApplyOptions{Mode: ApplyModeAll})
	if err == nil {
		t.Fatal("Apply must fail when nothing was applied")
	}
	if len(result.Skipped) != 1 || result.Skipped[0].Reason != "existing text does not match expected content" {
		t.Fatalf("skipped = %+v", result.Skipped)
	}

	got, _ := os.ReadFile(path)
	if string(got) != "x = 1\n" {
		t.Fatalf("file must be untouched, got %q", got)
	}
}

func TestApplyConflictingFixesSkipsSecond(t *testing.T) {
	path := writeTempFile(t, "d.py", "abcdef\n")
	fs := source.NewFileSetWithBase(filepath.Dir(path))
	fileID := loadFile(t, fs, path)

	overlap := source.Span{File: fileID, Start: 1, End: 4}
	diagnostics := []diag.Diagnostic{
		{
			Code:    diag.CheckTooManyBlankLines,
			Primary: overlap,
			Fixes:   []diag.Fix{ReplaceSpan("first", overlap, "X", "", WithID("first"))},
		},
		{
			Code:    diag.CheckTooManyBlankLines,
			Primary: source.Span{File: fileID, Start: 2, End: 5},
			Fixes:   []diag.Fix{ReplaceSpan("second", source.Span{File: fileID, Start: 2, End: 5}, "Y", "", WithID("second"))},
		},
	}

	result, err := Apply(fs, diagnostics, ApplyOptions{Mode: ApplyModeAll})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(result.Applied) != 1 || result.Applied[0].ID != "first" {
		t.Fatalf("applied = %+v, want only 'first'", result.Applied)
	}
	if len(result.Skipped) != 1 || result.Skipped[0].ID != "second" {
		t.Fatalf("skipped = %+v, want 'second'", result.Skipped)
	}
}

func TestApplyByID(t *testing.T) {
	path := writeTempFile(t, "e.py", "ab\n")
	fs := source.NewFileSetWithBase(filepath.Dir(path))
	fileID := loadFile(t, fs, path)

	mk := func(id string, off uint32, text string) diag.Diagnostic {
		sp := source.Span{File: fileID, Start: off, End: off}
		return diag.Diagnostic{
			Code:    diag.CheckMissingWhitespaceAfterKeyword,
			Primary: sp,
			Fixes:   []diag.Fix{InsertText(id, sp, text, WithID(id))},
		}
	}
	diagnostics := []diag.Diagnostic{mk("one", 1, "X"), mk("two", 2, "Y")}

	result, err := Apply(fs, diagnostics, ApplyOptions{Mode: ApplyModeID, TargetID: "two"})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(result.Applied) != 1 || result.Applied[0].ID != "two" {
		t.Fatalf("applied = %+v, want only 'two'", result.Applied)
	}

	got, _ := os.ReadFile(path)
	if string(got) != "abY\n" {
		t.Fatalf("file content = %q, want \"abY\\n\"", got)
	}
}

func TestApplyUnknownIDFails(t *testing.T) {
	path := writeTempFile(t, "f.py", "ab\n")
	fs := source.NewFileSetWithBase(filepath.Dir(path))
	fileID := loadFile(t, fs, path)

	sp := source.Span{File: fileID, Start: 0, End: 0}
	diagnostics := []diag.Diagnostic{{
		Code:    diag.CheckTooManyBlankLines,
		Primary: sp,
		Fixes:   []diag.Fix{InsertText("fix", sp, "#", WithID("known"))},
	}}

	_, err := Apply(fs, diagnostics, ApplyOptions{Mode: ApplyModeID, TargetID: "missing"})
	if err == nil {
		t.Fatal("Apply with unknown id must fail")
	}
}

func TestApplyVirtualFileSkipped(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("virt.py", []byte("ab\n"))
	sp := source.Span{File: fileID, Start: 0, End: 0}
	diagnostics := []diag.Diagnostic{{
		Code:    diag.CheckTooManyBlankLines,
		Primary: sp,
		Fixes:   []diag.Fix{InsertText("fix", sp, "#")},
	}}

	result, err := Apply(fs, diagnostics, ApplyOptions{Mode: ApplyModeAll})
	if err == nil {
		t.Fatal("Apply to a virtual file must fail")
	}
	if len(result.Skipped) != 1 || result.Skipped[0].Reason != "target file is virtual" {
		t.Fatalf("skipped = %+v", result.Skipped)
	}
}

func TestApplyDryRun(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("virt.py", []byte("ab\n"))
	sp := source.Span{File: fileID, Start: 2, End: 2}
	diagnostics := []diag.Diagnostic{{
		Code:    diag.CheckNoNewlineAtEOF,
		Primary: sp,
		Fixes:   []diag.Fix{InsertText("append newline", sp, "\n")},
	}}

	result, err := Apply(fs, diagnostics, ApplyOptions{Mode: ApplyModeAll, DryRun: true})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(result.Applied) != 1 || len(result.FileChanges) != 1 {
		t.Fatalf("result = %+v", result)
	}
}

func TestGatherCandidatesSynthesizesIDs(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.py", []byte("ab"))
	sp := source.Span{File: fileID, Start: 0, End: 0}

	diagnostics := []diag.Diagnostic{{
		Code:    diag.CheckMissingWhitespaceAfterKeyword,
		Primary: sp,
		Fixes: []diag.Fix{
			{Title: "with edits", Edits: []diag.TextEdit{{Span: sp, NewText: " "}}},
			{Title: "without edits"},
		},
	}}

	candidates, skips := gatherCandidates(diagnostics)
	if len(candidates) != 1 {
		t.Fatalf("candidates = %d, want 1", len(candidates))
	}
	if candidates[0].fix.ID == "" {
		t.Fatal("fix ID must be synthesized")
	}
	if len(skips) != 1 || skips[0].Reason != "fix has no edits" {
		t.Fatalf("skips = %+v", skips)
	}
}

func TestSpansConflict(t *testing.T) {
	mk := func(start, end uint32) diag.TextEdit {
		return diag.TextEdit{Span: source.Span{Start: start, End: end}}
	}
	cases := []struct {
		a, b diag.TextEdit
		want bool
	}{
		{mk(0, 0), mk(0, 0), false},       // две вставки в одну точку
		{mk(5, 5), mk(3, 8), true},        // вставка внутри замены
		{mk(3, 8), mk(5, 5), true},
		{mk(0, 3), mk(3, 6), false},       // встык — не конфликт
		{mk(0, 4), mk(3, 6), true},
		{mk(8, 8), mk(3, 8), false},       // вставка на границе End
	}
	for i, tc := range cases {
		if got := spansConflict(tc.a, tc.b); got != tc.want {
			t.Errorf("case %d: spansConflict = %v, want %v", i, got, tc.want)
		}
	}
}
