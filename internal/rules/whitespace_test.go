package rules

import (
	"testing"

	"pycheck/internal/diag"
	"pycheck/internal/source"
)

func fileOf(t *testing.T, content string) *source.File {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.py", []byte(content))
	return fs.Get(id)
}

func runE275(t *testing.T, content string) *diag.Bag {
	t.Helper()
	bag := diag.NewBag(64)
	MissingWhitespaceAfterKeyword(fileOf(t, content), diag.BagReporter{Bag: bag})
	return bag
}

func TestE275FlagsGluedParen(t *testing.T) {
	bag := runE275(t, "if(x):\n    pass\n")
	if bag.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", bag.Len())
	}
	d := bag.Items()[0]
	if d.Code != diag.CheckMissingWhitespaceAfterKeyword {
		t.Fatalf("code = %v", d.Code)
	}
	if d.Primary.Start != 0 || d.Primary.End != 2 {
		t.Fatalf("primary = %v, want keyword span 0-2", d.Primary)
	}
	if len(d.Fixes) != 1 || d.Fixes[0].Edits[0].Span.Start != 2 || d.Fixes[0].Edits[0].NewText != " " {
		t.Fatalf("fix = %+v, want space insertion at 2", d.Fixes)
	}
}

func TestE275CleanKeywordUsage(t *testing.T) {
	clean := []string{
		"if x:\n",           // есть пробел
		"else:\n",           // двоеточие сразу после keyword легально
		"with open(p):\n",   // пробел после with
		"match x:\n",        // soft keyword с пробелом
		"if\n",              // keyword в конце строки: терминатор не считается
	}
	for _, src := range clean {
		if bag := runE275(t, src); bag.Len() != 0 {
			t.Errorf("%q flagged: %v", src, bag.Items())
		}
	}
}

func TestE275GluedKeywords(t *testing.T) {
	flagged := []string{
		"if(x):\n",
		"with(open(p)):\n",
		"match(x):\n",
		"else[0]\n",
		"if'text':\n", // строковый литерал сразу после keyword
	}
	for _, src := range flagged {
		if bag := runE275(t, src); bag.Len() != 1 {
			t.Errorf("%q: Len() = %d, want 1", src, bag.Len())
		}
	}
}

func TestE275ExceptStarNotFlagged(t *testing.T) {
	// 'except' вне словаря сканера: лексится как Other, пара не проверяется
	if bag := runE275(t, "except*TypeError:\n"); bag.Len() != 0 {
		t.Fatalf("except* flagged: %v", bag.Items())
	}
}

func TestE275YieldParenNotFlagged(t *testing.T) {
	// 'yield' тоже вне словаря
	if bag := runE275(t, "yield)\n"); bag.Len() != 0 {
		t.Fatalf("yield) flagged: %v", bag.Items())
	}
}

func TestE275AsyncNotFlagged(t *testing.T) {
	if bag := runE275(t, "async(x)\n"); bag.Len() != 0 {
		t.Fatalf("async( flagged: %v", bag.Items())
	}
}

func TestE275StopsAtUnclassifiableToken(t *testing.T) {
	// 'x' делает остаток строки Bogus: склейка после него не видна,
	// сканер не вправе судить о ней
	bag := runE275(t, "x = 1 if(y) else z\n")
	if bag.Len() != 0 {
		t.Fatalf("Len() = %d, want 0 (scan stops at first Other)", bag.Len())
	}
}

func TestE275ChecksEveryLine(t *testing.T) {
	bag := runE275(t, "if(a):\n    pass\nwith(b):\n    pass\n")
	if bag.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", bag.Len())
	}
}
