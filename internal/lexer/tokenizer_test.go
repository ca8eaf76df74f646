package lexer

import (
	"testing"

	"pycheck/internal/source"
	"pycheck/internal/token"
)

type tk struct {
	kind       token.Kind
	start, end uint32
}

func fileOf(t *testing.T, content string) *source.File {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.py", []byte(content))
	return fs.Get(id)
}

func collect(tz *Tokenizer) []tk {
	var out []tk
	for {
		tok := tz.Next()
		if tok.Kind == token.EOF {
			return out
		}
		out = append(out, tk{tok.Kind, tok.Start(), tok.End()})
	}
}

func collectBack(tz *Tokenizer) []tk {
	var out []tk
	for {
		tok := tz.NextBack()
		if tok.Kind == token.EOF {
			return out
		}
		out = append(out, tk{tok.Kind, tok.Start(), tok.End()})
	}
}

func assertTokens(t *testing.T, got, want []tk) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("token count = %d, want %d\ngot: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token[%d] = {%v %d-%d}, want {%v %d-%d}",
				i, got[i].kind, got[i].start, got[i].end,
				want[i].kind, want[i].start, want[i].end)
		}
	}
}

// assertReverseTokenization проверяет, что обратный проход даёт те же токены,
// что и прямой, только в обратном порядке.
func assertReverseTokenization(t *testing.T, file *source.File, forward []tk) {
	t.Helper()
	backward := collectBack(New(file, source.Span{File: file.ID, Start: 0, End: file.Size()}))
	for i, j := 0, len(backward)-1; i < j; i, j = i+1, j-1 {
		backward[i], backward[j] = backward[j], backward[i]
	}
	assertTokens(t, backward, forward)
}

func TestTokenizeTrivia(t *testing.T) {
	file := fileOf(t, "# comment\n    # comment")

	got := collect(StartsAt(file, 0))
	assertTokens(t, got, []tk{
		{token.Comment, 0, 9},
		{token.Newline, 9, 10},
		{token.Whitespace, 10, 14},
		{token.Comment, 14, 23},
	})
	assertReverseTokenization(t, file, got)
}

func TestTokenizeParentheses(t *testing.T) {
	file := fileOf(t, "([{}])")

	got := collect(StartsAt(file, 0))
	assertTokens(t, got, []tk{
		{token.LParen, 0, 1},
		{token.LBracket, 1, 2},
		{token.LBrace, 2, 3},
		{token.RBrace, 3, 4},
		{token.RBracket, 4, 5},
		{token.RParen, 5, 6},
	})
	assertReverseTokenization(t, file, got)
}

func TestTokenizeComma(t *testing.T) {
	file := fileOf(t, ",,,,")

	got := collect(StartsAt(file, 0))
	assertTokens(t, got, []tk{
		{token.Comma, 0, 1},
		{token.Comma, 1, 2},
		{token.Comma, 2, 3},
		{token.Comma, 3, 4},
	})
	assertReverseTokenization(t, file, got)
}

func TestTokenizeContinuation(t *testing.T) {
	file := fileOf(t, "( \\\n )")

	got := collect(StartsAt(file, 0))
	assertTokens(t, got, []tk{
		{token.LParen, 0, 1},
		{token.Whitespace, 1, 2},
		{token.Continuation, 2, 3},
		{token.Newline, 3, 4},
		{token.Whitespace, 4, 5},
		{token.RParen, 5, 6},
	})
	assertReverseTokenization(t, file, got)
}

func TestTokenizeCRLF(t *testing.T) {
	file := fileOf(t, "(\r\n)")

	got := collect(StartsAt(file, 0))
	assertTokens(t, got, []tk{
		{token.LParen, 0, 1},
		{token.Newline, 1, 3}, // \r\n — один токен
		{token.RParen, 3, 4},
	})
	assertReverseTokenization(t, file, got)
}

func TestTrickyUnicode(t *testing.T) {
	// 'ម' (буква) + 'ុ' (комбинируемый знак): идентификатор из двух рун,
	// по три байта каждая.
	file := fileOf(t, "មុ")

	got := collect(StartsAt(file, 0))
	assertTokens(t, got, []tk{
		{token.Other, 0, 6},
	})
	assertReverseTokenization(t, file, got)
}

func TestIdentifierEndingInNonStartChar(t *testing.T) {
	file := fileOf(t, "i5")

	got := collect(StartsAt(file, 0))
	assertTokens(t, got, []tk{
		{token.Other, 0, 2},
	})
	assertReverseTokenization(t, file, got)
}

func TestWordWithOnlyContinuationChars(t *testing.T) {
	// "555" не начинается с символа-старта идентификатора, поэтому
	// направления расходятся: вперёд Other идёт первым, назад — последним.
	// Это документированная асимметрия, а не дефект.
	file := fileOf(t, "555")

	forward := collect(StartsAt(file, 0))
	assertTokens(t, forward, []tk{
		{token.Other, 0, 1},
		{token.Bogus, 1, 2},
		{token.Bogus, 2, 3},
	})

	backward := collectBack(UpTo(file, 3))
	assertTokens(t, backward, []tk{
		{token.Other, 2, 3},
		{token.Bogus, 1, 2},
		{token.Bogus, 0, 1},
	})
}

func TestTokenizeMultichar(t *testing.T) {
	file := fileOf(t, "if in else match")

	got := collect(StartsAt(file, 0))
	assertTokens(t, got, []tk{
		{token.KwIf, 0, 2},
		{token.Whitespace, 2, 3},
		{token.KwIn, 3, 5},
		{token.Whitespace, 5, 6},
		{token.KwElse, 6, 10},
		{token.Whitespace, 10, 11},
		{token.KwMatch, 11, 16},
	})
	assertReverseTokenization(t, file, got)
}

func TestTokenizeSubstring(t *testing.T) {
	file := fileOf(t, "('some string') # comment")
	span := source.Span{File: file.ID, Start: 14, End: file.Size()}

	got := collect(New(file, span))
	assertTokens(t, got, []tk{
		{token.RParen, 14, 15},
		{token.Whitespace, 15, 16},
		{token.Comment, 16, 26},
	})

	backward := collectBack(New(file, span))
	assertTokens(t, backward, []tk{
		{token.Comment, 16, 26},
		{token.Whitespace, 15, 16},
		{token.RParen, 14, 15},
	})
}

func TestTokenizeSlash(t *testing.T) {
	line1 := " # trailing positional comment"
	line2 := "        # Positional arguments only after here"
	line3 := "        ,/"
	file := fileOf(t, line1+"\n"+line2+"\n"+line3)

	l1 := uint32(len(line1))
	l2 := l1 + 1 + uint32(len(line2))
	l3 := l2 + 1 + uint32(len(line3))

	got := collect(StartsAt(file, 0))
	assertTokens(t, got, []tk{
		{token.Whitespace, 0, 1},
		{token.Comment, 1, l1},
		{token.Newline, l1, l1 + 1},
		{token.Whitespace, l1 + 1, l1 + 9},
		{token.Comment, l1 + 9, l2},
		{token.Newline, l2, l2 + 1},
		{token.Whitespace, l2 + 1, l2 + 9},
		{token.Comma, l2 + 9, l2 + 10},
		{token.Slash, l2 + 10, l3},
	})
	assertReverseTokenization(t, file, got)
}

func TestTokenizeBogus(t *testing.T) {
	line1 := "# leading comment"
	line2 := `        "a string"`
	line3 := "        a = (10)"
	file := fileOf(t, line1+"\n"+line2+"\n"+line3)

	l1 := uint32(len(line1)) // 17
	quote := l1 + 1 + 8      // начало строкового литерала
	end := file.Size()       // 53

	got := collect(StartsAt(file, 0))
	if len(got) == 0 {
		t.Fatal("no tokens")
	}
	assertTokens(t, got[:4], []tk{
		{token.Comment, 0, l1},
		{token.Newline, l1, l1 + 1},
		{token.Whitespace, l1 + 1, quote},
		{token.Other, quote, quote + 1},
	})
	// После Other — только Bogus, по одному символу до конца текста
	rest := got[4:]
	if len(rest) != int(end-quote-1) {
		t.Fatalf("bogus token count = %d, want %d", len(rest), end-quote-1)
	}
	for i, tok := range rest {
		want := tk{token.Bogus, quote + 1 + uint32(i), quote + 2 + uint32(i)}
		if tok != want {
			t.Fatalf("token[%d] = %v, want %v", 4+i, tok, want)
		}
	}

	// Назад разбор ломается в другом месте: ")" ещё распознаётся, "10" без
	// стартового символа — уже нет.
	backward := collectBack(UpTo(file, end))
	assertTokens(t, backward[:2], []tk{
		{token.RParen, end - 1, end},
		{token.Other, end - 2, end - 1},
	})
	for i, tok := range backward[2:] {
		start := end - 3 - uint32(i)
		if tok != (tk{token.Bogus, start, start + 1}) {
			t.Fatalf("backward token[%d] = %v, want Bogus %d-%d", 2+i, tok, start, start+1)
		}
	}
	if got := len(backward); got != int(end) {
		t.Fatalf("backward token count = %d, want %d", got, end)
	}
}

func TestBackwardTrailingComment(t *testing.T) {
	// Эвристика: перед '#' только пробелы и пунктуация — значит комментарий.
	file := fileOf(t, "() # comment")

	backward := collectBack(UpTo(file, file.Size()))
	assertTokens(t, backward, []tk{
		{token.Comment, 3, 12},
		{token.Whitespace, 2, 3},
		{token.RParen, 1, 2},
		{token.LParen, 0, 1},
	})
}

func TestBackwardHashInsideLikelyString(t *testing.T) {
	// Перед '#' стоит идентификатор: кандидат отклоняется, '#' не считается
	// началом комментария.
	file := fileOf(t, "a # b")

	backward := collectBack(UpTo(file, file.Size()))
	assertTokens(t, backward, []tk{
		{token.Other, 4, 5},
		{token.Bogus, 3, 4},
		{token.Bogus, 2, 3},
		{token.Bogus, 1, 2},
		{token.Bogus, 0, 1},
	})
}

func TestBackwardEmptyComment(t *testing.T) {
	file := fileOf(t, "#")

	backward := collectBack(UpTo(file, 1))
	assertTokens(t, backward, []tk{
		{token.Comment, 0, 1},
	})
}

func TestUpToWithoutBackComment(t *testing.T) {
	file := fileOf(t, "# abc")

	// Обычный обратный проход распознаёт комментарий целиком.
	backward := collectBack(UpTo(file, file.Size()))
	assertTokens(t, backward[:1], []tk{
		{token.Comment, 0, 5},
	})

	// С подавленной проверкой '#' не ищется: "abc" лексится как Other.
	tz := UpToWithoutBackComment(file, file.Size())
	tok := tz.NextBack()
	if tok.Kind != token.Other || tok.Start() != 2 || tok.End() != 5 {
		t.Fatalf("NextBack() = {%v %d-%d}, want {Other 2-5}", tok.Kind, tok.Start(), tok.End())
	}
}

func TestEOFIsStable(t *testing.T) {
	file := fileOf(t, ",")

	tz := StartsAt(file, 0)
	tz.Next()
	for i := 0; i < 3; i++ {
		tok := tz.Next()
		if tok.Kind != token.EOF || !tok.Span.Empty() || tok.Start() != 1 {
			t.Fatalf("Next() #%d = {%v %d-%d}, want empty EOF at 1", i, tok.Kind, tok.Start(), tok.End())
		}
	}

	tz = UpTo(file, 1)
	tz.NextBack()
	for i := 0; i < 3; i++ {
		tok := tz.NextBack()
		if tok.Kind != token.EOF || !tok.Span.Empty() || tok.Start() != 0 {
			t.Fatalf("NextBack() #%d = {%v %d-%d}, want empty EOF at 0", i, tok.Kind, tok.Start(), tok.End())
		}
	}
}

func TestSkipTriviaFilter(t *testing.T) {
	file := fileOf(t, "if x:  # c\n    ,")

	filter := StartsAt(file, 0).SkipTrivia()
	var kinds []token.Kind
	for {
		tok, ok := filter.Next()
		if !ok {
			break
		}
		kinds = append(kinds, tok.Kind)
	}
	// После Other всё остальное — Bogus, фильтр их не скрывает
	if len(kinds) < 2 || kinds[0] != token.KwIf || kinds[1] != token.Other {
		t.Fatalf("kinds = %v, want [KwIf Other ...]", kinds)
	}
	for _, k := range kinds[2:] {
		if k.IsTrivia() {
			t.Fatalf("filter leaked trivia kind %v", k)
		}
	}
}

func TestLooksLikeComment(t *testing.T) {
	yes := []string{"", "    ", "\t", "([{,", " ) ", "*/."}
	for _, s := range yes {
		if !looksLikeComment([]byte(s)) {
			t.Errorf("looksLikeComment(%q) = false, want true", s)
		}
	}
	no := []string{"a", "x = 1 ", `"string`, "=", "555 "}
	for _, s := range no {
		if looksLikeComment([]byte(s)) {
			t.Errorf("looksLikeComment(%q) = true, want false", s)
		}
	}
}

func TestLineStartAndCommentCandidate(t *testing.T) {
	cases := []struct {
		rest                 string
		lineStart, candidate int
	}{
		{"", 0, -1},
		{"a = 1", 0, -1},
		{"a = 1 # c # d", 0, 6}, // самый ранний '#' строки
		{"x\ny # c", 2, 4},
		{"x # a\ny", 6, -1}, // '#' предыдущей строки не учитывается
		{"x\r\ny", 3, -1},
	}
	for _, tc := range cases {
		ls, cand := lineStartAndCommentCandidate([]byte(tc.rest))
		if ls != tc.lineStart || cand != tc.candidate {
			t.Errorf("lineStartAndCommentCandidate(%q) = (%d, %d), want (%d, %d)",
				tc.rest, ls, cand, tc.lineStart, tc.candidate)
		}
	}
}
