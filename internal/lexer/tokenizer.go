package lexer

import (
	"unicode/utf8"

	"pycheck/internal/source"
	"pycheck/internal/token"
)

// Tokenizer scans a byte range of a Python source file for trivia and a small
// set of non-trivia tokens, from either end. Forward (Next) and backward
// (NextBack) consumption may be interleaved; each direction keeps its own
// position and its own bogus state.
//
// Allocation-free: the tokenizer borrows the file content and yields tokens
// by value.
type Tokenizer struct {
	file       *source.File
	offset     uint32 // абсолютное смещение фронта
	backOffset uint32 // абсолютное смещение за последним непрочитанным байтом

	// Строка перед backOffset уже проверена и комментария не содержит.
	// Монотонный флаг: сбрасывается только при прохождении Newline назад.
	backLineHasNoComment bool

	// После первого Other в данном направлении разбор не восстановим:
	// дальше только Bogus, по одной руне. Состояния независимы по направлениям.
	state     scanState
	backState scanState

	cursor Cursor
}

// scanState is the per-direction state machine of the tokenizer. The only
// transition is stateNormal → stateBogus; there is no way back.
type scanState uint8

const (
	stateNormal scanState = iota
	stateBogus
)

// New creates a tokenizer over the given byte range of file.
func New(file *source.File, span source.Span) *Tokenizer {
	return &Tokenizer{
		file:       file,
		offset:     span.Start,
		backOffset: span.End,
		cursor:     NewCursor(file.Content[span.Start:span.End]),
	}
}

// StartsAt creates a tokenizer scanning from offset to the end of file.
func StartsAt(file *source.File, offset uint32) *Tokenizer {
	return New(file, source.Span{File: file.ID, Start: offset, End: file.Size()})
}

// UpTo creates a tokenizer scanning the range [0, offset), intended for
// backward use.
func UpTo(file *source.File, offset uint32) *Tokenizer {
	return New(file, source.Span{File: file.ID, Start: 0, End: offset})
}

// UpToWithoutBackComment creates a backward tokenizer that skips the
// comment-candidate search for the line containing offset. Safe only when the
// caller knows offset sits before any `#` of its line; backward scanning then
// never pays the line-rescan cost for that line.
func UpToWithoutBackComment(file *source.File, offset uint32) *Tokenizer {
	tz := UpTo(file, offset)
	tz.backLineHasNoComment = true
	return tz
}

func (tz *Tokenizer) spanFrom(start uint32) source.Span {
	return source.Span{File: tz.file.ID, Start: start, End: start + tz.cursor.TokenLen()}
}

// Next returns the next token from the front of the range. Once the range is
// exhausted it keeps returning a zero-length EOF token.
func (tz *Tokenizer) Next() token.Token {
	tz.cursor.StartToken()

	first, ok := tz.cursor.Bump()
	if !ok {
		return token.Token{
			Kind: token.EOF,
			Span: source.Span{File: tz.file.ID, Start: tz.offset, End: tz.offset},
		}
	}

	if tz.state == stateBogus {
		tok := token.Token{Kind: token.Bogus, Span: tz.spanFrom(tz.offset)}
		tz.offset = tok.End()
		return tok
	}

	var kind token.Kind
	switch first {
	case ' ', '\t':
		tz.cursor.EatWhile(func(c rune) bool { return c == ' ' || c == '\t' })
		kind = token.Whitespace

	case '\n':
		kind = token.Newline

	case '\r':
		tz.cursor.Eat('\n')
		kind = token.Newline

	case '#':
		tz.cursor.EatWhile(func(c rune) bool { return c != '\n' && c != '\r' })
		kind = token.Comment

	case '\\':
		kind = token.Continuation

	default:
		if isIdentStart(first) {
			tz.cursor.EatWhile(isIdentContinue)
			end := tz.offset + tz.cursor.TokenLen()
			kind = token.KeywordOrOther(tz.file.Content[tz.offset:end])
		} else {
			kind = token.FromNonTriviaChar(first)
		}
		if kind == token.Other {
			tz.state = stateBogus
		}
	}

	tok := token.Token{Kind: kind, Span: tz.spanFrom(tz.offset)}
	tz.offset = tok.End()
	return tok
}

// NextBack returns the next token from the back of the range. Once the range
// is exhausted it keeps returning a zero-length EOF token.
func (tz *Tokenizer) NextBack() token.Token {
	tz.cursor.StartToken()

	last, ok := tz.cursor.BumpBack()
	if !ok {
		return token.Token{
			Kind: token.EOF,
			Span: source.Span{File: tz.file.ID, Start: tz.backOffset, End: tz.backOffset},
		}
	}

	if tz.backState == stateBogus {
		length := tz.cursor.TokenLen()
		tok := token.Token{
			Kind: token.Bogus,
			Span: source.Span{File: tz.file.ID, Start: tz.backOffset - length, End: tz.backOffset},
		}
		tz.backOffset = tok.Start()
		return tok
	}

	var kind token.Kind
	switch last {
	case ' ', '\t':
		tz.cursor.EatBackWhile(func(c rune) bool { return c == ' ' || c == '\t' })
		kind = token.Whitespace

	case '\r':
		tz.backLineHasNoComment = false
		kind = token.Newline

	case '\n':
		tz.backLineHasNoComment = false
		tz.cursor.EatBack('\r')
		kind = token.Newline

	case '#':
		// Пустой комментарий, либо '#' внутри другого комментария.
		kind = token.Comment

	default:
		commentOffset := -1
		rest := tz.cursor.Rest()
		if !tz.backLineHasNoComment {
			lineStart, candidate := lineStartAndCommentCandidate(rest)
			if candidate >= 0 && looksLikeComment(rest[lineStart:candidate]) {
				commentOffset = candidate
			}
		}
		// Что бы ни нашлось, остаток строки повторно проверять не нужно.
		tz.backLineHasNoComment = true

		switch {
		case commentOffset >= 0:
			// Кандидат '#', всё за ним и уже съеденная руна — один Comment.
			tz.cursor.SkipBack(len(rest) - commentOffset)
			kind = token.Comment

		case last == '\\':
			kind = token.Continuation

		default:
			if isIdentContinue(last) {
				// Спекулятивно съедаем весь хвост идентификатора; если его
				// первая руна не годится в начало, откатываемся и отдаём
				// только последнюю руну как Other.
				save := tz.cursor
				tz.cursor.EatBackWhile(isIdentContinue)
				start := tz.backOffset - tz.cursor.TokenLen()
				text := tz.file.Content[start:tz.backOffset]
				if first, _ := utf8.DecodeRune(text); isIdentStart(first) {
					kind = token.KeywordOrOther(text)
				} else {
					tz.cursor = save
					kind = token.Other
				}
			} else {
				kind = token.FromNonTriviaChar(last)
			}
			if kind == token.Other {
				tz.backState = stateBogus
			}
		}
	}

	length := tz.cursor.TokenLen()
	tok := token.Token{
		Kind: kind,
		Span: source.Span{File: tz.file.ID, Start: tz.backOffset - length, End: tz.backOffset},
	}
	tz.backOffset = tok.Start()
	return tok
}

// SkipTrivia returns a view of the tokenizer that yields only non-trivia
// tokens. Forward and backward iteration may still be interleaved.
func (tz *Tokenizer) SkipTrivia() TriviaFilter {
	return TriviaFilter{tz: tz}
}

// TriviaFilter filters trivia tokens out of a tokenizer's output.
type TriviaFilter struct {
	tz *Tokenizer
}

// Next yields the next non-trivia token from the front, or false at EOF.
func (f TriviaFilter) Next() (token.Token, bool) {
	for {
		tok := f.tz.Next()
		if tok.Kind == token.EOF {
			return tok, false
		}
		if !tok.IsTrivia() {
			return tok, true
		}
	}
}

// NextBack yields the next non-trivia token from the back, or false at EOF.
func (f TriviaFilter) NextBack() (token.Token, bool) {
	for {
		tok := f.tz.NextBack()
		if tok.Kind == token.EOF {
			return tok, false
		}
		if !tok.IsTrivia() {
			return tok, true
		}
	}
}

// lineStartAndCommentCandidate scans rest backward for the boundaries needed
// by the back-comment heuristic: the start of the last line and the earliest
// `#` on that line (-1 if none). Single pass, bytes only — `#`, `\n` and `\r`
// are never continuation bytes of a multibyte rune.
func lineStartAndCommentCandidate(rest []byte) (lineStart, candidate int) {
	candidate = -1
	for i := len(rest) - 1; i >= 0; i-- {
		switch rest[i] {
		case '#':
			candidate = i
		case '\n', '\r':
			return i + 1, candidate
		}
	}
	return 0, candidate
}

// looksLikeComment reports whether everything before a `#` candidate could
// plausibly precede a comment: whitespace or single-character punctuation.
// Это заведомое приближение: строковый литерал с '#' внутри обманет его,
// тогда направление ломается в Bogus, но границы токенов не врут.
func looksLikeComment(beforeHash []byte) bool {
	for i := 0; i < len(beforeHash); {
		c, size := utf8.DecodeRune(beforeHash[i:])
		if !isPythonWhitespace(c) && token.FromNonTriviaChar(c) == token.Other {
			return false
		}
		i += size
	}
	return true
}
