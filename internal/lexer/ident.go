package lexer

import (
	"unicode"
	"unicode/utf8"
)

// isPythonWhitespace reports whether c separates tokens inside a logical line.
// Newlines are deliberately excluded: they are tokens of their own.
func isPythonWhitespace(c rune) bool {
	switch c {
	case ' ', '\t', '\x0C':
		return true
	default:
		return false
	}
}

// Классы идентификаторов по справочнику языка Python. ASCII быстрым путём,
// остальное через таблицы unicode.
//
// Python требует XID_Start/XID_Continue (замкнутые относительно NFKC), но в
// stdlib таких таблиц нет. Здесь ID_Start/ID_Continue минус Pattern_Syntax и
// Pattern_White_Space: расхождение с XID ограничено горсткой кодовых точек
// вроде U+037A и U+0E33, которые NFKC раскладывает в последовательности.
// Для trivia-сканера это безопасно: худший случай - словесный ток с чуть
// иной границей, никогда не ложный Bogus.

var identStartTables = []*unicode.RangeTable{
	unicode.L, unicode.Nl, unicode.Other_ID_Start,
}

var identContinueTables = []*unicode.RangeTable{
	unicode.L, unicode.Nl, unicode.Other_ID_Start,
	unicode.Mn, unicode.Mc, unicode.Nd, unicode.Pc, unicode.Other_ID_Continue,
}

// isIdentStart reports whether c can begin a Python identifier. See the
// note above on how this approximates XID_Start.
func isIdentStart(c rune) bool {
	if c < utf8.RuneSelf {
		return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
	}
	return unicode.In(c, identStartTables...) &&
		!unicode.In(c, unicode.Pattern_Syntax, unicode.Pattern_White_Space)
}

// isIdentContinue reports whether c can continue a Python identifier,
// approximating XID_Continue the same way isIdentStart approximates XID_Start.
func isIdentContinue(c rune) bool {
	if c < utf8.RuneSelf {
		return c == '_' || ('a' <= c && c <= 'z') ||
			('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
	}
	return unicode.In(c, identContinueTables...) &&
		!unicode.In(c, unicode.Pattern_Syntax, unicode.Pattern_White_Space)
}
