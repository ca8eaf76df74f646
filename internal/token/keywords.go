package token

// Намеренно малое подмножество грамматики Python: только слова, нужные
// правилам про trivia-смежность. Всё прочее — Other.
var keywords = map[string]Kind{
	"as":    KwAs,
	"async": KwAsync,
	"else":  KwElse,
	"if":    KwIf,
	"in":    KwIn,
	"match": KwMatch,
	"with":  KwWith,
}

// LookupKeyword возвращает тип и bool если это ключевое слово.
// Ключевые слова регистрозависимые — только lowercase версии распознаются.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

// KeywordOrOther matches an identifier-shaped byte run against the keyword
// spelling set. Unmatched text yields Other: potentially an identifier, but
// the trivia scanner never needs to know.
func KeywordOrOther(ident []byte) Kind {
	if k, ok := keywords[string(ident)]; ok {
		return k
	}
	return Other
}
