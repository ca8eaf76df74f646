package token

// Kind represents the category of a trivia-level token.
//
// The vocabulary is deliberately tiny: the scanner classifies trivia plus a
// handful of punctuation and keywords relevant to whitespace rules, and
// refuses to interpret anything else (Other, then Bogus).
type Kind uint8

const (
	// Comment is a `#` comment, not including the trailing newline.
	Comment Kind = iota
	// Whitespace is a sequence of ' ' or '\t'.
	Whitespace
	// EOF marks the start or end of the scanned range. Zero-length; never
	// part of the externally visible token sequence.
	EOF
	// Continuation is a line-continuation backslash.
	Continuation
	// Newline is `\n`, `\r`, or `\r\n`.
	Newline

	// LParen represents `(`.
	LParen
	// RParen represents `)`.
	RParen
	// LBrace represents `{`.
	LBrace
	// RBrace represents `}`.
	RBrace
	// LBracket represents `[`.
	LBracket
	// RBracket represents `]`.
	RBracket
	// Comma represents `,`.
	Comma
	// Colon represents `:`.
	Colon
	// Slash represents `/`.
	Slash
	// Star represents `*`.
	Star
	// Dot represents `.`.
	Dot

	// KwElse represents the 'else' keyword.
	KwElse // else
	// KwIf represents the 'if' keyword.
	KwIf // if
	// KwIn represents the 'in' keyword.
	KwIn // in
	// KwAs represents the 'as' keyword.
	KwAs // as
	// KwMatch represents the 'match' soft keyword. Always lexed as a keyword
	// here; the caller decides whether context makes it an identifier.
	KwMatch // match
	// KwWith represents the 'with' keyword.
	KwWith // with
	// KwAsync represents the 'async' keyword.
	KwAsync // async

	// Other is any non-trivia token the scanner does not classify.
	Other
	// Bogus is returned for each character after Other has been returned once.
	Bogus
)

// FromNonTriviaChar maps a single punctuation character to its Kind.
// Anything unrecognized maps to Other.
func FromNonTriviaChar(c rune) Kind {
	switch c {
	case '(':
		return LParen
	case ')':
		return RParen
	case '[':
		return LBracket
	case ']':
		return RBracket
	case '{':
		return LBrace
	case '}':
		return RBrace
	case ',':
		return Comma
	case ':':
		return Colon
	case '/':
		return Slash
	case '*':
		return Star
	case '.':
		return Dot
	default:
		return Other
	}
}

// IsTrivia reports whether the kind carries no syntactic weight.
func (k Kind) IsTrivia() bool {
	switch k {
	case Whitespace, Newline, Comment, Continuation:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the kind is one of the recognized keyword spellings.
func (k Kind) IsKeyword() bool {
	switch k {
	case KwElse, KwIf, KwIn, KwAs, KwMatch, KwWith, KwAsync:
		return true
	default:
		return false
	}
}

func (k Kind) String() string {
	switch k {
	case Comment:
		return "Comment"
	case Whitespace:
		return "Whitespace"
	case EOF:
		return "EOF"
	case Continuation:
		return "Continuation"
	case Newline:
		return "Newline"
	case LParen:
		return "LParen"
	case RParen:
		return "RParen"
	case LBrace:
		return "LBrace"
	case RBrace:
		return "RBrace"
	case LBracket:
		return "LBracket"
	case RBracket:
		return "RBracket"
	case Comma:
		return "Comma"
	case Colon:
		return "Colon"
	case Slash:
		return "Slash"
	case Star:
		return "Star"
	case Dot:
		return "Dot"
	case KwElse:
		return "KwElse"
	case KwIf:
		return "KwIf"
	case KwIn:
		return "KwIn"
	case KwAs:
		return "KwAs"
	case KwMatch:
		return "KwMatch"
	case KwWith:
		return "KwWith"
	case KwAsync:
		return "KwAsync"
	case Other:
		return "Other"
	case Bogus:
		return "Bogus"
	}
	return "Unknown"
}
