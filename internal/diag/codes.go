package diag

import (
	"fmt"
)

// Code — числовой идентификатор проверки. Диапазоны закреплены за
// категориями, строковая форма повторяет привычные pycodestyle-коды.
type Code uint16

const (
	// Неизвестная ошибка - на первое время
	UnknownCode Code = 0

	// Ошибки стиля (E...), значение кода = номер pycodestyle
	CheckMissingWhitespaceAfterKeyword Code = 275
	CheckTooManyBlankLines             Code = 303

	// Предупреждения (W...), значение = 1000 + номер
	CheckNoNewlineAtEOF  Code = 1292
	CheckBlankLineAtEOF  Code = 1391

	// Аннотации (ANN...), значение = 2000 + номер
	CheckMissingReturnAnnotation Code = 2201

	// Ошибки ввода-вывода
	IOLoadFileError  Code = 4001
	IOWriteFileError Code = 4002
	IOConfigError    Code = 4003
	IOCacheError     Code = 4004
)

var codeDescription = map[Code]string{
	UnknownCode: "unknown",

	CheckMissingWhitespaceAfterKeyword: "missing whitespace after keyword",
	CheckTooManyBlankLines:             "too many blank lines",

	CheckNoNewlineAtEOF: "no newline at end of file",
	CheckBlankLineAtEOF: "blank line at end of file",

	CheckMissingReturnAnnotation: "missing return type annotation",

	IOLoadFileError:  "cannot read file",
	IOWriteFileError: "cannot write file",
	IOConfigError:    "invalid configuration",
	IOCacheError:     "cache failure",
}

// AllCheckCodes перечисляет включаемые/выключаемые проверки (без IO).
var AllCheckCodes = []Code{
	CheckMissingWhitespaceAfterKeyword,
	CheckTooManyBlankLines,
	CheckNoNewlineAtEOF,
	CheckBlankLineAtEOF,
	CheckMissingReturnAnnotation,
}

// ParseCheckID resolves a pycodestyle-style ID ("E275", "W391", "ANN201")
// back to its Code.
func ParseCheckID(id string) (Code, bool) {
	for _, c := range AllCheckCodes {
		if c.ID() == id {
			return c, true
		}
	}
	return UnknownCode, false
}

// ID возвращает стабильную строковую форму кода.
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1 && ic < 1000:
		return fmt.Sprintf("E%03d", ic)
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("W%03d", ic-1000)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("ANN%03d", ic-2000)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

// DefaultSeverity задаёт важность по диапазону кода.
func (c Code) DefaultSeverity() Severity {
	switch ic := int(c); {
	case ic >= 1 && ic < 1000:
		return SevError
	case ic >= 1000 && ic < 3000:
		return SevWarning
	case ic >= 4000 && ic < 5000:
		return SevError
	}
	return SevInfo
}
