package lexer

import (
	"fmt"
	"unicode/utf8"

	"fortio.org/safecast"
)

// Cursor — позиция в фрагменте текста, читаемом с обоих концов.
// Значение копируемо: сохранённая копия служит точкой отката
// для спекулятивного обратного сканирования.
type Cursor struct {
	text      []byte // подфрагмент File.Content, никогда не копируется
	front     int    // следующий непрочитанный байт спереди
	back      int    // один за последним непрочитанным байтом сзади
	markFront int
	markBack  int
}

// NewCursor creates a cursor over the given text slice.
func NewCursor(text []byte) Cursor {
	return Cursor{text: text, back: len(text)}
}

// EOF проверяет, остались ли непрочитанные байты
func (c *Cursor) EOF() bool {
	return c.front >= c.back
}

// StartToken помечает текущие границы как начало токена
func (c *Cursor) StartToken() {
	c.markFront = c.front
	c.markBack = c.back
}

// TokenLen returns the number of bytes consumed from either end since the
// last StartToken call.
func (c *Cursor) TokenLen() uint32 {
	n, err := safecast.Conv[uint32]((c.front - c.markFront) + (c.markBack - c.back))
	if err != nil {
		panic(fmt.Errorf("token length overflow: %w", err))
	}
	return n
}

// Bump consumes and returns the next rune from the front.
func (c *Cursor) Bump() (rune, bool) {
	if c.EOF() {
		return 0, false
	}
	b := c.text[c.front]
	if b < utf8.RuneSelf { // fast-path ASCII
		c.front++
		return rune(b), true
	}
	r, size := utf8.DecodeRune(c.text[c.front:c.back])
	c.front += size
	return r, true
}

// BumpBack consumes and returns the next rune from the back.
func (c *Cursor) BumpBack() (rune, bool) {
	if c.EOF() {
		return 0, false
	}
	r, size := utf8.DecodeLastRune(c.text[c.front:c.back])
	c.back -= size
	return r, true
}

// Eat consumes the next front byte if it matches b.
func (c *Cursor) Eat(b byte) bool {
	if !c.EOF() && c.text[c.front] == b {
		c.front++
		return true
	}
	return false
}

// EatBack consumes the last unread byte if it matches b.
func (c *Cursor) EatBack(b byte) bool {
	if !c.EOF() && c.text[c.back-1] == b {
		c.back--
		return true
	}
	return false
}

// EatWhile consumes the maximal front run of runes matching pred.
func (c *Cursor) EatWhile(pred func(rune) bool) {
	for {
		if c.EOF() {
			return
		}
		b := c.text[c.front]
		if b < utf8.RuneSelf {
			if !pred(rune(b)) {
				return
			}
			c.front++
			continue
		}
		r, size := utf8.DecodeRune(c.text[c.front:c.back])
		if !pred(r) {
			return
		}
		c.front += size
	}
}

// EatBackWhile consumes the maximal back run of runes matching pred.
func (c *Cursor) EatBackWhile(pred func(rune) bool) {
	for {
		if c.EOF() {
			return
		}
		r, size := utf8.DecodeLastRune(c.text[c.front:c.back])
		if !pred(r) {
			return
		}
		c.back -= size
	}
}

// SkipBack consumes exactly n bytes from the back.
// Вызывающий уже знает байтовую длину (поиск кандидата комментария).
func (c *Cursor) SkipBack(n int) {
	c.back -= n
	if c.back < c.front {
		c.back = c.front
	}
}

// Rest returns the unconsumed slice between the two ends.
func (c *Cursor) Rest() []byte {
	return c.text[c.front:c.back]
}
