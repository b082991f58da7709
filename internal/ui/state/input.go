package state

import (
	"unicode"

	"github.com/gomission/gomission/internal/action"
)

// Input is a single-line text buffer with a rune-indexed caret.
type Input struct {
	text   []rune
	cursor int
}

// NewInput returns a buffer holding text with the caret at the end.
func NewInput(text string) *Input {
	in := &Input{text: []rune(text)}
	in.cursor = len(in.text)
	return in
}

// Value returns the buffer contents.
func (in *Input) Value() string {
	return string(in.text)
}

// CursorPos returns the rune offset of the caret.
func (in *Input) CursorPos() int {
	if in.cursor < 0 {
		return 0
	}
	if in.cursor > len(in.text) {
		return len(in.text)
	}
	return in.cursor
}

// Reset empties the buffer.
func (in *Input) Reset() {
	in.text = nil
	in.cursor = 0
}

// Apply performs an edit request and reports whether anything changed.
func (in *Input) Apply(req action.InputRequest) bool {
	switch req.Kind {
	case action.InsertText:
		return in.Insert(req.Text)
	case action.DeletePrevChar:
		return in.DeleteRuneBackward()
	case action.DeletePrevWord:
		return in.DeleteWordBackward()
	case action.DeleteNextChar:
		return in.DeleteRuneForward()
	case action.CaretLeft:
		return in.MoveRuneBackward()
	case action.CaretRight:
		return in.MoveRuneForward()
	case action.CaretWordLeft:
		return in.MoveWordBackward()
	case action.CaretWordRight:
		return in.MoveWordForward()
	case action.CaretStart:
		return in.MoveStart()
	case action.CaretEnd:
		return in.MoveEnd()
	default:
		return false
	}
}

// Insert inserts text at the caret.
func (in *Input) Insert(text string) bool {
	insert := []rune(text)
	if len(insert) == 0 {
		return false
	}
	pos := in.CursorPos()
	updated := make([]rune, 0, len(in.text)+len(insert))
	updated = append(updated, in.text[:pos]...)
	updated = append(updated, insert...)
	updated = append(updated, in.text[pos:]...)
	in.text = updated
	in.cursor = pos + len(insert)
	return true
}

// DeleteRuneBackward deletes the rune before the caret.
func (in *Input) DeleteRuneBackward() bool {
	pos := in.CursorPos()
	if pos == 0 {
		return false
	}
	in.text = append(in.text[:pos-1], in.text[pos:]...)
	in.cursor = pos - 1
	return true
}

// DeleteRuneForward deletes the rune under the caret.
func (in *Input) DeleteRuneForward() bool {
	pos := in.CursorPos()
	if pos >= len(in.text) {
		return false
	}
	in.text = append(in.text[:pos], in.text[pos+1:]...)
	return true
}

// DeleteWordBackward deletes the word preceding the caret.
func (in *Input) DeleteWordBackward() bool {
	pos := in.CursorPos()
	if pos == 0 {
		return false
	}
	i := in.wordStart(pos)
	in.text = append(in.text[:i], in.text[pos:]...)
	in.cursor = i
	return true
}

// MoveStart moves the caret to the start.
func (in *Input) MoveStart() bool {
	if in.CursorPos() == 0 {
		return false
	}
	in.cursor = 0
	return true
}

// MoveEnd moves the caret to the end.
func (in *Input) MoveEnd() bool {
	if in.CursorPos() == len(in.text) {
		return false
	}
	in.cursor = len(in.text)
	return true
}

// MoveRuneBackward moves the caret one rune backward.
func (in *Input) MoveRuneBackward() bool {
	pos := in.CursorPos()
	if pos == 0 {
		return false
	}
	in.cursor = pos - 1
	return true
}

// MoveRuneForward moves the caret one rune forward.
func (in *Input) MoveRuneForward() bool {
	pos := in.CursorPos()
	if pos >= len(in.text) {
		return false
	}
	in.cursor = pos + 1
	return true
}

// MoveWordBackward moves the caret to the start of the previous word.
func (in *Input) MoveWordBackward() bool {
	pos := in.CursorPos()
	i := in.wordStart(pos)
	if i == pos {
		return false
	}
	in.cursor = i
	return true
}

// MoveWordForward moves the caret past the next word.
func (in *Input) MoveWordForward() bool {
	pos := in.CursorPos()
	i := pos
	for i < len(in.text) && !unicode.IsSpace(in.text[i]) {
		i++
	}
	for i < len(in.text) && unicode.IsSpace(in.text[i]) {
		i++
	}
	if i == pos {
		return false
	}
	in.cursor = i
	return true
}

func (in *Input) wordStart(pos int) int {
	i := pos
	for i > 0 && unicode.IsSpace(in.text[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(in.text[i-1]) {
		i--
	}
	return i
}
