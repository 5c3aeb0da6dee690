package state

import "unicode"

// Input is a single-line text buffer with a rune cursor.
type Input struct {
	Text   string
	Cursor int
}

// Set replaces the buffer and clamps the cursor.
func (in *Input) Set(text string, cursor int) {
	in.Text = text
	in.Cursor = min(max(cursor, 0), len([]rune(text)))
}

// SetEnd replaces the buffer and puts the cursor after the last rune.
func (in *Input) SetEnd(text string) {
	in.Set(text, len([]rune(text)))
}

// Clear empties the buffer.
func (in *Input) Clear() bool {
	if in.Text == "" && in.Cursor == 0 {
		return false
	}
	in.Text = ""
	in.Cursor = 0
	return true
}

// Pos returns the rune offset of the cursor.
func (in *Input) Pos() int {
	return min(max(in.Cursor, 0), len([]rune(in.Text)))
}

// Insert inserts text at the cursor position.
func (in *Input) Insert(text string) bool {
	insert := []rune(text)
	if len(insert) == 0 {
		return false
	}
	runes := []rune(in.Text)
	pos := in.Pos()
	updated := make([]rune, 0, len(runes)+len(insert))
	updated = append(updated, runes[:pos]...)
	updated = append(updated, insert...)
	updated = append(updated, runes[pos:]...)
	in.Set(string(updated), pos+len(insert))
	return true
}

// DeleteBackward deletes the rune before the cursor.
func (in *Input) DeleteBackward() bool {
	runes := []rune(in.Text)
	pos := in.Pos()
	if pos == 0 {
		return false
	}
	updated := append(runes[:pos-1], runes[pos:]...)
	in.Set(string(updated), pos-1)
	return true
}

// DeleteWordBackward deletes the word preceding the cursor.
func (in *Input) DeleteWordBackward() bool {
	runes := []rune(in.Text)
	pos := in.Pos()
	if pos == 0 {
		return false
	}
	i := wordStart(runes, pos)
	updated := append(runes[:i], runes[pos:]...)
	in.Set(string(updated), i)
	return true
}

// MoveStart moves the cursor to the start.
func (in *Input) MoveStart() bool {
	if in.Pos() == 0 {
		return false
	}
	in.Cursor = 0
	return true
}

// MoveEnd moves the cursor to the end.
func (in *Input) MoveEnd() bool {
	end := len([]rune(in.Text))
	if in.Pos() == end {
		return false
	}
	in.Cursor = end
	return true
}

// MoveWordBackward moves the cursor one word backward.
func (in *Input) MoveWordBackward() bool {
	pos := in.Pos()
	i := wordStart([]rune(in.Text), pos)
	if i == pos {
		return false
	}
	in.Cursor = i
	return true
}

// MoveWordForward moves the cursor one word forward.
func (in *Input) MoveWordForward() bool {
	runes := []rune(in.Text)
	pos := in.Pos()
	i := pos
	for i < len(runes) && !unicode.IsSpace(runes[i]) {
		i++
	}
	for i < len(runes) && unicode.IsSpace(runes[i]) {
		i++
	}
	if i == pos {
		return false
	}
	in.Cursor = i
	return true
}

// MoveBackward moves the cursor one rune backward.
func (in *Input) MoveBackward() bool {
	if in.Pos() == 0 {
		return false
	}
	in.Cursor = in.Pos() - 1
	return true
}

// MoveForward moves the cursor one rune forward.
func (in *Input) MoveForward() bool {
	pos := in.Pos()
	if pos >= len([]rune(in.Text)) {
		return false
	}
	in.Cursor = pos + 1
	return true
}

func wordStart(runes []rune, pos int) int {
	i := pos
	for i > 0 && unicode.IsSpace(runes[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(runes[i-1]) {
		i--
	}
	return i
}
