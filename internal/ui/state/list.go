package state

// List is an ordered column of node identifiers with a cursor and a
// viewport offset. A non-empty list always has a selection.
type List struct {
	Items          []string
	Cursor         int
	ViewportOffset int
}

// NewList constructs a List over items with the cursor on the first entry.
func NewList(items []string) *List {
	l := &List{}
	l.SetItems(items)
	return l
}

// SetItems replaces the items and resets the cursor to the top.
func (l *List) SetItems(items []string) {
	l.Items = append([]string(nil), items...)
	l.Cursor = 0
	l.ViewportOffset = 0
}

// Len reports the number of items.
func (l *List) Len() int {
	return len(l.Items)
}

// Selected returns the item under the cursor.
func (l *List) Selected() (string, bool) {
	if l.Cursor < 0 || l.Cursor >= len(l.Items) {
		return "", false
	}
	return l.Items[l.Cursor], true
}

// IndexOf returns the index of id, or -1.
func (l *List) IndexOf(id string) int {
	for i, item := range l.Items {
		if item == id {
			return i
		}
	}
	return -1
}

// Select moves the cursor onto id.
func (l *List) Select(id string) bool {
	idx := l.IndexOf(id)
	if idx < 0 {
		return false
	}
	l.Cursor = idx
	return true
}

// MoveCursorHome moves the cursor to the first item.
func (l *List) MoveCursorHome() bool {
	if len(l.Items) == 0 {
		l.Cursor = 0
		return false
	}
	old := l.Cursor
	l.Cursor = 0
	return old != l.Cursor
}

// MoveCursorEnd moves the cursor to the last item.
func (l *List) MoveCursorEnd() bool {
	n := len(l.Items)
	if n == 0 {
		l.Cursor = 0
		return false
	}
	old := l.Cursor
	l.Cursor = n - 1
	return old != l.Cursor
}

// MoveCursorPageUp moves the cursor up by the given page size.
func (l *List) MoveCursorPageUp(maxVisible int) bool {
	return l.MoveCursorBy(-l.pageSize(maxVisible))
}

// MoveCursorPageDown moves the cursor down by the given page size.
func (l *List) MoveCursorPageDown(maxVisible int) bool {
	return l.MoveCursorBy(l.pageSize(maxVisible))
}

// MoveCursorBy moves the cursor by delta, clamped to the list bounds.
func (l *List) MoveCursorBy(delta int) bool {
	if len(l.Items) == 0 {
		l.Cursor = 0
		return false
	}
	old := l.Cursor
	l.Cursor = max(l.Cursor, 0) + delta
	l.Cursor = min(max(l.Cursor, 0), len(l.Items)-1)
	return l.Cursor != old
}

func (l *List) pageSize(maxVisible int) int {
	total := len(l.Items)
	if total == 0 {
		return 0
	}
	size := maxVisible
	if size <= 0 || size > total {
		size = total
	}
	return max(size, 1)
}

// EnsureCursorVisible adjusts the viewport offset so the cursor stays visible.
func (l *List) EnsureCursorVisible(maxVisible int) {
	if len(l.Items) == 0 {
		l.Cursor = 0
		l.ViewportOffset = 0
		return
	}
	l.Cursor = min(max(l.Cursor, 0), len(l.Items)-1)
	if maxVisible <= 0 {
		l.ViewportOffset = 0
		return
	}
	maxOffset := max(len(l.Items)-maxVisible, 0)
	l.ViewportOffset = min(max(l.ViewportOffset, 0), maxOffset)
	if l.Cursor < l.ViewportOffset {
		l.ViewportOffset = l.Cursor
	}
	if upper := l.ViewportOffset + maxVisible - 1; l.Cursor > upper {
		l.ViewportOffset = min(max(l.Cursor-maxVisible+1, 0), maxOffset)
	}
}

// Visible returns the slice of items inside the viewport.
func (l *List) Visible(maxVisible int) []string {
	if maxVisible <= 0 || maxVisible >= len(l.Items) {
		return l.Items
	}
	end := min(l.ViewportOffset+maxVisible, len(l.Items))
	return l.Items[l.ViewportOffset:end]
}
