package state

// Table tracks the selection and viewport of a list whose rows are owned
// elsewhere. A selection exists exactly when the list is non-empty and it
// always indexes a valid row.
type Table struct {
	Cursor         int
	ViewportOffset int
	length         int
}

// NewTable returns an empty table with no selection.
func NewTable() *Table {
	return &Table{Cursor: -1}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return t.length
}

// SetLength replaces the row count, keeping the selection in range. A table
// gaining its first rows selects the first one.
func (t *Table) SetLength(n int) {
	if n < 0 {
		n = 0
	}
	t.length = n
	if n == 0 {
		t.Cursor = -1
		t.ViewportOffset = 0
		return
	}
	if t.Cursor < 0 {
		t.Cursor = 0
	}
	if t.Cursor >= n {
		t.Cursor = n - 1
	}
	if t.ViewportOffset > n-1 {
		t.ViewportOffset = 0
	}
}

// Selected returns the selected row index.
func (t *Table) Selected() (int, bool) {
	if t.length == 0 || t.Cursor < 0 || t.Cursor >= t.length {
		return 0, false
	}
	return t.Cursor, true
}

// Select moves the selection to i if it is in range.
func (t *Table) Select(i int) bool {
	if i < 0 || i >= t.length {
		return false
	}
	old := t.Cursor
	t.Cursor = i
	return old != i
}

// Next moves the selection down one row, stopping at the last.
func (t *Table) Next() bool {
	return t.moveCursorBy(1)
}

// Prev moves the selection up one row, stopping at the first.
func (t *Table) Prev() bool {
	return t.moveCursorBy(-1)
}

// MoveCursorHome moves the cursor to the first row.
func (t *Table) MoveCursorHome() bool {
	if t.length == 0 {
		return false
	}
	old := t.Cursor
	t.Cursor = 0
	return old != t.Cursor
}

// MoveCursorEnd moves the cursor to the last row.
func (t *Table) MoveCursorEnd() bool {
	if t.length == 0 {
		return false
	}
	old := t.Cursor
	t.Cursor = t.length - 1
	return old != t.Cursor
}

// MoveCursorPageUp moves the cursor up by the given page size.
func (t *Table) MoveCursorPageUp(maxVisible int) bool {
	return t.moveCursorBy(-t.pageSize(maxVisible))
}

// MoveCursorPageDown moves the cursor down by the given page size.
func (t *Table) MoveCursorPageDown(maxVisible int) bool {
	return t.moveCursorBy(t.pageSize(maxVisible))
}

func (t *Table) moveCursorBy(delta int) bool {
	if t.length == 0 {
		t.Cursor = -1
		return false
	}
	old := t.Cursor
	if t.Cursor < 0 {
		t.Cursor = 0
	}
	t.Cursor += delta
	if t.Cursor < 0 {
		t.Cursor = 0
	}
	if t.Cursor >= t.length {
		t.Cursor = t.length - 1
	}
	return t.Cursor != old
}

func (t *Table) pageSize(maxVisible int) int {
	if t.length == 0 {
		return 0
	}
	size := maxVisible
	if size <= 0 || size > t.length {
		size = t.length
	}
	if size < 1 {
		size = 1
	}
	return size
}

// EnsureCursorVisible adjusts the viewport offset so the cursor stays visible.
func (t *Table) EnsureCursorVisible(maxVisible int) {
	if t.length == 0 {
		t.Cursor = -1
		t.ViewportOffset = 0
		return
	}
	if maxVisible <= 0 {
		t.ViewportOffset = 0
		return
	}
	maxOffset := t.length - maxVisible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if t.ViewportOffset > maxOffset {
		t.ViewportOffset = maxOffset
	}
	if t.ViewportOffset < 0 {
		t.ViewportOffset = 0
	}
	if t.Cursor < t.ViewportOffset {
		t.ViewportOffset = t.Cursor
	}
	if upper := t.ViewportOffset + maxVisible - 1; t.Cursor > upper {
		t.ViewportOffset = t.Cursor - maxVisible + 1
		if t.ViewportOffset > maxOffset {
			t.ViewportOffset = maxOffset
		}
	}
}

// Window returns the half-open row range visible in maxVisible rows.
func (t *Table) Window(maxVisible int) (start, end int) {
	t.EnsureCursorVisible(maxVisible)
	if maxVisible <= 0 {
		return 0, t.length
	}
	start = t.ViewportOffset
	end = start + maxVisible
	if end > t.length {
		end = t.length
	}
	return start, end
}
