package components

// Window is a cursor over Len items with Size of them visible from Offset.
type Window struct {
	Cursor int
	Offset int
	Size   int
	Len    int
}

// NewWindow creates a window showing size items.
func NewWindow(size int) Window {
	return Window{Size: size}
}

// SetLen replaces the item count and keeps the cursor in range.
func (w *Window) SetLen(n int) {
	w.Len = n
	w.clamp()
}

// SetSize changes how many items are visible.
func (w *Window) SetSize(n int) {
	w.Size = n
	w.clamp()
}

// Down moves the cursor forward by one.
func (w *Window) Down() {
	w.Cursor++
	w.clamp()
}

// Up moves the cursor back by one.
func (w *Window) Up() {
	w.Cursor--
	w.clamp()
}

// PageDown moves the cursor a full window forward.
func (w *Window) PageDown() {
	w.Cursor += w.size()
	w.clamp()
}

// PageUp moves the cursor a full window back.
func (w *Window) PageUp() {
	w.Cursor -= w.size()
	w.clamp()
}

// Home jumps to the first item.
func (w *Window) Home() {
	w.Cursor = 0
	w.clamp()
}

// End jumps to the last item.
func (w *Window) End() {
	w.Cursor = w.Len - 1
	w.clamp()
}

// Range returns the visible [start, end) item indexes.
func (w Window) Range() (int, int) {
	end := w.Offset + w.size()
	if end > w.Len {
		end = w.Len
	}
	return w.Offset, end
}

// Rel converts the cursor to an index inside Range, or -1 when empty.
func (w Window) Rel() int {
	if w.Len == 0 {
		return -1
	}
	return w.Cursor - w.Offset
}

func (w Window) size() int {
	if w.Size < 1 {
		return 1
	}
	return w.Size
}

func (w *Window) clamp() {
	if w.Len <= 0 {
		w.Cursor, w.Offset = 0, 0
		return
	}
	if w.Cursor >= w.Len {
		w.Cursor = w.Len - 1
	}
	if w.Cursor < 0 {
		w.Cursor = 0
	}
	size := w.size()
	if w.Cursor < w.Offset {
		w.Offset = w.Cursor
	}
	if w.Cursor >= w.Offset+size {
		w.Offset = w.Cursor - size + 1
	}
	if maxOffset := w.Len - size; w.Offset > maxOffset {
		w.Offset = maxOffset
	}
	if w.Offset < 0 {
		w.Offset = 0
	}
}
