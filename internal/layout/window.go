package layout

// Window is the contiguous half-open range [Start, End) of a collection of Len
// items that is currently on screen.
type Window struct {
	Start int
	End   int
	Len   int
}

// HasBefore reports whether items are hidden above (or to the left of) the window.
func (w Window) HasBefore() bool { return w.Start > 0 }

// HasAfter reports whether items are hidden below (or to the right of) the window.
func (w Window) HasAfter() bool { return w.End < w.Len }

// Hidden returns how many items are hidden before and after the window.
func (w Window) Hidden() (before, after int) { return w.Start, w.Len - w.End }

// Contains reports whether index i is inside the window.
func (w Window) Contains(i int) bool { return i >= w.Start && i < w.End }

// Empty reports whether the window covers nothing.
func (w Window) Empty() bool { return w.End <= w.Start }

// ScrollWindow picks the visible range of variable-height items.
//
// offset is the start of the previous window. The window only moves when the
// selected item would fall outside it, and then only as far as needed: scrolling
// up makes the selected item the first visible one, scrolling down makes it the
// last. Items are added while their summed height fits capacity; the first item
// is always shown even when it alone is taller than capacity.
func ScrollWindow(heights []int, selected, offset, capacity int) Window {
	n := len(heights)
	if n == 0 {
		return Window{}
	}
	if capacity < 1 {
		capacity = 1
	}
	selected = clamp(selected, 0, n-1)
	offset = clamp(offset, 0, n-1)

	if selected < offset {
		offset = selected
	}

	end := fill(heights, offset, capacity)
	if selected >= end {
		offset = selected
		used := heights[selected]
		for offset > 0 && used+heights[offset-1] <= capacity {
			offset--
			used += heights[offset]
		}
		end = fill(heights, offset, capacity)
	}

	return Window{Start: offset, End: end, Len: n}
}

// FixedWindow picks the visible range of n equally sized items when at most
// size of them fit. It scrolls lazily like ScrollWindow and never leaves empty
// slots at the end while earlier items are hidden.
func FixedWindow(n, selected, offset, size int) Window {
	if n == 0 {
		return Window{}
	}
	size = clamp(size, 1, n)
	selected = clamp(selected, 0, n-1)
	offset = clamp(offset, 0, n-1)

	if selected < offset {
		offset = selected
	}
	if selected >= offset+size {
		offset = selected - size + 1
	}
	if offset+size > n {
		offset = n - size
	}

	return Window{Start: offset, End: offset + size, Len: n}
}

// fill returns the end index of the run starting at start that fits capacity.
func fill(heights []int, start, capacity int) int {
	end := start
	used := 0
	for end < len(heights) {
		if end > start && used+heights[end] > capacity {
			break
		}
		used += heights[end]
		end++
	}
	return end
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
