package layout

import (
	"strings"
	"testing"

	"github.com/h0rv/taskdeck/internal/domain"
	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapText_Empty(t *testing.T) {
	assert.Equal(t, []string{""}, WrapText("", 10))
	assert.Equal(t, []string{""}, WrapText("   \t ", 10))
}

func TestWrapText_GreedyPacking(t *testing.T) {
	lines := WrapText("the quick brown fox jumps over", 10)
	assert.Equal(t, []string{"the quick", "brown fox", "jumps over"}, lines)
}

func TestWrapText_CollapsesWhitespace(t *testing.T) {
	assert.Equal(t, []string{"a b c"}, WrapText("  a \n b\t c ", 10))
}

func TestWrapText_HardSplitsLongWord(t *testing.T) {
	lines := WrapText("abcdefghijkl", 5)
	assert.Equal(t, []string{"abcde", "fghij", "kl"}, lines)
}

func TestWrapText_LongWordBetweenShortWords(t *testing.T) {
	lines := WrapText("hi abcdefgh yo", 4)
	assert.Equal(t, []string{"hi", "abcd", "efgh", "yo"}, lines)

	// The last chunk is a regular line that later words may join.
	lines = WrapText("abcdef g", 4)
	assert.Equal(t, []string{"abcd", "ef g"}, lines)
}

func TestWrapText_NeverExceedsWidth(t *testing.T) {
	text := "Lorem ipsum dolor sit amet, consectetur adipiscing elit, sed do eiusmod tempor incididunt"
	for width := 1; width <= 30; width++ {
		for _, line := range WrapText(text, width) {
			assert.LessOrEqual(t, runewidth.StringWidth(line), width, "width %d line %q", width, line)
		}
	}
}

func TestWrapText_KeepsAllWords(t *testing.T) {
	text := "alpha beta gamma delta epsilon"
	lines := WrapText(text, 11)
	assert.Equal(t, text, strings.Join(lines, " "))
}

func TestWrapText_Idempotent(t *testing.T) {
	for _, line := range WrapText("wrap this sentence into a few short lines", 12) {
		assert.Equal(t, []string{line}, WrapText(line, 12))
	}
}

func TestWrapText_WideRunes(t *testing.T) {
	lines := WrapText("日本語テキスト", 4)
	for _, line := range lines {
		assert.LessOrEqual(t, runewidth.StringWidth(line), 4)
	}
	assert.Equal(t, "日本語テキスト", strings.Join(lines, ""))
}

func TestWrapText_ZeroWidthTreatedAsOne(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, WrapText("ab", 0))
}

func TestCardHeight(t *testing.T) {
	task := domain.Task{Title: "short"}
	assert.Equal(t, 4, CardHeight(task, 20))

	task.Title = "a title that needs three lines"
	assert.Equal(t, 3+len(WrapText(task.Title, 12)), CardHeight(task, 12))
}

func TestCardHeight_MonotonicInStickers(t *testing.T) {
	task := domain.Task{Title: "Sticker test", Stickers: map[string]domain.StickerValue{}}
	prev := CardHeight(task, 15)
	for i := 0; i < 5; i++ {
		task.Stickers[string(rune('a'+i))] = domain.TextValue("v")
		h := CardHeight(task, 15)
		assert.GreaterOrEqual(t, h, prev)
		assert.Equal(t, prev+1, h)
		prev = h
	}
}

func TestInitials(t *testing.T) {
	cases := map[string]string{
		"Ada Lovelace":          "AL",
		"grace brewster hopper": "GB",
		"linus":                 "LI",
		"x":                     "X ",
		"":                      "??",
		"   ":                   "??",
		"élodie durand":         "ÉD",
	}
	for in, want := range cases {
		assert.Equal(t, want, Initials(in), "Initials(%q)", in)
	}
}

func TestScrollWindow_Empty(t *testing.T) {
	w := ScrollWindow(nil, 0, 0, 10)
	assert.True(t, w.Empty())
	assert.False(t, w.HasBefore())
	assert.False(t, w.HasAfter())
}

func TestScrollWindow_FitsAll(t *testing.T) {
	w := ScrollWindow([]int{3, 3, 3}, 2, 0, 20)
	assert.Equal(t, Window{Start: 0, End: 3, Len: 3}, w)
	assert.False(t, w.HasBefore())
	assert.False(t, w.HasAfter())
}

func TestScrollWindow_ScrollsDownLazily(t *testing.T) {
	heights := []int{4, 4, 4, 4, 4, 4}

	w := ScrollWindow(heights, 0, 0, 10)
	assert.Equal(t, 0, w.Start)
	assert.Equal(t, 2, w.End)
	assert.True(t, w.HasAfter())

	// Moving within the window does not scroll
	w = ScrollWindow(heights, 1, w.Start, 10)
	assert.Equal(t, 0, w.Start)

	// Moving one past the end shifts by exactly one
	w = ScrollWindow(heights, 2, w.Start, 10)
	assert.Equal(t, 1, w.Start)
	assert.Equal(t, 3, w.End)
	assert.True(t, w.HasBefore())
	assert.True(t, w.HasAfter())
}

func TestScrollWindow_ScrollsUpLazily(t *testing.T) {
	heights := []int{4, 4, 4, 4, 4, 4}

	w := ScrollWindow(heights, 4, 3, 10)
	assert.Equal(t, 3, w.Start)

	w = ScrollWindow(heights, 2, w.Start, 10)
	assert.Equal(t, 2, w.Start, "selected becomes the first visible item")
	assert.Equal(t, 4, w.End)
}

func TestScrollWindow_VariableHeights(t *testing.T) {
	heights := []int{2, 6, 2, 2, 5}

	w := ScrollWindow(heights, 4, 0, 10)
	assert.True(t, w.Contains(4))
	// 2+2+5 fits, adding the 6 would not
	assert.Equal(t, 2, w.Start)
	assert.Equal(t, 5, w.End)
	assert.False(t, w.HasAfter())
}

func TestScrollWindow_OversizedItem(t *testing.T) {
	heights := []int{3, 20, 3}
	w := ScrollWindow(heights, 1, 0, 8)
	assert.True(t, w.Contains(1))
	assert.Equal(t, 1, w.Start)
	assert.Equal(t, 2, w.End)
}

func TestScrollWindow_AlwaysContainsSelected(t *testing.T) {
	heights := []int{5, 1, 7, 2, 2, 9, 3, 4, 1, 1, 6}
	for capacity := 1; capacity <= 25; capacity++ {
		offset := 0
		for sel := 0; sel < len(heights); sel++ {
			w := ScrollWindow(heights, sel, offset, capacity)
			require.True(t, w.Contains(sel), "cap %d sel %d window %+v", capacity, sel, w)
			assert.Equal(t, w.Start > 0, w.HasBefore())
			assert.Equal(t, w.End < len(heights), w.HasAfter())
			offset = w.Start
		}
		for sel := len(heights) - 1; sel >= 0; sel-- {
			w := ScrollWindow(heights, sel, offset, capacity)
			require.True(t, w.Contains(sel), "cap %d sel %d window %+v", capacity, sel, w)
			offset = w.Start
		}
	}
}

func TestScrollWindow_ClampsOutOfRangeInput(t *testing.T) {
	w := ScrollWindow([]int{1, 1}, 7, 9, 5)
	assert.True(t, w.Contains(1))
	assert.Equal(t, 2, w.Len)
}

func TestFixedWindow_Columns(t *testing.T) {
	w := FixedWindow(4, 3, 0, MaxColumnsVisible)
	assert.Equal(t, Window{Start: 0, End: 4, Len: 4}, w)
	assert.False(t, w.HasAfter(), "all four columns are visible")

	w = FixedWindow(6, 0, 0, 4)
	assert.True(t, w.HasAfter())
	assert.False(t, w.HasBefore())

	w = FixedWindow(6, 4, w.Start, 4)
	assert.Equal(t, 1, w.Start)
	assert.True(t, w.HasBefore())
	assert.True(t, w.HasAfter())

	w = FixedWindow(6, 5, w.Start, 4)
	assert.Equal(t, 2, w.Start)
	assert.False(t, w.HasAfter())

	w = FixedWindow(6, 3, w.Start, 4)
	assert.Equal(t, 2, w.Start, "no scroll while the selection stays visible")
}

func TestFixedWindow_ShrinkPullsBack(t *testing.T) {
	w := FixedWindow(3, 2, 5, 4)
	assert.Equal(t, Window{Start: 0, End: 3, Len: 3}, w)
}

func TestKanban_Geometry(t *testing.T) {
	g := Kanban(164, 30, 6)
	assert.Equal(t, MaxColumnsVisible, g.VisibleColumns)
	assert.Equal(t, 40, g.ColumnWidth)
	assert.Equal(t, 34, g.CardWidth)
	assert.Equal(t, 28, g.InnerHeight)
	assert.Equal(t, 25, g.CardCapacity)

	g = Kanban(64, 30, 6)
	assert.Equal(t, 3, g.VisibleColumns, "narrow terminals show fewer columns")

	g = Kanban(164, 30, 2)
	assert.Equal(t, 2, g.VisibleColumns)

	g = Kanban(10, 3, 0)
	assert.Equal(t, 0, g.VisibleColumns)
	assert.GreaterOrEqual(t, g.CardWidth, 1)
	assert.GreaterOrEqual(t, g.CardCapacity, 1)
}

func TestListCapacity(t *testing.T) {
	assert.Equal(t, 18, ListCapacity(20))
	assert.Equal(t, 1, ListCapacity(0))
}
