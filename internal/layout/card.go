package layout

import (
	"strings"

	"github.com/h0rv/taskdeck/internal/domain"
)

// CardOverhead is the number of card lines that do not depend on content:
// the top border, the bottom border and the status line.
const CardOverhead = 3

// InitialsPlaceholder is shown for users without a usable display name.
const InitialsPlaceholder = "??"

// CardHeight returns the number of terminal lines a task card occupies when
// its title is wrapped to maxWidth: the fixed overhead, one line per title
// line and one line per attached sticker.
func CardHeight(task domain.Task, maxWidth int) int {
	return CardOverhead + len(WrapText(task.Title, maxWidth)) + len(task.Stickers)
}

// CardHeights returns CardHeight for every task, in order.
func CardHeights(tasks []domain.Task, maxWidth int) []int {
	heights := make([]int, len(tasks))
	for i, t := range tasks {
		heights[i] = CardHeight(t, maxWidth)
	}
	return heights
}

// Initials abbreviates a display name to two uppercase characters.
//
//	"Ada Lovelace" -> "AL"
//	"ada"          -> "AD"
//	"a"            -> "A "
//	""             -> "??"
func Initials(name string) string {
	words := strings.Fields(name)
	switch len(words) {
	case 0:
		return InitialsPlaceholder
	case 1:
		runes := []rune(words[0])
		if len(runes) == 1 {
			return strings.ToUpper(string(runes[0]) + " ")
		}
		return strings.ToUpper(string(runes[:2]))
	default:
		first := []rune(words[0])[0]
		second := []rune(words[1])[0]
		return strings.ToUpper(string([]rune{first, second}))
	}
}
