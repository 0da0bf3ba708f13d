// Package layout computes text wrapping, card heights and scroll windows for the
// dashboard. Everything here is pure: the same inputs always produce the same output.
package layout

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// WrapText greedily packs the whitespace-separated words of text into lines no
// wider than maxWidth cells. A word wider than maxWidth is hard-split into
// maxWidth-sized chunks, the last of which may be shorter and may be followed by
// further words. Empty input yields a single empty line.
func WrapText(text string, maxWidth int) []string {
	if maxWidth < 1 {
		maxWidth = 1
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	var cur strings.Builder
	curWidth := 0

	flush := func() {
		lines = append(lines, cur.String())
		cur.Reset()
		curWidth = 0
	}

	for _, word := range words {
		w := runewidth.StringWidth(word)

		if w > maxWidth {
			if curWidth > 0 {
				flush()
			}
			chunks := splitWidth(word, maxWidth)
			lines = append(lines, chunks[:len(chunks)-1]...)
			last := chunks[len(chunks)-1]
			cur.WriteString(last)
			curWidth = runewidth.StringWidth(last)
			continue
		}

		switch {
		case curWidth == 0:
			cur.WriteString(word)
			curWidth = w
		case curWidth+1+w <= maxWidth:
			cur.WriteByte(' ')
			cur.WriteString(word)
			curWidth += 1 + w
		default:
			flush()
			cur.WriteString(word)
			curWidth = w
		}
	}
	if curWidth > 0 {
		flush()
	}

	return lines
}

// splitWidth cuts s into pieces of at most width cells. A single rune wider
// than width still gets a piece of its own so the loop always advances.
func splitWidth(s string, width int) []string {
	var chunks []string
	var cur strings.Builder
	curWidth := 0

	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if curWidth > 0 && curWidth+rw > width {
			chunks = append(chunks, cur.String())
			cur.Reset()
			curWidth = 0
		}
		cur.WriteRune(r)
		curWidth += rw
	}
	if cur.Len() > 0 {
		chunks = append(chunks, cur.String())
	}
	return chunks
}
