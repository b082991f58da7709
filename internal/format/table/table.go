package table

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/truncate"
)

type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

const (
	separator = "  "
	ellipsis  = "…"
)

// Layout describes how columns share the available width. Flex names the
// column that absorbs slack or gives up space when rows are too wide; -1
// disables flexing.
type Layout struct {
	Alignments []Alignment
	Flex       int
	Width      int
}

// Format returns the rows padded according to the widest entry in each column.
func Format(rows [][]string, alignments []Alignment) []string {
	return FormatLayout(rows, Layout{Alignments: alignments, Flex: -1})
}

// FormatLayout pads rows like Format and then fits them into l.Width by
// growing or truncating the flex column. Width <= 0 means unbounded.
func FormatLayout(rows [][]string, l Layout) []string {
	if len(rows) == 0 {
		return nil
	}
	widths := columnWidths(rows)
	if l.Width > 0 && l.Flex >= 0 && l.Flex < len(widths) {
		fitFlex(widths, l.Flex, l.Width)
	}
	out := make([]string, len(rows))
	for i, row := range rows {
		var b strings.Builder
		for c, cell := range row {
			if c > 0 {
				b.WriteString(separator)
			}
			if c < len(widths) && cellWidth(cell) > widths[c] {
				cell = truncate.StringWithTail(cell, uint(widths[c]), ellipsis)
			}
			pad := 0
			if c < len(widths) {
				pad = widths[c] - cellWidth(cell)
			}
			if c < len(l.Alignments) && l.Alignments[c] == AlignRight {
				writeSpaces(&b, pad)
				b.WriteString(cell)
			} else {
				b.WriteString(cell)
				writeSpaces(&b, pad)
			}
		}
		line := b.String()
		if l.Width > 0 && cellWidth(line) > l.Width {
			line = ansi.Truncate(line, l.Width, "")
		}
		out[i] = line
	}
	return out
}

func columnWidths(rows [][]string) []int {
	colCount := 0
	for _, row := range rows {
		if len(row) > colCount {
			colCount = len(row)
		}
	}
	widths := make([]int, colCount)
	for _, row := range rows {
		for c, cell := range row {
			if w := cellWidth(cell); w > widths[c] {
				widths[c] = w
			}
		}
	}
	return widths
}

func fitFlex(widths []int, flex, total int) {
	used := len(separator) * (len(widths) - 1)
	for c, w := range widths {
		if c != flex {
			used += w
		}
	}
	avail := total - used
	if avail < 1 {
		avail = 1
	}
	widths[flex] = avail
}

func cellWidth(text string) int {
	return ansi.StringWidth(text)
}

func writeSpaces(b *strings.Builder, count int) {
	if count <= 0 {
		return
	}
	b.WriteString(strings.Repeat(" ", count))
}
