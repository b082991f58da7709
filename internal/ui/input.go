package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	uistate "github.com/gomission/gomission/internal/ui/state"
)

// renderInputLine draws a prompt followed by the buffer with a block caret.
// An empty buffer shows placeholder behind the caret.
func renderInputLine(prompt string, in *uistate.Input, placeholder string, width int) string {
	render := func(style *lipgloss.Style, value string) string {
		if style == nil || value == "" {
			return value
		}
		return style.Render(value)
	}
	head := render(styles.Prompt, prompt)
	runes := []rune(in.Value())
	if len(runes) == 0 {
		line := head + renderCaret(" ") + render(styles.Placeholder, placeholder)
		return fitLine(line, width)
	}
	pos := in.CursorPos()
	before := render(styles.InputText, string(runes[:pos]))
	caretRune := " "
	var after string
	if pos < len(runes) {
		caretRune = string(runes[pos])
		after = render(styles.InputText, string(runes[pos+1:]))
	}
	return fitLine(head+before+renderCaret(caretRune)+after, width)
}

func renderCaret(char string) string {
	if styles.Cursor != nil {
		return styles.Cursor.Copy().Inline(true).Render(char)
	}
	return lipgloss.NewStyle().Reverse(true).Render(char)
}

// fitLine cuts an already styled line to width cells.
func fitLine(line string, width int) string {
	if width <= 0 || ansi.StringWidth(line) <= width {
		return line
	}
	return ansi.Truncate(line, width, "…")
}
