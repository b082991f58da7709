package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/gomission/gomission/internal/logging/events"
)

// View returns the frame produced by the last redraw.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	return m.frame
}

// redraw renders the component tree into the cached frame.
func (m *Model) redraw() {
	m.renders++
	if m.width <= 0 || m.height <= 0 {
		m.frame = m.root.Render(defaultWidth, defaultHeight)
		return
	}
	m.frame = m.root.Render(m.width, m.height)
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	m.width = resize.Width
	m.height = resize.Height
	m.redraw()
	return nil
}

// overlay centres box on base, keeping the base visible around it.
func overlay(base, box string, width, height int) string {
	if box == "" {
		return base
	}
	baseLines := strings.Split(base, "\n")
	for len(baseLines) < height {
		baseLines = append(baseLines, "")
	}
	boxLines := strings.Split(box, "\n")
	boxWidth := lipgloss.Width(box)
	if boxWidth > width {
		boxWidth = width
	}
	left := (width - boxWidth) / 2
	top := (len(baseLines) - len(boxLines)) / 2
	if top < 0 {
		top = 0
	}
	for i, line := range boxLines {
		row := top + i
		if row >= len(baseLines) {
			baseLines = append(baseLines, "")
		}
		under := baseLines[row]
		underWidth := ansi.StringWidth(under)
		if underWidth < width {
			under += strings.Repeat(" ", width-underWidth)
		}
		line = ansi.Truncate(line, boxWidth, "")
		baseLines[row] = ansi.Truncate(under, left, "") + line + ansi.Cut(under, left+ansi.StringWidth(line), width)
	}
	return strings.Join(baseLines, "\n")
}

// place pads or cuts rendered content to exactly height lines of width cells.
func place(content string, width, height int) string {
	lines := strings.Split(content, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	for i, line := range lines {
		lines[i] = fitLine(line, width)
	}
	return strings.Join(lines, "\n")
}

func tracePopupOpen(p popup) {
	events.Popup.Open(p.Name())
}

func tracePopupClose(p popup) {
	events.Popup.Close(p.Name())
}
