package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderTable lays out rows under the given column headers, sizing each
// column to its widest cell. Widths are measured with lipgloss.Width, so
// ANSI-styled cells and wide runes do not skew the alignment. Rows shorter
// than the header render with trailing columns empty; extra cells are
// dropped.
func RenderTable(columns []string, rows [][]string) string {
	if len(columns) == 0 {
		return ""
	}

	widths := make([]int, len(columns))
	for i, c := range columns {
		widths[i] = lipgloss.Width(c)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i >= len(columns) {
				break
			}
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var sb strings.Builder

	for i, c := range columns {
		if i > 0 {
			sb.WriteString("  ")
		}
		sb.WriteString(StyleHeader.Render(padCell(c, widths[i])))
	}
	sb.WriteString("\n")

	for i, w := range widths {
		if i > 0 {
			sb.WriteString("  ")
		}
		sb.WriteString(StyleMuted.Render(strings.Repeat("─", w)))
	}
	sb.WriteString("\n")

	for _, row := range rows {
		for i := range columns {
			var cell string
			if i < len(row) {
				cell = row[i]
			}
			if i > 0 {
				sb.WriteString("  ")
			}
			sb.WriteString(padCell(cell, widths[i]))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// Section renders a styled section header with a rule underneath.
func Section(title string) string {
	header := StyleHeader.Render(title)
	rule := StyleMuted.Render(strings.Repeat("─", 66))
	return fmt.Sprintf("\n %s\n %s", header, rule)
}

// padCell right-pads a cell to width by display width, not byte length, so
// escape sequences and multibyte runes do not count toward the padding.
func padCell(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}
