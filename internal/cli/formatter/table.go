package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const colGap = 2

// RenderTable renders an aligned table with a header rule. Widths are
// measured on visible text so styled cells line up. Columns whose cells are
// all numeric ("4.6", "$20", "12", "4.8/5.0") are right-aligned.
func RenderTable(headers []string, rows [][]string) string {
	cols := len(headers)
	if cols == 0 {
		return ""
	}

	widths := make([]int, cols)
	numeric := make([]bool, cols)
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
		numeric[i] = len(rows) > 0
	}
	for _, row := range rows {
		for i := 0; i < cols; i++ {
			cell := cellAt(row, i)
			widths[i] = max(widths[i], lipgloss.Width(cell))
			if !isNumericCell(cell) {
				numeric[i] = false
			}
		}
	}

	var b strings.Builder
	writeRow := func(cells []string, style func(string) string) {
		for i := 0; i < cols; i++ {
			cell := cellAt(cells, i)
			pad := strings.Repeat(" ", max(widths[i]-lipgloss.Width(cell), 0))
			if style != nil {
				cell = style(cell)
			}
			switch {
			case numeric[i]:
				b.WriteString(pad + cell)
			case i < cols-1:
				b.WriteString(cell + pad)
			default:
				b.WriteString(cell)
			}
			if i < cols-1 {
				b.WriteString(strings.Repeat(" ", colGap))
			}
		}
		b.WriteString("\n")
	}

	writeRow(headers, func(s string) string { return StyleHeader.Render(s) })
	rules := make([]string, cols)
	for i, w := range widths {
		rules[i] = StyleDim.Render(strings.Repeat("─", w))
	}
	writeRow(rules, nil)
	for _, row := range rows {
		writeRow(row, nil)
	}
	return b.String()
}

func cellAt(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

// isNumericCell accepts plain numbers with an optional "$" prefix or "/5.0"
// suffix. Styled cells are judged on their visible text.
func isNumericCell(cell string) bool {
	s := strings.TrimSpace(ansi.Strip(cell))
	s = strings.TrimPrefix(s, "$")
	s, _, _ = strings.Cut(s, "/")
	if s == "" {
		return false
	}
	dot := false
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r == '.' && !dot:
			dot = true
		default:
			return false
		}
	}
	return true
}
