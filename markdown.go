package flatmap

import (
	"fmt"
	"io"
	"strings"
)

var markdownEscaper = strings.NewReplacer("|", `\|`, "\n", " ", "\r", "")

func writeMarkdown(w io.Writer, rows []FlatMap) error {
	if len(rows) == 0 {
		return nil
	}
	g := toGrid(rows)
	header := escapeMarkdown(g.columns)
	cells := make([][]string, len(g.cells))
	for i, row := range g.cells {
		cells[i] = escapeMarkdown(row)
	}

	// Calculate column widths (minimum 3 for alignment markers).
	widths := computeWidths(header, cells)
	for i := range widths {
		if widths[i] < 3 {
			widths[i] = 3
		}
	}

	if err := writeMarkdownRow(w, header, widths, g.aligns); err != nil {
		return err
	}

	sep := make([]string, len(widths))
	for i, width := range widths {
		switch g.aligns[i] {
		case AlignRight:
			sep[i] = strings.Repeat("-", width-1) + ":"
		case AlignCenter:
			sep[i] = ":" + strings.Repeat("-", width-2) + ":"
		default:
			sep[i] = strings.Repeat("-", width)
		}
	}
	if _, err := fmt.Fprintf(w, "| %s |\n", strings.Join(sep, " | ")); err != nil {
		return err
	}

	for _, row := range cells {
		if err := writeMarkdownRow(w, row, widths, g.aligns); err != nil {
			return err
		}
	}
	return nil
}

func escapeMarkdown(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = markdownEscaper.Replace(c)
	}
	return out
}

func writeMarkdownRow(w io.Writer, cells []string, widths []int, aligns []Alignment) error {
	padded := make([]string, len(widths))
	for i, width := range widths {
		padded[i] = alignCell(cells[i], width, aligns[i])
	}
	_, err := fmt.Fprintf(w, "| %s |\n", strings.Join(padded, " | "))
	return err
}

