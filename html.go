package flatmap

import (
	"fmt"
	"html"
	"io"
)

func writeHTML(w io.Writer, rows []FlatMap, o *writeOptions) error {
	if len(rows) == 0 {
		return nil
	}
	g := toGrid(rows)

	if _, err := fmt.Fprintln(w, "<table>"); err != nil {
		return err
	}
	if o.title != "" {
		if _, err := fmt.Fprintf(w, "  <caption>%s</caption>\n", html.EscapeString(o.title)); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(w, "  <thead>\n    <tr>"); err != nil {
		return err
	}
	for _, col := range g.columns {
		if _, err := fmt.Fprintf(w, "      <th>%s</th>\n", html.EscapeString(col)); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, "    </tr>\n  </thead>"); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(w, "  <tbody>"); err != nil {
		return err
	}
	for _, row := range g.cells {
		if _, err := fmt.Fprintln(w, "    <tr>"); err != nil {
			return err
		}
		for i, cell := range row {
			style := alignStyle(g.aligns, i)
			if _, err := fmt.Fprintf(w, "      <td%s>%s</td>\n", style, html.EscapeString(cell)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, "    </tr>"); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, "  </tbody>"); err != nil {
		return err
	}

	_, err := fmt.Fprintln(w, "</table>")
	return err
}

func alignStyle(aligns []Alignment, col int) string {
	if col >= len(aligns) {
		return ""
	}
	switch aligns[col] {
	case AlignRight:
		return ` style="text-align: right"`
	case AlignCenter:
		return ` style="text-align: center"`
	default:
		return ""
	}
}
