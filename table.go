package flatmap

import (
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Border glyphs in the order: corners (top-left, top-right, bottom-left,
// bottom-right), horizontal, vertical, tees (top, bottom, left, right), cross.
var borderGlyphs = map[BorderStyle]string{
	BorderRounded: "╭╮╰╯─│┬┴├┤┼",
	BorderASCII:   "++++-|+++++",
	BorderHeavy:   "┏┓┗┛━┃┳┻┣┫╋",
	BorderDouble:  "╔╗╚╝═║╦╩╠╣╬",
}

type borderChars struct {
	topLeft, topRight, bottomLeft, bottomRight string
	horizontal, vertical                       string
	topTee, bottomTee, leftTee, rightTee       string
	cross                                      string
}

func bordersFor(style BorderStyle) borderChars {
	glyphs, ok := borderGlyphs[style]
	if !ok {
		glyphs = borderGlyphs[BorderRounded]
	}
	g := strings.Split(glyphs, "")
	return borderChars{
		topLeft: g[0], topRight: g[1], bottomLeft: g[2], bottomRight: g[3],
		horizontal: g[4], vertical: g[5],
		topTee: g[6], bottomTee: g[7], leftTee: g[8], rightTee: g[9],
		cross: g[10],
	}
}

// tableWriter emits a grid line by line. The first write error sticks and
// turns later writes into no-ops.
type tableWriter struct {
	w      io.Writer
	widths []int
	err    error
}

func (t *tableWriter) line(s string) {
	if t.err != nil {
		return
	}
	_, t.err = io.WriteString(t.w, s+"\n")
}

// rule draws a horizontal line spanning every column plus its padding.
func (t *tableWriter) rule(left, fill, mid, right string) {
	segs := make([]string, len(t.widths))
	for i, width := range t.widths {
		segs[i] = strings.Repeat(fill, width+2)
	}
	t.line(left + strings.Join(segs, mid) + right)
}

func (t *tableWriter) cells(cells []string, aligns []Alignment) []string {
	out := make([]string, len(t.widths))
	for i, width := range t.widths {
		align := AlignLeft
		if aligns != nil {
			align = aligns[i]
		}
		out[i] = formatTableCell(cells[i], width, align)
	}
	return out
}

func (t *tableWriter) plainRow(cells []string, aligns []Alignment) {
	t.line(strings.TrimRight(strings.Join(t.cells(cells, aligns), "  "), " "))
}

func (t *tableWriter) borderedRow(cells []string, aligns []Alignment, vert string) {
	t.line(vert + " " + strings.Join(t.cells(cells, aligns), " "+vert+" ") + " " + vert)
}

func writeTable(w io.Writer, rows []FlatMap, o *writeOptions) error {
	if len(rows) == 0 {
		return nil
	}
	g := toGrid(rows)
	widths := computeWidths(g.columns, g.cells)
	if o.maxWidth > 0 {
		for i := range widths {
			widths[i] = min(widths[i], o.maxWidth)
		}
	}

	t := &tableWriter{w: w, widths: widths}
	if o.border == BorderNone {
		renderPlainTable(t, g)
	} else {
		renderBorderedTable(t, o.title, g, bordersFor(o.border))
	}
	return t.err
}

func computeWidths(header []string, rows [][]string) []int {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}
	return widths
}

// renderPlainTable writes space separated columns with a dashed rule under
// the header.
func renderPlainTable(t *tableWriter, g grid) {
	t.plainRow(g.columns, nil)
	dashes := make([]string, len(t.widths))
	for i, width := range t.widths {
		dashes[i] = strings.Repeat("-", width)
	}
	t.line(strings.Join(dashes, "  "))
	for _, row := range g.cells {
		t.plainRow(row, g.aligns)
	}
}

func renderBorderedTable(t *tableWriter, title string, g grid, bc borderChars) {
	if title != "" {
		t.rule(bc.topLeft, bc.horizontal, bc.horizontal, bc.topRight)
		inner := tableInnerWidth(t.widths) - 2
		text := alignCell(runewidth.Truncate(title, inner, "..."), inner, AlignCenter)
		t.line(bc.vertical + " " + text + " " + bc.vertical)
		t.rule(bc.leftTee, bc.horizontal, bc.topTee, bc.rightTee)
	} else {
		t.rule(bc.topLeft, bc.horizontal, bc.topTee, bc.topRight)
	}

	t.borderedRow(g.columns, nil, bc.vertical)
	t.rule(bc.leftTee, bc.horizontal, bc.cross, bc.rightTee)
	for _, row := range g.cells {
		t.borderedRow(row, g.aligns, bc.vertical)
	}
	t.rule(bc.bottomLeft, bc.horizontal, bc.bottomTee, bc.bottomRight)
}

// tableInnerWidth is the width between the outer borders: every column with
// one space of padding per side, plus one separator between columns.
func tableInnerWidth(widths []int) int {
	n := max(len(widths)-1, 0)
	for _, w := range widths {
		n += w + 2
	}
	return n
}

func formatTableCell(s string, width int, align Alignment) string {
	if width > 0 && runewidth.StringWidth(s) > width {
		tail := "..."
		if width <= len(tail) {
			tail = ""
		}
		s = runewidth.Truncate(s, width, tail)
	}
	return alignCell(s, width, align)
}

func alignCell(s string, width int, align Alignment) string {
	pad := width - runewidth.StringWidth(s)
	if pad <= 0 {
		return s
	}
	switch align {
	case AlignRight:
		return strings.Repeat(" ", pad) + s
	case AlignCenter:
		left := pad / 2
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
	default:
		return s + strings.Repeat(" ", pad)
	}
}
