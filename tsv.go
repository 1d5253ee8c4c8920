package flatmap

import (
	"fmt"
	"io"
	"strings"
)

var tsvEscaper = strings.NewReplacer("\\", `\\`, "\t", `\t`, "\n", `\n`, "\r", `\r`)

func writeTSV(w io.Writer, rows []FlatMap) error {
	if len(rows) == 0 {
		return nil
	}
	g := toGrid(rows)
	if _, err := fmt.Fprintln(w, joinTSV(g.columns)); err != nil {
		return err
	}
	for _, cells := range g.cells {
		if _, err := fmt.Fprintln(w, joinTSV(cells)); err != nil {
			return err
		}
	}
	return nil
}

func joinTSV(cells []string) string {
	escaped := make([]string, len(cells))
	for i, c := range cells {
		escaped[i] = tsvEscaper.Replace(c)
	}
	return strings.Join(escaped, "\t")
}
