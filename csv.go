package flatmap

import (
	"encoding/csv"
	"io"
)

func writeCSV(w io.Writer, rows []FlatMap, o *writeOptions) error {
	if len(rows) == 0 {
		return nil
	}
	g := toGrid(rows)
	cw := csv.NewWriter(w)
	cw.Comma = o.delimiter
	if err := cw.Write(g.columns); err != nil {
		return err
	}
	for _, cells := range g.cells {
		if err := cw.Write(cells); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
