package flatmap

import (
	"encoding/json"
	"io"
)

func writeJSONL(w io.Writer, rows []FlatMap, o *writeOptions) error {
	for _, row := range rows {
		if err := writeJSONLRow(w, row, o); err != nil {
			return err
		}
	}
	return nil
}

func writeJSONLRow(w io.Writer, row FlatMap, o *writeOptions) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if o.indent != "" {
		enc.SetIndent("", o.indent)
	}
	return enc.Encode(row)
}
