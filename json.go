package flatmap

import (
	"encoding/json"
	"io"
)

func writeJSON(w io.Writer, rows []FlatMap, o *writeOptions) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if o.indent != "" {
		enc.SetIndent("", o.indent)
	}
	if len(rows) == 1 {
		return enc.Encode(rows[0])
	}
	if rows == nil {
		rows = []FlatMap{}
	}
	return enc.Encode(rows)
}
