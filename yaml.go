package flatmap

import (
	"io"

	"gopkg.in/yaml.v3"
)

func writeYAML(w io.Writer, rows []FlatMap, o *writeOptions) error {
	enc := yaml.NewEncoder(w)
	if o.indent != "" {
		enc.SetIndent(len(o.indent))
	}
	if len(rows) == 1 {
		if err := enc.Encode(rows[0]); err != nil {
			return err
		}
	} else {
		if rows == nil {
			rows = []FlatMap{}
		}
		if err := enc.Encode(rows); err != nil {
			return err
		}
	}
	return enc.Close()
}
