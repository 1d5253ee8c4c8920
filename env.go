package flatmap

import (
	"fmt"
	"io"
)

func writeENV(w io.Writer, rows []FlatMap, o *writeOptions) error {
	for i, row := range rows {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := writeENVRow(w, row, o); err != nil {
			return err
		}
	}
	return nil
}

func writeENVRow(w io.Writer, row FlatMap, o *writeOptions) error {
	prefix := ""
	if o.export {
		prefix = "export "
	}
	for k, v := range row.All() {
		var err error
		if o.quote {
			_, err = fmt.Fprintf(w, "%s%s=%q\n", prefix, k, v.String())
		} else {
			_, err = fmt.Fprintf(w, "%s%s=%s\n", prefix, k, v.String())
		}
		if err != nil {
			return err
		}
	}
	return nil
}
