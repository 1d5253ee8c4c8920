package flatmap

import (
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"strings"
)

// WriteIter renders rows from an iterator and writes them to w as they arrive.
// JSONL, ENV, logfmt and GoTemplate write each row immediately. JSON streams
// rows as array elements. Formats whose layout depends on every row (CSV,
// TSV, Table, Markdown, HTML, YAML) collect the rows first, because their
// column set is the union of all row keys.
func WriteIter(w io.Writer, f Format, seq iter.Seq[FlatMap], opts ...WriteOption) error {
	o := newWriteOptions(opts)
	switch f {
	case JSON:
		return streamJSON(w, seq, o)
	case JSONL:
		return streamRows(w, seq, func(row FlatMap) error { return writeJSONLRow(w, row, o) })
	case Logfmt:
		return streamRows(w, seq, func(row FlatMap) error { return writeLogfmtRow(w, row) })
	case ENV:
		return streamENV(w, seq, o)
	case YAML, CSV, TSV, Table, Markdown, HTML:
		return write(w, f, collect(seq), o)
	default:
		if tmplStr, ok := strings.CutPrefix(string(f), goTemplatePrefix); ok {
			tmpl, err := parseTemplate(tmplStr)
			if err != nil {
				return err
			}
			return streamRows(w, seq, func(row FlatMap) error { return executeTemplateRow(w, tmpl, row) })
		}
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
}

// WriteChan renders rows from a channel and writes them to w.
// It is a thin wrapper around [WriteIter].
func WriteChan(w io.Writer, f Format, ch <-chan FlatMap, opts ...WriteOption) error {
	return WriteIter(w, f, chanToIter(ch), opts...)
}

func chanToIter[T any](ch <-chan T) iter.Seq[T] {
	return func(yield func(T) bool) {
		for item := range ch {
			if !yield(item) {
				return
			}
		}
	}
}

func collect(seq iter.Seq[FlatMap]) []FlatMap {
	var rows []FlatMap
	for row := range seq {
		rows = append(rows, row)
	}
	return rows
}

func streamRows(w io.Writer, seq iter.Seq[FlatMap], fn func(FlatMap) error) error {
	for row := range seq {
		if err := fn(row); err != nil {
			return err
		}
	}
	return nil
}

func streamENV(w io.Writer, seq iter.Seq[FlatMap], o *writeOptions) error {
	first := true
	for row := range seq {
		if !first {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		first = false
		if err := writeENVRow(w, row, o); err != nil {
			return err
		}
	}
	return nil
}

func streamJSON(w io.Writer, seq iter.Seq[FlatMap], o *writeOptions) error {
	if _, err := io.WriteString(w, "["); err != nil {
		return err
	}
	first := true
	for row := range seq {
		if !first {
			if _, err := io.WriteString(w, ","); err != nil {
				return err
			}
		}
		first = false
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		if o.indent != "" {
			enc.SetIndent("", o.indent)
		}
		if err := enc.Encode(row); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "]\n")
	return err
}
