package flatmap

import (
	"io"
	"strconv"
	"strings"
)

// writeLogfmt writes one line of space separated key=value pairs per row.
func writeLogfmt(w io.Writer, rows []FlatMap) error {
	for _, row := range rows {
		if err := writeLogfmtRow(w, row); err != nil {
			return err
		}
	}
	return nil
}

func writeLogfmtRow(w io.Writer, row FlatMap) error {
	var sb strings.Builder
	first := true
	for k, v := range row.All() {
		if !first {
			sb.WriteByte(' ')
		}
		first = false
		sb.WriteString(logfmtText(k))
		sb.WriteByte('=')
		sb.WriteString(logfmtText(v.String()))
	}
	sb.WriteByte('\n')
	_, err := io.WriteString(w, sb.String())
	return err
}

func logfmtText(s string) string {
	if s == "" {
		return `""`
	}
	if strings.ContainsAny(s, " =\"\t\r\n\\") || !strconv.CanBackquote(s) {
		return strconv.Quote(s)
	}
	return s
}
