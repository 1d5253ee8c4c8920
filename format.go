package flatmap

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// Format represents an output format for flattened rows.
type Format string

const (
	JSON     Format = "json"
	JSONL    Format = "jsonl"
	YAML     Format = "yaml"
	CSV      Format = "csv"
	TSV      Format = "tsv"
	ENV      Format = "env"
	Logfmt   Format = "logfmt"
	Table    Format = "table"
	Markdown Format = "markdown"
	HTML     Format = "html"
)

const goTemplatePrefix = "go-template="

var formats = []Format{JSON, JSONL, YAML, CSV, TSV, ENV, Logfmt, Table, Markdown, HTML}

// String returns the format name.
func (f Format) String() string { return string(f) }

// Formats returns all supported static format names.
// GoTemplate is not included because it is parameterized.
func Formats() []Format {
	out := make([]Format, len(formats))
	copy(out, formats)
	return out
}

// GoTemplate returns a Format that renders each row using a Go text/template.
// The template is executed against the row's native values keyed by column:
//
//	flatmap.GoTemplate(`{{index . "user_name"}}`)
func GoTemplate(tmpl string) Format {
	return Format(goTemplatePrefix + tmpl)
}

// ParseFormat parses a format string. Recognizes all static formats and
// go-template=<tmpl> strings.
func ParseFormat(s string) (Format, error) {
	if strings.HasPrefix(s, goTemplatePrefix) {
		return Format(s), nil
	}
	for _, f := range formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// BorderStyle controls table border characters.
type BorderStyle int

const (
	BorderRounded BorderStyle = iota // ╭─╮╰╯│┬┴├┤┼
	BorderNone                       // No borders, space-separated columns
	BorderASCII                      // +-+|
	BorderHeavy                      // ┏━┓┗┛┃┳┻┣┫╋
	BorderDouble                     // ╔═╗╚╝║╦╩╠╣╬
)

// Alignment controls column text alignment.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

type writeOptions struct {
	indent    string
	delimiter rune
	export    bool
	quote     bool
	border    BorderStyle
	title     string
	maxWidth  int
}

// WriteOption tunes the rendering of a format.
type WriteOption interface {
	applyWriteOption(*writeOptions)
}

type writeOptionFunc func(*writeOptions)

func (f writeOptionFunc) applyWriteOption(o *writeOptions) {
	f(o)
}

// WithIndent controls JSON/JSONL/YAML indentation.
// Default: compact JSON and the YAML encoder's default indent.
func WithIndent(indent string) WriteOption {
	return writeOptionFunc(func(o *writeOptions) { o.indent = indent })
}

// WithDelimiter controls the CSV field delimiter.
// Default: comma.
func WithDelimiter(r rune) WriteOption {
	return writeOptionFunc(func(o *writeOptions) { o.delimiter = r })
}

// WithExport prefixes env lines with "export ".
func WithExport(export bool) WriteOption {
	return writeOptionFunc(func(o *writeOptions) { o.export = export })
}

// WithQuote wraps env values in double quotes.
func WithQuote(quote bool) WriteOption {
	return writeOptionFunc(func(o *writeOptions) { o.quote = quote })
}

// WithBorder sets the table border style.
// Default: BorderRounded.
func WithBorder(b BorderStyle) WriteOption {
	return writeOptionFunc(func(o *writeOptions) { o.border = b })
}

// WithTitle renders a title above a table, or a caption in HTML.
func WithTitle(title string) WriteOption {
	return writeOptionFunc(func(o *writeOptions) { o.title = title })
}

// WithMaxWidth truncates table cells wider than n with "...".
// Zero means no limit.
func WithMaxWidth(n int) WriteOption {
	return writeOptionFunc(func(o *writeOptions) { o.maxWidth = n })
}

func newWriteOptions(opts []WriteOption) *writeOptions {
	o := &writeOptions{delimiter: ','}
	for _, opt := range opts {
		opt.applyWriteOption(o)
	}
	return o
}

// Write renders rows in format f and writes them to w. Every row becomes one
// record; tabular formats use the union of all row keys as columns.
func Write(w io.Writer, f Format, rows []FlatMap, opts ...WriteOption) error {
	return write(w, f, rows, newWriteOptions(opts))
}

func write(w io.Writer, f Format, rows []FlatMap, o *writeOptions) error {
	switch f {
	case JSON:
		return writeJSON(w, rows, o)
	case JSONL:
		return writeJSONL(w, rows, o)
	case YAML:
		return writeYAML(w, rows, o)
	case CSV:
		return writeCSV(w, rows, o)
	case TSV:
		return writeTSV(w, rows)
	case ENV:
		return writeENV(w, rows, o)
	case Logfmt:
		return writeLogfmt(w, rows)
	case Table:
		return writeTable(w, rows, o)
	case Markdown:
		return writeMarkdown(w, rows)
	case HTML:
		return writeHTML(w, rows, o)
	default:
		if tmpl, ok := strings.CutPrefix(string(f), goTemplatePrefix); ok {
			return writeGoTemplate(w, tmpl, rows)
		}
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
}

// Marshal renders rows in format f and returns the bytes.
func Marshal(f Format, rows []FlatMap, opts ...WriteOption) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, f, rows, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// grid holds rows projected onto a shared column set.
type grid struct {
	columns []string
	cells   [][]string
	aligns  []Alignment
}

// toGrid projects rows onto the union of their keys. Missing cells are
// empty. Columns whose present cells are all numeric align right.
func toGrid(rows []FlatMap) grid {
	columns := Columns(rows...)
	g := grid{
		columns: columns,
		cells:   make([][]string, len(rows)),
		aligns:  make([]Alignment, len(columns)),
	}
	numeric := make([]bool, len(columns))
	for i := range numeric {
		numeric[i] = true
	}
	for r, row := range rows {
		cells := make([]string, len(columns))
		for c, col := range columns {
			v, ok := row[col]
			if !ok {
				continue
			}
			cells[c] = v.String()
			if !v.Kind().IsNumeric() {
				numeric[c] = false
			}
		}
		g.cells[r] = cells
	}
	for c, num := range numeric {
		if num && len(rows) > 0 {
			g.aligns[c] = AlignRight
		}
	}
	return g
}
