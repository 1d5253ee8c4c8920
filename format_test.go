package flatmap_test

import (
	"bytes"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/bjaus/flatmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Test rows ---

var (
	alice = flatmap.FlatMap{"name": flatmap.String("Alice"), "age": flatmap.I64(30)}
	bob   = flatmap.FlatMap{"name": flatmap.String("Bob"), "age": flatmap.I64(25), "admin": flatmap.Bool(true)}
)

// --- Helpers ---

type errWriter struct{}

func (e *errWriter) Write([]byte) (int, error) {
	return 0, errWriteFailed
}

var errWriteFailed = errors.New("write failed")

// ============================================================
// Tests
// ============================================================

func TestParseFormat(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		input   string
		want    flatmap.Format
		wantErr require.ErrorAssertionFunc
	}{
		"json":        {input: "json", want: flatmap.JSON, wantErr: require.NoError},
		"jsonl":       {input: "jsonl", want: flatmap.JSONL, wantErr: require.NoError},
		"yaml":        {input: "yaml", want: flatmap.YAML, wantErr: require.NoError},
		"csv":         {input: "csv", want: flatmap.CSV, wantErr: require.NoError},
		"tsv":         {input: "tsv", want: flatmap.TSV, wantErr: require.NoError},
		"env":         {input: "env", want: flatmap.ENV, wantErr: require.NoError},
		"logfmt":      {input: "logfmt", want: flatmap.Logfmt, wantErr: require.NoError},
		"table":       {input: "table", want: flatmap.Table, wantErr: require.NoError},
		"markdown":    {input: "markdown", want: flatmap.Markdown, wantErr: require.NoError},
		"html":        {input: "html", want: flatmap.HTML, wantErr: require.NoError},
		"go-template": {input: "go-template={{.}}", want: flatmap.GoTemplate("{{.}}"), wantErr: require.NoError},
		"unknown":     {input: "xml", want: "", wantErr: require.Error},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := flatmap.ParseFormat(tt.input)
			tt.wantErr(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFormatUnsupported(t *testing.T) {
	t.Parallel()
	_, err := flatmap.ParseFormat("xml")
	assert.ErrorIs(t, err, flatmap.ErrUnsupportedFormat)
}

func TestFormats(t *testing.T) {
	t.Parallel()
	got := flatmap.Formats()
	assert.Equal(t, []flatmap.Format{
		flatmap.JSON, flatmap.JSONL, flatmap.YAML, flatmap.CSV, flatmap.TSV,
		flatmap.ENV, flatmap.Logfmt, flatmap.Table, flatmap.Markdown, flatmap.HTML,
	}, got)
	// Returned slice must be a copy.
	got[0] = "modified"
	assert.Equal(t, flatmap.JSON, flatmap.Formats()[0])
}

func TestFormatString(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "json", flatmap.JSON.String())
	assert.Equal(t, "table", flatmap.Table.String())
}

func TestWriteUnsupportedFormat(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	err := flatmap.Write(&buf, flatmap.Format("xml"), []flatmap.FlatMap{alice})
	assert.ErrorIs(t, err, flatmap.ErrUnsupportedFormat)
}

// --- JSON ---

func TestWriteJSON(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		rows []flatmap.FlatMap
		want string
	}{
		"single row": {
			rows: []flatmap.FlatMap{alice},
			want: `{"age":30,"name":"Alice"}` + "\n",
		},
		"multiple rows": {
			rows: []flatmap.FlatMap{alice, bob},
			want: `[{"age":30,"name":"Alice"},{"admin":true,"age":25,"name":"Bob"}]` + "\n",
		},
		"no rows": {
			rows: nil,
			want: "[]\n",
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			err := flatmap.Write(&buf, flatmap.JSON, tt.rows)
			require.NoError(t, err)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestWriteJSONIndented(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	err := flatmap.Write(&buf, flatmap.JSON, []flatmap.FlatMap{alice}, flatmap.WithIndent("  "))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "  \"age\": 30")
}

// --- JSONL ---

func TestWriteJSONL(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	err := flatmap.Write(&buf, flatmap.JSONL, []flatmap.FlatMap{alice, bob})
	require.NoError(t, err)
	assert.Equal(t, `{"age":30,"name":"Alice"}`+"\n"+`{"admin":true,"age":25,"name":"Bob"}`+"\n", buf.String())
}

// --- YAML ---

func TestWriteYAML(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	err := flatmap.Write(&buf, flatmap.YAML, []flatmap.FlatMap{alice})
	require.NoError(t, err)
	assert.Equal(t, "age: 30\nname: Alice\n", buf.String())
}

func TestWriteYAMLMultiple(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	err := flatmap.Write(&buf, flatmap.YAML, []flatmap.FlatMap{alice, bob})
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "- age: 30")
	assert.Contains(t, out, "- admin: true")
	assert.Less(t, strings.Index(out, "Alice"), strings.Index(out, "Bob"))
}

// --- CSV ---

func TestWriteCSV(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		rows []flatmap.FlatMap
		opts []flatmap.WriteOption
		want string
	}{
		"union of columns": {
			rows: []flatmap.FlatMap{alice, bob},
			want: "admin,age,name\n,30,Alice\ntrue,25,Bob\n",
		},
		"custom delimiter": {
			rows: []flatmap.FlatMap{alice},
			opts: []flatmap.WriteOption{flatmap.WithDelimiter(';')},
			want: "age;name\n30;Alice\n",
		},
		"quoted": {
			rows: []flatmap.FlatMap{{"msg": flatmap.String("hello, world")}},
			want: "msg\n\"hello, world\"\n",
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			err := flatmap.Write(&buf, flatmap.CSV, tt.rows, tt.opts...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestWriteCSVEmpty(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	err := flatmap.Write(&buf, flatmap.CSV, nil)
	require.NoError(t, err)
	assert.Empty(t, buf.String())
}

func TestWriteCSVWriteError(t *testing.T) {
	t.Parallel()
	err := flatmap.Write(&errWriter{}, flatmap.CSV, []flatmap.FlatMap{alice})
	assert.ErrorIs(t, err, errWriteFailed)
}

// --- TSV ---

func TestWriteTSV(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	err := flatmap.Write(&buf, flatmap.TSV, []flatmap.FlatMap{alice, bob})
	require.NoError(t, err)
	assert.Equal(t, "admin\tage\tname\n\t30\tAlice\ntrue\t25\tBob\n", buf.String())
}

func TestWriteTSVEscapesTabs(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	err := flatmap.Write(&buf, flatmap.TSV, []flatmap.FlatMap{{"msg": flatmap.String("a\tb")}})
	require.NoError(t, err)
	assert.Equal(t, "msg\na\\tb\n", buf.String())
}

// --- ENV ---

func TestWriteENV(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		rows []flatmap.FlatMap
		opts []flatmap.WriteOption
		want string
	}{
		"plain": {
			rows: []flatmap.FlatMap{alice},
			want: "age=30\nname=Alice\n",
		},
		"exported and quoted": {
			rows: []flatmap.FlatMap{alice},
			opts: []flatmap.WriteOption{flatmap.WithExport(true), flatmap.WithQuote(true)},
			want: "export age=\"30\"\nexport name=\"Alice\"\n",
		},
		"rows separated by blank line": {
			rows: []flatmap.FlatMap{{"a": flatmap.I8(1)}, {"b": flatmap.I8(2)}},
			want: "a=1\n\nb=2\n",
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			err := flatmap.Write(&buf, flatmap.ENV, tt.rows, tt.opts...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

// --- logfmt ---

func TestWriteLogfmt(t *testing.T) {
	t.Parallel()
	rows := []flatmap.FlatMap{
		alice,
		{"msg": flatmap.String("hello world"), "empty": flatmap.String(""), "ok": flatmap.Bool(false)},
	}
	var buf bytes.Buffer
	err := flatmap.Write(&buf, flatmap.Logfmt, rows)
	require.NoError(t, err)
	assert.Equal(t, "age=30 name=Alice\nempty=\"\" msg=\"hello world\" ok=false\n", buf.String())
}

// --- Table ---

func TestWriteTableBorderNone(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	err := flatmap.Write(&buf, flatmap.Table, []flatmap.FlatMap{alice}, flatmap.WithBorder(flatmap.BorderNone))
	require.NoError(t, err)
	assert.Equal(t, "age  name\n---  -----\n 30  Alice\n", buf.String())
}

func TestWriteTableBorderASCII(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	err := flatmap.Write(&buf, flatmap.Table, []flatmap.FlatMap{alice}, flatmap.WithBorder(flatmap.BorderASCII))
	require.NoError(t, err)
	want := "" +
		"+-----+-------+\n" +
		"| age | name  |\n" +
		"+-----+-------+\n" +
		"|  30 | Alice |\n" +
		"+-----+-------+\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteTableTitle(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	err := flatmap.Write(&buf, flatmap.Table, []flatmap.FlatMap{alice},
		flatmap.WithBorder(flatmap.BorderASCII), flatmap.WithTitle("Users"))
	require.NoError(t, err)
	lines := strings.Split(buf.String(), "\n")
	assert.Equal(t, "+-------------+", lines[0])
	assert.Equal(t, "|    Users    |", lines[1])
	assert.Equal(t, "+-----+-------+", lines[2])
}

func TestWriteTableBorders(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		border flatmap.BorderStyle
		marks  []string
	}{
		"rounded": {border: flatmap.BorderRounded, marks: []string{"╭", "╰", "│", "─"}},
		"heavy":   {border: flatmap.BorderHeavy, marks: []string{"┏", "┃", "━"}},
		"double":  {border: flatmap.BorderDouble, marks: []string{"╔", "║", "═"}},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			err := flatmap.Write(&buf, flatmap.Table, []flatmap.FlatMap{alice, bob}, flatmap.WithBorder(tt.border))
			require.NoError(t, err)
			out := buf.String()
			for _, m := range tt.marks {
				assert.Contains(t, out, m)
			}
			assert.Contains(t, out, "Alice")
			assert.Contains(t, out, "admin")
		})
	}
}

func TestWriteTableMaxWidth(t *testing.T) {
	t.Parallel()
	rows := []flatmap.FlatMap{{"city": flatmap.String("Alexandria")}}
	var buf bytes.Buffer
	err := flatmap.Write(&buf, flatmap.Table, rows, flatmap.WithBorder(flatmap.BorderNone), flatmap.WithMaxWidth(6))
	require.NoError(t, err)
	assert.Equal(t, "city\n------\nAle...\n", buf.String())
}

func TestWriteTableWriteError(t *testing.T) {
	t.Parallel()
	tests := map[string]flatmap.BorderStyle{
		"bordered": flatmap.BorderRounded,
		"plain":    flatmap.BorderNone,
	}
	for name, border := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			err := flatmap.Write(&errWriter{}, flatmap.Table, []flatmap.FlatMap{alice}, flatmap.WithBorder(border))
			assert.ErrorIs(t, err, errWriteFailed)
		})
	}
}

func TestWriteTableEmpty(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	err := flatmap.Write(&buf, flatmap.Table, nil)
	require.NoError(t, err)
	assert.Empty(t, buf.String())
}

// --- Markdown ---

func TestWriteMarkdown(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	err := flatmap.Write(&buf, flatmap.Markdown, []flatmap.FlatMap{alice})
	require.NoError(t, err)
	want := "" +
		"| age | name  |\n" +
		"| --: | ----- |\n" +
		"|  30 | Alice |\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteMarkdownEscapesPipes(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	err := flatmap.Write(&buf, flatmap.Markdown, []flatmap.FlatMap{{"expr": flatmap.String("a|b")}})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `a\|b`)
}

// --- HTML ---

func TestWriteHTML(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	err := flatmap.Write(&buf, flatmap.HTML, []flatmap.FlatMap{alice, {"name": flatmap.String("<b>")}}, flatmap.WithTitle("Users"))
	require.NoError(t, err)
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<table>\n"))
	assert.Contains(t, out, "<caption>Users</caption>")
	assert.Contains(t, out, "<th>age</th>")
	assert.Contains(t, out, `<td style="text-align: right">30</td>`)
	assert.Contains(t, out, "<td>&lt;b&gt;</td>")
	assert.True(t, strings.HasSuffix(out, "</table>\n"))
}

// --- GoTemplate ---

func TestWriteGoTemplate(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	f := flatmap.GoTemplate(`{{index . "name"}} is {{index . "age"}}`)
	err := flatmap.Write(&buf, f, []flatmap.FlatMap{alice, bob})
	require.NoError(t, err)
	assert.Equal(t, "Alice is 30\nBob is 25\n", buf.String())
}

func TestWriteGoTemplateInvalid(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	err := flatmap.Write(&buf, flatmap.GoTemplate("{{"), []flatmap.FlatMap{alice})
	assert.ErrorIs(t, err, flatmap.ErrInvalidTemplate)
}

// --- Marshal ---

func TestMarshal(t *testing.T) {
	t.Parallel()
	got, err := flatmap.Marshal(flatmap.Logfmt, []flatmap.FlatMap{alice})
	require.NoError(t, err)
	assert.Equal(t, "age=30 name=Alice\n", string(got))
}

func TestMarshalError(t *testing.T) {
	t.Parallel()
	got, err := flatmap.Marshal(flatmap.Format("xml"), []flatmap.FlatMap{alice})
	require.Error(t, err)
	assert.Nil(t, got)
}

// --- Streaming ---

func TestWriteIter(t *testing.T) {
	t.Parallel()
	rows := []flatmap.FlatMap{alice, bob}
	tests := map[string]struct {
		format flatmap.Format
		want   string
	}{
		"json": {
			format: flatmap.JSON,
			want:   "[" + `{"age":30,"name":"Alice"}` + "\n," + `{"admin":true,"age":25,"name":"Bob"}` + "\n]\n",
		},
		"jsonl": {
			format: flatmap.JSONL,
			want:   `{"age":30,"name":"Alice"}` + "\n" + `{"admin":true,"age":25,"name":"Bob"}` + "\n",
		},
		"logfmt": {
			format: flatmap.Logfmt,
			want:   "age=30 name=Alice\nadmin=true age=25 name=Bob\n",
		},
		"env": {
			format: flatmap.ENV,
			want:   "age=30\nname=Alice\n\nadmin=true\nage=25\nname=Bob\n",
		},
		"csv collects": {
			format: flatmap.CSV,
			want:   "admin,age,name\n,30,Alice\ntrue,25,Bob\n",
		},
		"go-template": {
			format: flatmap.GoTemplate(`{{index . "name"}}`),
			want:   "Alice\nBob\n",
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			err := flatmap.WriteIter(&buf, tt.format, slices.Values(rows))
			require.NoError(t, err)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestWriteIterMatchesWrite(t *testing.T) {
	t.Parallel()
	rows := []flatmap.FlatMap{alice, bob}
	for _, f := range flatmap.Formats() {
		if f == flatmap.JSON {
			continue // streamed JSON is laid out differently
		}
		var streamed, written bytes.Buffer
		require.NoError(t, flatmap.WriteIter(&streamed, f, slices.Values(rows)))
		require.NoError(t, flatmap.Write(&written, f, rows))
		assert.Equal(t, written.String(), streamed.String(), "format %s", f)
	}
}

func TestWriteIterUnsupported(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	err := flatmap.WriteIter(&buf, flatmap.Format("xml"), slices.Values([]flatmap.FlatMap{alice}))
	assert.ErrorIs(t, err, flatmap.ErrUnsupportedFormat)
}

func TestWriteIterWriteError(t *testing.T) {
	t.Parallel()
	err := flatmap.WriteIter(&errWriter{}, flatmap.JSONL, slices.Values([]flatmap.FlatMap{alice}))
	assert.ErrorIs(t, err, errWriteFailed)
}

func TestWriteChan(t *testing.T) {
	t.Parallel()
	ch := make(chan flatmap.FlatMap, 2)
	ch <- alice
	ch <- bob
	close(ch)
	var buf bytes.Buffer
	err := flatmap.WriteChan(&buf, flatmap.Logfmt, ch)
	require.NoError(t, err)
	assert.Equal(t, "age=30 name=Alice\nadmin=true age=25 name=Bob\n", buf.String())
}
