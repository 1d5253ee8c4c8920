package flatmap

import (
	"fmt"
	"io"
	"text/template"
)

func writeGoTemplate(w io.Writer, tmplStr string, rows []FlatMap) error {
	tmpl, err := parseTemplate(tmplStr)
	if err != nil {
		return err
	}
	for _, row := range rows {
		if err := executeTemplateRow(w, tmpl, row); err != nil {
			return err
		}
	}
	return nil
}

func parseTemplate(tmplStr string) (*template.Template, error) {
	tmpl, err := template.New("").Parse(tmplStr)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTemplate, err)
	}
	return tmpl, nil
}

func executeTemplateRow(w io.Writer, tmpl *template.Template, row FlatMap) error {
	if err := tmpl.Execute(w, row.Native()); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w)
	return err
}
