package transform

import (
	"bytes"
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"
	"github.com/maruel/natural"

	"gqli/config"
	"gqli/content"
)

// Values is a struct that holds variables we make available for template expansion
type Values struct {
	Context    string
	Operation  string
	QueryID    string
	SourceFile string
	Fragments  []string
}

func buildFragmentNames(c *content.Content) []string {
	names := slices.Collect(maps.Keys(c.Fragments))
	sort.Sort(natural.StringSlice(names))
	return names
}

func expandTemplate(c *content.Content, name config.TemplateFieldName, field string) (string, error) {
	funcMap := sprig.FuncMap()

	tmpl, err := template.New(string(name)).Funcs(funcMap).Parse(field)
	if err != nil {
		return "", fmt.Errorf("unable to parse template field %s: %w", name, err)
	}

	values := Values{
		Context:    string(name),
		Operation:  c.Operation,
		QueryID:    c.RefID,
		SourceFile: strings.TrimSuffix(filepath.Base(c.SrcName), filepath.Ext(c.SrcName)),
		Fragments:  buildFragmentNames(c),
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return "", err
	}
	return buf.String(), nil
}
