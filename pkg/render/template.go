package render

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/sn2ssg/sn2ssg/pkg/core"
)

// Template renders the front-matter block through a user-supplied
// text/template file, the escape hatch for SSGs whose header syntax
// neither YAML nor TOML covers. The template receives the front-matter
// map ({{.title}}, {{.date}}, ...); the Markdown body is appended after
// the template output.
type Template struct {
	tmpl *template.Template
}

// NewTemplate parses the template file at path.
func NewTemplate(path string) (*Template, error) {
	if path == "" {
		return nil, fmt.Errorf("template format requires a template path")
	}
	tmpl, err := template.New(filepath.Base(path)).ParseFiles(path)
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", path, err)
	}
	return &Template{tmpl: tmpl}, nil
}

var _ core.Renderer = (*Template)(nil)

func (r *Template) Render(page core.RenderedPage) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, map[string]any(page.FrontMatter)); err != nil {
		return nil, err
	}
	if out := buf.String(); out != "" && !strings.HasSuffix(out, "\n") {
		buf.WriteString("\n")
	}
	buf.WriteString(page.Body)
	return buf.Bytes(), nil
}
