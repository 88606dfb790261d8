// Package render provides the serialization formats for rendered pages:
// the front-matter block in the target SSG's syntax, followed by the
// Markdown body.
package render

import (
	"fmt"

	"github.com/sn2ssg/sn2ssg/pkg/core"
)

// Known front-matter formats.
const (
	FormatYAML     = "yaml"
	FormatTOML     = "toml"
	FormatTemplate = "template"
)

// New returns the renderer for the named format. The empty string selects
// YAML, the conventional default. templatePath is only consulted for the
// template format.
func New(format, templatePath string) (core.Renderer, error) {
	switch format {
	case "", FormatYAML:
		return NewYAML(), nil
	case FormatTOML:
		return NewTOML(), nil
	case FormatTemplate:
		return NewTemplate(templatePath)
	default:
		return nil, fmt.Errorf("unknown front-matter format: %q", format)
	}
}
