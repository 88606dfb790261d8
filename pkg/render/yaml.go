package render

import (
	"bytes"

	"gopkg.in/yaml.v3"

	"github.com/sn2ssg/sn2ssg/pkg/core"
)

// YAML renders pages with a ----fenced YAML front-matter block, the form
// Jekyll and Hugo accept by default. Map keys serialize in sorted order,
// so re-rendering the same page is byte-identical.
type YAML struct{}

// NewYAML creates the YAML renderer.
func NewYAML() *YAML { return &YAML{} }

var _ core.Renderer = (*YAML)(nil)

func (r *YAML) Render(page core.RenderedPage) ([]byte, error) {
	var buf bytes.Buffer
	if len(page.FrontMatter) > 0 {
		buf.WriteString("---\n")
		encoder := yaml.NewEncoder(&buf)
		encoder.SetIndent(2)
		if err := encoder.Encode(map[string]any(page.FrontMatter)); err != nil {
			return nil, err
		}
		encoder.Close()
		buf.WriteString("---\n")
	}
	buf.WriteString(page.Body)
	return buf.Bytes(), nil
}
