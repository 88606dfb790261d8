package render

import (
	"bytes"

	"github.com/pelletier/go-toml/v2"

	"github.com/sn2ssg/sn2ssg/pkg/core"
)

// TOML renders pages with a +++-fenced TOML front-matter block, the
// alternative Hugo syntax.
type TOML struct{}

// NewTOML creates the TOML renderer.
func NewTOML() *TOML { return &TOML{} }

var _ core.Renderer = (*TOML)(nil)

func (r *TOML) Render(page core.RenderedPage) ([]byte, error) {
	var buf bytes.Buffer
	if len(page.FrontMatter) > 0 {
		data, err := toml.Marshal(map[string]any(page.FrontMatter))
		if err != nil {
			return nil, err
		}
		buf.WriteString("+++\n")
		buf.Write(data)
		buf.WriteString("+++\n")
	}
	buf.WriteString(page.Body)
	return buf.Bytes(), nil
}
