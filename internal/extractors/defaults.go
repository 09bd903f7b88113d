package extractors

import (
	"github.com/offgrid-labs/knowledge-cli/internal/extractors/epub"
	"github.com/offgrid-labs/knowledge-cli/internal/extractors/html"
	"github.com/offgrid-labs/knowledge-cli/internal/extractors/jsondoc"
	"github.com/offgrid-labs/knowledge-cli/internal/extractors/markdown"
	"github.com/offgrid-labs/knowledge-cli/internal/extractors/pdf"
	"github.com/offgrid-labs/knowledge-cli/internal/extractors/plaintext"
	"github.com/offgrid-labs/knowledge-cli/internal/extractors/zim"
)

// NewDefaultRegistry returns a registry with every built-in strategy.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(html.New())
	r.Register(markdown.New())
	r.Register(plaintext.New())
	r.Register(jsondoc.New())
	r.Register(zim.New())
	r.Register(pdf.New())
	r.Register(epub.New())
	return r
}
