package opener

import (
	"bytes"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Markdown greps the readable text of a Markdown document. Markup such as
// heading markers, emphasis, list bullets, link targets and raw HTML is
// replaced with spaces so line numbers still match the source.
type Markdown struct {
	Source   Opener
	markdown goldmark.Markdown
}

// NewMarkdown creates a Markdown opener reading through source.
func NewMarkdown(source Opener) *Markdown {
	return &Markdown{
		Source:   source,
		markdown: goldmark.New(),
	}
}

// Open implements Opener.
func (m *Markdown) Open(path string) (io.ReadCloser, error) {
	src, err := readAll(m.Source, path)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(m.Prose(src))), nil
}

// Prose returns src with everything but text and code blanked out.
func (m *Markdown) Prose(src []byte) []byte {
	out := blank(src)
	keep := func(seg text.Segment) {
		copy(out[seg.Start:seg.Stop], src[seg.Start:seg.Stop])
	}

	doc := m.markdown.Parser().Parse(text.NewReader(src))
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Text:
			keep(node.Segment)
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			lines := n.Lines()
			for i := 0; i < lines.Len(); i++ {
				keep(lines.At(i))
			}
			return ast.WalkSkipChildren, nil
		case *ast.HTMLBlock, *ast.RawHTML:
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return out
}
