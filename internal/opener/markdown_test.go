package opener

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const markdownSource = "# Title foo\n" +
	"\n" +
	"Some *emph* text with [link](http://foo.example).\n" +
	"\n" +
	"```go\n" +
	"foo := 1\n" +
	"```\n" +
	"<div>foo</div>\n"

func TestMarkdownProse(t *testing.T) {
	out := string(NewMarkdown(nil).Prose([]byte(markdownSource)))
	assert.Len(t, out, len(markdownSource))

	lines := strings.Split(out, "\n")
	assert.Equal(t, "  Title foo", lines[0])
	assert.Contains(t, lines[2], "Some  emph  text with  link")
	assert.NotContains(t, lines[2], "http")
	assert.NotContains(t, lines[2], "*")
	assert.Empty(t, strings.TrimSpace(lines[4]))
	assert.Equal(t, "foo := 1", lines[5])
	assert.Empty(t, strings.TrimSpace(lines[6]))
	assert.Empty(t, strings.TrimSpace(lines[7]))
}

func TestMarkdownOpener(t *testing.T) {
	path := writeFile(t, "README.md", "## Usage\n")
	assert.Equal(t, "   Usage\n", readThrough(t, NewMarkdown(nil), path))
}
