package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderBasics(t *testing.T) {
	r := NewRenderer()

	out, err := r.Render("# Title\n\nSome **bold** text.")
	require.NoError(t, err)
	assert.Contains(t, out, "<h1>Title</h1>")
	assert.Contains(t, out, "<strong>bold</strong>")
}

func TestRenderGFMTable(t *testing.T) {
	r := NewRenderer()

	out, err := r.Render("| a | b |\n|---|---|\n| 1 | 2 |")
	require.NoError(t, err)
	assert.Contains(t, out, "<table>")
}

func TestRenderHighlightsCode(t *testing.T) {
	r := NewRenderer()

	out, err := r.Render("```sql\nSELECT * FROM users;\n```")
	require.NoError(t, err)
	// Highlighted blocks come out as styled pre, not a bare code fence.
	assert.Contains(t, out, "<pre")
	assert.NotContains(t, out, "```")
}
