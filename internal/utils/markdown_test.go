package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderMarkdown(t *testing.T) {
	html := RenderMarkdown("**bold** and [a link](https://example.com)")
	assert.Contains(t, html, "<strong>bold</strong>")
	assert.Contains(t, html, `href="https://example.com"`)
	assert.Contains(t, html, `target="_blank"`)
}

func TestRenderMarkdownStripsScripts(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"script tag", "hello <script>alert(1)</script>"},
		{"event handler", `<img src="x.png" onerror="alert(1)">`},
		{"javascript href", `[click](javascript:alert(1))`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			html := RenderMarkdown(tc.source)
			assert.NotContains(t, html, "script")
			assert.NotContains(t, html, "alert(1)")
		})
	}
}

func TestRenderMarkdownImageAttributes(t *testing.T) {
	html := RenderMarkdown(`![pic](https://example.com/pic.png)`)
	assert.Contains(t, html, `src="https://example.com/pic.png"`)
	assert.Contains(t, html, `loading="lazy"`)
	assert.Contains(t, html, `referrerpolicy="no-referrer"`)
}
