package content

import (
	"bytes"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Rich-text fields (about, content, bio) are stored as opaque formatted text
// in the CMS. They are rendered to sanitized HTML here so page templates can
// embed them directly.

type RichTextRenderer struct {
	md        goldmark.Markdown
	sanitizer *bluemonday.Policy
}

func NewRichTextRenderer() *RichTextRenderer {
	md := goldmark.New(
		goldmark.WithRendererOptions(html.WithUnsafe()),
		goldmark.WithExtensions(extension.Linkify, extension.Strikethrough),
	)
	return &RichTextRenderer{
		md:        md,
		sanitizer: bluemonday.UGCPolicy(),
	}
}

// Render converts formatted text to sanitized HTML. Raw HTML that survives
// markdown conversion is stripped down to the UGC-safe subset; script and
// event-handler vectors never make it through.
func (r *RichTextRenderer) Render(text string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(text), &buf); err != nil {
		return "", err
	}
	return strings.TrimSpace(r.sanitizer.Sanitize(buf.String())), nil
}
