package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTagNameToSlug(t *testing.T) {
	tests := []struct {
		tag  string
		want string
	}{
		{"Exhibitions", "exhibitions"},
		{"Artist Development", "artist-development"},
		{"What's On", "whats-on"},
		{"Multi   Space  Tag", "multi-space-tag"},
		{"already-a-slug", "already-a-slug"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TagNameToSlug(tt.tag))
	}
}

func TestTagNameToSlug_Idempotent(t *testing.T) {
	tags := []string{"Artist Development", "What's On", "Exhibitions & Fairs", "UPPER CASE"}
	for _, tag := range tags {
		once := TagNameToSlug(tag)
		assert.Equal(t, once, TagNameToSlug(once), "slugging %q twice diverged", tag)
	}
}

func TestSlugToDisplayName(t *testing.T) {
	assert.Equal(t, "Artist Development", SlugToDisplayName("artist-development"))
	assert.Equal(t, "Exhibitions", SlugToDisplayName("exhibitions"))
}

func TestRichTextRenderer(t *testing.T) {
	r := NewRichTextRenderer()

	html, err := r.Render("Some **bold** text")
	assert.NoError(t, err)
	assert.Contains(t, html, "<strong>bold</strong>")

	html, err = r.Render(`A link <script>alert("x")</script> here`)
	assert.NoError(t, err)
	assert.NotContains(t, html, "<script>")
}
