package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_ToHTMLSanitized(t *testing.T) {
	r := NewRenderer()

	out, err := r.ToHTMLSanitized("Your report is **resolved**.\n\n<script>alert(1)</script>")

	require.NoError(t, err)
	assert.Contains(t, out, "<strong>resolved</strong>")
	assert.NotContains(t, out, "<script>")
}

func TestRenderer_StripTags(t *testing.T) {
	r := NewRenderer()

	assert.Equal(t, "Pothole near school & park", r.StripTags(" <b>Pothole</b> near school & park "))
	assert.Equal(t, "", r.StripTags("<img src=x onerror=alert(1)>"))
}
