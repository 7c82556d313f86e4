package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderPreviewTemplates(t *testing.T) {
	for name, data := range PreviewData {
		t.Run(string(name), func(t *testing.T) {
			html, err := Render(name, data)
			require.NoError(t, err)
			assert.Contains(t, html, data["Username"])
		})
	}
}

func TestRenderEscapesInput(t *testing.T) {
	html, err := Render(TemplateWelcome, map[string]string{"Username": "<script>x</script>"})
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>x</script>")
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, err := Render(Template("missing"), nil)
	assert.Error(t, err)
}
