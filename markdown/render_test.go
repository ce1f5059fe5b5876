package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderBasicElements(t *testing.T) {
	r := NewRenderer()

	cases := []struct {
		name string
		html string
		want string
	}{
		{
			name: "heading",
			html: "<h1>Hello</h1>",
			want: "# Hello",
		},
		{
			name: "emphasis",
			html: "<p>Some <strong>bold</strong> text</p>",
			want: "Some **bold** text",
		},
		{
			name: "link",
			html: `<p><a href="https://example.com">text</a></p>`,
			want: "[text](https://example.com)",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := r.Render(tc.html)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestRenderPreservesImageSourceVerbatim(t *testing.T) {
	r := NewRenderer()

	got, err := r.Render(`<p><img src="https://x.com/uploads/pic-300x200.jpg?v=2" alt="A pic"></p>`)
	require.NoError(t, err)

	// the image pipeline parses this exact shape back out of the Markdown,
	// so src must survive untouched
	assert.Equal(t, "![A pic](https://x.com/uploads/pic-300x200.jpg?v=2)", got)
}

func TestRenderImageWithoutAltGetsPlaceholder(t *testing.T) {
	r := NewRenderer()

	got, err := r.Render(`<p><img src="https://x.com/a.png"></p>`)
	require.NoError(t, err)

	assert.Equal(t, "![image](https://x.com/a.png)", got)
}

func TestRenderImageKeepsTitle(t *testing.T) {
	r := NewRenderer()

	got, err := r.Render(`<p><img src="https://x.com/a.png" alt="a" title="The title"></p>`)
	require.NoError(t, err)

	assert.Equal(t, `![a](https://x.com/a.png "The title")`, got)
}

func TestRenderAnchorWrappingSingleImageDropsAnchor(t *testing.T) {
	r := NewRenderer()

	got, err := r.Render(`<p><a href="https://y.com/page"><img src="https://x.com/a.jpg" alt="A"></a></p>`)
	require.NoError(t, err)

	assert.Equal(t, "![A](https://x.com/a.jpg)", got)
}

func TestRenderAnchorWithTextStaysALink(t *testing.T) {
	r := NewRenderer()

	got, err := r.Render(`<p><a href="https://y.com/page">read this</a></p>`)
	require.NoError(t, err)

	assert.Equal(t, "[read this](https://y.com/page)", got)
}

func TestRenderRejectsEmptyInput(t *testing.T) {
	r := NewRenderer()

	for _, html := range []string{"", "   ", "\n\t"} {
		_, err := r.Render(html)

		var invalid *InvalidInputError
		require.ErrorAs(t, err, &invalid, "input %q should be rejected", html)
	}
}
