package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInlineBoldTextAndLink(t *testing.T) {
	p := NewParser(nil)

	nodes := p.ParseInline(`**bold** text [link](https://a.b)`)

	require.Len(t, nodes, 3)
	assert.Equal(t, Text{Value: "bold", Bold: true}, nodes[0])
	assert.Equal(t, Text{Value: " text "}, nodes[1])
	assert.Equal(t, Link{URL: "https://a.b", Children: []Inline{Text{Value: "link"}}}, nodes[2])
}

func TestParseInlineInvalidLinkDegradesToPlainText(t *testing.T) {
	p := NewParser(nil)

	nodes := p.ParseInline(`[x](not a url)`)

	require.Len(t, nodes, 1)
	assert.Equal(t, Text{Value: "[x](not a url)"}, nodes[0])
}

func TestParseInlineStyles(t *testing.T) {
	p := NewParser(nil)

	cases := []struct {
		name  string
		input string
		want  []Inline
	}{
		{
			name:  "italic star",
			input: "an *italic* word",
			want:  []Inline{Text{Value: "an "}, Text{Value: "italic", Italic: true}, Text{Value: " word"}},
		},
		{
			name:  "italic underscore",
			input: "_whisper_",
			want:  []Inline{Text{Value: "whisper", Italic: true}},
		},
		{
			name:  "bold underscore",
			input: "__shout__",
			want:  []Inline{Text{Value: "shout", Bold: true}},
		},
		{
			name:  "strikethrough",
			input: "it was ~~wrong~~ right",
			want:  []Inline{Text{Value: "it was "}, Text{Value: "wrong", Strikethrough: true}, Text{Value: " right"}},
		},
		{
			name:  "underline",
			input: "<u>really</u>",
			want:  []Inline{Text{Value: "really", Underline: true}},
		},
		{
			name:  "inline code",
			input: "run `go build` now",
			want:  []Inline{Text{Value: "run "}, Text{Value: "go build", Code: true}, Text{Value: " now"}},
		},
		{
			name:  "plain text only",
			input: "nothing fancy here",
			want:  []Inline{Text{Value: "nothing fancy here"}},
		},
		{
			name:  "code swallows markers",
			input: "`**not bold**`",
			want:  []Inline{Text{Value: "**not bold**", Code: true}},
		},
		{
			name:  "unterminated marker stays literal",
			input: "a **dangling marker",
			want:  []Inline{Text{Value: "a **dangling marker"}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, p.ParseInline(tc.input))
		})
	}
}

func TestParseInlineLinkWithStyledLabel(t *testing.T) {
	p := NewParser(nil)

	nodes := p.ParseInline(`see [**docs**](https://example.com/docs)`)

	require.Len(t, nodes, 2)
	assert.Equal(t, Text{Value: "see "}, nodes[0])
	assert.Equal(t, Link{
		URL:      "https://example.com/docs",
		Children: []Inline{Text{Value: "docs", Bold: true}},
	}, nodes[1])
}

func TestParseInlineRelativeLinkTarget(t *testing.T) {
	p := NewParser(nil)

	nodes := p.ParseInline(`[home](/index.html)`)

	require.Len(t, nodes, 1)
	link, ok := nodes[0].(Link)
	require.True(t, ok)
	assert.Equal(t, "/index.html", link.URL)
}

func TestParseInlineEmptyString(t *testing.T) {
	p := NewParser(nil)

	assert.Empty(t, p.ParseInline(""))
}
