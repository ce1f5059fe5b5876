package markdown

import (
	"fmt"
	"strings"
)

// BlockTreeToMarkdown serialises a block tree back to Markdown.  The result
// is semantically equivalent to the parser's input, not byte-identical:
// whitespace is normalised and inline markers are re-emitted canonically.
func BlockTreeToMarkdown(blocks []Block) string {
	rendered := make([]string, 0, len(blocks))
	for _, block := range blocks {
		rendered = append(rendered, blockToMarkdown(block))
	}

	return strings.Join(rendered, "\n\n") + "\n"
}

func blockToMarkdown(block Block) string {
	switch b := block.(type) {
	case Heading:
		return strings.Repeat("#", b.Level) + " " + inlinesToMarkdown(b.Children)

	case Paragraph:
		return inlinesToMarkdown(b.Children)

	case List:
		lines := make([]string, 0, len(b.Items))
		for i, item := range b.Items {
			marker := "-"
			if b.Ordered {
				marker = fmt.Sprintf("%d.", i+1)
			}
			lines = append(lines, marker+" "+inlinesToMarkdown(item.Children))
		}
		return strings.Join(lines, "\n")

	case Quote:
		return "> " + inlinesToMarkdown(b.Children)

	case CodeBlock:
		return "```" + b.Language + "\n" + b.Text + "\n```"

	case Image:
		return fmt.Sprintf("![%s](%s)", b.AlternativeText, b.URL)

	case ThematicBreak:
		return "---"

	default:
		return ""
	}
}

func inlinesToMarkdown(nodes []Inline) string {
	var sb strings.Builder
	for _, node := range nodes {
		switch n := node.(type) {
		case Text:
			sb.WriteString(textToMarkdown(n))
		case Link:
			sb.WriteString(fmt.Sprintf("[%s](%s)", inlinesToMarkdown(n.Children), n.URL))
		}
	}

	return sb.String()
}

func textToMarkdown(t Text) string {
	out := t.Value
	if t.Code {
		out = "`" + out + "`"
	}
	if t.Bold {
		out = "**" + out + "**"
	}
	if t.Italic {
		out = "*" + out + "*"
	}
	if t.Strikethrough {
		out = "~~" + out + "~~"
	}
	if t.Underline {
		out = "<u>" + out + "</u>"
	}

	return out
}
