package markdown

import (
	"io"
	"log"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// Parser turns Markdown into the typed block tree of blocks.go.  Block-level
// tokenising is goldmark's job; inline formatting within each block is our
// own single-pass scanner (inline.go).  A Parser is stateless after
// construction and safe for concurrent use.
type Parser struct {
	logger *log.Logger
	engine goldmark.Markdown
}

func NewParser(logger *log.Logger) *Parser {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	return &Parser{
		logger: logger,
		engine: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// imageReferencePattern matches ![alt](src) with an optional quoted title,
// the shape the renderer emits and the image pipeline rewrites.
var imageReferencePattern = regexp.MustCompile(`!\[[^\]]*\]\([^)\s]+(?:\s+"[^"]*")?\)`)

// Parse tokenises markdown and emits one Block per recognised top-level
// node, in document order.  Unsupported blocks are skipped with a diagnostic.
func (p *Parser) Parse(markdown string) ([]Block, error) {
	blocks := []Block{}
	if strings.TrimSpace(markdown) == "" {
		return blocks, nil
	}

	source := []byte(markdown)
	doc := p.engine.Parser().Parse(text.NewReader(source))

	for node := doc.FirstChild(); node != nil; node = node.NextSibling() {
		if block, ok := p.convertBlock(node, source); ok {
			blocks = append(blocks, block)
		}
	}

	return blocks, nil
}

func (p *Parser) convertBlock(node ast.Node, source []byte) (Block, bool) {
	switch n := node.(type) {
	case *ast.Heading:
		return p.convertHeading(n, source), true

	case *ast.Paragraph:
		return p.convertParagraph(n, source), true

	case *ast.TextBlock:
		return p.convertParagraph(n, source), true

	case *ast.List:
		return p.convertList(n, source), true

	case *ast.Blockquote:
		raw := flattenText(quoteText(n, source))
		return Quote{Children: p.ParseInline(raw)}, true

	case *ast.FencedCodeBlock:
		language := ""
		if lang := n.Language(source); lang != nil {
			language = string(lang)
		}
		return CodeBlock{Language: language, Text: strings.TrimSpace(rawLines(n, source))}, true

	case *ast.CodeBlock:
		return CodeBlock{Text: strings.TrimSpace(rawLines(n, source))}, true

	case *ast.ThematicBreak:
		return ThematicBreak{}, true

	default:
		p.logger.Printf("markdown: skipping unsupported block kind %s", node.Kind())
		return nil, false
	}
}

// convertHeading applies the coarse whole-run bold heuristic: any **...** or
// __...__ in the raw text tags the entire run bold, markers stripped.
func (p *Parser) convertHeading(n *ast.Heading, source []byte) Block {
	raw := flattenText(rawLines(n, source))
	bold := strings.Contains(raw, "**") || strings.Contains(raw, "__")
	if bold {
		raw = strings.NewReplacer("**", "", "__", "").Replace(raw)
	}

	return Heading{
		Level:    n.Level,
		Children: []Inline{Text{Value: raw, Bold: bold}},
	}
}

// convertParagraph emits paragraph text through the inline scanner, except
// when the paragraph is an image reference: that was already rewritten to a
// destination URL by the image pipeline, so the raw markup is kept verbatim
// as a single unformatted text child.
func (p *Parser) convertParagraph(n ast.Node, source []byte) Block {
	raw := flattenText(rawLines(n, source))
	if imageReferencePattern.MatchString(raw) {
		return Paragraph{Children: []Inline{Text{Value: raw}}}
	}

	return Paragraph{Children: p.ParseInline(raw)}
}

func (p *Parser) convertList(n *ast.List, source []byte) Block {
	items := []ListItem{}
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		item, ok := child.(*ast.ListItem)
		if !ok {
			p.logger.Printf("markdown: skipping unexpected list child %s", child.Kind())
			continue
		}
		items = append(items, ListItem{Children: p.ParseInline(p.listItemText(item, source))})
	}

	return List{Ordered: n.IsOrdered(), Items: items}
}

// listItemText flattens the text of one list item.  Nested lists are dropped,
// matching the flat ListItem shape of the block tree.
func (p *Parser) listItemText(item *ast.ListItem, source []byte) string {
	parts := []string{}
	for child := item.FirstChild(); child != nil; child = child.NextSibling() {
		if _, nested := child.(*ast.List); nested {
			continue
		}
		if text := flattenText(rawLines(child, source)); text != "" {
			parts = append(parts, text)
		}
	}

	return strings.Join(parts, " ")
}

// quoteText gathers the raw text of everything inside a blockquote,
// descending through nested containers.
func quoteText(n ast.Node, source []byte) string {
	parts := []string{}
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		if child.Lines().Len() > 0 {
			parts = append(parts, rawLines(child, source))
			continue
		}
		if inner := quoteText(child, source); inner != "" {
			parts = append(parts, inner)
		}
	}

	return strings.Join(parts, "\n")
}

// rawLines joins the source segments of a block node, i.e. its raw Markdown
// text with inline markers intact, one line per segment.
func rawLines(n ast.Node, source []byte) string {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(strings.TrimRight(string(seg.Value(source)), "\r\n"))
	}

	return sb.String()
}

// flattenText collapses internal line breaks to single spaces and trims.
func flattenText(raw string) string {
	collapsed := strings.ReplaceAll(raw, "\r\n", "\n")
	collapsed = strings.ReplaceAll(collapsed, "\n", " ")
	for strings.Contains(collapsed, "  ") {
		collapsed = strings.ReplaceAll(collapsed, "  ", " ")
	}

	return strings.TrimSpace(collapsed)
}
