package markdown

import (
	"fmt"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	mdplugin "github.com/JohannesKaufmann/html-to-markdown/plugin"
	"github.com/PuerkitoBio/goquery"
)

// Renderer converts raw HTML into Markdown.  Images (and anchors whose sole
// child is an image) keep their original src/title verbatim so that the image
// pipeline can parse them back out of the Markdown afterwards.
type Renderer struct {
	converter *md.Converter
}

func NewRenderer() *Renderer {
	converter := md.NewConverter("", true, nil)
	// Github flavoured Markdown knows about tables 👍
	converter.Use(mdplugin.GitHubFlavored())
	converter.AddRules(imageAnchorRule(), imageRule())

	return &Renderer{converter: converter}
}

func (r *Renderer) Render(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", &InvalidInputError{Reason: "render expects a non-empty HTML string"}
	}

	markdown, err := r.converter.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("markdown: failed to convert HTML: %w", err)
	}

	return markdown, nil
}

// imageRule renders <img> as ![alt](src "title"), keeping src and title
// exactly as they appear in the source.  The default rule would escape or
// absolutise them, and the image pipeline depends on this exact shape.
func imageRule() md.Rule {
	return md.Rule{
		Filter: []string{"img"},
		Replacement: func(content string, selec *goquery.Selection, options *md.Options) *string {
			src, ok := selec.Attr("src")
			if !ok || strings.TrimSpace(src) == "" {
				return md.String("")
			}
			return md.String(imageMarkup(selec, src))
		},
	}
}

// imageAnchorRule unwraps <a><img/></a>: the anchor is discarded and only the
// image markup is kept.  Returning nil hands other anchors back to the
// default link rule.
func imageAnchorRule() md.Rule {
	return md.Rule{
		Filter: []string{"a"},
		Replacement: func(content string, selec *goquery.Selection, options *md.Options) *string {
			children := selec.Children()
			if children.Length() != 1 || !children.First().Is("img") {
				return nil
			}
			if strings.TrimSpace(selec.Text()) != "" {
				// anchor carries text besides the image, treat as a normal link
				return nil
			}

			img := children.First()
			src, ok := img.Attr("src")
			if !ok || strings.TrimSpace(src) == "" {
				return md.String("")
			}
			return md.String(imageMarkup(img, src))
		},
	}
}

func imageMarkup(selec *goquery.Selection, src string) string {
	alt := strings.TrimSpace(selec.AttrOr("alt", ""))
	if alt == "" {
		alt = "image"
	}

	if title := selec.AttrOr("title", ""); title != "" {
		return fmt.Sprintf("![%s](%s %q)", alt, src, title)
	}
	return fmt.Sprintf("![%s](%s)", alt, src)
}
