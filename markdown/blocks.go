package markdown

import "encoding/json"

// Block is a block-level node of the document tree.  The set is closed: only
// the types in this file implement it, so renderers can switch exhaustively.
type Block interface {
	blockNode()
}

// Inline is an inline-level node: styled text or a link.
type Inline interface {
	inlineNode()
}

type Heading struct {
	Level    int // 1..6
	Children []Inline
}

type Paragraph struct {
	Children []Inline
}

type List struct {
	Ordered bool
	Items   []ListItem
}

type ListItem struct {
	Children []Inline
}

type Quote struct {
	Children []Inline
}

type CodeBlock struct {
	Language string // "" when the fence carries no language tag
	Text     string
}

type Image struct {
	URL             string
	AlternativeText string
}

type ThematicBreak struct{}

// Text carries a run of characters.  Style flags are non-exclusive booleans,
// not nested wrapping: one run can be bold and italic at once.
type Text struct {
	Value         string
	Bold          bool
	Italic        bool
	Underline     bool
	Strikethrough bool
	Code          bool
}

type Link struct {
	URL      string
	Children []Inline
}

func (Heading) blockNode()       {}
func (Paragraph) blockNode()     {}
func (List) blockNode()          {}
func (Quote) blockNode()         {}
func (CodeBlock) blockNode()     {}
func (Image) blockNode()         {}
func (ThematicBreak) blockNode() {}

func (Text) inlineNode() {}
func (Link) inlineNode() {}

// The JSON below is the destination CMS's blocks shape: a "type" discriminant
// on every node, "children" arrays that are never null.

func nonNil(nodes []Inline) []Inline {
	if nodes == nil {
		return []Inline{}
	}
	return nodes
}

func (h Heading) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type     string   `json:"type"`
		Level    int      `json:"level"`
		Children []Inline `json:"children"`
	}{"heading", h.Level, nonNil(h.Children)})
}

func (p Paragraph) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type     string   `json:"type"`
		Children []Inline `json:"children"`
	}{"paragraph", nonNil(p.Children)})
}

func (l List) MarshalJSON() ([]byte, error) {
	format := "unordered"
	if l.Ordered {
		format = "ordered"
	}
	items := make([]json.RawMessage, 0, len(l.Items))
	for _, item := range l.Items {
		encoded, err := json.Marshal(struct {
			Type     string   `json:"type"`
			Children []Inline `json:"children"`
		}{"list-item", nonNil(item.Children)})
		if err != nil {
			return nil, err
		}
		items = append(items, encoded)
	}
	return json.Marshal(struct {
		Type     string            `json:"type"`
		Format   string            `json:"format"`
		Children []json.RawMessage `json:"children"`
	}{"list", format, items})
}

func (q Quote) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type     string   `json:"type"`
		Children []Inline `json:"children"`
	}{"quote", nonNil(q.Children)})
}

func (c CodeBlock) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type     string   `json:"type"`
		Language string   `json:"language,omitempty"`
		Children []Inline `json:"children"`
	}{"code", c.Language, []Inline{Text{Value: c.Text}}})
}

func (i Image) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type  string `json:"type"`
		Image struct {
			URL             string `json:"url"`
			AlternativeText string `json:"alternativeText"`
		} `json:"image"`
	}{Type: "image", Image: struct {
		URL             string `json:"url"`
		AlternativeText string `json:"alternativeText"`
	}{i.URL, i.AlternativeText}})
}

func (ThematicBreak) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string `json:"type"`
	}{"thematic-break"})
}

func (t Text) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type          string `json:"type"`
		Text          string `json:"text"`
		Bold          bool   `json:"bold,omitempty"`
		Italic        bool   `json:"italic,omitempty"`
		Underline     bool   `json:"underline,omitempty"`
		Strikethrough bool   `json:"strikethrough,omitempty"`
		Code          bool   `json:"code,omitempty"`
	}{"text", t.Value, t.Bold, t.Italic, t.Underline, t.Strikethrough, t.Code})
}

func (l Link) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type     string   `json:"type"`
		URL      string   `json:"url"`
		Children []Inline `json:"children"`
	}{"link", l.URL, nonNil(l.Children)})
}
