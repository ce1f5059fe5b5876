package markdown

import (
	"net/url"
	"strings"
)

// styleMarker is one recognised inline style, delimited by an open/close pair.
type styleMarker struct {
	open  string
	close string
	apply func(*Text)
}

// Priority order matters: bold's ** must be tried before italic's *, and the
// code span first so backticked markers stay literal.  Text consumed by one
// marker is never re-scanned by a later one.
var styleMarkers = []styleMarker{
	{"`", "`", func(t *Text) { t.Code = true }},
	{"**", "**", func(t *Text) { t.Bold = true }},
	{"__", "__", func(t *Text) { t.Bold = true }},
	{"*", "*", func(t *Text) { t.Italic = true }},
	{"_", "_", func(t *Text) { t.Italic = true }},
	{"~~", "~~", func(t *Text) { t.Strikethrough = true }},
	{"<u>", "</u>", func(t *Text) { t.Underline = true }},
}

// ParseInline scans text once, left to right, emitting styled Text runs,
// Links, and the literal text between them in document order.
func (p *Parser) ParseInline(text string) []Inline {
	var nodes []Inline
	var plain strings.Builder

	flush := func() {
		if plain.Len() > 0 {
			nodes = append(nodes, Text{Value: plain.String()})
			plain.Reset()
		}
	}

	i := 0
	for i < len(text) {
		if text[i] == '[' {
			if link, literal, consumed, ok := p.scanLink(text[i:]); ok {
				if literal != "" {
					// invalid target, demoted to plain text
					plain.WriteString(literal)
					i += consumed
					continue
				}
				flush()
				nodes = append(nodes, link)
				i += consumed
				continue
			}
		}

		if styled, consumed, ok := scanStyled(text[i:]); ok {
			flush()
			nodes = append(nodes, styled)
			i += consumed
			continue
		}

		plain.WriteByte(text[i])
		i++
	}
	flush()

	return nodes
}

// scanStyled tries each style marker at the head of s.  A match needs a
// closing marker and a non-empty span between the two.
func scanStyled(s string) (Inline, int, bool) {
	for _, m := range styleMarkers {
		if !strings.HasPrefix(s, m.open) {
			continue
		}
		closeIdx := strings.Index(s[len(m.open):], m.close)
		if closeIdx <= 0 {
			continue
		}

		run := Text{Value: s[len(m.open) : len(m.open)+closeIdx]}
		m.apply(&run)
		return run, len(m.open) + closeIdx + len(m.close), true
	}

	return nil, 0, false
}

// scanLink matches [label](target "title"?) at the head of s.  A match with
// an invalid target is returned as its literal source text instead of a Link.
func (p *Parser) scanLink(s string) (Link, string, int, bool) {
	closeBracket := strings.Index(s, "]")
	if closeBracket < 0 || closeBracket+1 >= len(s) || s[closeBracket+1] != '(' {
		return Link{}, "", 0, false
	}

	closeParen := strings.Index(s[closeBracket+2:], ")")
	if closeParen < 0 {
		return Link{}, "", 0, false
	}

	end := closeBracket + 2 + closeParen + 1
	label := s[1:closeBracket]
	target := strings.TrimSpace(s[closeBracket+2 : end-1])

	// drop an optional quoted title after the URL
	if idx := strings.IndexAny(target, " \t"); idx >= 0 && strings.HasPrefix(strings.TrimSpace(target[idx:]), `"`) {
		target = target[:idx]
	}

	if !validLinkTarget(target) {
		p.logger.Printf("markdown: link target %q is not a well-formed URL, keeping literal text", target)
		return Link{}, s[:end], end, true
	}

	return Link{URL: target, Children: p.ParseInline(label)}, "", end, true
}

func validLinkTarget(target string) bool {
	if target == "" {
		return false
	}
	u, err := url.ParseRequestURI(target)
	if err != nil {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https" || u.Scheme == "mailto" || strings.HasPrefix(target, "/")
}
