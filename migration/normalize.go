package migration

import (
	"net/url"
	"path"
	"regexp"
	"strings"
)

// dimensionSuffix matches the -300x200 / _300x200 suffixes WordPress appends
// to resized copies of an upload, just before the file extension.
var dimensionSuffix = regexp.MustCompile(`[-_]\d+x\d+(\.[a-z0-9]+)?$`)

// sizeTierSegments are path segments some CDNs insert for pre-scaled
// renditions of the same asset.
var sizeTierSegments = map[string]bool{
	"small":     true,
	"medium":    true,
	"large":     true,
	"thumbnail": true,
}

// sizingSegments are path segments that come paired with a numeric argument,
// e.g. /quality/80/ or /width/1024/.
var sizingSegments = map[string]bool{
	"quality": true,
	"width":   true,
	"height":  true,
}

// NormalizeImageURL canonicalises a source image URL into a cache key: query
// and fragment stripped, lowercased, sizing hints removed, repeated slashes
// collapsed.  A URL that won't parse is returned unchanged so the caller can
// still use it as a (pessimistic) key; this function never fails.
func NormalizeImageURL(raw string) string {
	trimmed := strings.TrimSpace(raw)

	u, err := url.Parse(strings.ToLower(trimmed))
	if err != nil {
		return trimmed
	}

	u.RawQuery = ""
	u.Fragment = ""
	u.RawFragment = ""

	segments := strings.Split(u.Path, "/")
	kept := make([]string, 0, len(segments))
	for i := 0; i < len(segments); i++ {
		seg := segments[i]
		if seg == "" {
			// collapses repeated slashes
			continue
		}
		if sizingSegments[seg] && i+1 < len(segments) && isDigits(segments[i+1]) {
			i++
			continue
		}
		if sizeTierSegments[seg] {
			continue
		}
		kept = append(kept, seg)
	}

	if len(kept) > 0 {
		last := len(kept) - 1
		kept[last] = dimensionSuffix.ReplaceAllString(kept[last], "$1")
	}

	u.Path = "/" + strings.Join(kept, "/")
	if len(kept) == 0 {
		u.Path = "/"
	}

	return u.String()
}

// NormalizeFilename reduces a key to its bare filename: last path segment,
// lowercased, hyphens/underscores and extension stripped.  Two assets that
// normalise to the same filename are assumed to be the same visual asset.
func NormalizeFilename(key string) string {
	p := key
	if u, err := url.Parse(key); err == nil {
		p = u.Path
	} else {
		if idx := strings.IndexAny(p, "?#"); idx >= 0 {
			p = p[:idx]
		}
	}

	base := strings.ToLower(path.Base(p))
	if base == "." || base == "/" {
		return ""
	}

	base = strings.TrimSuffix(base, path.Ext(base))
	base = strings.NewReplacer("-", "", "_", "").Replace(base)

	return base
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
