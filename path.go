package config

import (
	"strconv"
	"strings"
)

// defaultDelimiters holds the characters that separate path segments
// when no custom set is configured.
const defaultDelimiters = "/."

// splitPath splits a path on unescaped delimiter characters. A
// backslash followed by a delimiter yields a literal delimiter inside
// the current segment with the backslash stripped; a backslash
// followed by anything else is kept verbatim. The empty path yields a
// single empty segment and a trailing delimiter yields a trailing
// empty segment, mirroring plain string splitting.
func splitPath(path, delims string) []string {
	segments := make([]string, 0, 4)
	var sb strings.Builder
	for i := 0; i < len(path); i++ {
		c := path[i]
		if c == '\\' && i+1 < len(path) && strings.IndexByte(delims, path[i+1]) >= 0 {
			sb.WriteByte(path[i+1])
			i++
			continue
		}
		if strings.IndexByte(delims, c) >= 0 {
			segments = append(segments, sb.String())
			sb.Reset()
			continue
		}
		sb.WriteByte(c)
	}
	return append(segments, sb.String())
}

// escapeSegment escapes every delimiter occurrence in a key so the
// result survives a round trip through splitPath.
func escapeSegment(seg, delims string) string {
	if !strings.ContainsAny(seg, delims) {
		return seg
	}
	var sb strings.Builder
	sb.Grow(len(seg) + 2)
	for i := 0; i < len(seg); i++ {
		if strings.IndexByte(delims, seg[i]) >= 0 {
			sb.WriteByte('\\')
		}
		sb.WriteByte(seg[i])
	}
	return sb.String()
}

// traverse walks tree along segments and reports whether a value is
// defined at that location. Trees are indexed by key and sequences by
// canonical non-negative decimal position. The walk never mutates its
// input and short-circuits on missing keys or scalar intermediates.
func traverse(tree map[string]any, segments []string) (any, bool) {
	var cur any = tree
	for _, seg := range segments {
		switch node := cur.(type) {
		case map[string]any:
			v, ok := node[seg]
			if !ok {
				return nil, false
			}
			cur = v
		case []any:
			idx, ok := seqIndex(seg)
			if !ok || idx >= len(node) {
				return nil, false
			}
			cur = node[idx]
		default:
			return nil, false
		}
	}
	return cur, true
}

// seqIndex parses seg as a canonical decimal index. Signs and leading
// zeros do not address sequence elements.
func seqIndex(seg string) (int, bool) {
	if seg == "" || len(seg) > 1 && seg[0] == '0' {
		return 0, false
	}
	for i := 0; i < len(seg); i++ {
		if seg[i] < '0' || seg[i] > '9' {
			return 0, false
		}
	}
	idx, err := strconv.Atoi(seg)
	if err != nil {
		return 0, false
	}
	return idx, true
}

// buildTree nests value under the given segments, innermost last.
func buildTree(segments []string, value any) map[string]any {
	tree := map[string]any{segments[len(segments)-1]: value}
	for i := len(segments) - 2; i >= 0; i-- {
		tree = map[string]any{segments[i]: tree}
	}
	return tree
}
