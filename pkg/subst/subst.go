package subst

import (
	"bytes"
	"fmt"
	"strings"
)

// InvalidPathError reports a path rename whose replacement value would
// introduce a path separator into a single segment.
type InvalidPathError struct {
	Path  string
	Token string
	Value string
}

func (e *InvalidPathError) Error() string {
	return fmt.Sprintf("invalid path %q: replacement for %q contains a path separator (%q)", e.Path, e.Token, e.Value)
}

// Apply replaces every token in content with its value, in map order, in a
// single left-to-right scan. A replaced span is never re-scanned, so a
// replacement value that happens to contain another token is left alone.
// Content without tokens passes through unchanged.
func Apply(content []byte, m Map) []byte {
	entries := m.Entries()
	if len(entries) == 0 || len(content) == 0 {
		return content
	}

	var out bytes.Buffer
	out.Grow(len(content))
	i := 0
scan:
	for i < len(content) {
		for _, e := range entries {
			if matchAt(content, i, e.Token) {
				out.WriteString(e.Value)
				i += len(e.Token)
				continue scan
			}
		}
		out.WriteByte(content[i])
		i++
	}
	return out.Bytes()
}

// ApplyString is Apply over strings.
func ApplyString(s string, m Map) string {
	return string(Apply([]byte(s), m))
}

// RenamePath applies the map to each segment of a slash-separated relative
// path independently, using the path-safe value of each entry. Tokens never
// match across a separator boundary. Returns InvalidPathError when a
// replacement value would itself contain a separator.
func RenamePath(relPath string, m Map) (string, error) {
	if relPath == "" || m.Len() == 0 {
		return relPath, nil
	}
	segments := strings.Split(relPath, "/")
	for i, seg := range segments {
		renamed, err := renameSegment(relPath, seg, m)
		if err != nil {
			return "", err
		}
		segments[i] = renamed
	}
	return strings.Join(segments, "/"), nil
}

func renameSegment(fullPath, segment string, m Map) (string, error) {
	entries := m.Entries()
	seg := []byte(segment)
	var out strings.Builder
	i := 0
scan:
	for i < len(seg) {
		for _, e := range entries {
			if matchAt(seg, i, e.Token) {
				if strings.ContainsAny(e.PathValue, `/\`) {
					return "", &InvalidPathError{Path: fullPath, Token: e.Token, Value: e.PathValue}
				}
				out.WriteString(e.PathValue)
				i += len(e.Token)
				continue scan
			}
		}
		out.WriteByte(seg[i])
		i++
	}
	return out.String(), nil
}

func matchAt(b []byte, i int, token string) bool {
	if i+len(token) > len(b) {
		return false
	}
	return string(b[i:i+len(token)]) == token
}
