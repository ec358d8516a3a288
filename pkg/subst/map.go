package subst

import (
	"fmt"
	"sort"
	"strings"
)

// Entry is a single token replacement. Value is used for file contents;
// PathValue is used when the token appears in a path segment and defaults
// to Value when left empty.
type Entry struct {
	Token     string
	Value     string
	PathValue string
}

// Map is the ordered set of replacements for one generation run. Longer
// tokens always sort before shorter ones so that a token which is a
// substring of another can never shadow it during the scan.
type Map struct {
	entries []Entry
}

// NewMap builds a Map from entries, normalizing order and rejecting
// duplicate or empty tokens.
func NewMap(entries []Entry) (Map, error) {
	seen := map[string]struct{}{}
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.Token == "" {
			return Map{}, fmt.Errorf("substitution map: empty token")
		}
		if _, ok := seen[e.Token]; ok {
			return Map{}, fmt.Errorf("substitution map: duplicate token %q", e.Token)
		}
		seen[e.Token] = struct{}{}
		if e.PathValue == "" {
			e.PathValue = e.Value
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return len(out[i].Token) > len(out[j].Token)
	})
	return Map{entries: out}, nil
}

// Entries returns the replacements in scan order.
func (m Map) Entries() []Entry {
	return m.entries
}

// Len returns the number of replacements.
func (m Map) Len() int { return len(m.entries) }

// Lookup returns the entry for token, if present.
func (m Map) Lookup(token string) (Entry, bool) {
	for _, e := range m.entries {
		if e.Token == token {
			return e, true
		}
	}
	return Entry{}, false
}

func (m Map) String() string {
	tokens := make([]string, 0, len(m.entries))
	for _, e := range m.entries {
		tokens = append(tokens, e.Token)
	}
	return strings.Join(tokens, ", ")
}
