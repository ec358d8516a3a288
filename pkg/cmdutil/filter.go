package cmdutil

// SelectorSet turns a list of non-empty selector strings into a set for
// membership checks. An empty or all-blank list yields an empty set, which
// Filter treats as "match everything".
func SelectorSet(selectors []string) map[string]struct{} {
	set := make(map[string]struct{}, len(selectors))
	for _, s := range selectors {
		if s == "" {
			continue
		}
		set[s] = struct{}{}
	}
	return set
}

// Filter keeps items whose key appears in the selector set. When no
// selectors are given the original slice is returned unchanged.
func Filter[T any](items []T, selectors []string, key func(T) string) []T {
	set := SelectorSet(selectors)
	if len(set) == 0 || key == nil {
		return items
	}
	result := make([]T, 0, len(items))
	for _, item := range items {
		if _, ok := set[key(item)]; ok {
			result = append(result, item)
		}
	}
	return result
}
