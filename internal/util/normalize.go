package util

import "strings"

// NormalizeValues flattens the ways clients encode multi-value query params
// (repeated keys, a single comma-separated value, or both) into one trimmed,
// de-duplicated list. First-seen order is preserved. Blank entries are dropped.
func NormalizeValues(values []string) []string {
	if len(values) == 0 {
		return nil
	}

	seen := map[string]bool{}
	out := make([]string, 0, len(values))
	for _, raw := range values {
		for _, p := range strings.Split(raw, ",") {
			p = strings.TrimSpace(p)
			if p == "" || seen[p] {
				continue
			}
			seen[p] = true
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
