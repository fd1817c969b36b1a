// Package strings holds small helpers for list-valued settings.
package strings

import "strings"

// SplitList splits a comma separated value, trims each element and drops
// empties and repeats. Order of first appearance is kept. Returns nil when
// nothing is left.
func SplitList(raw string) []string {
	var out []string
	seen := map[string]struct{}{}
	for _, part := range strings.Split(raw, ",") {
		p := strings.TrimSpace(part)
		if p == "" {
			continue
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}
