// Package catalog filters the cached item snapshot for the search API.
package catalog

import (
	"strings"

	entity "libas.GO/model/entity"
)

// Search filters items in stored order. text matches case-insensitively
// against name or alias as a substring; group matches the group name exactly
// (case-sensitive). Both filters compose with AND; empty filters pass
// everything. Never errors: no matches is an empty slice.
func Search(items []entity.Item, text, group string) []entity.Item {
	out := make([]entity.Item, 0, len(items))
	needle := strings.ToLower(strings.TrimSpace(text))
	for _, it := range items {
		if needle != "" {
			name := strings.ToLower(it.ItemName)
			alias := strings.ToLower(it.ItemAlias)
			if !strings.Contains(name, needle) && !strings.Contains(alias, needle) {
				continue
			}
		}
		if group != "" && it.GroupName != group {
			continue
		}
		out = append(out, it)
	}
	return out
}
