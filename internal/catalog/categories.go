package catalog

import (
	"slices"

	"github.com/hpungsan/folio/internal/project"
)

// Categories returns the distinct categories in records, sorted ascending.
// Comparison is byte-wise and case-sensitive; any string is accepted.
func Categories(records []project.Project) []string {
	seen := make(map[string]bool)
	cats := make([]string, 0)
	for _, p := range records {
		if !seen[p.Category] {
			seen[p.Category] = true
			cats = append(cats, p.Category)
		}
	}
	slices.Sort(cats)
	return cats
}
