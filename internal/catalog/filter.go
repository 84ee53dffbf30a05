package catalog

import (
	"strings"

	"github.com/hpungsan/folio/internal/project"
)

// AllCategories is the selector value meaning "no category restriction".
const AllCategories = "All"

// Filter returns the records that match both searchTerm and selectedCategory,
// in input order.
//
// An empty searchTerm matches every record. Otherwise the term is matched
// case-insensitively as a substring of the title, the description, or any tag.
// selectedCategory must be AllCategories or equal the record's category exactly.
func Filter(records []project.Project, searchTerm, selectedCategory string) []project.Project {
	term := strings.ToLower(searchTerm)

	out := make([]project.Project, 0, len(records))
	for _, p := range records {
		if selectedCategory != AllCategories && p.Category != selectedCategory {
			continue
		}
		if searchTerm != "" && !matchesSearch(p, term) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// matchesSearch reports whether the lowercased term occurs in p's text fields.
func matchesSearch(p project.Project, term string) bool {
	if strings.Contains(strings.ToLower(p.Title), term) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Description), term) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}
