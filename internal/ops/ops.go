package ops

import (
	"github.com/hpungsan/folio/internal/catalog"
	"github.com/hpungsan/folio/internal/project"
)

// SortDateDesc names the only view ordering: date descending, stable.
const SortDateDesc = "date_desc"

// ViewInput contains the presentation state a view is derived from.
type ViewInput struct {
	Search   string // matched verbatim; empty matches everything
	Category string // catalog.AllCategories or a category; empty means All
}

// ViewOutput is the view model handed to a presentation surface.
type ViewOutput struct {
	Items      []project.Project `json:"items"`
	Categories []string          `json:"categories"`
	Total      int               `json:"total"`
	Search     string            `json:"search"`
	Category   string            `json:"category"`
	Sort       string            `json:"sort"`

	// Cached reports whether a Viewer answered from its memo.
	Cached bool `json:"-"`
}

// clone returns a deep copy so memoized results are never shared.
func (o *ViewOutput) clone() *ViewOutput {
	c := *o
	c.Items = make([]project.Project, len(o.Items))
	for i, p := range o.Items {
		c.Items[i] = p.Clone()
	}
	c.Categories = append([]string(nil), o.Categories...)
	if c.Categories == nil {
		c.Categories = []string{}
	}
	return &c
}

// normalizeCategory maps an unset selector to the All sentinel.
func normalizeCategory(category string) string {
	if category == "" {
		return catalog.AllCategories
	}
	return category
}
