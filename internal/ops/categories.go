package ops

import (
	"github.com/hpungsan/folio/internal/catalog"
)

// CategoriesOutput contains the result of the Categories operation.
type CategoriesOutput struct {
	Categories []string `json:"categories"`
	All        string   `json:"all"` // selector value meaning no restriction
}

// Categories lists the distinct categories currently in the catalog.
func Categories(store *catalog.Store) *CategoriesOutput {
	return &CategoriesOutput{
		Categories: catalog.Categories(store.Snapshot()),
		All:        catalog.AllCategories,
	}
}
