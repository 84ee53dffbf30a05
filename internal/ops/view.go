package ops

import (
	"sync"

	"github.com/hpungsan/folio/internal/catalog"
	"github.com/hpungsan/folio/internal/project"
)

// View derives the view model from the current catalog: the distinct
// category list plus the filtered records sorted by date descending.
func View(store *catalog.Store, input ViewInput) (*ViewOutput, error) {
	return derive(store.Snapshot(), input)
}

// derive runs the category, filter and sort steps over one snapshot.
func derive(snapshot []project.Project, input ViewInput) (*ViewOutput, error) {
	category := normalizeCategory(input.Category)

	categories := catalog.Categories(snapshot)
	filtered := catalog.Filter(snapshot, input.Search, category)
	sorted, err := catalog.SortByDate(filtered)
	if err != nil {
		return nil, err
	}

	return &ViewOutput{
		Items:      sorted,
		Categories: categories,
		Total:      len(sorted),
		Search:     input.Search,
		Category:   category,
		Sort:       SortDateDesc,
	}, nil
}

// viewKey identifies a derived view. Any add bumps the version.
type viewKey struct {
	version  uint64
	search   string
	category string
}

// Viewer memoizes the most recent View per (catalog version, search, category).
// The memo only skips recomputation; a result is never served for another key.
type Viewer struct {
	store *catalog.Store

	mu     sync.Mutex
	key    viewKey
	result *ViewOutput
}

// NewViewer creates a Viewer over store.
func NewViewer(store *catalog.Store) *Viewer {
	return &Viewer{store: store}
}

// View returns the view model for input, reusing the memo when the key matches.
func (v *Viewer) View(input ViewInput) (*ViewOutput, error) {
	snapshot, version := v.store.VersionedSnapshot()
	key := viewKey{
		version:  version,
		search:   input.Search,
		category: normalizeCategory(input.Category),
	}

	v.mu.Lock()
	if v.result != nil && v.key == key {
		out := v.result.clone()
		v.mu.Unlock()
		out.Cached = true
		return out, nil
	}
	v.mu.Unlock()

	out, err := derive(snapshot, input)
	if err != nil {
		return nil, err
	}

	v.mu.Lock()
	// Keep the newest version's result if another caller got here first
	if v.result == nil || key.version >= v.key.version {
		v.key = key
		v.result = out.clone()
	}
	v.mu.Unlock()

	return out, nil
}
