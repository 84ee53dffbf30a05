package ops

import (
	"github.com/hpungsan/folio/internal/catalog"
	"github.com/hpungsan/folio/internal/config"
	"github.com/hpungsan/folio/internal/project"
)

// AddInput contains parameters for the Add operation.
type AddInput struct {
	Draft project.Draft

	// Options overrides the clock and id source (tests). DefaultCategory
	// falls back to cfg.DefaultCategory when unset.
	Options project.ValidateOptions
}

// AddOutput contains the result of the Add operation.
type AddOutput struct {
	Project project.Project `json:"project"`
	Total   int             `json:"total"`
}

// Add validates a draft and prepends the resulting project to the catalog.
// On validation failure the catalog is untouched and the error carries the
// field map (errors.Fields).
func Add(store *catalog.Store, cfg *config.Config, input AddInput) (*AddOutput, error) {
	opts := input.Options
	if opts.DefaultCategory == "" && cfg != nil {
		opts.DefaultCategory = cfg.DefaultCategory
	}

	p, err := project.Validate(input.Draft, opts)
	if err != nil {
		return nil, err
	}

	if err := store.Add(*p); err != nil {
		return nil, err
	}

	return &AddOutput{
		Project: *p,
		Total:   store.Len(),
	}, nil
}
