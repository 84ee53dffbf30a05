package catalog

import (
	"slices"
	"time"

	"github.com/hpungsan/folio/internal/errors"
	"github.com/hpungsan/folio/internal/project"
)

// SortByDate returns a new slice ordered by date, most recent first.
// Records with equal dates keep their input order.
// If any date fails to parse, SortByDate returns MALFORMED_DATE and no result.
func SortByDate(records []project.Project) ([]project.Project, error) {
	type dated struct {
		p project.Project
		t time.Time
	}

	items := make([]dated, len(records))
	for i, p := range records {
		t, err := project.ParseDate(p.Date)
		if err != nil {
			return nil, errors.NewMalformedDate(string(p.ID), p.Date)
		}
		items[i] = dated{p: p, t: t}
	}

	slices.SortStableFunc(items, func(a, b dated) int {
		return b.t.Compare(a.t)
	})

	out := make([]project.Project, len(items))
	for i, it := range items {
		out[i] = it.p
	}
	return out, nil
}
