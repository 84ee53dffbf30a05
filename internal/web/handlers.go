package web

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/hpungsan/folio/internal/catalog"
	"github.com/hpungsan/folio/internal/config"
	"github.com/hpungsan/folio/internal/errors"
	"github.com/hpungsan/folio/internal/metrics"
	"github.com/hpungsan/folio/internal/ops"
	"github.com/hpungsan/folio/internal/project"
)

// maxFormBytes caps POST bodies for the form and the JSON API.
const maxFormBytes = 64 << 10

// Handlers contains HTTP route handlers for the web UI.
type Handlers struct {
	store    *catalog.Store
	viewer   *ops.Viewer
	cfg      *config.Config
	metrics  *metrics.Collector
	logger   *zap.Logger
	renderer *Renderer
	now      func() time.Time
}

// HandleList handles GET /projects: search, filter, and list projects.
func (h *Handlers) HandleList(w http.ResponseWriter, r *http.Request) {
	result, err := h.view(r)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	data := ListPageData{
		PageData:      h.renderer.page("Projects", "projects"),
		Items:         result.Items,
		Categories:    result.Categories,
		Search:        result.Search,
		Category:      result.Category,
		Total:         result.Total,
		AllCategories: catalog.AllCategories,
	}

	// If htmx targets #results, render only the results fragment
	if r.Header.Get("HX-Target") == "results" {
		h.renderer.renderBlock(w, http.StatusOK, "list", "project-results", data)
		return
	}

	h.renderer.renderPage(w, r, "list", data)
}

// HandleNew handles GET /projects/new: the empty add form.
func (h *Handlers) HandleNew(w http.ResponseWriter, r *http.Request) {
	h.renderer.renderPage(w, r, "form", h.formData(project.Draft{
		Category: h.cfg.DefaultCategory,
		Date:     project.Today(h.now()),
	}, nil))
}

// HandleCreate handles POST /projects: validate the form and add the project.
// Validation failures re-render the form with 422 and the submitted values.
func (h *Handlers) HandleCreate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("invalid form data"))
		return
	}

	draft := project.Draft{
		Title:       r.PostFormValue("title"),
		Description: r.PostFormValue("description"),
		Category:    r.PostFormValue("category"),
		Image:       r.PostFormValue("image"),
		Tags:        r.PostFormValue("tags"),
		Date:        r.PostFormValue("date"),
	}

	if _, err := h.add(draft); err != nil {
		if errors.Is(err, errors.ErrValidationFailed) {
			h.renderer.renderPageStatus(w, r, http.StatusUnprocessableEntity, "form",
				h.formData(draft, errors.Fields(err)))
			return
		}
		h.renderer.renderError(w, r, err)
		return
	}

	// HTMX request: redirect via HX-Redirect header
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", "/projects")
		w.WriteHeader(http.StatusOK)
		return
	}

	http.Redirect(w, r, "/projects", http.StatusSeeOther)
}

// HandleAPIList handles GET /api/projects: the view model as JSON.
func (h *Handlers) HandleAPIList(w http.ResponseWriter, r *http.Request) {
	result, err := h.view(r)
	if err != nil {
		h.renderAPIError(w, err)
		return
	}
	renderJSON(w, http.StatusOK, result)
}

// HandleAPICreate handles POST /api/projects with a JSON draft body.
func (h *Handlers) HandleAPICreate(w http.ResponseWriter, r *http.Request) {
	var draft project.Draft
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxFormBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&draft); err != nil {
		if stderrors.Is(err, io.EOF) {
			h.renderAPIError(w, errors.NewInvalidRequest("request body is required"))
			return
		}
		h.renderAPIError(w, errors.NewInvalidRequest("invalid JSON body: "+err.Error()))
		return
	}

	out, err := h.add(draft)
	if err != nil {
		h.renderAPIError(w, err)
		return
	}
	renderJSON(w, http.StatusCreated, out)
}

// HandleAPICategories handles GET /api/categories.
func (h *Handlers) HandleAPICategories(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, http.StatusOK, ops.Categories(h.store))
}

// view derives the view model from the q and category query parameters.
func (h *Handlers) view(r *http.Request) (*ops.ViewOutput, error) {
	input := ops.ViewInput{
		Search:   r.URL.Query().Get("q"),
		Category: r.URL.Query().Get("category"),
	}
	result, err := h.viewer.View(input)
	if err != nil {
		return nil, err
	}
	h.metrics.ViewServed(result.Cached)
	return result, nil
}

// add runs ops.Add and records the outcome.
func (h *Handlers) add(draft project.Draft) (*ops.AddOutput, error) {
	out, err := ops.Add(h.store, h.cfg, ops.AddInput{
		Draft:   draft,
		Options: project.ValidateOptions{Now: h.now},
	})
	if err != nil {
		if fields := errors.Fields(err); fields != nil {
			h.metrics.ValidationFailed(fields)
		}
		return nil, err
	}

	h.metrics.ProjectAdded(out.Total)
	h.logger.Info("project added",
		zap.String("id", string(out.Project.ID)),
		zap.String("category", out.Project.Category),
		zap.Int("total", out.Total),
	)
	return out, nil
}

// formData builds the form template data with the configured category list.
// A submitted category outside the list is kept selectable.
func (h *Handlers) formData(draft project.Draft, fieldErrors map[string]string) FormPageData {
	categories := append([]string(nil), h.cfg.Categories...)
	if len(categories) == 0 {
		categories = append(categories, project.Categories...)
	}
	if draft.Category != "" && !slices.Contains(categories, draft.Category) {
		categories = append(categories, draft.Category)
	}

	return FormPageData{
		PageData:   h.renderer.page("Add New Project", "new"),
		Draft:      draft,
		Errors:     fieldErrors,
		Categories: categories,
	}
}

// renderAPIError writes a JSON error envelope regardless of Accept.
func (h *Handlers) renderAPIError(w http.ResponseWriter, err error) {
	var fErr *errors.FolioError
	if !stderrors.As(err, &fErr) {
		h.logger.Error("api request failed", zap.Error(err))
		fErr = errors.NewInternal(err)
	}
	renderJSON(w, fErr.Status, errorBody(fErr))
}
