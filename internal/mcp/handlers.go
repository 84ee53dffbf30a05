package mcp

import (
	"context"
	"encoding/json"
	stderrors "errors"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/hpungsan/folio/internal/catalog"
	"github.com/hpungsan/folio/internal/config"
	"github.com/hpungsan/folio/internal/errors"
	"github.com/hpungsan/folio/internal/metrics"
	"github.com/hpungsan/folio/internal/ops"
	"github.com/hpungsan/folio/internal/project"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	store   *catalog.Store
	viewer  *ops.Viewer
	cfg     *config.Config
	metrics *metrics.Collector
	logger  *zap.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(deps Deps) *Handlers {
	cfg := deps.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{
		store:   deps.Store,
		viewer:  ops.NewViewer(deps.Store),
		cfg:     cfg,
		metrics: deps.Metrics,
		logger:  logger,
	}
}

// ListRequest represents the arguments for project_list.
type ListRequest struct {
	Search   string `json:"search,omitempty"`
	Category string `json:"category,omitempty"`
}

// HandleList handles the project_list tool call.
func (h *Handlers) HandleList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ListRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := h.viewer.View(ops.ViewInput{
		Search:   input.Search,
		Category: input.Category,
	})
	if err != nil {
		return errorResult(err), nil
	}
	h.metrics.ViewServed(result.Cached)

	return successResult(result)
}

// HandleCategories handles the project_categories tool call.
func (h *Handlers) HandleCategories(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return successResult(ops.Categories(h.store))
}

// HandleAdd handles the project_add tool call.
func (h *Handlers) HandleAdd(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	draft, err := decode[project.Draft](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Add(h.store, h.cfg, ops.AddInput{Draft: draft})
	if err != nil {
		h.metrics.ValidationFailed(errors.Fields(err))
		return errorResult(err), nil
	}

	h.metrics.ProjectAdded(result.Total)
	h.logger.Info("project added",
		zap.String("id", string(result.Project.ID)),
		zap.String("category", result.Project.Category),
		zap.String("via", "mcp"),
	)

	return successResult(result)
}

// errorResult creates an MCP error result from an error.
func errorResult(err error) *mcp.CallToolResult {
	var fErr *errors.FolioError
	if !stderrors.As(err, &fErr) {
		fErr = errors.NewInternal(err)
	}

	errorObj := map[string]any{
		"code":    fErr.Code,
		"message": fErr.Message,
		"status":  fErr.Status,
	}
	// Only include details for non-internal errors so causes don't leak
	if fErr.Code != errors.ErrInternal && fErr.Details != nil {
		errorObj["details"] = fErr.Details
	}

	content, _ := json.Marshal(map[string]any{"error": errorObj})
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
