package mcp

import (
	"slices"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/hpungsan/folio/internal/catalog"
	"github.com/hpungsan/folio/internal/config"
	"github.com/hpungsan/folio/internal/metrics"
)

// Deps are the shared services tool handlers run on.
type Deps struct {
	Store   *catalog.Store
	Config  *config.Config
	Metrics *metrics.Collector
	Logger  *zap.Logger
	Version string
}

// toolEntry pairs a tool definition with a handler factory.
type toolEntry struct {
	def     mcp.Tool
	handler func(*Handlers) server.ToolHandlerFunc
}

// toolRegistry maps tool names to their definitions and handler factories.
var toolRegistry = map[string]toolEntry{
	"project_list": {
		def:     listToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleList },
	},
	"project_categories": {
		def:     categoriesToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleCategories },
	},
	"project_add": {
		def:     addToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleAdd },
	},
}

// AllToolNames returns a sorted list of all valid tool names.
func AllToolNames() []string {
	names := make([]string, 0, len(toolRegistry))
	for name := range toolRegistry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// ValidateDisabledTools returns a list of unknown tool names from the given list.
func ValidateDisabledTools(names []string) []string {
	unknown := make([]string, 0)
	for _, name := range names {
		if _, ok := toolRegistry[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	return unknown
}

// NewServer creates a new MCP server with Folio tools registered.
// Tools listed in cfg.DisabledTools are excluded from registration.
func NewServer(deps Deps) *server.MCPServer {
	s := server.NewMCPServer(
		"folio",
		deps.Version,
		server.WithToolCapabilities(true),
	)

	h := NewHandlers(deps)

	disabled := make(map[string]bool, len(h.cfg.DisabledTools))
	for _, name := range h.cfg.DisabledTools {
		disabled[name] = true
	}
	if unknown := ValidateDisabledTools(h.cfg.DisabledTools); len(unknown) > 0 {
		h.logger.Warn("unknown tools in disabled_tools", zap.Strings("tools", unknown))
	}

	// Register tools (skip disabled)
	for name, entry := range toolRegistry {
		if disabled[name] {
			continue
		}
		s.AddTool(entry.def, entry.handler(h))
	}

	return s
}

// Run starts the MCP server using stdio transport.
func Run(deps Deps) error {
	s := NewServer(deps)
	if deps.Logger != nil {
		deps.Logger.Info("mcp server starting", zap.String("transport", "stdio"))
	}
	return server.ServeStdio(s)
}

