package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

var listToolDef = mcp.NewTool("project_list",
	mcp.WithDescription("List portfolio projects newest first, optionally narrowed by a case-insensitive search over title, description and tags, and by category. Also returns the distinct categories in the catalog."),
	mcp.WithReadOnlyHintAnnotation(true),
	mcp.WithString("search",
		mcp.Description("Substring to match; empty matches every project"),
	),
	mcp.WithString("category",
		mcp.Description(`Exact category to keep, or "All" (the default) for no restriction`),
	),
)

var categoriesToolDef = mcp.NewTool("project_categories",
	mcp.WithDescription("List the distinct categories of the projects currently in the catalog, sorted ascending."),
	mcp.WithReadOnlyHintAnnotation(true),
)

var addToolDef = mcp.NewTool("project_add",
	mcp.WithDescription("Validate a project draft and add it to the front of the catalog. Failed validation returns VALIDATION_FAILED with a per-field message map and leaves the catalog unchanged."),
	mcp.WithDestructiveHintAnnotation(false),
	mcp.WithString("title",
		mcp.Required(),
		mcp.Description("Project title"),
	),
	mcp.WithString("description",
		mcp.Required(),
		mcp.Description("Project description (markdown allowed)"),
	),
	mcp.WithString("image",
		mcp.Required(),
		mcp.Description("Image URL starting with http:// or https://"),
	),
	mcp.WithString("tags",
		mcp.Required(),
		mcp.Description(`Comma-separated tags, e.g. "React, UI/UX"`),
	),
	mcp.WithString("category",
		mcp.Description("Category; defaults to the configured default category"),
	),
	mcp.WithString("date",
		mcp.Description("YYYY-MM or YYYY-MM-DD; defaults to today"),
	),
)
