package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/hpungsan/folio/internal/catalog"
	"github.com/hpungsan/folio/internal/config"
	"github.com/hpungsan/folio/internal/errors"
	"github.com/hpungsan/folio/internal/metrics"
	"github.com/hpungsan/folio/internal/project"
)

// testSetup creates a seeded store and default config for testing.
func testSetup(t *testing.T) Deps {
	t.Helper()

	store, err := catalog.NewStore([]project.Project{
		{
			ID: "1", Title: "E-Commerce Platform Redesign", Description: "Shop redesign",
			Category: "Web Design", Image: "https://example.com/1.jpg",
			Tags: []string{"UI/UX", "React"}, Date: "2024-01",
		},
		{
			ID: "2", Title: "Mobile Banking App", Description: "Banking on the go",
			Category: "Mobile App", Image: "https://example.com/2.jpg",
			Tags: []string{"Mobile", "FinTech"}, Date: "2024-02",
		},
	})
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	return Deps{
		Store:   store,
		Config:  config.DefaultConfig(),
		Metrics: metrics.NewCollector(),
		Version: "test",
	}
}

// makeRequest creates a CallToolRequest with the given arguments.
func makeRequest(args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: args,
		},
	}
}

func validAddArgs() map[string]any {
	return map[string]any{
		"title":       "Brand Refresh",
		"description": "New identity",
		"category":    "Branding",
		"image":       "https://example.com/b.png",
		"tags":        "Logo, Packaging",
		"date":        "2024-05",
	}
}

func TestHandleList(t *testing.T) {
	deps := testSetup(t)
	h := NewHandlers(deps)
	ctx := context.Background()

	t.Run("all projects newest first", func(t *testing.T) {
		result, err := h.HandleList(ctx, makeRequest(nil))
		if err != nil {
			t.Fatalf("handler returned error: %v", err)
		}
		output := parseOutput(t, result)

		items := output["items"].([]any)
		if len(items) != 2 {
			t.Fatalf("items = %d, want 2", len(items))
		}
		if first := items[0].(map[string]any)["id"]; first != "2" {
			t.Errorf("items[0].id = %v, want 2", first)
		}
		if output["category"] != "All" {
			t.Errorf("category = %v, want All", output["category"])
		}
		if output["sort"] != "date_desc" {
			t.Errorf("sort = %v, want date_desc", output["sort"])
		}
	})

	t.Run("search is case-insensitive over tags", func(t *testing.T) {
		result, _ := h.HandleList(ctx, makeRequest(map[string]any{"search": "REACT"}))
		output := parseOutput(t, result)

		if int(output["total"].(float64)) != 1 {
			t.Errorf("total = %v, want 1", output["total"])
		}
	})

	t.Run("unknown category yields empty items", func(t *testing.T) {
		result, _ := h.HandleList(ctx, makeRequest(map[string]any{"category": "Marketing"}))
		output := parseOutput(t, result)

		items, ok := output["items"].([]any)
		if !ok || len(items) != 0 {
			t.Errorf("items = %v, want empty array", output["items"])
		}
		// Categories come from the whole catalog
		if cats := output["categories"].([]any); len(cats) != 2 {
			t.Errorf("categories = %v, want 2", cats)
		}
	})

	t.Run("invalid argument type", func(t *testing.T) {
		result, _ := h.HandleList(ctx, makeRequest(map[string]any{"search": 42}))
		if !result.IsError {
			t.Fatal("expected IsError=true")
		}
		assertErrorCode(t, result, "INVALID_REQUEST")
	})

	if got := testutil.ToFloat64(deps.Metrics.Views); got != 3 {
		t.Errorf("views = %v, want 3", got)
	}
}

func TestHandleCategories(t *testing.T) {
	h := NewHandlers(testSetup(t))

	result, err := h.HandleCategories(context.Background(), makeRequest(nil))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	output := parseOutput(t, result)

	cats := output["categories"].([]any)
	if len(cats) != 2 || cats[0] != "Mobile App" || cats[1] != "Web Design" {
		t.Errorf("categories = %v, want [Mobile App Web Design]", cats)
	}
	if output["all"] != "All" {
		t.Errorf("all = %v, want All", output["all"])
	}
}

func TestHandleAdd(t *testing.T) {
	ctx := context.Background()

	t.Run("adds to front of catalog", func(t *testing.T) {
		deps := testSetup(t)
		h := NewHandlers(deps)

		result, err := h.HandleAdd(ctx, makeRequest(validAddArgs()))
		if err != nil {
			t.Fatalf("handler returned error: %v", err)
		}
		output := parseOutput(t, result)

		p := output["project"].(map[string]any)
		if len(p["id"].(string)) != 26 {
			t.Errorf("id = %v, want a ULID", p["id"])
		}
		if tags := p["tags"].([]any); len(tags) != 2 || tags[0] != "Logo" {
			t.Errorf("tags = %v, want [Logo Packaging]", tags)
		}
		if int(output["total"].(float64)) != 3 {
			t.Errorf("total = %v, want 3", output["total"])
		}

		list := parseOutput(t, mustCall(t, h.HandleList, nil))
		first := list["items"].([]any)[0].(map[string]any)
		if first["title"] != "Brand Refresh" {
			t.Errorf("first listed = %v, want Brand Refresh", first["title"])
		}
		if got := testutil.ToFloat64(deps.Metrics.ProjectsAdded); got != 1 {
			t.Errorf("projects added = %v, want 1", got)
		}
	})

	t.Run("validation failure reports fields", func(t *testing.T) {
		deps := testSetup(t)
		h := NewHandlers(deps)

		args := validAddArgs()
		args["image"] = "example.com/b.png"
		args["tags"] = " , ,"

		result, _ := h.HandleAdd(ctx, makeRequest(args))
		if !result.IsError {
			t.Fatal("expected IsError=true")
		}
		assertErrorCode(t, result, "VALIDATION_FAILED")

		payload := errorPayload(t, result)
		fields := payload["details"].(map[string]any)["fields"].(map[string]any)
		if fields["image"] != "Please enter a valid URL" {
			t.Errorf("fields.image = %v", fields["image"])
		}
		if fields["tags"] != "At least one tag is required" {
			t.Errorf("fields.tags = %v", fields["tags"])
		}
		if len(fields) != 2 {
			t.Errorf("fields = %v, want image and tags only", fields)
		}
		if deps.Store.Len() != 2 {
			t.Errorf("store len = %d, want 2 (unchanged)", deps.Store.Len())
		}
	})

	t.Run("blank category uses configured default", func(t *testing.T) {
		deps := testSetup(t)
		deps.Config.DefaultCategory = "Marketing"
		h := NewHandlers(deps)

		args := validAddArgs()
		delete(args, "category")

		output := parseOutput(t, mustCall(t, h.HandleAdd, args))
		if got := output["project"].(map[string]any)["category"]; got != "Marketing" {
			t.Errorf("category = %v, want Marketing", got)
		}
	})
}

func TestServerRegistration(t *testing.T) {
	s := NewServer(testSetup(t))
	tools := s.ListTools()

	expectedTools := []string{"project_list", "project_categories", "project_add"}
	if len(tools) != len(expectedTools) {
		t.Errorf("registered tool count = %d, want %d", len(tools), len(expectedTools))
	}
	for _, name := range expectedTools {
		if _, ok := tools[name]; !ok {
			t.Errorf("missing registered tool: %s", name)
		}
	}
}

func TestServerRegistration_WithDisabledTools(t *testing.T) {
	deps := testSetup(t)
	deps.Config.DisabledTools = []string{"project_add", "project_add", "not_a_tool"}

	tools := NewServer(deps).ListTools()
	if len(tools) != 2 {
		t.Errorf("registered tool count = %d, want 2", len(tools))
	}
	if _, ok := tools["project_add"]; ok {
		t.Error("disabled tool project_add should not be registered")
	}
}

func TestValidateDisabledTools(t *testing.T) {
	tests := []struct {
		name    string
		input   []string
		wantLen int
	}{
		{"all valid", []string{"project_add", "project_list"}, 0},
		{"one unknown", []string{"project_add", "project_delete"}, 1},
		{"empty list", []string{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unknown := ValidateDisabledTools(tt.input)
			if len(unknown) != tt.wantLen {
				t.Errorf("ValidateDisabledTools() returned %d unknown, want %d", len(unknown), tt.wantLen)
			}
		})
	}
}

func TestAllToolNames(t *testing.T) {
	names := AllToolNames()
	want := []string{"project_add", "project_categories", "project_list"}
	if fmt.Sprint(names) != fmt.Sprint(want) {
		t.Errorf("AllToolNames() = %v, want %v", names, want)
	}
}

func TestErrorResult_InternalDoesNotExposeDetails(t *testing.T) {
	r := errorResult(fmt.Errorf("open /tmp/secret.json: permission denied"))
	if !r.IsError {
		t.Fatal("expected IsError=true")
	}

	errObj := errorPayload(t, r)
	if errObj["code"] != string(errors.ErrInternal) {
		t.Fatalf("code=%v, want %v", errObj["code"], errors.ErrInternal)
	}
	if _, ok := errObj["details"]; ok {
		t.Fatal("expected INTERNAL errors to omit details")
	}
}

func TestErrorResult_WrappedErrorKeepsCode(t *testing.T) {
	r := errorResult(fmt.Errorf("seed record 3: %w", errors.NewMalformedDate("3", "later")))

	errObj := errorPayload(t, r)
	if errObj["code"] != string(errors.ErrMalformedDate) {
		t.Errorf("code=%v, want %v", errObj["code"], errors.ErrMalformedDate)
	}
}

// Helper functions

func mustCall(t *testing.T, fn func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]any) *mcp.CallToolResult {
	t.Helper()
	result, err := fn(context.Background(), makeRequest(args))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return result
}

// parseOutput extracts and unmarshals the JSON output from an MCP result.
func parseOutput(t *testing.T, result *mcp.CallToolResult) map[string]any {
	t.Helper()
	if result.IsError {
		t.Fatalf("expected success, got error: %v", extractErrorMessage(result))
	}
	var output map[string]any
	if err := json.Unmarshal([]byte(result.Content[0].(mcp.TextContent).Text), &output); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	return output
}

// errorPayload returns the "error" object of an error result.
func errorPayload(t *testing.T, result *mcp.CallToolResult) map[string]any {
	t.Helper()
	var payload map[string]any
	if err := json.Unmarshal([]byte(result.Content[0].(mcp.TextContent).Text), &payload); err != nil {
		t.Fatalf("failed to unmarshal error payload: %v", err)
	}
	errObj, ok := payload["error"].(map[string]any)
	if !ok {
		t.Fatalf("no error object in payload: %v", payload)
	}
	return errObj
}

func assertErrorCode(t *testing.T, result *mcp.CallToolResult, expectedCode string) {
	t.Helper()
	if code := errorPayload(t, result)["code"]; code != expectedCode {
		t.Errorf("got error code %q, want %q", code, expectedCode)
	}
}

func extractErrorMessage(result *mcp.CallToolResult) string {
	if len(result.Content) == 0 {
		return "<no content>"
	}

	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		return "<not text content>"
	}

	return text.Text
}
