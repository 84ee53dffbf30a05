package project

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"

	"gopkg.in/yaml.v3"
)

// DefaultCategory is used when a draft arrives without a category.
const DefaultCategory = "Web Design"

// Categories lists the categories offered by the add form, in display order.
// The catalog itself accepts any category string.
var Categories = []string{
	"Web Design",
	"Mobile App",
	"Branding",
	"UI/UX",
	"Marketing",
}

// ID is an opaque project identifier.
// New records get a ULID; seed records may carry integer ids,
// which are kept as their decimal text.
type ID string

// Project represents one portfolio entry.
type Project struct {
	// ID uniquely identifies this project and is never reused
	ID ID `json:"id" yaml:"id"`

	// Title is the card heading
	Title string `json:"title" yaml:"title"`

	// Description is the card body (markdown allowed)
	Description string `json:"description" yaml:"description"`

	// Category is free text; the form draws it from Categories
	Category string `json:"category" yaml:"category"`

	// Image is an http(s) URL for the card image
	Image string `json:"image" yaml:"image"`

	// Tags are ordered, non-empty tokens
	Tags []string `json:"tags" yaml:"tags"`

	// Date is "YYYY-MM" or "YYYY-MM-DD"; see ParseDate
	Date string `json:"date" yaml:"date"`
}

// Clone returns a copy that shares no mutable state with p.
func (p Project) Clone() Project {
	p.Tags = slices.Clone(p.Tags)
	return p
}

// UnmarshalJSON accepts either a JSON string or a JSON integer.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or integer: %w", err)
	}
	if _, err := strconv.ParseInt(n.String(), 10, 64); err != nil {
		return fmt.Errorf("id must be a string or integer, got %s", n)
	}
	*id = ID(n.String())
	return nil
}

// UnmarshalYAML accepts any scalar (string or integer).
func (id *ID) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: id must be a scalar", node.Line)
	}
	*id = ID(node.Value)
	return nil
}
