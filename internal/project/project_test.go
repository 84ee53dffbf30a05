package project

import (
	"encoding/json"
	"slices"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestParseTags(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "empty string", input: "", expected: nil},
		{name: "single tag", input: "Figma", expected: []string{"Figma"}},
		{name: "round trip", input: "React, UI/UX, , Responsive", expected: []string{"React", "UI/UX", "Responsive"}},
		{name: "only separators", input: " , , ", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseTags(tt.input)
			if !slices.Equal(got, tt.expected) {
				t.Errorf("ParseTags(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestID_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		input    string
		expected ID
		wantErr  bool
	}{
		{input: `1`, expected: "1"},
		{input: `"01HZX3"`, expected: "01HZX3"},
		{input: `1.5`, wantErr: true},
		{input: `true`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var id ID
			err := json.Unmarshal([]byte(tt.input), &id)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Unmarshal(%s) = %q, want error", tt.input, id)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unmarshal(%s) failed: %v", tt.input, err)
			}
			if id != tt.expected {
				t.Errorf("id = %q, want %q", id, tt.expected)
			}
		})
	}
}

func TestID_UnmarshalYAML(t *testing.T) {
	var p Project
	if err := yaml.Unmarshal([]byte("id: 6\ntitle: Launch Campaign\n"), &p); err != nil {
		t.Fatalf("yaml.Unmarshal failed: %v", err)
	}
	if p.ID != "6" {
		t.Errorf("ID = %q, want %q", p.ID, "6")
	}

	if err := yaml.Unmarshal([]byte("id: [1, 2]\n"), &p); err == nil {
		t.Error("expected error for non-scalar id")
	}
}

func TestProject_Clone(t *testing.T) {
	p := Project{ID: "1", Tags: []string{"a", "b"}}
	c := p.Clone()
	c.Tags[0] = "changed"

	if p.Tags[0] != "a" {
		t.Errorf("original tags mutated: %v", p.Tags)
	}
}
