package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hpungsan/folio/internal/errors"
	"github.com/hpungsan/folio/internal/project"
)

// MaxSeedFileSize bounds how much of a seed file is read.
const MaxSeedFileSize = 10 * 1024 * 1024

//go:embed default_seed.json
var defaultSeed []byte

// SeedFormat identifies a seed file encoding.
type SeedFormat string

const (
	SeedFormatJSON SeedFormat = "json"
	SeedFormatYAML SeedFormat = "yaml"
)

// seedFile is the wrapped form: {"projects": [...]}.
type seedFile struct {
	Projects []project.Project `json:"projects" yaml:"projects"`
}

// DefaultSeed returns the built-in showcase projects.
func DefaultSeed() []project.Project {
	seed, err := DecodeSeed(defaultSeed, SeedFormatJSON)
	if err != nil {
		panic("embedded seed is invalid: " + err.Error())
	}
	return seed
}

// LoadSeed reads seed projects from path. An empty path yields DefaultSeed.
// The format is chosen by extension: .json, .yaml or .yml.
func LoadSeed(path string) ([]project.Project, error) {
	if path == "" {
		return DefaultSeed(), nil
	}

	var format SeedFormat
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		format = SeedFormatJSON
	case ".yaml", ".yml":
		format = SeedFormatYAML
	default:
		return nil, errors.NewInvalidRequest(fmt.Sprintf("unsupported seed file extension %q (want .json, .yaml or .yml)", filepath.Ext(path)))
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, errors.NewNotFound(path)
	}
	if err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to stat seed file: %w", err))
	}
	if info.Size() > MaxSeedFileSize {
		return nil, errors.NewInvalidRequest(fmt.Sprintf("seed file exceeds %d bytes", MaxSeedFileSize))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to read seed file: %w", err))
	}

	return DecodeSeed(data, format)
}

// DecodeSeed parses seed data as either a bare list or a {"projects": [...]} object.
// Every record must have an id and a parsable date; categories are not checked.
func DecodeSeed(data []byte, format SeedFormat) ([]project.Project, error) {
	var projects []project.Project

	switch format {
	case SeedFormatJSON:
		trimmed := bytes.TrimSpace(data)
		if len(trimmed) > 0 && trimmed[0] == '[' {
			if err := json.Unmarshal(trimmed, &projects); err != nil {
				return nil, errors.NewInvalidRequest(fmt.Sprintf("invalid seed JSON: %v", err))
			}
			break
		}
		var wrapped seedFile
		if err := json.Unmarshal(trimmed, &wrapped); err != nil {
			return nil, errors.NewInvalidRequest(fmt.Sprintf("invalid seed JSON: %v", err))
		}
		projects = wrapped.Projects

	case SeedFormatYAML:
		var node yaml.Node
		if err := yaml.Unmarshal(data, &node); err != nil {
			return nil, errors.NewInvalidRequest(fmt.Sprintf("invalid seed YAML: %v", err))
		}
		if len(node.Content) > 0 && node.Content[0].Kind == yaml.SequenceNode {
			if err := node.Content[0].Decode(&projects); err != nil {
				return nil, errors.NewInvalidRequest(fmt.Sprintf("invalid seed YAML: %v", err))
			}
			break
		}
		var wrapped seedFile
		if err := node.Decode(&wrapped); err != nil {
			return nil, errors.NewInvalidRequest(fmt.Sprintf("invalid seed YAML: %v", err))
		}
		projects = wrapped.Projects

	default:
		return nil, errors.NewInvalidRequest(fmt.Sprintf("unknown seed format %q", format))
	}

	for i, p := range projects {
		if strings.TrimSpace(string(p.ID)) == "" {
			return nil, errors.NewInvalidRequest(fmt.Sprintf("seed record %d: missing id", i))
		}
		if _, err := project.ParseDate(p.Date); err != nil {
			return nil, fmt.Errorf("seed record %d: %w", i, errors.NewMalformedDate(string(p.ID), p.Date))
		}
	}

	return projects, nil
}
