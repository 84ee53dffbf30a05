package config

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/hpungsan/folio/internal/errors"
	"github.com/hpungsan/folio/internal/project"
)

// Config holds application configuration.
type Config struct {
	// SeedPath is a .json/.yaml/.yml file with the initial catalog.
	// Empty means the built-in showcase projects. Relative paths are
	// resolved against the directory of the config file that set them.
	SeedPath string `json:"seed_path,omitempty"`

	// Bind is the interface the web UI listens on.
	Bind string `json:"bind,omitempty" validate:"omitempty,hostname|ip"`

	// Port is the web UI port.
	Port int `json:"port,omitempty" validate:"min=1,max=65535"`

	// DefaultCategory is assigned to drafts submitted without a category.
	DefaultCategory string `json:"default_category,omitempty"`

	// Categories is the list offered by the add form.
	// A non-empty overlay list replaces the base list instead of merging.
	Categories []string `json:"categories,omitempty" validate:"dive,required"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"log_level,omitempty" validate:"omitempty,oneof=debug info warn error"`

	// DisabledTools is a list of MCP tool names to exclude from registration.
	// Unknown tool names are logged as warnings.
	DisabledTools []string `json:"disabled_tools,omitempty"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Bind:            "127.0.0.1",
		Port:            8080,
		DefaultCategory: project.DefaultCategory,
		Categories:      append([]string(nil), project.Categories...),
		LogLevel:        "info",
	}
}

// Validate checks field constraints and returns INVALID_REQUEST on failure.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !stderrors.As(err, &fieldErrs) {
		return errors.NewInternal(err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q (got %v)", fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return errors.NewInvalidRequest("invalid config: " + strings.Join(msgs, "; "))
}

// Load loads configuration from baseDir/config.json.
// Returns default config if the file doesn't exist.
// The baseDir parameter allows tests to use t.TempDir() instead of ~/.folio.
func Load(baseDir string) (*Config, error) {
	return loadFile(filepath.Join(baseDir, "config.json"))
}

// LoadWithRepo loads configuration from both global (~/.folio) and repo (.folio) directories.
// Repo config is found by walking upward from startDir to find the nearest .folio/config.json.
// Repo config takes precedence for scalar values.
// Either or both configs may be missing.
func LoadWithRepo(globalDir, startDir string) (*Config, error) {
	global, err := loadFileRaw(filepath.Join(globalDir, "config.json"))
	if err != nil {
		return nil, err
	}

	repoConfigPath := FindRepoConfig(startDir)
	repo, err := loadFileRaw(repoConfigPath)
	if err != nil {
		return nil, err
	}

	cfg := Merge(Merge(DefaultConfig(), global), repo)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FindRepoConfig walks upward from startDir to find the nearest .folio/config.json.
// Returns the path if found, or empty string if not found.
func FindRepoConfig(startDir string) string {
	if startDir == "" {
		return ""
	}
	dir := startDir
	for {
		configPath := filepath.Join(dir, ".folio", "config.json")
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// loadFileRaw loads configuration from a specific file path.
// Returns zero-valued config if the file doesn't exist (not defaults).
func loadFileRaw(configPath string) (*Config, error) {
	if configPath == "" {
		return &Config{}, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", configPath, err)
	}

	if cfg.SeedPath != "" && !filepath.IsAbs(cfg.SeedPath) {
		cfg.SeedPath = filepath.Join(filepath.Dir(configPath), cfg.SeedPath)
	}

	return cfg, nil
}

// loadFile loads configuration from a specific file path.
// Returns default config if the file doesn't exist.
func loadFile(configPath string) (*Config, error) {
	cfg, err := loadFileRaw(configPath)
	if err != nil {
		return nil, err
	}
	merged := Merge(DefaultConfig(), cfg)
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return merged, nil
}

// Merge combines base and overlay configs.
// Overlay values take precedence for scalars; DisabledTools is merged and
// deduplicated; a non-empty overlay Categories replaces the base list.
func Merge(base, overlay *Config) *Config {
	result := &Config{}

	// Scalars: overlay wins if non-zero, else base
	result.SeedPath = firstNonEmpty(overlay.SeedPath, base.SeedPath)
	result.Bind = firstNonEmpty(overlay.Bind, base.Bind)
	result.DefaultCategory = firstNonEmpty(overlay.DefaultCategory, base.DefaultCategory)
	result.LogLevel = firstNonEmpty(overlay.LogLevel, base.LogLevel)

	result.Port = overlay.Port
	if result.Port == 0 {
		result.Port = base.Port
	}

	result.Categories = mergeStringSlice(overlay.Categories, nil)
	if len(result.Categories) == 0 {
		result.Categories = mergeStringSlice(base.Categories, nil)
	}

	result.DisabledTools = mergeStringSlice(base.DisabledTools, overlay.DisabledTools)

	return result
}

// firstNonEmpty returns the first argument that is not blank, trimmed.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

// mergeStringSlice combines two slices, trims whitespace, and removes duplicates.
func mergeStringSlice(a, b []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(a)+len(b))

	for _, s := range a {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}
	for _, s := range b {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}

	if len(result) == 0 {
		return nil
	}
	return result
}
