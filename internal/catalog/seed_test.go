package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hpungsan/folio/internal/errors"
	"github.com/hpungsan/folio/internal/project"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestDefaultSeed(t *testing.T) {
	seed := DefaultSeed()
	require.Len(t, seed, 6)

	assert.Equal(t, project.ID("2"), seed[1].ID)
	assert.Equal(t, "Mobile Banking App", seed[1].Title)
	assert.Equal(t, []string{"Mobile", "FinTech", "UI/UX"}, seed[1].Tags)

	_, err := NewStore(seed)
	require.NoError(t, err)
}

func TestLoadSeed_EmptyPathUsesDefault(t *testing.T) {
	seed, err := LoadSeed("")
	require.NoError(t, err)
	assert.Len(t, seed, 6)
}

func TestLoadSeed_JSONArray(t *testing.T) {
	path := writeFile(t, "seed.json", `[
		{"id": 10, "title": "A", "description": "a", "category": "Illustration",
		 "image": "https://x.com/a.png", "tags": ["ink"], "date": "2023-11-02"}
	]`)

	seed, err := LoadSeed(path)
	require.NoError(t, err)
	require.Len(t, seed, 1)
	assert.Equal(t, project.ID("10"), seed[0].ID)
	assert.Equal(t, "Illustration", seed[0].Category)
}

func TestLoadSeed_JSONWrapped(t *testing.T) {
	path := writeFile(t, "seed.json", `{"projects": [
		{"id": "p-1", "title": "A", "description": "a", "category": "Branding",
		 "image": "https://x.com/a.png", "tags": [], "date": "2024-01"}
	]}`)

	seed, err := LoadSeed(path)
	require.NoError(t, err)
	require.Len(t, seed, 1)
	assert.Equal(t, project.ID("p-1"), seed[0].ID)
}

func TestLoadSeed_YAML(t *testing.T) {
	content := `
projects:
  - id: 1
    title: Launch Campaign
    description: Paid social for a product launch
    category: Marketing
    image: https://x.com/launch.png
    tags: [Ads, Social]
    date: 2024-04
  - id: 2
    title: Style Guide
    description: Component library docs
    category: UI/UX
    image: https://x.com/guide.png
    tags: [Docs]
    date: "2024-02-10"
`
	for _, name := range []string{"seed.yaml", "seed.yml"} {
		t.Run(name, func(t *testing.T) {
			seed, err := LoadSeed(writeFile(t, name, content))
			require.NoError(t, err)
			require.Len(t, seed, 2)
			assert.Equal(t, project.ID("1"), seed[0].ID)
			assert.Equal(t, "2024-04", seed[0].Date)
			assert.Equal(t, []string{"Ads", "Social"}, seed[0].Tags)
		})
	}
}

func TestLoadSeed_YAMLList(t *testing.T) {
	path := writeFile(t, "seed.yaml", `
- id: 7
  title: Poster
  description: Gig poster
  category: Print
  image: https://x.com/p.png
  tags: [Print]
  date: 2022-09
`)

	seed, err := LoadSeed(path)
	require.NoError(t, err)
	require.Len(t, seed, 1)
	assert.Equal(t, "Print", seed[0].Category)
}

func TestLoadSeed_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadSeed(filepath.Join(t.TempDir(), "nope.json"))
		assert.True(t, errors.Is(err, errors.ErrNotFound), "got %v", err)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		_, err := LoadSeed(writeFile(t, "seed.toml", ""))
		assert.True(t, errors.Is(err, errors.ErrInvalidRequest), "got %v", err)
	})

	t.Run("invalid json", func(t *testing.T) {
		_, err := LoadSeed(writeFile(t, "seed.json", "{not json"))
		assert.True(t, errors.Is(err, errors.ErrInvalidRequest), "got %v", err)
	})

	t.Run("missing id", func(t *testing.T) {
		_, err := LoadSeed(writeFile(t, "seed.json", `[{"title": "A", "date": "2024-01"}]`))
		assert.True(t, errors.Is(err, errors.ErrInvalidRequest), "got %v", err)
	})

	t.Run("malformed date", func(t *testing.T) {
		_, err := LoadSeed(writeFile(t, "seed.json", `[{"id": 1, "title": "A", "date": "Jan 2024"}]`))
		assert.True(t, errors.Is(err, errors.ErrMalformedDate), "got %v", err)
	})
}
