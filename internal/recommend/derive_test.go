package recommend

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akashjainn/portfolio-sub000/internal/catalog"
)

func TestFromEntries(t *testing.T) {
	entries := []*catalog.Entry{
		{
			Slug:           "propsage",
			Category:       "web",
			Tags:           []string{"react", "pricing"},
			Difficulty:     catalog.DifficultyAdvanced,
			BusinessImpact: 9,
			TechComplexity: 8,
			Metrics:        map[string]string{"users": "1200"},
			Links:          catalog.Links{Demo: "https://d.example", Repo: "https://r.example"},
			PublishedAt:    time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			Slug: "minimal",
		},
	}

	cands := FromEntries(entries)
	require.Len(t, cands, 2)

	assert.Equal(t, Candidate{
		Slug:           "propsage",
		Category:       "web",
		Tags:           []string{"react", "pricing"},
		Difficulty:     DifficultyAdvanced,
		BusinessImpact: 9,
		TechComplexity: 8,
		Metrics:        map[string]string{"users": "1200"},
		DemoURL:        "https://d.example",
	}, cands[0])

	// Entries without recommendation front matter still become candidates.
	assert.Equal(t, "minimal", cands[1].Slug)
	assert.Zero(t, cands[1].BusinessImpact)
}
