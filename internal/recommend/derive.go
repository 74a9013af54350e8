package recommend

import (
	"github.com/akashjainn/portfolio-sub000/internal/catalog"
)

// FromEntries derives the candidate set from loaded catalog entries, so the
// engine and the catalog share one schema instead of drifting copies.
// Entries without recommendation front matter still become candidates; the
// overlay file can patch them.
func FromEntries(entries []*catalog.Entry) []Candidate {
	candidates := make([]Candidate, 0, len(entries))
	for _, e := range entries {
		candidates = append(candidates, Candidate{
			Slug:           e.Slug,
			Category:       e.Category,
			Tags:           e.Tags,
			Difficulty:     Difficulty(e.Difficulty),
			BusinessImpact: e.BusinessImpact,
			TechComplexity: e.TechComplexity,
			Metrics:        e.Metrics,
			DemoURL:        e.Links.Demo,
		})
	}
	return candidates
}
