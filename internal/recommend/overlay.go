package recommend

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v2"
)

// Overlay patches candidate fields by slug. It exists for content whose
// front matter predates the unified schema: the catalog stays the single
// source for identity and tags, the overlay supplies the scoring fields.
type Overlay map[string]Patch

// Patch holds the overridable scoring fields. Zero values leave the
// candidate's existing value alone.
type Patch struct {
	Category       string `yaml:"category"`
	Difficulty     string `yaml:"difficulty"`
	BusinessImpact int    `yaml:"businessImpact"`
	TechComplexity int    `yaml:"techComplexity"`
}

// LoadOverlay reads an overlay YAML file. A missing file is not an error;
// it means no overrides.
func LoadOverlay(path string) (Overlay, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading overlay %s: %w", path, err)
	}

	var o Overlay
	if err := yaml.Unmarshal(raw, &o); err != nil {
		return nil, fmt.Errorf("parsing overlay %s: %w", path, err)
	}
	return o, nil
}

// Apply returns candidates with overlay patches applied. Candidates without
// a patch pass through unchanged.
func (o Overlay) Apply(candidates []Candidate) []Candidate {
	if len(o) == 0 {
		return candidates
	}
	out := make([]Candidate, len(candidates))
	copy(out, candidates)
	for i := range out {
		p, ok := o[out[i].Slug]
		if !ok {
			continue
		}
		if p.Category != "" {
			out[i].Category = p.Category
		}
		if p.Difficulty != "" {
			out[i].Difficulty = Difficulty(p.Difficulty)
		}
		if p.BusinessImpact != 0 {
			out[i].BusinessImpact = p.BusinessImpact
		}
		if p.TechComplexity != 0 {
			out[i].TechComplexity = p.TechComplexity
		}
	}
	return out
}
