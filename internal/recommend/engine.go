package recommend

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// Term weights for the relevance score. The role term's ceiling varies by
// role (25 for recruiter, 25 for developer and manager, 15 for general).
const (
	tagWeight          = 40.0
	categoryExact      = 20.0
	categoryRelated    = 10.0
	diversityBonus     = 10.0
	recencyPenalty     = 15.0
	defaultResultCount = 3
)

// Engine ranks candidates. It holds an immutable candidate set; build a new
// Engine when the catalog changes.
type Engine struct {
	candidates []Candidate
	index      map[string]int
	related    map[string][]string
}

// NewEngine creates an Engine over candidates with the default category
// adjacency table.
func NewEngine(candidates []Candidate) *Engine {
	e := &Engine{
		candidates: candidates,
		index:      make(map[string]int, len(candidates)),
		related:    defaultRelated,
	}
	for i, c := range candidates {
		e.index[c.Slug] = i
	}
	return e
}

// WithRelated replaces the category adjacency table.
func (e *Engine) WithRelated(related map[string][]string) *Engine {
	e.related = related
	return e
}

// Candidates returns the engine's candidate set.
func (e *Engine) Candidates() []Candidate {
	return e.candidates
}

// Rank returns up to k candidates ordered by descending relevance to the
// entry at currentSlug. An empty or unknown currentSlug falls back to the
// role's default ordering instead of failing. The current entry is never in
// its own results. Rank is pure; it does not touch history.
func (e *Engine) Rank(currentSlug string, role Role, history []string, k int) []Scored {
	if k <= 0 {
		k = defaultResultCount
	}

	i, ok := e.index[currentSlug]
	if !ok {
		return e.defaultRanking(role, k)
	}
	current := e.candidates[i]

	scored := make([]Scored, 0, len(e.candidates))
	for _, c := range e.candidates {
		if c.Slug == current.Slug {
			continue
		}
		scored = append(scored, Scored{Candidate: c, Score: e.Score(current, c, role, history)})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return truncate(scored, k)
}

// Score computes the relevance of candidate relative to current for the
// given role and visit history. The result is clamped to [0, 100].
func (e *Engine) Score(current, candidate Candidate, role Role, history []string) float64 {
	score := tagOverlap(current.Tags, candidate.Tags) * tagWeight
	score += e.categoryTerm(current.Category, candidate.Category)
	score += roleTerm(candidate, role)
	if current.Difficulty != candidate.Difficulty {
		score += diversityBonus
	}
	if contains(history, candidate.Slug) {
		score -= recencyPenalty
	}
	return math.Min(100, math.Max(0, score))
}

// tagOverlap is |a ∩ b| / max(|a|, |b|), or 0 when both sets are empty.
func tagOverlap(a, b []string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	set := make(map[string]struct{}, len(a))
	for _, t := range a {
		set[t] = struct{}{}
	}
	shared := 0
	seen := make(map[string]struct{}, len(b))
	for _, t := range b {
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		if _, ok := set[t]; ok {
			shared++
		}
	}
	return float64(shared) / float64(max(len(set), len(seen)))
}

func (e *Engine) categoryTerm(current, candidate string) float64 {
	if current == "" || candidate == "" {
		return 0
	}
	if current == candidate {
		return categoryExact
	}
	for _, rel := range e.related[current] {
		if rel == candidate {
			return categoryRelated
		}
	}
	return 0
}

func roleTerm(c Candidate, role Role) float64 {
	switch role {
	case RoleRecruiter:
		t := float64(c.BusinessImpact) / 10 * 15
		if strings.TrimSpace(c.Metrics["users"]) != "" {
			t += 5
		}
		if c.DemoURL != "" {
			t += 5
		}
		return t
	case RoleDeveloper:
		t := float64(c.TechComplexity) / 10 * 15
		switch c.Difficulty {
		case DifficultyAdvanced:
			t += 10
		case DifficultyIntermediate:
			t += 5
		}
		return t
	case RoleManager:
		t := float64(c.BusinessImpact) / 10 * 20
		if _, ok := c.Metrics["uptime"]; ok {
			t += 5
		}
		return t
	default:
		return float64(c.BusinessImpact+c.TechComplexity) / 20 * 15
	}
}

// defaultRanking orders the full candidate set by the role's headline
// attribute, for requests with no current entry to anchor on.
func (e *Engine) defaultRanking(role Role, k int) []Scored {
	scored := make([]Scored, 0, len(e.candidates))
	for _, c := range e.candidates {
		scored = append(scored, Scored{Candidate: c, Score: defaultKey(c, role)})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return truncate(scored, k)
}

func defaultKey(c Candidate, role Role) float64 {
	switch role {
	case RoleRecruiter:
		return float64(c.BusinessImpact)
	case RoleDeveloper:
		return float64(c.TechComplexity)
	case RoleManager:
		return float64(c.BusinessImpact) + metricNumber(c.Metrics, "performance")
	default:
		return float64(c.BusinessImpact + c.TechComplexity)
	}
}

// metricNumber extracts the leading numeric value from a metric string
// ("99.9%" -> 99.9). Missing or non-numeric metrics contribute 0.
func metricNumber(metrics map[string]string, key string) float64 {
	s := strings.TrimSpace(metrics[key])
	end := 0
	for end < len(s) && (s[end] == '.' || s[end] == '-' || (s[end] >= '0' && s[end] <= '9')) {
		end++
	}
	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0
	}
	return v
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func truncate(scored []Scored, k int) []Scored {
	if len(scored) > k {
		return scored[:k]
	}
	return scored
}
