// Package recommend ranks a small catalog of project candidates by
// estimated relevance to a viewer.
//
// Scoring is a weighted sum over independent terms (tag overlap, category
// proximity, role fit, difficulty diversity, recency penalty), clamped to
// [0, 100]. Ranking is pure: visit history is an input, never mutated here.
// Recording a visit is the profile package's job, composed by the caller.
package recommend

// Role is the viewer's self-declared perspective. It is chosen once per
// session and only read here.
type Role string

const (
	RoleRecruiter Role = "recruiter"
	RoleDeveloper Role = "developer"
	RoleManager   Role = "manager"
	RoleGeneral   Role = "general"
)

// Difficulty grades a candidate for the diversity and developer-role terms.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// Candidate is the reduced view of a catalog entry the scorer works with.
type Candidate struct {
	Slug           string
	Category       string
	Tags           []string
	Difficulty     Difficulty
	BusinessImpact int // 1-10
	TechComplexity int // 1-10
	Metrics        map[string]string
	DemoURL        string
}

// Scored pairs a candidate with its computed relevance.
type Scored struct {
	Candidate
	Score float64
}

// defaultRelated is the category adjacency table. Its contents are product
// configuration, not derived logic; pairs listed here earn the partial
// category bonus. The map is symmetric.
var defaultRelated = map[string][]string{
	"web":     {"systems", "data"},
	"systems": {"web"},
	"ai":      {"data"},
	"data":    {"ai", "web"},
}
