package catalog

import (
	"html/template"
	"time"
)

// Status controls an entry's visibility in default listings.
type Status string

const (
	StatusPublished Status = "published"
	StatusDraft     Status = "draft"

	// StatusAll is valid only as a Filter value, never on an Entry.
	StatusAll Status = "all"
)

// Difficulty grades how demanding a project is to follow.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// Links holds an entry's external references. Repo anchors the block;
// Demo is optional.
type Links struct {
	Demo string `yaml:"demo"`
	Repo string `yaml:"repo"`
}

// Entry is a single validated piece of catalog content, assembled from one
// Markdown file with YAML front matter.
type Entry struct {
	Slug        string
	Title       string
	Summary     string
	Tags        []string
	Status      Status
	PublishedAt time.Time
	UpdatedAt   time.Time
	Links       Links
	Metrics     map[string]string
	Featured    bool
	Category    string
	Role        string
	Period      string
	Tech        []string

	// Recommendation fields, carried on the same front-matter schema so the
	// engine reads from the one catalog instead of a second hand-kept list.
	Difficulty     Difficulty
	BusinessImpact int
	TechComplexity int

	BodyHTML           template.HTML
	ReadingTimeMinutes int
}

// Published reports whether the entry is visible in default listings.
func (e *Entry) Published() bool {
	return e.Status == StatusPublished
}
