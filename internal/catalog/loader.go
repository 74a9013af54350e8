package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"github.com/rs/zerolog"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrNotFound is returned when no valid entry exists for a slug. Malformed
// entries surface as ErrNotFound too; the diagnostic goes to the log.
var ErrNotFound = errors.New("catalog: entry not found")

// wordsPerMinute is the reading-speed assumption behind ReadingTimeMinutes.
const wordsPerMinute = 225

var contentExtensions = []string{".mdx", ".md"}

// dateFormats are tried in order when parsing front-matter dates.
var dateFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Filter narrows a List call. Options are independent; every specified
// option must match. The zero Status means published entries only.
type Filter struct {
	Status   Status
	Featured *bool
	Category string
	Limit    int
}

// Loader turns a directory of Markdown-with-front-matter files into
// validated Entry records. Every call re-reads the directory; content is
// read-only input, so calls are independent and safe to run concurrently.
type Loader struct {
	dir string
	md  goldmark.Markdown
	log zerolog.Logger
}

// New creates a Loader over dir.
func New(dir string, log zerolog.Logger) *Loader {
	return &Loader{
		dir: dir,
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
			goldmark.WithRendererOptions(
				gmhtml.WithHardWraps(),
			),
		),
		log: log,
	}
}

// ListSlugs returns the slug of every content file in the directory,
// filename minus extension, in directory order. A missing directory is not
// an error; it means no content yet.
func (l *Loader) ListSlugs() []string {
	dirEntries, err := os.ReadDir(l.dir)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			l.log.Warn().Err(err).Str("dir", l.dir).Msg("content directory unreadable")
		}
		return nil
	}

	var slugs []string
	seen := make(map[string]struct{})
	for _, de := range dirEntries {
		if de.IsDir() {
			continue
		}
		name := de.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if ext != ".md" && ext != ".mdx" {
			continue
		}
		// A .md/.mdx pair for the same slug counts once; one entry per slug.
		slug := strings.TrimSuffix(name, filepath.Ext(name))
		if _, dup := seen[slug]; dup {
			continue
		}
		seen[slug] = struct{}{}
		slugs = append(slugs, slug)
	}
	return slugs
}

// GetBySlug loads and validates the entry for slug. Absent files and
// malformed entries both return ErrNotFound; a bad entry must never take
// down the caller.
func (l *Loader) GetBySlug(slug string) (*Entry, error) {
	for _, ext := range contentExtensions {
		path := filepath.Join(l.dir, slug+ext)
		raw, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			l.log.Warn().Err(err).Str("slug", slug).Msg("content file unreadable")
			return nil, fmt.Errorf("%w: %s", ErrNotFound, slug)
		}

		entry, err := l.parse(slug, raw)
		if err != nil {
			l.log.Warn().Err(err).Str("slug", slug).Str("file", path).Msg("malformed entry excluded")
			return nil, fmt.Errorf("%w: %s", ErrNotFound, slug)
		}
		return entry, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, slug)
}

// List loads every entry, applies the filter, sorts by PublishedAt
// descending (stable on discovery order), and truncates to Filter.Limit.
// Entries that fail to load are skipped; they were already logged by
// GetBySlug.
func (l *Loader) List(f Filter) []*Entry {
	var entries []*Entry
	for _, slug := range l.ListSlugs() {
		entry, err := l.GetBySlug(slug)
		if err != nil {
			continue
		}
		if matches(entry, f) {
			entries = append(entries, entry)
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].PublishedAt.After(entries[j].PublishedAt)
	})

	if f.Limit > 0 && len(entries) > f.Limit {
		entries = entries[:f.Limit]
	}
	return entries
}

func matches(e *Entry, f Filter) bool {
	switch f.Status {
	case StatusAll:
	case StatusDraft:
		if e.Status != StatusDraft {
			return false
		}
	default:
		// Unspecified or explicit published: drafts stay hidden.
		if !e.Published() {
			return false
		}
	}
	if f.Featured != nil && e.Featured != *f.Featured {
		return false
	}
	if f.Category != "" && e.Category != f.Category {
		return false
	}
	return true
}

// metadata mirrors the front-matter schema. Metric values arrive as
// whatever YAML scalar the author wrote, so they are normalized to strings
// after decoding.
type metadata struct {
	Title       string                 `yaml:"title"`
	Slug        string                 `yaml:"slug"`
	Summary     string                 `yaml:"summary"`
	Status      string                 `yaml:"status"`
	PublishedAt string                 `yaml:"publishedAt"`
	UpdatedAt   string                 `yaml:"updatedAt"`
	Tags        []string               `yaml:"tags"`
	Links       *Links                 `yaml:"links"`
	Metrics     map[string]interface{} `yaml:"metrics"`
	Featured    bool                   `yaml:"featured"`
	Category    string                 `yaml:"category"`
	Role        string                 `yaml:"role"`
	Period      string                 `yaml:"period"`
	Tech        []string               `yaml:"tech"`

	Difficulty     string `yaml:"difficulty"`
	BusinessImpact int    `yaml:"businessImpact"`
	TechComplexity int    `yaml:"techComplexity"`
}

func (l *Loader) parse(slug string, raw []byte) (*Entry, error) {
	var md metadata
	body, err := frontmatter.Parse(bytes.NewReader(raw), &md)
	if err != nil {
		return nil, fmt.Errorf("parsing front matter: %w", err)
	}

	if err := validate(&md); err != nil {
		return nil, err
	}
	if md.Slug != "" && md.Slug != slug {
		l.log.Warn().Str("file", slug).Str("frontmatter", md.Slug).
			Msg("front-matter slug disagrees with filename; filename wins")
	}

	publishedAt, err := parseDate(md.PublishedAt)
	if err != nil {
		return nil, fmt.Errorf("publishedAt: %w", err)
	}
	var updatedAt time.Time
	if md.UpdatedAt != "" {
		if updatedAt, err = parseDate(md.UpdatedAt); err != nil {
			return nil, fmt.Errorf("updatedAt: %w", err)
		}
	}

	var htmlBuf bytes.Buffer
	if err := l.md.Convert(body, &htmlBuf); err != nil {
		return nil, fmt.Errorf("compiling body: %w", err)
	}

	title := md.Title
	if title == "" {
		title = titleFromSlug(slug)
	}

	entry := &Entry{
		Slug:               slug,
		Title:              title,
		Summary:            md.Summary,
		Tags:               md.Tags,
		Status:             Status(md.Status),
		PublishedAt:        publishedAt,
		UpdatedAt:          updatedAt,
		Metrics:            stringMetrics(md.Metrics),
		Featured:           md.Featured,
		Category:           md.Category,
		Role:               md.Role,
		Period:             md.Period,
		Tech:               md.Tech,
		Difficulty:         Difficulty(md.Difficulty),
		BusinessImpact:     md.BusinessImpact,
		TechComplexity:     md.TechComplexity,
		BodyHTML:           template.HTML(htmlBuf.String()),
		ReadingTimeMinutes: readingTime(body),
	}
	if md.Links != nil {
		entry.Links = *md.Links
	}
	return entry, nil
}

func validate(md *metadata) error {
	var missing []string
	if md.Summary == "" {
		missing = append(missing, "summary")
	}
	if md.Status == "" {
		missing = append(missing, "status")
	}
	if md.PublishedAt == "" {
		missing = append(missing, "publishedAt")
	}
	if md.Links != nil && md.Links.Repo == "" {
		missing = append(missing, "links.repo")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required front matter: %s", strings.Join(missing, ", "))
	}

	switch Status(md.Status) {
	case StatusPublished, StatusDraft:
	default:
		return fmt.Errorf("invalid status %q", md.Status)
	}
	return nil
}

func parseDate(s string) (time.Time, error) {
	for _, format := range dateFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q (use YYYY-MM-DD or RFC3339)", s)
}

func readingTime(body []byte) int {
	words := len(strings.Fields(string(body)))
	return int(math.Ceil(float64(words) / wordsPerMinute))
}

func stringMetrics(in map[string]interface{}) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = fmt.Sprint(v)
	}
	return out
}

func titleFromSlug(slug string) string {
	cleaned := strings.ReplaceAll(strings.ReplaceAll(slug, "-", " "), "_", " ")
	return cases.Title(language.English).String(cleaned)
}
