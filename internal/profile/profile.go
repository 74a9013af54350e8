// Package profile persists per-session personalization state: the viewer's
// declared role and the capped log of recently visited slugs. The JSON
// layout is shared with the front end and must not change shape.
package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/akashjainn/portfolio-sub000/internal/recommend"
)

// maxVisited caps the visit history length.
const maxVisited = 10

// State is the persisted session record.
type State struct {
	VisitedSlugs []string       `json:"visitedSlugs"`
	Role         recommend.Role `json:"role"`
	Personalized bool           `json:"personalized"`
}

// RecordVisit prepends slug to the visit history, removing any earlier
// occurrence and capping the list at maxVisited. Recording is deliberately
// separate from ranking, which never mutates state.
func (s *State) RecordVisit(slug string) {
	visited := make([]string, 0, len(s.VisitedSlugs)+1)
	visited = append(visited, slug)
	for _, v := range s.VisitedSlugs {
		if v == slug {
			continue
		}
		visited = append(visited, v)
	}
	if len(visited) > maxVisited {
		visited = visited[:maxVisited]
	}
	s.VisitedSlugs = visited
}

// Store reads and writes State at a fixed path.
type Store struct {
	path string
}

// NewStore creates a Store for path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load returns the persisted state, or defaults (role general, empty
// history) when no state has been saved yet.
func (st *Store) Load() (State, error) {
	raw, err := os.ReadFile(st.path)
	if errors.Is(err, fs.ErrNotExist) {
		return State{Role: recommend.RoleGeneral}, nil
	}
	if err != nil {
		return State{}, fmt.Errorf("reading profile %s: %w", st.path, err)
	}

	var s State
	if err := json.Unmarshal(raw, &s); err != nil {
		return State{}, fmt.Errorf("parsing profile %s: %w", st.path, err)
	}
	if s.Role == "" {
		s.Role = recommend.RoleGeneral
	}
	return s, nil
}

// Save writes the state, creating parent directories as needed. The write
// goes through a temp file and rename so a crash never leaves a truncated
// profile behind.
func (st *Store) Save(s State) error {
	raw, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding profile: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(st.path), 0o755); err != nil {
		return fmt.Errorf("creating profile directory: %w", err)
	}

	tmp := st.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("writing profile: %w", err)
	}
	if err := os.Rename(tmp, st.path); err != nil {
		return fmt.Errorf("writing profile: %w", err)
	}
	return nil
}
