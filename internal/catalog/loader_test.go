package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

// writeEntry writes a minimal valid entry with the given slug and date.
func writeEntry(t *testing.T, dir, slug, publishedAt string, extra ...string) {
	t.Helper()
	fm := []string{
		"---",
		"title: " + strings.ToUpper(slug[:1]) + slug[1:],
		"summary: A test project.",
		"status: published",
		"publishedAt: \"" + publishedAt + "\"",
	}
	fm = append(fm, extra...)
	fm = append(fm, "---", "", "Some body text for "+slug+".")
	writeFile(t, dir, slug+".md", strings.Join(fm, "\n"))
}

func newTestLoader(t *testing.T, dir string) *Loader {
	t.Helper()
	return New(dir, zerolog.Nop())
}

func TestListSlugs_MissingDirectory(t *testing.T) {
	l := newTestLoader(t, filepath.Join(t.TempDir(), "does-not-exist"))
	assert.Empty(t, l.ListSlugs())
}

func TestListSlugs(t *testing.T) {
	dir := t.TempDir()
	writeEntry(t, dir, "alpha", "2024-01-01")
	writeFile(t, dir, "beta.mdx", "---\nsummary: s\nstatus: published\npublishedAt: \"2024-01-02\"\n---\nbody")
	writeFile(t, dir, "notes.txt", "not content")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))

	slugs := newTestLoader(t, dir).ListSlugs()
	assert.ElementsMatch(t, []string{"alpha", "beta"}, slugs)
}

func TestListSlugs_DuplicateExtensionsCountOnce(t *testing.T) {
	dir := t.TempDir()
	writeEntry(t, dir, "alpha", "2024-01-01")
	writeFile(t, dir, "alpha.mdx", "---\nsummary: s\nstatus: published\npublishedAt: \"2024-01-02\"\n---\nbody")

	slugs := newTestLoader(t, dir).ListSlugs()
	assert.Equal(t, []string{"alpha"}, slugs)
}

func TestGetBySlug_NotFound(t *testing.T) {
	dir := t.TempDir()
	writeEntry(t, dir, "a", "2024-01-01")
	writeEntry(t, dir, "b", "2024-01-02")

	entry, err := newTestLoader(t, dir).GetBySlug("missing-slug")
	assert.Nil(t, entry)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetBySlug_FullFrontMatter(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "propsage.md", `---
title: PropSage
slug: propsage
summary: Real-time sports prop pricing with evidence-adjusted fair value.
status: published
publishedAt: "2024-06-01"
updatedAt: "2024-07-15"
tags:
  - react
  - websockets
  - pricing
links:
  demo: https://propsage.example.com
  repo: https://github.com/akashjainn/propsage
metrics:
  users: 1200
  uptime: 99.9%
  loadTime: 1.2s
featured: true
category: web
role: Solo developer
period: 2024
tech:
  - Next.js
  - Go
difficulty: advanced
businessImpact: 9
techComplexity: 8
---

## Overview

PropSage reprices player props in real time.
`)

	entry, err := newTestLoader(t, dir).GetBySlug("propsage")
	require.NoError(t, err)

	assert.Equal(t, "propsage", entry.Slug)
	assert.Equal(t, "PropSage", entry.Title)
	assert.Equal(t, StatusPublished, entry.Status)
	assert.Equal(t, []string{"react", "websockets", "pricing"}, entry.Tags)
	assert.Equal(t, "https://propsage.example.com", entry.Links.Demo)
	assert.Equal(t, "https://github.com/akashjainn/propsage", entry.Links.Repo)
	assert.Equal(t, "1200", entry.Metrics["users"])
	assert.Equal(t, "99.9%", entry.Metrics["uptime"])
	assert.True(t, entry.Featured)
	assert.Equal(t, "web", entry.Category)
	assert.Equal(t, DifficultyAdvanced, entry.Difficulty)
	assert.Equal(t, 9, entry.BusinessImpact)
	assert.Equal(t, 8, entry.TechComplexity)
	assert.Equal(t, "2024-06-01", entry.PublishedAt.Format("2006-01-02"))
	assert.Equal(t, "2024-07-15", entry.UpdatedAt.Format("2006-01-02"))
	assert.Contains(t, string(entry.BodyHTML), "<h2")
	assert.Contains(t, string(entry.BodyHTML), "PropSage reprices player props in real time.")
}

func TestGetBySlug_TitleFallsBackToSlug(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "skill-constellation.md", `---
summary: Decorative skills graph.
status: published
publishedAt: "2024-02-01"
---
body
`)

	entry, err := newTestLoader(t, dir).GetBySlug("skill-constellation")
	require.NoError(t, err)
	assert.Equal(t, "Skill Constellation", entry.Title)
}

func TestGetBySlug_MalformedEntries(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "missing required fields",
			content: "---\ntitle: Only a title\n---\nbody",
		},
		{
			name:    "invalid status",
			content: "---\nsummary: s\nstatus: hidden\npublishedAt: \"2024-01-01\"\n---\nbody",
		},
		{
			name:    "unparseable date",
			content: "---\nsummary: s\nstatus: published\npublishedAt: \"June 1st\"\n---\nbody",
		},
		{
			name:    "links block without repo",
			content: "---\nsummary: s\nstatus: published\npublishedAt: \"2024-01-01\"\nlinks:\n  demo: https://d.example\n---\nbody",
		},
		{
			name:    "broken front matter",
			content: "---\ntitle: [unclosed\n---\nbody",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, "bad.md", tc.content)

			entry, err := newTestLoader(t, dir).GetBySlug("bad")
			assert.Nil(t, entry)
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestList_SortedByPublishedAtDescending(t *testing.T) {
	dir := t.TempDir()
	writeEntry(t, dir, "january", "2024-01-01")
	writeEntry(t, dir, "june", "2024-06-01")
	writeEntry(t, dir, "march", "2024-03-01")

	entries := newTestLoader(t, dir).List(Filter{})
	require.Len(t, entries, 3)
	assert.Equal(t, "june", entries[0].Slug)
	assert.Equal(t, "march", entries[1].Slug)
	assert.Equal(t, "january", entries[2].Slug)

	for i := 0; i < len(entries)-1; i++ {
		assert.False(t, entries[i].PublishedAt.Before(entries[i+1].PublishedAt))
	}
}

func TestList_UniqueSlugs(t *testing.T) {
	dir := t.TempDir()
	writeEntry(t, dir, "alpha", "2024-01-01")
	writeEntry(t, dir, "beta", "2024-01-02")
	writeFile(t, dir, "alpha.mdx", "---\nsummary: twin\nstatus: published\npublishedAt: \"2024-05-01\"\n---\nbody")

	entries := newTestLoader(t, dir).List(Filter{})
	seen := make(map[string]bool)
	for _, e := range entries {
		assert.False(t, seen[e.Slug], "duplicate slug %s", e.Slug)
		seen[e.Slug] = true
	}
}

func TestList_DefaultExcludesDrafts(t *testing.T) {
	dir := t.TempDir()
	writeEntry(t, dir, "live", "2024-01-01")
	writeFile(t, dir, "wip.md", "---\nsummary: s\nstatus: draft\npublishedAt: \"2024-02-01\"\n---\nbody")

	l := newTestLoader(t, dir)

	published := l.List(Filter{})
	require.Len(t, published, 1)
	assert.Equal(t, StatusPublished, published[0].Status)

	drafts := l.List(Filter{Status: StatusDraft})
	require.Len(t, drafts, 1)
	assert.Equal(t, "wip", drafts[0].Slug)

	all := l.List(Filter{Status: StatusAll})
	assert.Len(t, all, 2)
}

func TestList_LimitRespected(t *testing.T) {
	dir := t.TempDir()
	writeEntry(t, dir, "one", "2024-01-01")
	writeEntry(t, dir, "two", "2024-02-01")
	writeEntry(t, dir, "three", "2024-03-01")

	l := newTestLoader(t, dir)
	assert.Len(t, l.List(Filter{Limit: 2}), 2)
	assert.Len(t, l.List(Filter{Limit: 10}), 3)
	assert.Equal(t, "three", l.List(Filter{Limit: 1})[0].Slug)
}

func TestList_FeaturedAndCategoryFilters(t *testing.T) {
	dir := t.TempDir()
	writeEntry(t, dir, "star", "2024-01-01", "featured: true", "category: web")
	writeEntry(t, dir, "plain", "2024-02-01", "category: web")
	writeEntry(t, dir, "other", "2024-03-01", "featured: true", "category: ai")

	l := newTestLoader(t, dir)
	featured := true

	webFeatured := l.List(Filter{Featured: &featured, Category: "web"})
	require.Len(t, webFeatured, 1)
	assert.Equal(t, "star", webFeatured[0].Slug)

	web := l.List(Filter{Category: "web"})
	assert.Len(t, web, 2)
}

func TestList_SkipsMalformedEntries(t *testing.T) {
	dir := t.TempDir()
	writeEntry(t, dir, "good-one", "2024-01-01")
	writeEntry(t, dir, "good-two", "2024-02-01")
	writeFile(t, dir, "broken.md", "---\ntitle: no required fields\n---\nbody")

	entries := newTestLoader(t, dir).List(Filter{})
	require.Len(t, entries, 2)
}

func TestList_MissingDirectoryIsEmpty(t *testing.T) {
	l := newTestLoader(t, filepath.Join(t.TempDir(), "nope"))
	assert.Empty(t, l.List(Filter{}))
}

func TestReadingTime(t *testing.T) {
	tests := []struct {
		name  string
		words int
		want  int
	}{
		{"empty body", 0, 0},
		{"one word", 1, 1},
		{"exactly one minute", 225, 1},
		{"just over one minute", 226, 2},
		{"two minutes", 450, 2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			body := strings.TrimSpace(strings.Repeat("word ", tc.words))
			writeFile(t, dir, "timed.md",
				"---\nsummary: s\nstatus: published\npublishedAt: \"2024-01-01\"\n---\n"+body)

			entry, err := newTestLoader(t, dir).GetBySlug("timed")
			require.NoError(t, err)
			assert.Equal(t, tc.want, entry.ReadingTimeMinutes)
		})
	}
}
