package cmd

import (
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/akashjainn/portfolio-sub000/internal/catalog"
	"github.com/akashjainn/portfolio-sub000/internal/config"
	"github.com/akashjainn/portfolio-sub000/internal/profile"
	"github.com/akashjainn/portfolio-sub000/internal/recommend"
)

const (
	baseLayout    = "base.html"
	projectLayout = "project.html"
	listLayout    = "projects.html"
	homeLayout    = "home.html"

	relatedCount = 3
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Builds the static site from content, layouts, and static assets",
	Long: `The build command loads the project catalog from the content directory,
ranks related projects for each case study, applies templates from the
layouts directory, copies static assets, and writes the site to the
configured output directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBuildProcess(appConfig, logger)
	},
}

// siteData is the site-wide template context.
type siteData struct {
	Title   string
	BaseURL string
	Entries []*catalog.Entry
}

func runBuildProcess(cfg config.Config, log zerolog.Logger) error {
	log = log.With().Str("build", uuid.New().String()[:8]).Logger()

	loader := catalog.New(cfg.ContentDir, log)
	entries := loader.List(catalog.Filter{})
	log.Info().Int("entries", len(entries)).Str("dir", cfg.ContentDir).Msg("catalog loaded")

	candidates := recommend.FromEntries(entries)
	if cfg.CandidateOverlay != "" {
		overlay, err := recommend.LoadOverlay(cfg.CandidateOverlay)
		if err != nil {
			return fmt.Errorf("loading candidate overlay: %w", err)
		}
		candidates = overlay.Apply(candidates)
	}
	engine := recommend.NewEngine(candidates)

	state, err := profile.NewStore(cfg.ProfilePath).Load()
	if err != nil {
		log.Warn().Err(err).Msg("profile unreadable, building with defaults")
		state = profile.State{Role: recommend.RoleGeneral}
	}
	log.Debug().Str("role", string(state.Role)).Int("visited", len(state.VisitedSlugs)).Msg("viewer profile")

	if err := os.RemoveAll(cfg.OutputDir); err != nil {
		return fmt.Errorf("cleaning output directory %s: %w", cfg.OutputDir, err)
	}
	if err := os.MkdirAll(cfg.OutputDir, os.ModePerm); err != nil {
		return fmt.Errorf("creating output directory %s: %w", cfg.OutputDir, err)
	}

	if _, err := os.Stat(cfg.StaticDir); err == nil {
		if err := copyDirContents(cfg.StaticDir, cfg.OutputDir); err != nil {
			return fmt.Errorf("copying static assets: %w", err)
		}
	} else {
		log.Debug().Str("dir", cfg.StaticDir).Msg("no static directory, skipping copy")
	}

	templates, err := loadLayouts(cfg.LayoutsDir)
	if err != nil {
		return err
	}

	site := siteData{
		Title:   cfg.SiteTitle,
		BaseURL: cfg.BaseURL,
		Entries: entries,
	}

	entryLayout := projectLayout
	if templates.Lookup(entryLayout) == nil {
		log.Warn().Str("layout", entryLayout).Msg("layout not found, falling back to base")
		entryLayout = baseLayout
	}

	for _, entry := range entries {
		data := struct {
			Site    siteData
			Entry   *catalog.Entry
			Related []recommend.Scored
		}{
			Site:    site,
			Entry:   entry,
			Related: engine.Rank(entry.Slug, state.Role, state.VisitedSlugs, relatedCount),
		}
		out := filepath.Join(cfg.OutputDir, "projects", entry.Slug, "index.html")
		if err := renderToFile(templates, entryLayout, out, data); err != nil {
			return fmt.Errorf("rendering %s: %w", entry.Slug, err)
		}
		log.Debug().Str("slug", entry.Slug).Str("layout", entryLayout).Msg("page generated")
	}

	listData := struct {
		Site     siteData
		Featured []*catalog.Entry
	}{
		Site:     site,
		Featured: loader.List(catalog.Filter{Featured: boolPtr(true)}),
	}
	if templates.Lookup(listLayout) != nil {
		out := filepath.Join(cfg.OutputDir, "projects", "index.html")
		if err := renderToFile(templates, listLayout, out, listData); err != nil {
			return fmt.Errorf("rendering project listing: %w", err)
		}
	} else {
		log.Warn().Str("layout", listLayout).Msg("layout not found, skipping project listing")
	}

	if templates.Lookup(homeLayout) != nil {
		out := filepath.Join(cfg.OutputDir, "index.html")
		if err := renderToFile(templates, homeLayout, out, listData); err != nil {
			return fmt.Errorf("rendering homepage: %w", err)
		}
	}

	log.Info().Str("dir", cfg.OutputDir).Msg("build complete")
	return nil
}

// loadLayouts parses every .html file under dir, partials included.
// base.html must exist; it is the fallback layout for everything.
func loadLayouts(dir string) (*template.Template, error) {
	var layoutFiles []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(strings.ToLower(d.Name()), ".html") {
			layoutFiles = append(layoutFiles, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("finding layout files in %s: %w", dir, err)
	}
	if len(layoutFiles) == 0 {
		return nil, fmt.Errorf("no .html layout files found in %s", dir)
	}

	templates, err := template.ParseFiles(layoutFiles...)
	if err != nil {
		return nil, fmt.Errorf("parsing layouts: %w", err)
	}
	if templates.Lookup(baseLayout) == nil {
		return nil, fmt.Errorf("%s not found in layouts directory %s", baseLayout, dir)
	}
	return templates, nil
}

func renderToFile(templates *template.Template, layout, path string, data interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return templates.ExecuteTemplate(f, layout, data)
}

// copyDirContents recursively copies files and directories from src to dst.
func copyDirContents(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		relPath, err := filepath.Rel(src, path)
		if err != nil {
			return fmt.Errorf("relative path for %s: %w", path, err)
		}
		dstPath := filepath.Join(dst, relPath)

		if d.IsDir() {
			return os.MkdirAll(dstPath, os.ModePerm)
		}
		return copyFile(path, dstPath)
	})
}

func copyFile(srcFile, dstFile string) error {
	srcF, err := os.Open(srcFile)
	if err != nil {
		return err
	}
	defer srcF.Close()

	if err := os.MkdirAll(filepath.Dir(dstFile), os.ModePerm); err != nil {
		return err
	}
	dstF, err := os.Create(dstFile)
	if err != nil {
		return err
	}
	defer dstF.Close()

	_, err = io.Copy(dstF, srcF)
	return err
}

func boolPtr(b bool) *bool {
	return &b
}

func init() {
	rootCmd.AddCommand(buildCmd)
}
