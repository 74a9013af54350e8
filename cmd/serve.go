package cmd

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

var serverPort int

// debounceDuration batches bursts of file events into one rebuild.
const debounceDuration = 500 * time.Millisecond

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the site locally and rebuilds on change",
	Long: `The serve command performs an initial build, starts a local web server
over the output directory, and watches the content, layouts, and static
directories so changes rebuild the site automatically.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := runBuildProcess(appConfig, logger); err != nil {
			return fmt.Errorf("initial build failed: %w", err)
		}

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("creating file watcher: %w", err)
		}
		defer watcher.Close()

		go func() {
			var buildTimer *time.Timer
			for {
				select {
				case event, ok := <-watcher.Events:
					if !ok {
						return
					}
					if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
						!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
						continue
					}
					logger.Debug().Str("path", event.Name).Str("op", event.Op.String()).Msg("change detected")

					// New subdirectories are not watched automatically.
					if event.Has(fsnotify.Create) && isDir(event.Name) {
						if err := watcher.Add(event.Name); err != nil {
							logger.Warn().Err(err).Str("dir", event.Name).Msg("could not watch new directory")
						}
					}

					if buildTimer != nil {
						buildTimer.Stop()
					}
					buildTimer = time.AfterFunc(debounceDuration, func() {
						logger.Info().Msg("rebuilding site")
						if err := runBuildProcess(appConfig, logger); err != nil {
							logger.Error().Err(err).Msg("rebuild failed")
						}
					})
				case err, ok := <-watcher.Errors:
					if !ok {
						return
					}
					logger.Warn().Err(err).Msg("watcher error")
				}
			}
		}()

		pathsToWatch := []string{
			appConfig.ContentDir,
			appConfig.LayoutsDir,
			appConfig.StaticDir,
		}
		for _, rootPath := range pathsToWatch {
			if _, statErr := os.Stat(rootPath); os.IsNotExist(statErr) {
				logger.Debug().Str("dir", rootPath).Msg("directory not found, not watching")
				continue
			}
			err := filepath.WalkDir(rootPath, func(path string, d os.DirEntry, err error) error {
				if err != nil {
					logger.Warn().Err(err).Str("path", path).Msg("walk error while setting up watches")
					return nil
				}
				if d.IsDir() {
					if watchErr := watcher.Add(path); watchErr != nil {
						logger.Warn().Err(watchErr).Str("dir", path).Msg("failed to watch")
					}
				}
				return nil
			})
			if err != nil {
				logger.Warn().Err(err).Str("dir", rootPath).Msg("error walking directory for watches")
			}
		}

		serverAddr := fmt.Sprintf(":%d", serverPort)
		logger.Info().Str("dir", appConfig.OutputDir).Str("addr", "http://localhost"+serverAddr).Msg("serving site")

		fileServer := http.FileServer(http.Dir(appConfig.OutputDir))
		http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
			if strings.HasSuffix(r.URL.Path, "/") && r.URL.Path != "/" {
				_, err := os.Stat(filepath.Join(appConfig.OutputDir, r.URL.Path, "index.html"))
				if os.IsNotExist(err) {
					http.NotFound(w, r)
					return
				}
			}
			w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
			w.Header().Set("Pragma", "no-cache")
			w.Header().Set("Expires", "0")
			fileServer.ServeHTTP(w, r)
		})

		return http.ListenAndServe(serverAddr, nil)
	},
}

func isDir(path string) bool {
	fileInfo, err := os.Stat(path)
	if err != nil {
		return false
	}
	return fileInfo.IsDir()
}

func init() {
	serveCmd.Flags().IntVarP(&serverPort, "port", "p", 1313, "Port to serve the site on")
	rootCmd.AddCommand(serveCmd)
}
