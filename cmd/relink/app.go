package main

import (
	"fmt"
	"log/slog"

	"github.com/cseg-gdex/stagetools/internal/filesystem"
)

type scanProvider interface {
	FindOwnedFiles(item string, uid uint32, emit func(path string, metadata *filesystem.Metadata)) int
}

type relinkProvider interface {
	ReplaceWithSymlink(inputdataRoot string, targetRoot string, filePath string, dryRun bool) (bool, error)
}

type App struct {
	scanHandler   scanProvider
	relinkHandler relinkProvider
}

// Report aggregates what one run did across all items.
type Report struct {
	Replaced      int
	BytesReplaced uint64
	Errors        int
}

func NewApp(scanHandler scanProvider, relinkHandler relinkProvider) *App {
	return &App{
		scanHandler:   scanHandler,
		relinkHandler: relinkHandler,
	}
}

// Run processes every item, continuing past per-file failures; each file's
// replacement is independent of every other one.
func (app *App) Run(items []string, inputdataRoot string, targetRoot string, username string, uid uint32, dryRun bool) Report {
	var report Report

	if dryRun {
		slog.Info("DRY RUN MODE - No changes will be made")
	}

	for _, item := range items {
		slog.Info(fmt.Sprintf("Searching for files owned by '%s' (UID: %d) in '%s'...", username, uid, item))

		report.Errors += app.scanHandler.FindOwnedFiles(item, uid, func(path string, metadata *filesystem.Metadata) {
			replaced, err := app.relinkHandler.ReplaceWithSymlink(inputdataRoot, targetRoot, path, dryRun)
			if err != nil {
				report.Errors++

				return
			}
			if replaced {
				report.Replaced++
				if metadata.Size > 0 {
					report.BytesReplaced += uint64(metadata.Size)
				}
			}
		})
	}

	return report
}
