package main

import (
	"fmt"
	"log/slog"

	"github.com/cseg-gdex/stagetools/internal/staging"
)

type stagingProvider interface {
	Stage(src string, inputdataRoot string, stagingRoot string, check bool) (staging.Result, error)
}

type App struct {
	stagingHandler stagingProvider
}

// Report aggregates what one run did across all files.
type Report struct {
	Published      int
	BytesPublished uint64
	LinkedExisting int
	AlreadyLinked  int
	Checked        int
	Errors         int
}

func NewApp(stagingHandler stagingProvider) *App {
	return &App{
		stagingHandler: stagingHandler,
	}
}

// Run stages every path in order, continuing past per-file failures.
func (app *App) Run(paths []string, inputdataRoot string, stagingRoot string, check bool) Report {
	var report Report

	for _, path := range paths {
		slog.Info(fmt.Sprintf("'%s':", path))

		result, err := app.stagingHandler.Stage(path, inputdataRoot, stagingRoot, check)
		if err != nil {
			slog.Error(fmt.Sprintf("error processing %s: %v", path, err))
			report.Errors++

			continue
		}

		switch result.Outcome {
		case staging.OutcomeStaged:
			report.Published++
			if result.BytesCopied > 0 {
				report.BytesPublished += uint64(result.BytesCopied)
			}
		case staging.OutcomeLinkedExisting:
			report.LinkedExisting++
		case staging.OutcomeAlreadyLinked:
			report.AlreadyLinked++
		case staging.OutcomeCheckOnly:
			report.Checked++
		}
	}

	return report
}
