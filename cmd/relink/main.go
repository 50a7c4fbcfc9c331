// relink finds files owned by the invoking user in an inputdata directory
// tree, deletes them and replaces them with symbolic links to the same
// relative path under a target directory tree.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cseg-gdex/stagetools/internal/configuration"
	"github.com/cseg-gdex/stagetools/internal/filesystem"
	"github.com/cseg-gdex/stagetools/internal/logging"
	"github.com/cseg-gdex/stagetools/internal/relink"
	"github.com/cseg-gdex/stagetools/internal/scan"
	"github.com/cseg-gdex/stagetools/internal/users"
	"github.com/cseg-gdex/stagetools/internal/validation"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

const (
	exitFileErrors = 1
	exitConfig     = 2
)

//nolint:gochecknoglobals
var (
	ExitCode = 0
	Version  string

	targetRoot    string
	inputdataRoot string
	dryRun        bool
	timing        bool
	verbose       bool
	quiet         bool
	pretty        bool

	rootCmd = &cobra.Command{
		Use:   "relink [items...]",
		Short: "Replace user-owned inputdata files with symlinks into a target tree",
		Long: `relink walks one or more directories (or takes single files), finds plain
files owned by the invoking user, deletes each one and replaces it with a
symbolic link to the same relative path under the target tree.`,
		Args:          cobra.ArbitraryArgs,
		RunE:          run,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func init() {
	rootCmd.Flags().StringVar(&targetRoot, "target-root", "", "root of the tree the symlinks should point into (default: the staging root)")
	rootCmd.Flags().StringVarP(&inputdataRoot, "inputdata-root", "i", configuration.DefaultInputdataRoot, "root of the inputdata tree")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "show what would be done without making any changes")
	rootCmd.Flags().BoolVar(&timing, "timing", false, "measure and display the execution time")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output (DEBUG level)")
	rootCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "quiet mode (show only warnings and errors)")
	rootCmd.Flags().BoolVar(&pretty, "pretty", false, "human-friendly colored log output")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
}

func run(cmd *cobra.Command, args []string) error {
	logging.Setup(logging.Level(quiet, verbose), pretty)

	configHandler := configuration.NewHandler(&configuration.GodotenvProvider{}, os.Getenv("STAGETOOLS_ENV_FILE"))

	if targetRoot == "" {
		stagingRoot, err := configHandler.StagingRoot()
		if err != nil {
			return err
		}
		targetRoot = stagingRoot
	}

	items := args
	if len(items) == 0 {
		items = []string{inputdataRoot}
	}
	for i, item := range items {
		abs, err := filepath.Abs(item)
		if err != nil {
			return fmt.Errorf("failed to absolutize '%s': %w", item, err)
		}
		items[i] = abs
	}

	osProvider := &filesystem.OS{}
	unixProvider := &filesystem.Unix{}

	validationHandler := validation.NewHandler(osProvider)
	if err := validationHandler.Roots(inputdataRoot, targetRoot); err != nil {
		return err
	}
	if err := validationHandler.ItemsUnder(items, inputdataRoot); err != nil {
		return err
	}

	username := os.Getenv("USER")
	usersHandler := users.NewHandler(&users.OSLookup{})

	uid, err := usersHandler.UID(username)
	if err != nil {
		return err
	}

	fsHandler := filesystem.NewHandler(osProvider, unixProvider)
	scanHandler := scan.NewHandler(fsHandler)
	relinkHandler := relink.NewHandler(fsHandler, osProvider, unixProvider)

	app := NewApp(scanHandler, relinkHandler)

	start := time.Now()
	report := app.Run(items, inputdataRoot, targetRoot, username, uid, dryRun)

	logging.Always(fmt.Sprintf("Replaced %d files (%s) with symbolic links",
		report.Replaced, humanize.Bytes(report.BytesReplaced)))
	if timing {
		logging.Always(fmt.Sprintf("Execution time: %.2f seconds", time.Since(start).Seconds()))
	}

	if report.Errors > 0 {
		ExitCode = exitFileErrors
	}

	return nil
}

func main() {
	defer func() {
		os.Exit(ExitCode)
	}()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		ExitCode = exitConfig
	}
}
