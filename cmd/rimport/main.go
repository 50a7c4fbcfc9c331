// rimport publishes inputdata files into the staging tree: each file is
// copied to the same relative path under the staging root (preserving
// metadata) and the original is replaced with a symlink to the staged copy.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/cseg-gdex/stagetools/internal/configuration"
	"github.com/cseg-gdex/stagetools/internal/filesystem"
	"github.com/cseg-gdex/stagetools/internal/logging"
	"github.com/cseg-gdex/stagetools/internal/pathing"
	"github.com/cseg-gdex/stagetools/internal/relink"
	"github.com/cseg-gdex/stagetools/internal/staging"
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

	files         []string
	list          string
	inputdataRoot string
	check         bool
	timing        bool
	verbose       bool
	quiet         bool
	pretty        bool

	rootCmd = &cobra.Command{
		Use:   "rimport [files...]",
		Short: "Publish inputdata files into the staging tree and relink them",
		Long: `rimport copies inputdata files into the staging tree (preserving relative
path and metadata) and replaces each original with a symlink to its staged
copy. Already-published files are detected and never copied twice.`,
		Args:          cobra.ArbitraryArgs,
		RunE:          run,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func init() {
	rootCmd.Flags().StringArrayVarP(&files, "file", "f", nil, "file to publish (repeatable; relative names resolve against the inputdata root)")
	rootCmd.Flags().StringVarP(&list, "list", "l", "", "file containing filenames to publish, one per line")
	rootCmd.Flags().StringVarP(&inputdataRoot, "inputdata", "i", configuration.DefaultInputdataRoot, "root of the inputdata tree")
	rootCmd.Flags().BoolVarP(&check, "check", "c", false, "only report what would be done; never copy or link")
	rootCmd.Flags().BoolVar(&timing, "timing", false, "measure and display the execution time")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output (DEBUG level)")
	rootCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "quiet mode (show only warnings and errors)")
	rootCmd.Flags().BoolVar(&pretty, "pretty", false, "human-friendly colored log output")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
}

func run(cmd *cobra.Command, args []string) error {
	logging.Setup(logging.Level(quiet, verbose), pretty)

	configHandler := configuration.NewHandler(&configuration.GodotenvProvider{}, os.Getenv("STAGETOOLS_ENV_FILE"))

	stagingRoot, err := configHandler.StagingRoot()
	if err != nil {
		return err
	}

	osProvider := &filesystem.OS{}
	unixProvider := &filesystem.Unix{}

	validationHandler := validation.NewHandler(osProvider)
	if err := validationHandler.Roots(inputdataRoot, stagingRoot); err != nil {
		return err
	}

	names, err := filesToProcess(files, list, args)
	if err != nil {
		return err
	}
	paths := pathing.NormalizeAll(inputdataRoot, names)

	if !check && !configHandler.SkipUserCheck() {
		usersHandler := users.NewHandler(&users.OSLookup{})
		if err := usersHandler.EnsureRunningAs(configHandler.PublishUser()); err != nil {
			return err
		}
	}

	fsHandler := filesystem.NewHandler(osProvider, unixProvider)
	relinkHandler := relink.NewHandler(fsHandler, osProvider, unixProvider)
	stagingHandler := staging.NewHandler(fsHandler, relinkHandler, osProvider, unixProvider)

	app := NewApp(stagingHandler)

	start := time.Now()
	report := app.Run(paths, inputdataRoot, stagingRoot, check)

	logging.Always(fmt.Sprintf("Published %d files (%s), linked %d existing, %d already linked, %d errors",
		report.Published, humanize.Bytes(report.BytesPublished),
		report.LinkedExisting, report.AlreadyLinked, report.Errors))
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
