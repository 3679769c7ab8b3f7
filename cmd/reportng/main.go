// Package main is the entry point for the reportng command line tool.
// reportng turns YAML report definitions into standalone HTML reports.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/verustcode/reportng/consts"
	"github.com/verustcode/reportng/internal/check"
	"github.com/verustcode/reportng/internal/config"
	"github.com/verustcode/reportng/internal/configfiles"
	"github.com/verustcode/reportng/pkg/errors"
	"github.com/verustcode/reportng/pkg/logger"
	"github.com/verustcode/reportng/pkg/telemetry"
)

// Build information - set via ldflags during build
// These variables are linked to consts package for global access
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// init synchronizes build info to consts package for global access
func init() {
	consts.Version = Version
	consts.BuildTime = BuildTime
	consts.GitCommit = GitCommit
}

// configPath holds the path to the application configuration file
var configPath string

// definitionsDir is where check looks for report definitions
var definitionsDir string

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "reportng",
	Short: "reportng - standalone HTML reports from YAML definitions",
	Long: `reportng builds single-file HTML reports with a navbar, search,
anchored sections, tables, cards, code and asciinema recordings.

Describe the report in a YAML definition and run:
  reportng build report.yaml -o report.html`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("reportng %s\n", Version)
		fmt.Printf("  Build Time: %s\n", BuildTime)
		fmt.Printf("  Git Commit: %s\n", GitCommit)
	},
}

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check configuration, report definitions and assets",
	Long: `Validate the configuration file, every report definition in the
definitions directory and, in local or download asset mode, the asset files.

With --interactive, missing files can be created from the bundled examples:
  reportng check --interactive`,
	RunE: runCheck,
}

// configCmd groups configuration file commands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

// configInitCmd writes a default configuration file
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file and example definitions",
	RunE:  runConfigInit,
}

func init() {
	// Disable auto-generated completion command
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default: reportng.yaml)")
	rootCmd.PersistentFlags().StringVar(&definitionsDir, "definitions", "definitions", "report definitions directory")

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(assetsCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
	configCmd.AddCommand(configInitCmd)

	checkCmd.Flags().Bool("interactive", false, "prompt to create missing files")
	configInitCmd.Flags().Bool("force", false, "overwrite an existing configuration file")
	configInitCmd.Flags().Bool("examples", true, "install example report definitions")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		if appErr, ok := errors.AsAppError(err); ok && appErr.Details != nil {
			fmt.Fprintf(os.Stderr, "Details: %v\n", appErr.Details)
		}
		os.Exit(errors.ExitCode(err))
	}
}

// resolvedConfigPath returns the --config flag or the default path
func resolvedConfigPath() string {
	if configPath == "" {
		return config.DefaultPath
	}
	return configPath
}

// loadConfig loads the configuration. A missing file is only an error
// when the path was given explicitly.
func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.Load(configPath)
	}
	return config.LoadOrDefault(config.DefaultPath)
}

// setup initializes logging and telemetry and returns the cleanup to defer
func setup(cfg *config.Config) (func(), error) {
	if err := logger.Init(cfg.Logging); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	tel, err := telemetry.New(cfg.Telemetry)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize telemetry: %w", err)
	}

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		// flushes spans and writes the metrics textfile
		if err := tel.Shutdown(ctx); err != nil {
			logger.Error("Failed to shutdown telemetry", zap.Error(err))
		}
		_ = logger.Sync()
	}, nil
}

// runCheck runs the environment check
func runCheck(cmd *cobra.Command, args []string) error {
	interactive, _ := cmd.Flags().GetBool("interactive")
	checker := check.NewChecker(resolvedConfigPath(), definitionsDir)

	if interactive {
		if err := checker.Run(); err != nil {
			return errors.Wrap(errors.ErrCodeValidation, "environment check failed", err)
		}
		fmt.Println("\n✓ Environment check completed successfully")
		return nil
	}

	result := checker.RunNonInteractive()
	check.PrintCheckResult(os.Stdout, result)
	if !result.Success {
		return errors.ErrValidation(fmt.Sprintf("%d problem(s) found", len(result.Errors)))
	}
	return nil
}

// runConfigInit writes the default configuration and example definitions
func runConfigInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")
	examples, _ := cmd.Flags().GetBool("examples")
	path := resolvedConfigPath()
	green := color.New(color.FgGreen)

	if err := config.Write(path, config.Default(), force); err != nil {
		return errors.Wrap(errors.ErrCodeConfigInvalid, "failed to write configuration", err)
	}
	green.Printf("✓ Wrote %s\n", path)

	if !examples {
		return nil
	}
	n, err := configfiles.InitDefinitions(definitionsDir)
	if err != nil {
		return errors.ErrDirectory(definitionsDir, err)
	}
	green.Printf("✓ Installed %d example definitions into %s\n", n, definitionsDir)
	return nil
}
