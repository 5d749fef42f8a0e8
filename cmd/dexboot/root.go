// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"dexboot-cli/internal/config"
	"dexboot-cli/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables verbose output
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string

	// configProvider supplies per-command configuration loads. Commands
	// that only need settings go through it instead of the cached global.
	configProvider config.Provider = config.NewProvider()

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "dexboot",
		Short: "Deterministic dex store assembly for app optimization",
		Long: TitleStyle.Render("dexboot") + SubtitleStyle.Render(" - Deterministic dex store assembly") + `

dexboot ingests an unpacked application: it registers the classpath
archives, discovers the container (.dex) files under a dexen root,
loads them into stores in a deterministic order, and hands the
assembled scope to the reachability stage of the optimizer.

The primary store loads its top-level containers first (classes.dex,
then secondary-N.dex by N); each module subdirectory with matching
metadata becomes its own store, loaded in the metadata's declared
file order.

` + SubtitleStyle.Render("Examples:") + `
  dexboot boot --jars core.jar:framework.jar --apkdir ./unpacked --dexendir ./unpacked/dex
  dexboot scan --dexendir ./unpacked/dex
  dexboot scan --dexendir ./unpacked/dex --watch
  dexboot config show`,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/dexboot/config.cue)")

	// Add subcommands
	rootCmd.AddCommand(bootCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(configCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Use fang.Execute for enhanced Cobra styling
	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(1)
	}
}

// initRootConfig reads in config file and ENV variables if set.
func initRootConfig() {
	// Set custom config file path if provided via --config flag
	if cfgFile != "" {
		config.SetConfigFilePathOverride(cfgFile)
	}

	// Load configuration
	cfg, err := config.Load(context.Background())
	if err != nil {
		// Config problems never abort a run here; commands that need the
		// config fail with a better message of their own.
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
	}

	// Apply verbose from config if not set via flag
	if cfg != nil && !verbose {
		verbose = cfg.UI.Verbose
	}
}

// loadCommandConfig resolves configuration for a command run through the
// injected provider, honoring the --config flag. A load failure falls
// back to defaults; initRootConfig already warned about it.
func loadCommandConfig(ctx context.Context) *config.Config {
	cfg, err := configProvider.Load(ctx, config.LoadOptions{ConfigFilePath: cfgFile})
	if err != nil {
		return config.DefaultConfig()
	}
	return cfg
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
