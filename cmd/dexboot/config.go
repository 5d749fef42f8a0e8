// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"dexboot-cli/internal/config"
	"dexboot-cli/internal/issue"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage dexboot configuration",
	Long: `Manage dexboot configuration.

Configuration is stored in:
  - Linux: ~/.config/dexboot/config.cue
  - macOS: ~/Library/Application Support/dexboot/config.cue
  - Windows: %APPDATA%\dexboot\config.cue`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd)
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfigFile()
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath()
		},
	})
}

func showConfig(cmd *cobra.Command) error {
	cfg, err := config.Load(cmd.Context())
	if err != nil {
		renderIssue(issue.ConfigLoadFailedId)
		return err
	}

	fmt.Println(TitleStyle.Render("Current Configuration"))
	fmt.Println()

	if path := config.Path(); path != "" {
		fmt.Printf("%s: %s\n", PathStyle.Render("Config file"), path)
	} else {
		fmt.Printf("%s: %s\n", PathStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Println()

	fmt.Printf("%s:\n", PathStyle.Render("ingest"))
	fmt.Printf("  container_ext: %s\n", SuccessStyle.Render(string(cfg.Ingest.ContainerExt)))
	fmt.Printf("  metadata_ext: %s\n", SuccessStyle.Render(string(cfg.Ingest.MetadataExt)))

	fmt.Println()
	fmt.Printf("%s:\n", PathStyle.Render("ui"))
	fmt.Printf("  color_scheme: %s\n", SuccessStyle.Render(string(cfg.UI.ColorScheme)))
	fmt.Printf("  verbose: %s\n", SuccessStyle.Render(fmt.Sprintf("%v", cfg.UI.Verbose)))

	fmt.Println()
	fmt.Printf("%s:\n", PathStyle.Render("watch"))
	fmt.Printf("  debounce_ms: %s\n", SuccessStyle.Render(fmt.Sprintf("%d", cfg.Watch.DebounceMs)))

	fmt.Println()
	fmt.Printf("%s:\n", PathStyle.Render("optimizer"))
	if len(cfg.Optimizer) == 0 {
		fmt.Printf("  %s\n", SubtitleStyle.Render("(empty, passed through as-is)"))
	} else {
		for _, key := range sortedOptimizerKeys(cfg.Optimizer) {
			fmt.Printf("  %s: %s\n", key, SuccessStyle.Render(fmt.Sprintf("%v", cfg.Optimizer[key])))
		}
	}

	return nil
}

func initConfigFile() error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}

	if err := config.CreateDefaultConfig(); err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}

	fmt.Printf("%s Created default configuration at %s\n",
		SuccessStyle.Render("✓"),
		filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt))
	return nil
}

func showConfigPath() error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}

	fmt.Printf("Config directory: %s\n", cfgDir)
	fmt.Printf("Config file: %s\n", filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt))

	if _, err := os.Stat(filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt)); err != nil {
		fmt.Println(SubtitleStyle.Render("(file does not exist yet; run 'dexboot config init')"))
	}
	return nil
}

func sortedOptimizerKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
