// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"dexboot-cli/internal/config"
	"dexboot-cli/internal/discovery"
	"dexboot-cli/internal/issue"
	"dexboot-cli/internal/watch"
	"dexboot-cli/pkg/dexmeta"
	"dexboot-cli/pkg/types"

	"github.com/spf13/cobra"
)

var (
	scanDexenDir string
	scanWatch    bool

	scanCmd = &cobra.Command{
		Use:   "scan",
		Short: "Preview the dexen layout without loading anything",
		Long: `Preview what a boot would load: the primary store's containers in
their deterministic order and each qualifying module with its declared
file list. Nothing is loaded; metadata is parsed only for display.

With --watch, the dexen directory is monitored and the layout is
printed again whenever container or metadata files change.`,
		RunE: runScan,
	}
)

func init() {
	scanCmd.Flags().StringVar(&scanDexenDir, "dexendir", "", "directory holding the container files")
	scanCmd.Flags().BoolVar(&scanWatch, "watch", false, "rescan whenever the dexen directory changes")
	_ = scanCmd.MarkFlagRequired("dexendir")
}

func runScan(cmd *cobra.Command, _ []string) error {
	cfg := loadCommandConfig(cmd.Context())

	if err := printLayout(cfg); err != nil {
		return err
	}
	if !scanWatch {
		return nil
	}

	watcher, err := watch.New(watch.Config{
		Root:     scanDexenDir,
		Debounce: time.Duration(cfg.Watch.DebounceMs) * time.Millisecond,
		OnChange: func(_ context.Context, changed []string) error {
			fmt.Printf("\n%s %d path(s) changed\n", SubtitleStyle.Render("changed:"), len(changed))
			return printLayout(cfg)
		},
	})
	if err != nil {
		return err
	}

	fmt.Println(SubtitleStyle.Render("watching for changes (ctrl-c to stop)..."))
	return watcher.Run(cmd.Context())
}

// printLayout scans the dexen directory and prints what a boot would load.
func printLayout(cfg *config.Config) error {
	layout, err := discovery.New(cfg).Scan(scanDexenDir)
	if err != nil {
		renderIssue(issue.DexenDirInvalidId)
		return &ExitError{Code: types.ExitUsage, Err: err}
	}

	fmt.Println(TitleStyle.Render("Dexen layout: ") + PathStyle.Render(layout.Root))
	fmt.Println()

	fmt.Println(TitleStyle.Render("dex") + SubtitleStyle.Render(" (primary store)"))
	if len(layout.Containers) == 0 {
		fmt.Printf("  %s\n", SubtitleStyle.Render("(no container files)"))
	}
	for i, path := range layout.Containers {
		fmt.Printf("  %2d. %s\n", i+1, filepath.Base(path))
	}

	for _, mod := range layout.Modules {
		meta, err := dexmeta.Parse(mod.MetadataPath)
		if err != nil {
			fmt.Printf("\n%s %s\n", ErrorStyle.Render(mod.Name), SubtitleStyle.Render("(metadata malformed)"))
			fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
			continue
		}

		fmt.Printf("\n%s %s\n", TitleStyle.Render(meta.Name),
			SubtitleStyle.Render("(module store, dir "+mod.Name+")"))
		if len(meta.Files) == 0 {
			fmt.Printf("  %s\n", SubtitleStyle.Render("(no declared files)"))
		}
		for i, f := range meta.Files {
			fmt.Printf("  %2d. %s\n", i+1, f)
		}
		if len(meta.Dependencies) > 0 {
			fmt.Printf("  %s %v\n", SubtitleStyle.Render("depends on:"), meta.Dependencies)
		}
	}

	fmt.Println()
	fmt.Printf("%s %d store(s): primary + %d module(s)\n",
		SuccessStyle.Render("✓"), 1+len(layout.Modules), len(layout.Modules))
	return nil
}
