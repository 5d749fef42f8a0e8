// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"dexboot-cli/internal/app/assemble"
	"dexboot-cli/internal/classpath"
	"dexboot-cli/internal/dexfile"
	"dexboot-cli/internal/discovery"
	"dexboot-cli/internal/issue"
	"dexboot-cli/pkg/dexstore"
	"dexboot-cli/pkg/types"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	bootJars     string
	bootApkDir   string
	bootDexenDir string

	bootCmd = &cobra.Command{
		Use:   "boot",
		Short: "Assemble dex stores and hand off to reachability",
		Long: `Assemble dex stores from an unpacked application.

The classpath archives given via --jars are registered first, strictly
left to right. Then the dexen directory is scanned: top-level .dex files
form the primary store in deterministic order, and each subdirectory
with matching metadata becomes a module store loaded in declared order.
The assembled scope is handed to the reachability stage. Any failure
aborts the whole run; there is no partial result.`,
		RunE: runBoot,
	}
)

func init() {
	bootCmd.Flags().StringVar(&bootJars, "jars", "", "classpath archives, separated by ',' or ':'")
	bootCmd.Flags().StringVar(&bootApkDir, "apkdir", "", "unpacked application package directory")
	bootCmd.Flags().StringVar(&bootDexenDir, "dexendir", "", "directory holding the container files")
	_ = bootCmd.MarkFlagRequired("jars")
	_ = bootCmd.MarkFlagRequired("apkdir")
	_ = bootCmd.MarkFlagRequired("dexendir")
}

func runBoot(cmd *cobra.Command, _ []string) error {
	// Validate inputs before anything loads.
	for flag, value := range map[string]types.FilesystemPath{
		"--apkdir":   types.FilesystemPath(bootApkDir),
		"--dexendir": types.FilesystemPath(bootDexenDir),
	} {
		if valid, errs := value.IsValid(); !valid {
			return &ExitError{Code: types.ExitUsage, Err: fmt.Errorf("%s: %w", flag, errs[0])}
		}
	}
	if err := requireDir(bootApkDir); err != nil {
		return &ExitError{Code: types.ExitUsage, Err: fmt.Errorf("--apkdir: %w", err)}
	}
	if err := requireDir(bootDexenDir); err != nil {
		renderIssue(issue.DexenDirInvalidId)
		return &ExitError{Code: types.ExitUsage, Err: fmt.Errorf("--dexendir: %w", err)}
	}

	cfg := loadCommandConfig(cmd.Context())

	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "dexboot"})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}

	assembler, err := assemble.New(assemble.Options{
		DexenDir:     bootDexenDir,
		JarList:      bootJars,
		Registry:     classpath.NewZipRegistry(),
		Loader:       dexfile.NewLoader(),
		Reachability: &reachabilityLogger{logger: logger},
		Config:       cfg,
		Logger:       logger,
	})
	if err != nil {
		return err
	}

	collection, err := assembler.Run(cmd.Context())
	if err != nil {
		if id, known := issueFor(err); known {
			renderIssue(id)
		}
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, verbose))
		return &ExitError{Code: exitCodeFor(err), Err: err}
	}

	fmt.Printf("%s Assembled %d store(s) from %s\n",
		SuccessStyle.Render("✓"), collection.Len(), PathStyle.Render(bootDexenDir))
	return nil
}

// requireDir fails when path does not name an existing directory.
func requireDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("no such directory: %s", path)
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", path)
	}
	return nil
}

// issueFor maps a boot failure to its registered issue, when one exists.
func issueFor(err error) (issue.Id, bool) {
	switch {
	case errors.Is(err, discovery.ErrNotADirectory):
		return issue.DexenDirInvalidId, true
	case errors.Is(err, classpath.ErrRegisterArchive):
		return issue.ArchiveLoadFailedId, true
	case errors.Is(err, dexfile.ErrMalformedContainer):
		return issue.ContainerLoadFailedId, true
	}

	var ae *issue.ActionableError
	if errors.As(err, &ae) && ae.Operation == "parse module metadata" {
		return issue.MetadataParseErrorId, true
	}
	return 0, false
}

// exitCodeFor distinguishes bad invocations from runtime failures.
func exitCodeFor(err error) types.ExitCode {
	if errors.Is(err, discovery.ErrNotADirectory) {
		return types.ExitUsage
	}
	return types.ExitRuntime
}

// renderIssue prints the rendered help text for an issue to stderr.
// Rendering failures are ignored; the plain error still follows.
func renderIssue(id issue.Id) {
	iss := issue.Get(id)
	if iss == nil {
		return
	}
	if rendered, err := iss.Render("dark"); err == nil {
		fmt.Fprint(os.Stderr, rendered)
	}
}

// reachabilityLogger is the hand-off boundary: it reports what the
// reachability stage would receive. The analysis itself lives in the
// optimizer, not here.
type reachabilityLogger struct {
	logger *log.Logger
}

func (r *reachabilityLogger) Init(_ context.Context, scope dexstore.Scope, optimizer map[string]any) error {
	r.logger.Info("reachability scope ready",
		"batches", len(scope),
		"classes", scope.ClassCount(),
		"optimizer_keys", len(optimizer))
	return nil
}
