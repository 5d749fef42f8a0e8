// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"dexboot-cli/internal/config"
	"dexboot-cli/pkg/dexmeta"
)

var (
	// ErrNotADirectory is the sentinel error wrapped by NotADirectoryError.
	ErrNotADirectory = errors.New("not a directory")
)

type (
	// NotADirectoryError is returned when the dexen root does not exist or
	// is not a directory. It wraps ErrNotADirectory for errors.Is().
	NotADirectoryError struct {
		Path string
	}

	// ModuleDir is a subdirectory that qualifies as a module: it holds a
	// metadata file named after itself.
	ModuleDir struct {
		// Name is the directory's base name, which doubles as the module's
		// directory identity (the declared metadata name may differ).
		Name string
		// Dir is the full path to the module directory.
		Dir string
		// MetadataPath is the full path to <dir>/<dir>.json.
		MetadataPath string
	}

	// Layout is the result of scanning a dexen root.
	Layout struct {
		// Root is the scanned directory.
		Root string
		// Containers holds the primary store's top-level container files in
		// deterministic load order.
		Containers []string
		// Modules holds the qualifying module directories in lexicographic
		// order of their names.
		Modules []ModuleDir
	}

	// Scanner finds container files and module directories.
	Scanner struct {
		containerExt string
		metadataExt  string
	}
)

// Error implements the error interface for NotADirectoryError.
func (e *NotADirectoryError) Error() string {
	return fmt.Sprintf("dexen root %q is not a directory", e.Path)
}

// Unwrap returns ErrNotADirectory for errors.Is() compatibility.
func (e *NotADirectoryError) Unwrap() error { return ErrNotADirectory }

// New creates a Scanner using the configured file extensions. A nil config
// falls back to the defaults (".dex" containers, ".json" metadata).
func New(cfg *config.Config) *Scanner {
	s := &Scanner{
		containerExt: ".dex",
		metadataExt:  dexmeta.Ext,
	}
	if cfg != nil {
		if cfg.Ingest.ContainerExt != "" {
			s.containerExt = string(cfg.Ingest.ContainerExt)
		}
		if cfg.Ingest.MetadataExt != "" {
			s.metadataExt = string(cfg.Ingest.MetadataExt)
		}
	}
	return s
}

// Scan reads the dexen root once and returns its layout. Top-level entries
// that are neither container files nor qualifying module directories are
// ignored; a qualifying module with broken metadata is NOT detected here,
// only its presence is.
func (s *Scanner) Scan(root string) (*Layout, error) {
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &NotADirectoryError{Path: root}
		}
		// Permission problems and other stat failures are not the same
		// thing as a missing directory; keep the cause visible.
		return nil, fmt.Errorf("failed to stat dexen root %q: %w", root, err)
	}
	if !info.IsDir() {
		return nil, &NotADirectoryError{Path: root}
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read dexen root %q: %w", root, err)
	}

	layout := &Layout{Root: root}
	for _, entry := range entries {
		name := entry.Name()
		full := filepath.Join(root, name)

		if entry.IsDir() {
			metaPath := filepath.Join(full, name+s.metadataExt)
			if metaInfo, err := os.Stat(metaPath); err == nil && metaInfo.Mode().IsRegular() {
				layout.Modules = append(layout.Modules, ModuleDir{
					Name:         name,
					Dir:          full,
					MetadataPath: metaPath,
				})
			}
			continue
		}

		if entry.Type().IsRegular() && strings.HasSuffix(name, s.containerExt) {
			layout.Containers = append(layout.Containers, full)
		}
	}

	SortContainers(layout.Containers)
	sort.Slice(layout.Modules, func(i, j int) bool {
		return layout.Modules[i].Name < layout.Modules[j].Name
	})

	return layout, nil
}
