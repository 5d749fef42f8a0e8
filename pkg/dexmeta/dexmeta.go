// SPDX-License-Identifier: MPL-2.0

package dexmeta

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"dexboot-cli/pkg/cueutil"
)

//go:embed dexmeta_schema.cue
var metadataSchema string

// Ext is the metadata file extension that qualifies a subdirectory as
// a module.
const Ext = ".json"

// Metadata is a module descriptor parsed from <dir>/<dir>.json.
// It is transient: discarded once its content has been loaded into a
// store.
type Metadata struct {
	// Name is the module identifier; the module's store is named
	// after it.
	Name string `json:"name"`
	// Files is the ordered list of container files belonging to this
	// module. Load order follows this list exactly.
	Files []string `json:"files"`
	// Requirements lists class prefixes the module needs at runtime
	// (optional, pass-through).
	Requirements []string `json:"requirements,omitempty"`
	// Dependencies lists other modules this module depends on
	// (optional, pass-through).
	Dependencies []string `json:"dependencies,omitempty"`
	// FilePath stores where this metadata was loaded from (not in the
	// schema).
	FilePath string `json:"-"`
}

// Path returns the metadata file path for a module directory:
// <dir>/<basename-of-dir>.json.
func Path(moduleDir string) string {
	return filepath.Join(moduleDir, filepath.Base(moduleDir)+Ext)
}

// IsModuleDir reports whether dir qualifies as a module: it must
// contain a regular file named after the directory plus the metadata
// extension. A misnamed metadata file does not qualify.
func IsModuleDir(dir string) bool {
	info, err := os.Stat(Path(dir))
	return err == nil && info.Mode().IsRegular()
}

// Parse reads and parses module metadata from the given path.
func Parse(path string) (*Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read module metadata at %s: %w", path, err)
	}
	return ParseBytes(data, path)
}

// ParseBytes parses module metadata content from bytes. The content is
// unified with the embedded #Metadata schema; all declared fields must
// be concrete.
func ParseBytes(data []byte, path string) (*Metadata, error) {
	result, err := cueutil.ParseAndDecodeString[Metadata](
		metadataSchema,
		data,
		"#Metadata",
		cueutil.WithFilename(path),
		cueutil.WithConcrete(),
	)
	if err != nil {
		return nil, err
	}

	meta := result.Value
	meta.FilePath = path
	return meta, nil
}

// ResolveFiles returns the metadata's file list with relative entries
// resolved against moduleDir. Order is preserved.
func (m *Metadata) ResolveFiles(moduleDir string) []string {
	resolved := make([]string, len(m.Files))
	for i, f := range m.Files {
		if filepath.IsAbs(f) {
			resolved[i] = f
			continue
		}
		resolved[i] = filepath.Join(moduleDir, f)
	}
	return resolved
}
