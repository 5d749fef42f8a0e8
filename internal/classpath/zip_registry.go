// SPDX-License-Identifier: MPL-2.0

package classpath

import (
	"archive/zip"
	"fmt"
	"strings"
)

// ZipRegistry indexes the .class entries of jar archives. Jars are plain
// zip files, so archive/zip reads them directly.
type ZipRegistry struct {
	archives []string
	// classes maps a class's internal name (e.g. "java/lang/Object") to
	// the archive that first provided it. First registration wins, which
	// matches classpath shadowing semantics.
	classes map[string]string
}

// NewZipRegistry creates an empty registry.
func NewZipRegistry() *ZipRegistry {
	return &ZipRegistry{classes: make(map[string]string)}
}

// Register opens the archive and indexes its .class entries. On any error
// the registry is left exactly as it was.
func (r *ZipRegistry) Register(archivePath string) error {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer reader.Close()

	staged := make(map[string]string)
	for _, file := range reader.File {
		name := file.Name
		if !strings.HasSuffix(name, ".class") || strings.HasSuffix(name, "module-info.class") {
			continue
		}
		staged[strings.TrimSuffix(name, ".class")] = archivePath
	}

	for name, src := range staged {
		if _, seen := r.classes[name]; !seen {
			r.classes[name] = src
		}
	}
	r.archives = append(r.archives, archivePath)
	return nil
}

// Archives returns the registered archive paths in registration order.
func (r *ZipRegistry) Archives() []string {
	out := make([]string, len(r.archives))
	copy(out, r.archives)
	return out
}

// ClassCount returns the number of distinct classes on the classpath.
func (r *ZipRegistry) ClassCount() int {
	return len(r.classes)
}

// Provider returns the archive that provides the named class, or "" when
// the class is not on the classpath.
func (r *ZipRegistry) Provider(className string) string {
	return r.classes[className]
}
