// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"dexboot-cli/internal/config"
)

func mustMkdir(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", path, err)
	}
}

func mustWrite(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func containerNames(layout *Layout) []string {
	names := make([]string, len(layout.Containers))
	for i, p := range layout.Containers {
		names[i] = filepath.Base(p)
	}
	return names
}

func TestScan_TypicalLayout(t *testing.T) {
	root := t.TempDir()
	mustWrite(t, filepath.Join(root, "secondary-2.dex"), "")
	mustWrite(t, filepath.Join(root, "classes.dex"), "")
	mustWrite(t, filepath.Join(root, "secondary-10.dex"), "")
	mustWrite(t, filepath.Join(root, "secondary-1.dex"), "")
	mustWrite(t, filepath.Join(root, "README.txt"), "not a container")

	mustMkdir(t, filepath.Join(root, "feature"))
	mustWrite(t, filepath.Join(root, "feature", "feature.json"),
		`{"name": "feature", "files": ["feature.dex"]}`)

	layout, err := New(nil).Scan(root)
	if err != nil {
		t.Fatalf("Scan() error: %v", err)
	}

	want := []string{"classes.dex", "secondary-1.dex", "secondary-2.dex", "secondary-10.dex"}
	got := containerNames(layout)
	if len(got) != len(want) {
		t.Fatalf("Containers = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Containers[%d] = %s, want %s", i, got[i], want[i])
		}
	}

	if len(layout.Modules) != 1 || layout.Modules[0].Name != "feature" {
		t.Fatalf("Modules = %+v, want single module 'feature'", layout.Modules)
	}
	if layout.Modules[0].MetadataPath != filepath.Join(root, "feature", "feature.json") {
		t.Errorf("MetadataPath = %s", layout.Modules[0].MetadataPath)
	}
}

func TestScan_ModuleQualification(t *testing.T) {
	root := t.TempDir()

	// Qualifies: metadata named after the directory.
	mustMkdir(t, filepath.Join(root, "modA"))
	mustWrite(t, filepath.Join(root, "modA", "modA.json"), `{"name": "modA", "files": []}`)

	// Does not qualify: metadata named after a different module.
	mustMkdir(t, filepath.Join(root, "modB"))
	mustWrite(t, filepath.Join(root, "modB", "other.json"), `{"name": "other", "files": []}`)

	// Does not qualify: no metadata at all.
	mustMkdir(t, filepath.Join(root, "modC"))

	// Does not qualify: metadata path is itself a directory.
	mustMkdir(t, filepath.Join(root, "modD", "modD.json"))

	layout, err := New(nil).Scan(root)
	if err != nil {
		t.Fatalf("Scan() error: %v", err)
	}
	if len(layout.Modules) != 1 || layout.Modules[0].Name != "modA" {
		t.Errorf("Modules = %+v, want only modA", layout.Modules)
	}
}

func TestScan_ModulesSortedLexicographically(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"zeta", "alpha", "mid"} {
		mustMkdir(t, filepath.Join(root, name))
		mustWrite(t, filepath.Join(root, name, name+".json"),
			`{"name": "`+name+`", "files": []}`)
	}

	layout, err := New(nil).Scan(root)
	if err != nil {
		t.Fatalf("Scan() error: %v", err)
	}
	want := []string{"alpha", "mid", "zeta"}
	for i, mod := range layout.Modules {
		if mod.Name != want[i] {
			t.Errorf("Modules[%d] = %s, want %s", i, mod.Name, want[i])
		}
	}
}

func TestScan_MissingRoot(t *testing.T) {
	_, err := New(nil).Scan(filepath.Join(t.TempDir(), "nope"))
	if !errors.Is(err, ErrNotADirectory) {
		t.Errorf("expected ErrNotADirectory, got %v", err)
	}
}

func TestScan_RootIsFile(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "classes.dex")
	mustWrite(t, file, "")

	_, err := New(nil).Scan(file)
	if !errors.Is(err, ErrNotADirectory) {
		t.Errorf("expected ErrNotADirectory, got %v", err)
	}

	var typed *NotADirectoryError
	if !errors.As(err, &typed) || typed.Path != file {
		t.Errorf("error should name the offending path, got %v", err)
	}
}

func TestScan_UnreadableRoot(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("needs POSIX permissions enforced for a non-root user")
	}

	parent := t.TempDir()
	locked := filepath.Join(parent, "locked")
	mustMkdir(t, locked)
	if err := os.Chmod(parent, 0o000); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	t.Cleanup(func() { _ = os.Chmod(parent, 0o755) })

	_, err := New(nil).Scan(locked)
	if err == nil {
		t.Fatal("expected Scan() to fail on an unreadable root")
	}
	// A permission failure is not a "not a directory" condition.
	if errors.Is(err, ErrNotADirectory) {
		t.Errorf("permission failure mislabeled as ErrNotADirectory: %v", err)
	}
	if !strings.Contains(err.Error(), "stat") {
		t.Errorf("error should report the stat failure, got %v", err)
	}
}

func TestScan_EmptyRoot(t *testing.T) {
	layout, err := New(nil).Scan(t.TempDir())
	if err != nil {
		t.Fatalf("Scan() error: %v", err)
	}
	if len(layout.Containers) != 0 || len(layout.Modules) != 0 {
		t.Errorf("empty root should yield empty layout, got %+v", layout)
	}
}

func TestScan_ConfiguredExtensions(t *testing.T) {
	root := t.TempDir()
	mustWrite(t, filepath.Join(root, "classes.odex"), "")
	mustWrite(t, filepath.Join(root, "classes.dex"), "")

	mustMkdir(t, filepath.Join(root, "feature"))
	mustWrite(t, filepath.Join(root, "feature", "feature.meta"), `{"name": "feature", "files": []}`)

	cfg := config.DefaultConfig()
	cfg.Ingest.ContainerExt = ".odex"
	cfg.Ingest.MetadataExt = ".meta"

	layout, err := New(cfg).Scan(root)
	if err != nil {
		t.Fatalf("Scan() error: %v", err)
	}
	if got := containerNames(layout); len(got) != 1 || got[0] != "classes.odex" {
		t.Errorf("Containers = %v, want [classes.odex]", got)
	}
	if len(layout.Modules) != 1 {
		t.Errorf("Modules = %+v, want feature via .meta", layout.Modules)
	}
}
