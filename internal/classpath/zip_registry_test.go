// SPDX-License-Identifier: MPL-2.0

package classpath

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"
)

func writeJar(t *testing.T, dir, name string, entries []string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", name, err)
	}
	defer f.Close()

	w := zip.NewWriter(f)
	for _, entry := range entries {
		ew, err := w.Create(entry)
		if err != nil {
			t.Fatalf("add %s: %v", entry, err)
		}
		if _, err := ew.Write([]byte{0xCA, 0xFE, 0xBA, 0xBE}); err != nil {
			t.Fatalf("write %s: %v", entry, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close %s: %v", name, err)
	}
	return path
}

func TestZipRegistry_Register(t *testing.T) {
	dir := t.TempDir()
	jar := writeJar(t, dir, "core.jar", []string{
		"java/lang/Object.class",
		"java/lang/String.class",
		"META-INF/MANIFEST.MF",
		"module-info.class",
	})

	reg := NewZipRegistry()
	if err := reg.Register(jar); err != nil {
		t.Fatalf("Register() error: %v", err)
	}

	if got := reg.ClassCount(); got != 2 {
		t.Errorf("ClassCount() = %d, want 2 (manifest and module-info excluded)", got)
	}
	if got := reg.Provider("java/lang/Object"); got != jar {
		t.Errorf("Provider(java/lang/Object) = %q, want %q", got, jar)
	}
	if got := reg.Provider("java/lang/Missing"); got != "" {
		t.Errorf("Provider(missing) = %q, want empty", got)
	}
}

func TestZipRegistry_FirstRegistrationWins(t *testing.T) {
	dir := t.TempDir()
	first := writeJar(t, dir, "first.jar", []string{"com/app/Dup.class"})
	second := writeJar(t, dir, "second.jar", []string{"com/app/Dup.class", "com/app/Only.class"})

	reg := NewZipRegistry()
	if err := Bootstrap(first+","+second, reg); err != nil {
		t.Fatalf("Bootstrap() error: %v", err)
	}

	if got := reg.Provider("com/app/Dup"); got != first {
		t.Errorf("Provider(Dup) = %q, want first archive %q", got, first)
	}
	if got := reg.Provider("com/app/Only"); got != second {
		t.Errorf("Provider(Only) = %q, want %q", got, second)
	}
	if got := len(reg.Archives()); got != 2 {
		t.Errorf("Archives() has %d entries, want 2", got)
	}
}

func TestZipRegistry_BadArchiveLeavesStateIntact(t *testing.T) {
	dir := t.TempDir()
	good := writeJar(t, dir, "good.jar", []string{"a/A.class"})
	bad := filepath.Join(dir, "bad.jar")
	if err := os.WriteFile(bad, []byte("not a zip"), 0o644); err != nil {
		t.Fatalf("write bad jar: %v", err)
	}

	reg := NewZipRegistry()
	if err := reg.Register(good); err != nil {
		t.Fatalf("Register(good) error: %v", err)
	}
	if err := reg.Register(bad); err == nil {
		t.Fatal("Register(bad) should fail")
	}

	if got := reg.ClassCount(); got != 1 {
		t.Errorf("ClassCount() = %d after failed register, want 1", got)
	}
	if got := len(reg.Archives()); got != 1 {
		t.Errorf("Archives() has %d entries after failed register, want 1", got)
	}
}
