// internal/knowledge/loader_test.go
package knowledge

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.txt"), "Solar output doubled.")
	writeFile(t, filepath.Join(dir, "a.md"), "# Water\nAquifers are shrinking.")
	writeFile(t, filepath.Join(dir, "notes", "c.txt"), "Nested note.")
	writeFile(t, filepath.Join(dir, "image.png"), "not text")
	writeFile(t, filepath.Join(dir, ".hidden", "d.txt"), "hidden")
	writeFile(t, filepath.Join(dir, "empty.txt"), "   \n")

	docs, err := LoadDirectory(dir, nil)
	if err != nil {
		t.Fatalf("LoadDirectory() failed: %v", err)
	}
	if len(docs) != 3 {
		t.Fatalf("Expected 3 documents, got %d: %+v", len(docs), docs)
	}

	var sources []string
	for _, d := range docs {
		sources = append(sources, filepath.Base(d.Source))
	}
	if got := strings.Join(sources, ","); got != "a.md,b.txt,c.txt" {
		t.Errorf("Unexpected sources %s", got)
	}
	if docs[1].Text != "Solar output doubled." || docs[1].Page != 0 {
		t.Errorf("Unexpected document %+v", docs[1])
	}
}

func TestLoadDirectoryMissing(t *testing.T) {
	_, err := LoadDirectory(filepath.Join(t.TempDir(), "nope"), nil)
	if !errors.Is(err, ErrNoKnowledge) {
		t.Errorf("Expected ErrNoKnowledge, got %v", err)
	}
}

func TestLoadDirectoryEmpty(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "readme.rst"), "unsupported")

	_, err := LoadDirectory(dir, nil)
	if !errors.Is(err, ErrNoKnowledge) {
		t.Errorf("Expected ErrNoKnowledge, got %v", err)
	}
}

func TestLoadDirectorySkipsLargeFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "big.txt"), strings.Repeat("x", MaxFileSize+1))
	writeFile(t, filepath.Join(dir, "ok.txt"), "fine")

	var skipped []string
	docs, err := LoadDirectory(dir, func(path string, err error) {
		skipped = append(skipped, filepath.Base(path))
	})
	if err != nil {
		t.Fatalf("LoadDirectory() failed: %v", err)
	}
	if len(docs) != 1 {
		t.Errorf("Expected 1 document, got %d", len(docs))
	}
	if len(skipped) != 1 || skipped[0] != "big.txt" {
		t.Errorf("Expected big.txt to be skipped, got %v", skipped)
	}
}

func TestLoadFileUnsupported(t *testing.T) {
	if _, err := LoadFile("data.csv"); err == nil {
		t.Error("Expected error for unsupported extension")
	}
}
