// internal/knowledge/loader.go
package knowledge

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// MaxFileSize is the largest plain-text file we'll index (1MB)
const MaxFileSize = 1024 * 1024

// ErrNoKnowledge means the knowledge directory is missing or empty
var ErrNoKnowledge = errors.New("no knowledge documents found")

// Document is the text of one file, or one page of a PDF
type Document struct {
	Source string
	Page   int // 1-based for PDFs, 0 otherwise
	Text   string
}

// LoadDirectory reads every supported document under dir.
// Unreadable files are skipped and reported through skip.
func LoadDirectory(dir string, skip func(path string, err error)) ([]Document, error) {
	info, err := os.Stat(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s does not exist", ErrNoKnowledge, dir)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to stat knowledge directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrNoKnowledge, dir)
	}

	var paths []string
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if path != dir && (strings.HasPrefix(name, ".") || isExcludedDir(name)) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasPrefix(name, ".") && isSupported(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk knowledge directory: %w", err)
	}
	sort.Strings(paths)

	var docs []Document
	for _, path := range paths {
		loaded, err := LoadFile(path)
		if err != nil {
			if skip != nil {
				skip(path, err)
			}
			continue
		}
		docs = append(docs, loaded...)
	}

	if len(docs) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoKnowledge, dir)
	}
	return docs, nil
}

// LoadFile reads a single document. PDFs yield one Document per page
// with extractable text.
func LoadFile(path string) ([]Document, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return loadPDF(path)
	case ".txt", ".md", ".markdown":
		return loadText(path)
	default:
		return nil, fmt.Errorf("unsupported file type: %s", filepath.Ext(path))
	}
}

func loadText(path string) ([]Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if info.Size() > MaxFileSize {
		return nil, fmt.Errorf("file too large (%d bytes, max %d)", info.Size(), MaxFileSize)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if strings.TrimSpace(string(content)) == "" {
		return nil, nil
	}
	return []Document{{Source: path, Text: string(content)}}, nil
}

func loadPDF(path string) ([]Document, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open pdf: %w", err)
	}
	defer f.Close()

	var docs []Document
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to extract page %d: %w", i, err)
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		docs = append(docs, Document{Source: path, Page: i, Text: text})
	}
	return docs, nil
}

func isSupported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf", ".txt", ".md", ".markdown":
		return true
	}
	return false
}

// isExcludedDir returns true for directories that should be skipped
func isExcludedDir(name string) bool {
	excluded := map[string]bool{
		"node_modules": true,
		"vendor":       true,
		"__pycache__":  true,
		"venv":         true,
		"chroma_db":    true,
	}
	return excluded[name]
}
