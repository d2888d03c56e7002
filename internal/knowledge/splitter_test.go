// internal/knowledge/splitter_test.go
package knowledge

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		overlap int
		text    string
		want    []string
	}{
		{"fits", 100, 10, "short text", []string{"short text"}},
		{"paragraphs", 100, 0, "para one.\n\npara two.", []string{"para one.\n\npara two."}},
		{"words", 10, 0, "aaaa bbbb cccc", []string{"aaaa bbbb", "cccc"}},
		{"overlap", 10, 5, "aaaa bbbb cccc", []string{"aaaa bbbb", "bbbb cccc"}},
		{"characters", 4, 0, "abcdefghij", []string{"abcd", "efgh", "ij"}},
		{"empty", 10, 0, "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewSplitter(tt.size, tt.overlap)
			if err != nil {
				t.Fatalf("NewSplitter: %v", err)
			}
			got := s.Split(tt.text)
			if strings.Join(got, "|") != strings.Join(tt.want, "|") || len(got) != len(tt.want) {
				t.Errorf("Split(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestSplitRespectsSize(t *testing.T) {
	s, _ := NewSplitter(DefaultChunkSize, DefaultChunkOverlap)
	var sb strings.Builder
	for i := 0; i < 200; i++ {
		sb.WriteString("Renewable extraction quotas reduce long-term depletion. ")
		if i%7 == 0 {
			sb.WriteString("\n\n")
		}
	}

	chunks := s.Split(sb.String())
	if len(chunks) < 2 {
		t.Fatalf("Expected several chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if n := utf8.RuneCountInString(c); n > DefaultChunkSize {
			t.Errorf("Chunk %d has %d characters", i, n)
		}
	}
}

func TestNewSplitterValidation(t *testing.T) {
	tests := []struct {
		size, overlap int
	}{
		{0, 0},
		{-5, 0},
		{10, 10},
		{10, -1},
	}
	for _, tt := range tests {
		if _, err := NewSplitter(tt.size, tt.overlap); err == nil {
			t.Errorf("NewSplitter(%d, %d) should fail", tt.size, tt.overlap)
		}
	}
}

func TestSplitDocumentsKeepsProvenance(t *testing.T) {
	s, _ := NewSplitter(10, 0)
	chunks := s.SplitDocuments([]Document{
		{Source: "a.pdf", Page: 2, Text: "aaaa bbbb cccc"},
		{Source: "b.txt", Text: "dd"},
	})
	if len(chunks) != 3 {
		t.Fatalf("Expected 3 chunks, got %d", len(chunks))
	}
	if chunks[1].Source != "a.pdf" || chunks[1].Page != 2 || chunks[2].Source != "b.txt" {
		t.Errorf("Unexpected provenance %+v", chunks)
	}
}
