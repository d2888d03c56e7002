// internal/knowledge/splitter.go
package knowledge

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Defaults for chunking knowledge documents
const (
	DefaultChunkSize    = 500
	DefaultChunkOverlap = 50
)

var defaultSeparators = []string{"\n\n", "\n", " ", ""}

// Chunk is a piece of a document sized for embedding
type Chunk struct {
	ID        string
	Source    string
	Page      int
	Content   string
	Embedding []float32
}

// Splitter breaks text into chunks of at most Size characters, trying
// paragraph, line, and word boundaries before cutting mid-word. Adjacent
// chunks share up to Overlap characters.
type Splitter struct {
	Size       int
	Overlap    int
	separators []string
}

func NewSplitter(size, overlap int) (*Splitter, error) {
	if size <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", size)
	}
	if overlap < 0 || overlap >= size {
		return nil, fmt.Errorf("chunk overlap must be in [0, %d), got %d", size, overlap)
	}
	return &Splitter{Size: size, Overlap: overlap, separators: defaultSeparators}, nil
}

// SplitDocuments chunks every document, keeping provenance
func (s *Splitter) SplitDocuments(docs []Document) []Chunk {
	var chunks []Chunk
	for _, doc := range docs {
		for _, text := range s.Split(doc.Text) {
			chunks = append(chunks, Chunk{Source: doc.Source, Page: doc.Page, Content: text})
		}
	}
	return chunks
}

// Split returns the chunks of text
func (s *Splitter) Split(text string) []string {
	return s.split(text, s.separators)
}

func (s *Splitter) split(text string, separators []string) []string {
	sep := separators[len(separators)-1]
	var rest []string
	for i, candidate := range separators {
		if candidate == "" {
			sep = ""
			break
		}
		if strings.Contains(text, candidate) {
			sep = candidate
			rest = separators[i+1:]
			break
		}
	}

	var pieces []string
	if sep == "" {
		pieces = strings.Split(text, "")
	} else {
		pieces = strings.Split(text, sep)
	}

	var out, pending []string
	for _, piece := range pieces {
		if piece == "" {
			continue
		}
		if runeLen(piece) < s.Size {
			pending = append(pending, piece)
			continue
		}
		if len(pending) > 0 {
			out = append(out, s.merge(pending, sep)...)
			pending = nil
		}
		if len(rest) == 0 {
			out = append(out, piece)
		} else {
			out = append(out, s.split(piece, rest)...)
		}
	}
	if len(pending) > 0 {
		out = append(out, s.merge(pending, sep)...)
	}
	return out
}

// merge packs pieces into chunks no longer than Size, carrying up to
// Overlap characters of trailing pieces into the next chunk
func (s *Splitter) merge(pieces []string, sep string) []string {
	sepLen := runeLen(sep)
	var out, current []string
	total := 0

	for _, piece := range pieces {
		n := runeLen(piece)
		if total+n+joinCost(current, sepLen) > s.Size && len(current) > 0 {
			if chunk := strings.TrimSpace(strings.Join(current, sep)); chunk != "" {
				out = append(out, chunk)
			}
			for total > s.Overlap || (total+n+joinCost(current, sepLen) > s.Size && total > 0) {
				total -= runeLen(current[0])
				if len(current) > 1 {
					total -= sepLen
				}
				current = current[1:]
			}
		}
		current = append(current, piece)
		total += n
		if len(current) > 1 {
			total += sepLen
		}
	}

	if chunk := strings.TrimSpace(strings.Join(current, sep)); chunk != "" {
		out = append(out, chunk)
	}
	return out
}

func joinCost(current []string, sepLen int) int {
	if len(current) > 0 {
		return sepLen
	}
	return 0
}

func runeLen(s string) int { return utf8.RuneCountInString(s) }
