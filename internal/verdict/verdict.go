// internal/verdict/verdict.go
package verdict

import (
	"regexp"
	"strings"
)

// Side identifies whose points a section lists
type Side int

const (
	SideUnknown Side = iota
	SideAffirmative
	SideNegative
)

func (s Side) String() string {
	switch s {
	case SideAffirmative:
		return "Affirmative"
	case SideNegative:
		return "Negative"
	default:
		return "Unknown"
	}
}

// Verdict is the judge's summary split into each side's key points
type Verdict struct {
	Affirmative []string
	Negative    []string
	Raw         string
}

// Structured reports whether the judge followed the requested format
func (v Verdict) Structured() bool {
	return len(v.Affirmative) > 0 || len(v.Negative) > 0
}

// Points returns the key points for a side
func (v Verdict) Points(s Side) []string {
	switch s {
	case SideAffirmative:
		return v.Affirmative
	case SideNegative:
		return v.Negative
	default:
		return nil
	}
}

// Patterns for section headers and list items. Models often decorate
// headers with markdown emphasis or heading marks.
var (
	headerPattern = regexp.MustCompile(`(?i)^[#*_\s]*(affirmative|negative)(?:\s+team)?\s+key\s+points[*_\s]*:?[*_\s]*(.*)$`)
	bulletPattern = regexp.MustCompile(`^\s*(?:[-*•]|\d+[.)])\s+(.+)$`)
)

// Parse extracts the Affirmative and Negative key point lists
func Parse(content string) Verdict {
	v := Verdict{Raw: content}
	side := SideUnknown

	for _, line := range strings.Split(content, "\n") {
		if match := headerPattern.FindStringSubmatch(strings.TrimSpace(line)); match != nil {
			side = parseSide(match[1])
			// Some models put the first point on the header line
			if rest := strings.TrimSpace(match[2]); rest != "" {
				v.add(side, rest)
			}
			continue
		}
		if side == SideUnknown {
			continue
		}
		if match := bulletPattern.FindStringSubmatch(line); match != nil {
			v.add(side, match[1])
		}
	}
	return v
}

func parseSide(name string) Side {
	switch strings.ToLower(name) {
	case "affirmative":
		return SideAffirmative
	case "negative":
		return SideNegative
	default:
		return SideUnknown
	}
}

func (v *Verdict) add(side Side, point string) {
	point = strings.TrimSpace(strings.Trim(point, "*_"))
	if point == "" || point == "..." {
		return
	}
	switch side {
	case SideAffirmative:
		v.Affirmative = append(v.Affirmative, point)
	case SideNegative:
		v.Negative = append(v.Negative, point)
	}
}
