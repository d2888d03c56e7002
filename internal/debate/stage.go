// internal/debate/stage.go
package debate

import "fmt"

// Stage is one phase of a debate
type Stage int

const (
	StageOpening Stage = iota
	StageRebuttal
	StageClosing
	StageJudge
)

var stageNames = [...]string{
	StageOpening:  "opening",
	StageRebuttal: "rebuttal",
	StageClosing:  "closing",
	StageJudge:    "judge",
}

func (s Stage) String() string {
	if s.valid() {
		return stageNames[s]
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

func (s Stage) valid() bool {
	return s >= StageOpening && s <= StageJudge
}

// RetrievalEligible reports whether debaters gather evidence in this stage
func (s Stage) RetrievalEligible() bool {
	switch s {
	case StageOpening, StageRebuttal, StageClosing:
		return true
	default:
		return false
	}
}

// ParseStage maps a stage key back to its Stage
func ParseStage(name string) (Stage, error) {
	for i, n := range stageNames {
		if n == name {
			return Stage(i), nil
		}
	}
	return 0, &ConfigurationError{Key: "stage", Message: fmt.Sprintf("unknown stage %q", name)}
}
