// internal/debate/role.go
package debate

import "fmt"

// Role is the fixed identity an agent argues from
type Role int

const (
	RoleProponent Role = iota
	RoleOpponent
	RoleJudge
)

// String returns the role key used in transcripts and retrieval queries
func (r Role) String() string {
	switch r {
	case RoleProponent:
		return "AffirmativeAgent"
	case RoleOpponent:
		return "NegativeAgent"
	case RoleJudge:
		return "JudgeAgent"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

// DisplayName is the default speaker name for the role
func (r Role) DisplayName() string {
	switch r {
	case RoleProponent:
		return "Affirmative"
	case RoleOpponent:
		return "Negative"
	case RoleJudge:
		return "Judge"
	default:
		return r.String()
	}
}

// IsDebater reports whether the role takes a side
func (r Role) IsDebater() bool {
	return r == RoleProponent || r == RoleOpponent
}
