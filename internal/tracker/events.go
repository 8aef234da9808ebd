package tracker

import (
	"strings"

	"github.com/hyperengineering/studytrack/internal/types"
)

// Event is one user-logged occurrence. RecordEvent switches over the concrete
// value types below; any other implementation is ignored.
type Event interface {
	Type() types.EventType
}

// ProblemsSolved records practice problems solved in one language.
type ProblemsSolved struct {
	Lang       types.Language `json:"lang"`
	Count      int            `json:"count"`
	Difficulty string         `json:"difficulty,omitempty"`
}

// ProjectWork records hours spent on a named project, optionally finishing it.
// A nil Hours counts as one hour.
type ProjectWork struct {
	Lang      types.Language `json:"lang"`
	Name      string         `json:"name"`
	Hours     *float64       `json:"hours,omitempty"`
	Completed bool           `json:"completed"`
}

// DesignSession records one system design session.
type DesignSession struct{}

// MockInterview records one mock interview.
type MockInterview struct{}

func (ProblemsSolved) Type() types.EventType { return types.EventProblemsSolved }
func (ProjectWork) Type() types.EventType    { return types.EventProject }
func (DesignSession) Type() types.EventType  { return types.EventDesign }
func (MockInterview) Type() types.EventType  { return types.EventMock }

const defaultProjectHours = 1

// hours returns the logged hours, applying the one-hour default.
func (p ProjectWork) hours() float64 {
	if p.Hours == nil {
		return defaultProjectHours
	}
	return *p.Hours
}

// ParseLanguage maps user input to a language tag. The short aliases js and
// cpp are accepted for the scripting and systems tags. Unknown input is
// returned unchanged with ok set to false.
func ParseLanguage(s string) (lang types.Language, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "scripting", "js", "javascript":
		return types.LangScripting, true
	case "systems", "cpp", "c++":
		return types.LangSystems, true
	default:
		return types.Language(s), false
	}
}
