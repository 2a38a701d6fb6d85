package scheduling

import (
	"fmt"
	"strings"
)

// InvalidInputError is returned by the Validator (C2) when generation is
// structurally impossible without invoking the solver.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s", e.Reason)
}

// InfeasiblePair is one (lesson, group) demand pair the Prober (C4) could
// not place under any circumstance.
type InfeasiblePair struct {
	LessonID LessonID
	GroupID  GroupID
	Reason   string
}

// InfeasibleError is returned by the Prober (C4) before any clause is
// emitted or the solver invoked.
type InfeasibleError struct {
	Pairs []InfeasiblePair
}

func (e *InfeasibleError) Error() string {
	reasons := make([]string, 0, len(e.Pairs))
	for _, p := range e.Pairs {
		reasons = append(reasons, fmt.Sprintf("lesson=%s group=%s: %s", p.LessonID, p.GroupID, p.Reason))
	}
	return "infeasible: " + strings.Join(reasons, "; ")
}

// NoSolutionKind distinguishes why a satisfiable-looking problem yielded no
// schedule.
type NoSolutionKind string

const (
	NoSolutionResourceConflict       NoSolutionKind = "ResourceConflict"
	NoSolutionCapacityOrAvailability NoSolutionKind = "CapacityOrAvailability"
	NoSolutionTimeout                NoSolutionKind = "Timeout"
)

// NoSolutionError is returned by the Decoder & Diagnoser (C7) on UNSAT, and
// by Generate when the SAT Core (C6) reports a timeout.
type NoSolutionError struct {
	Kind    NoSolutionKind
	Message string
}

func (e *NoSolutionError) Error() string {
	return e.Message
}
