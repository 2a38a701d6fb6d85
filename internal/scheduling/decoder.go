package scheduling

import "time"

// Decode is the Sat(model) branch of the Decoder & Diagnoser (C7): every
// positive literal that exists in tuple_of becomes a schedule entry.
func Decode(model []bool, enc *Encoding) []ScheduleEntry {
	entries := make([]ScheduleEntry, 0, len(enc.TupleOf))
	for v, t := range enc.TupleOf {
		if !modelTrue(model, v) {
			continue
		}
		entry := ScheduleEntry{
			LessonID:   t.Lesson,
			TeacherID:  t.Teacher,
			RoomID:     t.Room,
			TimeSlotID: t.Slot,
		}
		if enc.GroupKind[t.Group] == GroupStudy {
			g := t.Group
			entry.StudyGroupID = &g
		} else {
			g := t.Group
			entry.ClassGroupID = &g
		}
		entries = append(entries, entry)
	}
	return entries
}

// Diagnose is the Unsat branch of C7: it re-encodes the input from scratch
// with conflict clauses suppressed (resource exclusivity and student
// overlap) and re-solves, to distinguish resource contention from a
// capacity/availability obstruction. It re-encodes rather than mutating the
// original clause set, keeping the compiler referentially transparent.
func Diagnose(in *SchedulingInput, timeout time.Duration) *NoSolutionError {
	enc := Encode(in)
	cnf := Compile(in, enc, SkipConflicts)

	status, _ := solve(cnf, timeout)
	switch status {
	case StatusTimeout:
		return &NoSolutionError{Kind: NoSolutionTimeout, Message: "schedule generation timed out"}
	case StatusSat:
		return &NoSolutionError{
			Kind: NoSolutionResourceConflict,
			Message: "resource conflicts make the schedule impossible (teacher, room, or student overlap " +
				"in at least one time slot); add time slots, teachers, or rooms",
		}
	default:
		return &NoSolutionError{
			Kind: NoSolutionCapacityOrAvailability,
			Message: "some (lesson, group) pairs have no valid (teacher, room, slot) after room capacity " +
				"and teacher/room unavailability",
		}
	}
}
