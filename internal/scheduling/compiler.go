package scheduling

import (
	"sort"
	"strconv"
)

// CompileMode selects which clause families the Constraint Compiler (C5)
// emits. Full is the normal mode; SkipConflicts keeps only demand
// cardinality, capacity pruning, and custom constraints, and is used by the
// Decoder & Diagnoser (C7) to distinguish resource contention from capacity
// or availability obstruction.
type CompileMode int

const (
	Full CompileMode = iota
	SkipConflicts
)

// CNF is the compiled formula: NumVars is the highest variable id in use
// (including cardinality-gadget auxiliaries), Clauses is the conjunction.
type CNF struct {
	NumVars int
	Clauses [][]int
}

// Compile is the Constraint Compiler (C5). It mutates enc.NextVar as the
// cardinality gadget allocates auxiliary variables.
func Compile(in *SchedulingInput, enc *Encoding, mode CompileMode) *CNF {
	var clauses [][]int

	clauses = append(clauses, demandCardinalityClauses(in, enc)...)
	clauses = append(clauses, roomCapacityClauses(in, enc)...)
	clauses = append(clauses, customConstraintClauses(in, enc)...)

	if mode == Full {
		clauses = append(clauses, resourceExclusivityClauses(enc)...)
		clauses = append(clauses, studentOverlapClauses(in, enc)...)
	}

	return &CNF{NumVars: enc.NextVar - 1, Clauses: clauses}
}

// demandCardinalityClauses implements §4.5.1: for each (group, lesson) with
// demand n, an exactly-n constraint over V_{group,lesson}. Pairs where
// |V| < n are skipped; the Prober will already have reported them.
func demandCardinalityClauses(in *SchedulingInput, enc *Encoding) [][]int {
	var clauses [][]int
	for _, g := range in.allGroups() {
		demand := in.demandFor(g)
		for _, l := range in.Lessons {
			n := demand[l.ID]
			if n == 0 {
				continue
			}
			vars := enc.VariablesFor(l.ID, g.ID)
			if uint(len(vars)) < n {
				continue
			}
			clauses = append(clauses, exactlyN(vars, int(n), &enc.NextVar)...)
		}
	}
	return clauses
}

// resourceExclusivityClauses implements §4.5.2: pairwise at-most-one over
// every (teacher, slot), (group, slot), and (room, slot) sharing key.
func resourceExclusivityClauses(enc *Encoding) [][]int {
	byTeacherSlot := make(map[[2]string][]int)
	byGroupSlot := make(map[[2]string][]int)
	byRoomSlot := make(map[[2]string][]int)

	for v, t := range enc.TupleOf {
		tk := [2]string{teacherKey(t.Teacher), string(t.Slot)}
		byTeacherSlot[tk] = append(byTeacherSlot[tk], v)

		gk := [2]string{string(t.Group), string(t.Slot)}
		byGroupSlot[gk] = append(byGroupSlot[gk], v)

		rk := [2]string{string(t.Room), string(t.Slot)}
		byRoomSlot[rk] = append(byRoomSlot[rk], v)
	}

	var clauses [][]int
	clauses = append(clauses, pairwiseAMOGroups(byTeacherSlot)...)
	clauses = append(clauses, pairwiseAMOGroups(byGroupSlot)...)
	clauses = append(clauses, pairwiseAMOGroups(byRoomSlot)...)
	return clauses
}

func pairwiseAMOGroups(groups map[[2]string][]int) [][]int {
	var clauses [][]int
	for _, vars := range groups {
		clauses = append(clauses, pairwiseAMO(vars)...)
	}
	return clauses
}

// pairwiseAMO emits (¬v_i ∨ ¬v_j) for every distinct pair in vars.
func pairwiseAMO(vars []int) [][]int {
	if len(vars) < 2 {
		return nil
	}
	sorted := append([]int(nil), vars...)
	sort.Ints(sorted)
	var clauses [][]int
	for i := 0; i < len(sorted); i++ {
		for j := i + 1; j < len(sorted); j++ {
			clauses = append(clauses, []int{-sorted[i], -sorted[j]})
		}
	}
	return clauses
}

// studentOverlapClauses implements §4.5.3: for every student with both a
// class-group and study-group membership, and for every pair of study
// groups sharing a student, cross-AMO for every slot.
func studentOverlapClauses(in *SchedulingInput, enc *Encoding) [][]int {
	varsByGroupSlot := func(g GroupID) map[SlotID][]int {
		byslot := make(map[SlotID][]int)
		for v, t := range enc.TupleOf {
			if t.Group == g {
				byslot[t.Slot] = append(byslot[t.Slot], v)
			}
		}
		return byslot
	}

	cache := make(map[GroupID]map[SlotID][]int)
	groupVars := func(g GroupID) map[SlotID][]int {
		if m, ok := cache[g]; ok {
			return m
		}
		m := varsByGroupSlot(g)
		cache[g] = m
		return m
	}

	var clauses [][]int

	seenClassStudy := make(map[[2]GroupID]struct{})
	seenStudyStudy := make(map[[2]GroupID]struct{})

	for _, m := range in.Memberships {
		for _, sg := range m.StudyGroupIDs {
			key := [2]GroupID{m.ClassGroupID, sg}
			if _, done := seenClassStudy[key]; done {
				continue
			}
			seenClassStudy[key] = struct{}{}
			clauses = append(clauses, crossAMOAllSlots(groupVars(m.ClassGroupID), groupVars(sg))...)
		}

		for i := 0; i < len(m.StudyGroupIDs); i++ {
			for j := i + 1; j < len(m.StudyGroupIDs); j++ {
				a, b := m.StudyGroupIDs[i], m.StudyGroupIDs[j]
				key := orderedPair(a, b)
				if _, done := seenStudyStudy[key]; done {
					continue
				}
				seenStudyStudy[key] = struct{}{}
				clauses = append(clauses, crossAMOAllSlots(groupVars(a), groupVars(b))...)
			}
		}
	}

	return clauses
}

func orderedPair(a, b GroupID) [2]GroupID {
	if a <= b {
		return [2]GroupID{a, b}
	}
	return [2]GroupID{b, a}
}

// crossAMOAllSlots emits (¬v_i ∨ ¬v_j) for every v_i in byslotA[s] paired
// with every v_j in byslotB[s], across every slot s.
func crossAMOAllSlots(byslotA, byslotB map[SlotID][]int) [][]int {
	var clauses [][]int
	for slot, varsA := range byslotA {
		varsB, ok := byslotB[slot]
		if !ok {
			continue
		}
		sortedA := append([]int(nil), varsA...)
		sort.Ints(sortedA)
		sortedB := append([]int(nil), varsB...)
		sort.Ints(sortedB)
		for _, vi := range sortedA {
			for _, vj := range sortedB {
				clauses = append(clauses, []int{-vi, -vj})
			}
		}
	}
	return clauses
}

// roomCapacityClauses implements §4.5.4: unit-clause pruning of every
// variable whose room cannot seat its group.
func roomCapacityClauses(in *SchedulingInput, enc *Encoding) [][]int {
	var clauses [][]int
	for v, t := range enc.TupleOf {
		kind := enc.GroupKind[t.Group]
		var size uint
		if kind == GroupStudy {
			size = in.StudySize[t.Group]
		} else {
			size = in.ClassSize[t.Group]
		}
		if in.RoomCapacity[t.Room] < size {
			clauses = append(clauses, []int{-v})
		}
	}
	return clauses
}

// customConstraintClauses implements §4.5.5: teacher_unavailable and
// room_unavailable forbid the matching variables outright; every other kind
// is accepted and ignored.
func customConstraintClauses(in *SchedulingInput, enc *Encoding) [][]int {
	var clauses [][]int

	for _, c := range in.CustomConstraints {
		if teacherID, slots, ok := c.ParseTeacherUnavailable(); ok {
			forbidden := make(map[SlotID]struct{}, len(slots))
			for _, s := range slots {
				forbidden[s] = struct{}{}
			}
			for v, t := range enc.TupleOf {
				if t.Teacher != teacherID {
					continue
				}
				if _, bad := forbidden[t.Slot]; bad {
					clauses = append(clauses, []int{-v})
				}
			}
			continue
		}
		if roomID, slots, ok := c.ParseRoomUnavailable(); ok {
			forbidden := make(map[SlotID]struct{}, len(slots))
			for _, s := range slots {
				forbidden[s] = struct{}{}
			}
			for v, t := range enc.TupleOf {
				if t.Room != roomID {
					continue
				}
				if _, bad := forbidden[t.Slot]; bad {
					clauses = append(clauses, []int{-v})
				}
			}
		}
		// Other kinds (class_preference, study_group_preference,
		// consecutive_preference, and anything unrecognized) are accepted
		// but emit no clause.
	}

	return clauses
}

func teacherKey(id TeacherID) string {
	return strconv.Itoa(int(id))
}
