package scheduling

import "sort"

// Tuple identifies one candidate placement: a lesson taught by a teacher to
// a group in a room during a slot.
type Tuple struct {
	Lesson  LessonID
	Teacher TeacherID
	Group   GroupID
	Room    RoomID
	Slot    SlotID
}

// Encoding is the Variable Encoder's (C3) output: a two-way index between
// SAT variables and the tuples they represent, plus the monotonic
// allocation counter later stages (cardinality gadgets) continue from.
type Encoding struct {
	VarOf     map[Tuple]int
	TupleOf   map[int]Tuple
	GroupKind map[GroupID]GroupKind
	NextVar   int
}

// newVar allocates the next variable id and records the tuple it represents.
func (e *Encoding) newVar(t Tuple) int {
	v := e.NextVar
	e.NextVar++
	e.VarOf[t] = v
	e.TupleOf[v] = t
	return v
}

// Encode allocates one Boolean variable per feasible (lesson, teacher,
// group, room, slot) tuple: L must be in teachable(T), and demand[G][L]
// (using the map matching G's variant) must be positive. Variables are
// numbered starting at 1; iteration order is deterministic given
// deterministic input ordering.
func Encode(in *SchedulingInput) *Encoding {
	e := &Encoding{
		VarOf:     make(map[Tuple]int),
		TupleOf:   make(map[int]Tuple),
		GroupKind: make(map[GroupID]GroupKind),
		NextVar:   1,
	}

	for _, g := range in.allGroups() {
		e.GroupKind[g.ID] = g.Kind
	}

	for _, l := range in.Lessons {
		for _, g := range in.allGroups() {
			demand := in.demandFor(g)
			if demand == nil || demand[l.ID] == 0 {
				continue
			}
			for _, t := range in.Teachers {
				if !t.CanTeach(l.ID) {
					continue
				}
				for _, r := range in.Rooms {
					for _, s := range in.TimeSlots {
						e.newVar(Tuple{Lesson: l.ID, Teacher: t.ID, Group: g.ID, Room: r.ID, Slot: s.ID})
					}
				}
			}
		}
	}

	return e
}

// VariablesFor returns every variable whose tuple matches lesson l and
// group g, sorted ascending by variable id so downstream clause
// construction (notably the cardinality gadget, which is order-sensitive)
// is deterministic given deterministic variable numbering.
func (e *Encoding) VariablesFor(l LessonID, g GroupID) []int {
	var vars []int
	for v, t := range e.TupleOf {
		if t.Lesson == l && t.Group == g {
			vars = append(vars, v)
		}
	}
	sort.Ints(vars)
	return vars
}
