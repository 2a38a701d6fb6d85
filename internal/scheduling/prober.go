package scheduling

// Probe is the Infeasibility Prober (C4). For every (lesson, group) demand
// pair it decides statically whether any satisfying placement could ever
// exist, without invoking the solver. It returns a non-nil
// *InfeasibleError iff at least one pair fails.
func Probe(in *SchedulingInput, enc *Encoding) *InfeasibleError {
	var pairs []InfeasiblePair

	for _, g := range in.allGroups() {
		demand := in.demandFor(g)
		size := in.sizeFor(g)
		for _, l := range in.Lessons {
			n := demand[l.ID]
			if n == 0 {
				continue
			}

			vars := enc.VariablesFor(l.ID, g.ID)

			switch {
			case len(vars) == 0:
				pairs = append(pairs, InfeasiblePair{
					LessonID: l.ID, GroupID: g.ID,
					Reason: "no assigned teacher can teach this lesson for this group",
				})
			case uint(len(vars)) < n:
				pairs = append(pairs, InfeasiblePair{
					LessonID: l.ID, GroupID: g.ID,
					Reason: "need more placements than valid (teacher, room, slot) combinations exist",
				})
			case !anyRoomHasCapacity(enc, vars, in.RoomCapacity, size):
				pairs = append(pairs, InfeasiblePair{
					LessonID: l.ID, GroupID: g.ID,
					Reason: "no room has sufficient capacity",
				})
			}
		}
	}

	if len(pairs) == 0 {
		return nil
	}
	return &InfeasibleError{Pairs: pairs}
}

func anyRoomHasCapacity(enc *Encoding, vars []int, roomCapacity map[RoomID]uint, size uint) bool {
	for _, v := range vars {
		if roomCapacity[enc.TupleOf[v].Room] >= size {
			return true
		}
	}
	return false
}
