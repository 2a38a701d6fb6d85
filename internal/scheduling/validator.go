package scheduling

// Validate performs the Validator's (C2) quick structural checks on a
// SchedulingInput, returning a non-nil *InvalidInputError naming the first
// failing reason, or nil if none apply. It never invokes the solver.
//
// It deliberately does not enforce |time_slots| >= sum(demand): parallel
// groups may share a slot when no resource conflicts arise.
func Validate(in *SchedulingInput) *InvalidInputError {
	switch {
	case len(in.Lessons) == 0:
		return &InvalidInputError{Reason: "no_lessons"}
	case len(in.Teachers) == 0:
		return &InvalidInputError{Reason: "no_teachers"}
	case len(in.ClassGroups) == 0 && len(in.StudyGroups) == 0:
		return &InvalidInputError{Reason: "no_groups"}
	case len(in.Rooms) == 0:
		return &InvalidInputError{Reason: "no_rooms"}
	case len(in.TimeSlots) == 0:
		return &InvalidInputError{Reason: "no_time_slots"}
	}

	if !anyTeacherCanTeach(in) {
		return &InvalidInputError{Reason: "no_teachers_with_lessons"}
	}

	totalDemand := sumDemand(in.DemandClass) + sumDemand(in.DemandStudy)
	if totalDemand == 0 {
		return &InvalidInputError{Reason: "no_demand"}
	}

	if !anyDemandIsTeachable(in) {
		return &InvalidInputError{Reason: "no_teachable_demand"}
	}

	return nil
}

func anyTeacherCanTeach(in *SchedulingInput) bool {
	for _, set := range in.TeacherTeachable {
		if len(set) > 0 {
			return true
		}
	}
	return false
}

func sumDemand(demand map[GroupID]map[LessonID]uint) uint {
	var total uint
	for _, byLesson := range demand {
		for _, n := range byLesson {
			total += n
		}
	}
	return total
}

// anyDemandIsTeachable reports whether at least one (lesson, group) pair
// present in either demand map is covered by some teacher's capability.
func anyDemandIsTeachable(in *SchedulingInput) bool {
	teachable := make(map[LessonID]struct{})
	for _, set := range in.TeacherTeachable {
		for l := range set {
			teachable[l] = struct{}{}
		}
	}

	for _, byLesson := range in.DemandClass {
		for l, n := range byLesson {
			if n == 0 {
				continue
			}
			if _, ok := teachable[l]; ok {
				return true
			}
		}
	}
	for _, byLesson := range in.DemandStudy {
		for l, n := range byLesson {
			if n == 0 {
				continue
			}
			if _, ok := teachable[l]; ok {
				return true
			}
		}
	}
	return false
}
