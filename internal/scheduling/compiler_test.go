package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompile_RoomCapacityPruning(t *testing.T) {
	in := simpleInput()
	in.ClassSize["g1"] = 100 // exceeds every room's capacity
	enc := Encode(in)
	cnf := Compile(in, enc, Full)

	unitNegations := 0
	for _, c := range cnf.Clauses {
		if len(c) == 1 && c[0] < 0 {
			unitNegations++
		}
	}
	assert.Equal(t, len(enc.TupleOf), unitNegations, "every variable must be pruned")
}

func TestCompile_CustomConstraintTeacherUnavailable(t *testing.T) {
	in := simpleInput()
	in.CustomConstraints = []CustomConstraint{
		{Kind: TeacherUnavailable, Payload: []byte(`{"teacher_id":1,"time_slot_ids":["s1"]}`)},
	}
	enc := Encode(in)
	cnf := Compile(in, enc, Full)

	forbiddenVar := enc.VarOf[Tuple{Lesson: "L1", Teacher: 1, Group: "g1", Room: "r1", Slot: "s1"}]
	require.NotZero(t, forbiddenVar)

	found := false
	for _, c := range cnf.Clauses {
		if len(c) == 1 && c[0] == -forbiddenVar {
			found = true
		}
	}
	assert.True(t, found, "teacher_unavailable must forbid the matching variable")
}

func TestCompile_UnknownCustomConstraintIsNoOp(t *testing.T) {
	in := simpleInput()
	without := Compile(in, Encode(in), Full)

	in.CustomConstraints = []CustomConstraint{
		{Kind: ClassPreference, Payload: []byte(`{"anything":true}`)},
	}
	with := Compile(in, Encode(in), Full)

	assert.Equal(t, len(without.Clauses), len(with.Clauses))
}

func TestCompile_SkipConflictsOmitsResourceExclusivity(t *testing.T) {
	in := &SchedulingInput{
		Lessons:  []Lesson{{ID: "L1"}, {ID: "L2"}},
		Teachers: []Teacher{{ID: 1, Teachable: map[LessonID]struct{}{"L1": {}, "L2": {}}}},
		ClassGroups: []Group{
			{ID: "cg1", Kind: GroupClass, Size: 10},
			{ID: "cg2", Kind: GroupClass, Size: 10},
		},
		Rooms:     []Room{{ID: "r1", Capacity: 30}},
		TimeSlots: []TimeSlot{{ID: "s1"}},
		TeacherTeachable: map[TeacherID]map[LessonID]struct{}{
			1: {"L1": {}, "L2": {}},
		},
		DemandClass: map[GroupID]map[LessonID]uint{
			"cg1": {"L1": 1},
			"cg2": {"L2": 1},
		},
		RoomCapacity: map[RoomID]uint{"r1": 30},
		ClassSize:    map[GroupID]uint{"cg1": 10, "cg2": 10},
	}

	full := Compile(in, Encode(in), Full)
	skip := Compile(in, Encode(in), SkipConflicts)

	assert.Greater(t, len(full.Clauses), len(skip.Clauses), "full mode must add resource-exclusivity clauses skip_conflicts omits")
}

func TestPairwiseAMO_CoversEveryDistinctPair(t *testing.T) {
	clauses := pairwiseAMO([]int{3, 1, 2})
	require.Len(t, clauses, 3)
	for _, c := range clauses {
		require.Len(t, c, 2)
		assert.Less(t, c[0], 0)
		assert.Less(t, c[1], 0)
	}
}
