package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func simpleInput() *SchedulingInput {
	return &SchedulingInput{
		Lessons:     []Lesson{{ID: "L1"}},
		Teachers:    []Teacher{{ID: 1, Teachable: map[LessonID]struct{}{"L1": {}}}},
		ClassGroups: []Group{{ID: "g1", Kind: GroupClass, Size: 10}},
		Rooms:       []Room{{ID: "r1", Capacity: 30}},
		TimeSlots:   []TimeSlot{{ID: "s1"}, {ID: "s2"}},
		TeacherTeachable: map[TeacherID]map[LessonID]struct{}{
			1: {"L1": {}},
		},
		DemandClass:  map[GroupID]map[LessonID]uint{"g1": {"L1": 1}},
		RoomCapacity: map[RoomID]uint{"r1": 30},
		ClassSize:    map[GroupID]uint{"g1": 10},
	}
}

func TestEncode_AllocatesOneVariablePerFeasibleTuple(t *testing.T) {
	in := simpleInput()
	enc := Encode(in)

	// 1 lesson x 1 teacher x 1 group x 1 room x 2 slots = 2 tuples.
	assert.Len(t, enc.TupleOf, 2)
	assert.Equal(t, 3, enc.NextVar)
}

func TestEncode_VariablesStartAtOne(t *testing.T) {
	in := simpleInput()
	enc := Encode(in)

	for v := range enc.TupleOf {
		assert.GreaterOrEqual(t, v, 1)
	}
}

func TestEncode_SkipsUnteachableAndUndemanded(t *testing.T) {
	in := simpleInput()
	in.Lessons = append(in.Lessons, Lesson{ID: "L2"}) // no teacher, no demand
	enc := Encode(in)

	assert.Len(t, enc.TupleOf, 2, "L2 contributes no variables: untaught and undemanded")
}

func TestEncode_DeterministicGivenDeterministicInput(t *testing.T) {
	in := simpleInput()
	enc1 := Encode(in)
	enc2 := Encode(in)

	require.Equal(t, enc1.NextVar, enc2.NextVar)
	require.Equal(t, len(enc1.TupleOf), len(enc2.TupleOf))
	for v, tup := range enc1.TupleOf {
		tup2, ok := enc2.TupleOf[v]
		require.True(t, ok)
		assert.Equal(t, tup, tup2)
	}
}

func TestVariablesFor_SortedAscending(t *testing.T) {
	in := simpleInput()
	enc := Encode(in)

	vars := enc.VariablesFor("L1", "g1")
	require.Len(t, vars, 2)
	assert.Less(t, vars[0], vars[1])
}
