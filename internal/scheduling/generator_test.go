package scheduling

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestGenerator(src DataSource) *Generator {
	return NewGenerator(NewAssembler(src), zap.NewNop())
}

// E1 — parallel groups, same slot, different resources.
func TestGenerate_E1_ParallelGroupsSameSlotDifferentResources(t *testing.T) {
	for _, variant := range []string{"class", "study"} {
		t.Run(variant, func(t *testing.T) {
			src := &stubSource{
				lessons:  []Lesson{{ID: "L1"}, {ID: "L2"}},
				teachers: []TeacherID{1, 2},
				rooms: []Room{
					{ID: "r1", Capacity: 30},
					{ID: "r2", Capacity: 30},
				},
				timeSlots: []TimeSlot{{ID: "s1"}},
				caps: []TeacherCapabilityLink{
					{TeacherID: 1, LessonID: "L1"},
					{TeacherID: 2, LessonID: "L2"},
				},
			}

			if variant == "class" {
				src.classGroups = []GroupRecord{{ID: "g1", Size: 10}, {ID: "g2", Size: 10}}
				src.classDemand = []DemandRecord{
					{GroupID: "g1", LessonID: "L1", Count: 1},
					{GroupID: "g2", LessonID: "L2", Count: 1},
				}
			} else {
				src.studyGroups = []GroupRecord{{ID: "g1"}, {ID: "g2"}}
				src.studyDemand = []DemandRecord{
					{GroupID: "g1", LessonID: "L1", Count: 1},
					{GroupID: "g2", LessonID: "L2", Count: 1},
				}
				src.memberships = []MembershipRecord{
					{StudentID: "s-g1-1", ClassGroupID: "anchor-1", StudyGroupID: "g1"},
					{StudentID: "s-g1-2", ClassGroupID: "anchor-2", StudyGroupID: "g1"},
					{StudentID: "s-g1-3", ClassGroupID: "anchor-3", StudyGroupID: "g1"},
					{StudentID: "s-g1-4", ClassGroupID: "anchor-4", StudyGroupID: "g1"},
					{StudentID: "s-g1-5", ClassGroupID: "anchor-5", StudyGroupID: "g1"},
					{StudentID: "s-g1-6", ClassGroupID: "anchor-6", StudyGroupID: "g1"},
					{StudentID: "s-g1-7", ClassGroupID: "anchor-7", StudyGroupID: "g1"},
					{StudentID: "s-g1-8", ClassGroupID: "anchor-8", StudyGroupID: "g1"},
					{StudentID: "s-g1-9", ClassGroupID: "anchor-9", StudyGroupID: "g1"},
					{StudentID: "s-g1-10", ClassGroupID: "anchor-10", StudyGroupID: "g1"},
					{StudentID: "s-g2-1", ClassGroupID: "anchor-11", StudyGroupID: "g2"},
					{StudentID: "s-g2-2", ClassGroupID: "anchor-12", StudyGroupID: "g2"},
					{StudentID: "s-g2-3", ClassGroupID: "anchor-13", StudyGroupID: "g2"},
					{StudentID: "s-g2-4", ClassGroupID: "anchor-14", StudyGroupID: "g2"},
					{StudentID: "s-g2-5", ClassGroupID: "anchor-15", StudyGroupID: "g2"},
					{StudentID: "s-g2-6", ClassGroupID: "anchor-16", StudyGroupID: "g2"},
					{StudentID: "s-g2-7", ClassGroupID: "anchor-17", StudyGroupID: "g2"},
					{StudentID: "s-g2-8", ClassGroupID: "anchor-18", StudyGroupID: "g2"},
					{StudentID: "s-g2-9", ClassGroupID: "anchor-19", StudyGroupID: "g2"},
					{StudentID: "s-g2-10", ClassGroupID: "anchor-20", StudyGroupID: "g2"},
				}
			}

			gen := newTestGenerator(src)
			entries, err := gen.Generate(context.Background(), "inst-1", 10)
			require.NoError(t, err)
			require.Len(t, entries, 2)

			for _, e := range entries {
				assert.Equal(t, SlotID("s1"), e.TimeSlotID)
			}
			assert.NotEqual(t, entries[0].TeacherID, entries[1].TeacherID)
			assert.NotEqual(t, entries[0].RoomID, entries[1].RoomID)
		})
	}
}

// E2 — count > 1 forces multiple slots.
func TestGenerate_E2_CountForcesMultipleSlots(t *testing.T) {
	src := &stubSource{
		lessons:     []Lesson{{ID: "L1"}},
		teachers:    []TeacherID{1},
		classGroups: []GroupRecord{{ID: "cg1", Size: 10}},
		rooms: []Room{
			{ID: "r1", Capacity: 30},
			{ID: "r2", Capacity: 30},
		},
		timeSlots: []TimeSlot{{ID: "s1"}, {ID: "s2"}},
		caps:      []TeacherCapabilityLink{{TeacherID: 1, LessonID: "L1"}},
		classDemand: []DemandRecord{
			{GroupID: "cg1", LessonID: "L1", Count: 2},
		},
	}

	gen := newTestGenerator(src)
	entries, err := gen.Generate(context.Background(), "inst-1", 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.NotEqual(t, entries[0].TimeSlotID, entries[1].TimeSlotID)
	for _, e := range entries {
		require.NotNil(t, e.ClassGroupID)
		assert.Equal(t, GroupID("cg1"), *e.ClassGroupID)
		assert.Nil(t, e.StudyGroupID)
	}
}

// E3 — teacher contention -> UNSAT -> ResourceConflict diagnostic.
func TestGenerate_E3_TeacherContentionResourceConflict(t *testing.T) {
	src := &stubSource{
		lessons:     []Lesson{{ID: "L1"}, {ID: "L2"}},
		teachers:    []TeacherID{1},
		classGroups: []GroupRecord{{ID: "cg1", Size: 10}, {ID: "cg2", Size: 10}},
		rooms:       []Room{{ID: "r1", Capacity: 30}},
		timeSlots:   []TimeSlot{{ID: "s1"}},
		caps: []TeacherCapabilityLink{
			{TeacherID: 1, LessonID: "L1"},
			{TeacherID: 1, LessonID: "L2"},
		},
		classDemand: []DemandRecord{
			{GroupID: "cg1", LessonID: "L1", Count: 1},
			{GroupID: "cg2", LessonID: "L2", Count: 1},
		},
	}

	gen := newTestGenerator(src)
	_, err := gen.Generate(context.Background(), "inst-1", 10)
	require.Error(t, err)

	var noSolution *NoSolutionError
	require.ErrorAs(t, err, &noSolution)
	assert.Equal(t, NoSolutionResourceConflict, noSolution.Kind)
	assert.NotContains(t, noSolution.Message, "Constraints may be too restrictive")
}

// E4 — capacity shortfall -> Infeasible before SAT.
func TestGenerate_E4_CapacityShortfallInfeasible(t *testing.T) {
	src := &stubSource{
		lessons:     []Lesson{{ID: "L1"}},
		teachers:    []TeacherID{1},
		classGroups: []GroupRecord{{ID: "cg1", Size: 50}},
		rooms:       []Room{{ID: "r1", Capacity: 20}},
		timeSlots:   []TimeSlot{{ID: "s1"}},
		caps:        []TeacherCapabilityLink{{TeacherID: 1, LessonID: "L1"}},
		classDemand: []DemandRecord{{GroupID: "cg1", LessonID: "L1", Count: 1}},
	}

	gen := newTestGenerator(src)
	_, err := gen.Generate(context.Background(), "inst-1", 10)
	require.Error(t, err)

	var infeasible *InfeasibleError
	require.ErrorAs(t, err, &infeasible)
	require.Len(t, infeasible.Pairs, 1)
	assert.Contains(t, infeasible.Pairs[0].Reason, "no room has sufficient capacity")
}

// E5 — teacher_unavailable honoured.
func TestGenerate_E5_TeacherUnavailableHonoured(t *testing.T) {
	payload := []byte(`{"teacher_id":1,"time_slot_ids":["s1"]}`)
	src := &stubSource{
		lessons:     []Lesson{{ID: "L1"}},
		teachers:    []TeacherID{1},
		classGroups: []GroupRecord{{ID: "cg1", Size: 10}},
		rooms:       []Room{{ID: "r1", Capacity: 30}},
		timeSlots:   []TimeSlot{{ID: "s1"}, {ID: "s2"}},
		caps:        []TeacherCapabilityLink{{TeacherID: 1, LessonID: "L1"}},
		classDemand: []DemandRecord{{GroupID: "cg1", LessonID: "L1", Count: 1}},
		constraints: []CustomConstraint{{Kind: TeacherUnavailable, Payload: payload}},
	}

	gen := newTestGenerator(src)
	entries, err := gen.Generate(context.Background(), "inst-1", 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.NotEqual(t, SlotID("s1"), entries[0].TimeSlotID)
}

// E6 — study-group student overlap forbids co-scheduling.
func TestGenerate_E6_StudyGroupOverlapResourceConflict(t *testing.T) {
	src := &stubSource{
		lessons:     []Lesson{{ID: "L1"}, {ID: "L2"}},
		teachers:    []TeacherID{1, 2},
		studyGroups: []GroupRecord{{ID: "sg_a"}, {ID: "sg_b"}},
		rooms: []Room{
			{ID: "r1", Capacity: 30},
			{ID: "r2", Capacity: 30},
		},
		timeSlots: []TimeSlot{{ID: "s1"}},
		caps: []TeacherCapabilityLink{
			{TeacherID: 1, LessonID: "L1"},
			{TeacherID: 2, LessonID: "L2"},
		},
		studyDemand: []DemandRecord{
			{GroupID: "sg_a", LessonID: "L1", Count: 1},
			{GroupID: "sg_b", LessonID: "L2", Count: 1},
		},
		memberships: []MembershipRecord{
			{StudentID: "x", ClassGroupID: "anchor", StudyGroupID: "sg_a"},
			{StudentID: "x", ClassGroupID: "anchor", StudyGroupID: "sg_b"},
		},
	}

	gen := newTestGenerator(src)
	_, err := gen.Generate(context.Background(), "inst-1", 10)
	require.Error(t, err)

	var noSolution *NoSolutionError
	require.ErrorAs(t, err, &noSolution)
	assert.Equal(t, NoSolutionResourceConflict, noSolution.Kind)
}
