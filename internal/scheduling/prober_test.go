package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProbe_PassesWhenFeasible(t *testing.T) {
	in := simpleInput()
	enc := Encode(in)
	assert.Nil(t, Probe(in, enc))
}

func TestProbe_NoTeacherCanTeach(t *testing.T) {
	in := simpleInput()
	in.DemandClass["g1"]["L1"] = 0
	in.Lessons = append(in.Lessons, Lesson{ID: "L2"})
	in.DemandClass["g1"]["L2"] = 1
	enc := Encode(in)

	err := Probe(in, enc)
	require.NotNil(t, err)
	require.Len(t, err.Pairs, 1)
	assert.Contains(t, err.Pairs[0].Reason, "no assigned teacher")
}

func TestProbe_NotEnoughPlacements(t *testing.T) {
	in := simpleInput()
	in.DemandClass["g1"]["L1"] = 3 // only 1 teacher x 1 room x 2 slots = 2 combos
	enc := Encode(in)

	err := Probe(in, enc)
	require.NotNil(t, err)
	require.Len(t, err.Pairs, 1)
	assert.Contains(t, err.Pairs[0].Reason, "more placements")
}

func TestProbe_NoRoomCapacity(t *testing.T) {
	in := simpleInput()
	in.ClassSize["g1"] = 100
	enc := Encode(in)

	err := Probe(in, enc)
	require.NotNil(t, err)
	require.Len(t, err.Pairs, 1)
	assert.Contains(t, err.Pairs[0].Reason, "no room has sufficient capacity")
}
