// Package scheduling implements the SAT-based timetable generation core:
// data assembly, structural validation, variable encoding, infeasibility
// probing, constraint compilation, SAT solving, and decoding.
package scheduling

import "encoding/json"

// LessonID, RoomID, SlotID and GroupID are opaque institution-scoped
// identifiers. TeacherID is a small integer; the encoder indexes teachers
// directly rather than hashing a string key.
type (
	LessonID  string
	TeacherID int
	GroupID   string
	RoomID    string
	SlotID    string
)

// GroupKind discriminates the two Group variants without dynamic dispatch.
type GroupKind int

const (
	GroupClass GroupKind = iota
	GroupStudy
)

func (k GroupKind) String() string {
	if k == GroupStudy {
		return "study"
	}
	return "class"
}

// Lesson carries no SAT-relevant metadata beyond its identity.
type Lesson struct {
	ID LessonID
}

// Teacher is capability-bearing: Teachable lists every lesson this teacher
// may be assigned.
type Teacher struct {
	ID        TeacherID
	Teachable map[LessonID]struct{}
}

// CanTeach reports whether the teacher is capable of teaching l.
func (t Teacher) CanTeach(l LessonID) bool {
	_, ok := t.Teachable[l]
	return ok
}

// Group is the tagged union ClassGroup | StudyGroup. Kind is the
// discriminant; callers branch on it rather than relying on distinct types.
type Group struct {
	ID   GroupID
	Kind GroupKind
	Size uint
}

// Room has a fixed seating capacity checked against group size.
type Room struct {
	ID       RoomID
	Capacity uint
}

// TimeSlot carries no ordering relevant to the SAT layer.
type TimeSlot struct {
	ID SlotID
}

// CustomConstraintKind enumerates the recognized constraint payload shapes.
type CustomConstraintKind string

const (
	TeacherUnavailable   CustomConstraintKind = "teacher_unavailable"
	RoomUnavailable      CustomConstraintKind = "room_unavailable"
	ClassPreference      CustomConstraintKind = "class_preference"
	StudyGroupPreference CustomConstraintKind = "study_group_preference"
	ConsecutivePreference CustomConstraintKind = "consecutive_preference"
)

// CustomConstraint carries a free-form payload; only TeacherUnavailable and
// RoomUnavailable affect the compiled clauses. Every other kind, including
// ones this core has never heard of, is accepted and ignored.
type CustomConstraint struct {
	Kind     CustomConstraintKind
	Priority int
	Payload  json.RawMessage
}

// teacherUnavailablePayload is the wire shape of a TeacherUnavailable
// constraint's payload.
type teacherUnavailablePayload struct {
	TeacherID   TeacherID `json:"teacher_id"`
	TimeSlotIDs []SlotID  `json:"time_slot_ids"`
}

// roomUnavailablePayload is the wire shape of a RoomUnavailable constraint's
// payload.
type roomUnavailablePayload struct {
	RoomID      RoomID   `json:"room_id"`
	TimeSlotIDs []SlotID `json:"time_slot_ids"`
}

// ParseTeacherUnavailable decodes c.Payload, returning ok=false if c is not
// a TeacherUnavailable constraint or the payload doesn't match the shape.
func (c CustomConstraint) ParseTeacherUnavailable() (teacherID TeacherID, slots []SlotID, ok bool) {
	if c.Kind != TeacherUnavailable {
		return 0, nil, false
	}
	var p teacherUnavailablePayload
	if err := json.Unmarshal(c.Payload, &p); err != nil {
		return 0, nil, false
	}
	return p.TeacherID, p.TimeSlotIDs, true
}

// ParseRoomUnavailable decodes c.Payload, returning ok=false if c is not a
// RoomUnavailable constraint or the payload doesn't match the shape.
func (c CustomConstraint) ParseRoomUnavailable() (roomID RoomID, slots []SlotID, ok bool) {
	if c.Kind != RoomUnavailable {
		return "", nil, false
	}
	var p roomUnavailablePayload
	if err := json.Unmarshal(c.Payload, &p); err != nil {
		return "", nil, false
	}
	return p.RoomID, p.TimeSlotIDs, true
}

// StudentMembership records a student who belongs to one class group and at
// least one study group. Students with no study-group membership, and
// students in only a single class group, never appear here.
type StudentMembership struct {
	StudentID     string
	ClassGroupID  GroupID
	StudyGroupIDs []GroupID
}

// SchedulingInput is the immutable bundle produced by the Data Assembler and
// consumed once by the rest of the pipeline.
type SchedulingInput struct {
	InstitutionID string

	Lessons     []Lesson
	Teachers    []Teacher
	ClassGroups []Group
	StudyGroups []Group
	Rooms       []Room
	TimeSlots   []TimeSlot

	TeacherTeachable map[TeacherID]map[LessonID]struct{}
	DemandClass      map[GroupID]map[LessonID]uint
	DemandStudy      map[GroupID]map[LessonID]uint
	RoomCapacity     map[RoomID]uint
	ClassSize        map[GroupID]uint
	StudySize        map[GroupID]uint
	Memberships      []StudentMembership

	CustomConstraints []CustomConstraint
}

// demandFor returns the demand map matching g's variant.
func (in *SchedulingInput) demandFor(g Group) map[LessonID]uint {
	if g.Kind == GroupStudy {
		return in.DemandStudy[g.ID]
	}
	return in.DemandClass[g.ID]
}

// sizeFor returns the occupancy figure for g.
func (in *SchedulingInput) sizeFor(g Group) uint {
	if g.Kind == GroupStudy {
		return in.StudySize[g.ID]
	}
	return in.ClassSize[g.ID]
}

// allGroups returns class groups followed by study groups, the order C3
// iterates in.
func (in *SchedulingInput) allGroups() []Group {
	all := make([]Group, 0, len(in.ClassGroups)+len(in.StudyGroups))
	all = append(all, in.ClassGroups...)
	all = append(all, in.StudyGroups...)
	return all
}

// ScheduleEntry is one concrete placement in the decoded output. Exactly
// one of ClassGroupID / StudyGroupID is set.
type ScheduleEntry struct {
	LessonID     LessonID
	TeacherID    TeacherID
	RoomID       RoomID
	TimeSlotID   SlotID
	ClassGroupID *GroupID
	StudyGroupID *GroupID
}
