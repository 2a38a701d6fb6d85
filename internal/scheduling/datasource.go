package scheduling

import "context"

// GroupRecord is the row shape returned for a class or study group: the
// occupancy figure is authoritative for class groups but ignored for study
// groups, whose size the assembler derives from membership instead.
type GroupRecord struct {
	ID   GroupID
	Size uint
}

// TeacherCapabilityLink is one (teacher, lesson) row asserting the teacher
// may teach that lesson.
type TeacherCapabilityLink struct {
	TeacherID TeacherID
	LessonID  LessonID
}

// DemandRecord is one (group, lesson, count) row.
type DemandRecord struct {
	GroupID  GroupID
	LessonID LessonID
	Count    uint
}

// MembershipRecord is one (student, study group) row; ClassGroupID is the
// student's single fixed cohort.
type MembershipRecord struct {
	StudentID    string
	ClassGroupID GroupID
	StudyGroupID GroupID
}

// lessonReader fetches the institution's lesson catalog.
type lessonReader interface {
	Lessons(ctx context.Context, institutionID string) ([]Lesson, error)
}

// teacherReader fetches the institution's teachers, bare of capability.
type teacherReader interface {
	Teachers(ctx context.Context, institutionID string) ([]TeacherID, error)
}

// classGroupReader fetches class groups with their fixed enrollment size.
type classGroupReader interface {
	ClassGroups(ctx context.Context, institutionID string) ([]GroupRecord, error)
}

// studyGroupReader fetches study groups; Size on the returned record is
// ignored by the assembler in favor of derived membership counts.
type studyGroupReader interface {
	StudyGroups(ctx context.Context, institutionID string) ([]GroupRecord, error)
}

// roomReader fetches rooms with capacity.
type roomReader interface {
	Rooms(ctx context.Context, institutionID string) ([]Room, error)
}

// timeSlotReader fetches the institution's time slots.
type timeSlotReader interface {
	TimeSlots(ctx context.Context, institutionID string) ([]TimeSlot, error)
}

// capabilityReader fetches every teacher-lesson capability link in one pass.
type capabilityReader interface {
	TeacherCapabilities(ctx context.Context, institutionID string) ([]TeacherCapabilityLink, error)
}

// demandReader fetches demand rows for either group variant in one pass.
type demandReader interface {
	ClassGroupDemand(ctx context.Context, institutionID string) ([]DemandRecord, error)
	StudyGroupDemand(ctx context.Context, institutionID string) ([]DemandRecord, error)
}

// membershipReader fetches every student's study-group membership rows in
// one pass; students with no study-group membership never appear.
type membershipReader interface {
	StudyGroupMemberships(ctx context.Context, institutionID string) ([]MembershipRecord, error)
}

// constraintReader fetches every custom constraint for the institution.
type constraintReader interface {
	CustomConstraints(ctx context.Context, institutionID string) ([]CustomConstraint, error)
}

// DataSource is the persistence collaborator the Data Assembler (C1) reads
// from. A single batched relational implementation is typical; the core
// only depends on this interface, never on a concrete store.
type DataSource interface {
	lessonReader
	teacherReader
	classGroupReader
	studyGroupReader
	roomReader
	timeSlotReader
	capabilityReader
	demandReader
	membershipReader
	constraintReader
}
