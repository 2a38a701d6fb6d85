package scheduling

import "context"

// stubSource is a hand-built DataSource fixture, mirroring the narrow
// stub-collaborator style the teacher's service tests use instead of a
// generic mock framework.
type stubSource struct {
	lessons     []Lesson
	teachers    []TeacherID
	classGroups []GroupRecord
	studyGroups []GroupRecord
	rooms       []Room
	timeSlots   []TimeSlot
	caps        []TeacherCapabilityLink
	classDemand []DemandRecord
	studyDemand []DemandRecord
	memberships []MembershipRecord
	constraints []CustomConstraint
}

func (s *stubSource) Lessons(ctx context.Context, institutionID string) ([]Lesson, error) {
	return s.lessons, nil
}

func (s *stubSource) Teachers(ctx context.Context, institutionID string) ([]TeacherID, error) {
	return s.teachers, nil
}

func (s *stubSource) ClassGroups(ctx context.Context, institutionID string) ([]GroupRecord, error) {
	return s.classGroups, nil
}

func (s *stubSource) StudyGroups(ctx context.Context, institutionID string) ([]GroupRecord, error) {
	return s.studyGroups, nil
}

func (s *stubSource) Rooms(ctx context.Context, institutionID string) ([]Room, error) {
	return s.rooms, nil
}

func (s *stubSource) TimeSlots(ctx context.Context, institutionID string) ([]TimeSlot, error) {
	return s.timeSlots, nil
}

func (s *stubSource) TeacherCapabilities(ctx context.Context, institutionID string) ([]TeacherCapabilityLink, error) {
	return s.caps, nil
}

func (s *stubSource) ClassGroupDemand(ctx context.Context, institutionID string) ([]DemandRecord, error) {
	return s.classDemand, nil
}

func (s *stubSource) StudyGroupDemand(ctx context.Context, institutionID string) ([]DemandRecord, error) {
	return s.studyDemand, nil
}

func (s *stubSource) StudyGroupMemberships(ctx context.Context, institutionID string) ([]MembershipRecord, error) {
	return s.memberships, nil
}

func (s *stubSource) CustomConstraints(ctx context.Context, institutionID string) ([]CustomConstraint, error) {
	return s.constraints, nil
}
