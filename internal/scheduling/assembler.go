package scheduling

import (
	"context"
	"fmt"
)

// Assembler is the Data Assembler (C1): it loads institution-scoped
// entities from the persistence collaborator in a single pass per
// collection and produces an immutable SchedulingInput.
type Assembler struct {
	source DataSource
}

// NewAssembler constructs an Assembler over the given persistence
// collaborator.
func NewAssembler(source DataSource) *Assembler {
	return &Assembler{source: source}
}

// Assemble implements build(institution_id) -> SchedulingInput. Every
// collection is fetched with one round trip; there is no per-entity loop
// query anywhere in this method.
func (a *Assembler) Assemble(ctx context.Context, institutionID string) (*SchedulingInput, error) {
	lessons, err := a.source.Lessons(ctx, institutionID)
	if err != nil {
		return nil, fmt.Errorf("assemble: lessons: %w", err)
	}

	teacherIDs, err := a.source.Teachers(ctx, institutionID)
	if err != nil {
		return nil, fmt.Errorf("assemble: teachers: %w", err)
	}

	classGroupRecords, err := a.source.ClassGroups(ctx, institutionID)
	if err != nil {
		return nil, fmt.Errorf("assemble: class groups: %w", err)
	}

	studyGroupRecords, err := a.source.StudyGroups(ctx, institutionID)
	if err != nil {
		return nil, fmt.Errorf("assemble: study groups: %w", err)
	}

	rooms, err := a.source.Rooms(ctx, institutionID)
	if err != nil {
		return nil, fmt.Errorf("assemble: rooms: %w", err)
	}

	timeSlots, err := a.source.TimeSlots(ctx, institutionID)
	if err != nil {
		return nil, fmt.Errorf("assemble: time slots: %w", err)
	}

	capabilities, err := a.source.TeacherCapabilities(ctx, institutionID)
	if err != nil {
		return nil, fmt.Errorf("assemble: teacher capabilities: %w", err)
	}

	classDemand, err := a.source.ClassGroupDemand(ctx, institutionID)
	if err != nil {
		return nil, fmt.Errorf("assemble: class group demand: %w", err)
	}

	studyDemand, err := a.source.StudyGroupDemand(ctx, institutionID)
	if err != nil {
		return nil, fmt.Errorf("assemble: study group demand: %w", err)
	}

	memberships, err := a.source.StudyGroupMemberships(ctx, institutionID)
	if err != nil {
		return nil, fmt.Errorf("assemble: study group memberships: %w", err)
	}

	constraints, err := a.source.CustomConstraints(ctx, institutionID)
	if err != nil {
		return nil, fmt.Errorf("assemble: custom constraints: %w", err)
	}

	in := &SchedulingInput{
		InstitutionID:     institutionID,
		Lessons:           lessons,
		Rooms:             rooms,
		TimeSlots:         timeSlots,
		TeacherTeachable:  make(map[TeacherID]map[LessonID]struct{}, len(teacherIDs)),
		DemandClass:       make(map[GroupID]map[LessonID]uint),
		DemandStudy:       make(map[GroupID]map[LessonID]uint),
		RoomCapacity:      make(map[RoomID]uint, len(rooms)),
		ClassSize:         make(map[GroupID]uint, len(classGroupRecords)),
		StudySize:         make(map[GroupID]uint, len(studyGroupRecords)),
		CustomConstraints: constraints,
	}

	in.Teachers = make([]Teacher, 0, len(teacherIDs))
	for _, id := range teacherIDs {
		in.TeacherTeachable[id] = make(map[LessonID]struct{})
	}
	for _, link := range capabilities {
		set, ok := in.TeacherTeachable[link.TeacherID]
		if !ok {
			set = make(map[LessonID]struct{})
			in.TeacherTeachable[link.TeacherID] = set
		}
		set[link.LessonID] = struct{}{}
	}
	for _, id := range teacherIDs {
		in.Teachers = append(in.Teachers, Teacher{ID: id, Teachable: in.TeacherTeachable[id]})
	}

	in.ClassGroups = make([]Group, 0, len(classGroupRecords))
	for _, rec := range classGroupRecords {
		in.ClassGroups = append(in.ClassGroups, Group{ID: rec.ID, Kind: GroupClass, Size: rec.Size})
		in.ClassSize[rec.ID] = rec.Size
	}

	// study_size(sg) is authoritative from membership, not the record's Size.
	membersOf := make(map[GroupID]map[string]struct{}, len(studyGroupRecords))
	in.StudyGroups = make([]Group, 0, len(studyGroupRecords))
	for _, rec := range studyGroupRecords {
		membersOf[rec.ID] = make(map[string]struct{})
	}
	for _, m := range memberships {
		set, ok := membersOf[m.StudyGroupID]
		if !ok {
			set = make(map[string]struct{})
			membersOf[m.StudyGroupID] = set
		}
		set[m.StudentID] = struct{}{}
	}
	for _, rec := range studyGroupRecords {
		size := uint(len(membersOf[rec.ID]))
		in.StudySize[rec.ID] = size
		in.StudyGroups = append(in.StudyGroups, Group{ID: rec.ID, Kind: GroupStudy, Size: size})
	}

	for _, r := range rooms {
		in.RoomCapacity[r.ID] = r.Capacity
	}

	for _, d := range classDemand {
		set, ok := in.DemandClass[d.GroupID]
		if !ok {
			set = make(map[LessonID]uint)
			in.DemandClass[d.GroupID] = set
		}
		set[d.LessonID] += d.Count
	}
	for _, d := range studyDemand {
		set, ok := in.DemandStudy[d.GroupID]
		if !ok {
			set = make(map[LessonID]uint)
			in.DemandStudy[d.GroupID] = set
		}
		set[d.LessonID] += d.Count
	}

	// Group membership by student so the compiler can walk one student's
	// class/study affiliations without re-scanning the raw rows.
	byStudent := make(map[string]*StudentMembership)
	for _, m := range memberships {
		sm, ok := byStudent[m.StudentID]
		if !ok {
			sm = &StudentMembership{StudentID: m.StudentID, ClassGroupID: m.ClassGroupID}
			byStudent[m.StudentID] = sm
		}
		sm.StudyGroupIDs = append(sm.StudyGroupIDs, m.StudyGroupID)
	}
	in.Memberships = make([]StudentMembership, 0, len(byStudent))
	for _, sm := range byStudent {
		in.Memberships = append(in.Memberships, *sm)
	}

	return in, nil
}
