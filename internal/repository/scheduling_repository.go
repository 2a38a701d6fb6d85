// Package repository implements the scheduling core's persistence
// collaborator against PostgreSQL.
package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sat-scheduler/internal/scheduling"
)

// SchedulingRepository implements scheduling.DataSource over a batched
// relational store. Every method issues exactly one query per collection;
// none of them loop per-entity the way the original constraint builder's
// per-teacher lesson lookup did.
type SchedulingRepository struct {
	db *sqlx.DB
}

// NewSchedulingRepository constructs a SchedulingRepository over db.
func NewSchedulingRepository(db *sqlx.DB) *SchedulingRepository {
	return &SchedulingRepository{db: db}
}

type lessonRow struct {
	ID string `db:"id"`
}

func (r *SchedulingRepository) Lessons(ctx context.Context, institutionID string) ([]scheduling.Lesson, error) {
	var rows []lessonRow
	const q = `SELECT id FROM lessons WHERE institution_id = $1`
	if err := r.db.SelectContext(ctx, &rows, q, institutionID); err != nil {
		return nil, fmt.Errorf("lessons: %w", err)
	}
	out := make([]scheduling.Lesson, 0, len(rows))
	for _, row := range rows {
		out = append(out, scheduling.Lesson{ID: scheduling.LessonID(row.ID)})
	}
	return out, nil
}

type teacherRow struct {
	ID int `db:"id"`
}

func (r *SchedulingRepository) Teachers(ctx context.Context, institutionID string) ([]scheduling.TeacherID, error) {
	var rows []teacherRow
	const q = `SELECT id FROM teachers WHERE institution_id = $1`
	if err := r.db.SelectContext(ctx, &rows, q, institutionID); err != nil {
		return nil, fmt.Errorf("teachers: %w", err)
	}
	out := make([]scheduling.TeacherID, 0, len(rows))
	for _, row := range rows {
		out = append(out, scheduling.TeacherID(row.ID))
	}
	return out, nil
}

type groupRow struct {
	ID   string `db:"id"`
	Size uint   `db:"student_count"`
}

func (r *SchedulingRepository) ClassGroups(ctx context.Context, institutionID string) ([]scheduling.GroupRecord, error) {
	var rows []groupRow
	const q = `SELECT id, student_count FROM class_groups WHERE institution_id = $1`
	if err := r.db.SelectContext(ctx, &rows, q, institutionID); err != nil {
		return nil, fmt.Errorf("class groups: %w", err)
	}
	return toGroupRecords(rows), nil
}

func (r *SchedulingRepository) StudyGroups(ctx context.Context, institutionID string) ([]scheduling.GroupRecord, error) {
	var rows []groupRow
	const q = `SELECT id, 0 AS student_count FROM study_groups WHERE institution_id = $1`
	if err := r.db.SelectContext(ctx, &rows, q, institutionID); err != nil {
		return nil, fmt.Errorf("study groups: %w", err)
	}
	return toGroupRecords(rows), nil
}

func toGroupRecords(rows []groupRow) []scheduling.GroupRecord {
	out := make([]scheduling.GroupRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, scheduling.GroupRecord{ID: scheduling.GroupID(row.ID), Size: row.Size})
	}
	return out
}

type roomRow struct {
	ID       string `db:"id"`
	Capacity uint   `db:"capacity"`
}

func (r *SchedulingRepository) Rooms(ctx context.Context, institutionID string) ([]scheduling.Room, error) {
	var rows []roomRow
	const q = `SELECT id, capacity FROM rooms WHERE institution_id = $1`
	if err := r.db.SelectContext(ctx, &rows, q, institutionID); err != nil {
		return nil, fmt.Errorf("rooms: %w", err)
	}
	out := make([]scheduling.Room, 0, len(rows))
	for _, row := range rows {
		out = append(out, scheduling.Room{ID: scheduling.RoomID(row.ID), Capacity: row.Capacity})
	}
	return out, nil
}

type timeSlotRow struct {
	ID string `db:"id"`
}

func (r *SchedulingRepository) TimeSlots(ctx context.Context, institutionID string) ([]scheduling.TimeSlot, error) {
	var rows []timeSlotRow
	const q = `SELECT id FROM time_slots WHERE institution_id = $1`
	if err := r.db.SelectContext(ctx, &rows, q, institutionID); err != nil {
		return nil, fmt.Errorf("time slots: %w", err)
	}
	out := make([]scheduling.TimeSlot, 0, len(rows))
	for _, row := range rows {
		out = append(out, scheduling.TimeSlot{ID: scheduling.SlotID(row.ID)})
	}
	return out, nil
}

type capabilityRow struct {
	TeacherID int    `db:"teacher_id"`
	LessonID  string `db:"lesson_id"`
}

// TeacherCapabilities fetches every (teacher, lesson) link in a single join
// query, rather than looping per teacher.
func (r *SchedulingRepository) TeacherCapabilities(ctx context.Context, institutionID string) ([]scheduling.TeacherCapabilityLink, error) {
	var rows []capabilityRow
	const q = `
		SELECT tl.teacher_id, tl.lesson_id
		FROM teacher_lessons tl
		JOIN teachers t ON t.id = tl.teacher_id
		WHERE t.institution_id = $1`
	if err := r.db.SelectContext(ctx, &rows, q, institutionID); err != nil {
		return nil, fmt.Errorf("teacher capabilities: %w", err)
	}
	out := make([]scheduling.TeacherCapabilityLink, 0, len(rows))
	for _, row := range rows {
		out = append(out, scheduling.TeacherCapabilityLink{
			TeacherID: scheduling.TeacherID(row.TeacherID),
			LessonID:  scheduling.LessonID(row.LessonID),
		})
	}
	return out, nil
}

type demandRow struct {
	GroupID  string `db:"group_id"`
	LessonID string `db:"lesson_id"`
	Count    uint   `db:"count"`
}

func (r *SchedulingRepository) ClassGroupDemand(ctx context.Context, institutionID string) ([]scheduling.DemandRecord, error) {
	var rows []demandRow
	const q = `
		SELECT cgd.group_id, cgd.lesson_id, cgd.count
		FROM class_group_lesson_demand cgd
		JOIN class_groups g ON g.id = cgd.group_id
		WHERE g.institution_id = $1`
	if err := r.db.SelectContext(ctx, &rows, q, institutionID); err != nil {
		return nil, fmt.Errorf("class group demand: %w", err)
	}
	return toDemandRecords(rows), nil
}

func (r *SchedulingRepository) StudyGroupDemand(ctx context.Context, institutionID string) ([]scheduling.DemandRecord, error) {
	var rows []demandRow
	const q = `
		SELECT sgd.group_id, sgd.lesson_id, sgd.count
		FROM study_group_lesson_demand sgd
		JOIN study_groups g ON g.id = sgd.group_id
		WHERE g.institution_id = $1`
	if err := r.db.SelectContext(ctx, &rows, q, institutionID); err != nil {
		return nil, fmt.Errorf("study group demand: %w", err)
	}
	return toDemandRecords(rows), nil
}

func toDemandRecords(rows []demandRow) []scheduling.DemandRecord {
	out := make([]scheduling.DemandRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, scheduling.DemandRecord{
			GroupID:  scheduling.GroupID(row.GroupID),
			LessonID: scheduling.LessonID(row.LessonID),
			Count:    row.Count,
		})
	}
	return out
}

type membershipRow struct {
	StudentID    string `db:"student_id"`
	ClassGroupID string `db:"class_group_id"`
	StudyGroupID string `db:"study_group_id"`
}

// StudyGroupMemberships fetches every student's study-group membership rows
// in a single join query, rather than looping per study group.
func (r *SchedulingRepository) StudyGroupMemberships(ctx context.Context, institutionID string) ([]scheduling.MembershipRecord, error) {
	var rows []membershipRow
	const q = `
		SELECT m.student_id, m.class_group_id, m.study_group_id
		FROM study_group_memberships m
		JOIN study_groups g ON g.id = m.study_group_id
		WHERE g.institution_id = $1`
	if err := r.db.SelectContext(ctx, &rows, q, institutionID); err != nil {
		return nil, fmt.Errorf("study group memberships: %w", err)
	}
	out := make([]scheduling.MembershipRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, scheduling.MembershipRecord{
			StudentID:    row.StudentID,
			ClassGroupID: scheduling.GroupID(row.ClassGroupID),
			StudyGroupID: scheduling.GroupID(row.StudyGroupID),
		})
	}
	return out, nil
}

type constraintRow struct {
	Kind     string          `db:"kind"`
	Priority int             `db:"priority"`
	Payload  json.RawMessage `db:"payload"`
}

func (r *SchedulingRepository) CustomConstraints(ctx context.Context, institutionID string) ([]scheduling.CustomConstraint, error) {
	var rows []constraintRow
	const q = `SELECT kind, priority, payload FROM custom_constraints WHERE institution_id = $1`
	if err := r.db.SelectContext(ctx, &rows, q, institutionID); err != nil {
		return nil, fmt.Errorf("custom constraints: %w", err)
	}
	out := make([]scheduling.CustomConstraint, 0, len(rows))
	for _, row := range rows {
		out = append(out, scheduling.CustomConstraint{
			Kind:     scheduling.CustomConstraintKind(row.Kind),
			Priority: row.Priority,
			Payload:  row.Payload,
		})
	}
	return out, nil
}
