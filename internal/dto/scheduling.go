// Package dto holds the wire-level request/response shapes for the
// schedule-generation HTTP surface.
package dto

import "github.com/noah-isme/sat-scheduler/internal/scheduling"

// GenerateScheduleRequest is the body of POST .../schedule/generate.
type GenerateScheduleRequest struct {
	TimeoutSeconds int `json:"timeoutSeconds" validate:"required,min=1,max=300"`
}

// ScheduleEntry mirrors scheduling.ScheduleEntry with JSON field names.
type ScheduleEntry struct {
	LessonID     string  `json:"lessonId"`
	TeacherID    int     `json:"teacherId"`
	RoomID       string  `json:"roomId"`
	TimeSlotID   string  `json:"timeSlotId"`
	ClassGroupID *string `json:"classGroupId,omitempty"`
	StudyGroupID *string `json:"studyGroupId,omitempty"`
}

// GenerateScheduleResponse is the 200 body of POST .../schedule/generate.
type GenerateScheduleResponse struct {
	Entries []ScheduleEntry `json:"entries"`
}

// FromScheduleEntries converts the core's output into wire DTOs.
func FromScheduleEntries(entries []scheduling.ScheduleEntry) GenerateScheduleResponse {
	out := make([]ScheduleEntry, 0, len(entries))
	for _, e := range entries {
		dtoEntry := ScheduleEntry{
			LessonID:   string(e.LessonID),
			TeacherID:  int(e.TeacherID),
			RoomID:     string(e.RoomID),
			TimeSlotID: string(e.TimeSlotID),
		}
		if e.ClassGroupID != nil {
			id := string(*e.ClassGroupID)
			dtoEntry.ClassGroupID = &id
		}
		if e.StudyGroupID != nil {
			id := string(*e.StudyGroupID)
			dtoEntry.StudyGroupID = &id
		}
		out = append(out, dtoEntry)
	}
	return GenerateScheduleResponse{Entries: out}
}

// InfeasiblePairDTO mirrors scheduling.InfeasiblePair for the error payload.
type InfeasiblePairDTO struct {
	LessonID string `json:"lessonId"`
	GroupID  string `json:"groupId"`
	Reason   string `json:"reason"`
}
