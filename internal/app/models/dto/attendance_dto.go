package dto

import (
	"time"

	"github.com/google/uuid"
)

// AttendanceResponse is the public view of an attendance record
type AttendanceResponse struct {
	ID           uuid.UUID `json:"id"`
	LectureID    uuid.UUID `json:"lectureId"`
	Attended     bool      `json:"attended"`
	HasNotes     bool      `json:"hasNotes"`
	NoteFilename string    `json:"noteFilename,omitempty"`
	Summary      string    `json:"summary,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// CreateAttendanceRequest is the payload for explicit attendance creation
type CreateAttendanceRequest struct {
	LectureID uuid.UUID `json:"lectureId" binding:"required"`
	Attended  bool      `json:"attended"`
}

// ToggleAttendanceRequest is the payload of the attendance toggle.
// Attended is a pointer so that a missing or non-boolean value is
// distinguishable from false.
type ToggleAttendanceRequest struct {
	Attended *bool `json:"attended"`
}

// SummarizeRequest asks for a summary of one attendance's note
type SummarizeRequest struct {
	AttendanceID uuid.UUID `json:"attendanceId" binding:"required"`
}

// SummarizeResponse carries the generated or cached summary
type SummarizeResponse struct {
	Summary string `json:"summary"`
}
