package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/ekinoz/classtrack/internal/app/models"
)

// LectureResponse is the public view of a lecture. CourseName duplicates the
// course link for readability in list views.
type LectureResponse struct {
	ID         uuid.UUID `json:"id"`
	CourseID   uuid.UUID `json:"course"`
	CourseName string    `json:"courseName"`
	StartDT    time.Time `json:"startDt"`
	EndDT      time.Time `json:"endDt"`
	Location   string    `json:"location"`
}

// LectureStatusResponse is a lecture with its per-user derived status.
type LectureStatusResponse struct {
	LectureResponse
	Status       models.LectureStatus `json:"status"`
	Attended     bool                 `json:"attended"`
	AttendanceID *uuid.UUID           `json:"attendanceId,omitempty"`
	HasNotes     bool                 `json:"hasNotes"`
	NoteFilename string               `json:"noteFilename,omitempty"`
	HasSummary   bool                 `json:"hasSummary"`
}
