package services

import (
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/ekinoz/classtrack/internal/app/models"
	"github.com/ekinoz/classtrack/internal/app/models/dto"
)

// StatusProjection is the derived per-user view of one lecture. It is
// computed on read and never stored.
type StatusProjection struct {
	Status       models.LectureStatus
	Attended     bool
	AttendanceID *uuid.UUID
	HasNotes     bool
	NoteFilename string
	HasSummary   bool
}

// ProjectStatus derives the status label for a lecture and the requesting
// user's attendance record, if any. Precedence is fixed: a cached summary
// wins over the attended flag, which wins over scheduling. An attended
// lecture with a future start is attended, not upcoming.
func ProjectStatus(lecture *models.Lecture, attendance *models.Attendance, now time.Time) StatusProjection {
	var proj StatusProjection

	if attendance != nil {
		id := attendance.ID
		proj.AttendanceID = &id
		proj.Attended = attendance.Attended
		proj.HasNotes = attendance.NotePath != ""
		proj.HasSummary = attendance.Summary != ""
		if proj.HasNotes {
			proj.NoteFilename = filepath.Base(attendance.NotePath)
		}
	}

	switch {
	case proj.HasSummary:
		proj.Status = models.StatusSummarized
	case proj.Attended:
		proj.Status = models.StatusAttended
	case lecture.StartDT.After(now):
		proj.Status = models.StatusUpcoming
	default:
		proj.Status = models.StatusMissed
	}

	return proj
}

// newLectureStatusResponse combines a lecture, its course name and the
// user's attendance into the list-view payload.
func newLectureStatusResponse(lecture *models.Lecture, courseName string, attendance *models.Attendance, now time.Time) dto.LectureStatusResponse {
	proj := ProjectStatus(lecture, attendance, now)
	return dto.LectureStatusResponse{
		LectureResponse: dto.LectureResponse{
			ID:         lecture.ID,
			CourseID:   lecture.CourseID,
			CourseName: courseName,
			StartDT:    lecture.StartDT,
			EndDT:      lecture.EndDT,
			Location:   lecture.Location,
		},
		Status:       proj.Status,
		Attended:     proj.Attended,
		AttendanceID: proj.AttendanceID,
		HasNotes:     proj.HasNotes,
		NoteFilename: proj.NoteFilename,
		HasSummary:   proj.HasSummary,
	}
}
