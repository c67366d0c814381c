package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents an authenticated account. Users own courses and attendance
// records; the Course owner and the attendee coincide in this system.
type User struct {
	ID           int64     `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

// Course represents a course owned by a user. Course names are deliberately
// not unique per owner; the importer deduplicates by get-or-create on
// (user, name).
type Course struct {
	ID        uuid.UUID `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"-"`
	Name      string    `db:"name" json:"name"`
	ColorHex  string    `db:"color_hex" json:"colorHex"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// Lecture is one dated occurrence of a course. Timestamps are stored in UTC.
// (course_id, start_dt) is the natural dedup key: two occurrences of the same
// course starting at the same instant are the same lecture.
type Lecture struct {
	ID        uuid.UUID `db:"id" json:"id"`
	CourseID  uuid.UUID `db:"course_id" json:"courseId"`
	StartDT   time.Time `db:"start_dt" json:"startDt"`
	EndDT     time.Time `db:"end_dt" json:"endDt"`
	Location  string    `db:"location" json:"location"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// Attendance is a per-user record for one lecture: at most one row per
// (user, lecture). Summary is a cache derived from the uploaded note; writing
// a new note reference must clear it.
type Attendance struct {
	ID        uuid.UUID `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"-"`
	LectureID uuid.UUID `db:"lecture_id" json:"lectureId"`
	Attended  bool      `db:"attended" json:"attended"`
	NotePath  string    `db:"note_path" json:"notePath,omitempty"`
	Summary   string    `db:"summary" json:"summary,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// LectureStatus is the derived label of a lecture for one user. It is
// computed, never stored.
type LectureStatus string

const (
	StatusSummarized LectureStatus = "summarized"
	StatusAttended   LectureStatus = "attended"
	StatusUpcoming   LectureStatus = "upcoming"
	StatusMissed     LectureStatus = "missed"
)

// Weekdays are the canonical weekday names accepted in slot input, Monday
// first to match the imported timetable convention.
var Weekdays = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
