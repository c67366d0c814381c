package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/ekinoz/classtrack/internal/app/models"
)

func TestProjectStatus(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	past := &models.Lecture{ID: uuid.New(), StartDT: now.Add(-48 * time.Hour)}
	future := &models.Lecture{ID: uuid.New(), StartDT: now.Add(48 * time.Hour)}

	t.Run("summary wins over everything", func(t *testing.T) {
		att := &models.Attendance{ID: uuid.New(), Attended: false, Summary: "notes digest"}
		assert.Equal(t, models.StatusSummarized, ProjectStatus(past, att, now).Status)
		assert.Equal(t, models.StatusSummarized, ProjectStatus(future, att, now).Status)

		att.Attended = true
		assert.Equal(t, models.StatusSummarized, ProjectStatus(future, att, now).Status)
	})

	t.Run("attended wins over scheduling", func(t *testing.T) {
		att := &models.Attendance{ID: uuid.New(), Attended: true}
		assert.Equal(t, models.StatusAttended, ProjectStatus(past, att, now).Status)
		// Pre-marked attendance on a future lecture is attended, not upcoming.
		assert.Equal(t, models.StatusAttended, ProjectStatus(future, att, now).Status)
	})

	t.Run("future lecture without attendance is upcoming", func(t *testing.T) {
		assert.Equal(t, models.StatusUpcoming, ProjectStatus(future, nil, now).Status)

		att := &models.Attendance{ID: uuid.New(), Attended: false}
		assert.Equal(t, models.StatusUpcoming, ProjectStatus(future, att, now).Status)
	})

	t.Run("past lecture without attendance is missed", func(t *testing.T) {
		assert.Equal(t, models.StatusMissed, ProjectStatus(past, nil, now).Status)

		att := &models.Attendance{ID: uuid.New(), Attended: false}
		assert.Equal(t, models.StatusMissed, ProjectStatus(past, att, now).Status)
	})

	t.Run("start exactly at now is not upcoming", func(t *testing.T) {
		lecture := &models.Lecture{ID: uuid.New(), StartDT: now}
		assert.Equal(t, models.StatusMissed, ProjectStatus(lecture, nil, now).Status)
	})

	t.Run("derived note flags", func(t *testing.T) {
		att := &models.Attendance{ID: uuid.New(), NotePath: "ab12_week3.pdf"}
		proj := ProjectStatus(past, att, now)
		assert.True(t, proj.HasNotes)
		assert.Equal(t, "ab12_week3.pdf", proj.NoteFilename)
		assert.False(t, proj.HasSummary)
		assert.NotNil(t, proj.AttendanceID)
		assert.Equal(t, att.ID, *proj.AttendanceID)

		bare := ProjectStatus(past, nil, now)
		assert.False(t, bare.HasNotes)
		assert.Empty(t, bare.NoteFilename)
		assert.Nil(t, bare.AttendanceID)
	})
}
