package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekinoz/classtrack/internal/app/models"
	"github.com/ekinoz/classtrack/internal/app/repositories"
	"github.com/ekinoz/classtrack/internal/pkg/apperrors"
)

func boolPtr(v bool) *bool { return &v }

// seedLecture places a course and one lecture for the given owner directly
// into the store.
func seedLecture(store *memStore, ownerID int64) *models.Lecture {
	course := &models.Course{
		ID:        uuid.New(),
		UserID:    ownerID,
		Name:      "CS101",
		ColorHex:  "#4F46E5",
		CreatedAt: time.Now().UTC(),
	}
	store.courses[course.ID] = course

	lecture := &models.Lecture{
		ID:        uuid.New(),
		CourseID:  course.ID,
		StartDT:   time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
		EndDT:     time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
		CreatedAt: time.Now().UTC(),
	}
	store.lectures[lecture.ID] = lecture
	return lecture
}

func TestToggleAttendance(t *testing.T) {
	ctx := context.Background()

	t.Run("creates the record on first toggle", func(t *testing.T) {
		store := newMemStore()
		svc := NewAttendanceService(store.attendanceRepo(), store.lectureRepo(), newMemFileStorage())
		lecture := seedLecture(store, testUserID)

		resp, err := svc.ToggleAttendance(ctx, testUserID, lecture.ID, boolPtr(true))
		require.NoError(t, err)
		assert.True(t, resp.Attended)
		assert.Equal(t, lecture.ID, resp.LectureID)
		assert.Len(t, store.attendances, 1)
	})

	t.Run("repeated toggles keep a single record", func(t *testing.T) {
		store := newMemStore()
		svc := NewAttendanceService(store.attendanceRepo(), store.lectureRepo(), newMemFileStorage())
		lecture := seedLecture(store, testUserID)

		first, err := svc.ToggleAttendance(ctx, testUserID, lecture.ID, boolPtr(true))
		require.NoError(t, err)
		second, err := svc.ToggleAttendance(ctx, testUserID, lecture.ID, boolPtr(false))
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
		assert.False(t, second.Attended)
		assert.Len(t, store.attendances, 1)
	})

	t.Run("lecture of another user's course is not found", func(t *testing.T) {
		store := newMemStore()
		svc := NewAttendanceService(store.attendanceRepo(), store.lectureRepo(), newMemFileStorage())
		lecture := seedLecture(store, testUserID)

		_, err := svc.ToggleAttendance(ctx, testUserID+1, lecture.ID, boolPtr(true))
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperrors.ErrLectureNotFound))
		assert.Empty(t, store.attendances)
	})

	t.Run("missing attended value is invalid input", func(t *testing.T) {
		store := newMemStore()
		svc := NewAttendanceService(store.attendanceRepo(), store.lectureRepo(), newMemFileStorage())
		lecture := seedLecture(store, testUserID)

		_, err := svc.ToggleAttendance(ctx, testUserID, lecture.ID, nil)
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
	})
}

func TestUpdateAttendance(t *testing.T) {
	ctx := context.Background()

	t.Run("attended flag only", func(t *testing.T) {
		store := newMemStore()
		svc := NewAttendanceService(store.attendanceRepo(), store.lectureRepo(), newMemFileStorage())
		lecture := seedLecture(store, testUserID)

		created, err := svc.ToggleAttendance(ctx, testUserID, lecture.ID, boolPtr(false))
		require.NoError(t, err)

		updated, err := svc.UpdateAttendance(ctx, testUserID, created.ID, boolPtr(true), nil)
		require.NoError(t, err)
		assert.True(t, updated.Attended)
	})

	t.Run("unknown attendance id is not found", func(t *testing.T) {
		store := newMemStore()
		svc := NewAttendanceService(store.attendanceRepo(), store.lectureRepo(), newMemFileStorage())

		_, err := svc.UpdateAttendance(ctx, testUserID, uuid.New(), boolPtr(true), nil)
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperrors.ErrAttendanceNotFound))
	})
}

func TestListAttendances(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	svc := NewAttendanceService(store.attendanceRepo(), store.lectureRepo(), newMemFileStorage())
	lecture := seedLecture(store, testUserID)
	other := seedLecture(store, testUserID+1)

	_, err := svc.ToggleAttendance(ctx, testUserID, lecture.ID, boolPtr(true))
	require.NoError(t, err)
	_, err = svc.ToggleAttendance(ctx, testUserID+1, other.ID, boolPtr(true))
	require.NoError(t, err)

	mine, err := svc.ListAttendances(ctx, testUserID, repositories.AttendanceFilter{})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, lecture.ID, mine[0].LectureID)
}
