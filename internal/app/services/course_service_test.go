package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekinoz/classtrack/internal/app/models/dto"
	"github.com/ekinoz/classtrack/internal/pkg/apperrors"
)

func TestCourseService(t *testing.T) {
	ctx := context.Background()

	t.Run("create uses default color when omitted", func(t *testing.T) {
		store := newMemStore()
		svc := NewCourseService(store.courseRepo(), "#4F46E5")

		course, err := svc.CreateCourse(ctx, testUserID, dto.CreateCourseRequest{Name: "Algebra"})
		require.NoError(t, err)
		assert.Equal(t, "Algebra", course.Name)
		assert.Equal(t, "#4F46E5", course.ColorHex)
	})

	t.Run("create keeps explicit color", func(t *testing.T) {
		store := newMemStore()
		svc := NewCourseService(store.courseRepo(), "#4F46E5")

		course, err := svc.CreateCourse(ctx, testUserID, dto.CreateCourseRequest{Name: "Algebra", ColorHex: "#FF0000"})
		require.NoError(t, err)
		assert.Equal(t, "#FF0000", course.ColorHex)
	})

	t.Run("blank name is a validation error", func(t *testing.T) {
		store := newMemStore()
		svc := NewCourseService(store.courseRepo(), "#4F46E5")

		_, err := svc.CreateCourse(ctx, testUserID, dto.CreateCourseRequest{Name: "   "})
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperrors.ErrValidationFailed))
	})

	t.Run("list returns only the owner's courses", func(t *testing.T) {
		store := newMemStore()
		svc := NewCourseService(store.courseRepo(), "#4F46E5")

		_, err := svc.CreateCourse(ctx, testUserID, dto.CreateCourseRequest{Name: "Mine"})
		require.NoError(t, err)
		_, err = svc.CreateCourse(ctx, testUserID+1, dto.CreateCourseRequest{Name: "Theirs"})
		require.NoError(t, err)

		courses, err := svc.ListCourses(ctx, testUserID)
		require.NoError(t, err)
		require.Len(t, courses, 1)
		assert.Equal(t, "Mine", courses[0].Name)
	})

	t.Run("delete cascades to lectures and attendances", func(t *testing.T) {
		store := newMemStore()
		svc := NewCourseService(store.courseRepo(), "#4F46E5")
		schedule := NewScheduleService(store.courseRepo(), store.lectureRepo(), store.attendanceRepo(), "#4F46E5")

		_, err := schedule.ImportTimetable(ctx, testUserID, []dto.SlotRequest{validSlotRequest()})
		require.NoError(t, err)

		var courseID uuid.UUID
		for id := range store.courses {
			courseID = id
		}
		require.NoError(t, svc.DeleteCourse(ctx, testUserID, courseID))
		assert.Empty(t, store.lectures)
		assert.Empty(t, store.attendances)
	})

	t.Run("delete of unknown course is not found", func(t *testing.T) {
		store := newMemStore()
		svc := NewCourseService(store.courseRepo(), "#4F46E5")

		err := svc.DeleteCourse(ctx, testUserID, uuid.New())
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperrors.ErrCourseNotFound))
	})
}
