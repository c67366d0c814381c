package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekinoz/classtrack/internal/app/models/dto"
	"github.com/ekinoz/classtrack/internal/pkg/apperrors"
)

const testUserID int64 = 7

func newScheduleFixture() (*memStore, ScheduleService) {
	store := newMemStore()
	svc := NewScheduleService(store.courseRepo(), store.lectureRepo(), store.attendanceRepo(), "#4F46E5")
	return store, svc
}

func TestImportTimetable(t *testing.T) {
	ctx := context.Background()

	t.Run("creates one lecture per occurrence", func(t *testing.T) {
		store, svc := newScheduleFixture()

		created, err := svc.ImportTimetable(ctx, testUserID, []dto.SlotRequest{validSlotRequest()})
		require.NoError(t, err)
		assert.Equal(t, 3, created)
		assert.Len(t, store.lectures, 3)
		assert.Len(t, store.courses, 1)
		// Every occurrence has an attendance row ready for toggling.
		assert.Len(t, store.attendances, 3)
		for _, att := range store.attendances {
			assert.False(t, att.Attended)
			assert.Equal(t, testUserID, att.UserID)
		}
	})

	t.Run("re-import is idempotent", func(t *testing.T) {
		store, svc := newScheduleFixture()

		created, err := svc.ImportTimetable(ctx, testUserID, []dto.SlotRequest{validSlotRequest()})
		require.NoError(t, err)
		assert.Equal(t, 3, created)

		created, err = svc.ImportTimetable(ctx, testUserID, []dto.SlotRequest{validSlotRequest()})
		require.NoError(t, err)
		assert.Equal(t, 0, created)
		assert.Len(t, store.lectures, 3)
		assert.Len(t, store.attendances, 3)
	})

	t.Run("re-import keeps existing lecture fields", func(t *testing.T) {
		store, svc := newScheduleFixture()

		_, err := svc.ImportTimetable(ctx, testUserID, []dto.SlotRequest{validSlotRequest()})
		require.NoError(t, err)

		moved := validSlotRequest()
		moved.EndTime = "11:00"
		moved.Location = "Room 9"
		created, err := svc.ImportTimetable(ctx, testUserID, []dto.SlotRequest{moved})
		require.NoError(t, err)
		assert.Equal(t, 0, created)
		for _, lecture := range store.lectures {
			assert.Equal(t, 10, lecture.EndDT.Hour())
			assert.Equal(t, "Room 4", lecture.Location)
		}
	})

	t.Run("one invalid slot rejects the batch before mutation", func(t *testing.T) {
		store, svc := newScheduleFixture()

		bad := validSlotRequest()
		bad.Weekday = "Funday"
		created, err := svc.ImportTimetable(ctx, testUserID, []dto.SlotRequest{validSlotRequest(), bad})
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperrors.ErrValidationFailed))
		assert.Equal(t, 0, created)
		assert.Empty(t, store.courses)
		assert.Empty(t, store.lectures)
		assert.Empty(t, store.attendances)
	})

	t.Run("two slots sharing a course name create one course", func(t *testing.T) {
		store, svc := newScheduleFixture()

		second := validSlotRequest()
		second.Weekday = "Wed"
		created, err := svc.ImportTimetable(ctx, testUserID, []dto.SlotRequest{validSlotRequest(), second})
		require.NoError(t, err)
		assert.Equal(t, 5, created) // three Mondays + two Wednesdays
		assert.Len(t, store.courses, 1)
	})

	t.Run("implicit course gets the default color", func(t *testing.T) {
		store, svc := newScheduleFixture()

		_, err := svc.ImportTimetable(ctx, testUserID, []dto.SlotRequest{validSlotRequest()})
		require.NoError(t, err)
		for _, course := range store.courses {
			assert.Equal(t, "#4F46E5", course.ColorHex)
		}
	})
}
