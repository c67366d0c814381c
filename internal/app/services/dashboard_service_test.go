package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekinoz/classtrack/internal/app/models"
	"github.com/ekinoz/classtrack/internal/app/models/dto"
)

func newDashboardFixture() (*memStore, DashboardService, ScheduleService, AttendanceService) {
	store := newMemStore()
	dashboard := NewDashboardService(store.courseRepo(), store.lectureRepo(), store.attendanceRepo())
	schedule := NewScheduleService(store.courseRepo(), store.lectureRepo(), store.attendanceRepo(), "#4F46E5")
	attendance := NewAttendanceService(store.attendanceRepo(), store.lectureRepo(), newMemFileStorage())
	return store, dashboard, schedule, attendance
}

func TestDashboard(t *testing.T) {
	ctx := context.Background()

	t.Run("course without lectures reports zero percent", func(t *testing.T) {
		store, dashboard, _, _ := newDashboardFixture()
		courseID := uuid.New()
		store.courses[courseID] = &models.Course{
			ID:        courseID,
			UserID:    testUserID,
			Name:      "Empty",
			CreatedAt: time.Now().UTC(),
		}

		resp, err := dashboard.Dashboard(ctx, testUserID)
		require.NoError(t, err)
		require.Len(t, resp.Courses, 1)
		assert.Equal(t, 0.0, resp.Courses[0].AttendancePct)
		assert.Empty(t, resp.Courses[0].Lectures)
	})

	t.Run("percentage is attended over total", func(t *testing.T) {
		_, dashboard, schedule, attendance := newDashboardFixture()

		created, err := schedule.ImportTimetable(ctx, testUserID, []dto.SlotRequest{validSlotRequest()})
		require.NoError(t, err)
		require.Equal(t, 3, created)

		lectures, err := dashboard.Dashboard(ctx, testUserID)
		require.NoError(t, err)
		require.Len(t, lectures.Courses, 1)
		require.Len(t, lectures.Courses[0].Lectures, 3)

		// Attend one of the three lectures.
		_, err = attendance.ToggleAttendance(ctx, testUserID,
			lectures.Courses[0].Lectures[0].ID, boolPtr(true))
		require.NoError(t, err)

		resp, err := dashboard.Dashboard(ctx, testUserID)
		require.NoError(t, err)
		require.Len(t, resp.Courses, 1)
		assert.InDelta(t, 100.0/3.0, resp.Courses[0].AttendancePct, 0.001)
	})

	t.Run("lectures are in ascending start order with status", func(t *testing.T) {
		_, dashboard, schedule, _ := newDashboardFixture()

		_, err := schedule.ImportTimetable(ctx, testUserID, []dto.SlotRequest{validSlotRequest()})
		require.NoError(t, err)

		resp, err := dashboard.Dashboard(ctx, testUserID)
		require.NoError(t, err)
		require.Len(t, resp.Courses, 1)

		lectures := resp.Courses[0].Lectures
		require.Len(t, lectures, 3)
		for i := 1; i < len(lectures); i++ {
			assert.True(t, lectures[i-1].StartDT.Before(lectures[i].StartDT))
		}
		for _, lecture := range lectures {
			// The imported 2024 dates are long past and unattended.
			assert.Equal(t, models.StatusMissed, lecture.Status)
			assert.Equal(t, "CS101", lecture.CourseName)
		}
	})

	t.Run("other users' courses are invisible", func(t *testing.T) {
		_, dashboard, schedule, _ := newDashboardFixture()

		_, err := schedule.ImportTimetable(ctx, testUserID+1, []dto.SlotRequest{validSlotRequest()})
		require.NoError(t, err)

		resp, err := dashboard.Dashboard(ctx, testUserID)
		require.NoError(t, err)
		assert.Empty(t, resp.Courses)
	})
}
