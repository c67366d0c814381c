package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ekinoz/classtrack/internal/app/models"
	"github.com/ekinoz/classtrack/internal/app/models/dto"
	"github.com/ekinoz/classtrack/internal/app/repositories"
)

// DashboardService defines the interface for the per-course roll-up view
type DashboardService interface {
	Dashboard(ctx context.Context, userID int64) (*dto.DashboardResponse, error)
}

// dashboardServiceImpl implements the DashboardService interface
type dashboardServiceImpl struct {
	courseRepo     repositories.CourseRepository
	lectureRepo    repositories.LectureRepository
	attendanceRepo repositories.AttendanceRepository
}

// NewDashboardService creates a new dashboard service instance
func NewDashboardService(
	courseRepo repositories.CourseRepository,
	lectureRepo repositories.LectureRepository,
	attendanceRepo repositories.AttendanceRepository,
) DashboardService {
	return &dashboardServiceImpl{
		courseRepo:     courseRepo,
		lectureRepo:    lectureRepo,
		attendanceRepo: attendanceRepo,
	}
}

// Dashboard rolls up every course of the user: its lectures in ascending
// start order with projected status, and the attendance percentage. A course
// without lectures reports exactly zero percent.
func (s *dashboardServiceImpl) Dashboard(ctx context.Context, userID int64) (*dto.DashboardResponse, error) {
	courses, err := s.courseRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving courses: %w", err)
	}

	now := time.Now().UTC()
	resp := &dto.DashboardResponse{
		Courses: make([]dto.CourseDashboardResponse, 0, len(courses)),
	}

	for i := range courses {
		course := &courses[i]
		courseResp, err := s.buildCourse(ctx, userID, course, now)
		if err != nil {
			return nil, err
		}
		resp.Courses = append(resp.Courses, *courseResp)
	}

	return resp, nil
}

func (s *dashboardServiceImpl) buildCourse(ctx context.Context, userID int64, course *models.Course, now time.Time) (*dto.CourseDashboardResponse, error) {
	lectures, err := s.lectureRepo.ListByCourse(ctx, course.ID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving lectures for course %s: %w", course.ID, err)
	}

	attendances, err := s.attendanceRepo.ListByCourse(ctx, userID, course.ID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving attendance for course %s: %w", course.ID, err)
	}

	attendedCount := 0
	attendanceByLecture := make(map[uuid.UUID]*models.Attendance, len(attendances))
	for i := range attendances {
		attendanceByLecture[attendances[i].LectureID] = &attendances[i]
		if attendances[i].Attended {
			attendedCount++
		}
	}

	lectureResponses := make([]dto.LectureStatusResponse, 0, len(lectures))
	for i := range lectures {
		lecture := &lectures[i]
		lectureResponses = append(lectureResponses,
			newLectureStatusResponse(lecture, course.Name, attendanceByLecture[lecture.ID], now))
	}

	pct := 0.0
	if len(lectures) > 0 {
		pct = 100 * float64(attendedCount) / float64(len(lectures))
	}

	return &dto.CourseDashboardResponse{
		ID:            course.ID,
		Name:          course.Name,
		ColorHex:      course.ColorHex,
		AttendancePct: pct,
		Lectures:      lectureResponses,
	}, nil
}
