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

// LectureService defines the interface for lecture read operations
type LectureService interface {
	ListLectures(ctx context.Context, userID int64, filter repositories.LectureFilter) ([]dto.LectureStatusResponse, error)
}

// lectureServiceImpl implements the LectureService interface
type lectureServiceImpl struct {
	lectureRepo    repositories.LectureRepository
	attendanceRepo repositories.AttendanceRepository
}

// NewLectureService creates a new lecture service instance
func NewLectureService(
	lectureRepo repositories.LectureRepository,
	attendanceRepo repositories.AttendanceRepository,
) LectureService {
	return &lectureServiceImpl{
		lectureRepo:    lectureRepo,
		attendanceRepo: attendanceRepo,
	}
}

// ListLectures returns the user's lectures in ascending start order, each
// carrying its derived status for the requesting user.
func (s *lectureServiceImpl) ListLectures(ctx context.Context, userID int64, filter repositories.LectureFilter) ([]dto.LectureStatusResponse, error) {
	lectures, err := s.lectureRepo.ListByUser(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("error retrieving lectures: %w", err)
	}

	attendanceByLecture, err := s.attendanceIndex(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	responses := make([]dto.LectureStatusResponse, 0, len(lectures))
	for i := range lectures {
		lwc := &lectures[i]
		attendance := attendanceByLecture[lwc.ID]
		responses = append(responses, newLectureStatusResponse(&lwc.Lecture, lwc.CourseName, attendance, now))
	}

	return responses, nil
}

func (s *lectureServiceImpl) attendanceIndex(ctx context.Context, userID int64) (map[uuid.UUID]*models.Attendance, error) {
	attendances, err := s.attendanceRepo.List(ctx, userID, repositories.AttendanceFilter{})
	if err != nil {
		return nil, fmt.Errorf("error retrieving attendance records: %w", err)
	}

	index := make(map[uuid.UUID]*models.Attendance, len(attendances))
	for i := range attendances {
		index[attendances[i].LectureID] = &attendances[i]
	}
	return index, nil
}
