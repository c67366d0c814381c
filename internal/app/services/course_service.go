package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ekinoz/classtrack/internal/app/models"
	"github.com/ekinoz/classtrack/internal/app/models/dto"
	"github.com/ekinoz/classtrack/internal/app/repositories"
	"github.com/ekinoz/classtrack/internal/pkg/apperrors"
)

// CourseService defines the interface for course operations
type CourseService interface {
	CreateCourse(ctx context.Context, userID int64, req dto.CreateCourseRequest) (*dto.CourseResponse, error)
	ListCourses(ctx context.Context, userID int64) ([]dto.CourseResponse, error)
	DeleteCourse(ctx context.Context, userID int64, id uuid.UUID) error
}

// courseServiceImpl implements the CourseService interface
type courseServiceImpl struct {
	courseRepo   repositories.CourseRepository
	defaultColor string
}

// NewCourseService creates a new course service instance
func NewCourseService(courseRepo repositories.CourseRepository, defaultColor string) CourseService {
	return &courseServiceImpl{
		courseRepo:   courseRepo,
		defaultColor: defaultColor,
	}
}

// CreateCourse creates a new course. An omitted color falls back to the
// configured default.
func (s *courseServiceImpl) CreateCourse(ctx context.Context, userID int64, req dto.CreateCourseRequest) (*dto.CourseResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("name", "name cannot be empty")
	}

	color := req.ColorHex
	if color == "" {
		color = s.defaultColor
	}

	course := &models.Course{
		UserID:   userID,
		Name:     name,
		ColorHex: color,
	}
	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, fmt.Errorf("error creating course: %w", err)
	}

	resp := newCourseResponse(course)
	return &resp, nil
}

// ListCourses retrieves all courses owned by the user
func (s *courseServiceImpl) ListCourses(ctx context.Context, userID int64) ([]dto.CourseResponse, error) {
	courses, err := s.courseRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving courses: %w", err)
	}

	responses := make([]dto.CourseResponse, 0, len(courses))
	for i := range courses {
		responses = append(responses, newCourseResponse(&courses[i]))
	}
	return responses, nil
}

// DeleteCourse removes a course; its lectures and their attendance records
// go with it.
func (s *courseServiceImpl) DeleteCourse(ctx context.Context, userID int64, id uuid.UUID) error {
	err := s.courseRepo.Delete(ctx, userID, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrCourseNotFound) {
			return apperrors.ErrCourseNotFound
		}
		return fmt.Errorf("error deleting course: %w", err)
	}
	return nil
}

func newCourseResponse(course *models.Course) dto.CourseResponse {
	return dto.CourseResponse{
		ID:       course.ID,
		Name:     course.Name,
		ColorHex: course.ColorHex,
	}
}
