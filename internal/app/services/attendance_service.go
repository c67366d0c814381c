package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/ekinoz/classtrack/internal/app/models"
	"github.com/ekinoz/classtrack/internal/app/models/dto"
	"github.com/ekinoz/classtrack/internal/app/repositories"
	"github.com/ekinoz/classtrack/internal/pkg/apperrors"
	"github.com/ekinoz/classtrack/internal/pkg/extract"
	"github.com/ekinoz/classtrack/internal/pkg/filestorage"
	"github.com/ekinoz/classtrack/internal/pkg/logger"
)

// AttendanceService defines the interface for attendance lifecycle operations
type AttendanceService interface {
	ListAttendances(ctx context.Context, userID int64, filter repositories.AttendanceFilter) ([]dto.AttendanceResponse, error)
	CreateAttendance(ctx context.Context, userID int64, req dto.CreateAttendanceRequest) (*dto.AttendanceResponse, error)
	ToggleAttendance(ctx context.Context, userID int64, lectureID uuid.UUID, attended *bool) (*dto.AttendanceResponse, error)
	UpdateAttendance(ctx context.Context, userID int64, id uuid.UUID, attended *bool, note *multipart.FileHeader) (*dto.AttendanceResponse, error)
}

// attendanceServiceImpl implements the AttendanceService interface
type attendanceServiceImpl struct {
	attendanceRepo repositories.AttendanceRepository
	lectureRepo    repositories.LectureRepository
	fileStorage    filestorage.FileStorage
}

// NewAttendanceService creates a new attendance service instance
func NewAttendanceService(
	attendanceRepo repositories.AttendanceRepository,
	lectureRepo repositories.LectureRepository,
	fileStorage filestorage.FileStorage,
) AttendanceService {
	return &attendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		lectureRepo:    lectureRepo,
		fileStorage:    fileStorage,
	}
}

// ListAttendances retrieves the user's attendance records, optionally
// narrowed to one lecture or to courses matching a name fragment.
func (s *attendanceServiceImpl) ListAttendances(ctx context.Context, userID int64, filter repositories.AttendanceFilter) ([]dto.AttendanceResponse, error) {
	attendances, err := s.attendanceRepo.List(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("error retrieving attendance records: %w", err)
	}

	responses := make([]dto.AttendanceResponse, 0, len(attendances))
	for i := range attendances {
		responses = append(responses, newAttendanceResponse(&attendances[i]))
	}
	return responses, nil
}

// CreateAttendance resolves the attendance record for a lecture the user
// owns, creating it when absent, and applies the requested attended flag.
func (s *attendanceServiceImpl) CreateAttendance(ctx context.Context, userID int64, req dto.CreateAttendanceRequest) (*dto.AttendanceResponse, error) {
	attended := req.Attended
	return s.ToggleAttendance(ctx, userID, req.LectureID, &attended)
}

// ToggleAttendance sets the attended flag on the user's record for one
// lecture. The record is created on first toggle. A lecture outside the
// user's courses is reported as not found.
func (s *attendanceServiceImpl) ToggleAttendance(ctx context.Context, userID int64, lectureID uuid.UUID, attended *bool) (*dto.AttendanceResponse, error) {
	if attended == nil {
		return nil, apperrors.NewInvalidInputError("attended must be a boolean")
	}

	lecture, err := s.lectureRepo.GetOwnedByID(ctx, userID, lectureID)
	if err != nil {
		return nil, err
	}

	attendance, _, err := s.attendanceRepo.GetOrCreate(ctx, userID, lecture.ID)
	if err != nil {
		return nil, fmt.Errorf("error resolving attendance record: %w", err)
	}

	if attendance.Attended != *attended {
		attendance, err = s.attendanceRepo.SetAttended(ctx, attendance.ID, *attended)
		if err != nil {
			return nil, fmt.Errorf("error updating attendance flag: %w", err)
		}
	}

	resp := newAttendanceResponse(attendance)
	return &resp, nil
}

// UpdateAttendance applies a partial update to one attendance record: an
// attended flag, a replacement note, or both. Storing a new note clears any
// cached summary so the next summarize call regenerates it.
func (s *attendanceServiceImpl) UpdateAttendance(ctx context.Context, userID int64, id uuid.UUID, attended *bool, note *multipart.FileHeader) (*dto.AttendanceResponse, error) {
	attendance, err := s.attendanceRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if note != nil {
		if !extract.Supported(note.Filename) {
			return nil, apperrors.NewCustomError(apperrors.ErrUnsupportedFormat,
				fmt.Sprintf("unsupported note format %q", filepath.Ext(note.Filename)))
		}

		reference, err := s.fileStorage.SaveFile(note)
		if err != nil {
			return nil, fmt.Errorf("error storing note file: %w", err)
		}

		previous := attendance.NotePath
		attendance, err = s.attendanceRepo.SetNote(ctx, attendance.ID, reference)
		if err != nil {
			return nil, fmt.Errorf("error updating note reference: %w", err)
		}

		if previous != "" {
			if err := s.fileStorage.DeleteFile(previous); err != nil {
				logger.Warn().Err(err).Str("reference", previous).Msg("Failed to remove replaced note file")
			}
		}
	}

	if attended != nil && attendance.Attended != *attended {
		attendance, err = s.attendanceRepo.SetAttended(ctx, attendance.ID, *attended)
		if err != nil {
			return nil, fmt.Errorf("error updating attendance flag: %w", err)
		}
	}

	resp := newAttendanceResponse(attendance)
	return &resp, nil
}

func newAttendanceResponse(attendance *models.Attendance) dto.AttendanceResponse {
	resp := dto.AttendanceResponse{
		ID:        attendance.ID,
		LectureID: attendance.LectureID,
		Attended:  attendance.Attended,
		HasNotes:  attendance.NotePath != "",
		Summary:   attendance.Summary,
		CreatedAt: attendance.CreatedAt,
		UpdatedAt: attendance.UpdatedAt,
	}
	if resp.HasNotes {
		resp.NoteFilename = filepath.Base(attendance.NotePath)
	}
	return resp
}
