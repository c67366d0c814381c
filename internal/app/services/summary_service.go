package services

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/ekinoz/classtrack/internal/app/repositories"
	"github.com/ekinoz/classtrack/internal/pkg/apperrors"
	"github.com/ekinoz/classtrack/internal/pkg/extract"
	"github.com/ekinoz/classtrack/internal/pkg/filestorage"
	"github.com/ekinoz/classtrack/internal/pkg/logger"
	"github.com/ekinoz/classtrack/internal/pkg/summarizer"
)

// SummaryService defines the interface for note summarization
type SummaryService interface {
	Summarize(ctx context.Context, userID int64, attendanceID uuid.UUID) (string, error)
}

// summaryServiceImpl implements the SummaryService interface
type summaryServiceImpl struct {
	attendanceRepo repositories.AttendanceRepository
	fileStorage    filestorage.FileStorage
	completer      summarizer.Completer
	group          singleflight.Group
}

// NewSummaryService creates a new summary service instance
func NewSummaryService(
	attendanceRepo repositories.AttendanceRepository,
	fileStorage filestorage.FileStorage,
	completer summarizer.Completer,
) SummaryService {
	return &summaryServiceImpl{
		attendanceRepo: attendanceRepo,
		fileStorage:    fileStorage,
		completer:      completer,
	}
}

// Summarize returns the cached summary for an attendance record, generating
// and caching one from the uploaded note when absent. Concurrent calls for
// the same record are collapsed into a single in-flight generation, so the
// external service is invoked at most once per cache fill. Extraction and
// external-service failures are never cached and are safe to retry.
func (s *summaryServiceImpl) Summarize(ctx context.Context, userID int64, attendanceID uuid.UUID) (string, error) {
	key := fmt.Sprintf("%d:%s", userID, attendanceID)
	result, err, _ := s.group.Do(key, func() (interface{}, error) {
		return s.summarize(ctx, userID, attendanceID)
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

func (s *summaryServiceImpl) summarize(ctx context.Context, userID int64, attendanceID uuid.UUID) (string, error) {
	attendance, err := s.attendanceRepo.GetByID(ctx, userID, attendanceID)
	if err != nil {
		return "", err
	}

	if attendance.Summary != "" {
		return attendance.Summary, nil
	}

	if attendance.NotePath == "" {
		return "", apperrors.ErrNoteNotUploaded
	}

	content, err := s.fileStorage.ReadFile(attendance.NotePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", apperrors.NewResourceNotFoundError("note file not found")
		}
		return "", apperrors.NewCustomError(apperrors.ErrNoteUnreadable, err.Error())
	}

	text, err := extract.FromFile(attendance.NotePath, content)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnsupportedFormat) {
			return "", err
		}
		return "", apperrors.NewCustomError(apperrors.ErrNoteUnreadable, err.Error())
	}

	summary, err := summarizer.SummarizeText(ctx, s.completer, text)
	if err != nil {
		logger.Error().Err(err).Str("attendanceId", attendanceID.String()).Msg("Summarization service call failed")
		return "", apperrors.NewCustomError(apperrors.ErrSummarizationFailed, "summarization service unavailable")
	}

	if err := s.attendanceRepo.SetSummary(ctx, attendance.ID, summary); err != nil {
		return "", fmt.Errorf("error caching summary: %w", err)
	}

	return summary, nil
}
