package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ekinoz/classtrack/internal/app/models/dto"
	"github.com/ekinoz/classtrack/internal/pkg/apperrors"
	"github.com/ekinoz/classtrack/internal/pkg/logger"
)

// HandleAPIError maps domain errors onto the standard error envelope. All
// controller failure paths funnel through here so every error kind gets a
// stable HTTP status and code.
func HandleAPIError(c *gin.Context, err error) {
	detail := buildErrorDetail(err)
	status := statusForError(err)

	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Request failed")
	}

	c.JSON(status, dto.NewErrorResponse(detail))
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrValidationFailed),
		errors.Is(err, apperrors.ErrInvalidInput),
		errors.Is(err, apperrors.ErrUnsupportedFormat),
		errors.Is(err, apperrors.ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrInvalidCredentials),
		errors.Is(err, apperrors.ErrTokenExpired),
		errors.Is(err, apperrors.ErrTokenInvalid),
		errors.Is(err, apperrors.ErrInvalidFormat):
		return http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, apperrors.ErrResourceNotFound),
		errors.Is(err, apperrors.ErrUserNotFound),
		errors.Is(err, apperrors.ErrCourseNotFound),
		errors.Is(err, apperrors.ErrLectureNotFound),
		errors.Is(err, apperrors.ErrAttendanceNotFound),
		errors.Is(err, apperrors.ErrNoteNotUploaded):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrEmailAlreadyExists),
		errors.Is(err, apperrors.ErrUsernameExists):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrNoteUnreadable),
		errors.Is(err, apperrors.ErrSummarizationFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func buildErrorDetail(err error) *dto.ErrorDetail {
	code := codeForError(err)

	message := err.Error()
	if code == dto.ErrorCodeInternalServer {
		// Internal details stay in the log, not the response.
		message = "Internal server error"
	}

	detail := dto.NewErrorDetail(code, message)

	var customErr *apperrors.CustomError
	if errors.As(err, &customErr) {
		if customErr.Field != "" {
			detail = detail.WithField(customErr.Field)
		}
		if customErr.Details != nil {
			detail = detail.WithDetails(customErr.Details)
		}
	}

	return detail
}

func codeForError(err error) dto.ErrorCode {
	switch {
	case errors.Is(err, apperrors.ErrValidationFailed):
		return dto.ErrorCodeValidationFailed
	case errors.Is(err, apperrors.ErrInvalidInput),
		errors.Is(err, apperrors.ErrUnsupportedFormat),
		errors.Is(err, apperrors.ErrBadRequest):
		return dto.ErrorCodeInvalidInput
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return dto.ErrorCodeInvalidCredentials
	case errors.Is(err, apperrors.ErrTokenExpired):
		return dto.ErrorCodeExpiredToken
	case errors.Is(err, apperrors.ErrTokenInvalid),
		errors.Is(err, apperrors.ErrInvalidFormat):
		return dto.ErrorCodeInvalidToken
	case errors.Is(err, apperrors.ErrPermissionDenied):
		return dto.ErrorCodeUnauthorized
	case errors.Is(err, apperrors.ErrResourceNotFound),
		errors.Is(err, apperrors.ErrUserNotFound),
		errors.Is(err, apperrors.ErrCourseNotFound),
		errors.Is(err, apperrors.ErrLectureNotFound),
		errors.Is(err, apperrors.ErrAttendanceNotFound),
		errors.Is(err, apperrors.ErrNoteNotUploaded):
		return dto.ErrorCodeResourceNotFound
	case errors.Is(err, apperrors.ErrEmailAlreadyExists),
		errors.Is(err, apperrors.ErrUsernameExists):
		return dto.ErrorCodeResourceAlreadyExists
	case errors.Is(err, apperrors.ErrNoteUnreadable),
		errors.Is(err, apperrors.ErrSummarizationFailed):
		return dto.ErrorCodeExternalServiceError
	default:
		return dto.ErrorCodeInternalServer
	}
}
