package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ekinoz/classtrack/internal/app/models/dto"
	"github.com/ekinoz/classtrack/internal/app/repositories"
	"github.com/ekinoz/classtrack/internal/app/services"
	"github.com/ekinoz/classtrack/internal/middleware"
)

// AttendanceController handles attendance lifecycle and summarization
type AttendanceController struct {
	attendanceService services.AttendanceService
	summaryService    services.SummaryService
}

// NewAttendanceController creates a new AttendanceController
func NewAttendanceController(
	attendanceService services.AttendanceService,
	summaryService services.SummaryService,
) *AttendanceController {
	return &AttendanceController{
		attendanceService: attendanceService,
		summaryService:    summaryService,
	}
}

// ListAttendances retrieves the user's attendance records
// @Summary List attendance records
// @Description Retrieves the user's attendance records, optionally filtered by lecture or by a course name fragment
// @Tags attendances
// @Produce json
// @Security BearerAuth
// @Param lectureId query string false "Filter by lecture ID" Format(uuid)
// @Param courseName query string false "Filter by course name fragment (case-insensitive)"
// @Success 200 {object} dto.APIResponse{data=[]dto.AttendanceResponse} "Attendance records retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid filter"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /attendances [get]
func (c *AttendanceController) ListAttendances(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var filter repositories.AttendanceFilter

	if lectureIDStr := ctx.Query("lectureId"); lectureIDStr != "" {
		lectureID, err := uuid.Parse(lectureIDStr)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidInput, "Invalid lectureId").
				WithField("lectureId").
				WithDetails("lectureId must be a valid UUID")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		filter.LectureID = &lectureID
	}
	filter.CourseNameContains = ctx.Query("courseName")

	attendances, err := c.attendanceService.ListAttendances(ctx, userID, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(attendances))
}

// CreateAttendance creates or resolves an attendance record
// @Summary Create an attendance record
// @Description Resolves the attendance record for a lecture the user owns, creating it when absent, and applies the attended flag
// @Tags attendances
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateAttendanceRequest true "Attendance information"
// @Success 201 {object} dto.APIResponse{data=dto.AttendanceResponse} "Attendance record created"
// @Failure 400 {object} dto.ErrorResponse "Invalid attendance data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Lecture not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /attendances [post]
func (c *AttendanceController) CreateAttendance(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateAttendanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	attendance, err := c.attendanceService.CreateAttendance(ctx, userID, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(attendance))
}

// ToggleAttendance sets the attended flag for one lecture
// @Summary Toggle attendance for a lecture
// @Description Sets the attended flag on the user's record for the lecture, creating the record on first toggle
// @Tags attendances
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lecture ID" Format(uuid)
// @Param request body dto.ToggleAttendanceRequest true "Attended flag"
// @Success 200 {object} dto.APIResponse{data=dto.AttendanceResponse} "Attendance updated"
// @Failure 400 {object} dto.ErrorResponse "Attended is not a boolean"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Lecture not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /lectures/{id}/attendance [post]
func (c *AttendanceController) ToggleAttendance(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	lectureID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.ToggleAttendanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidInput, "Invalid toggle payload").
			WithField("attended").
			WithDetails("attended must be a boolean")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	attendance, err := c.attendanceService.ToggleAttendance(ctx, userID, lectureID, req.Attended)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(attendance))
}

// UpdateAttendance applies a partial update, optionally replacing the note
// @Summary Update an attendance record
// @Description Updates the attended flag and/or replaces the uploaded note. Uploading a new note clears any cached summary.
// @Tags attendances
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Attendance ID" Format(uuid)
// @Param attended formData boolean false "Attended flag"
// @Param note formData file false "Note file (.txt, .docx or .pdf)"
// @Success 200 {object} dto.APIResponse{data=dto.AttendanceResponse} "Attendance updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid update data or unsupported note format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Attendance not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /attendances/{id} [patch]
func (c *AttendanceController) UpdateAttendance(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	var attended *bool
	if raw, exists := ctx.GetPostForm("attended"); exists {
		value, err := strconv.ParseBool(raw)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidInput, "Invalid attended value").
				WithField("attended").
				WithDetails("attended must be a boolean")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		attended = &value
	}

	note, err := ctx.FormFile("note")
	if err != nil && err != http.ErrMissingFile {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidInput, "Invalid note upload").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	attendance, err := c.attendanceService.UpdateAttendance(ctx, userID, id, attended, note)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(attendance))
}

// Summarize returns the cached or freshly generated note summary
// @Summary Summarize an attendance's note
// @Description Returns the cached summary when present, otherwise extracts text from the uploaded note and asks the summarization service
// @Tags attendances
// @Produce json
// @Security BearerAuth
// @Param id path string true "Attendance ID" Format(uuid)
// @Success 200 {object} dto.APIResponse{data=dto.SummarizeResponse} "Summary returned"
// @Failure 400 {object} dto.ErrorResponse "Unsupported note format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Attendance or note not found"
// @Failure 502 {object} dto.ErrorResponse "Summarization service unavailable"
// @Router /attendances/{id}/summarize [post]
func (c *AttendanceController) Summarize(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	summary, err := c.summaryService.Summarize(ctx, userID, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SummarizeResponse{Summary: summary}))
}
