package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ekinoz/classtrack/internal/app/models/dto"
	"github.com/ekinoz/classtrack/internal/app/repositories"
	"github.com/ekinoz/classtrack/internal/app/services"
	"github.com/ekinoz/classtrack/internal/middleware"
	"github.com/ekinoz/classtrack/internal/pkg/helpers"
)

// LectureController handles lecture read operations
type LectureController struct {
	lectureService services.LectureService
}

// NewLectureController creates a new LectureController
func NewLectureController(lectureService services.LectureService) *LectureController {
	return &LectureController{
		lectureService: lectureService,
	}
}

// ListLectures retrieves the user's lectures with derived status
// @Summary List lectures
// @Description Retrieves lectures of the user's courses in ascending start order, optionally bounded by a date window
// @Tags lectures
// @Produce json
// @Security BearerAuth
// @Param from query string false "Lower date bound (YYYY-MM-DD)"
// @Param to query string false "Upper date bound (YYYY-MM-DD)"
// @Success 200 {object} dto.APIResponse{data=[]dto.LectureStatusResponse} "Lectures retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid date bound"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /lectures [get]
func (c *LectureController) ListLectures(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var filter repositories.LectureFilter

	if from := ctx.Query("from"); from != "" {
		fromDate, err := helpers.ParseDateOnly(from)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidInput, "Invalid from date").
				WithField("from").
				WithDetails("from must be in YYYY-MM-DD format")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		filter.FromDate = &fromDate
	}

	if to := ctx.Query("to"); to != "" {
		toDate, err := helpers.ParseDateOnly(to)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidInput, "Invalid to date").
				WithField("to").
				WithDetails("to must be in YYYY-MM-DD format")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		// The bound covers the whole day; lectures end before the next
		// midnight.
		endOfDay := toDate.AddDate(0, 0, 1)
		filter.ToDate = &endOfDay
	}

	lectures, err := c.lectureService.ListLectures(ctx, userID, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(lectures))
}
