package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ekinoz/classtrack/internal/app/models/dto"
	"github.com/ekinoz/classtrack/internal/app/services"
	"github.com/ekinoz/classtrack/internal/middleware"
)

// ScheduleController handles timetable imports
type ScheduleController struct {
	scheduleService services.ScheduleService
}

// NewScheduleController creates a new ScheduleController
func NewScheduleController(scheduleService services.ScheduleService) *ScheduleController {
	return &ScheduleController{
		scheduleService: scheduleService,
	}
}

// ImportSchedule expands weekly slots into lecture occurrences
// @Summary Import a weekly timetable
// @Description Expands each slot into dated lecture occurrences and reports how many were newly created. Re-importing the same slots creates nothing.
// @Tags schedule
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ImportScheduleRequest true "Timetable slots"
// @Success 200 {object} dto.APIResponse{data=dto.ImportScheduleResponse} "Import completed"
// @Failure 400 {object} dto.ErrorResponse "Invalid slot data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /schedule/import [post]
func (c *ScheduleController) ImportSchedule(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.ImportScheduleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	created, err := c.scheduleService.ImportTimetable(ctx, userID, req.Slots)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.ImportScheduleResponse{Created: created}))
}
