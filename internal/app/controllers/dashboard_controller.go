package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ekinoz/classtrack/internal/app/models/dto"
	"github.com/ekinoz/classtrack/internal/app/services"
	"github.com/ekinoz/classtrack/internal/middleware"
)

// DashboardController handles the per-course roll-up view
type DashboardController struct {
	dashboardService services.DashboardService
}

// NewDashboardController creates a new DashboardController
func NewDashboardController(dashboardService services.DashboardService) *DashboardController {
	return &DashboardController{
		dashboardService: dashboardService,
	}
}

// Dashboard retrieves the per-course attendance roll-up
// @Summary Get the dashboard
// @Description Retrieves every course of the user with its lectures, their derived statuses and the attendance percentage
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.DashboardResponse} "Dashboard retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /dashboard [get]
func (c *DashboardController) Dashboard(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	dashboard, err := c.dashboardService.Dashboard(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dashboard))
}
