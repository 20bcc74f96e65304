package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/steampunk99/school-locator/internal/app/models/dto"
	"github.com/steampunk99/school-locator/internal/app/services"
	"github.com/steampunk99/school-locator/internal/middleware"
)

// DashboardController serves the admin dashboard aggregations
type DashboardController struct {
	dashboardService *services.DashboardService
	logger           zerolog.Logger
}

// NewDashboardController creates a new DashboardController
func NewDashboardController(dashboardService *services.DashboardService, logger zerolog.Logger) *DashboardController {
	return &DashboardController{
		dashboardService: dashboardService,
		logger:           logger,
	}
}

// Stats returns the combined dashboard overview
// @Summary Dashboard overview
// @Tags dashboard
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.DashboardStatsResponse} "Overview"
// @Security BearerAuth
// @Router /schools/dashboard-stats [get]
func (c *DashboardController) Stats(ctx *gin.Context) {
	resp, err := c.dashboardService.CombinedStats(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp, ""))
}

// UserStats summarizes the user base
// @Summary User statistics
// @Tags dashboard
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.UserStatsResponse} "User statistics"
// @Security BearerAuth
// @Router /schools/dashboard/users [get]
func (c *DashboardController) UserStats(ctx *gin.Context) {
	resp, err := c.dashboardService.UserStats(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp, ""))
}

// SchoolStats summarizes the directory
// @Summary School statistics
// @Tags dashboard
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.SchoolStatsResponse} "School statistics"
// @Security BearerAuth
// @Router /schools/dashboard/schools [get]
func (c *DashboardController) SchoolStats(ctx *gin.Context) {
	resp, err := c.dashboardService.SchoolStats(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp, ""))
}

// ApplicationStats summarizes applications and payments
// @Summary Application statistics
// @Tags dashboard
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.ApplicationStatsResponse} "Application statistics"
// @Security BearerAuth
// @Router /schools/dashboard/applications [get]
func (c *DashboardController) ApplicationStats(ctx *gin.Context) {
	resp, err := c.dashboardService.ApplicationStats(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp, ""))
}
