package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/steampunk99/school-locator/internal/app/models"
	"github.com/steampunk99/school-locator/internal/app/models/dto"
	"github.com/steampunk99/school-locator/internal/app/services"
	"github.com/steampunk99/school-locator/internal/middleware"
)

// ApplicationController handles the admission application endpoints
type ApplicationController struct {
	appService *services.ApplicationService
	logger     zerolog.Logger
}

// NewApplicationController creates a new ApplicationController
func NewApplicationController(appService *services.ApplicationService, logger zerolog.Logger) *ApplicationController {
	return &ApplicationController{
		appService: appService,
		logger:     logger,
	}
}

// Submit files an admission application
// @Summary Submit an application
// @Description Files an admission application for the authenticated student. One active application per school.
// @Tags applications
// @Accept json
// @Produce json
// @Param request body dto.SubmitApplicationRequest true "Application"
// @Success 201 {object} dto.APIResponse{data=dto.SubmitApplicationResponse} "Application submitted"
// @Failure 400 {object} dto.ErrorResponse "Validation failed, deadline passed or no spots"
// @Failure 409 {object} dto.ErrorResponse "An active application already exists"
// @Security BearerAuth
// @Router /schools/application/submit [post]
func (c *ApplicationController) Submit(ctx *gin.Context) {
	userID, err := middleware.CurrentUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.SubmitApplicationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	resp, err := c.appService.Submit(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(resp, resp.Message))
}

// Pay initiates the admission fee payment
// @Summary Pay the admission fee
// @Description Initiates a mobile-money collection for the caller's application.
// @Tags applications
// @Accept json
// @Produce json
// @Param request body dto.ProcessPaymentRequest true "Payment request"
// @Success 200 {object} dto.APIResponse{data=dto.ProcessPaymentResponse} "Payment initiated"
// @Failure 400 {object} dto.ErrorResponse "Invalid method or phone number"
// @Failure 409 {object} dto.ErrorResponse "Payment already completed"
// @Failure 502 {object} dto.ErrorResponse "Payment provider unavailable"
// @Security BearerAuth
// @Router /schools/application/pay [post]
func (c *ApplicationController) Pay(ctx *gin.Context) {
	userID, err := middleware.CurrentUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.ProcessPaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	resp, err := c.appService.ProcessPayment(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp, resp.Message))
}

// MyApplications lists the caller's applications
// @Summary My applications
// @Tags applications
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Application} "Applications"
// @Security BearerAuth
// @Router /schools/applications/my [get]
func (c *ApplicationController) MyApplications(ctx *gin.Context) {
	userID, err := middleware.CurrentUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	apps, err := c.appService.ListByUser(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(apps, ""))
}

// SchoolApplications lists a school's applications with applicant details
// @Summary School applications
// @Tags applications
// @Produce json
// @Param id path int true "School ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Application} "Applications"
// @Failure 404 {object} dto.ErrorResponse "School not found"
// @Security BearerAuth
// @Router /schools/{id}/applications [get]
func (c *ApplicationController) SchoolApplications(ctx *gin.Context) {
	id, err := pathID(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	apps, err := c.appService.ListBySchool(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(apps, ""))
}

// UpdateStatus overwrites an application's review status
// @Summary Update application status
// @Tags applications
// @Accept json
// @Produce json
// @Param id path int true "Application ID"
// @Param request body dto.UpdateApplicationStatusRequest true "New status"
// @Success 200 {object} dto.APIResponse{data=models.Application} "Status updated"
// @Failure 403 {object} dto.ErrorResponse "Application belongs to another school"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Failure 409 {object} dto.ErrorResponse "Application already approved"
// @Security BearerAuth
// @Router /schools/applications/{id}/status [put]
func (c *ApplicationController) UpdateStatus(ctx *gin.Context) {
	id, err := pathID(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	actorID, err := middleware.CurrentUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	actorRole, err := middleware.CurrentUserRole(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.UpdateApplicationStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	app, err := c.appService.UpdateStatus(ctx.Request.Context(), actorID, models.RoleType(actorRole), id, models.ApplicationStatus(req.ApplicationStatus))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(app, "Application status updated"))
}
