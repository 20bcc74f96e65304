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

// DirectoryController handles enrollments, staff, fees and programs
type DirectoryController struct {
	directoryService *services.DirectoryService
	logger           zerolog.Logger
}

// NewDirectoryController creates a new DirectoryController
func NewDirectoryController(directoryService *services.DirectoryService, logger zerolog.Logger) *DirectoryController {
	return &DirectoryController{
		directoryService: directoryService,
		logger:           logger,
	}
}

// EnrollStudent enrolls a student into a school
// @Summary Enroll a student
// @Tags directory
// @Accept json
// @Produce json
// @Param request body dto.EnrollStudentRequest true "Enrollment"
// @Success 201 {object} dto.APIResponse{data=models.Enrollment} "Student enrolled"
// @Failure 409 {object} dto.ErrorResponse "Student already enrolled"
// @Security BearerAuth
// @Router /schools/students/enroll [post]
func (c *DirectoryController) EnrollStudent(ctx *gin.Context) {
	var req dto.EnrollStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	enrollment, err := c.directoryService.EnrollStudent(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(enrollment, "Student enrolled successfully"))
}

// ListEnrollments lists a school's enrollments
// @Summary List enrollments
// @Tags directory
// @Produce json
// @Param id path int true "School ID"
// @Param status query string false "Filter by student status" Enums(Active, Graduated, Withdrawn)
// @Success 200 {object} dto.APIResponse{data=[]models.Enrollment} "Enrollments"
// @Security BearerAuth
// @Router /schools/{id}/students [get]
func (c *DirectoryController) ListEnrollments(ctx *gin.Context) {
	id, err := pathID(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	status := models.StudentStatus(ctx.Query("status"))
	enrollments, err := c.directoryService.ListEnrollments(ctx.Request.Context(), id, status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(enrollments, ""))
}

// UpdateStudentStatus changes an enrollment's status
// @Summary Update student status
// @Tags directory
// @Accept json
// @Produce json
// @Param id path int true "Enrollment ID"
// @Param request body dto.UpdateStudentStatusRequest true "New status"
// @Success 200 {object} dto.APIResponse "Status updated"
// @Failure 404 {object} dto.ErrorResponse "Enrollment not found"
// @Security BearerAuth
// @Router /schools/students/{id}/status [put]
func (c *DirectoryController) UpdateStudentStatus(ctx *gin.Context) {
	id, err := pathID(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.UpdateStudentStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	if err := c.directoryService.UpdateStudentStatus(ctx.Request.Context(), id, models.StudentStatus(req.StudentStatus)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Student status updated"))
}

// AddStaff attaches a user to a school as staff
// @Summary Add staff
// @Tags directory
// @Accept json
// @Produce json
// @Param request body dto.AddStaffRequest true "Staff record"
// @Success 201 {object} dto.APIResponse{data=models.Staff} "Staff added"
// @Failure 409 {object} dto.ErrorResponse "User is already staff at this school"
// @Security BearerAuth
// @Router /schools/staff [post]
func (c *DirectoryController) AddStaff(ctx *gin.Context) {
	var req dto.AddStaffRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	staff, err := c.directoryService.AddStaff(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(staff, "Staff added successfully"))
}

// ListStaff lists a school's staff
// @Summary List staff
// @Tags directory
// @Produce json
// @Param id path int true "School ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Staff} "Staff"
// @Security BearerAuth
// @Router /schools/{id}/staff [get]
func (c *DirectoryController) ListStaff(ctx *gin.Context) {
	id, err := pathID(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	staff, err := c.directoryService.ListStaff(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(staff, ""))
}

// RemoveStaff removes a staff record
// @Summary Remove staff
// @Tags directory
// @Produce json
// @Param id path int true "Staff record ID"
// @Success 200 {object} dto.APIResponse "Staff removed"
// @Failure 404 {object} dto.ErrorResponse "Staff record not found"
// @Security BearerAuth
// @Router /schools/staff/{id} [delete]
func (c *DirectoryController) RemoveStaff(ctx *gin.Context) {
	id, err := pathID(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.directoryService.RemoveStaff(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Staff removed"))
}

// AddFee creates a fee item
// @Summary Add a fee item
// @Tags directory
// @Accept json
// @Produce json
// @Param request body dto.AddFeeRequest true "Fee item"
// @Success 201 {object} dto.APIResponse{data=models.Fee} "Fee added"
// @Security BearerAuth
// @Router /schools/fees [post]
func (c *DirectoryController) AddFee(ctx *gin.Context) {
	var req dto.AddFeeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	fee, err := c.directoryService.AddFee(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(fee, "Fee added successfully"))
}

// ListFees lists a school's fee items
// @Summary List fees
// @Tags directory
// @Produce json
// @Param id path int true "School ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Fee} "Fees"
// @Router /schools/{id}/fees [get]
func (c *DirectoryController) ListFees(ctx *gin.Context) {
	id, err := pathID(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	fees, err := c.directoryService.ListFees(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(fees, ""))
}

// RemoveFee deletes a fee item
// @Summary Remove a fee item
// @Tags directory
// @Produce json
// @Param id path int true "Fee ID"
// @Success 200 {object} dto.APIResponse "Fee removed"
// @Failure 404 {object} dto.ErrorResponse "Fee not found"
// @Security BearerAuth
// @Router /schools/fees/{id} [delete]
func (c *DirectoryController) RemoveFee(ctx *gin.Context) {
	id, err := pathID(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.directoryService.RemoveFee(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Fee removed"))
}

// AddProgram creates an academic program
// @Summary Add a program
// @Tags directory
// @Accept json
// @Produce json
// @Param request body dto.AddProgramRequest true "Program"
// @Success 201 {object} dto.APIResponse{data=models.Program} "Program added"
// @Security BearerAuth
// @Router /schools/programs [post]
func (c *DirectoryController) AddProgram(ctx *gin.Context) {
	var req dto.AddProgramRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	program, err := c.directoryService.AddProgram(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(program, "Program added successfully"))
}

// ListPrograms lists a school's programs
// @Summary List programs
// @Tags directory
// @Produce json
// @Param id path int true "School ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Program} "Programs"
// @Router /schools/{id}/programs [get]
func (c *DirectoryController) ListPrograms(ctx *gin.Context) {
	id, err := pathID(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	programs, err := c.directoryService.ListPrograms(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(programs, ""))
}

// RemoveProgram deletes a program
// @Summary Remove a program
// @Tags directory
// @Produce json
// @Param id path int true "Program ID"
// @Success 200 {object} dto.APIResponse "Program removed"
// @Failure 404 {object} dto.ErrorResponse "Program not found"
// @Security BearerAuth
// @Router /schools/programs/{id} [delete]
func (c *DirectoryController) RemoveProgram(ctx *gin.Context) {
	id, err := pathID(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.directoryService.RemoveProgram(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Program removed"))
}
