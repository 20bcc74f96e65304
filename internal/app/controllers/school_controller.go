package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/steampunk99/school-locator/internal/app/models/dto"
	"github.com/steampunk99/school-locator/internal/app/services"
	"github.com/steampunk99/school-locator/internal/middleware"
	"github.com/steampunk99/school-locator/internal/pkg/apperrors"
	"github.com/steampunk99/school-locator/internal/pkg/helpers"
)

// SchoolController handles the school directory endpoints
type SchoolController struct {
	schoolService *services.SchoolService
	logger        zerolog.Logger
}

// NewSchoolController creates a new SchoolController
func NewSchoolController(schoolService *services.SchoolService, logger zerolog.Logger) *SchoolController {
	return &SchoolController{
		schoolService: schoolService,
		logger:        logger,
	}
}

// Search searches active schools
// @Summary Search schools
// @Description Filters active schools by text, location, type, category, curriculum and tuition, with paging and sorting.
// @Tags schools
// @Produce json
// @Param query query string false "Text matched against name and district"
// @Param district query string false "District filter"
// @Param region query string false "Region filter"
// @Param type query string false "School type (Day, Boarding, Mixed)"
// @Param category query string false "Ownership category"
// @Param curriculum query string false "Curriculum filter"
// @Param maxTuition query number false "Maximum tuition"
// @Param hasBoarding query bool false "Match Boarding and Mixed schools"
// @Param sortBy query string false "name, performance or tuition"
// @Param sortOrder query string false "asc or desc"
// @Param page query int false "1-based page"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.SchoolSearchResponse} "Search results"
// @Router /schools/search [get]
func (c *SchoolController) Search(ctx *gin.Context) {
	var req dto.SearchSchoolsRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	resp, err := c.schoolService.Search(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp, ""))
}

// GetByID returns a single school
// @Summary Get a school
// @Tags schools
// @Produce json
// @Param id path int true "School ID"
// @Success 200 {object} dto.APIResponse{data=models.School} "School"
// @Failure 404 {object} dto.ErrorResponse "School not found"
// @Router /schools/{id} [get]
func (c *SchoolController) GetByID(ctx *gin.Context) {
	id, err := pathID(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	school, err := c.schoolService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(school, ""))
}

// GetAll lists all schools including inactive ones
// @Summary List schools
// @Tags schools
// @Produce json
// @Param page query int false "1-based page"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Schools"
// @Security BearerAuth
// @Router /schools [get]
func (c *SchoolController) GetAll(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	schools, pagination, err := c.schoolService.GetAll(ctx.Request.Context(), page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.PaginatedResponse{
		Items:      schools,
		Pagination: pagination,
	}, ""))
}

// Similar lists schools related to a reference school or attribute set
// @Summary Similar schools
// @Tags schools
// @Produce json
// @Param schoolId query int false "Reference school ID"
// @Param category query string false "Category to match"
// @Param region query string false "Region to match"
// @Param type query string false "Type to match"
// @Success 200 {object} dto.APIResponse{data=[]dto.SchoolSummary} "Similar schools"
// @Router /schools/similar [get]
func (c *SchoolController) Similar(ctx *gin.Context) {
	var req dto.SimilarSchoolsRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	schools, err := c.schoolService.FindSimilar(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(schools, ""))
}

// Add creates a school from a multipart form
// @Summary Add a school
// @Description Creates a school listing. The logo file field is optional.
// @Tags schools
// @Accept multipart/form-data
// @Produce json
// @Success 201 {object} dto.APIResponse{data=models.School} "School created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Security BearerAuth
// @Router /schools/add [post]
func (c *SchoolController) Add(ctx *gin.Context) {
	var req dto.AddSchoolRequest
	if err := ctx.ShouldBind(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	logo, _ := ctx.FormFile("logo")

	school, err := c.schoolService.Add(ctx.Request.Context(), &req, logo)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(school, "School created successfully"))
}

// Update applies partial changes to a school
// @Summary Update a school
// @Tags schools
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "School ID"
// @Success 200 {object} dto.APIResponse{data=models.School} "School updated"
// @Failure 404 {object} dto.ErrorResponse "School not found"
// @Security BearerAuth
// @Router /schools/{id} [put]
func (c *SchoolController) Update(ctx *gin.Context) {
	id, err := pathID(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.UpdateSchoolRequest
	if err := ctx.ShouldBind(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	logo, _ := ctx.FormFile("logo")

	school, err := c.schoolService.Update(ctx.Request.Context(), id, &req, logo)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(school, "School updated successfully"))
}

// Delete removes a school and its media
// @Summary Delete a school
// @Tags schools
// @Produce json
// @Param id path int true "School ID"
// @Success 200 {object} dto.APIResponse "School deleted"
// @Failure 404 {object} dto.ErrorResponse "School not found"
// @Security BearerAuth
// @Router /schools/{id} [delete]
func (c *SchoolController) Delete(ctx *gin.Context) {
	id, err := pathID(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.schoolService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "School deleted successfully"))
}

// AddGalleryImages uploads gallery images for a school
// @Summary Add gallery images
// @Tags schools
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "School ID"
// @Success 201 {object} dto.APIResponse{data=[]models.GalleryImage} "Images added"
// @Failure 404 {object} dto.ErrorResponse "School not found"
// @Security BearerAuth
// @Router /schools/{id}/gallery [post]
func (c *SchoolController) AddGalleryImages(ctx *gin.Context) {
	id, err := pathID(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	form, err := ctx.MultipartForm()
	if err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	images, err := c.schoolService.AddGalleryImages(ctx.Request.Context(), id, form.File["images"])
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(images, "Gallery images added"))
}

// RemoveGalleryImage deletes one gallery image
// @Summary Remove a gallery image
// @Tags schools
// @Produce json
// @Param id path int true "School ID"
// @Param imageId path int true "Gallery image ID"
// @Success 200 {object} dto.APIResponse "Image removed"
// @Failure 404 {object} dto.ErrorResponse "Image not found"
// @Security BearerAuth
// @Router /schools/{id}/gallery/{imageId} [delete]
func (c *SchoolController) RemoveGalleryImage(ctx *gin.Context) {
	id, err := pathID(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	imageID, err := pathID(ctx, "imageId")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.schoolService.RemoveGalleryImage(ctx.Request.Context(), id, imageID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Gallery image removed"))
}

// pathID parses a positive int64 path parameter
func pathID(ctx *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid "+name+" parameter", map[string]string{name: "must be a positive integer"})
	}
	return id, nil
}
