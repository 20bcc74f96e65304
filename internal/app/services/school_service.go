package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/steampunk99/school-locator/internal/app/models"
	"github.com/steampunk99/school-locator/internal/app/models/dto"
	"github.com/steampunk99/school-locator/internal/app/repositories"
	"github.com/steampunk99/school-locator/internal/pkg/apperrors"
	"github.com/steampunk99/school-locator/internal/pkg/filestorage"
	"github.com/steampunk99/school-locator/internal/pkg/helpers"
)

const (
	logoSubDir    = "logos"
	gallerySubDir = "gallery"

	similarSchoolsLimit = 6
)

// SchoolService handles the school directory operations
type SchoolService struct {
	schoolRepo SchoolStore
	storage    filestorage.FileStorage
	logger     zerolog.Logger
}

// NewSchoolService creates a new SchoolService
func NewSchoolService(schoolRepo SchoolStore, storage filestorage.FileStorage, logger zerolog.Logger) *SchoolService {
	return &SchoolService{
		schoolRepo: schoolRepo,
		storage:    storage,
		logger:     logger,
	}
}

// Search runs a filtered directory search over active schools
func (s *SchoolService) Search(ctx context.Context, req *dto.SearchSchoolsRequest) (*dto.SchoolSearchResponse, error) {
	filters := normalizeSearchFilters(req)

	schools, total, err := s.schoolRepo.Search(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("error searching schools: %w", err)
	}

	info := helpers.NewPaginationInfo(total, req.Page, req.Limit)
	return &dto.SchoolSearchResponse{
		Data:       schools,
		Total:      total,
		Page:       info.CurrentPage,
		TotalPages: info.TotalPages,
	}, nil
}

// normalizeSearchFilters translates the request parameters into repository
// filters. A hasBoarding request matches both Boarding and Mixed schools.
func normalizeSearchFilters(req *dto.SearchSchoolsRequest) repositories.SchoolSearchFilters {
	offset, limit := helpers.CalculateOffsetLimit(req.Page, req.Limit)

	var types []string
	switch {
	case req.HasBoarding:
		types = []string{string(models.SchoolTypeBoarding), string(models.SchoolTypeMixed)}
	case req.Type != "":
		types = []string{req.Type}
	}

	sortBy := req.SortBy
	switch sortBy {
	case "name", "performance", "tuition":
	default:
		sortBy = "name"
	}

	sortOrder := "asc"
	if strings.EqualFold(req.SortOrder, "desc") {
		sortOrder = "desc"
	}

	return repositories.SchoolSearchFilters{
		Query:      strings.TrimSpace(req.Query),
		District:   strings.TrimSpace(req.District),
		Region:     req.Region,
		Types:      types,
		Category:   req.Category,
		Curriculum: req.Curriculum,
		MaxTuition: req.MaxTuition,
		SortBy:     sortBy,
		SortOrder:  sortOrder,
		Offset:     offset,
		Limit:      limit,
	}
}

// GetByID returns a school with its gallery
func (s *SchoolService) GetByID(ctx context.Context, id int64) (*models.School, error) {
	return s.schoolRepo.GetByID(ctx, id)
}

// GetAll returns a page of all schools regardless of active state
func (s *SchoolService) GetAll(ctx context.Context, page, limit int) ([]models.School, dto.PaginationInfo, error) {
	offset, size := helpers.CalculateOffsetLimit(page, limit)

	schools, total, err := s.schoolRepo.GetAll(ctx, offset, size)
	if err != nil {
		return nil, dto.PaginationInfo{}, fmt.Errorf("error listing schools: %w", err)
	}

	return schools, helpers.NewPaginationInfo(total, page, size), nil
}

// FindSimilar lists active schools sharing attributes with the reference.
// When a school ID is given its stored attributes take precedence over the
// query parameters.
func (s *SchoolService) FindSimilar(ctx context.Context, req *dto.SimilarSchoolsRequest) ([]dto.SchoolSummary, error) {
	category, region, schoolType := req.Category, req.Region, req.Type
	var excludeID int64

	if req.SchoolID > 0 {
		school, err := s.schoolRepo.GetByID(ctx, req.SchoolID)
		if err != nil {
			return nil, err
		}
		excludeID = school.ID
		category = string(school.Category)
		region = school.Location.Region
		schoolType = string(school.Type)
	}

	return s.schoolRepo.FindSimilar(ctx, excludeID, category, region, schoolType, similarSchoolsLimit)
}

// Add creates a school, storing the logo first so the row never references
// a missing file.
func (s *SchoolService) Add(ctx context.Context, req *dto.AddSchoolRequest, logo *multipart.FileHeader) (*models.School, error) {
	deadline, err := parseDeadline(req.ApplicationDeadline)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid application deadline", map[string]string{"applicationDeadline": "must be an RFC 3339 timestamp or YYYY-MM-DD date"})
	}

	logoPath := ""
	if logo != nil {
		logoPath, err = s.storage.SaveFileWithPath(logo, logoSubDir)
		if err != nil {
			return nil, fmt.Errorf("error saving school logo: %w", err)
		}
	}

	school := &models.School{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Location: models.Location{
			District: req.District,
			Region:   req.Region,
			Address:  req.Address,
		},
		Type:     models.SchoolType(req.Type),
		Category: models.SchoolCategory(req.Category),
		Fees: models.SchoolFees{
			AdmissionFee:    req.AdmissionFee,
			TuitionDay:      optionalFloat(req.TuitionDay),
			TuitionBoarding: optionalFloat(req.TuitionBoarding),
		},
		Curriculum: splitCommaList(req.Curriculum),
		Contact: models.Contact{
			Email:   req.ContactEmail,
			Phone:   req.ContactPhone,
			Website: req.Website,
		},
		Media: models.Media{Logo: logoPath},
		Admissions: models.Admissions{
			ApplicationDeadline: deadline,
			AvailableSpots: models.AvailableSpots{
				DayStudents:      req.DaySpots,
				BoardingStudents: req.BoardingSpots,
			},
			Requirements: parseRequirements(req.Requirements),
		},
		Metadata: models.Metadata{
			IsActive:         true,
			SubscriptionTier: models.TierBasic,
		},
	}

	if err := s.schoolRepo.Create(ctx, school); err != nil {
		// The row failed, clean up the stored logo
		if logoPath != "" {
			_ = s.storage.DeleteFile(logoPath)
		}
		return nil, err
	}

	s.logger.Info().Int64("schoolID", school.ID).Str("name", school.Name).Msg("School created")
	return school, nil
}

// Update applies the provided fields to a school. When a new logo arrives
// the old stored file is deleted before the new one is linked.
func (s *SchoolService) Update(ctx context.Context, id int64, req *dto.UpdateSchoolRequest, logo *multipart.FileHeader) (*models.School, error) {
	school, err := s.schoolRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if logo != nil {
		if school.Media.Logo != "" {
			_ = s.storage.DeleteFile(school.Media.Logo)
		}
		newLogo, err := s.storage.SaveFileWithPath(logo, logoSubDir)
		if err != nil {
			return nil, fmt.Errorf("error saving school logo: %w", err)
		}
		school.Media.Logo = newLogo
	}

	applySchoolUpdates(school, req)

	if req.ApplicationDeadline != nil {
		deadline, err := parseDeadline(*req.ApplicationDeadline)
		if err != nil {
			return nil, apperrors.NewValidationError("invalid application deadline", map[string]string{"applicationDeadline": "must be an RFC 3339 timestamp or YYYY-MM-DD date"})
		}
		school.Admissions.ApplicationDeadline = deadline
	}

	if err := s.schoolRepo.Update(ctx, school); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("schoolID", id).Msg("School updated")
	return school, nil
}

// Delete removes a school and all its stored media. Files go first so a
// failed file delete never leaves an orphaned row pointing at nothing.
func (s *SchoolService) Delete(ctx context.Context, id int64) error {
	school, err := s.schoolRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if school.Media.Logo != "" {
		if err := s.storage.DeleteFile(school.Media.Logo); err != nil {
			return fmt.Errorf("error deleting school logo: %w", err)
		}
	}
	for _, img := range school.Media.Gallery {
		if err := s.storage.DeleteFile(img.URL); err != nil {
			return fmt.Errorf("error deleting gallery image: %w", err)
		}
	}

	if err := s.schoolRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("schoolID", id).Str("name", school.Name).Msg("School deleted")
	return nil
}

// AddGalleryImages stores uploaded images and records them against the school
func (s *SchoolService) AddGalleryImages(ctx context.Context, schoolID int64, files []*multipart.FileHeader) ([]models.GalleryImage, error) {
	if _, err := s.schoolRepo.GetByID(ctx, schoolID); err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, apperrors.NewValidationError("no images provided", map[string]string{"images": "at least one image file is required"})
	}

	images := make([]models.GalleryImage, 0, len(files))
	saved := []string{}
	for _, f := range files {
		url, err := s.storage.SaveFileWithPath(f, gallerySubDir)
		if err != nil {
			for _, path := range saved {
				_ = s.storage.DeleteFile(path)
			}
			return nil, fmt.Errorf("error saving gallery image: %w", err)
		}
		saved = append(saved, url)
		images = append(images, models.GalleryImage{URL: url})
	}

	if err := s.schoolRepo.AddGalleryImages(ctx, schoolID, images); err != nil {
		for _, path := range saved {
			_ = s.storage.DeleteFile(path)
		}
		return nil, err
	}

	return images, nil
}

// RemoveGalleryImage deletes one gallery image, file first
func (s *SchoolService) RemoveGalleryImage(ctx context.Context, schoolID, imageID int64) error {
	img, err := s.schoolRepo.GetGalleryImage(ctx, schoolID, imageID)
	if err != nil {
		return err
	}

	if err := s.storage.DeleteFile(img.URL); err != nil {
		return fmt.Errorf("error deleting gallery image file: %w", err)
	}

	return s.schoolRepo.DeleteGalleryImage(ctx, schoolID, imageID)
}

// applySchoolUpdates copies every provided field onto the school
func applySchoolUpdates(school *models.School, req *dto.UpdateSchoolRequest) {
	if req.Name != nil {
		school.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		school.Description = *req.Description
	}
	if req.District != nil {
		school.Location.District = *req.District
	}
	if req.Region != nil {
		school.Location.Region = *req.Region
	}
	if req.Address != nil {
		school.Location.Address = *req.Address
	}
	if req.Type != nil {
		school.Type = models.SchoolType(*req.Type)
	}
	if req.Category != nil {
		school.Category = models.SchoolCategory(*req.Category)
	}
	if req.AdmissionFee != nil {
		school.Fees.AdmissionFee = *req.AdmissionFee
	}
	if req.TuitionDay != nil {
		school.Fees.TuitionDay = req.TuitionDay
	}
	if req.TuitionBoarding != nil {
		school.Fees.TuitionBoarding = req.TuitionBoarding
	}
	if req.Curriculum != nil {
		school.Curriculum = splitCommaList(*req.Curriculum)
	}
	if req.ContactEmail != nil {
		school.Contact.Email = *req.ContactEmail
	}
	if req.ContactPhone != nil {
		school.Contact.Phone = *req.ContactPhone
	}
	if req.Website != nil {
		school.Contact.Website = *req.Website
	}
	if req.DaySpots != nil {
		school.Admissions.AvailableSpots.DayStudents = *req.DaySpots
	}
	if req.BoardingSpots != nil {
		school.Admissions.AvailableSpots.BoardingStudents = *req.BoardingSpots
	}
	if req.Requirements != nil {
		school.Admissions.Requirements = parseRequirements(*req.Requirements)
	}
	if req.IsActive != nil {
		school.Metadata.IsActive = *req.IsActive
	}
	if req.IsVerified != nil {
		school.Metadata.IsVerified = *req.IsVerified
	}
	if req.SubscriptionTier != nil {
		school.Metadata.SubscriptionTier = models.SubscriptionTier(*req.SubscriptionTier)
	}
}

// parseDeadline accepts RFC 3339 timestamps or plain dates
func parseDeadline(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}

func splitCommaList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func parseRequirements(value string) []models.Requirement {
	names := splitCommaList(value)
	if len(names) == 0 {
		return nil
	}
	reqs := make([]models.Requirement, 0, len(names))
	for _, name := range names {
		reqs = append(reqs, models.Requirement{Name: name, Required: true})
	}
	return reqs
}

func optionalFloat(v float64) *float64 {
	if v == 0 {
		return nil
	}
	return &v
}
