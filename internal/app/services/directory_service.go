package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/steampunk99/school-locator/internal/app/models"
	"github.com/steampunk99/school-locator/internal/app/models/dto"
	"github.com/steampunk99/school-locator/internal/pkg/apperrors"
)

// DirectoryService handles the satellite school records: enrollments,
// staff, fee items and academic programs.
type DirectoryService struct {
	enrollmentRepo EnrollmentStore
	staffRepo      StaffStore
	feeRepo        FeeStore
	programRepo    ProgramStore
	logger         zerolog.Logger
}

// NewDirectoryService creates a new DirectoryService
func NewDirectoryService(
	enrollmentRepo EnrollmentStore,
	staffRepo StaffStore,
	feeRepo FeeStore,
	programRepo ProgramStore,
	logger zerolog.Logger,
) *DirectoryService {
	return &DirectoryService{
		enrollmentRepo: enrollmentRepo,
		staffRepo:      staffRepo,
		feeRepo:        feeRepo,
		programRepo:    programRepo,
		logger:         logger,
	}
}

// EnrollStudent enrolls a student into a school
func (s *DirectoryService) EnrollStudent(ctx context.Context, req *dto.EnrollStudentRequest) (*models.Enrollment, error) {
	status := models.StudentStatus(req.StudentStatus)
	if req.StudentStatus == "" {
		status = models.StudentActive
	}
	if !models.ValidStudentStatus(status) {
		return nil, apperrors.NewValidationError("invalid student status", map[string]string{"studentStatus": "must be Active, Graduated or Withdrawn"})
	}

	enrollment := &models.Enrollment{
		StudentID:      req.StudentID,
		SchoolID:       req.SchoolID,
		EnrollmentDate: time.Now(),
		StudentStatus:  status,
	}

	if err := s.enrollmentRepo.Create(ctx, enrollment); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("studentID", req.StudentID).Int64("schoolID", req.SchoolID).Msg("Student enrolled")
	return enrollment, nil
}

// ListEnrollments returns a school's enrollments with student details.
// A non-empty status narrows the listing, e.g. to active students only.
func (s *DirectoryService) ListEnrollments(ctx context.Context, schoolID int64, status models.StudentStatus) ([]models.Enrollment, error) {
	if status != "" && !models.ValidStudentStatus(status) {
		return nil, apperrors.NewValidationError("invalid student status", map[string]string{"status": "must be Active, Graduated or Withdrawn"})
	}

	enrollments, err := s.enrollmentRepo.ListBySchool(ctx, schoolID)
	if err != nil {
		return nil, err
	}
	if status == "" {
		return enrollments, nil
	}

	filtered := enrollments[:0]
	for _, e := range enrollments {
		if e.StudentStatus == status {
			filtered = append(filtered, e)
		}
	}
	return filtered, nil
}

// UpdateStudentStatus changes an enrollment's status
func (s *DirectoryService) UpdateStudentStatus(ctx context.Context, enrollmentID int64, status models.StudentStatus) error {
	if !models.ValidStudentStatus(status) {
		return apperrors.NewValidationError("invalid student status", map[string]string{"studentStatus": "must be Active, Graduated or Withdrawn"})
	}
	return s.enrollmentRepo.UpdateStatus(ctx, enrollmentID, status)
}

// AddStaff attaches a user to a school as staff
func (s *DirectoryService) AddStaff(ctx context.Context, req *dto.AddStaffRequest) (*models.Staff, error) {
	staff := &models.Staff{
		UserID:   req.UserID,
		SchoolID: req.SchoolID,
		Position: req.Position,
	}
	if err := s.staffRepo.Create(ctx, staff); err != nil {
		return nil, err
	}
	return staff, nil
}

// ListStaff returns a school's staff with user details
func (s *DirectoryService) ListStaff(ctx context.Context, schoolID int64) ([]models.Staff, error) {
	return s.staffRepo.ListBySchool(ctx, schoolID)
}

// RemoveStaff removes a staff record
func (s *DirectoryService) RemoveStaff(ctx context.Context, id int64) error {
	return s.staffRepo.Delete(ctx, id)
}

// AddFee creates a fee item for a school
func (s *DirectoryService) AddFee(ctx context.Context, req *dto.AddFeeRequest) (*models.Fee, error) {
	fee := &models.Fee{
		SchoolID:    req.SchoolID,
		Name:        req.Name,
		Amount:      req.Amount,
		Description: req.Description,
	}
	if req.DueDate != "" {
		due, err := time.Parse("2006-01-02", req.DueDate)
		if err != nil {
			return nil, apperrors.NewValidationError("invalid due date", map[string]string{"dueDate": "must be a YYYY-MM-DD date"})
		}
		fee.DueDate = &due
	}

	if err := s.feeRepo.Create(ctx, fee); err != nil {
		return nil, err
	}
	return fee, nil
}

// ListFees returns a school's fee items
func (s *DirectoryService) ListFees(ctx context.Context, schoolID int64) ([]models.Fee, error) {
	return s.feeRepo.ListBySchool(ctx, schoolID)
}

// RemoveFee deletes a fee item
func (s *DirectoryService) RemoveFee(ctx context.Context, id int64) error {
	return s.feeRepo.Delete(ctx, id)
}

// AddProgram creates an academic program for a school
func (s *DirectoryService) AddProgram(ctx context.Context, req *dto.AddProgramRequest) (*models.Program, error) {
	program := &models.Program{
		SchoolID:    req.SchoolID,
		Name:        req.Name,
		Description: req.Description,
		Duration:    req.Duration,
		Fees:        req.Fees,
	}
	if err := s.programRepo.Create(ctx, program); err != nil {
		return nil, err
	}
	return program, nil
}

// ListPrograms returns a school's programs
func (s *DirectoryService) ListPrograms(ctx context.Context, schoolID int64) ([]models.Program, error) {
	return s.programRepo.ListBySchool(ctx, schoolID)
}

// RemoveProgram deletes a program
func (s *DirectoryService) RemoveProgram(ctx context.Context, id int64) error {
	return s.programRepo.Delete(ctx, id)
}
