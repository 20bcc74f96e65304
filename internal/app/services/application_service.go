package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/steampunk99/school-locator/internal/app/models"
	"github.com/steampunk99/school-locator/internal/app/models/dto"
	"github.com/steampunk99/school-locator/internal/pkg/apperrors"
	"github.com/steampunk99/school-locator/internal/pkg/email"
	"github.com/steampunk99/school-locator/internal/pkg/payments"
	"github.com/steampunk99/school-locator/internal/pkg/validation"
)

const paymentCurrency = "UGX"

// ApplicationService handles admission application workflow
type ApplicationService struct {
	appRepo    ApplicationStore
	schoolRepo SchoolStore
	userRepo   UserStore
	staffRepo  StaffStore
	emails     email.EmailService
	providers  *payments.Registry
	logger     zerolog.Logger
	now        func() time.Time
}

// NewApplicationService creates a new ApplicationService
func NewApplicationService(
	appRepo ApplicationStore,
	schoolRepo SchoolStore,
	userRepo UserStore,
	staffRepo StaffStore,
	emails email.EmailService,
	providers *payments.Registry,
	logger zerolog.Logger,
) *ApplicationService {
	return &ApplicationService{
		appRepo:    appRepo,
		schoolRepo: schoolRepo,
		userRepo:   userRepo,
		staffRepo:  staffRepo,
		emails:     emails,
		providers:  providers,
		logger:     logger,
		now:        time.Now,
	}
}

// Submit files an admission application. Checks run in a fixed order:
// required fields, duplicate application, school active, deadline, spots.
// The partial unique index on applications closes the race between the
// duplicate check and the insert; a losing concurrent submit surfaces as
// ErrDuplicateApplication.
func (s *ApplicationService) Submit(ctx context.Context, userID int64, req *dto.SubmitApplicationRequest) (*dto.SubmitApplicationResponse, error) {
	if fields := missingSubmitFields(req); len(fields) > 0 {
		return nil, apperrors.NewValidationError("missing required application fields", fields)
	}

	exists, err := s.appRepo.HasActiveApplication(ctx, userID, req.SchoolID)
	if err != nil {
		return nil, fmt.Errorf("error checking existing applications: %w", err)
	}
	if exists {
		return nil, apperrors.ErrDuplicateApplication
	}

	school, err := s.schoolRepo.GetByID(ctx, req.SchoolID)
	if err != nil {
		return nil, err
	}
	if !school.Metadata.IsActive {
		return nil, apperrors.ErrSchoolNotFound
	}

	if s.now().After(school.Admissions.ApplicationDeadline) {
		return nil, apperrors.ErrAdmissionsClosed
	}

	spots := school.Admissions.AvailableSpots
	if spots.DayStudents <= 0 && spots.BoardingStudents <= 0 {
		return nil, apperrors.ErrNoAvailableSpots
	}

	app := &models.Application{
		UserID:       userID,
		SchoolID:     req.SchoolID,
		Status:       models.ApplicationPending,
		PersonalInfo: req.PersonalInfo,
		AcademicInfo: req.AcademicInfo,
		EssayAnswer:  req.EssayAnswer,
		Payment: models.Payment{
			Status: models.PaymentPending,
			Amount: school.Fees.AdmissionFee,
		},
	}

	if err := s.appRepo.Create(ctx, app); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("applicationID", app.ID).
		Int64("userID", userID).
		Int64("schoolID", req.SchoolID).
		Msg("Application submitted")

	s.notifySubmission(userID, school)

	return &dto.SubmitApplicationResponse{
		Message:       "Application submitted successfully",
		ApplicationID: app.ID,
		PaymentAmount: school.Fees.AdmissionFee,
	}, nil
}

// missingSubmitFields collects the required fields absent from the request
func missingSubmitFields(req *dto.SubmitApplicationRequest) map[string]string {
	fields := map[string]string{}
	if req.SchoolID <= 0 {
		fields["schoolId"] = "required"
	}
	if strings.TrimSpace(req.PersonalInfo.Name) == "" {
		fields["personalInfo.name"] = "required"
	}
	if req.PersonalInfo.DateOfBirth.IsZero() {
		fields["personalInfo.dateOfBirth"] = "required"
	}
	if strings.TrimSpace(req.PersonalInfo.Gender) == "" {
		fields["personalInfo.gender"] = "required"
	}
	if strings.TrimSpace(req.AcademicInfo.PreviousSchool) == "" {
		fields["academicInfo.previousSchool"] = "required"
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// notifySubmission sends confirmation emails in the background. Failures
// are logged and never affect the submission.
func (s *ApplicationService) notifySubmission(userID int64, school *models.School) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		user, err := s.userRepo.GetByID(ctx, userID)
		if err != nil {
			s.logger.Warn().Err(err).Int64("userID", userID).Msg("Could not load applicant for notification email")
			return
		}

		if err := s.emails.SendApplicationSubmitted(user.Email, user.FirstName, school.Name); err != nil {
			s.logger.Warn().Err(err).Str("email", user.Email).Msg("Failed to send application confirmation email")
		}
		if school.Contact.Email != "" {
			applicant := strings.TrimSpace(user.FirstName + " " + user.LastName)
			if err := s.emails.SendSchoolNotification(school.Contact.Email, school.Name, applicant); err != nil {
				s.logger.Warn().Err(err).Str("email", school.Contact.Email).Msg("Failed to send school notification email")
			}
		}
	}()
}

// ProcessPayment initiates the admission fee collection for an application.
// The idempotency key derives from the application ID, so a retried request
// can never double-charge.
func (s *ApplicationService) ProcessPayment(ctx context.Context, userID int64, req *dto.ProcessPaymentRequest) (*dto.ProcessPaymentResponse, error) {
	method := models.PaymentMethod(req.PaymentMethod)
	if method != models.PaymentMTNUganda && method != models.PaymentAirtelUganda {
		return nil, apperrors.ErrInvalidPaymentMethod
	}
	if !validation.IsValidPhoneNumber(req.PhoneNumber) {
		return nil, apperrors.ErrInvalidPhoneNumber
	}

	app, err := s.appRepo.GetByID(ctx, req.ApplicationID)
	if err != nil {
		return nil, err
	}
	if app.UserID != userID {
		return nil, apperrors.ErrPermissionDenied
	}
	if app.Payment.Status == models.PaymentCompleted {
		return nil, apperrors.ErrPaymentCompleted
	}

	provider, err := s.providers.Get(string(method))
	if err != nil {
		return nil, apperrors.ErrInvalidPaymentMethod
	}

	result, err := provider.Initiate(ctx, payments.Request{
		IdempotencyKey: fmt.Sprintf("application-%d", app.ID),
		Amount:         app.Payment.Amount,
		Currency:       paymentCurrency,
		PhoneNumber:    req.PhoneNumber,
		Reference:      fmt.Sprintf("Admission fee for %s", app.SchoolName),
	})
	if err != nil {
		s.logger.Error().Err(err).Int64("applicationID", app.ID).Msg("Payment initiation failed")
		return nil, fmt.Errorf("%w: %v", apperrors.ErrExternalService, err)
	}

	status := models.PaymentProcessing
	if result.Status == "Completed" {
		status = models.PaymentCompleted
	}

	if err := s.appRepo.UpdatePayment(ctx, app.ID, status, result.TransactionID, method); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("applicationID", app.ID).
		Str("transactionID", result.TransactionID).
		Str("method", string(method)).
		Msg("Payment initiated")

	return &dto.ProcessPaymentResponse{
		Message:       "Payment initiated successfully",
		TransactionID: result.TransactionID,
		Status:        string(status),
	}, nil
}

// ListByUser returns the caller's applications
func (s *ApplicationService) ListByUser(ctx context.Context, userID int64) ([]models.Application, error) {
	return s.appRepo.ListByUser(ctx, userID)
}

// ListBySchool returns a school's applications with applicant details
func (s *ApplicationService) ListBySchool(ctx context.Context, schoolID int64) ([]models.Application, error) {
	if _, err := s.schoolRepo.GetByID(ctx, schoolID); err != nil {
		return nil, err
	}
	return s.appRepo.ListBySchool(ctx, schoolID)
}

// UpdateStatus overwrites an application's review status and notifies the
// applicant on a best-effort basis. Admins holding staff positions may only
// review applications to their own schools; superadmins review anything.
func (s *ApplicationService) UpdateStatus(ctx context.Context, actorID int64, actorRole models.RoleType, applicationID int64, status models.ApplicationStatus) (*models.Application, error) {
	if !models.ValidApplicationStatus(status) {
		return nil, apperrors.NewValidationError("invalid application status", map[string]string{"applicationStatus": "must be Pending, Approved or Rejected"})
	}

	app, err := s.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if err := s.checkReviewAccess(ctx, actorID, actorRole, app.SchoolID); err != nil {
		return nil, err
	}
	if app.Status == models.ApplicationApproved && status == models.ApplicationApproved {
		return nil, apperrors.ErrAlreadyApproved
	}

	if err := s.appRepo.UpdateStatus(ctx, applicationID, status); err != nil {
		return nil, err
	}
	app.Status = status

	s.logger.Info().
		Int64("applicationID", applicationID).
		Str("status", string(status)).
		Msg("Application status updated")

	s.notifyStatusChange(app)

	return app, nil
}

// checkReviewAccess denies admins attached to other schools. Admins with no
// staff record are treated as platform-wide.
func (s *ApplicationService) checkReviewAccess(ctx context.Context, actorID int64, actorRole models.RoleType, schoolID int64) error {
	if actorRole == models.RoleSuperAdmin {
		return nil
	}

	schoolIDs, err := s.staffRepo.ListSchoolIDs(ctx, actorID)
	if err != nil {
		return err
	}
	if len(schoolIDs) == 0 {
		return nil
	}
	for _, id := range schoolIDs {
		if id == schoolID {
			return nil
		}
	}
	return apperrors.NewForbiddenError("you can only review applications to your own school")
}

// notifyStatusChange emails the applicant in the background; failures are
// logged and swallowed.
func (s *ApplicationService) notifyStatusChange(app *models.Application) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		user, err := s.userRepo.GetByID(ctx, app.UserID)
		if err != nil {
			s.logger.Warn().Err(err).Int64("userID", app.UserID).Msg("Could not load applicant for status email")
			return
		}

		if err := s.emails.SendApplicationStatusUpdate(user.Email, user.FirstName, app.SchoolName, string(app.Status)); err != nil {
			s.logger.Warn().Err(err).Str("email", user.Email).Msg("Failed to send status update email")
		}
	}()
}
