package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steampunk99/school-locator/internal/app/models"
	"github.com/steampunk99/school-locator/internal/app/models/dto"
	"github.com/steampunk99/school-locator/internal/pkg/apperrors"
	"github.com/steampunk99/school-locator/internal/pkg/payments"
)

// recordingProvider captures the collection request it receives
type recordingProvider struct {
	name    string
	status  string
	initErr error
	lastReq *payments.Request
}

func (p *recordingProvider) Name() string { return p.name }

func (p *recordingProvider) Initiate(ctx context.Context, req payments.Request) (*payments.Result, error) {
	p.lastReq = &req
	if p.initErr != nil {
		return nil, p.initErr
	}
	return &payments.Result{
		TransactionID: "TXN-REC-1",
		Status:        p.status,
		InitiatedAt:   time.Now(),
	}, nil
}

func openSchool(id int64) *models.School {
	return &models.School{
		ID:   id,
		Name: "Gayaza High School",
		Fees: models.SchoolFees{AdmissionFee: 50000},
		Contact: models.Contact{
			Email: "admissions@gayaza.ac.ug",
		},
		Admissions: models.Admissions{
			ApplicationDeadline: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
			AvailableSpots:      models.AvailableSpots{DayStudents: 20, BoardingStudents: 40},
		},
		Metadata: models.Metadata{IsActive: true},
	}
}

func validSubmitRequest(schoolID int64) *dto.SubmitApplicationRequest {
	return &dto.SubmitApplicationRequest{
		SchoolID: schoolID,
		PersonalInfo: models.PersonalInfo{
			Name:        "Sarah Nankya",
			DateOfBirth: time.Date(2010, 3, 14, 0, 0, 0, 0, time.UTC),
			Gender:      "Female",
		},
		AcademicInfo: models.AcademicInfo{
			PreviousSchool: "Buganda Road Primary School",
		},
	}
}

type applicationServiceFixture struct {
	service  *ApplicationService
	apps     *fakeApplicationStore
	schools  *fakeSchoolStore
	users    *fakeUserStore
	staff    *fakeStaffStore
	emails   *fakeEmailService
	provider *recordingProvider
}

func newApplicationServiceFixture(apps *fakeApplicationStore, schools *fakeSchoolStore) *applicationServiceFixture {
	users := newFakeUserStore(&models.User{
		ID:        1,
		Email:     "nankya@example.ug",
		FirstName: "Sarah",
		LastName:  "Nankya",
	})
	staff := newFakeStaffStore()
	emails := &fakeEmailService{}
	provider := &recordingProvider{name: "MTN-Uganda", status: "Completed"}

	svc := NewApplicationService(apps, schools, users, staff, emails, payments.NewRegistry(provider), zerolog.Nop())

	return &applicationServiceFixture{
		service:  svc,
		apps:     apps,
		schools:  schools,
		users:    users,
		staff:    staff,
		emails:   emails,
		provider: provider,
	}
}

func TestSubmit(t *testing.T) {
	f := newApplicationServiceFixture(newFakeApplicationStore(), newFakeSchoolStore(openSchool(10)))

	resp, err := f.service.Submit(context.Background(), 1, validSubmitRequest(10))
	require.NoError(t, err)
	assert.NotZero(t, resp.ApplicationID)
	assert.Equal(t, 50000.0, resp.PaymentAmount)

	app, err := f.apps.GetByID(context.Background(), resp.ApplicationID)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationPending, app.Status)
	assert.Equal(t, models.PaymentPending, app.Payment.Status)
	assert.Equal(t, 50000.0, app.Payment.Amount)

	// Confirmation emails go out in the background to applicant and school
	assert.Eventually(t, func() bool {
		f.emails.mu.Lock()
		defer f.emails.mu.Unlock()
		return len(f.emails.submitted) == 1 && len(f.emails.notified) == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestSubmit_MissingFields(t *testing.T) {
	f := newApplicationServiceFixture(newFakeApplicationStore(), newFakeSchoolStore(openSchool(10)))

	req := validSubmitRequest(10)
	req.PersonalInfo.Name = ""
	req.AcademicInfo.PreviousSchool = ""

	_, err := f.service.Submit(context.Background(), 1, req)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	var custom *apperrors.CustomError
	require.True(t, errors.As(err, &custom))
}

func TestSubmit_DuplicateCheckedBeforeSchool(t *testing.T) {
	// The existing application references a school that is absent from the
	// store, so a duplicate error proves the check order.
	apps := newFakeApplicationStore(&models.Application{
		ID:       1,
		UserID:   1,
		SchoolID: 10,
		Status:   models.ApplicationPending,
	})
	f := newApplicationServiceFixture(apps, newFakeSchoolStore())

	_, err := f.service.Submit(context.Background(), 1, validSubmitRequest(10))
	assert.ErrorIs(t, err, apperrors.ErrDuplicateApplication)
}

func TestSubmit_RejectedApplicationDoesNotBlock(t *testing.T) {
	apps := newFakeApplicationStore(&models.Application{
		ID:       1,
		UserID:   1,
		SchoolID: 10,
		Status:   models.ApplicationRejected,
	})
	f := newApplicationServiceFixture(apps, newFakeSchoolStore(openSchool(10)))

	_, err := f.service.Submit(context.Background(), 1, validSubmitRequest(10))
	assert.NoError(t, err)
}

func TestSubmit_InactiveSchool(t *testing.T) {
	school := openSchool(10)
	school.Metadata.IsActive = false
	f := newApplicationServiceFixture(newFakeApplicationStore(), newFakeSchoolStore(school))

	_, err := f.service.Submit(context.Background(), 1, validSubmitRequest(10))
	assert.ErrorIs(t, err, apperrors.ErrSchoolNotFound)
}

func TestSubmit_DeadlinePassed(t *testing.T) {
	school := openSchool(10)
	school.Admissions.ApplicationDeadline = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	// With the deadline passed and no spots left, the deadline error wins
	school.Admissions.AvailableSpots.DayStudents = 0
	school.Admissions.AvailableSpots.BoardingStudents = 0
	f := newApplicationServiceFixture(newFakeApplicationStore(), newFakeSchoolStore(school))
	f.service.now = func() time.Time { return time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC) }

	_, err := f.service.Submit(context.Background(), 1, validSubmitRequest(10))
	assert.ErrorIs(t, err, apperrors.ErrAdmissionsClosed)
}

func TestSubmit_NoAvailableSpots(t *testing.T) {
	school := openSchool(10)
	school.Admissions.AvailableSpots = models.AvailableSpots{}
	f := newApplicationServiceFixture(newFakeApplicationStore(), newFakeSchoolStore(school))

	_, err := f.service.Submit(context.Background(), 1, validSubmitRequest(10))
	assert.ErrorIs(t, err, apperrors.ErrNoAvailableSpots)
}

func TestSubmit_OneSpotCategoryOpen(t *testing.T) {
	// A negative boarding counter must not hide genuinely open day spots
	school := openSchool(10)
	school.Admissions.AvailableSpots = models.AvailableSpots{DayStudents: 5, BoardingStudents: -5}
	f := newApplicationServiceFixture(newFakeApplicationStore(), newFakeSchoolStore(school))

	resp, err := f.service.Submit(context.Background(), 1, validSubmitRequest(10))
	require.NoError(t, err)
	assert.NotZero(t, resp.ApplicationID)
}

func pendingApplication(id, userID int64) *models.Application {
	return &models.Application{
		ID:         id,
		UserID:     userID,
		SchoolID:   10,
		Status:     models.ApplicationPending,
		SchoolName: "Gayaza High School",
		Payment: models.Payment{
			Status: models.PaymentPending,
			Amount: 50000,
		},
	}
}

func TestProcessPayment(t *testing.T) {
	apps := newFakeApplicationStore(pendingApplication(1, 1))
	f := newApplicationServiceFixture(apps, newFakeSchoolStore())

	resp, err := f.service.ProcessPayment(context.Background(), 1, &dto.ProcessPaymentRequest{
		ApplicationID: 1,
		PaymentMethod: "MTN-Uganda",
		PhoneNumber:   "0772123456",
	})
	require.NoError(t, err)
	assert.Equal(t, "TXN-REC-1", resp.TransactionID)
	assert.Equal(t, "Completed", resp.Status)

	// Idempotency key is derived from the application ID
	require.NotNil(t, f.provider.lastReq)
	assert.Equal(t, "application-1", f.provider.lastReq.IdempotencyKey)
	assert.Equal(t, "UGX", f.provider.lastReq.Currency)
	assert.Equal(t, 50000.0, f.provider.lastReq.Amount)

	app, err := f.apps.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentCompleted, app.Payment.Status)
	assert.Equal(t, "TXN-REC-1", app.Payment.TransactionID)
	assert.Equal(t, models.PaymentMTNUganda, app.Payment.Method)
}

func TestProcessPayment_ProcessingStatus(t *testing.T) {
	apps := newFakeApplicationStore(pendingApplication(1, 1))
	f := newApplicationServiceFixture(apps, newFakeSchoolStore())
	f.provider.status = "Processing"

	resp, err := f.service.ProcessPayment(context.Background(), 1, &dto.ProcessPaymentRequest{
		ApplicationID: 1,
		PaymentMethod: "MTN-Uganda",
		PhoneNumber:   "0772123456",
	})
	require.NoError(t, err)
	assert.Equal(t, string(models.PaymentProcessing), resp.Status)
}

func TestProcessPayment_Validation(t *testing.T) {
	tests := []struct {
		name    string
		req     *dto.ProcessPaymentRequest
		wantErr error
	}{
		{
			name:    "unknown method",
			req:     &dto.ProcessPaymentRequest{ApplicationID: 1, PaymentMethod: "Vodafone", PhoneNumber: "0772123456"},
			wantErr: apperrors.ErrInvalidPaymentMethod,
		},
		{
			name:    "bad phone number",
			req:     &dto.ProcessPaymentRequest{ApplicationID: 1, PaymentMethod: "MTN-Uganda", PhoneNumber: "12345"},
			wantErr: apperrors.ErrInvalidPhoneNumber,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apps := newFakeApplicationStore(pendingApplication(1, 1))
			f := newApplicationServiceFixture(apps, newFakeSchoolStore())

			_, err := f.service.ProcessPayment(context.Background(), 1, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestProcessPayment_NotOwner(t *testing.T) {
	apps := newFakeApplicationStore(pendingApplication(1, 1))
	f := newApplicationServiceFixture(apps, newFakeSchoolStore())

	_, err := f.service.ProcessPayment(context.Background(), 2, &dto.ProcessPaymentRequest{
		ApplicationID: 1,
		PaymentMethod: "MTN-Uganda",
		PhoneNumber:   "0772123456",
	})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestProcessPayment_AlreadyCompleted(t *testing.T) {
	app := pendingApplication(1, 1)
	app.Payment.Status = models.PaymentCompleted
	f := newApplicationServiceFixture(newFakeApplicationStore(app), newFakeSchoolStore())

	_, err := f.service.ProcessPayment(context.Background(), 1, &dto.ProcessPaymentRequest{
		ApplicationID: 1,
		PaymentMethod: "MTN-Uganda",
		PhoneNumber:   "0772123456",
	})
	assert.ErrorIs(t, err, apperrors.ErrPaymentCompleted)
	assert.Nil(t, f.provider.lastReq)
}

func TestProcessPayment_ProviderFailure(t *testing.T) {
	apps := newFakeApplicationStore(pendingApplication(1, 1))
	f := newApplicationServiceFixture(apps, newFakeSchoolStore())
	f.provider.initErr = payments.ErrProviderUnavailable

	_, err := f.service.ProcessPayment(context.Background(), 1, &dto.ProcessPaymentRequest{
		ApplicationID: 1,
		PaymentMethod: "MTN-Uganda",
		PhoneNumber:   "0772123456",
	})
	assert.ErrorIs(t, err, apperrors.ErrExternalService)

	// Payment state is untouched on failure
	app, getErr := f.apps.GetByID(context.Background(), 1)
	require.NoError(t, getErr)
	assert.Equal(t, models.PaymentPending, app.Payment.Status)
}

func TestUpdateStatus(t *testing.T) {
	apps := newFakeApplicationStore(pendingApplication(1, 1))
	f := newApplicationServiceFixture(apps, newFakeSchoolStore())

	app, err := f.service.UpdateStatus(context.Background(), 5, models.RoleAdmin, 1, models.ApplicationApproved)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationApproved, app.Status)

	// The applicant gets a status email in the background
	assert.Eventually(t, func() bool {
		f.emails.mu.Lock()
		defer f.emails.mu.Unlock()
		return len(f.emails.statuses) == 1 && f.emails.statuses[0] == "Approved"
	}, 2*time.Second, 10*time.Millisecond)
}

func TestUpdateStatus_InvalidStatus(t *testing.T) {
	apps := newFakeApplicationStore(pendingApplication(1, 1))
	f := newApplicationServiceFixture(apps, newFakeSchoolStore())

	_, err := f.service.UpdateStatus(context.Background(), 5, models.RoleAdmin, 1, models.ApplicationStatus("Archived"))
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestUpdateStatus_AlreadyApproved(t *testing.T) {
	app := pendingApplication(1, 1)
	app.Status = models.ApplicationApproved
	f := newApplicationServiceFixture(newFakeApplicationStore(app), newFakeSchoolStore())

	_, err := f.service.UpdateStatus(context.Background(), 5, models.RoleAdmin, 1, models.ApplicationApproved)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyApproved)

	// Approving a rejected application is allowed
	app.Status = models.ApplicationRejected
	updated, err := f.service.UpdateStatus(context.Background(), 5, models.RoleAdmin, 1, models.ApplicationApproved)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationApproved, updated.Status)
}

func TestUpdateStatus_OtherSchoolStaffForbidden(t *testing.T) {
	apps := newFakeApplicationStore(pendingApplication(1, 1))
	f := newApplicationServiceFixture(apps, newFakeSchoolStore())

	// Actor 5 is staff of school 20; the application targets school 10
	require.NoError(t, f.staff.Create(context.Background(), &models.Staff{UserID: 5, SchoolID: 20, Position: "Registrar"}))

	_, err := f.service.UpdateStatus(context.Background(), 5, models.RoleAdmin, 1, models.ApplicationApproved)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	// A superadmin reviews regardless of staff assignment
	require.NoError(t, f.staff.Create(context.Background(), &models.Staff{UserID: 6, SchoolID: 20, Position: "Head Teacher"}))
	app, err := f.service.UpdateStatus(context.Background(), 6, models.RoleSuperAdmin, 1, models.ApplicationApproved)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationApproved, app.Status)
}

func TestUpdateStatus_OwnSchoolStaffAllowed(t *testing.T) {
	apps := newFakeApplicationStore(pendingApplication(1, 1))
	f := newApplicationServiceFixture(apps, newFakeSchoolStore())

	require.NoError(t, f.staff.Create(context.Background(), &models.Staff{UserID: 5, SchoolID: 10, Position: "Registrar"}))

	app, err := f.service.UpdateStatus(context.Background(), 5, models.RoleAdmin, 1, models.ApplicationApproved)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationApproved, app.Status)
}

func TestListBySchool_VerifiesSchool(t *testing.T) {
	f := newApplicationServiceFixture(newFakeApplicationStore(), newFakeSchoolStore())

	_, err := f.service.ListBySchool(context.Background(), 99)
	assert.ErrorIs(t, err, apperrors.ErrSchoolNotFound)
}
