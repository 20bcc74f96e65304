package services

import (
	"context"
	"time"

	"github.com/steampunk99/school-locator/internal/app/models"
	"github.com/steampunk99/school-locator/internal/app/models/dto"
	"github.com/steampunk99/school-locator/internal/app/repositories"
)

// Repository interfaces consumed by the services. The concrete
// implementations live in the repositories package; tests substitute fakes.

// UserStore is the user persistence surface used by services
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
}

// TokenStore is the refresh token persistence surface used by services
type TokenStore interface {
	CreateToken(ctx context.Context, token string, userID int64, expiresAt time.Time) error
	GetTokenUser(ctx context.Context, token string) (int64, error)
	RevokeToken(ctx context.Context, token string) error
	RotateToken(ctx context.Context, oldToken, newToken string, userID int64, expiresAt time.Time) error
	RevokeAllUserTokens(ctx context.Context, userID int64) error
}

// SchoolStore is the school persistence surface used by services
type SchoolStore interface {
	Create(ctx context.Context, s *models.School) error
	GetByID(ctx context.Context, id int64) (*models.School, error)
	GetAll(ctx context.Context, offset uint64, limit int) ([]models.School, int64, error)
	Search(ctx context.Context, f repositories.SchoolSearchFilters) ([]models.School, int64, error)
	FindSimilar(ctx context.Context, excludeID int64, category, region, schoolType string, limit int) ([]dto.SchoolSummary, error)
	Update(ctx context.Context, s *models.School) error
	Delete(ctx context.Context, id int64) error
	GetGallery(ctx context.Context, schoolID int64) ([]models.GalleryImage, error)
	AddGalleryImages(ctx context.Context, schoolID int64, images []models.GalleryImage) error
	GetGalleryImage(ctx context.Context, schoolID, imageID int64) (*models.GalleryImage, error)
	DeleteGalleryImage(ctx context.Context, schoolID, imageID int64) error
}

// ApplicationStore is the application persistence surface used by services
type ApplicationStore interface {
	Create(ctx context.Context, app *models.Application) error
	HasActiveApplication(ctx context.Context, userID, schoolID int64) (bool, error)
	GetByID(ctx context.Context, id int64) (*models.Application, error)
	ListByUser(ctx context.Context, userID int64) ([]models.Application, error)
	ListBySchool(ctx context.Context, schoolID int64) ([]models.Application, error)
	UpdateStatus(ctx context.Context, id int64, status models.ApplicationStatus) error
	UpdatePayment(ctx context.Context, id int64, status models.PaymentStatus, transactionID string, method models.PaymentMethod) error
}

// EnrollmentStore is the enrollment persistence surface used by services
type EnrollmentStore interface {
	Create(ctx context.Context, e *models.Enrollment) error
	GetByID(ctx context.Context, id int64) (*models.Enrollment, error)
	ListBySchool(ctx context.Context, schoolID int64) ([]models.Enrollment, error)
	UpdateStatus(ctx context.Context, id int64, status models.StudentStatus) error
}

// StaffStore is the staff persistence surface used by services
type StaffStore interface {
	Create(ctx context.Context, s *models.Staff) error
	ListBySchool(ctx context.Context, schoolID int64) ([]models.Staff, error)
	ListSchoolIDs(ctx context.Context, userID int64) ([]int64, error)
	Delete(ctx context.Context, id int64) error
}

// FeeStore is the fee persistence surface used by services
type FeeStore interface {
	Create(ctx context.Context, f *models.Fee) error
	ListBySchool(ctx context.Context, schoolID int64) ([]models.Fee, error)
	Delete(ctx context.Context, id int64) error
}

// ProgramStore is the program persistence surface used by services
type ProgramStore interface {
	Create(ctx context.Context, p *models.Program) error
	ListBySchool(ctx context.Context, schoolID int64) ([]models.Program, error)
	Delete(ctx context.Context, id int64) error
}

// DashboardStore is the aggregation surface used by the dashboard service
type DashboardStore interface {
	CountRows(ctx context.Context, table string) (int64, error)
	CountByColumn(ctx context.Context, table, column string) ([]dto.CountByKey, error)
	RecentUsers(ctx context.Context, limit int) ([]models.User, error)
	MonthlyUserGrowth(ctx context.Context, monthsBack int) ([]dto.MonthlyCount, error)
	MonthlyApplications(ctx context.Context, monthsBack int) ([]dto.MonthlyCount, error)
	PaymentStats(ctx context.Context) ([]dto.AmountByKey, error)
	PaymentMethodStats(ctx context.Context) ([]dto.AmountByKey, error)
}
