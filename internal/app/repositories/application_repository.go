package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/steampunk99/school-locator/internal/app/models"
	"github.com/steampunk99/school-locator/internal/pkg/apperrors"
	"github.com/steampunk99/school-locator/internal/pkg/dberrors"
	"github.com/steampunk99/school-locator/internal/pkg/logger"
)

// activeApplicationConstraint is the partial unique index that allows at
// most one Pending or Approved application per (user, school) pair.
const activeApplicationConstraint = "applications_active_user_school_key"

// ApplicationRepository handles admission application database operations
type ApplicationRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewApplicationRepository creates a new ApplicationRepository
func NewApplicationRepository(db *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new application. Concurrent submissions for the same
// (user, school) pair race on the partial unique index; the loser gets
// apperrors.ErrDuplicateApplication.
func (r *ApplicationRepository) Create(ctx context.Context, app *models.Application) error {
	now := time.Now()
	sql, args, err := r.sb.Insert("applications").
		Columns("user_id", "school_id", "application_status", "personal_info", "academic_info", "essay_answer",
			"payment_status", "payment_amount", "created_at").
		Values(app.UserID, app.SchoolID, app.Status, app.PersonalInfo, app.AcademicInfo, app.EssayAnswer,
			app.Payment.Status, app.Payment.Amount, now).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create application query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&app.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, activeApplicationConstraint) {
			return apperrors.ErrDuplicateApplication
		}
		logger.Error().Err(err).Int64("userID", app.UserID).Int64("schoolID", app.SchoolID).Msg("Error executing create application query")
		return fmt.Errorf("error creating application: %w", err)
	}

	app.CreatedAt = now
	return nil
}

// HasActiveApplication reports whether the user already has a Pending or
// Approved application for the school.
func (r *ApplicationRepository) HasActiveApplication(ctx context.Context, userID, schoolID int64) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("applications").
		Where(squirrel.Eq{
			"user_id":            userID,
			"school_id":          schoolID,
			"application_status": []models.ApplicationStatus{models.ApplicationPending, models.ApplicationApproved},
		}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build active application query: %w", err)
	}

	var one int
	err = r.db.QueryRow(ctx, sql, args...).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("error checking active application: %w", err)
	}
	return true, nil
}

// GetByID retrieves an application by ID
func (r *ApplicationRepository) GetByID(ctx context.Context, id int64) (*models.Application, error) {
	sql, args, err := r.sb.Select(
		"a.id", "a.user_id", "a.school_id", "a.application_status",
		"a.personal_info", "a.academic_info", "a.essay_answer",
		"a.payment_status", "a.payment_amount", "a.transaction_id", "a.payment_method",
		"a.created_at", "s.name").
		From("applications a").
		Join("schools s ON s.id = a.school_id").
		Where(squirrel.Eq{"a.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get application query: %w", err)
	}

	row := r.db.QueryRow(ctx, sql, args...)
	app, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrApplicationNotFound
		}
		logger.Error().Err(err).Int64("applicationID", id).Msg("Error scanning application row")
		return nil, fmt.Errorf("error retrieving application: %w", err)
	}

	return app, nil
}

// ListByUser returns all applications a user has submitted, newest first
func (r *ApplicationRepository) ListByUser(ctx context.Context, userID int64) ([]models.Application, error) {
	sql, args, err := r.sb.Select(
		"a.id", "a.user_id", "a.school_id", "a.application_status",
		"a.personal_info", "a.academic_info", "a.essay_answer",
		"a.payment_status", "a.payment_amount", "a.transaction_id", "a.payment_method",
		"a.created_at", "s.name").
		From("applications a").
		Join("schools s ON s.id = a.school_id").
		Where(squirrel.Eq{"a.user_id": userID}).
		OrderBy("a.created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list applications query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying applications: %w", err)
	}
	defer rows.Close()

	apps := []models.Application{}
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning application row: %w", err)
		}
		apps = append(apps, *app)
	}

	return apps, rows.Err()
}

// ListBySchool returns all applications for a school with applicant details,
// newest first.
func (r *ApplicationRepository) ListBySchool(ctx context.Context, schoolID int64) ([]models.Application, error) {
	sql, args, err := r.sb.Select(
		"a.id", "a.user_id", "a.school_id", "a.application_status",
		"a.personal_info", "a.academic_info", "a.essay_answer",
		"a.payment_status", "a.payment_amount", "a.transaction_id", "a.payment_method",
		"a.created_at", "s.name",
		"u.id", "u.username", "u.email", "u.first_name", "u.last_name", "u.phone_number").
		From("applications a").
		Join("schools s ON s.id = a.school_id").
		Join("users u ON u.id = a.user_id").
		Where(squirrel.Eq{"a.school_id": schoolID}).
		OrderBy("a.created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build school applications query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying school applications: %w", err)
	}
	defer rows.Close()

	apps := []models.Application{}
	for rows.Next() {
		var app models.Application
		var txnID, method *string
		var applicant models.User

		err := rows.Scan(
			&app.ID, &app.UserID, &app.SchoolID, &app.Status,
			&app.PersonalInfo, &app.AcademicInfo, &app.EssayAnswer,
			&app.Payment.Status, &app.Payment.Amount, &txnID, &method,
			&app.CreatedAt, &app.SchoolName,
			&applicant.ID, &applicant.Username, &applicant.Email, &applicant.FirstName, &applicant.LastName, &applicant.PhoneNumber,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning school application row: %w", err)
		}

		if txnID != nil {
			app.Payment.TransactionID = *txnID
		}
		if method != nil {
			app.Payment.Method = models.PaymentMethod(*method)
		}
		app.Applicant = &applicant
		apps = append(apps, app)
	}

	return apps, rows.Err()
}

// UpdateStatus overwrites an application's review status
func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id int64, status models.ApplicationStatus) error {
	sql, args, err := r.sb.Update("applications").
		Set("application_status", status).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update status query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("applicationID", id).Msg("Error executing update status query")
		return fmt.Errorf("error updating application status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrApplicationNotFound
	}
	return nil
}

// UpdatePayment records the outcome of a payment initiation
func (r *ApplicationRepository) UpdatePayment(ctx context.Context, id int64, status models.PaymentStatus, transactionID string, method models.PaymentMethod) error {
	sql, args, err := r.sb.Update("applications").
		Set("payment_status", status).
		Set("transaction_id", transactionID).
		Set("payment_method", method).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update payment query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("applicationID", id).Msg("Error executing update payment query")
		return fmt.Errorf("error updating payment: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrApplicationNotFound
	}
	return nil
}

// scanApplication reads one joined application row (without applicant columns)
func scanApplication(row pgx.Row) (*models.Application, error) {
	var app models.Application
	var txnID, method *string

	err := row.Scan(
		&app.ID, &app.UserID, &app.SchoolID, &app.Status,
		&app.PersonalInfo, &app.AcademicInfo, &app.EssayAnswer,
		&app.Payment.Status, &app.Payment.Amount, &txnID, &method,
		&app.CreatedAt, &app.SchoolName,
	)
	if err != nil {
		return nil, err
	}

	if txnID != nil {
		app.Payment.TransactionID = *txnID
	}
	if method != nil {
		app.Payment.Method = models.PaymentMethod(*method)
	}
	return &app, nil
}
