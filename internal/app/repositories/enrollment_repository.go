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

// EnrollmentRepository handles enrollment database operations
type EnrollmentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewEnrollmentRepository creates a new EnrollmentRepository
func NewEnrollmentRepository(db *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts an enrollment and sets its generated ID
func (r *EnrollmentRepository) Create(ctx context.Context, e *models.Enrollment) error {
	if e.EnrollmentDate.IsZero() {
		e.EnrollmentDate = time.Now()
	}

	sql, args, err := r.sb.Insert("enrollments").
		Columns("student_id", "school_id", "enrollment_date", "student_status").
		Values(e.StudentID, e.SchoolID, e.EnrollmentDate, e.StudentStatus).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create enrollment query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&e.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "enrollments_student_school_key") {
			return apperrors.NewConflictError("student is already enrolled in this school")
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrResourceNotFound
		}
		logger.Error().Err(err).Int64("studentID", e.StudentID).Msg("Error executing create enrollment query")
		return fmt.Errorf("error creating enrollment: %w", err)
	}

	return nil
}

// GetByID retrieves an enrollment by ID
func (r *EnrollmentRepository) GetByID(ctx context.Context, id int64) (*models.Enrollment, error) {
	sql, args, err := r.sb.Select("id", "student_id", "school_id", "enrollment_date", "student_status").
		From("enrollments").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get enrollment query: %w", err)
	}

	var e models.Enrollment
	err = r.db.QueryRow(ctx, sql, args...).Scan(&e.ID, &e.StudentID, &e.SchoolID, &e.EnrollmentDate, &e.StudentStatus)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("error retrieving enrollment: %w", err)
	}

	return &e, nil
}

// ListBySchool returns a school's enrollments with student details
func (r *EnrollmentRepository) ListBySchool(ctx context.Context, schoolID int64) ([]models.Enrollment, error) {
	sql, args, err := r.sb.Select(
		"e.id", "e.student_id", "e.school_id", "e.enrollment_date", "e.student_status",
		"u.id", "u.username", "u.email", "u.first_name", "u.last_name").
		From("enrollments e").
		Join("users u ON u.id = e.student_id").
		Where(squirrel.Eq{"e.school_id": schoolID}).
		OrderBy("e.enrollment_date DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list enrollments query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying enrollments: %w", err)
	}
	defer rows.Close()

	enrollments := []models.Enrollment{}
	for rows.Next() {
		var e models.Enrollment
		var student models.User
		err := rows.Scan(
			&e.ID, &e.StudentID, &e.SchoolID, &e.EnrollmentDate, &e.StudentStatus,
			&student.ID, &student.Username, &student.Email, &student.FirstName, &student.LastName,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning enrollment row: %w", err)
		}
		e.Student = &student
		enrollments = append(enrollments, e)
	}

	return enrollments, rows.Err()
}

// UpdateStatus overwrites an enrollment's student status
func (r *EnrollmentRepository) UpdateStatus(ctx context.Context, id int64, status models.StudentStatus) error {
	sql, args, err := r.sb.Update("enrollments").
		Set("student_status", status).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update enrollment status query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("enrollmentID", id).Msg("Error executing update enrollment status query")
		return fmt.Errorf("error updating enrollment status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEnrollmentNotFound
	}
	return nil
}
