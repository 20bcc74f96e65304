package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/steampunk99/school-locator/internal/app/models"
	"github.com/steampunk99/school-locator/internal/pkg/apperrors"
	"github.com/steampunk99/school-locator/internal/pkg/dberrors"
	"github.com/steampunk99/school-locator/internal/pkg/logger"
)

// StaffRepository handles school staff database operations
type StaffRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStaffRepository creates a new StaffRepository
func NewStaffRepository(db *pgxpool.Pool) *StaffRepository {
	return &StaffRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a staff record and sets its generated ID
func (r *StaffRepository) Create(ctx context.Context, s *models.Staff) error {
	sql, args, err := r.sb.Insert("staff").
		Columns("user_id", "school_id", "position").
		Values(s.UserID, s.SchoolID, s.Position).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create staff query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&s.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "staff_user_school_key") {
			return apperrors.NewConflictError("user is already staff at this school")
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrResourceNotFound
		}
		logger.Error().Err(err).Int64("userID", s.UserID).Msg("Error executing create staff query")
		return fmt.Errorf("error creating staff record: %w", err)
	}

	return nil
}

// ListBySchool returns a school's staff with user details
func (r *StaffRepository) ListBySchool(ctx context.Context, schoolID int64) ([]models.Staff, error) {
	sql, args, err := r.sb.Select(
		"st.id", "st.user_id", "st.school_id", "st.position",
		"u.id", "u.username", "u.email", "u.first_name", "u.last_name").
		From("staff st").
		Join("users u ON u.id = st.user_id").
		Where(squirrel.Eq{"st.school_id": schoolID}).
		OrderBy("st.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list staff query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying staff: %w", err)
	}
	defer rows.Close()

	staff := []models.Staff{}
	for rows.Next() {
		var s models.Staff
		var user models.User
		err := rows.Scan(
			&s.ID, &s.UserID, &s.SchoolID, &s.Position,
			&user.ID, &user.Username, &user.Email, &user.FirstName, &user.LastName,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning staff row: %w", err)
		}
		s.User = &user
		staff = append(staff, s)
	}

	return staff, rows.Err()
}

// ListSchoolIDs returns the IDs of schools where the user holds a staff position
func (r *StaffRepository) ListSchoolIDs(ctx context.Context, userID int64) ([]int64, error) {
	sql, args, err := r.sb.Select("school_id").
		From("staff").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list staff schools query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying staff schools: %w", err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning staff school row: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// Delete removes a staff record
func (r *StaffRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("staff").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete staff query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("staffID", id).Msg("Error executing delete staff query")
		return fmt.Errorf("error deleting staff record: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}
