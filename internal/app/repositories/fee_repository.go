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

// FeeRepository handles school fee database operations
type FeeRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewFeeRepository creates a new FeeRepository
func NewFeeRepository(db *pgxpool.Pool) *FeeRepository {
	return &FeeRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a fee item and sets its generated ID
func (r *FeeRepository) Create(ctx context.Context, f *models.Fee) error {
	sql, args, err := r.sb.Insert("fees").
		Columns("school_id", "name", "amount", "due_date", "description").
		Values(f.SchoolID, f.Name, f.Amount, f.DueDate, f.Description).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create fee query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&f.ID)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrSchoolNotFound
		}
		logger.Error().Err(err).Int64("schoolID", f.SchoolID).Msg("Error executing create fee query")
		return fmt.Errorf("error creating fee: %w", err)
	}

	return nil
}

// ListBySchool returns all fee items a school has defined
func (r *FeeRepository) ListBySchool(ctx context.Context, schoolID int64) ([]models.Fee, error) {
	sql, args, err := r.sb.Select("id", "school_id", "name", "amount", "due_date", "description").
		From("fees").
		Where(squirrel.Eq{"school_id": schoolID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list fees query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying fees: %w", err)
	}
	defer rows.Close()

	fees := []models.Fee{}
	for rows.Next() {
		var f models.Fee
		if err := rows.Scan(&f.ID, &f.SchoolID, &f.Name, &f.Amount, &f.DueDate, &f.Description); err != nil {
			return nil, fmt.Errorf("error scanning fee row: %w", err)
		}
		fees = append(fees, f)
	}

	return fees, rows.Err()
}

// Delete removes a fee item
func (r *FeeRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("fees").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete fee query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("feeID", id).Msg("Error executing delete fee query")
		return fmt.Errorf("error deleting fee: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}
