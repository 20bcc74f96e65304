package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/steampunk99/school-locator/internal/app/models"
	"github.com/steampunk99/school-locator/internal/app/models/dto"
	"github.com/steampunk99/school-locator/internal/pkg/logger"
)

// DashboardRepository runs the aggregation queries behind the admin dashboards
type DashboardRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewDashboardRepository creates a new DashboardRepository
func NewDashboardRepository(db *pgxpool.Pool) *DashboardRepository {
	return &DashboardRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CountRows counts all rows in a table
func (r *DashboardRepository) CountRows(ctx context.Context, table string) (int64, error) {
	sql, args, err := r.sb.Select("COUNT(*)").From(table).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		logger.Error().Err(err).Str("table", table).Msg("Error counting rows")
		return 0, fmt.Errorf("error counting %s: %w", table, err)
	}
	return total, nil
}

// CountByColumn buckets row counts by a column value, largest first
func (r *DashboardRepository) CountByColumn(ctx context.Context, table, column string) ([]dto.CountByKey, error) {
	sql, args, err := r.sb.Select(column, "COUNT(*)").
		From(table).
		GroupBy(column).
		OrderBy("COUNT(*) DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build count by column query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying %s distribution: %w", column, err)
	}
	defer rows.Close()

	counts := []dto.CountByKey{}
	for rows.Next() {
		var c dto.CountByKey
		if err := rows.Scan(&c.Key, &c.Count); err != nil {
			return nil, fmt.Errorf("error scanning distribution row: %w", err)
		}
		counts = append(counts, c)
	}

	return counts, rows.Err()
}

// RecentUsers returns the newest registered users
func (r *DashboardRepository) RecentUsers(ctx context.Context, limit int) ([]models.User, error) {
	sql, args, err := r.sb.Select("id", "username", "email", "role", "first_name", "last_name", "created_at").
		From("users").
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build recent users query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying recent users: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.Role, &u.FirstName, &u.LastName, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning recent user row: %w", err)
		}
		users = append(users, u)
	}

	return users, rows.Err()
}

// MonthlyUserGrowth counts registrations per calendar month over the last
// monthsBack months.
func (r *DashboardRepository) MonthlyUserGrowth(ctx context.Context, monthsBack int) ([]dto.MonthlyCount, error) {
	sql := `
		SELECT EXTRACT(YEAR FROM created_at)::int,
		       EXTRACT(MONTH FROM created_at)::int,
		       COUNT(*)
		FROM users
		WHERE created_at >= NOW() - ($1 || ' months')::interval
		GROUP BY 1, 2
		ORDER BY 1, 2`

	rows, err := r.db.Query(ctx, sql, monthsBack)
	if err != nil {
		return nil, fmt.Errorf("error querying user growth: %w", err)
	}
	defer rows.Close()

	counts := []dto.MonthlyCount{}
	for rows.Next() {
		var c dto.MonthlyCount
		if err := rows.Scan(&c.Year, &c.Month, &c.Count); err != nil {
			return nil, fmt.Errorf("error scanning user growth row: %w", err)
		}
		counts = append(counts, c)
	}

	return counts, rows.Err()
}

// MonthlyApplications counts applications per month and status over the last
// monthsBack months.
func (r *DashboardRepository) MonthlyApplications(ctx context.Context, monthsBack int) ([]dto.MonthlyCount, error) {
	sql := `
		SELECT EXTRACT(YEAR FROM created_at)::int,
		       EXTRACT(MONTH FROM created_at)::int,
		       application_status,
		       COUNT(*)
		FROM applications
		WHERE created_at >= NOW() - ($1 || ' months')::interval
		GROUP BY 1, 2, 3
		ORDER BY 1, 2`

	rows, err := r.db.Query(ctx, sql, monthsBack)
	if err != nil {
		return nil, fmt.Errorf("error querying monthly applications: %w", err)
	}
	defer rows.Close()

	counts := []dto.MonthlyCount{}
	for rows.Next() {
		var c dto.MonthlyCount
		if err := rows.Scan(&c.Year, &c.Month, &c.Status, &c.Count); err != nil {
			return nil, fmt.Errorf("error scanning monthly application row: %w", err)
		}
		counts = append(counts, c)
	}

	return counts, rows.Err()
}

// PaymentStats buckets application payments by status with summed amounts
func (r *DashboardRepository) PaymentStats(ctx context.Context) ([]dto.AmountByKey, error) {
	return r.amountByColumn(ctx, "payment_status", nil)
}

// PaymentMethodStats buckets completed payments by mobile-money method
func (r *DashboardRepository) PaymentMethodStats(ctx context.Context) ([]dto.AmountByKey, error) {
	return r.amountByColumn(ctx, "payment_method", squirrel.Eq{"payment_status": models.PaymentCompleted})
}

func (r *DashboardRepository) amountByColumn(ctx context.Context, column string, pred squirrel.Sqlizer) ([]dto.AmountByKey, error) {
	q := r.sb.Select(column, "COUNT(*)", "COALESCE(SUM(payment_amount), 0)").
		From("applications").
		Where(squirrel.NotEq{column: nil}).
		GroupBy(column).
		OrderBy("COUNT(*) DESC")
	if pred != nil {
		q = q.Where(pred)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build payment stats query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying payment stats: %w", err)
	}
	defer rows.Close()

	stats := []dto.AmountByKey{}
	for rows.Next() {
		var s dto.AmountByKey
		if err := rows.Scan(&s.Key, &s.Count, &s.TotalAmount); err != nil {
			return nil, fmt.Errorf("error scanning payment stats row: %w", err)
		}
		stats = append(stats, s)
	}

	return stats, rows.Err()
}
