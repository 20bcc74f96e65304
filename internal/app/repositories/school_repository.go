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
	"github.com/steampunk99/school-locator/internal/app/models/dto"
	"github.com/steampunk99/school-locator/internal/pkg/apperrors"
	"github.com/steampunk99/school-locator/internal/pkg/logger"
)

// schoolColumns is the full projection used by every school SELECT
var schoolColumns = []string{
	"id", "name", "description",
	"district", "region", "address", "longitude", "latitude",
	"type", "category",
	"admission_fee", "tuition_day", "tuition_boarding", "other_fees",
	"curriculum", "subjects", "performance", "facilities",
	"contact_email", "contact_phone", "alternative_phone", "website", "logo",
	"application_deadline", "day_spots", "boarding_spots", "requirements", "term_dates",
	"stats", "extra_curricular",
	"is_verified", "is_active", "subscription_tier",
	"created_at", "updated_at",
}

// SchoolSearchFilters is the normalized filter set for directory search.
// Types carries the attendance models to match; an empty slice means any.
type SchoolSearchFilters struct {
	Query      string
	District   string
	Region     string
	Types      []string
	Category   string
	Curriculum string
	MaxTuition float64
	SortBy     string
	SortOrder  string
	Offset     uint64
	Limit      int
}

// SchoolRepository handles school database operations
type SchoolRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewSchoolRepository creates a new SchoolRepository
func NewSchoolRepository(db *pgxpool.Pool) *SchoolRepository {
	return &SchoolRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new school and sets its generated ID
func (r *SchoolRepository) Create(ctx context.Context, s *models.School) error {
	now := time.Now()
	sql, args, err := r.sb.Insert("schools").
		Columns(
			"name", "description",
			"district", "region", "address", "longitude", "latitude",
			"type", "category",
			"admission_fee", "tuition_day", "tuition_boarding", "other_fees",
			"curriculum", "subjects", "performance", "facilities",
			"contact_email", "contact_phone", "alternative_phone", "website", "logo",
			"application_deadline", "day_spots", "boarding_spots", "requirements", "term_dates",
			"stats", "extra_curricular",
			"is_verified", "is_active", "subscription_tier",
			"created_at", "updated_at",
		).
		Values(
			s.Name, s.Description,
			s.Location.District, s.Location.Region, s.Location.Address, s.Location.Longitude, s.Location.Latitude,
			s.Type, s.Category,
			s.Fees.AdmissionFee, s.Fees.TuitionDay, s.Fees.TuitionBoarding, s.Fees.OtherFees,
			s.Curriculum, s.Subjects, s.Performance, s.Facilities,
			s.Contact.Email, s.Contact.Phone, s.Contact.AlternativePhone, s.Contact.Website, s.Media.Logo,
			s.Admissions.ApplicationDeadline, s.Admissions.AvailableSpots.DayStudents, s.Admissions.AvailableSpots.BoardingStudents, s.Admissions.Requirements, s.Admissions.TermDates,
			s.Stats, s.ExtraCurricular,
			s.Metadata.IsVerified, s.Metadata.IsActive, s.Metadata.SubscriptionTier,
			now, now,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create school query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&s.ID)
	if err != nil {
		logger.Error().Err(err).Str("name", s.Name).Msg("Error executing create school query")
		return fmt.Errorf("error creating school: %w", err)
	}

	s.CreatedAt = now
	s.UpdatedAt = now
	return nil
}

// GetByID retrieves a school by ID, gallery included
func (r *SchoolRepository) GetByID(ctx context.Context, id int64) (*models.School, error) {
	sql, args, err := r.sb.Select(schoolColumns...).
		From("schools").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get school query: %w", err)
	}

	row := r.db.QueryRow(ctx, sql, args...)
	school, err := scanSchool(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSchoolNotFound
		}
		logger.Error().Err(err).Int64("schoolID", id).Msg("Error scanning school row")
		return nil, fmt.Errorf("error retrieving school: %w", err)
	}

	gallery, err := r.GetGallery(ctx, id)
	if err != nil {
		return nil, err
	}
	school.Media.Gallery = gallery

	return school, nil
}

// GetAll retrieves a page of schools ordered by name, with the total count
func (r *SchoolRepository) GetAll(ctx context.Context, offset uint64, limit int) ([]models.School, int64, error) {
	countSQL, countArgs, err := r.sb.Select("COUNT(*)").From("schools").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count schools query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting schools: %w", err)
	}

	sql, args, err := r.sb.Select(schoolColumns...).
		From("schools").
		OrderBy("name ASC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list schools query: %w", err)
	}

	schools, err := r.querySchools(ctx, sql, args...)
	if err != nil {
		return nil, 0, err
	}

	return schools, total, nil
}

// Search runs a filtered directory search over active schools
func (r *SchoolRepository) Search(ctx context.Context, f SchoolSearchFilters) ([]models.School, int64, error) {
	base := r.buildSearchQuery(f)

	countSQL, countArgs, err := base.Columns("COUNT(*)").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build search count query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error counting search results")
		return nil, 0, fmt.Errorf("error counting schools: %w", err)
	}

	sql, args, err := r.buildSearchQuery(f).
		Columns(schoolColumns...).
		OrderBy(searchOrderClause(f.SortBy, f.SortOrder)).
		Offset(f.Offset).
		Limit(uint64(f.Limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build search query: %w", err)
	}

	schools, err := r.querySchools(ctx, sql, args...)
	if err != nil {
		return nil, 0, err
	}

	return schools, total, nil
}

// buildSearchQuery translates filters into a squirrel builder without
// projection, ordering or paging, so count and page queries share it.
// Only active schools are ever searchable.
func (r *SchoolRepository) buildSearchQuery(f SchoolSearchFilters) squirrel.SelectBuilder {
	q := r.sb.Select().From("schools").Where(squirrel.Eq{"is_active": true})

	if f.Query != "" {
		pattern := "%" + f.Query + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"district": pattern},
		})
	}
	if f.District != "" {
		q = q.Where(squirrel.ILike{"district": f.District})
	}
	if f.Region != "" {
		q = q.Where(squirrel.Eq{"region": f.Region})
	}
	if len(f.Types) > 0 {
		q = q.Where(squirrel.Eq{"type": f.Types})
	}
	if f.Category != "" {
		q = q.Where(squirrel.Eq{"category": f.Category})
	}
	if f.Curriculum != "" {
		q = q.Where(squirrel.Expr("curriculum @> ARRAY[?]::text[]", f.Curriculum))
	}
	if f.MaxTuition > 0 {
		q = q.Where(squirrel.LtOrEq{"tuition_day": f.MaxTuition})
	}

	return q
}

// searchOrderClause maps the public sort keys onto SQL ordering
func searchOrderClause(sortBy, sortOrder string) string {
	dir := "ASC"
	if sortOrder == "desc" {
		dir = "DESC"
	}

	switch sortBy {
	case "performance":
		return "(performance->'uce'->>'div1Count')::int " + dir + " NULLS LAST"
	case "tuition":
		return "tuition_day " + dir + " NULLS LAST"
	default:
		return "name " + dir
	}
}

// FindSimilar returns up to limit active schools sharing category, region or
// type with the reference attributes, excluding the school itself.
func (r *SchoolRepository) FindSimilar(ctx context.Context, excludeID int64, category, region, schoolType string, limit int) ([]dto.SchoolSummary, error) {
	or := squirrel.Or{}
	if category != "" {
		or = append(or, squirrel.Eq{"category": category})
	}
	if region != "" {
		or = append(or, squirrel.Eq{"region": region})
	}
	if schoolType != "" {
		or = append(or, squirrel.Eq{"type": schoolType})
	}
	if len(or) == 0 {
		return []dto.SchoolSummary{}, nil
	}

	q := r.sb.Select("id", "name", "logo", "type", "category", "region").
		From("schools").
		Where(squirrel.Eq{"is_active": true}).
		Where(or).
		OrderBy("name ASC").
		Limit(uint64(limit))
	if excludeID > 0 {
		q = q.Where(squirrel.NotEq{"id": excludeID})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build similar schools query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying similar schools: %w", err)
	}
	defer rows.Close()

	summaries := []dto.SchoolSummary{}
	for rows.Next() {
		var s dto.SchoolSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.Logo, &s.Type, &s.Category, &s.Region); err != nil {
			return nil, fmt.Errorf("error scanning similar school row: %w", err)
		}
		summaries = append(summaries, s)
	}

	return summaries, rows.Err()
}

// Update overwrites a school row
func (r *SchoolRepository) Update(ctx context.Context, s *models.School) error {
	sql, args, err := r.sb.Update("schools").
		Set("name", s.Name).
		Set("description", s.Description).
		Set("district", s.Location.District).
		Set("region", s.Location.Region).
		Set("address", s.Location.Address).
		Set("longitude", s.Location.Longitude).
		Set("latitude", s.Location.Latitude).
		Set("type", s.Type).
		Set("category", s.Category).
		Set("admission_fee", s.Fees.AdmissionFee).
		Set("tuition_day", s.Fees.TuitionDay).
		Set("tuition_boarding", s.Fees.TuitionBoarding).
		Set("other_fees", s.Fees.OtherFees).
		Set("curriculum", s.Curriculum).
		Set("subjects", s.Subjects).
		Set("performance", s.Performance).
		Set("facilities", s.Facilities).
		Set("contact_email", s.Contact.Email).
		Set("contact_phone", s.Contact.Phone).
		Set("alternative_phone", s.Contact.AlternativePhone).
		Set("website", s.Contact.Website).
		Set("logo", s.Media.Logo).
		Set("application_deadline", s.Admissions.ApplicationDeadline).
		Set("day_spots", s.Admissions.AvailableSpots.DayStudents).
		Set("boarding_spots", s.Admissions.AvailableSpots.BoardingStudents).
		Set("requirements", s.Admissions.Requirements).
		Set("term_dates", s.Admissions.TermDates).
		Set("stats", s.Stats).
		Set("extra_curricular", s.ExtraCurricular).
		Set("is_verified", s.Metadata.IsVerified).
		Set("is_active", s.Metadata.IsActive).
		Set("subscription_tier", s.Metadata.SubscriptionTier).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": s.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update school query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("schoolID", s.ID).Msg("Error executing update school query")
		return fmt.Errorf("error updating school: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrSchoolNotFound
	}
	return nil
}

// Delete removes a school row. Gallery rows go with it via ON DELETE CASCADE.
func (r *SchoolRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("schools").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete school query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("schoolID", id).Msg("Error executing delete school query")
		return fmt.Errorf("error deleting school: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrSchoolNotFound
	}
	return nil
}

// GetGallery returns all gallery images for a school, main image first
func (r *SchoolRepository) GetGallery(ctx context.Context, schoolID int64) ([]models.GalleryImage, error) {
	sql, args, err := r.sb.Select("id", "url", "caption", "is_main").
		From("school_gallery_images").
		Where(squirrel.Eq{"school_id": schoolID}).
		OrderBy("is_main DESC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build gallery query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying gallery: %w", err)
	}
	defer rows.Close()

	images := []models.GalleryImage{}
	for rows.Next() {
		var img models.GalleryImage
		if err := rows.Scan(&img.ID, &img.URL, &img.Caption, &img.IsMain); err != nil {
			return nil, fmt.Errorf("error scanning gallery row: %w", err)
		}
		images = append(images, img)
	}

	return images, rows.Err()
}

// AddGalleryImages inserts gallery rows and sets their generated IDs
func (r *SchoolRepository) AddGalleryImages(ctx context.Context, schoolID int64, images []models.GalleryImage) error {
	for i := range images {
		sql, args, err := r.sb.Insert("school_gallery_images").
			Columns("school_id", "url", "caption", "is_main", "created_at").
			Values(schoolID, images[i].URL, images[i].Caption, images[i].IsMain, time.Now()).
			Suffix("RETURNING id").
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build add gallery image query: %w", err)
		}

		if err := r.db.QueryRow(ctx, sql, args...).Scan(&images[i].ID); err != nil {
			logger.Error().Err(err).Int64("schoolID", schoolID).Msg("Error inserting gallery image")
			return fmt.Errorf("error adding gallery image: %w", err)
		}
	}
	return nil
}

// GetGalleryImage fetches a single gallery image belonging to a school
func (r *SchoolRepository) GetGalleryImage(ctx context.Context, schoolID, imageID int64) (*models.GalleryImage, error) {
	sql, args, err := r.sb.Select("id", "url", "caption", "is_main").
		From("school_gallery_images").
		Where(squirrel.Eq{"id": imageID, "school_id": schoolID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get gallery image query: %w", err)
	}

	var img models.GalleryImage
	err = r.db.QueryRow(ctx, sql, args...).Scan(&img.ID, &img.URL, &img.Caption, &img.IsMain)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error retrieving gallery image: %w", err)
	}

	return &img, nil
}

// DeleteGalleryImage removes a single gallery image belonging to a school
func (r *SchoolRepository) DeleteGalleryImage(ctx context.Context, schoolID, imageID int64) error {
	sql, args, err := r.sb.Delete("school_gallery_images").
		Where(squirrel.Eq{"id": imageID, "school_id": schoolID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete gallery image query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("imageID", imageID).Msg("Error deleting gallery image")
		return fmt.Errorf("error deleting gallery image: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}

// querySchools runs a school SELECT and scans every row
func (r *SchoolRepository) querySchools(ctx context.Context, sql string, args ...interface{}) ([]models.School, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error querying schools")
		return nil, fmt.Errorf("error querying schools: %w", err)
	}
	defer rows.Close()

	schools := []models.School{}
	for rows.Next() {
		s, err := scanSchool(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning school row: %w", err)
		}
		schools = append(schools, *s)
	}

	return schools, rows.Err()
}

// scanSchool reads one row of schoolColumns into a School
func scanSchool(row pgx.Row) (*models.School, error) {
	var s models.School
	err := row.Scan(
		&s.ID, &s.Name, &s.Description,
		&s.Location.District, &s.Location.Region, &s.Location.Address, &s.Location.Longitude, &s.Location.Latitude,
		&s.Type, &s.Category,
		&s.Fees.AdmissionFee, &s.Fees.TuitionDay, &s.Fees.TuitionBoarding, &s.Fees.OtherFees,
		&s.Curriculum, &s.Subjects, &s.Performance, &s.Facilities,
		&s.Contact.Email, &s.Contact.Phone, &s.Contact.AlternativePhone, &s.Contact.Website, &s.Media.Logo,
		&s.Admissions.ApplicationDeadline, &s.Admissions.AvailableSpots.DayStudents, &s.Admissions.AvailableSpots.BoardingStudents, &s.Admissions.Requirements, &s.Admissions.TermDates,
		&s.Stats, &s.ExtraCurricular,
		&s.Metadata.IsVerified, &s.Metadata.IsActive, &s.Metadata.SubscriptionTier,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
