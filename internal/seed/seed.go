package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	appModels "github.com/steampunk99/school-locator/internal/app/models"
	appRepos "github.com/steampunk99/school-locator/internal/app/repositories"
	"github.com/steampunk99/school-locator/internal/pkg/apperrors"
	"github.com/steampunk99/school-locator/internal/pkg/auth"
)

// CreateDefaultData creates the default superadmin account if it does not
// exist yet. Safe to call on every startup.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)

	const adminEmail = "superadmin@school-locator.app"

	exists, err := userRepo.EmailExists(ctx, adminEmail)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking if superadmin user exists")
		return err
	}
	if exists {
		return nil
	}

	lgr.Info().Msg("Creating default superadmin user...")

	hashedPassword, err := auth.HashPassword("ChangeMe123!")
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing superadmin password")
		return err
	}

	admin := &appModels.User{
		Username:  "superadmin",
		Email:     adminEmail,
		Password:  hashedPassword,
		Role:      appModels.RoleSuperAdmin,
		FirstName: "Super",
		LastName:  "Admin",
	}

	err = userRepo.Create(ctx, admin)
	if err != nil && !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
		lgr.Error().Err(err).Msg("Error creating superadmin user")
		return err
	}

	lgr.Info().Str("email", adminEmail).Msg("Default superadmin user created, change the password after first login")
	return nil
}
