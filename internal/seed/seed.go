package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/affan/clubsphere/internal/app/models"
	"github.com/affan/clubsphere/internal/app/repositories"
	"github.com/affan/clubsphere/internal/config"
	"github.com/affan/clubsphere/internal/pkg/apperrors"
	"github.com/affan/clubsphere/internal/pkg/auth"
)

// CreateDefaultData seeds the admin account on first startup. Admin roles
// are never granted through the API, so a fresh deployment needs one
// bootstrapped here.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, cfg *config.Config, lgr zerolog.Logger) error {
	if cfg.Seed.AdminEmail == "" || cfg.Seed.AdminPassword == "" {
		lgr.Info().Msg("Admin seed not configured, skipping")
		return nil
	}

	profileRepo := repositories.NewProfileRepository(dbPool)

	hash, err := auth.HashPassword(cfg.Seed.AdminPassword)
	if err != nil {
		return err
	}

	admin := &models.Profile{
		Name:         "Administrator",
		Email:        cfg.Seed.AdminEmail,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
	}

	id, err := profileRepo.Create(ctx, admin)
	if err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			lgr.Debug().Str("email", cfg.Seed.AdminEmail).Msg("Admin account already exists")
			return nil
		}
		lgr.Error().Err(err).Msg("Failed to seed admin account")
		return err
	}

	lgr.Info().Int64("profileId", id).Str("email", cfg.Seed.AdminEmail).Msg("Admin account created")
	return nil
}
