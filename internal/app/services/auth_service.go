package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/affan/clubsphere/internal/app/models"
	"github.com/affan/clubsphere/internal/app/models/dto"
	"github.com/affan/clubsphere/internal/pkg/apperrors"
	"github.com/affan/clubsphere/internal/pkg/auth"
)

// ProfileStore is the persistence surface the auth service needs.
type ProfileStore interface {
	Create(ctx context.Context, profile *models.Profile) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Profile, error)
	GetByEmail(ctx context.Context, email string) (*models.Profile, error)
}

// AuthService defines the interface for authentication operations
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Me(ctx context.Context, profileID int64) (*dto.ProfileResponse, error)
}

// authServiceImpl implements AuthService
type authServiceImpl struct {
	profiles   ProfileStore
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(profiles ProfileStore, jwtService *auth.JWTService, logger zerolog.Logger) AuthService {
	return &authServiceImpl{
		profiles:   profiles,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Register creates a new profile and issues its first token. Every new
// profile starts as a student; roles are only ever elevated out of band.
func (s *authServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	profile := &models.Profile{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleStudent,
	}

	id, err := s.profiles.Create(ctx, profile)
	if err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		s.logger.Error().Err(err).Str("email", email).Msg("Failed to create profile")
		return nil, apperrors.NewUnavailableError(err)
	}
	profile.ID = id

	s.logger.Info().Int64("profileId", id).Str("email", email).Msg("Profile registered")

	return s.issueToken(profile)
}

// Login authenticates a profile by email and password. Unknown email and
// wrong password produce the same error so callers cannot probe accounts.
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	profile, err := s.profiles.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		s.logger.Error().Err(err).Str("email", email).Msg("Failed to look up profile")
		return nil, apperrors.NewUnavailableError(err)
	}

	if !auth.CheckPassword(profile.PasswordHash, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	s.logger.Debug().Int64("profileId", profile.ID).Msg("Profile logged in")

	return s.issueToken(profile)
}

// Me returns the public view of the authenticated profile.
func (s *authServiceImpl) Me(ctx context.Context, profileID int64) (*dto.ProfileResponse, error) {
	profile, err := s.profiles.GetByID(ctx, profileID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, apperrors.NewUnavailableError(err)
	}

	resp := dto.NewProfileResponse(profile)
	return &resp, nil
}

func (s *authServiceImpl) issueToken(profile *models.Profile) (*dto.TokenResponse, error) {
	token, expiresIn, err := s.jwtService.GenerateAccessToken(profile)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &dto.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   expiresIn,
		Profile:     dto.NewProfileResponse(profile),
	}, nil
}
