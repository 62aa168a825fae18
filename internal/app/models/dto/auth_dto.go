package dto

import "github.com/affan/clubsphere/internal/app/models"

// RegisterRequest is the payload for creating a new profile. New profiles
// always start as students; roles are only elevated by an admin or seed.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=255"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

// LoginRequest is the payload for authenticating.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse carries an issued access token.
type TokenResponse struct {
	AccessToken string          `json:"accessToken"`
	TokenType   string          `json:"tokenType" example:"Bearer"`
	ExpiresIn   int             `json:"expiresIn" example:"3600"`
	Profile     ProfileResponse `json:"profile"`
}

// ProfileResponse is the public view of a profile.
type ProfileResponse struct {
	ID    int64       `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
}

// NewProfileResponse maps a profile model to its public view.
func NewProfileResponse(p *models.Profile) ProfileResponse {
	return ProfileResponse{
		ID:    p.ID,
		Name:  p.Name,
		Email: p.Email,
		Role:  p.Role,
	}
}
