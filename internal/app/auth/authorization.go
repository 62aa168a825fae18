package auth

import (
	"context"
	"fmt"

	"github.com/affan/clubsphere/internal/pkg/apperrors"
)

// HeadshipStore resolves club-scoped head roles. Implemented by the club
// member repository.
type HeadshipStore interface {
	IsHead(ctx context.Context, clubID, userID int64) (bool, error)
}

// AuthorizationService decides, for each record type and action, whether an
// actor may perform it. Role checks are pure capability lookups; ownership
// checks resolve the actor's head membership in the target club.
type AuthorizationService struct {
	headships HeadshipStore
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(headships HeadshipStore) *AuthorizationService {
	return &AuthorizationService{headships: headships}
}

// RequireCapability returns PermissionDenied unless the actor's role grants
// the capability.
func (s *AuthorizationService) RequireCapability(actor Actor, c Capability) error {
	if !actor.Can(c) {
		return apperrors.ErrPermissionDenied
	}
	return nil
}

// RequireAdmin returns PermissionDenied unless the actor is an admin.
func (s *AuthorizationService) RequireAdmin(actor Actor) error {
	return s.RequireCapability(actor, CapReviewContent)
}

// IsClubHead reports whether the actor heads the given club.
func (s *AuthorizationService) IsClubHead(ctx context.Context, actor Actor, clubID int64) (bool, error) {
	isHead, err := s.headships.IsHead(ctx, clubID, actor.ID)
	if err != nil {
		return false, fmt.Errorf("failed to check club headship: %w", err)
	}
	return isHead, nil
}

// RequireClubHead returns PermissionDenied unless the actor heads the given
// club. Admins pass unconditionally; they manage content for every club.
func (s *AuthorizationService) RequireClubHead(ctx context.Context, actor Actor, clubID int64) error {
	if actor.IsAdmin() {
		return nil
	}

	isHead, err := s.IsClubHead(ctx, actor, clubID)
	if err != nil {
		return err
	}
	if !isHead {
		return apperrors.ErrPermissionDenied
	}
	return nil
}
