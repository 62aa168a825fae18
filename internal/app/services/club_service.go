package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/affan/clubsphere/internal/app/auth"
	"github.com/affan/clubsphere/internal/app/models"
	"github.com/affan/clubsphere/internal/app/models/dto"
	"github.com/affan/clubsphere/internal/pkg/apperrors"
)

// ClubStore is the persistence surface the club service needs.
type ClubStore interface {
	ListApproved(ctx context.Context, category *models.Category, search *string) ([]models.Club, error)
	ListPending(ctx context.Context) ([]models.Club, error)
	GetByID(ctx context.Context, id int64) (*models.Club, error)
	ListByIDs(ctx context.Context, ids []int64) ([]models.Club, error)
	CreateWithHead(ctx context.Context, club *models.Club) (int64, error)
	Approve(ctx context.Context, id int64) (bool, error)
	Delete(ctx context.Context, id int64) error
}

// MembershipStore is the persistence surface for club memberships.
type MembershipStore interface {
	Toggle(ctx context.Context, clubID, userID int64) (bool, error)
	IsMember(ctx context.Context, clubID, userID int64) (bool, error)
	IsHead(ctx context.Context, clubID, userID int64) (bool, error)
	CountByClub(ctx context.Context, clubID int64) (int, error)
	HeadClubIDs(ctx context.Context, userID int64) ([]int64, error)
}

// ClubEventStore lists events for club enrichment.
type ClubEventStore interface {
	ListApprovedByClub(ctx context.Context, clubID int64) ([]models.Event, error)
	ListByClubIDs(ctx context.Context, clubIDs []int64) ([]models.Event, error)
}

// ClubService defines the interface for club operations
type ClubService interface {
	ListApproved(ctx context.Context, filter *dto.ClubFilterRequest) (*dto.ClubListResponse, error)
	GetClub(ctx context.Context, actor *auth.Actor, id int64) (*dto.ClubDetailResponse, error)
	CreateClub(ctx context.Context, actor auth.Actor, req *dto.CreateClubRequest) (*dto.ClubResponse, error)
	ToggleMembership(ctx context.Context, actor auth.Actor, clubID int64) (*dto.MembershipResponse, error)
	ListPending(ctx context.Context, actor auth.Actor) (*dto.ClubListResponse, error)
	ApproveClub(ctx context.Context, actor auth.Actor, id int64) (*dto.ClubResponse, error)
	RejectClub(ctx context.Context, actor auth.Actor, id int64) error
	Dashboard(ctx context.Context, actor auth.Actor) (*dto.DashboardResponse, error)
}

// clubServiceImpl implements ClubService
type clubServiceImpl struct {
	clubs        ClubStore
	memberships  MembershipStore
	events       ClubEventStore
	authzService *auth.AuthorizationService
	logger       zerolog.Logger
}

// NewClubService creates a new ClubService
func NewClubService(
	clubs ClubStore,
	memberships MembershipStore,
	events ClubEventStore,
	authzService *auth.AuthorizationService,
	logger zerolog.Logger,
) ClubService {
	return &clubServiceImpl{
		clubs:        clubs,
		memberships:  memberships,
		events:       events,
		authzService: authzService,
		logger:       logger,
	}
}

// ListApproved retrieves the public club directory. A store failure is
// logged and surfaced as an empty directory rather than an error.
func (s *clubServiceImpl) ListApproved(ctx context.Context, filter *dto.ClubFilterRequest) (*dto.ClubListResponse, error) {
	var category *models.Category
	var search *string
	if filter != nil {
		category = filter.Category
		search = filter.Search
	}

	clubs, err := s.clubs.ListApproved(ctx, category, search)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list approved clubs, returning empty list")
		return &dto.ClubListResponse{Clubs: []dto.ClubResponse{}, Total: 0}, nil
	}

	responses := make([]dto.ClubResponse, 0, len(clubs))
	for i := range clubs {
		responses = append(responses, dto.NewClubResponse(&clubs[i]))
	}

	return &dto.ClubListResponse{Clubs: responses, Total: len(responses)}, nil
}

// GetClub retrieves a club's profile page. Unapproved clubs resolve only
// for admins and for the club's own head; everyone else gets NotFound so
// pending proposals stay invisible rather than forbidden.
func (s *clubServiceImpl) GetClub(ctx context.Context, actor *auth.Actor, id int64) (*dto.ClubDetailResponse, error) {
	club, err := s.fetchClub(ctx, id)
	if err != nil {
		return nil, err
	}

	if !club.Approved {
		visible, err := s.canSeeUnapproved(ctx, actor, club.ID)
		if err != nil {
			return nil, err
		}
		if !visible {
			return nil, apperrors.ErrClubNotFound
		}
	}

	detail := &dto.ClubDetailResponse{
		ClubResponse:   dto.NewClubResponse(club),
		UpcomingEvents: []dto.EventResponse{},
	}

	count, err := s.memberships.CountByClub(ctx, club.ID)
	if err != nil {
		s.logger.Warn().Err(err).Int64("clubId", club.ID).Msg("Failed to count members")
	} else {
		detail.MemberCount = count
	}

	if actor != nil {
		isMember, err := s.memberships.IsMember(ctx, club.ID, actor.ID)
		if err != nil {
			s.logger.Warn().Err(err).Int64("clubId", club.ID).Msg("Failed to check membership")
		} else {
			detail.IsMember = isMember
		}
	}

	events, err := s.events.ListApprovedByClub(ctx, club.ID)
	if err != nil {
		s.logger.Warn().Err(err).Int64("clubId", club.ID).Msg("Failed to list club events")
	} else {
		now := time.Now()
		for i := range events {
			if events[i].Date.Before(now) {
				continue
			}
			detail.UpcomingEvents = append(detail.UpcomingEvents, dto.NewEventResponse(&events[i]))
		}
	}

	return detail, nil
}

// fetchClub loads a club and folds store failures into the taxonomy.
func (s *clubServiceImpl) fetchClub(ctx context.Context, id int64) (*models.Club, error) {
	club, err := s.clubs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, apperrors.NewUnavailableError(err)
	}
	return club, nil
}

func (s *clubServiceImpl) canSeeUnapproved(ctx context.Context, actor *auth.Actor, clubID int64) (bool, error) {
	if actor == nil {
		return false, nil
	}
	if actor.IsAdmin() {
		return true, nil
	}
	return s.authzService.IsClubHead(ctx, *actor, clubID)
}

// CreateClub records a club proposal. The club always starts unapproved
// and the creator becomes its head in the same transaction.
func (s *clubServiceImpl) CreateClub(ctx context.Context, actor auth.Actor, req *dto.CreateClubRequest) (*dto.ClubResponse, error) {
	if err := s.authzService.RequireCapability(actor, auth.CapCreateClub); err != nil {
		return nil, err
	}

	club := &models.Club{
		Name:           req.Name,
		Category:       models.Category(req.Category),
		Description:    req.Description,
		FacultyAdvisor: req.FacultyAdvisor,
		LogoURL:        req.LogoURL,
		WhatsappLink:   req.WhatsappLink,
		CreatedBy:      actor.ID,
	}

	id, err := s.clubs.CreateWithHead(ctx, club)
	if err != nil {
		s.logger.Error().Err(err).Str("name", req.Name).Msg("Failed to create club")
		return nil, apperrors.NewUnavailableError(err)
	}

	created, err := s.fetchClub(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("clubId", id).Int64("createdBy", actor.ID).Msg("Club proposed")

	resp := dto.NewClubResponse(created)
	return &resp, nil
}

// ToggleMembership flips the actor's membership in an approved club and
// returns the resulting state. Unapproved clubs are not joinable.
func (s *clubServiceImpl) ToggleMembership(ctx context.Context, actor auth.Actor, clubID int64) (*dto.MembershipResponse, error) {
	if err := s.authzService.RequireCapability(actor, auth.CapJoinClub); err != nil {
		return nil, err
	}

	club, err := s.fetchClub(ctx, clubID)
	if err != nil {
		return nil, err
	}
	if !club.Approved {
		return nil, apperrors.ErrClubNotFound
	}

	isMember, err := s.memberships.Toggle(ctx, clubID, actor.ID)
	if err != nil {
		s.logger.Error().Err(err).Int64("clubId", clubID).Int64("userId", actor.ID).
			Msg("Failed to toggle membership")
		return nil, apperrors.NewUnavailableError(err)
	}

	return &dto.MembershipResponse{ClubID: clubID, IsMember: isMember}, nil
}

// ListPending retrieves the club review queue, oldest proposal first.
func (s *clubServiceImpl) ListPending(ctx context.Context, actor auth.Actor) (*dto.ClubListResponse, error) {
	if err := s.authzService.RequireAdmin(actor); err != nil {
		return nil, err
	}

	clubs, err := s.clubs.ListPending(ctx)
	if err != nil {
		return nil, apperrors.NewUnavailableError(err)
	}

	responses := make([]dto.ClubResponse, 0, len(clubs))
	for i := range clubs {
		responses = append(responses, dto.NewClubResponse(&clubs[i]))
	}

	return &dto.ClubListResponse{Clubs: responses, Total: len(responses)}, nil
}

// ApproveClub marks a club approved. Approving an already approved club is
// a no-op that still succeeds.
func (s *clubServiceImpl) ApproveClub(ctx context.Context, actor auth.Actor, id int64) (*dto.ClubResponse, error) {
	if err := s.authzService.RequireAdmin(actor); err != nil {
		return nil, err
	}

	exists, err := s.clubs.Approve(ctx, id)
	if err != nil {
		return nil, apperrors.NewUnavailableError(err)
	}
	if !exists {
		return nil, apperrors.ErrClubNotFound
	}

	club, err := s.fetchClub(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("clubId", id).Int64("adminId", actor.ID).Msg("Club approved")

	resp := dto.NewClubResponse(club)
	return &resp, nil
}

// RejectClub removes a club proposal entirely. Memberships, events and
// announcements under it are removed with it.
func (s *clubServiceImpl) RejectClub(ctx context.Context, actor auth.Actor, id int64) error {
	if err := s.authzService.RequireAdmin(actor); err != nil {
		return err
	}

	if err := s.clubs.Delete(ctx, id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		return apperrors.NewUnavailableError(err)
	}

	s.logger.Info().Int64("clubId", id).Int64("adminId", actor.ID).Msg("Club rejected")
	return nil
}

// Dashboard retrieves the clubs the actor heads, approved or not, along
// with every event those clubs organize.
func (s *clubServiceImpl) Dashboard(ctx context.Context, actor auth.Actor) (*dto.DashboardResponse, error) {
	clubIDs, err := s.memberships.HeadClubIDs(ctx, actor.ID)
	if err != nil {
		return nil, apperrors.NewUnavailableError(err)
	}

	resp := &dto.DashboardResponse{
		Clubs:  []dto.ClubResponse{},
		Events: []dto.EventResponse{},
	}
	if len(clubIDs) == 0 {
		return resp, nil
	}

	clubs, err := s.clubs.ListByIDs(ctx, clubIDs)
	if err != nil {
		return nil, apperrors.NewUnavailableError(err)
	}
	for i := range clubs {
		resp.Clubs = append(resp.Clubs, dto.NewClubResponse(&clubs[i]))
	}

	events, err := s.events.ListByClubIDs(ctx, clubIDs)
	if err != nil {
		return nil, apperrors.NewUnavailableError(err)
	}
	for i := range events {
		resp.Events = append(resp.Events, dto.NewEventResponse(&events[i]))
	}

	return resp, nil
}
