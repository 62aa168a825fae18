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

// The public feed shows this many announcements at most.
const announcementFeedLimit = 50

// AnnouncementStore is the persistence surface for announcements.
type AnnouncementStore interface {
	Create(ctx context.Context, announcement *models.Announcement) (int64, error)
	ListRecent(ctx context.Context, limit uint64) ([]models.Announcement, error)
	Count(ctx context.Context) (int64, error)
}

// AuthorLookupStore resolves announcement authors for feed enrichment.
type AuthorLookupStore interface {
	GetByIDs(ctx context.Context, ids []int64) (map[int64]*models.Profile, error)
}

// ClubCountStore counts approved clubs for the stats endpoint.
type ClubCountStore interface {
	CountApproved(ctx context.Context) (int64, error)
}

// EventCountStore counts upcoming approved events for the stats endpoint.
type EventCountStore interface {
	CountUpcomingApproved(ctx context.Context, from time.Time) (int64, error)
}

// AnnouncementService defines the interface for announcement operations
type AnnouncementService interface {
	PostAnnouncement(ctx context.Context, actor auth.Actor, req *dto.CreateAnnouncementRequest) (*dto.AnnouncementResponse, error)
	ListRecent(ctx context.Context) (*dto.AnnouncementListResponse, error)
	GetStats(ctx context.Context) (*dto.StatsResponse, error)
}

// announcementServiceImpl implements AnnouncementService
type announcementServiceImpl struct {
	announcements AnnouncementStore
	clubs         ClubLookupStore
	clubCounts    ClubCountStore
	eventCounts   EventCountStore
	authors       AuthorLookupStore
	authzService  *auth.AuthorizationService
	logger        zerolog.Logger
}

// NewAnnouncementService creates a new AnnouncementService
func NewAnnouncementService(
	announcements AnnouncementStore,
	clubs ClubLookupStore,
	clubCounts ClubCountStore,
	eventCounts EventCountStore,
	authors AuthorLookupStore,
	authzService *auth.AuthorizationService,
	logger zerolog.Logger,
) AnnouncementService {
	return &announcementServiceImpl{
		announcements: announcements,
		clubs:         clubs,
		clubCounts:    clubCounts,
		eventCounts:   eventCounts,
		authors:       authors,
		authzService:  authzService,
		logger:        logger,
	}
}

// PostAnnouncement publishes a message from a club the actor heads. The
// message goes live immediately; announcements skip the review queue.
func (s *announcementServiceImpl) PostAnnouncement(ctx context.Context, actor auth.Actor, req *dto.CreateAnnouncementRequest) (*dto.AnnouncementResponse, error) {
	if err := s.authzService.RequireCapability(actor, auth.CapPostAnnouncement); err != nil {
		return nil, err
	}

	club, err := s.clubs.GetByID(ctx, req.ClubID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrClubNotFound
		}
		return nil, apperrors.NewUnavailableError(err)
	}

	if err := s.authzService.RequireClubHead(ctx, actor, req.ClubID); err != nil {
		return nil, err
	}

	announcement := &models.Announcement{
		ClubID:    req.ClubID,
		Message:   req.Message,
		CreatedBy: actor.ID,
	}

	id, err := s.announcements.Create(ctx, announcement)
	if err != nil {
		s.logger.Error().Err(err).Int64("clubId", req.ClubID).Msg("Failed to post announcement")
		return nil, apperrors.NewUnavailableError(err)
	}
	announcement.ID = id
	announcement.CreatedAt = time.Now()

	s.logger.Info().Int64("announcementId", id).Int64("clubId", req.ClubID).
		Int64("postedBy", actor.ID).Msg("Announcement posted")

	resp := dto.NewAnnouncementResponse(announcement)
	clubResp := dto.NewClubResponse(club)
	resp.Club = &clubResp
	return &resp, nil
}

// ListRecent retrieves the newest announcements, most recent first, each
// enriched with the posting club and author.
func (s *announcementServiceImpl) ListRecent(ctx context.Context) (*dto.AnnouncementListResponse, error) {
	announcements, err := s.announcements.ListRecent(ctx, announcementFeedLimit)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list announcements, returning empty feed")
		return &dto.AnnouncementListResponse{Announcements: []dto.AnnouncementResponse{}, Total: 0}, nil
	}

	clubIDs := make([]int64, 0, len(announcements))
	authorIDs := make([]int64, 0, len(announcements))
	for i := range announcements {
		clubIDs = append(clubIDs, announcements[i].ClubID)
		authorIDs = append(authorIDs, announcements[i].CreatedBy)
	}

	clubsByID, err := s.clubs.GetByIDs(ctx, clubIDs)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to load announcement clubs")
		clubsByID = map[int64]*models.Club{}
	}

	authorsByID, err := s.authors.GetByIDs(ctx, authorIDs)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to load announcement authors")
		authorsByID = map[int64]*models.Profile{}
	}

	responses := make([]dto.AnnouncementResponse, 0, len(announcements))
	for i := range announcements {
		resp := dto.NewAnnouncementResponse(&announcements[i])
		if club, ok := clubsByID[announcements[i].ClubID]; ok {
			clubResp := dto.NewClubResponse(club)
			resp.Club = &clubResp
		}
		if author, ok := authorsByID[announcements[i].CreatedBy]; ok {
			authorResp := dto.NewProfileResponse(author)
			resp.Author = &authorResp
		}
		responses = append(responses, resp)
	}

	return &dto.AnnouncementListResponse{Announcements: responses, Total: len(responses)}, nil
}

// GetStats retrieves the home page counters. Each counter degrades to zero
// on a store failure instead of failing the whole endpoint.
func (s *announcementServiceImpl) GetStats(ctx context.Context) (*dto.StatsResponse, error) {
	stats := &dto.StatsResponse{}

	clubs, err := s.clubCounts.CountApproved(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to count approved clubs")
	} else {
		stats.ApprovedClubs = clubs
	}

	events, err := s.eventCounts.CountUpcomingApproved(ctx, time.Now())
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to count upcoming events")
	} else {
		stats.UpcomingEvents = events
	}

	announcements, err := s.announcements.Count(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to count announcements")
	} else {
		stats.Announcements = announcements
	}

	return stats, nil
}
