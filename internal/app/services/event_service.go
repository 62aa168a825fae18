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

// EventStore is the persistence surface the event service needs.
type EventStore interface {
	ListUpcomingApproved(ctx context.Context, from time.Time) ([]models.Event, error)
	ListPending(ctx context.Context) ([]models.Event, error)
	GetByID(ctx context.Context, id int64) (*models.Event, error)
	Create(ctx context.Context, event *models.Event) (int64, error)
	Approve(ctx context.Context, id int64) (bool, error)
	Delete(ctx context.Context, id int64) error
}

// RegistrationStore is the persistence surface for event registrations.
type RegistrationStore interface {
	Toggle(ctx context.Context, eventID, userID int64) (bool, error)
	RegisteredEventIDs(ctx context.Context, userID int64, eventIDs []int64) (map[int64]bool, error)
}

// ClubLookupStore resolves clubs for event enrichment and organizer checks.
type ClubLookupStore interface {
	GetByID(ctx context.Context, id int64) (*models.Club, error)
	GetByIDs(ctx context.Context, ids []int64) (map[int64]*models.Club, error)
}

// EventService defines the interface for event operations
type EventService interface {
	ListUpcoming(ctx context.Context, actor *auth.Actor) (*dto.EventListResponse, error)
	CreateEvent(ctx context.Context, actor auth.Actor, req *dto.CreateEventRequest) (*dto.EventResponse, error)
	ToggleRegistration(ctx context.Context, actor auth.Actor, eventID int64) (*dto.RegistrationResponse, error)
	ListPending(ctx context.Context, actor auth.Actor) (*dto.EventListResponse, error)
	ApproveEvent(ctx context.Context, actor auth.Actor, id int64) (*dto.EventResponse, error)
	RejectEvent(ctx context.Context, actor auth.Actor, id int64) error
}

// eventServiceImpl implements EventService
type eventServiceImpl struct {
	events        EventStore
	registrations RegistrationStore
	clubs         ClubLookupStore
	authzService  *auth.AuthorizationService
	logger        zerolog.Logger
}

// NewEventService creates a new EventService
func NewEventService(
	events EventStore,
	registrations RegistrationStore,
	clubs ClubLookupStore,
	authzService *auth.AuthorizationService,
	logger zerolog.Logger,
) EventService {
	return &eventServiceImpl{
		events:        events,
		registrations: registrations,
		clubs:         clubs,
		authzService:  authzService,
		logger:        logger,
	}
}

// ListUpcoming retrieves approved events from now on, soonest first, each
// enriched with its organizer club. For authenticated callers every entry
// also carries whether the caller is registered.
func (s *eventServiceImpl) ListUpcoming(ctx context.Context, actor *auth.Actor) (*dto.EventListResponse, error) {
	events, err := s.events.ListUpcomingApproved(ctx, time.Now())
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list upcoming events, returning empty list")
		return &dto.EventListResponse{Events: []dto.EventResponse{}, Total: 0}, nil
	}

	responses := s.enrich(ctx, events, actor)
	return &dto.EventListResponse{Events: responses, Total: len(responses)}, nil
}

// enrich decorates events with their organizer club and, when an actor is
// present, the actor's registration state. Enrichment failures degrade to
// bare events rather than failing the listing.
func (s *eventServiceImpl) enrich(ctx context.Context, events []models.Event, actor *auth.Actor) []dto.EventResponse {
	responses := make([]dto.EventResponse, 0, len(events))
	if len(events) == 0 {
		return responses
	}

	clubIDs := make([]int64, 0, len(events))
	eventIDs := make([]int64, 0, len(events))
	for i := range events {
		clubIDs = append(clubIDs, events[i].OrganizerClub)
		eventIDs = append(eventIDs, events[i].ID)
	}

	clubsByID, err := s.clubs.GetByIDs(ctx, clubIDs)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to load organizer clubs")
		clubsByID = map[int64]*models.Club{}
	}

	registered := map[int64]bool{}
	if actor != nil {
		registered, err = s.registrations.RegisteredEventIDs(ctx, actor.ID, eventIDs)
		if err != nil {
			s.logger.Warn().Err(err).Int64("userId", actor.ID).Msg("Failed to load registrations")
			registered = map[int64]bool{}
		}
	}

	for i := range events {
		resp := dto.NewEventResponse(&events[i])
		if club, ok := clubsByID[events[i].OrganizerClub]; ok {
			clubResp := dto.NewClubResponse(club)
			resp.Club = &clubResp
		}
		resp.IsRegistered = registered[events[i].ID]
		responses = append(responses, resp)
	}

	return responses
}

// CreateEvent records an event proposal for a club the actor heads. The
// event always starts unapproved.
func (s *eventServiceImpl) CreateEvent(ctx context.Context, actor auth.Actor, req *dto.CreateEventRequest) (*dto.EventResponse, error) {
	if err := s.authzService.RequireCapability(actor, auth.CapCreateEvent); err != nil {
		return nil, err
	}

	if _, err := s.clubs.GetByID(ctx, req.OrganizerClub); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrClubNotFound
		}
		return nil, apperrors.NewUnavailableError(err)
	}

	if err := s.authzService.RequireClubHead(ctx, actor, req.OrganizerClub); err != nil {
		return nil, err
	}

	event := &models.Event{
		Title:         req.Title,
		Description:   req.Description,
		Date:          req.Date,
		Venue:         req.Venue,
		OrganizerClub: req.OrganizerClub,
		BannerURL:     req.BannerURL,
	}

	id, err := s.events.Create(ctx, event)
	if err != nil {
		s.logger.Error().Err(err).Str("title", req.Title).Msg("Failed to create event")
		return nil, apperrors.NewUnavailableError(err)
	}

	created, err := s.fetchEvent(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("eventId", id).Int64("clubId", req.OrganizerClub).
		Int64("createdBy", actor.ID).Msg("Event proposed")

	resp := dto.NewEventResponse(created)
	return &resp, nil
}

// ToggleRegistration flips the actor's registration for an approved event
// and returns the resulting state. Unapproved events are not registrable
// and resolve as NotFound.
func (s *eventServiceImpl) ToggleRegistration(ctx context.Context, actor auth.Actor, eventID int64) (*dto.RegistrationResponse, error) {
	if err := s.authzService.RequireCapability(actor, auth.CapRegisterEvent); err != nil {
		return nil, err
	}

	event, err := s.fetchEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !event.Approved {
		return nil, apperrors.ErrEventNotFound
	}

	isRegistered, err := s.registrations.Toggle(ctx, eventID, actor.ID)
	if err != nil {
		s.logger.Error().Err(err).Int64("eventId", eventID).Int64("userId", actor.ID).
			Msg("Failed to toggle registration")
		return nil, apperrors.NewUnavailableError(err)
	}

	return &dto.RegistrationResponse{EventID: eventID, IsRegistered: isRegistered}, nil
}

// ListPending retrieves the event review queue, oldest proposal first.
func (s *eventServiceImpl) ListPending(ctx context.Context, actor auth.Actor) (*dto.EventListResponse, error) {
	if err := s.authzService.RequireAdmin(actor); err != nil {
		return nil, err
	}

	events, err := s.events.ListPending(ctx)
	if err != nil {
		return nil, apperrors.NewUnavailableError(err)
	}

	responses := s.enrich(ctx, events, nil)
	return &dto.EventListResponse{Events: responses, Total: len(responses)}, nil
}

// ApproveEvent marks an event approved. Approving an already approved
// event is a no-op that still succeeds.
func (s *eventServiceImpl) ApproveEvent(ctx context.Context, actor auth.Actor, id int64) (*dto.EventResponse, error) {
	if err := s.authzService.RequireAdmin(actor); err != nil {
		return nil, err
	}

	exists, err := s.events.Approve(ctx, id)
	if err != nil {
		return nil, apperrors.NewUnavailableError(err)
	}
	if !exists {
		return nil, apperrors.ErrEventNotFound
	}

	event, err := s.fetchEvent(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("eventId", id).Int64("adminId", actor.ID).Msg("Event approved")

	resp := dto.NewEventResponse(event)
	return &resp, nil
}

// RejectEvent removes an event proposal entirely, registrations included.
func (s *eventServiceImpl) RejectEvent(ctx context.Context, actor auth.Actor, id int64) error {
	if err := s.authzService.RequireAdmin(actor); err != nil {
		return err
	}

	if err := s.events.Delete(ctx, id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		return apperrors.NewUnavailableError(err)
	}

	s.logger.Info().Int64("eventId", id).Int64("adminId", actor.ID).Msg("Event rejected")
	return nil
}

func (s *eventServiceImpl) fetchEvent(ctx context.Context, id int64) (*models.Event, error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, apperrors.NewUnavailableError(err)
	}
	return event, nil
}
