package dto

import (
	"time"

	"github.com/affan/clubsphere/internal/app/models"
)

// CreateEventRequest is the payload for proposing an event. The event
// always starts unapproved.
type CreateEventRequest struct {
	Title         string    `json:"title" binding:"required,min=2,max=255"`
	Description   string    `json:"description" binding:"required"`
	Date          time.Time `json:"date" binding:"required"`
	Venue         string    `json:"venue" binding:"required,max=255"`
	OrganizerClub int64     `json:"organizerClub" binding:"required"`
	BannerURL     *string   `json:"bannerUrl,omitempty" binding:"omitempty,url"`
}

// EventResponse is the listing view of an event, enriched with the
// organizer club and, for authenticated callers, the registration state.
type EventResponse struct {
	ID            int64         `json:"id"`
	Title         string        `json:"title"`
	Description   string        `json:"description"`
	Date          time.Time     `json:"date"`
	Venue         string        `json:"venue"`
	OrganizerClub int64         `json:"organizerClub"`
	BannerURL     *string       `json:"bannerUrl,omitempty"`
	Approved      bool          `json:"approved"`
	Club          *ClubResponse `json:"club,omitempty"`
	IsRegistered  bool          `json:"isRegistered"`
	CreatedAt     time.Time     `json:"createdAt"`
}

// EventListResponse wraps an event listing.
type EventListResponse struct {
	Events []EventResponse `json:"events"`
	Total  int             `json:"total"`
}

// RegistrationResponse reports the state after a registration toggle.
type RegistrationResponse struct {
	EventID      int64 `json:"eventId"`
	IsRegistered bool  `json:"isRegistered"`
}

// NewEventResponse maps an event model to its listing view.
func NewEventResponse(e *models.Event) EventResponse {
	return EventResponse{
		ID:            e.ID,
		Title:         e.Title,
		Description:   e.Description,
		Date:          e.Date,
		Venue:         e.Venue,
		OrganizerClub: e.OrganizerClub,
		BannerURL:     e.BannerURL,
		Approved:      e.Approved,
		CreatedAt:     e.CreatedAt,
	}
}
