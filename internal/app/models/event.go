package models

import "time"

// Event represents an event organized by a club. Like clubs, events are
// gated behind admin approval before they appear in public listings.
type Event struct {
	ID            int64     `json:"id" db:"id"`
	Title         string    `json:"title" db:"title"`
	Description   string    `json:"description" db:"description"`
	Date          time.Time `json:"date" db:"date"`
	Venue         string    `json:"venue" db:"venue"`
	OrganizerClub int64     `json:"organizerClub" db:"organizer_club"`
	BannerURL     *string   `json:"bannerUrl,omitempty" db:"banner_url"`
	Approved      bool      `json:"approved" db:"approved"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
}

// EventParticipant is the registration relation between a profile and an
// event. (EventID, UserID) is unique; registration is a presence toggle,
// not a count.
type EventParticipant struct {
	ID           int64     `json:"id" db:"id"`
	EventID      int64     `json:"eventId" db:"event_id"`
	UserID       int64     `json:"userId" db:"user_id"`
	RegisteredAt time.Time `json:"registeredAt" db:"registered_at"`
}
