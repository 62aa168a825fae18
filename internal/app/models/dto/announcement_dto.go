package dto

import (
	"time"

	"github.com/affan/clubsphere/internal/app/models"
)

// CreateAnnouncementRequest is the payload for posting an announcement.
// The message is stored verbatim and is immutable once created.
type CreateAnnouncementRequest struct {
	ClubID  int64  `json:"clubId" binding:"required"`
	Message string `json:"message" binding:"required,max=4000"`
}

// AnnouncementResponse is the feed view of an announcement, enriched with
// the posting club and author.
type AnnouncementResponse struct {
	ID        int64            `json:"id"`
	ClubID    int64            `json:"clubId"`
	Message   string           `json:"message"`
	Club      *ClubResponse    `json:"club,omitempty"`
	Author    *ProfileResponse `json:"author,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
}

// AnnouncementListResponse wraps the announcement feed.
type AnnouncementListResponse struct {
	Announcements []AnnouncementResponse `json:"announcements"`
	Total         int                    `json:"total"`
}

// NewAnnouncementResponse maps an announcement model to its feed view.
func NewAnnouncementResponse(a *models.Announcement) AnnouncementResponse {
	return AnnouncementResponse{
		ID:        a.ID,
		ClubID:    a.ClubID,
		Message:   a.Message,
		CreatedAt: a.CreatedAt,
	}
}

// StatsResponse carries the home page counters.
type StatsResponse struct {
	ApprovedClubs  int64 `json:"approvedClubs"`
	UpcomingEvents int64 `json:"upcomingEvents"`
	Announcements  int64 `json:"announcements"`
}
