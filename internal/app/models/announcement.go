package models

import "time"

// Announcement is a message posted by a club. Announcements are immutable
// once created; there is no update path.
type Announcement struct {
	ID        int64     `json:"id" db:"id"`
	ClubID    int64     `json:"clubId" db:"club_id"`
	Message   string    `json:"message" db:"message"`
	CreatedBy int64     `json:"createdBy" db:"created_by"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
