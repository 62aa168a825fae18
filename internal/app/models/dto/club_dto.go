package dto

import (
	"time"

	"github.com/affan/clubsphere/internal/app/models"
)

// ClubFilterRequest carries the optional listing filters. Category is an
// exact match; Search is a case-insensitive substring match against name
// and description.
type ClubFilterRequest struct {
	Category *models.Category
	Search   *string
}

// CreateClubRequest is the payload for proposing a new club. The club
// always starts unapproved regardless of who submits it.
type CreateClubRequest struct {
	Name           string  `json:"name" binding:"required,min=2,max=255"`
	Category       string  `json:"category" binding:"required,clubcategory"`
	Description    string  `json:"description" binding:"required"`
	FacultyAdvisor string  `json:"facultyAdvisor" binding:"required,max=255"`
	LogoURL        *string `json:"logoUrl,omitempty" binding:"omitempty,url"`
	WhatsappLink   *string `json:"whatsappLink,omitempty" binding:"omitempty,url"`
}

// ClubResponse is the listing view of a club.
type ClubResponse struct {
	ID             int64           `json:"id"`
	Name           string          `json:"name"`
	Category       models.Category `json:"category"`
	Description    string          `json:"description"`
	FacultyAdvisor string          `json:"facultyAdvisor"`
	LogoURL        *string         `json:"logoUrl,omitempty"`
	WhatsappLink   *string         `json:"whatsappLink,omitempty"`
	Approved       bool            `json:"approved"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// ClubDetailResponse extends the listing view with the relations the club
// profile page needs.
type ClubDetailResponse struct {
	ClubResponse
	MemberCount    int             `json:"memberCount"`
	IsMember       bool            `json:"isMember"`
	UpcomingEvents []EventResponse `json:"upcomingEvents"`
}

// ClubListResponse wraps a club listing.
type ClubListResponse struct {
	Clubs []ClubResponse `json:"clubs"`
	Total int            `json:"total"`
}

// DashboardResponse is the club head's view of everything they manage:
// their clubs regardless of approval state, and those clubs' events.
type DashboardResponse struct {
	Clubs  []ClubResponse  `json:"clubs"`
	Events []EventResponse `json:"events"`
}

// MembershipResponse reports the state after a membership toggle.
type MembershipResponse struct {
	ClubID   int64 `json:"clubId"`
	IsMember bool  `json:"isMember"`
}

// NewClubResponse maps a club model to its listing view.
func NewClubResponse(c *models.Club) ClubResponse {
	return ClubResponse{
		ID:             c.ID,
		Name:           c.Name,
		Category:       c.Category,
		Description:    c.Description,
		FacultyAdvisor: c.FacultyAdvisor,
		LogoURL:        c.LogoURL,
		WhatsappLink:   c.WhatsappLink,
		Approved:       c.Approved,
		CreatedAt:      c.CreatedAt,
	}
}
