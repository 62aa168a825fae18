package models

import "time"

// Club represents a campus club. A club starts unapproved and becomes
// publicly visible only after an admin approves it; approval never reverts
// automatically.
type Club struct {
	ID             int64     `json:"id" db:"id"`
	Name           string    `json:"name" db:"name"`
	Category       Category  `json:"category" db:"category"`
	Description    string    `json:"description" db:"description"`
	FacultyAdvisor string    `json:"facultyAdvisor" db:"faculty_advisor"`
	LogoURL        *string   `json:"logoUrl,omitempty" db:"logo_url"`
	WhatsappLink   *string   `json:"whatsappLink,omitempty" db:"whatsapp_link"`
	CreatedBy      int64     `json:"createdBy" db:"created_by"`
	Approved       bool      `json:"approved" db:"approved"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time `json:"updatedAt" db:"updated_at"`
}

// ClubMember is the membership relation between a profile and a club.
// (ClubID, UserID) is unique; the creator of a club is inserted as head in
// the same transaction that creates the club row.
type ClubMember struct {
	ID         int64     `json:"id" db:"id"`
	ClubID     int64     `json:"clubId" db:"club_id"`
	UserID     int64     `json:"userId" db:"user_id"`
	RoleInClub ClubRole  `json:"roleInClub" db:"role_in_club"`
	JoinedAt   time.Time `json:"joinedAt" db:"joined_at"`
}
