package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	ProfileRepository          *ProfileRepository
	ClubRepository             *ClubRepository
	ClubMemberRepository       *ClubMemberRepository
	EventRepository            *EventRepository
	EventParticipantRepository *EventParticipantRepository
	AnnouncementRepository     *AnnouncementRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		ProfileRepository:          NewProfileRepository(db),
		ClubRepository:             NewClubRepository(db),
		ClubMemberRepository:       NewClubMemberRepository(db),
		EventRepository:            NewEventRepository(db),
		EventParticipantRepository: NewEventParticipantRepository(db),
		AnnouncementRepository:     NewAnnouncementRepository(db),
	}
}
