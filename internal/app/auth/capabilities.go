package auth

import "github.com/affan/clubsphere/internal/app/models"

// Capability is a single allow/deny decision point at the workflow boundary.
// Handlers and services check capabilities instead of comparing role strings
// inline, so the role-to-permission mapping lives in exactly one place.
type Capability string

const (
	// CapReviewContent covers the pending lists and approve/reject.
	CapReviewContent Capability = "review_content"

	// CapCreateClub allows proposing a new club. Every authenticated
	// actor holds it; the proposal still lands unapproved.
	CapCreateClub Capability = "create_club"

	// CapCreateEvent allows proposing an event for a club the actor
	// heads. The head-of-club check is a separate ownership check.
	CapCreateEvent Capability = "create_event"

	// CapPostAnnouncement allows posting to a club the actor heads.
	CapPostAnnouncement Capability = "post_announcement"

	// CapJoinClub covers the membership toggle.
	CapJoinClub Capability = "join_club"

	// CapRegisterEvent covers the event registration toggle.
	CapRegisterEvent Capability = "register_event"
)

var roleCapabilities = map[models.Role]map[Capability]bool{
	models.RoleStudent: {
		CapCreateClub:       true,
		CapCreateEvent:      true,
		CapPostAnnouncement: true,
		CapJoinClub:         true,
		CapRegisterEvent:    true,
	},
	models.RoleClubHead: {
		CapCreateClub:       true,
		CapCreateEvent:      true,
		CapPostAnnouncement: true,
		CapJoinClub:         true,
		CapRegisterEvent:    true,
	},
	models.RoleAdmin: {
		CapReviewContent:    true,
		CapCreateClub:       true,
		CapCreateEvent:      true,
		CapPostAnnouncement: true,
		CapJoinClub:         true,
		CapRegisterEvent:    true,
	},
}

// Capabilities returns the capability set for a role. The returned map is a
// copy; callers may mutate it freely.
func Capabilities(role models.Role) map[Capability]bool {
	caps := make(map[Capability]bool, len(roleCapabilities[role]))
	for c, ok := range roleCapabilities[role] {
		if ok {
			caps[c] = true
		}
	}
	return caps
}
