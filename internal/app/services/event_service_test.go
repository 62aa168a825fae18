package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/affan/clubsphere/internal/app/auth"
	"github.com/affan/clubsphere/internal/app/models"
	"github.com/affan/clubsphere/internal/app/models/dto"
	"github.com/affan/clubsphere/internal/pkg/apperrors"
)

func newEventServiceForTest(t *testing.T) (EventService, *fakeEventStore, *fakeRegistrationStore, *fakeClubStore, *fakeMembershipStore) {
	t.Helper()
	memberships := newFakeMembershipStore()
	clubs := newFakeClubStore(memberships)
	events := newFakeEventStore()
	registrations := newFakeRegistrationStore()
	authz := auth.NewAuthorizationService(memberships)
	svc := NewEventService(events, registrations, clubs, authz, zerolog.Nop())
	return svc, events, registrations, clubs, memberships
}

func TestCreateEventRequiresHeadOfOrganizerClub(t *testing.T) {
	svc, _, _, clubs, memberships := newEventServiceForTest(t)
	club := clubs.add(models.Club{Name: "Robotics", Category: models.CategoryTechnical, Approved: true})
	memberships.set(club.ID, head.ID, models.ClubRoleHead)

	req := &dto.CreateEventRequest{
		Title:         "Robo Wars",
		Description:   "Annual robotics contest",
		Date:          time.Now().Add(48 * time.Hour),
		Venue:         "Main Auditorium",
		OrganizerClub: club.ID,
	}

	_, err := svc.CreateEvent(context.Background(), student, req)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	resp, err := svc.CreateEvent(context.Background(), head, req)
	require.NoError(t, err)
	assert.False(t, resp.Approved, "new events start unapproved")

	// Admins can propose for any club.
	_, err = svc.CreateEvent(context.Background(), admin, req)
	assert.NoError(t, err)
}

func TestCreateEventUnknownClubIsNotFound(t *testing.T) {
	svc, _, _, _, _ := newEventServiceForTest(t)

	_, err := svc.CreateEvent(context.Background(), head, &dto.CreateEventRequest{
		Title:         "Orphan",
		Description:   "No such club",
		Date:          time.Now().Add(time.Hour),
		Venue:         "Nowhere",
		OrganizerClub: 404,
	})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestListUpcomingFiltersAndEnriches(t *testing.T) {
	svc, events, registrations, clubs, _ := newEventServiceForTest(t)
	club := clubs.add(models.Club{Name: "Drama", Category: models.CategoryCultural, Approved: true})

	past := events.add(models.Event{Title: "Past", OrganizerClub: club.ID, Approved: true,
		Date: time.Now().Add(-time.Hour)})
	_ = past
	soon := events.add(models.Event{Title: "Soon", OrganizerClub: club.ID, Approved: true,
		Date: time.Now().Add(time.Hour)})
	later := events.add(models.Event{Title: "Later", OrganizerClub: club.ID, Approved: true,
		Date: time.Now().Add(48 * time.Hour)})
	events.add(models.Event{Title: "Pending", OrganizerClub: club.ID,
		Date: time.Now().Add(time.Hour)})

	_, err := registrations.Toggle(context.Background(), later.ID, student.ID)
	require.NoError(t, err)

	resp, err := svc.ListUpcoming(context.Background(), &student)
	require.NoError(t, err)
	require.Len(t, resp.Events, 2)
	assert.Equal(t, soon.ID, resp.Events[0].ID, "soonest event first")
	assert.Equal(t, later.ID, resp.Events[1].ID)

	require.NotNil(t, resp.Events[0].Club)
	assert.Equal(t, "Drama", resp.Events[0].Club.Name)
	assert.False(t, resp.Events[0].IsRegistered)
	assert.True(t, resp.Events[1].IsRegistered)
}

func TestToggleRegistrationIsAnInvolution(t *testing.T) {
	svc, events, _, clubs, _ := newEventServiceForTest(t)
	club := clubs.add(models.Club{Name: "Drama", Category: models.CategoryCultural, Approved: true})
	event := events.add(models.Event{Title: "Show", OrganizerClub: club.ID, Approved: true,
		Date: time.Now().Add(time.Hour)})

	resp, err := svc.ToggleRegistration(context.Background(), student, event.ID)
	require.NoError(t, err)
	assert.True(t, resp.IsRegistered)

	resp, err = svc.ToggleRegistration(context.Background(), student, event.ID)
	require.NoError(t, err)
	assert.False(t, resp.IsRegistered)
}

func TestToggleRegistrationRejectsUnapprovedEvent(t *testing.T) {
	svc, events, _, clubs, _ := newEventServiceForTest(t)
	club := clubs.add(models.Club{Name: "Drama", Category: models.CategoryCultural, Approved: true})
	pending := events.add(models.Event{Title: "Pending", OrganizerClub: club.ID,
		Date: time.Now().Add(time.Hour)})

	_, err := svc.ToggleRegistration(context.Background(), student, pending.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestApproveEventIsIdempotentAndAdminOnly(t *testing.T) {
	svc, events, _, clubs, _ := newEventServiceForTest(t)
	club := clubs.add(models.Club{Name: "Drama", Category: models.CategoryCultural, Approved: true})
	pending := events.add(models.Event{Title: "Pending", OrganizerClub: club.ID,
		Date: time.Now().Add(time.Hour)})

	_, err := svc.ApproveEvent(context.Background(), head, pending.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	first, err := svc.ApproveEvent(context.Background(), admin, pending.ID)
	require.NoError(t, err)
	assert.True(t, first.Approved)

	second, err := svc.ApproveEvent(context.Background(), admin, pending.ID)
	require.NoError(t, err)
	assert.True(t, second.Approved)

	_, err = svc.ApproveEvent(context.Background(), admin, 404)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestRejectEventRemovesIt(t *testing.T) {
	svc, events, _, clubs, _ := newEventServiceForTest(t)
	club := clubs.add(models.Club{Name: "Drama", Category: models.CategoryCultural, Approved: true})
	pending := events.add(models.Event{Title: "Pending", OrganizerClub: club.ID,
		Date: time.Now().Add(time.Hour)})

	require.NoError(t, svc.RejectEvent(context.Background(), admin, pending.ID))

	_, err := events.GetByID(context.Background(), pending.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	err = svc.RejectEvent(context.Background(), admin, pending.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestListPendingEventsIsOldestFirst(t *testing.T) {
	svc, events, _, clubs, _ := newEventServiceForTest(t)
	club := clubs.add(models.Club{Name: "Drama", Category: models.CategoryCultural, Approved: true})
	events.add(models.Event{Title: "First", OrganizerClub: club.ID, Date: time.Now().Add(time.Hour)})
	events.add(models.Event{Title: "Second", OrganizerClub: club.ID, Date: time.Now().Add(time.Hour)})

	resp, err := svc.ListPending(context.Background(), admin)
	require.NoError(t, err)
	require.Len(t, resp.Events, 2)
	assert.Equal(t, "First", resp.Events[0].Title)
	assert.Equal(t, "Second", resp.Events[1].Title)
}
