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

func newAnnouncementServiceForTest(t *testing.T) (AnnouncementService, *fakeAnnouncementStore, *fakeClubStore, *fakeMembershipStore, *fakeEventStore, *fakeProfileStore) {
	t.Helper()
	memberships := newFakeMembershipStore()
	clubs := newFakeClubStore(memberships)
	events := newFakeEventStore()
	announcements := newFakeAnnouncementStore()
	profiles := newFakeProfileStore()
	authz := auth.NewAuthorizationService(memberships)
	svc := NewAnnouncementService(announcements, clubs, clubs, events, profiles, authz, zerolog.Nop())
	return svc, announcements, clubs, memberships, events, profiles
}

func TestPostAnnouncementRequiresHeadship(t *testing.T) {
	svc, _, clubs, memberships, _, _ := newAnnouncementServiceForTest(t)
	club := clubs.add(models.Club{Name: "Drama", Category: models.CategoryCultural, Approved: true})
	memberships.set(club.ID, head.ID, models.ClubRoleHead)

	req := &dto.CreateAnnouncementRequest{ClubID: club.ID, Message: "Auditions on Friday"}

	_, err := svc.PostAnnouncement(context.Background(), student, req)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	resp, err := svc.PostAnnouncement(context.Background(), head, req)
	require.NoError(t, err)
	assert.Equal(t, "Auditions on Friday", resp.Message)
	require.NotNil(t, resp.Club)
	assert.Equal(t, "Drama", resp.Club.Name)

	// Admins may post for any club.
	_, err = svc.PostAnnouncement(context.Background(), admin, req)
	assert.NoError(t, err)
}

func TestPostAnnouncementUnknownClub(t *testing.T) {
	svc, _, _, _, _, _ := newAnnouncementServiceForTest(t)

	_, err := svc.PostAnnouncement(context.Background(), head, &dto.CreateAnnouncementRequest{
		ClubID: 404, Message: "Lost"})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestListRecentIsNewestFirstWithAuthors(t *testing.T) {
	svc, announcements, clubs, _, _, profiles := newAnnouncementServiceForTest(t)
	club := clubs.add(models.Club{Name: "Drama", Category: models.CategoryCultural, Approved: true})

	authorID, err := profiles.Create(context.Background(), &models.Profile{
		Name: "Asha", Email: "asha@campus.edu", Role: models.RoleClubHead,
	})
	require.NoError(t, err)

	_, err = announcements.Create(context.Background(), &models.Announcement{
		ClubID: club.ID, Message: "older", CreatedBy: authorID,
		CreatedAt: time.Now().Add(-time.Hour),
	})
	require.NoError(t, err)
	_, err = announcements.Create(context.Background(), &models.Announcement{
		ClubID: club.ID, Message: "newer", CreatedBy: authorID,
		CreatedAt: time.Now(),
	})
	require.NoError(t, err)

	resp, err := svc.ListRecent(context.Background())
	require.NoError(t, err)
	require.Len(t, resp.Announcements, 2)
	assert.Equal(t, "newer", resp.Announcements[0].Message)
	assert.Equal(t, "older", resp.Announcements[1].Message)

	require.NotNil(t, resp.Announcements[0].Club)
	assert.Equal(t, "Drama", resp.Announcements[0].Club.Name)
	require.NotNil(t, resp.Announcements[0].Author)
	assert.Equal(t, "Asha", resp.Announcements[0].Author.Name)
}

func TestGetStats(t *testing.T) {
	svc, announcements, clubs, _, events, _ := newAnnouncementServiceForTest(t)

	clubs.add(models.Club{Name: "A", Category: models.CategoryCultural, Approved: true})
	clubs.add(models.Club{Name: "B", Category: models.CategoryCultural})
	events.add(models.Event{Title: "Soon", Approved: true, Date: time.Now().Add(time.Hour)})
	events.add(models.Event{Title: "Past", Approved: true, Date: time.Now().Add(-time.Hour)})
	_, err := announcements.Create(context.Background(), &models.Announcement{ClubID: 1, Message: "hi", CreatedBy: 1})
	require.NoError(t, err)

	stats, err := svc.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.ApprovedClubs)
	assert.Equal(t, int64(1), stats.UpcomingEvents)
	assert.Equal(t, int64(1), stats.Announcements)
}
