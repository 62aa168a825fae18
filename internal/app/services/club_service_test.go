package services

import (
	"context"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/affan/clubsphere/internal/app/auth"
	"github.com/affan/clubsphere/internal/app/models"
	"github.com/affan/clubsphere/internal/app/models/dto"
	"github.com/affan/clubsphere/internal/pkg/apperrors"
)

func newClubServiceForTest(t *testing.T) (ClubService, *fakeClubStore, *fakeMembershipStore, *fakeEventStore) {
	t.Helper()
	memberships := newFakeMembershipStore()
	clubs := newFakeClubStore(memberships)
	events := newFakeEventStore()
	authz := auth.NewAuthorizationService(memberships)
	svc := NewClubService(clubs, memberships, events, authz, zerolog.Nop())
	return svc, clubs, memberships, events
}

var (
	student = auth.Actor{ID: 10, Role: models.RoleStudent}
	head    = auth.Actor{ID: 20, Role: models.RoleClubHead}
	admin   = auth.Actor{ID: 99, Role: models.RoleAdmin}
)

func TestCreateClubStartsUnapprovedWithCreatorAsHead(t *testing.T) {
	svc, _, memberships, _ := newClubServiceForTest(t)

	resp, err := svc.CreateClub(context.Background(), student, &dto.CreateClubRequest{
		Name:           "Chess Club",
		Category:       "Cultural",
		Description:    "Weekly chess meetups",
		FacultyAdvisor: "Dr. Rao",
	})
	require.NoError(t, err)
	assert.False(t, resp.Approved)

	isHead, err := memberships.IsHead(context.Background(), resp.ID, student.ID)
	require.NoError(t, err)
	assert.True(t, isHead, "creator should be head of the new club")
}

func TestListApprovedHidesPendingClubs(t *testing.T) {
	svc, clubs, _, _ := newClubServiceForTest(t)

	clubs.add(models.Club{Name: "Approved", Category: models.CategoryTechnical, Approved: true})
	clubs.add(models.Club{Name: "Pending", Category: models.CategoryTechnical})

	resp, err := svc.ListApproved(context.Background(), &dto.ClubFilterRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Clubs, 1)
	assert.Equal(t, "Approved", resp.Clubs[0].Name)
}

func TestGetClubHidesUnapprovedFromOutsiders(t *testing.T) {
	svc, clubs, memberships, _ := newClubServiceForTest(t)

	pending := clubs.add(models.Club{Name: "Pending", Category: models.CategorySports, CreatedBy: head.ID})
	memberships.set(pending.ID, head.ID, models.ClubRoleHead)

	// Anonymous callers and unrelated students see NotFound.
	_, err := svc.GetClub(context.Background(), nil, pending.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = svc.GetClub(context.Background(), &student, pending.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	// The club's own head and admins can see it.
	detail, err := svc.GetClub(context.Background(), &head, pending.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pending", detail.Name)

	_, err = svc.GetClub(context.Background(), &admin, pending.ID)
	assert.NoError(t, err)
}

func TestApproveClubIsIdempotent(t *testing.T) {
	svc, clubs, _, _ := newClubServiceForTest(t)
	pending := clubs.add(models.Club{Name: "Pending", Category: models.CategoryLiterary})

	first, err := svc.ApproveClub(context.Background(), admin, pending.ID)
	require.NoError(t, err)
	assert.True(t, first.Approved)

	second, err := svc.ApproveClub(context.Background(), admin, pending.ID)
	require.NoError(t, err)
	assert.True(t, second.Approved)
}

func TestApproveClubRequiresAdmin(t *testing.T) {
	svc, clubs, _, _ := newClubServiceForTest(t)
	pending := clubs.add(models.Club{Name: "Pending", Category: models.CategoryLiterary})

	_, err := svc.ApproveClub(context.Background(), student, pending.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	_, err = svc.ApproveClub(context.Background(), head, pending.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	// The club is untouched.
	club, err := clubs.GetByID(context.Background(), pending.ID)
	require.NoError(t, err)
	assert.False(t, club.Approved)
}

func TestRejectClubRemovesClubAndMemberships(t *testing.T) {
	svc, clubs, memberships, _ := newClubServiceForTest(t)
	pending := clubs.add(models.Club{Name: "Pending", Category: models.CategoryCultural, CreatedBy: head.ID})
	memberships.set(pending.ID, head.ID, models.ClubRoleHead)

	require.NoError(t, svc.RejectClub(context.Background(), admin, pending.ID))

	_, err := clubs.GetByID(context.Background(), pending.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	isHead, err := memberships.IsHead(context.Background(), pending.ID, head.ID)
	require.NoError(t, err)
	assert.False(t, isHead)

	// Rejecting again reports NotFound.
	err = svc.RejectClub(context.Background(), admin, pending.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestListPendingIsOldestFirstAndAdminOnly(t *testing.T) {
	svc, clubs, _, _ := newClubServiceForTest(t)
	clubs.add(models.Club{Name: "First", Category: models.CategoryTechnical})
	clubs.add(models.Club{Name: "Second", Category: models.CategoryTechnical})

	_, err := svc.ListPending(context.Background(), student)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	resp, err := svc.ListPending(context.Background(), admin)
	require.NoError(t, err)
	require.Len(t, resp.Clubs, 2)
	assert.Equal(t, "First", resp.Clubs[0].Name)
	assert.Equal(t, "Second", resp.Clubs[1].Name)
}

func TestToggleMembershipIsAnInvolution(t *testing.T) {
	svc, clubs, memberships, _ := newClubServiceForTest(t)
	club := clubs.add(models.Club{Name: "Approved", Category: models.CategorySports, Approved: true})

	resp, err := svc.ToggleMembership(context.Background(), student, club.ID)
	require.NoError(t, err)
	assert.True(t, resp.IsMember)

	resp, err = svc.ToggleMembership(context.Background(), student, club.ID)
	require.NoError(t, err)
	assert.False(t, resp.IsMember)

	isMember, err := memberships.IsMember(context.Background(), club.ID, student.ID)
	require.NoError(t, err)
	assert.False(t, isMember)
}

func TestToggleMembershipRejectsUnapprovedClub(t *testing.T) {
	svc, clubs, _, _ := newClubServiceForTest(t)
	pending := clubs.add(models.Club{Name: "Pending", Category: models.CategorySports})

	_, err := svc.ToggleMembership(context.Background(), student, pending.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestConcurrentTogglesNeverDoubleJoin(t *testing.T) {
	svc, clubs, memberships, _ := newClubServiceForTest(t)
	club := clubs.add(models.Club{Name: "Approved", Category: models.CategorySports, Approved: true})

	// An even number of racing toggles must always land back on
	// "not a member", never on a duplicate row.
	const workers = 16
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_, err := svc.ToggleMembership(context.Background(), student, club.ID)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	isMember, err := memberships.IsMember(context.Background(), club.ID, student.ID)
	require.NoError(t, err)
	assert.False(t, isMember)

	count, err := memberships.CountByClub(context.Background(), club.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestDashboardShowsOwnClubsRegardlessOfApproval(t *testing.T) {
	svc, clubs, memberships, events := newClubServiceForTest(t)

	mine := clubs.add(models.Club{Name: "Mine", Category: models.CategoryCultural, CreatedBy: head.ID})
	memberships.set(mine.ID, head.ID, models.ClubRoleHead)
	other := clubs.add(models.Club{Name: "Other", Category: models.CategoryCultural, Approved: true})
	events.add(models.Event{Title: "Mine Event", OrganizerClub: mine.ID})
	events.add(models.Event{Title: "Other Event", OrganizerClub: other.ID})

	resp, err := svc.Dashboard(context.Background(), head)
	require.NoError(t, err)
	require.Len(t, resp.Clubs, 1)
	assert.Equal(t, "Mine", resp.Clubs[0].Name)
	require.Len(t, resp.Events, 1)
	assert.Equal(t, "Mine Event", resp.Events[0].Title)
}
