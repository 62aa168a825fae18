package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/affan/clubsphere/internal/app/models"
	"github.com/affan/clubsphere/internal/pkg/apperrors"
)

// In-memory stores backing the service tests. The membership and
// registration fakes guard their maps with a mutex so the concurrency
// tests exercise the same toggle semantics the SQL constraint provides.

type fakeClubStore struct {
	mu     sync.Mutex
	nextID int64
	clubs  map[int64]*models.Club
	order  []int64

	// headsCreated records the head memberships CreateWithHead produced.
	memberships *fakeMembershipStore
}

func newFakeClubStore(memberships *fakeMembershipStore) *fakeClubStore {
	return &fakeClubStore{
		nextID:      1,
		clubs:       map[int64]*models.Club{},
		memberships: memberships,
	}
}

func (s *fakeClubStore) add(club models.Club) *models.Club {
	s.mu.Lock()
	defer s.mu.Unlock()
	club.ID = s.nextID
	s.nextID++
	if club.CreatedAt.IsZero() {
		club.CreatedAt = time.Now()
	}
	s.clubs[club.ID] = &club
	s.order = append(s.order, club.ID)
	return s.clubs[club.ID]
}

func (s *fakeClubStore) ListApproved(ctx context.Context, category *models.Category, search *string) ([]models.Club, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Club
	for _, id := range s.order {
		c := s.clubs[id]
		if !c.Approved {
			continue
		}
		if category != nil && c.Category != *category {
			continue
		}
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *fakeClubStore) ListPending(ctx context.Context) ([]models.Club, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Club
	for _, id := range s.order {
		if c := s.clubs[id]; !c.Approved {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (s *fakeClubStore) GetByID(ctx context.Context, id int64) (*models.Club, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.clubs[id]
	if !ok {
		return nil, apperrors.ErrClubNotFound
	}
	copy := *c
	return &copy, nil
}

func (s *fakeClubStore) GetByIDs(ctx context.Context, ids []int64) (map[int64]*models.Club, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := map[int64]*models.Club{}
	for _, id := range ids {
		if c, ok := s.clubs[id]; ok {
			copy := *c
			out[id] = &copy
		}
	}
	return out, nil
}

func (s *fakeClubStore) ListByIDs(ctx context.Context, ids []int64) ([]models.Club, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Club
	for _, id := range ids {
		if c, ok := s.clubs[id]; ok {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *fakeClubStore) CreateWithHead(ctx context.Context, club *models.Club) (int64, error) {
	created := s.add(*club)
	s.memberships.set(created.ID, club.CreatedBy, models.ClubRoleHead)
	return created.ID, nil
}

func (s *fakeClubStore) Approve(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.clubs[id]
	if !ok {
		return false, nil
	}
	c.Approved = true
	return true, nil
}

func (s *fakeClubStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clubs[id]; !ok {
		return apperrors.ErrClubNotFound
	}
	delete(s.clubs, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.memberships.dropClub(id)
	return nil
}

func (s *fakeClubStore) CountApproved(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, c := range s.clubs {
		if c.Approved {
			n++
		}
	}
	return n, nil
}

type memberKey struct {
	clubID, userID int64
}

type fakeMembershipStore struct {
	mu      sync.Mutex
	members map[memberKey]models.ClubRole
}

func newFakeMembershipStore() *fakeMembershipStore {
	return &fakeMembershipStore{members: map[memberKey]models.ClubRole{}}
}

func (s *fakeMembershipStore) set(clubID, userID int64, role models.ClubRole) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.members[memberKey{clubID, userID}] = role
}

func (s *fakeMembershipStore) dropClub(clubID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k := range s.members {
		if k.clubID == clubID {
			delete(s.members, k)
		}
	}
}

func (s *fakeMembershipStore) Toggle(ctx context.Context, clubID, userID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := memberKey{clubID, userID}
	if _, ok := s.members[key]; ok {
		delete(s.members, key)
		return false, nil
	}
	s.members[key] = models.ClubRoleMember
	return true, nil
}

func (s *fakeMembershipStore) IsMember(ctx context.Context, clubID, userID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.members[memberKey{clubID, userID}]
	return ok, nil
}

func (s *fakeMembershipStore) IsHead(ctx context.Context, clubID, userID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.members[memberKey{clubID, userID}] == models.ClubRoleHead, nil
}

func (s *fakeMembershipStore) CountByClub(ctx context.Context, clubID int64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for k := range s.members {
		if k.clubID == clubID {
			n++
		}
	}
	return n, nil
}

func (s *fakeMembershipStore) HeadClubIDs(ctx context.Context, userID int64) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []int64
	for k, role := range s.members {
		if k.userID == userID && role == models.ClubRoleHead {
			out = append(out, k.clubID)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

type fakeEventStore struct {
	mu     sync.Mutex
	nextID int64
	events map[int64]*models.Event
	order  []int64
}

func newFakeEventStore() *fakeEventStore {
	return &fakeEventStore{nextID: 1, events: map[int64]*models.Event{}}
}

func (s *fakeEventStore) add(event models.Event) *models.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	event.ID = s.nextID
	s.nextID++
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	s.events[event.ID] = &event
	s.order = append(s.order, event.ID)
	return s.events[event.ID]
}

func (s *fakeEventStore) ListUpcomingApproved(ctx context.Context, from time.Time) ([]models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Event
	for _, id := range s.order {
		e := s.events[id]
		if e.Approved && !e.Date.Before(from) {
			out = append(out, *e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (s *fakeEventStore) ListPending(ctx context.Context) ([]models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Event
	for _, id := range s.order {
		if e := s.events[id]; !e.Approved {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (s *fakeEventStore) ListApprovedByClub(ctx context.Context, clubID int64) ([]models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Event
	for _, id := range s.order {
		e := s.events[id]
		if e.Approved && e.OrganizerClub == clubID {
			out = append(out, *e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (s *fakeEventStore) ListByClubIDs(ctx context.Context, clubIDs []int64) ([]models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := map[int64]bool{}
	for _, id := range clubIDs {
		ids[id] = true
	}
	var out []models.Event
	for _, id := range s.order {
		if e := s.events[id]; ids[e.OrganizerClub] {
			out = append(out, *e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[j].Date.Before(out[i].Date) })
	return out, nil
}

func (s *fakeEventStore) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.events[id]
	if !ok {
		return nil, apperrors.ErrEventNotFound
	}
	copy := *e
	return &copy, nil
}

func (s *fakeEventStore) Create(ctx context.Context, event *models.Event) (int64, error) {
	event.Approved = false
	return s.add(*event).ID, nil
}

func (s *fakeEventStore) Approve(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.events[id]
	if !ok {
		return false, nil
	}
	e.Approved = true
	return true, nil
}

func (s *fakeEventStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[id]; !ok {
		return apperrors.ErrEventNotFound
	}
	delete(s.events, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *fakeEventStore) CountUpcomingApproved(ctx context.Context, from time.Time) (int64, error) {
	events, _ := s.ListUpcomingApproved(ctx, from)
	return int64(len(events)), nil
}

type registrationKey struct {
	eventID, userID int64
}

type fakeRegistrationStore struct {
	mu      sync.Mutex
	entries map[registrationKey]bool
}

func newFakeRegistrationStore() *fakeRegistrationStore {
	return &fakeRegistrationStore{entries: map[registrationKey]bool{}}
}

func (s *fakeRegistrationStore) Toggle(ctx context.Context, eventID, userID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := registrationKey{eventID, userID}
	if s.entries[key] {
		delete(s.entries, key)
		return false, nil
	}
	s.entries[key] = true
	return true, nil
}

func (s *fakeRegistrationStore) RegisteredEventIDs(ctx context.Context, userID int64, eventIDs []int64) (map[int64]bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := map[int64]bool{}
	for _, id := range eventIDs {
		if s.entries[registrationKey{id, userID}] {
			out[id] = true
		}
	}
	return out, nil
}

type fakeProfileStore struct {
	mu       sync.Mutex
	nextID   int64
	profiles map[int64]*models.Profile
	byEmail  map[string]int64
}

func newFakeProfileStore() *fakeProfileStore {
	return &fakeProfileStore{
		nextID:   1,
		profiles: map[int64]*models.Profile{},
		byEmail:  map[string]int64{},
	}
}

func (s *fakeProfileStore) Create(ctx context.Context, profile *models.Profile) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byEmail[profile.Email]; ok {
		return 0, apperrors.ErrEmailAlreadyExists
	}
	p := *profile
	p.ID = s.nextID
	s.nextID++
	s.profiles[p.ID] = &p
	s.byEmail[p.Email] = p.ID
	return p.ID, nil
}

func (s *fakeProfileStore) GetByID(ctx context.Context, id int64) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[id]
	if !ok {
		return nil, apperrors.ErrProfileNotFound
	}
	copy := *p
	return &copy, nil
}

func (s *fakeProfileStore) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.byEmail[email]
	if !ok {
		return nil, apperrors.ErrProfileNotFound
	}
	copy := *s.profiles[id]
	return &copy, nil
}

func (s *fakeProfileStore) GetByIDs(ctx context.Context, ids []int64) (map[int64]*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := map[int64]*models.Profile{}
	for _, id := range ids {
		if p, ok := s.profiles[id]; ok {
			copy := *p
			out[id] = &copy
		}
	}
	return out, nil
}

type fakeAnnouncementStore struct {
	mu     sync.Mutex
	nextID int64
	items  []models.Announcement
}

func newFakeAnnouncementStore() *fakeAnnouncementStore {
	return &fakeAnnouncementStore{nextID: 1}
}

func (s *fakeAnnouncementStore) Create(ctx context.Context, announcement *models.Announcement) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := *announcement
	a.ID = s.nextID
	s.nextID++
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	s.items = append(s.items, a)
	return a.ID, nil
}

func (s *fakeAnnouncementStore) ListRecent(ctx context.Context, limit uint64) ([]models.Announcement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Announcement, len(s.items))
	copy(out, s.items)
	sort.Slice(out, func(i, j int) bool { return out[j].CreatedAt.Before(out[i].CreatedAt) })
	if uint64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *fakeAnnouncementStore) Count(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.items)), nil
}
