// Package testutil provides in-memory repositories for service and handler tests.
package testutil

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/event-service/internal/domain"
	"github.com/spec-kit/event-service/internal/repository"
)

// Store keeps users, events, RSVPs and favorites in memory. It enforces the same
// uniqueness and cascade rules as the SQL schema.
type Store struct {
	mu        sync.Mutex
	clock     time.Time
	users     map[string]*domain.User
	events    map[string]*domain.Event
	rsvps     map[string]*domain.RSVP
	favorites map[string]*domain.Favorite
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		clock:     time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		users:     make(map[string]*domain.User),
		events:    make(map[string]*domain.Event),
		rsvps:     make(map[string]*domain.RSVP),
		favorites: make(map[string]*domain.Favorite),
	}
}

// tick returns a strictly increasing timestamp so ordering by creation is stable.
func (s *Store) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

func (s *Store) Users() repository.UserRepository         { return userRepo{s} }
func (s *Store) Events() repository.EventRepository       { return eventRepo{s} }
func (s *Store) RSVPs() repository.RSVPRepository         { return rsvpRepo{s} }
func (s *Store) Favorites() repository.FavoriteRepository { return favoriteRepo{s} }

// DeleteUser removes a user and everything that references it.
func (s *Store) DeleteUser(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id)
	for eventID, e := range s.events {
		if e.OrganizerID == id {
			s.deleteEventLocked(eventID)
		}
	}
	for key, r := range s.rsvps {
		if r.UserID == id {
			delete(s.rsvps, key)
		}
	}
	for key, f := range s.favorites {
		if f.UserID == id {
			delete(s.favorites, key)
		}
	}
}

// RSVPCount returns the number of stored RSVP rows.
func (s *Store) RSVPCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rsvps)
}

// FavoriteCount returns the number of stored favorite rows.
func (s *Store) FavoriteCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.favorites)
}

func (s *Store) deleteEventLocked(id string) {
	delete(s.events, id)
	for key, r := range s.rsvps {
		if r.EventID == id {
			delete(s.rsvps, key)
		}
	}
	for key, f := range s.favorites {
		if f.EventID == id {
			delete(s.favorites, key)
		}
	}
}

func (s *Store) summaryLocked(userID string) *domain.UserSummary {
	u, ok := s.users[userID]
	if !ok {
		return &domain.UserSummary{ID: userID}
	}
	summary := u.Summary()
	return &summary
}

func (s *Store) eventCopyLocked(e *domain.Event) domain.Event {
	out := *e
	out.RSVPs = nil
	out.Organizer = s.summaryLocked(e.OrganizerID)
	return out
}

func (s *Store) rsvpCopyLocked(r *domain.RSVP) domain.RSVP {
	out := *r
	user := domain.UserSummary{ID: r.UserID}
	if u, ok := s.users[r.UserID]; ok {
		user.Email = u.Email
	}
	out.User = &user
	event := domain.EventSummary{ID: r.EventID}
	if e, ok := s.events[r.EventID]; ok {
		event.Title = e.Title
	}
	out.Event = &event
	return out
}

func pairKey(userID, eventID string) string {
	return userID + "|" + eventID
}

type userRepo struct{ s *Store }

func (r userRepo) Create(_ context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if existing.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	user.ID = uuid.NewString()
	user.CreatedAt = r.s.tick()
	user.UpdatedAt = user.CreatedAt
	stored := *user
	r.s.users[user.ID] = &stored
	return nil
}

func (r userRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := *u
	return &out, nil
}

func (r userRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			out := *u
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r userRepo) MarkVerified(_ context.Context, id string) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u.Verified = true
	u.UpdatedAt = r.s.tick()
	out := *u
	return &out, nil
}

type eventRepo struct{ s *Store }

func (r eventRepo) Create(_ context.Context, event *domain.Event) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[event.OrganizerID]; !ok {
		return repository.ErrNotFound
	}
	event.ID = uuid.NewString()
	event.CreatedAt = r.s.tick()
	event.UpdatedAt = event.CreatedAt
	stored := *event
	stored.Organizer, stored.RSVPs = nil, nil
	r.s.events[event.ID] = &stored
	return nil
}

func (r eventRepo) Update(_ context.Context, event *domain.Event) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.events[event.ID]
	if !ok {
		return repository.ErrNotFound
	}
	stored.Title = event.Title
	stored.Description = event.Description
	stored.Date = event.Date
	stored.Location = event.Location
	stored.UpdatedAt = r.s.tick()
	event.UpdatedAt = stored.UpdatedAt
	return nil
}

func (r eventRepo) Approve(_ context.Context, id string) (*domain.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.events[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	stored.Approved = true
	stored.UpdatedAt = r.s.tick()
	out := r.s.eventCopyLocked(stored)
	return &out, nil
}

func (r eventRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.events[id]; !ok {
		return repository.ErrNotFound
	}
	r.s.deleteEventLocked(id)
	return nil
}

func (r eventRepo) GetByID(_ context.Context, id string) (*domain.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.events[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := r.s.eventCopyLocked(stored)
	return &out, nil
}

func (r eventRepo) List(_ context.Context, filter repository.EventFilter) ([]domain.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	result := []domain.Event{}
	for _, e := range r.s.events {
		if filter.ApprovedOnly && !e.Approved {
			continue
		}
		if filter.OrganizerID != nil && e.OrganizerID != *filter.OrganizerID {
			continue
		}
		result = append(result, r.s.eventCopyLocked(e))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (r eventRepo) CountByOrganizer(_ context.Context, organizerID string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	count := 0
	for _, e := range r.s.events {
		if e.OrganizerID == organizerID {
			count++
		}
	}
	return count, nil
}

type rsvpRepo struct{ s *Store }

func (r rsvpRepo) Upsert(_ context.Context, rsvp *domain.RSVP) (domain.UpsertOutcome, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[rsvp.UserID]; !ok {
		return 0, repository.ErrNotFound
	}
	if _, ok := r.s.events[rsvp.EventID]; !ok {
		return 0, repository.ErrNotFound
	}
	key := pairKey(rsvp.UserID, rsvp.EventID)
	if stored, ok := r.s.rsvps[key]; ok {
		stored.Status = rsvp.Status
		stored.UpdatedAt = r.s.tick()
		rsvp.ID, rsvp.CreatedAt, rsvp.UpdatedAt = stored.ID, stored.CreatedAt, stored.UpdatedAt
		return domain.Updated, nil
	}
	rsvp.ID = uuid.NewString()
	rsvp.CreatedAt = r.s.tick()
	rsvp.UpdatedAt = rsvp.CreatedAt
	stored := *rsvp
	stored.User, stored.Event = nil, nil
	r.s.rsvps[key] = &stored
	return domain.Created, nil
}

func (r rsvpRepo) ListByEvent(ctx context.Context, eventID string) ([]domain.RSVP, error) {
	return r.ListByEvents(ctx, []string{eventID})
}

func (r rsvpRepo) ListByEvents(_ context.Context, eventIDs []string) ([]domain.RSVP, error) {
	wanted := make(map[string]struct{}, len(eventIDs))
	for _, id := range eventIDs {
		wanted[id] = struct{}{}
	}
	return r.filter(func(rsvp *domain.RSVP) bool {
		_, ok := wanted[rsvp.EventID]
		return ok
	}), nil
}

func (r rsvpRepo) ListByUser(_ context.Context, userID string) ([]domain.RSVP, error) {
	return r.filter(func(rsvp *domain.RSVP) bool { return rsvp.UserID == userID }), nil
}

func (r rsvpRepo) CountByUser(ctx context.Context, userID string) (int, error) {
	list, _ := r.ListByUser(ctx, userID)
	return len(list), nil
}

func (r rsvpRepo) filter(keep func(*domain.RSVP) bool) []domain.RSVP {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	result := []domain.RSVP{}
	for _, rsvp := range r.s.rsvps {
		if keep(rsvp) {
			result = append(result, r.s.rsvpCopyLocked(rsvp))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result
}

type favoriteRepo struct{ s *Store }

func (r favoriteRepo) Create(_ context.Context, favorite *domain.Favorite) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.events[favorite.EventID]; !ok {
		return repository.ErrNotFound
	}
	key := pairKey(favorite.UserID, favorite.EventID)
	if _, ok := r.s.favorites[key]; ok {
		return repository.ErrDuplicate
	}
	favorite.ID = uuid.NewString()
	favorite.CreatedAt = r.s.tick()
	stored := *favorite
	stored.Event = nil
	r.s.favorites[key] = &stored
	return nil
}

func (r favoriteRepo) Delete(_ context.Context, userID, eventID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := pairKey(userID, eventID)
	if _, ok := r.s.favorites[key]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.favorites, key)
	return nil
}

func (r favoriteRepo) ListByUser(_ context.Context, userID string) ([]domain.Favorite, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	result := []domain.Favorite{}
	for _, f := range r.s.favorites {
		if f.UserID != userID {
			continue
		}
		out := *f
		if e, ok := r.s.events[f.EventID]; ok {
			event := r.s.eventCopyLocked(e)
			out.Event = &event
		}
		result = append(result, out)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

// CreateUser stores a user with the given role and verification state.
// The password hash is left empty.
func CreateUser(t *testing.T, s *Store, email string, role domain.Role, verified bool) *domain.User {
	t.Helper()
	user := &domain.User{Email: email, Role: role, Verified: verified}
	if err := s.Users().Create(context.Background(), user); err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateEvent stores an event organized by organizerID.
func CreateEvent(t *testing.T, s *Store, organizerID, title string, approved bool) *domain.Event {
	t.Helper()
	event := &domain.Event{
		Title:       title,
		Description: title + " description",
		Date:        time.Date(2026, 6, 1, 18, 0, 0, 0, time.UTC),
		Location:    "Town Hall",
		OrganizerID: organizerID,
		Approved:    approved,
	}
	if err := s.Events().Create(context.Background(), event); err != nil {
		t.Fatalf("failed to create test event: %v", err)
	}
	return event
}
