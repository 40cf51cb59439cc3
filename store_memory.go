package main

import (
	"context"
	"sort"
	"sync"
)

// memoryStore implements every store interface in process memory. Used when
// no DB_URL is configured and by the handler tests. A single mutex guards all
// collections; each operation is a whole read-modify-write under the lock.
type memoryStore struct {
	mu       sync.Mutex
	users    map[string]user   // by id
	emails   map[string]string // email -> user id
	sessions map[string]string // token -> user id
	profiles map[string]profile
	workouts []workoutEntry
	weights  []weightLogEntry
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		users:    make(map[string]user),
		emails:   make(map[string]string),
		sessions: make(map[string]string),
		profiles: make(map[string]profile),
	}
}

/* ─── Users & sessions ────────────────────────────────────────────────── */

func (s *memoryStore) CreateUser(_ context.Context, u user) (user, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.emails[u.Email]; taken {
		return user{}, errDuplicateEmail
	}
	u.ID = newID()
	u.CreatedAt = nowUTC()
	s.users[u.ID] = u
	s.emails[u.Email] = u.ID
	return u, nil
}

func (s *memoryStore) FindUserByEmail(_ context.Context, email string) (user, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.emails[email]
	if !ok {
		return user{}, errNotFound
	}
	return s.users[id], nil
}

func (s *memoryStore) CreateSession(_ context.Context, userID, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[userID]; !ok {
		return errNotFound
	}
	s.sessions[token] = userID
	return nil
}

func (s *memoryStore) FindUserBySession(_ context.Context, token string) (user, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.sessions[token]
	if !ok {
		return user{}, errNotFound
	}
	return s.users[id], nil
}

func (s *memoryStore) DeleteSession(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, token)
	return nil
}

/* ─── Profiles ────────────────────────────────────────────────────────── */

func (s *memoryStore) SaveProfile(_ context.Context, p profile) (profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := nowUTC()
	p.UpdatedAt = &now
	s.profiles[p.UserID] = p
	return p, nil
}

func (s *memoryStore) GetProfile(_ context.Context, userID string) (profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.profiles[userID]
	if !ok {
		return profile{}, errNotFound
	}
	return p, nil
}

/* ─── Workouts ────────────────────────────────────────────────────────── */

func (s *memoryStore) AddWorkout(_ context.Context, e workoutEntry) (workoutEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := nowUTC()
	e.ID = newID()
	e.CreatedAt = &now
	s.workouts = append(s.workouts, e)
	return e, nil
}

// ListWorkouts returns the user's entries by ascending date, insertion order
// within a day, matching the Postgres ORDER BY.
func (s *memoryStore) ListWorkouts(_ context.Context, userID string) ([]workoutEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []workoutEntry{}
	for _, e := range s.workouts {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date.Time) })
	return out, nil
}

// DeleteWorkout removes the matching entry, if any. Entries of other users
// are never touched, and a missing id is not an error.
func (s *memoryStore) DeleteWorkout(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.workouts[:0]
	for _, e := range s.workouts {
		if e.ID == id && e.UserID == userID {
			continue
		}
		kept = append(kept, e)
	}
	s.workouts = kept
	return nil
}

/* ─── Weight log ──────────────────────────────────────────────────────── */

func (s *memoryStore) AddWeight(_ context.Context, userID string, date DateOnly, weightKG float64) (weightLogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := nowUTC()
	e := weightLogEntry{
		ID:        newID(),
		UserID:    userID,
		Date:      date,
		WeightKG:  weightKG,
		CreatedAt: &now,
	}
	s.weights = append(s.weights, e)
	return e, nil
}

func (s *memoryStore) ListWeights(_ context.Context, userID string, r dateRange) ([]weightLogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []weightLogEntry{}
	for _, e := range s.weights {
		if e.UserID == userID && r.contains(e.Date) {
			out = append(out, e)
		}
	}
	return weightChartSeries(out), nil
}
