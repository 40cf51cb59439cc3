package main

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Stores are keyed collections behind narrow interfaces. Each store is the
// only writer of its own records; writes are last-write-wins per key. Two
// implementations exist: Postgres (store_postgres.go) and in-memory
// (store_memory.go), picked in main by whether DB_URL is set.

// userStore owns users and their session tokens.
type userStore interface {
	CreateUser(ctx context.Context, u user) (user, error)
	FindUserByEmail(ctx context.Context, email string) (user, error)
	CreateSession(ctx context.Context, userID, token string) error
	FindUserBySession(ctx context.Context, token string) (user, error)
	DeleteSession(ctx context.Context, token string) error
}

// profileStore holds at most one profile per user.
type profileStore interface {
	SaveProfile(ctx context.Context, p profile) (profile, error)
	GetProfile(ctx context.Context, userID string) (profile, error)
}

// workoutStore holds immutable workout entries; delete is the only mutation.
type workoutStore interface {
	AddWorkout(ctx context.Context, e workoutEntry) (workoutEntry, error)
	ListWorkouts(ctx context.Context, userID string) ([]workoutEntry, error)
	DeleteWorkout(ctx context.Context, userID, id string) error
}

// weightLogStore is an append-only series of body-weight observations.
type weightLogStore interface {
	AddWeight(ctx context.Context, userID string, date DateOnly, weightKG float64) (weightLogEntry, error)
	ListWeights(ctx context.Context, userID string, r dateRange) ([]weightLogEntry, error)
}

// dateRange bounds a list query. Zero ends are open.
type dateRange struct {
	Start DateOnly
	End   DateOnly
}

func (r dateRange) contains(d DateOnly) bool {
	if !r.Start.IsZero() && d.Before(r.Start.Time) {
		return false
	}
	if !r.End.IsZero() && d.After(r.End.Time) {
		return false
	}
	return true
}

// newID assigns record ids. Stores call it so callers never pick their own.
func newID() string { return uuid.NewString() }

// nowUTC is swapped in tests that need fixed timestamps.
var nowUTC = func() time.Time { return time.Now().UTC() }
