package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgUniqueViolation is the SQLSTATE for unique_violation.
const pgUniqueViolation = "23505"

/* ─── Database helpers ────────────────────────────────────────────────── */

// queryOne runs a query and scans the first row into T using RowToStructByName.
// Logs query and scan errors for debugging (e.g. struct/column mismatches).
// pgx.ErrNoRows is translated to errNotFound.
func queryOne[T any](ctx context.Context, pool *pgxpool.Pool, sql string, args pgx.NamedArgs) (T, error) {
	rows, err := pool.Query(ctx, sql, args)
	if err != nil {
		log.Printf("[queryOne] Query error: %v", err)
		var zero T
		return zero, err
	}
	result, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[T])
	if errors.Is(err, pgx.ErrNoRows) {
		return result, errNotFound
	}
	if err != nil {
		log.Printf("[queryOne] Scan error: %v", err)
	}
	return result, err
}

// queryMany runs a query and scans all rows into []T using RowToStructByName.
func queryMany[T any](ctx context.Context, pool *pgxpool.Pool, sql string, args pgx.NamedArgs) ([]T, error) {
	rows, err := pool.Query(ctx, sql, args)
	if err != nil {
		log.Printf("[queryMany] Query error: %v", err)
		return nil, err
	}
	results, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		log.Printf("[queryMany] Scan error: %v", err)
	}
	return results, err
}

// getDBPool creates a connection pool. We use a pool (not a single conn) because
// Neon closes idle connections after ~5 minutes.
func getDBPool(ctx context.Context, dbURL string) *pgxpool.Pool {
	config, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to parse DB URL: %v\n", err)
		os.Exit(1)
	}
	// Use simple query protocol to avoid "cached plan must not change result type"
	// errors from Neon's server-side prepared statement cache after schema changes.
	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol
	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to connect to database: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("DB pool ready!")
	return pool
}

// dateArg passes dates as YYYY-MM-DD text (cast in SQL) and zero dates as NULL.
func dateArg(d DateOnly) any {
	if d.IsZero() {
		return nil
	}
	return d.String()
}

// pgStore implements every store interface on one Postgres pool.
type pgStore struct {
	pool *pgxpool.Pool
}

func newPGStore(pool *pgxpool.Pool) *pgStore {
	return &pgStore{pool: pool}
}

/* ─── Users & sessions ────────────────────────────────────────────────── */

func (s *pgStore) CreateUser(ctx context.Context, u user) (user, error) {
	created, err := queryOne[user](ctx, s.pool,
		`INSERT INTO users (id, email, name, password, created_at)
		 VALUES (@id, @email, @name, @password, @createdAt)
		 RETURNING *`,
		pgx.NamedArgs{"id": newID(), "email": u.Email, "name": u.Name, "password": u.Password, "createdAt": nowUTC()})
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return user{}, errDuplicateEmail
	}
	return created, err
}

func (s *pgStore) FindUserByEmail(ctx context.Context, email string) (user, error) {
	return queryOne[user](ctx, s.pool,
		"SELECT * FROM users WHERE email = @email",
		pgx.NamedArgs{"email": email})
}

func (s *pgStore) CreateSession(ctx context.Context, userID, token string) error {
	_, err := s.pool.Exec(ctx,
		"INSERT INTO sessions (token, user_id) VALUES (@token, @userID)",
		pgx.NamedArgs{"token": token, "userID": userID})
	return err
}

func (s *pgStore) FindUserBySession(ctx context.Context, token string) (user, error) {
	return queryOne[user](ctx, s.pool,
		`SELECT u.* FROM users u
		 JOIN sessions s ON s.user_id = u.id
		 WHERE s.token = @token`,
		pgx.NamedArgs{"token": token})
}

func (s *pgStore) DeleteSession(ctx context.Context, token string) error {
	_, err := s.pool.Exec(ctx,
		"DELETE FROM sessions WHERE token = @token",
		pgx.NamedArgs{"token": token})
	return err
}

/* ─── Profiles ────────────────────────────────────────────────────────── */

// SaveProfile upserts on user_id, so concurrent saves resolve to whichever
// statement commits last.
func (s *pgStore) SaveProfile(ctx context.Context, p profile) (profile, error) {
	return queryOne[profile](ctx, s.pool,
		`INSERT INTO profiles (user_id, age, height_cm, weight_kg, gender, activity_level, goal, updated_at)
		 VALUES (@userID, @age, @heightCM, @weightKG, @gender, @activityLevel, @goal, now())
		 ON CONFLICT (user_id) DO UPDATE SET
			age            = EXCLUDED.age,
			height_cm      = EXCLUDED.height_cm,
			weight_kg      = EXCLUDED.weight_kg,
			gender         = EXCLUDED.gender,
			activity_level = EXCLUDED.activity_level,
			goal           = EXCLUDED.goal,
			updated_at     = EXCLUDED.updated_at
		 RETURNING *`,
		pgx.NamedArgs{
			"userID":        p.UserID,
			"age":           p.Age,
			"heightCM":      p.HeightCM,
			"weightKG":      p.WeightKG,
			"gender":        p.Gender,
			"activityLevel": p.ActivityLevel,
			"goal":          p.Goal,
		})
}

func (s *pgStore) GetProfile(ctx context.Context, userID string) (profile, error) {
	return queryOne[profile](ctx, s.pool,
		"SELECT * FROM profiles WHERE user_id = @userID",
		pgx.NamedArgs{"userID": userID})
}

/* ─── Workouts ────────────────────────────────────────────────────────── */

func (s *pgStore) AddWorkout(ctx context.Context, e workoutEntry) (workoutEntry, error) {
	return queryOne[workoutEntry](ctx, s.pool,
		`INSERT INTO workout_entries (id, user_id, date, exercise, sets, reps, weight_kg)
		 VALUES (@id, @userID, @date::date, @exercise, @sets, @reps, @weightKG)
		 RETURNING *`,
		pgx.NamedArgs{
			"id":       newID(),
			"userID":   e.UserID,
			"date":     dateArg(e.Date),
			"exercise": e.Exercise,
			"sets":     e.Sets,
			"reps":     e.Reps,
			"weightKG": e.WeightKG,
		})
}

func (s *pgStore) ListWorkouts(ctx context.Context, userID string) ([]workoutEntry, error) {
	return queryMany[workoutEntry](ctx, s.pool,
		`SELECT * FROM workout_entries
		 WHERE user_id = @userID
		 ORDER BY date, created_at`,
		pgx.NamedArgs{"userID": userID})
}

// DeleteWorkout is a no-op when nothing matches.
func (s *pgStore) DeleteWorkout(ctx context.Context, userID, id string) error {
	_, err := s.pool.Exec(ctx,
		"DELETE FROM workout_entries WHERE id = @id AND user_id = @userID",
		pgx.NamedArgs{"id": id, "userID": userID})
	return err
}

/* ─── Weight log ──────────────────────────────────────────────────────── */

func (s *pgStore) AddWeight(ctx context.Context, userID string, date DateOnly, weightKG float64) (weightLogEntry, error) {
	return queryOne[weightLogEntry](ctx, s.pool,
		`INSERT INTO weight_log (id, user_id, date, weight_kg)
		 VALUES (@id, @userID, @date::date, @weightKG)
		 RETURNING *`,
		pgx.NamedArgs{"id": newID(), "userID": userID, "date": dateArg(date), "weightKG": weightKG})
}

// ListWeights returns entries in ascending date order; same-date entries keep
// insertion order.
func (s *pgStore) ListWeights(ctx context.Context, userID string, r dateRange) ([]weightLogEntry, error) {
	return queryMany[weightLogEntry](ctx, s.pool,
		`SELECT * FROM weight_log
		 WHERE user_id = @userID
		   AND (@start::date IS NULL OR date >= @start::date)
		   AND (@end::date IS NULL OR date <= @end::date)
		 ORDER BY date ASC, created_at ASC`,
		pgx.NamedArgs{"userID": userID, "start": dateArg(r.Start), "end": dateArg(r.End)})
}
