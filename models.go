package main

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// dateLayout is the only calendar-day format the API accepts and emits.
const dateLayout = "2006-01-02"

// DateOnly wraps time.Time to serialize as "YYYY-MM-DD" in JSON.
type DateOnly struct{ time.Time }

// parseDate parses a YYYY-MM-DD string into a DateOnly (UTC midnight).
func parseDate(s string) (DateOnly, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return DateOnly{}, err
	}
	return DateOnly{t}, nil
}

// String returns the ISO calendar day. Lexicographic order of these strings
// matches chronological order, which the analytics grouping relies on.
func (d DateOnly) String() string {
	return d.Time.Format(dateLayout)
}

func (d DateOnly) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *DateOnly) UnmarshalJSON(b []byte) error {
	t, err := time.Parse(`"`+dateLayout+`"`, string(b))
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// ScanDate implements pgtype.DateScanner so pgx can scan PostgreSQL date
// columns (OID 1082) into DateOnly. NULL values zero the time and return nil.
func (d *DateOnly) ScanDate(v pgtype.Date) error {
	if !v.Valid {
		d.Time = time.Time{}
		return nil
	}
	d.Time = v.Time
	return nil
}

/* ─── Domain structs ─────────────────────────────────────────────────── */

// user maps to the users table. Password holds the bcrypt hash and is hidden
// from JSON responses.
type user struct {
	ID        string    `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	Name      string    `json:"name" db:"name"`
	Password  string    `json:"-" db:"password"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// profile maps to the profiles table. One row per user; saving replaces
// every field (last write wins, no history).
type profile struct {
	UserID        string     `json:"user_id"        db:"user_id"`
	Age           int        `json:"age"            db:"age"`
	HeightCM      float64    `json:"height_cm"      db:"height_cm"`
	WeightKG      float64    `json:"weight_kg"      db:"weight_kg"`
	Gender        string     `json:"gender"         db:"gender"`
	ActivityLevel string     `json:"activity_level" db:"activity_level"`
	Goal          string     `json:"goal"           db:"goal"`
	UpdatedAt     *time.Time `json:"updated_at"     db:"updated_at"`
}

// workoutEntry maps to workout_entries. Entries are immutable once created;
// the only mutation is delete by id.
type workoutEntry struct {
	ID        string     `json:"id"         db:"id"`
	UserID    string     `json:"user_id"    db:"user_id"`
	Date      DateOnly   `json:"date"       db:"date"`
	Exercise  string     `json:"exercise"   db:"exercise"`
	Sets      int        `json:"sets"       db:"sets"`
	Reps      int        `json:"reps"       db:"reps"`
	WeightKG  float64    `json:"weight_kg"  db:"weight_kg"`
	CreatedAt *time.Time `json:"created_at" db:"created_at"`
}

// weightLogEntry maps to weight_log. Append-only; several entries on the same
// date are all kept.
type weightLogEntry struct {
	ID        string     `json:"id"         db:"id"`
	UserID    string     `json:"user_id"    db:"user_id"`
	Date      DateOnly   `json:"date"       db:"date"`
	WeightKG  float64    `json:"weight_kg"  db:"weight_kg"`
	CreatedAt *time.Time `json:"created_at" db:"created_at"`
}

/* ─── Request / response shapes ──────────────────────────────────────── */

// authRequest is the request body for POST /api/signup and POST /api/login.
// Name is ignored on login.
type authRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// authResponse is returned on successful signup or login.
type authResponse struct {
	Token string `json:"token"`
	User  user   `json:"user"`
}

// saveProfileRequest is the request body for PUT /api/profile. Every field is
// required: a save replaces the whole profile.
type saveProfileRequest struct {
	Age           int     `json:"age"`
	HeightCM      float64 `json:"height_cm"`
	WeightKG      float64 `json:"weight_kg"`
	Gender        string  `json:"gender"`
	ActivityLevel string  `json:"activity_level"`
	Goal          string  `json:"goal"`
}

// createWorkoutRequest is the request body for POST /api/workouts.
type createWorkoutRequest struct {
	Date     string  `json:"date"`
	Exercise string  `json:"exercise"`
	Sets     int     `json:"sets"`
	Reps     int     `json:"reps"`
	WeightKG float64 `json:"weight_kg"`
}

// createWeightRequest is the request body for POST /api/weight-log.
type createWeightRequest struct {
	Date     string  `json:"date"`
	WeightKG float64 `json:"weight_kg"`
}

// healthSummary is the response shape for GET /api/profile/metrics.
type healthSummary struct {
	Profile        profile        `json:"profile"`
	BMI            float64        `json:"bmi"`
	BMICategory    bmiCategory    `json:"bmi_category"`
	BMR            int            `json:"bmr"`
	TDEE           int            `json:"tdee"`
	CalorieTarget  int            `json:"calorie_target"`
	GoalValidation goalValidation `json:"goal_validation"`
	Macros         macroPlan      `json:"macros"`
}
