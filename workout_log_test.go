package main

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createWorkoutEntry(t *testing.T, env *testEnv, token, body string) workoutEntry {
	t.Helper()
	w := env.do(t, http.MethodPost, "/api/workouts", token, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var e workoutEntry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &e))
	return e
}

func listWorkouts(t *testing.T, env *testEnv, token, query string) []workoutEntry {
	t.Helper()
	w := env.do(t, http.MethodGet, "/api/workouts"+query, token, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var out []workoutEntry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestGetExercises(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "w0@example.com")

	w := env.do(t, http.MethodGet, "/api/exercises", token, "")
	require.Equal(t, http.StatusOK, w.Code)

	var names []string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &names))
	assert.Contains(t, names, defaultAnalyticsExercise)
}

func TestCreateWorkout_AssignsID(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "w1@example.com")

	e := createWorkoutEntry(t, env, token, `{"date":"2024-05-01","exercise":" Squat ","sets":5,"reps":5,"weight_kg":100}`)
	assert.NotEmpty(t, e.ID)
	assert.Equal(t, "Squat", e.Exercise)
	assert.Equal(t, "2024-05-01", e.Date.String())
	assert.NotNil(t, e.CreatedAt)
}

func TestCreateWorkout_Validation(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "w2@example.com")

	cases := map[string]string{
		"bad date":        `{"date":"05/01/2024","exercise":"Squat","sets":5,"reps":5,"weight_kg":100}`,
		"missing date":    `{"exercise":"Squat","sets":5,"reps":5,"weight_kg":100}`,
		"blank exercise":  `{"date":"2024-05-01","exercise":"  ","sets":5,"reps":5,"weight_kg":100}`,
		"zero sets":       `{"date":"2024-05-01","exercise":"Squat","sets":0,"reps":5,"weight_kg":100}`,
		"zero reps":       `{"date":"2024-05-01","exercise":"Squat","sets":5,"reps":0,"weight_kg":100}`,
		"negative weight": `{"date":"2024-05-01","exercise":"Squat","sets":5,"reps":5,"weight_kg":-5}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			w := env.do(t, http.MethodPost, "/api/workouts", token, body)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		})
	}
	assert.Empty(t, listWorkouts(t, env, token, ""))
}

// TestCreateWorkout_Bodyweight: zero load is allowed for bodyweight work.
func TestCreateWorkout_Bodyweight(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "w3@example.com")

	e := createWorkoutEntry(t, env, token, `{"date":"2024-05-01","exercise":"Pull-Up","sets":3,"reps":8,"weight_kg":0}`)
	assert.Equal(t, 0.0, e.WeightKG)
}

func TestGetWorkouts_NewestFirstAndFiltered(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "w4@example.com")

	createWorkoutEntry(t, env, token, `{"date":"2024-05-01","exercise":"Squat","sets":5,"reps":5,"weight_kg":100}`)
	createWorkoutEntry(t, env, token, `{"date":"2024-05-03","exercise":"Bench Press","sets":5,"reps":5,"weight_kg":80}`)
	createWorkoutEntry(t, env, token, `{"date":"2024-05-02","exercise":"Squat","sets":5,"reps":5,"weight_kg":105}`)

	all := listWorkouts(t, env, token, "")
	require.Len(t, all, 3)
	assert.Equal(t, "2024-05-03", all[0].Date.String())
	assert.Equal(t, "2024-05-02", all[1].Date.String())
	assert.Equal(t, "2024-05-01", all[2].Date.String())

	squats := listWorkouts(t, env, token, "?exercise=Squat")
	require.Len(t, squats, 2)
	for _, e := range squats {
		assert.Equal(t, "Squat", e.Exercise)
	}
}

func TestGetWorkouts_EmptyIsArray(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "w5@example.com")

	w := env.do(t, http.MethodGet, "/api/workouts", token, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

// TestDeleteWorkout_Idempotent: deleting removes exactly that entry, and
// repeating the delete (or deleting an unknown id) is still 204.
func TestDeleteWorkout_Idempotent(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "w6@example.com")

	keep := createWorkoutEntry(t, env, token, `{"date":"2024-05-01","exercise":"Squat","sets":5,"reps":5,"weight_kg":100}`)
	drop := createWorkoutEntry(t, env, token, `{"date":"2024-05-02","exercise":"Squat","sets":5,"reps":5,"weight_kg":105}`)

	for i := 0; i < 2; i++ {
		w := env.do(t, http.MethodDelete, "/api/workouts/"+drop.ID, token, "")
		assert.Equal(t, http.StatusNoContent, w.Code)
	}
	w := env.do(t, http.MethodDelete, "/api/workouts/does-not-exist", token, "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	left := listWorkouts(t, env, token, "")
	require.Len(t, left, 1)
	assert.Equal(t, keep.ID, left[0].ID)
}

func TestDeleteWorkout_OtherUsersEntryUntouched(t *testing.T) {
	env := newTestEnv(t)
	owner := env.signup(t, "w7@example.com")
	other := env.signup(t, "w8@example.com")

	e := createWorkoutEntry(t, env, owner, `{"date":"2024-05-01","exercise":"Squat","sets":5,"reps":5,"weight_kg":100}`)

	w := env.do(t, http.MethodDelete, "/api/workouts/"+e.ID, other, "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	assert.Len(t, listWorkouts(t, env, owner, ""), 1)
	assert.Empty(t, listWorkouts(t, env, other, ""))
}
