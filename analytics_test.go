package main

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, s string) DateOnly {
	t.Helper()
	d, err := parseDate(s)
	require.NoError(t, err)
	return d
}

func workout(t *testing.T, date, exercise string, sets, reps int, weightKG float64) workoutEntry {
	return workoutEntry{
		UserID:   "user-1",
		Date:     mustDate(t, date),
		Exercise: exercise,
		Sets:     sets,
		Reps:     reps,
		WeightKG: weightKG,
	}
}

func TestEpleyOneRM(t *testing.T) {
	assert.InDelta(t, 116.6667, epleyOneRM(100, 5), 1e-4)
	assert.Equal(t, 100.0, epleyOneRM(100, 0))
}

// TestStrengthStats_TwoSessions: 100x5 then 110x5 gives 116.7 and 128.3,
// a 9.9% gain, and the last session is a PR.
func TestStrengthStats_TwoSessions(t *testing.T) {
	entries := []workoutEntry{
		workout(t, "2024-02-01", "Bench Press", 3, 5, 110),
		workout(t, "2024-01-01", "Bench Press", 3, 5, 100),
	}

	series := oneRMSeries(entries, "Bench Press")
	require.Len(t, series, 2)
	assert.Equal(t, strengthPoint{Date: "2024-01-01", OneRM: 116.7}, series[0])
	assert.Equal(t, strengthPoint{Date: "2024-02-01", OneRM: 128.3}, series[1])

	stats := computeStrengthStats(series)
	require.NotNil(t, stats)
	assert.Equal(t, 9.9, stats.PercentChange)
	assert.True(t, stats.IsPR)
}

func TestStrengthStats_NotPRAfterDrop(t *testing.T) {
	series := []strengthPoint{
		{Date: "2024-01-01", OneRM: 100},
		{Date: "2024-01-08", OneRM: 120},
		{Date: "2024-01-15", OneRM: 110},
	}

	stats := computeStrengthStats(series)
	require.NotNil(t, stats)
	assert.Equal(t, 10.0, stats.PercentChange)
	assert.False(t, stats.IsPR)
}

// TestStrengthStats_TieIsPR: matching the best so far still counts.
func TestStrengthStats_TieIsPR(t *testing.T) {
	series := []strengthPoint{
		{Date: "2024-01-01", OneRM: 120},
		{Date: "2024-01-08", OneRM: 100},
		{Date: "2024-01-15", OneRM: 120},
	}

	stats := computeStrengthStats(series)
	require.NotNil(t, stats)
	assert.Equal(t, 0.0, stats.PercentChange)
	assert.True(t, stats.IsPR)
}

func TestStrengthStats_NeedsTwoDates(t *testing.T) {
	assert.Nil(t, computeStrengthStats(nil))

	// Several sets on one day collapse into a single point.
	entries := []workoutEntry{
		workout(t, "2024-01-01", "Squat", 1, 5, 100),
		workout(t, "2024-01-01", "Squat", 1, 3, 110),
	}
	series := oneRMSeries(entries, "Squat")
	require.Len(t, series, 1)
	assert.Nil(t, computeStrengthStats(series))
}

func TestStrengthStats_ZeroFirstValue(t *testing.T) {
	series := []strengthPoint{
		{Date: "2024-01-01", OneRM: 0},
		{Date: "2024-01-08", OneRM: 50},
	}

	stats := computeStrengthStats(series)
	require.NotNil(t, stats)
	assert.Equal(t, 0.0, stats.PercentChange)
	assert.True(t, stats.IsPR)
}

// TestOneRMSeries_MaxPerDay keeps the best estimate among a day's sets.
func TestOneRMSeries_MaxPerDay(t *testing.T) {
	entries := []workoutEntry{
		workout(t, "2024-01-01", "Deadlift", 1, 10, 100), // 133.3
		workout(t, "2024-01-01", "Deadlift", 1, 1, 140),  // 144.7
		workout(t, "2024-01-01", "Deadlift", 1, 5, 120),  // 140
	}

	series := oneRMSeries(entries, "Deadlift")
	require.Len(t, series, 1)
	assert.Equal(t, 144.7, series[0].OneRM)
}

// TestVolumeSeries_SumsPerDay: 3x10x60 + 3x5x76 on one day is 2940.
func TestVolumeSeries_SumsPerDay(t *testing.T) {
	entries := []workoutEntry{
		workout(t, "2024-03-02", "Bench Press", 3, 8, 50),
		workout(t, "2024-03-01", "Bench Press", 3, 10, 60),
		workout(t, "2024-03-01", "Bench Press", 3, 5, 76),
		workout(t, "2024-03-01", "Squat", 5, 5, 100),
	}

	got := volumeSeries(entries, "Bench Press")
	assert.Equal(t, []volumePoint{
		{Date: "2024-03-01", Volume: 2940},
		{Date: "2024-03-02", Volume: 1200},
	}, got)
}

func TestVolumeSeries_UnknownExercise(t *testing.T) {
	entries := []workoutEntry{workout(t, "2024-03-01", "Squat", 5, 5, 100)}

	got := volumeSeries(entries, "Bench Press")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

// TestWeightChartSeries_KeepsSameDayEntries checks duplicates survive and the
// output is ascending by date with insertion order kept inside a day.
func TestWeightChartSeries_KeepsSameDayEntries(t *testing.T) {
	entries := []weightLogEntry{
		{ID: "c", Date: mustDate(t, "2024-01-03"), WeightKG: 79},
		{ID: "a", Date: mustDate(t, "2024-01-01"), WeightKG: 80},
		{ID: "b1", Date: mustDate(t, "2024-01-02"), WeightKG: 80.5},
		{ID: "b2", Date: mustDate(t, "2024-01-02"), WeightKG: 80.2},
	}

	got := weightChartSeries(entries)
	require.Len(t, got, 4)
	ids := []string{got[0].ID, got[1].ID, got[2].ID, got[3].ID}
	assert.Equal(t, []string{"a", "b1", "b2", "c"}, ids)

	// Input is not reordered in place.
	assert.Equal(t, "c", entries[0].ID)
}

/* ─── Handler ────────────────────────────────────────────────────────── */

func TestGetAnalytics_DefaultsToBenchPress(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "lifter@example.com")

	for _, body := range []string{
		`{"date":"2024-01-01","exercise":"Bench Press","sets":3,"reps":5,"weight_kg":100}`,
		`{"date":"2024-02-01","exercise":"Bench Press","sets":3,"reps":5,"weight_kg":110}`,
		`{"date":"2024-02-01","exercise":"Squat","sets":3,"reps":5,"weight_kg":140}`,
	} {
		w := env.do(t, http.MethodPost, "/api/workouts", token, body)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w := env.do(t, http.MethodGet, "/api/analytics", token, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp analyticsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Bench Press", resp.Exercise)
	assert.Len(t, resp.Volume, 2)
	assert.Equal(t, 1500.0, resp.Volume[0].Volume)
	require.Len(t, resp.Strength, 2)
	require.NotNil(t, resp.Stats)
	assert.Equal(t, 9.9, resp.Stats.PercentChange)
	assert.True(t, resp.Stats.IsPR)
}

func TestGetAnalytics_SingleDayHasNoStats(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "squatter@example.com")

	w := env.do(t, http.MethodPost, "/api/workouts", token,
		`{"date":"2024-02-01","exercise":"Squat","sets":3,"reps":5,"weight_kg":140}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.do(t, http.MethodGet, "/api/analytics?exercise=Squat", token, "")
	require.Equal(t, http.StatusOK, w.Code)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	assert.JSONEq(t, "null", string(raw["stats"]))
}
