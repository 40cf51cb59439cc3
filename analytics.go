package main

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
)

// defaultAnalyticsExercise is shown when the caller does not pick one.
const defaultAnalyticsExercise = "Bench Press"

// volumePoint is total training volume (sets × reps × weight) for one day.
type volumePoint struct {
	Date   string  `json:"date"`
	Volume float64 `json:"volume"`
}

// strengthPoint is the best estimated one-rep max for one day, rounded to
// one decimal place.
type strengthPoint struct {
	Date  string  `json:"date"`
	OneRM float64 `json:"one_rm"`
}

// strengthStats compares the first and last day of a 1RM series.
type strengthStats struct {
	PercentChange float64 `json:"percent_change"`
	IsPR          bool    `json:"is_pr"`
}

// analyticsResponse is the response shape for GET /api/analytics.
type analyticsResponse struct {
	Exercise string          `json:"exercise"`
	Volume   []volumePoint   `json:"volume"`
	Strength []strengthPoint `json:"strength"`
	Stats    *strengthStats  `json:"stats"`
}

// epleyOneRM estimates a one-rep max from a set of reps at weight.
func epleyOneRM(weightKG float64, reps int) float64 {
	return weightKG * (1 + float64(reps)/30)
}

// groupByDate folds entries for one exercise into a per-day value using
// merge, then returns the days in ascending ISO order.
func groupByDate(entries []workoutEntry, exercise string, merge func(acc float64, seen bool, e workoutEntry) float64) ([]string, map[string]float64) {
	grouped := make(map[string]float64)
	for _, e := range entries {
		if e.Exercise != exercise {
			continue
		}
		day := e.Date.String()
		acc, seen := grouped[day]
		grouped[day] = merge(acc, seen, e)
	}

	days := make([]string, 0, len(grouped))
	for day := range grouped {
		days = append(days, day)
	}
	sort.Strings(days)
	return days, grouped
}

// volumeSeries sums sets × reps × weight per day for one exercise.
func volumeSeries(entries []workoutEntry, exercise string) []volumePoint {
	days, grouped := groupByDate(entries, exercise, func(acc float64, _ bool, e workoutEntry) float64 {
		return acc + float64(e.Sets*e.Reps)*e.WeightKG
	})

	out := make([]volumePoint, 0, len(days))
	for _, day := range days {
		out = append(out, volumePoint{Date: day, Volume: grouped[day]})
	}
	return out
}

// oneRMSeries keeps the highest Epley estimate per day for one exercise.
func oneRMSeries(entries []workoutEntry, exercise string) []strengthPoint {
	days, grouped := groupByDate(entries, exercise, func(acc float64, seen bool, e workoutEntry) float64 {
		est := epleyOneRM(e.WeightKG, e.Reps)
		if !seen || est > acc {
			return est
		}
		return acc
	})

	out := make([]strengthPoint, 0, len(days))
	for _, day := range days {
		out = append(out, strengthPoint{Date: day, OneRM: roundTo(grouped[day], 1)})
	}
	return out
}

// computeStrengthStats needs at least two days of data and returns nil
// otherwise. Percent change is measured on the rounded series values; a day
// is a PR when no earlier value beats it.
func computeStrengthStats(series []strengthPoint) *strengthStats {
	if len(series) < 2 {
		return nil
	}

	first := series[0].OneRM
	last := series[len(series)-1].OneRM
	best := first
	for _, p := range series {
		if p.OneRM > best {
			best = p.OneRM
		}
	}

	var pct float64
	if first != 0 {
		pct = roundTo((last-first)/first*100, 1)
	}
	return &strengthStats{PercentChange: pct, IsPR: last == best}
}

// weightChartSeries returns the weight log in ascending date order. Same-day
// entries are not merged; each one stays a separate point.
func weightChartSeries(entries []weightLogEntry) []weightLogEntry {
	out := make([]weightLogEntry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.String() < out[j].Date.String()
	})
	return out
}

// getAnalytics returns volume and strength series for one exercise.
// GET /api/analytics?exercise=Bench%20Press (defaults to Bench Press).
func (h *Handler) getAnalytics(c *gin.Context) {
	userID := currentUserID(c)
	exercise := c.DefaultQuery("exercise", defaultAnalyticsExercise)

	entries, err := h.workouts.ListWorkouts(c.Request.Context(), userID)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch workouts")
		return
	}

	strength := oneRMSeries(entries, exercise)
	c.JSON(http.StatusOK, analyticsResponse{
		Exercise: exercise,
		Volume:   volumeSeries(entries, exercise),
		Strength: strength,
		Stats:    computeStrengthStats(strength),
	})
}
