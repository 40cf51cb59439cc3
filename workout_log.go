package main

import (
	"net/http"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
)

// exerciseCatalog is the list the log form offers. Other labels are accepted
// too; the catalog is a suggestion, not a constraint.
var exerciseCatalog = []string{
	"Bench Press",
	"Squat",
	"Deadlift",
	"Overhead Press",
	"Barbell Row",
	"Pull-Up",
	"Lat Pulldown",
	"Dumbbell Curl",
	"Tricep Pushdown",
	"Leg Press",
	"Leg Curl",
	"Leg Extension",
	"Cable Fly",
	"Dumbbell Lateral Raise",
	"Face Pull",
	"Romanian Deadlift",
	"Hip Thrust",
	"Plank",
	"Crunch",
	"Running",
}

// getExercises returns the exercise catalog.
// GET /api/exercises.
func (h *Handler) getExercises(c *gin.Context) {
	c.JSON(http.StatusOK, exerciseCatalog)
}

// getWorkouts returns the user's workout log, newest date first.
// GET /api/workouts?exercise=... (exercise filter optional).
// Returns an empty array (not null) when nothing is logged.
func (h *Handler) getWorkouts(c *gin.Context) {
	entries, err := h.workouts.ListWorkouts(c.Request.Context(), currentUserID(c))
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch workouts")
		return
	}

	out := []workoutEntry{}
	exercise := c.Query("exercise")
	for _, e := range entries {
		if exercise == "" || e.Exercise == exercise {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date.Time) })

	c.JSON(http.StatusOK, out)
}

// createWorkout logs one exercise entry.
// POST /api/workouts. Body: { "date": "YYYY-MM-DD", "exercise", "sets", "reps", "weight_kg" }.
func (h *Handler) createWorkout(c *gin.Context) {
	var body createWorkoutRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	date, err := parseDate(body.Date)
	if err != nil {
		apiError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}
	exercise := strings.TrimSpace(body.Exercise)
	switch {
	case exercise == "":
		apiError(c, http.StatusBadRequest, "exercise is required")
		return
	case body.Sets <= 0:
		apiError(c, http.StatusBadRequest, "sets must be a positive integer")
		return
	case body.Reps <= 0:
		apiError(c, http.StatusBadRequest, "reps must be a positive integer")
		return
	case body.WeightKG < 0:
		apiError(c, http.StatusBadRequest, "weight_kg must not be negative")
		return
	}

	entry, err := h.workouts.AddWorkout(c.Request.Context(), workoutEntry{
		UserID:   currentUserID(c),
		Date:     date,
		Exercise: exercise,
		Sets:     body.Sets,
		Reps:     body.Reps,
		WeightKG: body.WeightKG,
	})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to create workout")
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// deleteWorkout removes one workout entry by ID.
// DELETE /api/workouts/:id. Always 204: deleting an unknown id is a no-op.
// Ownership is enforced by requiring both id and user_id to match.
func (h *Handler) deleteWorkout(c *gin.Context) {
	if err := h.workouts.DeleteWorkout(c.Request.Context(), currentUserID(c), c.Param("id")); err != nil {
		apiError(c, http.StatusInternalServerError, "failed to delete workout")
		return
	}
	c.Status(http.StatusNoContent)
}
