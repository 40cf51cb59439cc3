package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// maxWeightKG bounds accepted body-weight values.
const maxWeightKG = 999.9

// getWeightLog returns weight entries for the authenticated user, ascending by date.
// GET /api/weight-log?start=YYYY-MM-DD&end=YYYY-MM-DD. Both params optional.
// Returns an empty array (not null) if no entries exist in the range.
func (h *Handler) getWeightLog(c *gin.Context) {
	var r dateRange
	if s := c.Query("start"); s != "" {
		d, err := parseDate(s)
		if err != nil {
			apiError(c, http.StatusBadRequest, "invalid start, expected YYYY-MM-DD")
			return
		}
		r.Start = d
	}
	if s := c.Query("end"); s != "" {
		d, err := parseDate(s)
		if err != nil {
			apiError(c, http.StatusBadRequest, "invalid end, expected YYYY-MM-DD")
			return
		}
		r.End = d
	}
	if !r.Start.IsZero() && !r.End.IsZero() && r.Start.After(r.End.Time) {
		apiError(c, http.StatusBadRequest, "start must not be after end")
		return
	}

	entries, err := h.weights.ListWeights(c.Request.Context(), currentUserID(c), r)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch weight log")
		return
	}
	// Ensure empty array (not null) in JSON
	if entries == nil {
		entries = []weightLogEntry{}
	}

	c.JSON(http.StatusOK, weightChartSeries(entries))
}

// createWeightEntry appends a weight observation.
// POST /api/weight-log. Body: { "date": "YYYY-MM-DD", "weight_kg": 82.5 }.
// Posting the same date twice keeps both entries.
func (h *Handler) createWeightEntry(c *gin.Context) {
	var body createWeightRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Date == "" {
		apiError(c, http.StatusBadRequest, "date is required")
		return
	}
	date, err := parseDate(body.Date)
	if err != nil {
		apiError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}
	if body.WeightKG <= 0 || body.WeightKG > maxWeightKG {
		apiError(c, http.StatusBadRequest, "weight_kg must be between 0 and 999.9")
		return
	}

	entry, err := h.weights.AddWeight(c.Request.Context(), currentUserID(c), date, body.WeightKG)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to create weight entry")
		return
	}

	c.JSON(http.StatusCreated, entry)
}
