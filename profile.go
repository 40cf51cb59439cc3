package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// getProfile returns the authenticated user's body-metrics profile.
// GET /api/profile. 404 until the first save.
func (h *Handler) getProfile(c *gin.Context) {
	p, err := h.profiles.GetProfile(c.Request.Context(), currentUserID(c))
	if errors.Is(err, errNotFound) {
		apiError(c, http.StatusNotFound, "profile not found")
		return
	}
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch profile")
		return
	}
	c.JSON(http.StatusOK, p)
}

// validateProfileRequest checks positivity and enum membership. Rejecting an
// unknown activity level here keeps bad values out of storage even though
// the TDEE math has a default for them.
func validateProfileRequest(body saveProfileRequest) string {
	switch {
	case body.Age <= 0:
		return "age must be a positive integer"
	case body.HeightCM <= 0:
		return "height_cm must be positive"
	case body.WeightKG <= 0:
		return "weight_kg must be positive"
	case !validGenders[body.Gender]:
		return "gender must be one of: male, female"
	}
	if _, ok := activityMultipliers[body.ActivityLevel]; !ok {
		return "activity_level must be one of: sedentary, light, moderate, active, very_active"
	}
	if !validGoals[body.Goal] {
		return "goal must be one of: cut, bulk, maintain"
	}
	return ""
}

// saveProfile replaces the authenticated user's profile (last write wins).
// PUT /api/profile. All fields required.
func (h *Handler) saveProfile(c *gin.Context) {
	var body saveProfileRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := validateProfileRequest(body); msg != "" {
		apiError(c, http.StatusBadRequest, msg)
		return
	}

	p, err := h.profiles.SaveProfile(c.Request.Context(), profile{
		UserID:        currentUserID(c),
		Age:           body.Age,
		HeightCM:      body.HeightCM,
		WeightKG:      body.WeightKG,
		Gender:        body.Gender,
		ActivityLevel: body.ActivityLevel,
		Goal:          body.Goal,
	})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to save profile")
		return
	}
	c.JSON(http.StatusOK, p)
}

// getHealthSummary returns BMI, BMR, TDEE, calorie target, goal safety and
// macro split computed from the saved profile.
// GET /api/profile/metrics.
func (h *Handler) getHealthSummary(c *gin.Context) {
	p, err := h.profiles.GetProfile(c.Request.Context(), currentUserID(c))
	if errors.Is(err, errNotFound) {
		apiError(c, http.StatusNotFound, "profile not found")
		return
	}
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch profile")
		return
	}
	c.JSON(http.StatusOK, summarizeHealth(p))
}
