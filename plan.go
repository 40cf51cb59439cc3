package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

/* ─── Request / Response types ───────────────────────────────────────── */

// defaultFoodType matches the dashboard's initial selection.
const defaultFoodType = "nonveg"

// validFoodTypes is the set of food preferences the prediction service accepts.
var validFoodTypes = map[string]bool{
	"veg":    true,
	"nonveg": true,
	"vegan":  true,
}

// maxPlanResponseBytes caps how much of the prediction response we read.
const maxPlanResponseBytes = 1 << 20

// predictRequest is the body POSTed to {base}/predict.
type predictRequest struct {
	Age      int     `json:"age"`
	Height   float64 `json:"height"`
	Weight   float64 `json:"weight"`
	Gender   string  `json:"gender"`
	Activity string  `json:"activity"`
	Goal     string  `json:"goal"`
	FoodType string  `json:"food_type"`
}

// fitnessPlan is the prediction service's answer. It is passed through to
// the caller as-is and never stored. Confidence is a 0-100 percentage; the
// service may send decimals.
type fitnessPlan struct {
	Title           string   `json:"title"`
	DietStrategy    string   `json:"diet_strategy"`
	ExampleMeals    []string `json:"example_meals"`
	WorkoutStrategy string   `json:"workout_strategy"`
	WorkoutSplit    []string `json:"workout_split"`
	Explanation     string   `json:"explanation"`
	Confidence      float64  `json:"confidence"`
	ModelType       string   `json:"model_type"`
}

// createPlanRequest is the request body for POST /api/plan.
type createPlanRequest struct {
	FoodType string `json:"food_type"`
}

/* ─── Prediction HTTP client ─────────────────────────────────────────── */

// planClient calls the external prediction service. No retries: a failed
// call is reported once and the caller decides what to do.
type planClient struct {
	baseURL    string
	httpClient *http.Client
}

// newPlanClient builds a client for baseURL. timeout bounds the whole
// exchange; zero leaves only the caller's context as the limit.
func newPlanClient(baseURL string, timeout time.Duration) *planClient {
	return &planClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func newPredictRequest(p profile, foodType string) predictRequest {
	return predictRequest{
		Age:      p.Age,
		Height:   p.HeightCM,
		Weight:   p.WeightKG,
		Gender:   p.Gender,
		Activity: p.ActivityLevel,
		Goal:     p.Goal,
		FoodType: foodType,
	}
}

// requestPlan sends the profile and food preference to the prediction
// service and decodes the plan. Every failure is a *planRequestError.
func (pc *planClient) requestPlan(ctx context.Context, p profile, foodType string) (fitnessPlan, error) {
	bodyBytes, err := json.Marshal(newPredictRequest(p, foodType))
	if err != nil {
		return fitnessPlan{}, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, pc.baseURL+"/predict", bytes.NewReader(bodyBytes))
	if err != nil {
		return fitnessPlan{}, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := pc.httpClient.Do(httpReq)
	if err != nil {
		return fitnessPlan{}, &planRequestError{Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(io.LimitReader(resp.Body, maxPlanResponseBytes))
	if err != nil {
		return fitnessPlan{}, &planRequestError{Message: "read response failed", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Use the service's own message when it sent one.
		var errBody struct {
			Error string `json:"error"`
		}
		msg := genericPlanFailure
		if json.Unmarshal(respBytes, &errBody) == nil && errBody.Error != "" {
			msg = errBody.Error
		}
		return fitnessPlan{}, &planRequestError{Status: resp.StatusCode, Message: msg}
	}

	var plan fitnessPlan
	if err := json.Unmarshal(respBytes, &plan); err != nil {
		return fitnessPlan{}, &planRequestError{Message: "malformed plan response", Err: errors.Join(errMalformedPlan, err)}
	}
	return plan, nil
}

/* ─── Handler ────────────────────────────────────────────────────────── */

// createPlan handles POST /api/plan. Loads the caller's profile, refuses
// unsafe goal/BMI combinations with 422, then asks the prediction service
// for a plan. Nothing is persisted, and a failed call leaves the saved
// profile untouched.
func (h *Handler) createPlan(c *gin.Context) {
	userID := currentUserID(c)

	var req createPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.FoodType == "" {
		req.FoodType = defaultFoodType
	}
	if !validFoodTypes[req.FoodType] {
		apiError(c, http.StatusBadRequest, "food_type must be one of: veg, nonveg, vegan")
		return
	}

	p, err := h.profiles.GetProfile(c.Request.Context(), userID)
	if errors.Is(err, errNotFound) {
		apiError(c, http.StatusNotFound, "profile not found")
		return
	}
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch profile")
		return
	}

	if v := validateGoal(calculateBMI(p.WeightKG, p.HeightCM), p.Goal); !v.Valid {
		h.metrics.recordPlanOutcome(planOutcomeBlocked)
		apiError(c, http.StatusUnprocessableEntity, (&goalValidationError{Result: v}).Error())
		return
	}

	start := time.Now()
	plan, err := h.planner.requestPlan(c.Request.Context(), p, req.FoodType)
	h.metrics.recordPlanLatency(time.Since(start))
	if err != nil {
		log.Printf("[createPlan] prediction error for user %s: %v", userID, err)
		var perr *planRequestError
		switch {
		case errors.As(err, &perr) && perr.Status != 0:
			h.metrics.recordPlanOutcome(planOutcomeRemoteError)
			apiError(c, http.StatusBadGateway, perr.Message)
		case errors.Is(err, errMalformedPlan):
			h.metrics.recordPlanOutcome(planOutcomeBadResponse)
			apiError(c, http.StatusBadGateway, genericPlanFailure)
		default:
			h.metrics.recordPlanOutcome(planOutcomeTransport)
			apiError(c, http.StatusBadGateway, "prediction service unavailable")
		}
		return
	}

	h.metrics.recordPlanOutcome(planOutcomeSuccess)
	c.JSON(http.StatusOK, plan)
}
