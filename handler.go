package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// Handler holds shared dependencies (stores, prediction client, limiter,
// metrics) for all route handlers.
type Handler struct {
	users    userStore
	profiles profileStore
	workouts workoutStore
	weights  weightLogStore
	planner  *planClient
	limiter  *planRateLimiter
	metrics  *metrics
}

// storeSet is anything that implements all four stores, i.e. pgStore and
// memoryStore.
type storeSet interface {
	userStore
	profileStore
	workoutStore
	weightLogStore
}

// newHandler wires a Handler from one backing store and the config.
func newHandler(s storeSet, cfg Config, m *metrics) *Handler {
	return &Handler{
		users:    s,
		profiles: s,
		workouts: s,
		weights:  s,
		planner:  newPlanClient(cfg.PredictBaseURL, cfg.PredictTimeout),
		limiter:  newPlanRateLimiter(cfg.PlanRatePerMinute, cfg.PlanRateBurst),
		metrics:  m,
	}
}

// apiError returns a consistent JSON error response: {"error": "message"}.
func apiError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

/* ─── Server setup ────────────────────────────────────────────────────── */

// newRouter builds the gin engine with every route registered.
func (h *Handler) newRouter(gatherer prometheus.Gatherer) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), h.metrics.middleware())
	router.SetTrustedProxies(nil)

	router.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	router.GET("/metrics", metricsHandler(gatherer))
	h.registerRoutes(router)
	return router
}

// registerRoutes registers all API routes on the router.
func (h *Handler) registerRoutes(router *gin.Engine) {
	// Public routes
	router.POST("/api/signup", h.signup)
	router.POST("/api/login", h.login)

	// Authenticated routes
	api := router.Group("/api", h.authMiddleware())
	api.POST("/logout", h.logout)
	api.GET("/me", h.getMe)
	api.GET("/profile", h.getProfile)
	api.PUT("/profile", h.saveProfile)
	api.GET("/profile/metrics", h.getHealthSummary)
	api.GET("/exercises", h.getExercises)
	api.GET("/workouts", h.getWorkouts)
	api.POST("/workouts", h.createWorkout)
	api.DELETE("/workouts/:id", h.deleteWorkout)
	api.GET("/analytics", h.getAnalytics)
	api.GET("/weight-log", h.getWeightLog)
	api.POST("/weight-log", h.createWeightEntry)
	api.POST("/plan", h.limiter.middleware(h.metrics), h.createPlan)
}
