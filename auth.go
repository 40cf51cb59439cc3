package main

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Context keys set by authMiddleware.
const (
	ctxUserKey  = "user"
	ctxTokenKey = "session_token"
)

// dummyHash is a pre-computed bcrypt hash used when a login email isn't found.
// Running bcrypt against it (instead of returning early) keeps response time
// constant, preventing timing-based email enumeration.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("dummy"), bcrypt.DefaultCost)

// normalizeCredentials trims both fields and lower-cases the email, so
// emails are unique case-insensitively.
func normalizeCredentials(email, password string) (string, string) {
	return strings.ToLower(strings.TrimSpace(email)), strings.TrimSpace(password)
}

// startSession issues a fresh opaque token for the user.
func (h *Handler) startSession(c *gin.Context, u user) (authResponse, error) {
	token := uuid.NewString()
	if err := h.users.CreateSession(c.Request.Context(), u.ID, token); err != nil {
		return authResponse{}, err
	}
	return authResponse{Token: token, User: u}, nil
}

// signup creates an account and logs it in.
// POST /api/signup (public). Body: { "email", "password", "name" }.
// Returns 409 when the email is already registered.
func (h *Handler) signup(c *gin.Context) {
	var body authRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	email, password := normalizeCredentials(body.Email, body.Password)
	if email == "" || password == "" {
		apiError(c, http.StatusBadRequest, "email and password are required")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to create user")
		return
	}

	u, err := h.users.CreateUser(c.Request.Context(), user{
		Email:    email,
		Name:     strings.TrimSpace(body.Name),
		Password: string(hash),
	})
	if errors.Is(err, errDuplicateEmail) {
		apiError(c, http.StatusConflict, "user already exists")
		return
	}
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to create user")
		return
	}

	resp, err := h.startSession(c, u)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to start session")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// login verifies email/password and opens a new session.
// POST /api/login (public, no auth required).
func (h *Handler) login(c *gin.Context) {
	var body authRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	email, password := normalizeCredentials(body.Email, body.Password)

	u, lookupErr := h.users.FindUserByEmail(c.Request.Context(), email)

	// Always run bcrypt to keep response time constant regardless of whether the
	// email was found, so timing does not reveal which emails exist.
	hashToCheck := string(dummyHash)
	if lookupErr == nil {
		hashToCheck = u.Password
	}
	compareErr := bcrypt.CompareHashAndPassword([]byte(hashToCheck), []byte(password))

	if lookupErr != nil || compareErr != nil {
		apiError(c, http.StatusUnauthorized, errInvalidCredentials.Error())
		return
	}

	resp, err := h.startSession(c, u)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to start session")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// logout ends the presented session only. User and profile data stay.
// POST /api/logout.
func (h *Handler) logout(c *gin.Context) {
	if err := h.users.DeleteSession(c.Request.Context(), c.GetString(ctxTokenKey)); err != nil {
		apiError(c, http.StatusInternalServerError, "failed to end session")
		return
	}
	c.Status(http.StatusNoContent)
}

// getMe returns the user behind the current session.
// GET /api/me.
func (h *Handler) getMe(c *gin.Context) {
	c.JSON(http.StatusOK, currentUser(c))
}

// authMiddleware validates the Bearer token and sets the session user on the context.
func (h *Handler) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			apiError(c, http.StatusUnauthorized, "missing or invalid authorization header")
			c.Abort()
			return
		}
		token := strings.TrimPrefix(header, "Bearer ")

		u, err := h.users.FindUserBySession(c.Request.Context(), token)
		if err != nil {
			apiError(c, http.StatusUnauthorized, "invalid token")
			c.Abort()
			return
		}

		c.Set(ctxUserKey, u)
		c.Set(ctxTokenKey, token)
		c.Next()
	}
}

// currentUser reads the session user set by authMiddleware.
func currentUser(c *gin.Context) user {
	u, _ := c.Get(ctxUserKey)
	cur, _ := u.(user)
	return cur
}

func currentUserID(c *gin.Context) string {
	return currentUser(c).ID
}
