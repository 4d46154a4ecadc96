package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/serenelabs/serene/internal/auth"
	"github.com/serenelabs/serene/internal/models"
	"github.com/serenelabs/serene/internal/store"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func (s *Server) signup(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, codeInvalidRequest, "invalid request body")
		return
	}
	ctx := c.Request.Context()
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := s.store.UserByEmail(ctx, email); err == nil {
		respondError(c, http.StatusUnprocessableEntity, codeValidationFailed, "email is already registered")
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		respondFailure(c, err)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		respondError(c, http.StatusUnprocessableEntity, codeValidationFailed, err.Error())
		return
	}
	user := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		respondFailure(c, err)
		return
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		respondFailure(c, err)
		return
	}
	c.JSON(http.StatusCreated, authResponse{Token: token, User: user})
}

func (s *Server) login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, codeInvalidRequest, "invalid request body")
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.store.UserByEmail(c.Request.Context(), email)
	if err != nil || !auth.VerifyPassword(user.PasswordHash, req.Password) {
		// Same answer for unknown email and wrong password.
		respondError(c, http.StatusUnauthorized, codeUnauthorized, "invalid email or password")
		return
	}
	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		respondFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, authResponse{Token: token, User: user})
}
