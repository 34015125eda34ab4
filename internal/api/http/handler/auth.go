package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/baasproxy/internal/logger"
	"github.com/dtroode/baasproxy/internal/model"
)

// AuthService defines sign-in and sign-up operations.
type AuthService interface {
	SignIn(ctx context.Context, credential model.Credential) (model.Session, error)
	SignUp(ctx context.Context, params model.SignUpParams) (model.SignUpResult, error)
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// Auth handles HTTP endpoints for authentication.
type Auth struct {
	authService AuthService
	logger      *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(authService AuthService, logger *logger.Logger) *Auth {
	return &Auth{
		authService: authService,
		logger:      logger,
	}
}

// SignIn exchanges an email and password for an ID token.
func (h *Auth) SignIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, h.logger, signInErrors, "Auth handler: invalid sign in body", model.ErrInvalidBody)
		return
	}

	h.logger.Debug("Auth handler: processing sign in request",
		"email", req.Email)

	session, err := h.authService.SignIn(c.Request.Context(), model.Credential{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeError(c, h.logger, signInErrors, "Auth handler: sign in failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":    session.Identity.ID,
		"email": session.Identity.Email,
		"token": session.IDToken,
	})
}

// SignUp creates an account and returns its ID token.
func (h *Auth) SignUp(c *gin.Context) {
	var req signUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, h.logger, signUpErrors, "Auth handler: invalid sign up body", model.ErrInvalidBody)
		return
	}

	h.logger.Debug("Auth handler: processing sign up request",
		"email", req.Email)

	res, err := h.authService.SignUp(c.Request.Context(), model.SignUpParams{
		Credential: model.Credential{Email: req.Email, Password: req.Password},
		Name:       req.Name,
	})
	if err != nil {
		writeError(c, h.logger, signUpErrors, "Auth handler: sign up failed", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":    res.Session.Identity.ID,
		"email": res.Session.Identity.Email,
		"name":  nullable(res.Name),
		"token": res.Session.IDToken,
	})
}

func nullable(s string) any {
	if s == "" {
		return nil
	}

	return s
}
