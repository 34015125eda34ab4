package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/baasproxy/internal/logger"
	"github.com/dtroode/baasproxy/internal/model"
)

type errorRule struct {
	target  error
	status  int
	message string
}

// errorTable maps error kinds of one operation to responses. Rules are
// checked in order with errors.Is; unmatched errors get the fallback.
type errorTable struct {
	rules    []errorRule
	fallback errorRule
}

var (
	signInErrors = errorTable{
		rules: []errorRule{
			{target: model.ErrInvalidCredentials, status: http.StatusBadRequest, message: "Invalid email or password"},
			{target: model.ErrInvalidEmail, status: http.StatusBadRequest, message: "Invalid email format"},
		},
		fallback: errorRule{status: http.StatusBadRequest, message: "An error occurred during sign in"},
	}
	signUpErrors = errorTable{
		rules: []errorRule{
			{target: model.ErrEmailInUse, status: http.StatusBadRequest, message: "Email is already in use"},
			{target: model.ErrInvalidEmail, status: http.StatusBadRequest, message: "Invalid email format"},
			{target: model.ErrWeakPassword, status: http.StatusBadRequest, message: "Password is too weak"},
		},
		fallback: errorRule{status: http.StatusBadRequest, message: "An error occurred during sign up"},
	}
	profileGetErrors = errorTable{
		rules: []errorRule{
			{target: model.ErrUnauthorized, status: http.StatusUnauthorized, message: "Unauthorized"},
		},
		fallback: errorRule{status: http.StatusInternalServerError, message: "An error occurred while fetching user data"},
	}
	profileUpdateErrors = errorTable{
		rules: []errorRule{
			{target: model.ErrUnauthorized, status: http.StatusUnauthorized, message: "Unauthorized"},
		},
		fallback: errorRule{status: http.StatusInternalServerError, message: "An error occurred while updating user data"},
	}
	documentGetErrors = errorTable{
		rules: []errorRule{
			{target: model.ErrNotFound, status: http.StatusNotFound, message: "Document not found"},
		},
		fallback: errorRule{status: http.StatusInternalServerError, message: "An error occurred while fetching data"},
	}
	documentCreateErrors = errorTable{
		fallback: errorRule{status: http.StatusInternalServerError, message: "An error occurred while creating data"},
	}
	documentUpdateErrors = errorTable{
		rules: []errorRule{
			{target: model.ErrNotFound, status: http.StatusNotFound, message: "Document not found"},
		},
		fallback: errorRule{status: http.StatusInternalServerError, message: "An error occurred while updating data"},
	}
	documentDeleteErrors = errorTable{
		fallback: errorRule{status: http.StatusInternalServerError, message: "An error occurred while deleting data"},
	}
)

// resolve returns the status and caller-safe message for err, and whether
// err fell through to the fallback.
func (t errorTable) resolve(err error) (int, string, bool) {
	var validationErr *model.ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest, validationErr.Message, false
	}

	for _, rule := range t.rules {
		if errors.Is(err, rule.target) {
			return rule.status, rule.message, false
		}
	}

	return t.fallback.status, t.fallback.message, true
}

// writeError logs the cause and writes the mapped response. Raw errors never
// reach the client.
func writeError(c *gin.Context, log *logger.Logger, table errorTable, msg string, err error, args ...any) {
	status, message, unmatched := table.resolve(err)

	args = append(args, "status", status, "error", err.Error())
	if unmatched {
		log.Error(msg, args...)
		_ = c.Error(err)
	} else {
		log.Info(msg, args...)
	}

	c.AbortWithStatusJSON(status, gin.H{"error": message})
}
