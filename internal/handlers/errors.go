package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/erp_journal_engine/internal/apperrors"
	"github.com/SscSPs/erp_journal_engine/internal/core/domain"
	"github.com/SscSPs/erp_journal_engine/internal/dto"
	"github.com/SscSPs/erp_journal_engine/internal/middleware"
)

// respondWithError maps err to the error envelope. Typed errors keep their
// status and code; anything else is an opaque 500.
func respondWithError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromContext(c)

	appErr, ok := apperrors.As(err)
	if !ok {
		logger.Error("Unhandled error", slog.String("error", err.Error()))
		c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Internal server error",
			Code:  apperrors.CodeInternal,
		})
		return
	}

	message := appErr.Message
	if appErr.StatusCode >= http.StatusInternalServerError {
		logger.Error("Request failed", slog.String("code", appErr.Code), slog.String("error", appErr.Error()))
		// Storage details stay in the log
		message = "Internal server error"
	} else {
		logger.Warn("Request rejected", slog.String("code", appErr.Code), slog.String("error", appErr.Message))
	}

	c.AbortWithStatusJSON(appErr.StatusCode, dto.ErrorResponse{
		Error:   message,
		Code:    appErr.Code,
		Field:   appErr.Field,
		Details: appErr.Details,
	})
}

// respondWithBindError reports a binding failure as VALIDATION_ERROR.
func respondWithBindError(c *gin.Context, err error) {
	field, details := middleware.ValidationDetails(err)
	message := "Request validation failed"
	var queryErr *dto.InvalidQueryError
	switch {
	case errors.As(err, &queryErr):
		field, message = queryErr.Field, queryErr.Error()
	case details == nil:
		// Malformed JSON or a type mismatch
		message = "Invalid request format: " + err.Error()
	}

	appErr := apperrors.NewValidationError(field, message)
	appErr.Details = details
	respondWithError(c, appErr)
}

// authContext returns the caller or writes a 401.
func authContext(c *gin.Context) (domain.AuthContext, bool) {
	auth, ok := middleware.GetAuthContext(c)
	if !ok {
		respondWithError(c, apperrors.NewUnauthorizedError("Unauthorized"))
		return domain.AuthContext{}, false
	}
	return auth, true
}
