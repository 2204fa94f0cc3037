package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/bank_rules_app/internal/apperrors"
	"github.com/SscSPs/bank_rules_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// respondError maps service errors onto status codes. Validation issues are
// returned as a list of {path, message}; unexpected errors hide their cause.
func respondError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation failed", slog.String("error", err.Error()))
		if issues := apperrors.IssuesOf(err); len(issues) > 0 {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Success: false, Error: issues})
			return
		}
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Success: false, Error: messageOf(err)})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Success: false, Error: messageOf(err)})
	case errors.Is(err, apperrors.ErrConflict):
		logger.Info("Request conflicts with current state", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, dto.ErrorResponse{Success: false, Error: messageOf(err)})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Success: false, Error: fallback})
	}
}

func messageOf(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return err.Error()
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Success: false, Error: msg})
}

func unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Success: false, Error: "Unauthorized"})
}
