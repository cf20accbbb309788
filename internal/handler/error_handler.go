package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"community-feed-api/internal/response"
)

// handleServiceError maps service layer errors to appropriate HTTP responses
func handleServiceError(c *gin.Context, logger *zap.Logger, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.SendError(c, http.StatusNotFound, response.ErrCodeNotFound, "Resource not found")
		return
	}

	var appErr *response.AppError
	if errors.As(err, &appErr) {
		statusCode := mapErrorCodeToHTTPStatus(appErr.Code)
		if statusCode >= http.StatusInternalServerError {
			logger.Error("Service error",
				zap.String("code", appErr.Code),
				zap.String("message", appErr.Message),
				zap.String("details", appErr.Details),
				zap.String("path", c.FullPath()),
			)
		} else {
			logger.Debug("Request rejected",
				zap.String("code", appErr.Code),
				zap.String("message", appErr.Message),
				zap.String("path", c.FullPath()),
			)
		}
		response.SendError(c, statusCode, appErr.Code, appErr.Message)
		return
	}

	logger.Error("Unhandled error", zap.String("type", fmt.Sprintf("%T", err)), zap.Error(err))
	response.SendError(c, http.StatusInternalServerError, response.ErrCodeInternal, "Internal server error")
}

var statusByCode = map[string]int{
	response.ErrCodeNotFound:      http.StatusNotFound,
	response.ErrCodeAlreadyExists: http.StatusConflict,
	response.ErrCodeConflict:      http.StatusConflict,
	response.ErrCodeValidation:    http.StatusBadRequest,
	response.ErrCodeUnauthorized:  http.StatusUnauthorized,
	response.ErrCodeForbidden:     http.StatusForbidden,
	response.ErrCodeRateLimited:   http.StatusTooManyRequests,
}

// mapErrorCodeToHTTPStatus maps error codes to HTTP status codes; unknown codes are 500
func mapErrorCodeToHTTPStatus(code string) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// parseIDParam reads a UUID path parameter, writing a 400 when it is malformed
func parseIDParam(c *gin.Context, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid "+label+" ID")
		return uuid.Nil, false
	}
	return id, true
}
