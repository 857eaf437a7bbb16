package handler

import (
	"errors"
	"net/http"

	"blkout_community_go/internal/model"
	"blkout_community_go/internal/service"

	"github.com/gin-gonic/gin"
)

// mapServiceError converts service-layer sentinel errors into an HTTP status
// and a stable outward-facing message, so handlers don't accumulate
// scattered if/else chains and internals never leak into responses.
func mapServiceError(err error) (httpStatus int, message string) {
	switch {
	case errors.Is(err, service.ErrMissingFields):
		return http.StatusBadRequest, "Missing required fields"
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest, "Invalid request parameters"
	case errors.Is(err, service.ErrUnknownContentType):
		return http.StatusBadRequest, "Unknown content type"
	case errors.Is(err, service.ErrInvalidRating):
		return http.StatusBadRequest, "Invalid rating"
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid username or password"
	case errors.Is(err, service.ErrModeratorNotFound):
		return http.StatusNotFound, "Moderator not found"
	case errors.Is(err, service.ErrSubmissionNotFound):
		return http.StatusNotFound, "Submission not found"
	case errors.Is(err, service.ErrInvalidTransition):
		return http.StatusConflict, "Submission is not awaiting review"
	case errors.Is(err, service.ErrSearchUnavailable):
		return http.StatusServiceUnavailable, "Search is not available"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

// getModeratorFromContext reads the moderator injected by AuthMiddleware.
// On failure it writes the error response itself; callers just
// `if !ok { return }`.
func getModeratorFromContext(c *gin.Context) (*model.Moderator, bool) {
	moderatorVal, exists := c.Get("moderator")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"code":    http.StatusUnauthorized,
			"message": "Moderator not found in context",
		})
		return nil, false
	}

	moderator, ok := moderatorVal.(*model.Moderator)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    http.StatusInternalServerError,
			"message": "Failed to get moderator profile",
		})
		return nil, false
	}
	return moderator, true
}
