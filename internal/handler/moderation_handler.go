package handler

import (
	"net/http"
	"strconv"

	"blkout_community_go/internal/service"
	"blkout_community_go/pkg/log"

	"github.com/gin-gonic/gin"
)

// ModerationHandler serves the admin-only review queue. The router mounts it
// behind the auth and admin middleware.
type ModerationHandler struct {
	moderationService service.ModerationService
}

func NewModerationHandler(moderationService service.ModerationService) *ModerationHandler {
	return &ModerationHandler{moderationService: moderationService}
}

// Queue handles GET /api/moderation/queue?status=&type=&q=.
func (h *ModerationHandler) Queue(c *gin.Context) {
	status := c.DefaultQuery("status", "pending")
	contentType := c.Query("type")
	query := c.Query("q")

	items, err := h.moderationService.Queue(status, contentType, query)
	if err != nil {
		httpStatus, msg := mapServiceError(err)
		c.JSON(httpStatus, gin.H{
			"code":    httpStatus,
			"message": msg,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    http.StatusOK,
		"message": "Moderation queue retrieved successfully",
		"items":   items,
	})
}

// ApproveRequest carries the optional moderator notes.
type ApproveRequest struct {
	Notes string `json:"notes"`
}

// Approve handles POST /api/moderation/:type/:id/approve.
func (h *ModerationHandler) Approve(c *gin.Context) {
	contentType, id, ok := moderationTarget(c)
	if !ok {
		return
	}
	moderator, ok := getModeratorFromContext(c)
	if !ok {
		return
	}

	var req ApproveRequest
	// An empty body is fine; notes are optional.
	_ = c.ShouldBindJSON(&req)

	if err := h.moderationService.Approve(contentType, id, req.Notes, moderator.Username); err != nil {
		log.Warnf("ModerationHandler.Approve: %s/%d: %v", contentType, id, err)
		status, msg := mapServiceError(err)
		c.JSON(status, gin.H{
			"code":    status,
			"message": msg,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    http.StatusOK,
		"message": "Submission approved",
	})
}

// RejectRequest carries the reason shown to the submitter.
type RejectRequest struct {
	Reason string `json:"reason"`
}

// Reject handles POST /api/moderation/:type/:id/reject.
func (h *ModerationHandler) Reject(c *gin.Context) {
	contentType, id, ok := moderationTarget(c)
	if !ok {
		return
	}
	if _, ok := getModeratorFromContext(c); !ok {
		return
	}

	var req RejectRequest
	_ = c.ShouldBindJSON(&req)

	if err := h.moderationService.Reject(contentType, id, req.Reason); err != nil {
		log.Warnf("ModerationHandler.Reject: %s/%d: %v", contentType, id, err)
		status, msg := mapServiceError(err)
		c.JSON(status, gin.H{
			"code":    status,
			"message": msg,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    http.StatusOK,
		"message": "Submission rejected",
	})
}

// moderationTarget parses the :type and :id path parameters. On failure it
// writes the 400 itself.
func moderationTarget(c *gin.Context) (string, uint, bool) {
	contentType := c.Param("type")
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    http.StatusBadRequest,
			"message": "Invalid submission id",
		})
		return "", 0, false
	}
	return contentType, uint(id), true
}
