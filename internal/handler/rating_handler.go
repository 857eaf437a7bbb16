package handler

import (
	"net/http"
	"strconv"

	"blkout_community_go/internal/service"

	"github.com/gin-gonic/gin"
)

// RatingHandler serves the rating widgets: submit a rating, read the summary.
type RatingHandler struct {
	ratingService service.RatingService
}

func NewRatingHandler(ratingService service.RatingService) *RatingHandler {
	return &RatingHandler{ratingService: ratingService}
}

// RateRequest is a single rating submission. UserID is optional; absent, the
// server mints a token the client keeps for later ratings.
type RateRequest struct {
	ContentType string `json:"contentType"`
	ContentID   uint   `json:"contentId"`
	UserID      string `json:"userId"`
	RatingType  string `json:"ratingType"`
	Value       int    `json:"value"`
}

// Rate handles POST /api/ratings.
func (h *RatingHandler) Rate(c *gin.Context) {
	var req RateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    http.StatusBadRequest,
			"message": "Invalid request body",
		})
		return
	}

	userID, summary, err := h.ratingService.Rate(
		c.Request.Context(), req.ContentType, req.ContentID, req.UserID, req.RatingType, req.Value)
	if err != nil {
		status, msg := mapServiceError(err)
		c.JSON(status, gin.H{
			"code":    status,
			"message": msg,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    http.StatusOK,
		"message": "Rating recorded",
		"userId":  userID,
		"summary": summary,
	})
}

// Summary handles GET /api/ratings/:contentType/:contentId.
func (h *RatingHandler) Summary(c *gin.Context) {
	contentID, err := strconv.ParseUint(c.Param("contentId"), 10, 64)
	if err != nil || contentID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    http.StatusBadRequest,
			"message": "Invalid content id",
		})
		return
	}

	summary, svcErr := h.ratingService.Summary(c.Request.Context(), c.Param("contentType"), uint(contentID))
	if svcErr != nil {
		status, msg := mapServiceError(svcErr)
		c.JSON(status, gin.H{
			"code":    status,
			"message": msg,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    http.StatusOK,
		"message": "Rating summary retrieved successfully",
		"summary": summary,
	})
}
