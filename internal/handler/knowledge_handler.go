package handler

import (
	"net/http"
	"strconv"

	"blkout_community_go/internal/service"

	"github.com/gin-gonic/gin"
)

// KnowledgeHandler exposes full-text search over the IVOR knowledge base.
type KnowledgeHandler struct {
	knowledgeService service.KnowledgeService
}

func NewKnowledgeHandler(knowledgeService service.KnowledgeService) *KnowledgeHandler {
	return &KnowledgeHandler{knowledgeService: knowledgeService}
}

// Search handles GET /api/ivor/resources/search?q=&limit=.
func (h *KnowledgeHandler) Search(c *gin.Context) {
	query := c.Query("q")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	docs, err := h.knowledgeService.SearchResources(c.Request.Context(), query, limit)
	if err != nil {
		status, msg := mapServiceError(err)
		c.JSON(status, gin.H{
			"code":    status,
			"message": msg,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":      http.StatusOK,
		"message":   "Resources retrieved successfully",
		"resources": docs,
	})
}
