package handler

import (
	"net/http"

	"blkout_community_go/internal/service"
	"blkout_community_go/pkg/log"

	"github.com/gin-gonic/gin"
)

// ArticleHandler serves the public newsroom endpoints.
type ArticleHandler struct {
	submissionService service.SubmissionService
}

func NewArticleHandler(submissionService service.SubmissionService) *ArticleHandler {
	return &ArticleHandler{submissionService: submissionService}
}

// CreateArticleRequest is the request body for a newsroom submission.
type CreateArticleRequest struct {
	Title           string   `json:"title"`
	Excerpt         string   `json:"excerpt"`
	Body            string   `json:"body"`
	AuthorName      string   `json:"authorName"`
	AuthorEmail     string   `json:"authorEmail"`
	Category        string   `json:"category"`
	Tags            []string `json:"tags"`
	CommunityValues []string `json:"communityValues"`
	TraumaInformed  bool     `json:"traumaInformed"`
	AutoApprove     bool     `json:"autoApprove"`
}

// Create handles POST /api/news.
func (h *ArticleHandler) Create(c *gin.Context) {
	var req CreateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    http.StatusBadRequest,
			"message": "Invalid request body",
		})
		return
	}

	article, err := h.submissionService.SubmitArticle(service.SubmitArticleRequest{
		Title:           req.Title,
		Excerpt:         req.Excerpt,
		Body:            req.Body,
		AuthorName:      req.AuthorName,
		AuthorEmail:     req.AuthorEmail,
		Category:        req.Category,
		Tags:            req.Tags,
		CommunityValues: req.CommunityValues,
		TraumaInformed:  req.TraumaInformed,
		AutoApprove:     req.AutoApprove,
	})
	if err != nil {
		log.Warnf("ArticleHandler.Create: failed to submit article: %v", err)
		status, msg := mapServiceError(err)
		c.JSON(status, gin.H{
			"code":    status,
			"message": msg,
		})
		return
	}

	message := "Article submitted and awaiting review"
	if req.AutoApprove {
		message = "Article published"
	}
	c.JSON(http.StatusCreated, gin.H{
		"code":    http.StatusCreated,
		"message": message,
		"article": article,
	})
}

// List handles GET /api/news: published articles with author and category.
func (h *ArticleHandler) List(c *gin.Context) {
	articles, err := h.submissionService.ListNews()
	if err != nil {
		status, msg := mapServiceError(err)
		c.JSON(status, gin.H{
			"code":    status,
			"message": msg,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":     http.StatusOK,
		"message":  "Articles retrieved successfully",
		"articles": articles,
	})
}
