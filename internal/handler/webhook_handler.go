package handler

import (
	"net/http"

	"blkout_community_go/internal/service"
	"blkout_community_go/pkg/log"

	"github.com/gin-gonic/gin"
)

// WebhookHandler receives submissions pushed by the n8n automation pipeline.
// The signature middleware has already authenticated the request body by the
// time these handlers run.
type WebhookHandler struct {
	submissionService service.SubmissionService
}

func NewWebhookHandler(submissionService service.SubmissionService) *WebhookHandler {
	return &WebhookHandler{submissionService: submissionService}
}

// InboundSubmission is the envelope n8n posts: a discriminator plus the
// submission fields for that content type.
type InboundSubmission struct {
	Type       string `json:"type"`
	Submission struct {
		Title           string   `json:"title"`
		Description     string   `json:"description"`
		Date            string   `json:"date"`
		Location        string   `json:"location"`
		Organizer       string   `json:"organizer"`
		EventType       string   `json:"eventType"`
		Category        string   `json:"category"`
		Excerpt         string   `json:"excerpt"`
		Body            string   `json:"body"`
		AuthorName      string   `json:"authorName"`
		AuthorEmail     string   `json:"authorEmail"`
		Tags            []string `json:"tags"`
		CommunityValues []string `json:"communityValues"`
		TraumaInformed  bool     `json:"traumaInformed"`
	} `json:"submission"`
}

// Receive handles POST /api/webhooks/n8n-submissions. Automated submissions
// always land in the review queue; auto-approval is not offered on this path.
func (h *WebhookHandler) Receive(c *gin.Context) {
	var req InboundSubmission
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    http.StatusBadRequest,
			"message": "Invalid request body",
		})
		return
	}

	switch req.Type {
	case "event":
		date, ok := parseSubmissionDate(req.Submission.Date)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{
				"code":    http.StatusBadRequest,
				"message": "Missing required fields",
			})
			return
		}
		event, err := h.submissionService.SubmitEvent(service.SubmitEventRequest{
			Title:           req.Submission.Title,
			Description:     req.Submission.Description,
			Date:            date,
			Location:        req.Submission.Location,
			Organizer:       req.Submission.Organizer,
			EventType:       req.Submission.EventType,
			Category:        req.Submission.Category,
			CommunityValues: req.Submission.CommunityValues,
			TraumaInformed:  req.Submission.TraumaInformed,
		})
		if err != nil {
			log.Warnf("WebhookHandler.Receive: event submission failed: %v", err)
			status, msg := mapServiceError(err)
			c.JSON(status, gin.H{"code": status, "message": msg})
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"code":    http.StatusCreated,
			"message": "Event submitted and awaiting review",
			"event":   event,
		})

	case "article", "news":
		article, err := h.submissionService.SubmitArticle(service.SubmitArticleRequest{
			Title:           req.Submission.Title,
			Excerpt:         req.Submission.Excerpt,
			Body:            req.Submission.Body,
			AuthorName:      req.Submission.AuthorName,
			AuthorEmail:     req.Submission.AuthorEmail,
			Category:        req.Submission.Category,
			Tags:            req.Submission.Tags,
			CommunityValues: req.Submission.CommunityValues,
			TraumaInformed:  req.Submission.TraumaInformed,
		})
		if err != nil {
			log.Warnf("WebhookHandler.Receive: article submission failed: %v", err)
			status, msg := mapServiceError(err)
			c.JSON(status, gin.H{"code": status, "message": msg})
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"code":    http.StatusCreated,
			"message": "Article submitted and awaiting review",
			"article": article,
		})

	default:
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    http.StatusBadRequest,
			"message": "Unknown content type",
		})
	}
}
