package handler

import (
	"net/http"
	"time"

	"blkout_community_go/internal/service"
	"blkout_community_go/pkg/log"

	"github.com/gin-gonic/gin"
)

// EventHandler serves the public events endpoints.
type EventHandler struct {
	submissionService service.SubmissionService
}

func NewEventHandler(submissionService service.SubmissionService) *EventHandler {
	return &EventHandler{submissionService: submissionService}
}

// CreateEventRequest is the request body for an event submission.
type CreateEventRequest struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Date            string   `json:"date"`
	Location        string   `json:"location"`
	Organizer       string   `json:"organizer"`
	EventType       string   `json:"eventType"`
	Category        string   `json:"category"`
	CommunityValues []string `json:"communityValues"`
	TraumaInformed  bool     `json:"traumaInformed"`
	AutoApprove     bool     `json:"autoApprove"`
}

// Create handles POST /api/events.
func (h *EventHandler) Create(c *gin.Context) {
	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    http.StatusBadRequest,
			"message": "Invalid request body",
		})
		return
	}

	date, ok := parseSubmissionDate(req.Date)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    http.StatusBadRequest,
			"message": "Missing required fields",
		})
		return
	}

	event, err := h.submissionService.SubmitEvent(service.SubmitEventRequest{
		Title:           req.Title,
		Description:     req.Description,
		Date:            date,
		Location:        req.Location,
		Organizer:       req.Organizer,
		EventType:       req.EventType,
		Category:        req.Category,
		CommunityValues: req.CommunityValues,
		TraumaInformed:  req.TraumaInformed,
		AutoApprove:     req.AutoApprove,
	})
	if err != nil {
		log.Warnf("EventHandler.Create: failed to submit event: %v", err)
		status, msg := mapServiceError(err)
		c.JSON(status, gin.H{
			"code":    status,
			"message": msg,
		})
		return
	}

	message := "Event submitted and awaiting review"
	if req.AutoApprove {
		message = "Event approved and published"
	}
	c.JSON(http.StatusCreated, gin.H{
		"code":    http.StatusCreated,
		"message": message,
		"event":   event,
	})
}

// List handles GET /api/events, sorted by date ascending.
func (h *EventHandler) List(c *gin.Context) {
	events, err := h.submissionService.ListEvents()
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
		"message": "Events retrieved successfully",
		"events":  events,
	})
}

// parseSubmissionDate accepts a bare date or a full RFC 3339 timestamp.
func parseSubmissionDate(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	return time.Time{}, false
}
