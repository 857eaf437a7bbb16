package handler

import (
	"net/http"
	"time"

	"blkout_community_go/internal/service"
	"blkout_community_go/pkg/log"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// ChatHandler exposes the IVOR scripted responder over REST and a websocket.
type ChatHandler struct {
	chatService service.ChatService
	upgrader    websocket.Upgrader
}

func NewChatHandler(chatService service.ChatService) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The REST API is already open to all origins; the socket follows.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// ChatRequest is a single chat turn.
type ChatRequest struct {
	Message string `json:"message"`
}

// Chat handles POST /api/ivor/chat.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    http.StatusBadRequest,
			"message": "Invalid request body",
		})
		return
	}

	reply := h.chatService.Respond(req.Message)
	c.JSON(http.StatusOK, gin.H{
		"code":    http.StatusOK,
		"message": "OK",
		"reply":   reply,
	})
}

// chatSocketMessage is the frame exchanged on the websocket, both directions.
type chatSocketMessage struct {
	Message string `json:"message,omitempty"`
	Reply   string `json:"reply,omitempty"`
}

// Socket handles GET /api/ivor/ws: one JSON frame in, one reply frame out,
// until the client hangs up.
func (h *ChatHandler) Socket(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warnf("ChatHandler.Socket: upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	for {
		var in chatSocketMessage
		if err := conn.ReadJSON(&in); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warnf("ChatHandler.Socket: read failed: %v", err)
			}
			return
		}

		out := chatSocketMessage{Reply: h.chatService.Respond(in.Message)}
		conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		if err := conn.WriteJSON(out); err != nil {
			log.Warnf("ChatHandler.Socket: write failed: %v", err)
			return
		}
	}
}
