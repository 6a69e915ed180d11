package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/donorhub/donorhub/internal/middleware"
	"github.com/donorhub/donorhub/internal/service"
	"github.com/donorhub/donorhub/pkg/response"
)

// ChatHandler serves persisted conversation state over REST. Live
// delivery happens over the websocket; these endpoints exist so a client
// can render history before joining a room.
type ChatHandler struct {
	service service.HistoryService
}

func NewChatHandler(svc service.HistoryService) *ChatHandler {
	return &ChatHandler{service: svc}
}

func (h *ChatHandler) Conversations(c *gin.Context) {
	summaries, err := h.service.Conversations(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		writeDomainError(c, err)
		return
	}

	response.Success(c, summaries)
}

func (h *ChatHandler) History(c *gin.Context) {
	messages, err := h.service.History(c.Request.Context(), c.Param("requestId"), middleware.GetUserID(c))
	if err != nil {
		writeDomainError(c, err)
		return
	}

	response.Success(c, messages)
}

func (h *ChatHandler) RegisterRoutes(r *gin.RouterGroup, auth *middleware.AuthMiddleware) {
	chat := r.Group("/chat", auth.RequireAuth())
	{
		chat.GET("/conversations", h.Conversations)
		chat.GET("/:requestId", h.History)
	}
}
