package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/donorhub/donorhub/internal/domain"
	"github.com/donorhub/donorhub/internal/middleware"
	"github.com/donorhub/donorhub/internal/service"
	"github.com/donorhub/donorhub/pkg/response"
)

// RequestHandler serves the recipient-facing blood request endpoints.
type RequestHandler struct {
	service service.RequestService
}

func NewRequestHandler(svc service.RequestService) *RequestHandler {
	return &RequestHandler{service: svc}
}

func (h *RequestHandler) Create(c *gin.Context) {
	var payload domain.CreateRequestPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	req, err := h.service.Create(c.Request.Context(), middleware.GetUserID(c), &payload)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	response.Created(c, req)
}

func (h *RequestHandler) Mine(c *gin.Context) {
	requests, err := h.service.MyRequests(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		writeDomainError(c, err)
		return
	}

	response.Success(c, requests)
}

func (h *RequestHandler) RegisterRoutes(r *gin.RouterGroup, auth *middleware.AuthMiddleware) {
	requests := r.Group("/requests", auth.RequireAuth())
	{
		requests.POST("", h.Create)
		requests.GET("/mine", h.Mine)
	}
}
