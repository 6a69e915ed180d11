package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/donorhub/donorhub/internal/domain"
	"github.com/donorhub/donorhub/internal/middleware"
	"github.com/donorhub/donorhub/internal/service"
	"github.com/donorhub/donorhub/pkg/response"
)

// DonorHandler serves donor registration and search.
type DonorHandler struct {
	service service.DonorService
}

func NewDonorHandler(svc service.DonorService) *DonorHandler {
	return &DonorHandler{service: svc}
}

func (h *DonorHandler) Search(c *gin.Context) {
	var req domain.DonorSearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "bloodGroup query parameter is required")
		return
	}

	donors, err := h.service.Search(c.Request.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	response.Success(c, donors)
}

func (h *DonorHandler) Register(c *gin.Context) {
	donor, err := h.service.Register(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		writeDomainError(c, err)
		return
	}

	response.Created(c, donor)
}

func (h *DonorHandler) RegisterRoutes(r *gin.RouterGroup, auth *middleware.AuthMiddleware) {
	donors := r.Group("/donors", auth.RequireAuth())
	{
		donors.GET("", h.Search)
		donors.POST("/register", h.Register)
	}
}
