package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/donorhub/donorhub/internal/middleware"
	"github.com/donorhub/donorhub/internal/service"
	"github.com/donorhub/donorhub/pkg/response"
)

// AdminHandler serves the admin approval workflow.
type AdminHandler struct {
	service service.AdminService
}

func NewAdminHandler(svc service.AdminService) *AdminHandler {
	return &AdminHandler{service: svc}
}

func (h *AdminHandler) Pending(c *gin.Context) {
	views, err := h.service.Pending(c.Request.Context())
	if err != nil {
		writeDomainError(c, err)
		return
	}

	response.Success(c, views)
}

func (h *AdminHandler) Approve(c *gin.Context) {
	req, err := h.service.Approve(c.Request.Context(), c.Param("id"), middleware.GetUserID(c))
	if err != nil {
		writeDomainError(c, err)
		return
	}

	response.Success(c, req)
}

func (h *AdminHandler) Reject(c *gin.Context) {
	if err := h.service.Reject(c.Request.Context(), c.Param("id"), middleware.GetUserID(c)); err != nil {
		writeDomainError(c, err)
		return
	}

	response.Success(c, gin.H{"message": "request rejected"})
}

func (h *AdminHandler) RegisterRoutes(r *gin.RouterGroup, auth *middleware.AuthMiddleware) {
	admin := r.Group("/admin", auth.RequireAuth(), auth.RequireAdmin())
	{
		admin.GET("/requests", h.Pending)
		admin.PATCH("/requests/:id/approve", h.Approve)
		admin.PATCH("/requests/:id/reject", h.Reject)
	}
}
