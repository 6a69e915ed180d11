package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/donorhub/donorhub/internal/domain"
	"github.com/donorhub/donorhub/internal/service"
	"github.com/donorhub/donorhub/pkg/response"
)

// AuthHandler serves registration, login and one-time code delivery.
type AuthHandler struct {
	service service.AuthService
}

func NewAuthHandler(svc service.AuthService) *AuthHandler {
	return &AuthHandler{service: svc}
}

type sendOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
}

func (h *AuthHandler) SendOTP(c *gin.Context) {
	var req sendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "a valid email is required")
		return
	}

	if err := h.service.SendOTP(c.Request.Context(), req.Email); err != nil {
		writeDomainError(c, err)
		return
	}

	response.Success(c, gin.H{"message": "verification code sent"})
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req domain.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	auth, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	response.Created(c, auth)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	auth, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, domain.ErrNotAuthorized) {
			response.Unauthorized(c, "invalid credentials")
			return
		}
		writeDomainError(c, err)
		return
	}

	response.Success(c, auth)
}

func (h *AuthHandler) RegisterRoutes(r *gin.RouterGroup) {
	auth := r.Group("/auth")
	{
		auth.POST("/send-otp", h.SendOTP)
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
	}
}
