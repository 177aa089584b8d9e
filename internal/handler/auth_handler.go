package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/stitchpoint/orderdesk/internal/config"
	"github.com/stitchpoint/orderdesk/internal/service"
)

// AuthHandler serves login and session introspection.
type AuthHandler struct {
	svc *service.AuthService
	cfg *config.Config
}

// NewAuthHandler creates an auth handler.
func NewAuthHandler(svc *service.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{svc: svc, cfg: cfg}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	result, err := h.svc.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			Unauthorized(c, "invalid email or password")
			return
		}
		InternalError(c, err.Error())
		return
	}
	Success(c, result)
}

// Me GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	Success(c, gin.H{
		"user_id": GetUserID(c),
		"name":    c.GetString("user_name"),
		"email":   c.GetString("user_email"),
	})
}
