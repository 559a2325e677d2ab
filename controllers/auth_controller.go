package controllers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/misha4322/ps-server/pkg/resp"
	"github.com/misha4322/ps-server/services"
	"github.com/misha4322/ps-server/utils"
)

type AuthController struct{ Svc *services.AuthService }

func NewAuthController(s *services.AuthService) *AuthController { return &AuthController{Svc: s} }

type credentialsIn struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// POST /api/auth/register
func (h *AuthController) Register(c *gin.Context) {
	var req credentialsIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	token, user, err := h.Svc.Register(req.Email, req.Password)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, gin.H{"token": token, "user": gin.H{"id": user.ID, "email": user.Email}})
}

// POST /api/auth/login
func (h *AuthController) Login(c *gin.Context) {
	var req credentialsIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	token, user, err := h.Svc.Login(req.Email, req.Password)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"token": token, "user": gin.H{"id": user.ID, "email": user.Email}})
}

// GET /api/auth/check
func (h *AuthController) Check(c *gin.Context) {
	user, err := h.Svc.GetProfile(utils.CurrentUserID(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"id": user.ID, "email": user.Email})
}

// POST /api/auth/refresh
func (h *AuthController) Refresh(c *gin.Context) {
	header := c.GetHeader("Authorization")
	tokenStr := strings.TrimPrefix(header, "Bearer ")
	if tokenStr == "" || tokenStr == header {
		resp.Unauthorized(c, "no token provided")
		return
	}
	token, err := h.Svc.Refresh(tokenStr)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"token": token})
}

type changePasswordIn struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}

// PUT /api/auth/password
func (h *AuthController) ChangePassword(c *gin.Context) {
	var req changePasswordIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := h.Svc.ChangePassword(utils.CurrentUserID(c), req.CurrentPassword, req.NewPassword); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"message": "password changed"})
}
