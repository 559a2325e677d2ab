package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/misha4322/ps-server/pkg/resp"
	"github.com/misha4322/ps-server/services"
	"github.com/misha4322/ps-server/utils"
)

type FavoriteController struct{ Svc *services.FavoriteService }

func NewFavoriteController(s *services.FavoriteService) *FavoriteController {
	return &FavoriteController{Svc: s}
}

// GET /api/favorites
func (h *FavoriteController) List(c *gin.Context) {
	builds, err := h.Svc.List(utils.CurrentUserID(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, builds)
}

type favoriteIn struct {
	BuildID uint `json:"build_id" binding:"required"`
}

// POST /api/favorites
func (h *FavoriteController) Add(c *gin.Context) {
	var req favoriteIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	build, err := h.Svc.Add(utils.CurrentUserID(c), req.BuildID)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, build)
}

// DELETE /api/favorites/:buildId
func (h *FavoriteController) Remove(c *gin.Context) {
	buildID, err := strconv.ParseUint(c.Param("buildId"), 10, 32)
	if err != nil {
		resp.BadRequest(c, "invalid build id")
		return
	}
	if err := h.Svc.Remove(utils.CurrentUserID(c), uint(buildID)); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"message": "removed"})
}
