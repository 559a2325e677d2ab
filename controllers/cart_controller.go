package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/misha4322/ps-server/pkg/resp"
	"github.com/misha4322/ps-server/services"
	"github.com/misha4322/ps-server/utils"
)

type CartController struct{ Svc *services.CartService }

func NewCartController(s *services.CartService) *CartController { return &CartController{Svc: s} }

// GET /api/basket
func (h *CartController) Get(c *gin.Context) {
	lines, err := h.Svc.Get(utils.CurrentUserID(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, lines)
}

type syncIn struct {
	Items []services.CartItemIn `json:"items"`
}

// POST /api/basket/sync
func (h *CartController) Sync(c *gin.Context) {
	var req syncIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	lines, err := h.Svc.Sync(utils.CurrentUserID(c), req.Items)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, lines)
}

type addIn struct {
	BuildID  uint `json:"build_id" binding:"required"`
	Quantity int  `json:"quantity"`
}

// POST /api/basket/add
func (h *CartController) Add(c *gin.Context) {
	var req addIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	line, err := h.Svc.Add(utils.CurrentUserID(c), req.BuildID, req.Quantity)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, line)
}

type updateQuantityIn struct {
	Quantity int `json:"quantity" binding:"required"`
}

// PUT /api/basket/:id
func (h *CartController) UpdateQuantity(c *gin.Context) {
	lineID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		resp.BadRequest(c, "invalid basket item id")
		return
	}
	var req updateQuantityIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	line, err := h.Svc.UpdateQuantity(utils.CurrentUserID(c), uint(lineID), req.Quantity)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, line)
}

// DELETE /api/basket/:id
func (h *CartController) Remove(c *gin.Context) {
	lineID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		resp.BadRequest(c, "invalid basket item id")
		return
	}
	if err := h.Svc.Remove(utils.CurrentUserID(c), uint(lineID)); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"message": "removed"})
}
